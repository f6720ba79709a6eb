// Package lzwtext implements the lz-string (pieroxy) text-compression
// format used to wrap FPuzzles payloads over the wire: a growing-dictionary
// LZW variant operating on UTF-16 code units, packed at 6 bits per
// character and base64-encoded. This is not compress/lzw's wire format; the
// state machine is ported directly from the lz-string algorithm so the
// output interoperates with it bit for bit (see DESIGN.md).
package lzwtext

import (
	"strings"
	"unicode/utf16"

	"gridsolve/internal/xerr"
)

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/="

// unitSeq is a sequence of UTF-16 code units: the alphabet the dictionary
// is built over. lz-string compresses JS strings, whose characters are
// UTF-16 code units, not Unicode code points, so the dictionary has to
// operate at that granularity too.
type unitSeq []uint16

func (s unitSeq) key() string {
	b := make([]byte, len(s)*2)
	for i, u := range s {
		b[2*i] = byte(u >> 8)
		b[2*i+1] = byte(u)
	}
	return string(b)
}

func corruptErr() error {
	return xerr.New(xerr.TransportError, "corrupt LZW payload")
}

// --- bit-level output, 6 bits per base64 character ---

type bitWriter struct {
	val      int
	position int
	out      strings.Builder
}

const bitsPerChar = 6

func (w *bitWriter) writeBit(bit int) {
	w.val = (w.val << 1) | bit
	if w.position == bitsPerChar-1 {
		w.position = 0
		w.out.WriteByte(base64Alphabet[w.val])
		w.val = 0
	} else {
		w.position++
	}
}

func (w *bitWriter) writeBits(n, value int) {
	for i := 0; i < n; i++ {
		w.writeBit(value & 1)
		value >>= 1
	}
}

func (w *bitWriter) flush() string {
	for {
		w.val <<= 1
		if w.position == bitsPerChar-1 {
			w.out.WriteByte(base64Alphabet[w.val])
			break
		}
		w.position++
	}
	return w.out.String()
}

// --- compression ---

// compress implements lz-string's _compress over a UTF-16 code-unit
// alphabet, always packing output at 6 bits per base64 character.
func compress(units []uint16) string {
	if len(units) == 0 {
		return ""
	}

	dictionary := map[string]int{}
	toCreate := map[string]bool{}
	dictSize := 3
	numBits := 2
	enlargeIn := 2
	w := &bitWriter{}

	bump := func() {
		enlargeIn--
		if enlargeIn == 0 {
			enlargeIn = 1 << uint(numBits)
			numBits++
		}
	}

	emit := func(seq unitSeq) {
		key := seq.key()
		if toCreate[key] {
			head := int(seq[0])
			if head < 256 {
				w.writeBits(numBits, 0)
				w.writeBits(8, head)
			} else {
				w.writeBits(numBits, 1)
				w.writeBits(16, head)
			}
			bump()
			delete(toCreate, key)
		} else {
			w.writeBits(numBits, dictionary[key])
		}
		bump()
	}

	var cur unitSeq
	for _, u := range units {
		c := unitSeq{u}
		ckey := c.key()
		if _, ok := dictionary[ckey]; !ok {
			dictionary[ckey] = dictSize
			dictSize++
			toCreate[ckey] = true
		}

		wc := append(append(unitSeq{}, cur...), u)
		wcKey := wc.key()
		if _, ok := dictionary[wcKey]; ok {
			cur = wc
			continue
		}

		emit(cur)
		dictionary[wcKey] = dictSize
		dictSize++
		cur = c
	}

	if len(cur) > 0 {
		emit(cur)
	}

	// End-of-stream marker.
	w.writeBits(numBits, 2)
	return w.flush()
}

// --- decompression ---

type bitReader struct {
	val      int
	position int
	index    int
	get      func(int) (int, bool)
}

func (r *bitReader) readBits(numBits int) (int, bool) {
	bits := 0
	power := 1
	maxpower := 1 << uint(numBits)
	for power != maxpower {
		resb := r.val & r.position
		r.position >>= 1
		if r.position == 0 {
			r.position = resetValue
			v, ok := r.get(r.index)
			if !ok {
				return 0, false
			}
			r.val = v
			r.index++
		}
		if resb > 0 {
			bits |= power
		}
		power <<= 1
	}
	return bits, true
}

const resetValue = 32 // base64 variant: 6 bits per character, top bit at 1<<5

// decompress implements lz-string's generic _decompress over a
// UTF-16-code-unit alphabet.
func decompress(length int, get func(int) (int, bool)) (unitSeq, error) {
	v0, ok := get(0)
	if !ok {
		return nil, corruptErr()
	}
	r := &bitReader{val: v0, position: resetValue, index: 1, get: get}

	dictionary := make([]unitSeq, 3, 16)
	dictionary[0] = unitSeq{0}
	dictionary[1] = unitSeq{1}
	dictionary[2] = nil

	enlargeIn := 4
	dictSize := 4
	numBits := 3

	header, ok := r.readBits(2)
	if !ok {
		return nil, corruptErr()
	}

	var c unitSeq
	switch header {
	case 0:
		v, ok := r.readBits(8)
		if !ok {
			return nil, corruptErr()
		}
		c = unitSeq{uint16(v)}
	case 1:
		v, ok := r.readBits(16)
		if !ok {
			return nil, corruptErr()
		}
		c = unitSeq{uint16(v)}
	case 2:
		return unitSeq{}, nil
	default:
		return nil, corruptErr()
	}

	dictionary = append(dictionary, c)
	w := c
	result := append(unitSeq{}, c...)

	for {
		if r.index > length {
			return unitSeq{}, nil
		}

		bits, ok := r.readBits(numBits)
		if !ok {
			return nil, corruptErr()
		}

		switch bits {
		case 0:
			v, ok := r.readBits(8)
			if !ok {
				return nil, corruptErr()
			}
			idx := dictSize
			dictionary = append(dictionary, unitSeq{uint16(v)})
			dictSize++
			bits = idx
			enlargeIn--
			if enlargeIn == 0 {
				enlargeIn = 1 << uint(numBits)
				numBits++
			}
		case 1:
			v, ok := r.readBits(16)
			if !ok {
				return nil, corruptErr()
			}
			idx := dictSize
			dictionary = append(dictionary, unitSeq{uint16(v)})
			dictSize++
			bits = idx
			enlargeIn--
			if enlargeIn == 0 {
				enlargeIn = 1 << uint(numBits)
				numBits++
			}
		case 2:
			return result, nil
		}

		var entry unitSeq
		switch {
		case bits < len(dictionary) && dictionary[bits] != nil:
			entry = dictionary[bits]
		case bits == dictSize:
			entry = append(append(unitSeq{}, w...), w[0])
		default:
			return nil, corruptErr()
		}

		result = append(result, entry...)

		dictionary = append(dictionary, append(append(unitSeq{}, w...), entry[0]))
		dictSize++
		enlargeIn--
		if enlargeIn == 0 {
			enlargeIn = 1 << uint(numBits)
			numBits++
		}

		w = entry
	}
}

func equalUint16(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func unitsToString(units []uint16) (string, error) {
	runes := utf16.Decode(units)
	if !equalUint16(utf16.Encode(runes), units) {
		return "", xerr.New(xerr.TransportError, "invalid UTF-16 sequence")
	}
	return string(runes), nil
}

// CompressToBase64 encodes text in lz-string's format: UTF-16 code units,
// LZW-compressed, packed 6 bits per output character from base64Alphabet.
func CompressToBase64(text string) string {
	units := utf16.Encode([]rune(text))
	return compress(units)
}

// DecompressFromBase64 reverses CompressToBase64, or any payload produced
// by lz-string's own compressToBase64.
func DecompressFromBase64(input string) (string, error) {
	if input == "" {
		return "", xerr.New(xerr.TransportError, "empty LZW payload")
	}

	get := func(index int) (int, bool) {
		if index >= len(input) {
			return 0, false
		}
		v := strings.IndexByte(base64Alphabet, input[index])
		if v < 0 {
			return 0, false
		}
		return v, true
	}

	units, err := decompress(len(input), get)
	if err != nil {
		return "", err
	}
	return unitsToString(units)
}
