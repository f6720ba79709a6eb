// Package httpapi exposes the transport dispatcher over HTTP: a /health
// check, and a /ws endpoint that upgrades to a WebSocket and speaks the
// JSON request/response protocol over it.
package httpapi

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"gridsolve/internal/transport"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The puzzle editor client is served from a different origin during
	// local development, so cross-origin upgrades are allowed.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RegisterRoutes wires /health and /ws onto r, dispatching every decoded
// WebSocket frame through d.
func RegisterRoutes(r *gin.Engine, d *transport.Dispatcher) {
	r.GET("/health", handleHealth)
	r.GET("/ws", handleWebSocket(d))
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func handleWebSocket(d *transport.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		var writeMu sync.Mutex
		emit := func(resp transport.Response) {
			writeMu.Lock()
			defer writeMu.Unlock()
			if err := conn.WriteJSON(resp); err != nil {
				log.Printf("websocket write failed: %v", err)
			}
		}

		for {
			_, frame, err := conn.ReadMessage()
			if err != nil {
				return
			}
			// Each frame's command may run its own goroutines (count's
			// parallel search); emit is shared across all of them, so it's
			// guarded by writeMu rather than assuming single-writer access.
			go d.Handle(frame, emit)
		}
	}
}
