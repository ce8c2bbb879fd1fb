package websocket

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans presenter events (badge counts, toasts) out to every connected
// UI client. Clients only listen; there is no inbound protocol beyond the
// read loop that detects disconnects.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan interface{}
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan interface{}, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// Run is the hub's main loop; callers start it in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true
			log.Printf("UI client connected (%d total)", len(h.clients))

		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			log.Printf("UI client disconnected (%d total)", len(h.clients))

		case event := <-h.broadcast:
			for conn := range h.clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("WebSocket write failed: %v", err)
					delete(h.clients, conn)
					conn.Close()
				}
			}
		}
	}
}

// Publish queues an event for broadcast without blocking the caller; if
// the hub is saturated the event is dropped.
func (h *Hub) Publish(event interface{}) {
	select {
	case h.broadcast <- event:
	default:
	}
}

// Serve upgrades the request and parks in a read loop until the client
// goes away.
func (h *Hub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.register <- conn
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.unregister <- conn
			break
		}
	}
}
