package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/playmatatu/ballpark/internal/rules"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// Client represents a connected WebSocket client. A nil side is a spectator.
type Client struct {
	id      string
	conn    *websocket.Conn
	matchID string
	side    *rules.Side
	send    chan []byte
	hub     *Hub
}

func (c *Client) label() string {
	if c.side == nil {
		return "spectator " + c.id
	}
	return c.side.String() + " " + c.id
}

// Hub maintains the set of active clients, grouped by match.
type Hub struct {
	rooms      map[string]map[string]*Client // matchID -> clientID -> Client
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes registrations until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for matchID, room := range h.rooms {
				for _, c := range room {
					close(c.send)
				}
				delete(h.rooms, matchID)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			room, exists := h.rooms[client.matchID]
			if !exists {
				room = make(map[string]*Client)
				h.rooms[client.matchID] = room
			}
			room[client.id] = client
			size := len(room)
			h.mu.Unlock()
			log.Printf("[WS] %s joined match %s (room_size=%d)", client.label(), client.matchID, size)

		case client := <-h.unregister:
			h.mu.Lock()
			if room, exists := h.rooms[client.matchID]; exists {
				if cur, ok := room[client.id]; ok && cur == client {
					delete(room, client.id)
					close(client.send)
					if len(room) == 0 {
						delete(h.rooms, client.matchID)
					}
					log.Printf("[WS] %s left match %s", client.label(), client.matchID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Envelope is the shape of every message in both directions.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

func encode(msgType string, payload interface{}) ([]byte, error) {
	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		data = b
	}
	return json.Marshal(Envelope{Type: msgType, Data: data})
}

// BroadcastToMatch sends a message to every client watching a match.
func (h *Hub) BroadcastToMatch(matchID, msgType string, payload interface{}) {
	data, err := encode(msgType, payload)
	if err != nil {
		log.Printf("[WS] Error marshaling %s: %v", msgType, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	room, exists := h.rooms[matchID]
	if !exists {
		return
	}
	for _, client := range room {
		select {
		case client.send <- data:
		default:
			// Client's buffer is full
			log.Printf("[WS] send buffer full for %s in match %s, dropping %s", client.label(), matchID, msgType)
		}
	}
}

// RoomSize returns how many clients are watching a match.
func (h *Hub) RoomSize(matchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[matchID])
}

// sendTo queues one message for a single client.
func (c *Client) sendTo(msgType string, payload interface{}) {
	data, err := encode(msgType, payload)
	if err != nil {
		log.Printf("[WS] Error marshaling %s: %v", msgType, err)
		return
	}
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if room, ok := c.hub.rooms[c.matchID]; !ok || room[c.id] != c {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[WS] dropped %s for %s (buffer full)", msgType, c.label())
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	c.sendTo("error", map[string]string{"message": message})
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] write error for %s: %v", c.label(), err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] ping error for %s: %v", c.label(), err)
				return
			}
		}
	}
}
