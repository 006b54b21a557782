package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/playmatatu/ballpark/internal/auth"
	"github.com/playmatatu/ballpark/internal/game"
	"github.com/playmatatu/ballpark/internal/physics"
)

// Inbound message types.
const (
	MsgPitch     = "pitch"
	MsgSwing     = "swing"
	MsgChallenge = "challenge"
	MsgGetState  = "get_state"
)

var errSpectator = errors.New("spectators cannot send commands")

// Handler upgrades match connections and routes their commands.
type Handler struct {
	hub    *Hub
	gm     *game.Manager
	secret string
}

func NewHandler(hub *Hub, gm *game.Manager, secret string) *Handler {
	return &Handler{hub: hub, gm: gm, secret: secret}
}

// HandleMatchSocket serves /api/v1/matches/:id/ws. A side token in ?token= lets the
// client play that side; without one the client only watches.
func (h *Handler) HandleMatchSocket(c *gin.Context) {
	matchID := c.Param("id")
	m, err := h.gm.GetMatch(matchID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}

	client := &Client{
		id:      uuid.NewString(),
		matchID: m.ID,
		send:    make(chan []byte, 256),
		hub:     h.hub,
	}
	if token := c.Query("token"); token != "" {
		claims, err := auth.ParseSideToken(h.secret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if claims.MatchID != m.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "token is for another match"})
			return
		}
		side := claims.Side
		client.side = &side
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}
	client.conn = conn

	// The first message is always the current state.
	if data, err := encode(game.MessageMatchState, m.Snapshot()); err == nil {
		client.send <- data
	}

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		select {
		case h.hub.unregister <- c:
		case <-h.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(65536)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] unexpected close for %s: %v", c.label(), err)
			}
			break
		}

		var msg Envelope
		if err := json.Unmarshal(message, &msg); err != nil {
			c.sendError("Invalid message")
			continue
		}
		h.handleMessage(c, msg)
	}
}

// handleMessage routes one inbound message. Accepted commands are answered
// by the match_state broadcast from the manager; only errors go back to the
// sender directly.
func (h *Handler) handleMessage(c *Client, msg Envelope) {
	ctx := context.Background()

	if msg.Type == MsgGetState {
		m, err := h.gm.GetMatch(c.matchID)
		if err != nil {
			c.sendError(err.Error())
			return
		}
		c.sendTo(game.MessageMatchState, m.Snapshot())
		return
	}

	if c.side == nil {
		c.sendError(errSpectator.Error())
		return
	}
	side := *c.side

	var err error
	switch msg.Type {
	case MsgPitch:
		var data physics.PitchRelease
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid pitch data")
			return
		}
		err = h.gm.Pitch(ctx, c.matchID, side, data)

	case MsgSwing:
		var data game.SwingInput
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid swing data")
			return
		}
		err = h.gm.Swing(ctx, c.matchID, side, data)

	case MsgChallenge:
		err = h.gm.Challenge(ctx, c.matchID, side)

	default:
		c.sendError("Unknown message type")
		return
	}

	if err != nil {
		c.sendError(err.Error())
	}
}
