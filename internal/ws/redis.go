package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/playmatatu/ballpark/internal/game"
	"github.com/redis/go-redis/v9"
)

// StartEventSubscriber subscribes to the match_events channel and forwards
// each event to the room of its match, so events raised on any instance
// reach the clients connected to this one.
func StartEventSubscriber(ctx context.Context, rdb *redis.Client, hub *Hub) {
	if rdb == nil {
		log.Println("[WS] Redis client not set; match event subscriber not started")
		return
	}

	pubsub := rdb.Subscribe(ctx, game.EventsChannel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[WS] %s subscriber started", game.EventsChannel)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				relayEvent(hub, []byte(msg.Payload))
			}
		}
	}()
}

// relayEvent broadcasts one published event. Unknown types are logged and
// dropped.
func relayEvent(hub *Hub, payload []byte) {
	var ev game.IdleEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		log.Printf("[WS] invalid event payload: %v", err)
		return
	}
	if ev.MatchID == "" {
		log.Printf("[WS] event %s without match_id", ev.Type)
		return
	}

	switch ev.Type {
	case game.MessageMatchAbandoned:
		log.Printf("[WS] broadcasting %s for match %s (room_size=%d)", ev.Type, ev.MatchID, hub.RoomSize(ev.MatchID))
		hub.BroadcastToMatch(ev.MatchID, ev.Type, ev)
	default:
		log.Printf("[WS] unknown event type: %s", ev.Type)
	}
}
