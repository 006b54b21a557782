package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdleEvent is published on EventsChannel when a match is abandoned for
// inactivity.
type IdleEvent struct {
	Type     string        `json:"type"`
	MatchID  string        `json:"match_id"`
	Message  string        `json:"message"`
	Snapshot MatchSnapshot `json:"snapshot"`
}

// MessageMatchAbandoned is the type of an IdleEvent.
const MessageMatchAbandoned = "match_abandoned"

// StartIdleWorker abandons matches whose idle deadline in the match_idle set
// has passed with no activity since.
func StartIdleWorker(ctx context.Context, gm *Manager, rdb *redis.Client, poll, idle time.Duration) {
	if rdb == nil || gm == nil || idle <= 0 {
		log.Println("[IDLE] Redis or manager missing; idle worker not started")
		return
	}
	if poll <= 0 {
		poll = 10 * time.Second
	}

	log.Println("[IDLE] Idle worker started")
	go func() {
		ticker := time.NewTicker(poll)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("[IDLE] Idle worker stopping")
				return
			case now := <-ticker.C:
				sweepIdle(ctx, gm, rdb, idle, now)
			}
		}
	}()
}

func sweepIdle(ctx context.Context, gm *Manager, rdb *redis.Client, idle time.Duration, now time.Time) {
	members, err := rdb.ZRangeByScore(ctx, IdleSetKey, &redis.ZRangeBy{Min: "-inf", Max: fmt.Sprintf("%d", now.Unix())}).Result()
	if err != nil {
		log.Printf("[IDLE] Failed to fetch idle matches: %v", err)
		return
	}

	for _, id := range members {
		// Only the instance that removes the member handles it.
		if removed, _ := rdb.ZRem(ctx, IdleSetKey, id).Result(); removed == 0 {
			continue
		}

		m, err := gm.GetMatch(id)
		if err != nil {
			// Hosted elsewhere or already evicted.
			continue
		}

		status := m.Status()
		if status == StatusCompleted || status == StatusAbandoned {
			gm.Evict(ctx, id)
			continue
		}
		if deadline, stale := idleDeadline(m.LastActivity(), idle, now); !stale {
			rdb.ZAdd(ctx, IdleSetKey, redis.Z{Score: float64(deadline.Unix()), Member: id})
			continue
		}

		log.Printf("[IDLE] Abandoning match %s due to inactivity", id)
		snap, err := gm.Abandon(ctx, id)
		if err != nil {
			log.Printf("[IDLE] abandon %s: %v", id, err)
			continue
		}

		b, _ := json.Marshal(IdleEvent{Type: MessageMatchAbandoned, MatchID: id, Message: "Match abandoned due to inactivity", Snapshot: snap})
		if n, err := rdb.Publish(ctx, EventsChannel, b).Result(); err != nil {
			log.Printf("[IDLE] publish abandon failed: match=%s err=%v", id, err)
		} else {
			log.Printf("[IDLE] published abandon: match=%s subscribers=%d", id, n)
		}
		gm.Evict(ctx, id)
	}
}

// idleDeadline reports when a match last active at last goes idle, and
// whether that moment has already passed.
func idleDeadline(last time.Time, idle time.Duration, now time.Time) (time.Time, bool) {
	deadline := last.Add(idle)
	return deadline, !now.Before(deadline)
}
