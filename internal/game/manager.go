package game

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playmatatu/ballpark/internal/physics"
	"github.com/playmatatu/ballpark/internal/rules"
	"github.com/playmatatu/ballpark/internal/teams"
)

// Publisher delivers match messages to connected clients.
type Publisher interface {
	BroadcastToMatch(matchID, msgType string, payload interface{})
}

// MessageMatchState is sent after every accepted command.
const MessageMatchState = "match_state"

// completedRetention is how long a finished match stays readable in memory.
const completedRetention = 2 * time.Minute

// Manager owns every hosted match and runs one tick loop per match.
type Manager struct {
	matches map[string]*Match
	stops   map[string]context.CancelFunc
	tuning  Tuning
	tick    time.Duration
	idle    time.Duration
	retain  time.Duration
	store   Store
	pub     Publisher
	ctx     context.Context
	mu      sync.RWMutex
}

// NewManager creates a manager whose tick loops live until ctx is cancelled.
func NewManager(ctx context.Context, t Tuning, tick, idle time.Duration, store Store) *Manager {
	if store == nil {
		store = NewSQLStore(nil, nil, 0)
	}
	if tick <= 0 {
		tick = time.Second / 60
	}
	return &Manager{
		matches: make(map[string]*Match),
		stops:   make(map[string]context.CancelFunc),
		tuning:  t,
		tick:    tick,
		idle:    idle,
		retain:  completedRetention,
		store:   store,
		ctx:     ctx,
	}
}

// SetPublisher wires the websocket hub in after construction.
func (gm *Manager) SetPublisher(p Publisher) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.pub = p
}

// Tuning returns the configuration new matches are created with.
func (gm *Manager) Tuning() Tuning {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return gm.tuning
}

// SetTuning changes the configuration of matches created from now on.
// Matches already running keep the constants they started with.
func (gm *Manager) SetTuning(t Tuning) error {
	if err := t.Constants.Validate(); err != nil {
		return err
	}
	if err := t.Settings.Validate(); err != nil {
		return err
	}
	gm.mu.Lock()
	gm.tuning = t
	gm.mu.Unlock()
	log.Printf("[MATCH] Tuning updated: %+v", t.Constants)
	return nil
}

// CreateMatch starts hosting a match between two clubs.
func (gm *Manager) CreateMatch(ctx context.Context, homeCode, awayCode string) (*Match, error) {
	home, err := teams.Lookup(homeCode)
	if err != nil {
		return nil, err
	}
	away, err := teams.Lookup(awayCode)
	if err != nil {
		return nil, err
	}

	t := gm.Tuning()
	m, err := NewMatch(uuid.NewString(), home, away, t)
	if err != nil {
		return nil, err
	}

	snap := m.Snapshot()
	if err := gm.store.CreateMatch(ctx, snap, t.Settings.MaxInnings); err != nil {
		log.Printf("[DB] Failed to record match %s: %v", m.ID, err)
	}
	if err := gm.store.SaveSnapshot(ctx, snap); err != nil {
		log.Printf("[REDIS] Failed to cache match %s: %v", m.ID, err)
	}
	gm.touch(ctx, m)

	loopCtx, cancel := context.WithCancel(gm.ctx)
	gm.mu.Lock()
	gm.matches[m.ID] = m
	gm.stops[m.ID] = cancel
	gm.mu.Unlock()

	go gm.run(loopCtx, m)
	log.Printf("[MATCH] Created %s: %s at %s", m.ID, away.Code, home.Code)
	return m, nil
}

// GetMatch returns a hosted match.
func (gm *Manager) GetMatch(id string) (*Match, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	m, ok := gm.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

// ListMatches returns snapshots of hosted matches, newest first.
func (gm *Manager) ListMatches() []MatchSnapshot {
	gm.mu.RLock()
	list := make([]*Match, 0, len(gm.matches))
	for _, m := range gm.matches {
		list = append(list, m)
	}
	gm.mu.RUnlock()

	out := make([]MatchSnapshot, 0, len(list))
	for _, m := range list {
		out = append(out, m.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Pitch forwards a pitch command to a match.
func (gm *Manager) Pitch(ctx context.Context, id string, side rules.Side, p physics.PitchRelease) error {
	return gm.command(ctx, id, func(m *Match) error { return m.Pitch(side, p) })
}

// Swing forwards a swing command to a match.
func (gm *Manager) Swing(ctx context.Context, id string, side rules.Side, s SwingInput) error {
	return gm.command(ctx, id, func(m *Match) error { return m.Swing(side, s) })
}

// Challenge forwards a challenge to a match.
func (gm *Manager) Challenge(ctx context.Context, id string, side rules.Side) error {
	return gm.command(ctx, id, func(m *Match) error { return m.Challenge(side) })
}

func (gm *Manager) command(ctx context.Context, id string, fn func(*Match) error) error {
	m, err := gm.GetMatch(id)
	if err != nil {
		return err
	}
	if err := fn(m); err != nil {
		return err
	}
	gm.touch(ctx, m)
	gm.publish(m.ID, MessageMatchState, m.Snapshot())
	return nil
}

// Abandon ends a match without a result and stops its loop.
func (gm *Manager) Abandon(ctx context.Context, id string) (MatchSnapshot, error) {
	m, err := gm.GetMatch(id)
	if err != nil {
		return MatchSnapshot{}, err
	}
	if !m.Abandon() {
		return m.Snapshot(), ErrMatchOver
	}
	gm.stop(id)

	snap := m.Snapshot()
	if err := gm.store.FinishMatch(ctx, snap); err != nil {
		log.Printf("[DB] Failed to record abandoned match %s: %v", id, err)
	}
	gm.publish(id, string(OutcomeMatchOver), Outcome{Kind: OutcomeMatchOver, Snapshot: snap})
	log.Printf("[MATCH] Abandoned %s", id)
	return snap, nil
}

// Evict forgets a match that is no longer being played.
func (gm *Manager) Evict(ctx context.Context, id string) {
	gm.stop(id)
	gm.mu.Lock()
	delete(gm.matches, id)
	gm.mu.Unlock()
	if err := gm.store.ClearActive(ctx, id); err != nil {
		log.Printf("[REDIS] Failed to clear idle entry for %s: %v", id, err)
	}
}

// Shutdown stops every tick loop.
func (gm *Manager) Shutdown() {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	for id, cancel := range gm.stops {
		cancel()
		delete(gm.stops, id)
	}
}

func (gm *Manager) stop(id string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	if cancel, ok := gm.stops[id]; ok {
		cancel()
		delete(gm.stops, id)
	}
}

func (gm *Manager) run(ctx context.Context, m *Match) {
	ticker := time.NewTicker(gm.tick)
	defer ticker.Stop()
	dt := gm.tick.Seconds()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			outcomes := m.Tick(dt)
			if len(outcomes) == 0 {
				continue
			}
			gm.dispatch(ctx, m, outcomes)
			if m.Status() == StatusCompleted {
				gm.stop(m.ID)
				return
			}
		}
	}
}

// dispatch publishes and persists the outcomes of one tick in order.
func (gm *Manager) dispatch(ctx context.Context, m *Match, outcomes []Outcome) {
	for _, o := range outcomes {
		gm.publish(m.ID, string(o.Kind), o)
		if err := gm.store.RecordOutcome(ctx, m.ID, o); err != nil {
			log.Printf("[DB] Failed to record %s for %s: %v", o.Kind, m.ID, err)
		}
		if o.Kind == OutcomeMatchOver {
			if err := gm.store.FinishMatch(ctx, o.Snapshot); err != nil {
				log.Printf("[DB] Failed to finish match %s: %v", m.ID, err)
			}
			log.Printf("[MATCH] %s final: %s %d %s %d", m.ID, m.Away.Code, o.Snapshot.Game.Score.Away, m.Home.Code, o.Snapshot.Game.Score.Home)
			go gm.evictAfter(m.ID, gm.retain)
		}
	}

	last := outcomes[len(outcomes)-1].Snapshot
	if err := gm.store.SaveSnapshot(ctx, last); err != nil {
		log.Printf("[REDIS] Failed to cache match %s: %v", m.ID, err)
	}
	gm.touch(ctx, m)
}

// evictAfter drops a completed match from memory after d.
func (gm *Manager) evictAfter(id string, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-gm.ctx.Done():
	case <-timer.C:
		gm.Evict(gm.ctx, id)
		log.Printf("[MATCH] Evicted completed match %s", id)
	}
}

func (gm *Manager) touch(ctx context.Context, m *Match) {
	if gm.idle <= 0 {
		return
	}
	if err := gm.store.MarkActive(ctx, m.ID, time.Now().Add(gm.idle)); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[REDIS] Failed to mark %s active: %v", m.ID, err)
	}
}

func (gm *Manager) publish(matchID, msgType string, payload interface{}) {
	gm.mu.RLock()
	pub := gm.pub
	gm.mu.RUnlock()
	if pub != nil {
		pub.BroadcastToMatch(matchID, msgType, payload)
	}
}
