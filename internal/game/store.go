package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/ballpark/internal/models"
	"github.com/playmatatu/ballpark/internal/rules"
	"github.com/redis/go-redis/v9"
)

const (
	// IdleSetKey is the sorted set of match IDs scored by idle deadline.
	IdleSetKey = "match_idle"
	// EventsChannel carries match events published outside a tick loop.
	EventsChannel = "match_events"
)

func snapshotKey(matchID string) string {
	return "match:" + matchID + ":state"
}

// Store persists match history. Every method is best effort from the
// manager's point of view: failures are logged, never fatal to the match.
type Store interface {
	CreateMatch(ctx context.Context, s MatchSnapshot, maxInnings int) error
	RecordOutcome(ctx context.Context, matchID string, o Outcome) error
	SaveSnapshot(ctx context.Context, s MatchSnapshot) error
	FinishMatch(ctx context.Context, s MatchSnapshot) error
	MarkActive(ctx context.Context, matchID string, deadline time.Time) error
	ClearActive(ctx context.Context, matchID string) error
}

// SQLStore writes match history to postgres and live state to redis. Either
// client may be nil, in which case that half is skipped.
type SQLStore struct {
	db          *sqlx.DB
	rdb         *redis.Client
	snapshotTTL time.Duration
}

func NewSQLStore(db *sqlx.DB, rdb *redis.Client, snapshotTTL time.Duration) *SQLStore {
	if snapshotTTL <= 0 {
		snapshotTTL = time.Hour
	}
	return &SQLStore{db: db, rdb: rdb, snapshotTTL: snapshotTTL}
}

func (s *SQLStore) CreateMatch(ctx context.Context, snap MatchSnapshot, maxInnings int) error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO matches (id, home_team, away_team, status, max_innings, created_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		snap.ID, snap.Home, snap.Away, string(snap.Status), maxInnings, snap.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert match %s: %w", snap.ID, err)
	}
	return nil
}

// RecordOutcome appends the outcome to the match event log. Challenges are
// also written to their own table for review statistics.
func (s *SQLStore) RecordOutcome(ctx context.Context, matchID string, o Outcome) error {
	if s.db == nil {
		return nil
	}

	detail := o
	detail.Snapshot = MatchSnapshot{}
	data, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("marshal outcome: %w", err)
	}

	pitchNumber := o.Snapshot.PitchNumber
	if o.Pitch != nil {
		pitchNumber = o.Pitch.Number
	}
	game := o.Snapshot.Game
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO match_events (match_id, kind, pitch_number, inning, half, detail, created_at) VALUES ($1,$2,$3,$4,$5,$6::jsonb,NOW())`,
		matchID, string(o.Kind), pitchNumber, game.Inning, string(game.Half), string(data),
	); err != nil {
		return fmt.Errorf("insert event for match %s: %w", matchID, err)
	}

	if o.Kind == OutcomeChallengeResolved && o.Challenger != nil && o.Pitch != nil {
		original := o.Pitch.Call
		if o.Overturned {
			original = rules.CallFor(original != rules.Strike)
		}
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO match_challenges (match_id, side, pitch_number, original_call, overturned, created_at) VALUES ($1,$2,$3,$4,$5,NOW())`,
			matchID, o.Challenger.String(), o.Pitch.Number, string(original), o.Overturned,
		); err != nil {
			return fmt.Errorf("insert challenge for match %s: %w", matchID, err)
		}
	}
	return nil
}

// SaveSnapshot caches the latest state in redis so it can be served after the
// match leaves memory.
func (s *SQLStore) SaveSnapshot(ctx context.Context, snap MatchSnapshot) error {
	if s.rdb == nil {
		return nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.rdb.SetEx(ctx, snapshotKey(snap.ID), data, s.snapshotTTL).Err()
}

// LoadSnapshot reads a cached snapshot.
func (s *SQLStore) LoadSnapshot(ctx context.Context, matchID string) (*MatchSnapshot, error) {
	if s.rdb == nil {
		return nil, ErrMatchNotFound
	}
	data, err := s.rdb.Get(ctx, snapshotKey(matchID)).Bytes()
	if err == redis.Nil {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	var snap MatchSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", matchID, err)
	}
	return &snap, nil
}

func (s *SQLStore) FinishMatch(ctx context.Context, snap MatchSnapshot) error {
	if err := s.SaveSnapshot(ctx, snap); err != nil {
		log.Printf("[REDIS] Failed to cache final snapshot for %s: %v", snap.ID, err)
	}
	if s.db == nil {
		return nil
	}

	var winner *string
	if snap.Game.Winner != nil {
		w := snap.Game.Winner.String()
		winner = &w
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE matches
		SET status=$1, home_score=$2, away_score=$3, innings=$4, winner=$5, started_at=$6, completed_at=$7
		WHERE id=$8
	`, string(snap.Status), snap.Game.Score.Home, snap.Game.Score.Away, snap.Game.Inning, winner, snap.StartedAt, snap.CompletedAt, snap.ID)
	if err != nil {
		return fmt.Errorf("finish match %s: %w", snap.ID, err)
	}
	return nil
}

func (s *SQLStore) MarkActive(ctx context.Context, matchID string, deadline time.Time) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.ZAdd(ctx, IdleSetKey, redis.Z{Score: float64(deadline.Unix()), Member: matchID}).Err()
}

func (s *SQLStore) ClearActive(ctx context.Context, matchID string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.ZRem(ctx, IdleSetKey, matchID).Err()
}

// RecentMatches lists persisted matches, newest first.
func (s *SQLStore) RecentMatches(ctx context.Context, limit, offset int) ([]models.Match, error) {
	if s.db == nil {
		return nil, nil
	}
	var out []models.Match
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, home_team, away_team, status, max_innings, home_score, away_score, innings, winner, created_at, started_at, completed_at
		FROM matches
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	return out, err
}

// MatchEvents returns the event log of one match in order.
func (s *SQLStore) MatchEvents(ctx context.Context, matchID string) ([]models.MatchEvent, error) {
	if s.db == nil {
		return nil, nil
	}
	var out []models.MatchEvent
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, match_id, kind, pitch_number, inning, half, detail, created_at
		FROM match_events
		WHERE match_id=$1
		ORDER BY id
	`, matchID)
	return out, err
}

// Challenges returns the reviewed calls of one match.
func (s *SQLStore) Challenges(ctx context.Context, matchID string) ([]models.ChallengeRecord, error) {
	if s.db == nil {
		return nil, nil
	}
	var out []models.ChallengeRecord
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, match_id, side, pitch_number, original_call, overturned, created_at
		FROM match_challenges
		WHERE match_id=$1
		ORDER BY id
	`, matchID)
	return out, err
}
