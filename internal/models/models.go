package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// Match represents a hosted game between two clubs
type Match struct {
	ID          string         `db:"id" json:"id"`
	HomeTeam    string         `db:"home_team" json:"home_team"`
	AwayTeam    string         `db:"away_team" json:"away_team"`
	Status      string         `db:"status" json:"status"`
	MaxInnings  int            `db:"max_innings" json:"max_innings"`
	HomeScore   int            `db:"home_score" json:"home_score"`
	AwayScore   int            `db:"away_score" json:"away_score"`
	Innings     int            `db:"innings" json:"innings"`
	Winner      sql.NullString `db:"winner" json:"winner,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	StartedAt   sql.NullTime   `db:"started_at" json:"started_at,omitempty"`
	CompletedAt sql.NullTime   `db:"completed_at" json:"completed_at,omitempty"`
}

// MatchEvent is one outcome of a match tick: a called pitch, contact, a
// batted ball, a challenge or the end of the match
type MatchEvent struct {
	ID          int             `db:"id" json:"id"`
	MatchID     string          `db:"match_id" json:"match_id"`
	Kind        string          `db:"kind" json:"kind"`
	PitchNumber int             `db:"pitch_number" json:"pitch_number"`
	Inning      int             `db:"inning" json:"inning"`
	Half        string          `db:"half" json:"half"`
	Detail      json.RawMessage `db:"detail" json:"detail"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// ChallengeRecord is a reviewed call
type ChallengeRecord struct {
	ID           int       `db:"id" json:"id"`
	MatchID      string    `db:"match_id" json:"match_id"`
	Side         string    `db:"side" json:"side"`
	PitchNumber  int       `db:"pitch_number" json:"pitch_number"`
	OriginalCall string    `db:"original_call" json:"original_call"`
	Overturned   bool      `db:"overturned" json:"overturned"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// AdminAccount is an operator allowed to use the admin API
type AdminAccount struct {
	Phone       string         `db:"phone" json:"phone"`
	DisplayName string         `db:"display_name" json:"display_name"`
	TokenHash   string         `db:"token_hash" json:"-"`
	Roles       pq.StringArray `db:"roles" json:"roles"`
	AllowedIPs  pq.StringArray `db:"allowed_ips" json:"allowed_ips"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// AdminAudit records an admin action
type AdminAudit struct {
	ID         int             `db:"id" json:"id"`
	AdminPhone string          `db:"admin_phone" json:"admin_phone"`
	IP         string          `db:"ip" json:"ip"`
	Route      string          `db:"route" json:"route"`
	Action     string          `db:"action" json:"action"`
	Details    json.RawMessage `db:"details" json:"details"`
	Success    bool            `db:"success" json:"success"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// RuntimeConfig is a tunable value admins can change without a restart
type RuntimeConfig struct {
	Key         string         `db:"key" json:"key"`
	Value       string         `db:"value" json:"value"`
	ValueType   string         `db:"value_type" json:"value_type"`
	Description sql.NullString `db:"description" json:"description,omitempty"`
	UpdatedBy   sql.NullString `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}
