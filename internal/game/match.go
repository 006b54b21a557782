package game

import (
	"errors"
	"log"
	"math"
	"sync"
	"time"

	"github.com/playmatatu/ballpark/internal/physics"
	"github.com/playmatatu/ballpark/internal/rules"
	"github.com/playmatatu/ballpark/internal/teams"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrMatchOver     = errors.New("match is over")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrBallInPlay    = errors.New("a ball is already in play")
	ErrNoPitch       = errors.New("no pitch in flight")
	ErrAlreadySwung  = errors.New("already swung at this pitch")
	ErrInvalidPitch  = errors.New("invalid pitch")
	ErrInvalidSwing  = errors.New("invalid swing")
	ErrNotReviewable = errors.New("last pitch is not reviewable")
	ErrSameTeam      = errors.New("a team cannot play itself")
)

const (
	// SwingWindow is how long a swing stays live after it starts.
	SwingWindow = 0.150
	// BatReach is how far from the sweet spot, in x and y, the ball can cross
	// the plate and still meet the bat.
	BatReach = 0.15

	MaxPitchFlight  = 3.0
	MaxBattedFlight = 15.0
	MaxTopSpeedMPH  = 110.0
)

// Tuning is the simulation configuration a match is created with.
type Tuning struct {
	Constants    physics.Constants
	Settings     rules.Settings
	Zone         physics.Zone
	UmpireMargin float64
	SubSteps     int
}

// SwingInput is the batter's swing.
type SwingInput struct {
	BatVelocity physics.Vec3 `json:"bat_velocity"`
	SwingPlane  physics.Vec3 `json:"swing_plane"`
	SweetSpotX  float64      `json:"sweet_spot_x"`
	SweetSpotY  float64      `json:"sweet_spot_y"`
}

type swing struct {
	input    SwingInput
	openedAt float64
}

func (s *swing) live(at float64) bool {
	return at >= s.openedAt && at-s.openedAt <= SwingWindow
}

func (s *swing) reaches(p physics.Vec3) bool {
	return math.Abs(p.X-s.input.SweetSpotX) <= BatReach && math.Abs(p.Y-s.input.SweetSpotY) <= BatReach
}

// PitchRecord describes the last pitch that reached a decision.
type PitchRecord struct {
	Number     int           `json:"number"`
	Call       rules.Call    `json:"call,omitempty"`
	Crossing   *physics.Vec3 `json:"crossing,omitempty"`
	InZone     bool          `json:"in_zone"`
	Swinging   bool          `json:"swinging"`
	Bounced    bool          `json:"bounced"`
	Reviewable bool          `json:"reviewable"`
}

// Outcome is something that happened in a match, in the order it happened.
type Outcome struct {
	Kind       OutcomeKind   `json:"kind"`
	Pitch      *PitchRecord  `json:"pitch,omitempty"`
	Exit       *physics.Vec3 `json:"exit_velocity,omitempty"`
	Result     BattedResult  `json:"result,omitempty"`
	Landing    *physics.Vec3 `json:"landing,omitempty"`
	DistanceM  float64       `json:"distance_m,omitempty"`
	SprayDeg   float64       `json:"spray_deg,omitempty"`
	Runs       int           `json:"runs,omitempty"`
	Challenger *rules.Side   `json:"challenger,omitempty"`
	Overturned bool          `json:"overturned,omitempty"`
	Snapshot   MatchSnapshot `json:"snapshot"`
}

// MatchSnapshot is the state of a match for clients and persistence.
type MatchSnapshot struct {
	ID          string             `json:"id"`
	Status      MatchStatus        `json:"status"`
	Phase       Phase              `json:"phase"`
	Home        string             `json:"home"`
	Away        string             `json:"away"`
	Stadium     string             `json:"stadium"`
	Game        rules.Snapshot     `json:"game"`
	Ball        *physics.BallState `json:"ball,omitempty"`
	PitchNumber int                `json:"pitch_number"`
	LastPitch   *PitchRecord       `json:"last_pitch,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	StartedAt   *time.Time         `json:"started_at,omitempty"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
}

// Match hosts one game: it owns the rules state, the ball in flight and the
// integrator. Every method takes the match lock, so the tick loop and command
// handlers never interleave.
type Match struct {
	ID        string
	Home      teams.Team
	Away      teams.Team
	CreatedAt time.Time

	mu           sync.Mutex
	status       MatchStatus
	phase        Phase
	game         *rules.GameState
	in           *physics.Integrator
	zone         physics.Zone
	umpireMargin float64
	subSteps     int

	ball        physics.BallState
	flight      float64
	bounced     bool
	swing       *swing
	pitchNumber int
	lastPitch   *PitchRecord

	startedAt    *time.Time
	completedAt  *time.Time
	lastActivity time.Time
}

// NewMatch creates a match waiting for its first pitch.
func NewMatch(id string, home, away teams.Team, t Tuning) (*Match, error) {
	if home.Code == away.Code {
		return nil, ErrSameTeam
	}
	if err := t.Constants.Validate(); err != nil {
		return nil, err
	}
	g, err := rules.NewGameState(t.Settings)
	if err != nil {
		return nil, err
	}
	if t.SubSteps < 1 {
		t.SubSteps = 1
	}
	now := time.Now()
	return &Match{
		ID:           id,
		Home:         home,
		Away:         away,
		CreatedAt:    now,
		status:       StatusWaiting,
		phase:        PhaseAwaitingPitch,
		game:         g,
		in:           physics.NewIntegrator(t.Constants),
		zone:         t.Zone,
		umpireMargin: t.UmpireMargin,
		subSteps:     t.SubSteps,
		lastActivity: now,
	}, nil
}

func (m *Match) Status() MatchStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *Match) LastActivity() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastActivity
}

// Team returns the club playing as side.
func (m *Match) Team(side rules.Side) teams.Team {
	if side == rules.Home {
		return m.Home
	}
	return m.Away
}

// Pitch releases a ball. Only the fielding side pitches, and only when no ball
// is in play.
func (m *Match) Pitch(side rules.Side, p physics.PitchRelease) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkOpen(); err != nil {
		return err
	}
	if side != m.game.Fielding() {
		return ErrNotYourTurn
	}
	if m.phase != PhaseAwaitingPitch {
		return ErrBallInPlay
	}
	if _, pending := m.game.Pending(); pending {
		return rules.ErrChallengePending
	}
	if !finite(p.Power) || p.Power < 0 || p.Power > 1 || !finite(p.TopSpeedMPH) ||
		p.TopSpeedMPH < 0 || p.TopSpeedMPH > MaxTopSpeedMPH || !finite(p.SpinRPM) || p.SpinRPM < 0 ||
		!finiteVec(p.Aim) || !finiteVec(p.SpinAxis) {
		return ErrInvalidPitch
	}

	if m.status == StatusWaiting {
		now := time.Now()
		m.status = StatusInProgress
		m.startedAt = &now
	}
	m.ball = m.in.Release(p)
	m.phase = PhasePitchInFlight
	m.flight = 0
	m.bounced = false
	m.swing = nil
	m.pitchNumber++
	m.lastPitch = nil
	m.lastActivity = time.Now()
	return nil
}

// Swing arms the batter's swing for the pitch in flight.
func (m *Match) Swing(side rules.Side, s SwingInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkOpen(); err != nil {
		return err
	}
	if side != m.game.Batting() {
		return ErrNotYourTurn
	}
	if m.phase != PhasePitchInFlight {
		return ErrNoPitch
	}
	if m.swing != nil {
		return ErrAlreadySwung
	}
	if !finite(s.SweetSpotX) || !finite(s.SweetSpotY) || !finiteVec(s.BatVelocity) || !finiteVec(s.SwingPlane) {
		return ErrInvalidSwing
	}
	m.swing = &swing{input: s, openedAt: m.flight}
	m.lastActivity = time.Now()
	return nil
}

// Challenge asks for a zone review of the last called pitch. The review is
// settled on the next tick.
func (m *Match) Challenge(side rules.Side) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkOpen(); err != nil {
		return err
	}
	if m.phase != PhaseAwaitingPitch {
		return ErrBallInPlay
	}
	if m.lastPitch == nil || !m.lastPitch.Reviewable || m.lastPitch.Crossing == nil {
		return ErrNotReviewable
	}
	at := *m.lastPitch.Crossing
	req := rules.ChallengeRequest{
		Side:     side,
		Position: [3]float64{at.X, at.Y, at.Z},
		IsStrike: physics.CheckZone(at, m.zone),
	}
	if err := m.game.RequestChallenge(req); err != nil {
		return err
	}
	m.lastActivity = time.Now()
	log.Printf("[MATCH] %s: %s challenges pitch %d (%s)", m.ID, side, m.lastPitch.Number, m.lastPitch.Call)
	return nil
}

// Abandon ends the match without a result.
func (m *Match) Abandon() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == StatusCompleted || m.status == StatusAbandoned {
		return false
	}
	now := time.Now()
	m.status = StatusAbandoned
	m.phase = PhaseComplete
	m.completedAt = &now
	return true
}

// Tick advances the match by dt seconds: a pending challenge is settled
// first, then the ball in play is integrated and any call or batted-ball
// result is fed into the rules state.
func (m *Match) Tick(dt float64) []Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != StatusInProgress || dt <= 0 {
		return nil
	}

	var out []Outcome
	if req, ok := m.game.Pending(); ok {
		out = append(out, m.resolveChallenge(req))
	}

	switch m.phase {
	case PhasePitchInFlight:
		out = append(out, m.advancePitch(dt)...)
	case PhaseBattedBall:
		out = append(out, m.advanceBattedBall(dt)...)
	}

	if m.game.Final() && m.status == StatusInProgress {
		now := time.Now()
		m.status = StatusCompleted
		m.phase = PhaseComplete
		m.completedAt = &now
		out = append(out, Outcome{Kind: OutcomeMatchOver, Snapshot: m.snapshot()})
	}
	return out
}

func (m *Match) resolveChallenge(req rules.ChallengeRequest) Outcome {
	if m.lastPitch == nil {
		m.lastPitch = &PitchRecord{Number: m.pitchNumber}
	}
	original := m.lastPitch.Call
	if _, err := m.game.ResolveChallenge(req.IsStrike); err != nil {
		log.Printf("[MATCH] %s: resolve challenge: %v", m.ID, err)
	}
	overturned := rules.CallFor(req.IsStrike) != original
	if overturned {
		m.lastPitch.Call = rules.CallFor(req.IsStrike)
	}
	m.lastPitch.Reviewable = false
	side := req.Side
	pitch := *m.lastPitch
	return Outcome{
		Kind:       OutcomeChallengeResolved,
		Pitch:      &pitch,
		Challenger: &side,
		Overturned: overturned,
		Snapshot:   m.snapshot(),
	}
}

func (m *Match) advancePitch(dt float64) []Outcome {
	state, events, remaining, crossed := m.in.AdvanceToPlane(m.ball, dt, m.subSteps, m.zone.PlateZ)
	m.ball = state
	for _, e := range events {
		if e.Kind == physics.EventGroundContact {
			m.bounced = true
		}
	}

	if !crossed {
		m.flight += dt
		if m.in.AtRest(m.ball) || m.flight > MaxPitchFlight || m.ball.Position.Z > physics.MoundDistance {
			return []Outcome{m.call(rules.Ball, nil, false)}
		}
		return nil
	}

	m.flight += dt - remaining
	at := state.Position
	if m.swing != nil {
		if m.swing.live(m.flight) && m.swing.reaches(at) {
			return m.contact(remaining)
		}
		return []Outcome{m.call(rules.Strike, &at, true)}
	}

	if m.bounced {
		return []Outcome{m.call(rules.Ball, &at, false)}
	}
	strike := physics.CheckZone(at, m.zone.Expand(m.umpireMargin))
	return []Outcome{m.call(rules.CallFor(strike), &at, false)}
}

// call settles a pitch with the umpire's call. Only a called pitch that
// crossed the plate without a swing can be reviewed.
func (m *Match) call(c rules.Call, crossing *physics.Vec3, swinging bool) Outcome {
	rec := &PitchRecord{
		Number:     m.pitchNumber,
		Call:       c,
		Crossing:   crossing,
		Swinging:   swinging,
		Bounced:    m.bounced,
		Reviewable: crossing != nil && !swinging && !m.bounced,
	}
	if crossing != nil {
		rec.InZone = physics.CheckZone(*crossing, m.zone)
	}
	if _, err := m.game.ProcessPitch(c); err != nil {
		log.Printf("[MATCH] %s: process pitch %d: %v", m.ID, m.pitchNumber, err)
	}
	m.lastPitch = rec
	m.endPlay()

	pitch := *rec
	return Outcome{Kind: OutcomePitchCalled, Pitch: &pitch, Snapshot: m.snapshot()}
}

func (m *Match) contact(remaining float64) []Outcome {
	at := m.ball.Position
	in := m.swing.input
	m.ball = m.in.ResolveContact(m.ball, in.BatVelocity, in.SwingPlane)
	m.phase = PhaseBattedBall
	m.flight = 0
	m.swing = nil
	m.lastPitch = &PitchRecord{Number: m.pitchNumber, Crossing: &at, Swinging: true}

	exit := m.ball.Velocity
	pitch := *m.lastPitch
	out := []Outcome{{Kind: OutcomeContact, Pitch: &pitch, Exit: &exit, Snapshot: m.snapshot()}}
	if remaining > 0 {
		out = append(out, m.advanceBattedBall(remaining)...)
	}
	return out
}

func (m *Match) endPlay() {
	m.phase = PhaseAwaitingPitch
	m.swing = nil
	m.flight = 0
	m.ball = physics.BallState{}
}

func (m *Match) checkOpen() error {
	if m.status == StatusCompleted || m.status == StatusAbandoned || m.game.Final() {
		return ErrMatchOver
	}
	return nil
}

// Snapshot returns the current state of the match.
func (m *Match) Snapshot() MatchSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

func (m *Match) snapshot() MatchSnapshot {
	s := MatchSnapshot{
		ID:          m.ID,
		Status:      m.status,
		Phase:       m.phase,
		Home:        m.Home.Code,
		Away:        m.Away.Code,
		Stadium:     m.Home.Park.Stadium,
		Game:        m.game.Snapshot(),
		PitchNumber: m.pitchNumber,
		CreatedAt:   m.CreatedAt,
		StartedAt:   m.startedAt,
		CompletedAt: m.completedAt,
	}
	if m.phase == PhasePitchInFlight || m.phase == PhaseBattedBall {
		b := m.ball
		s.Ball = &b
	}
	if m.lastPitch != nil {
		p := *m.lastPitch
		s.LastPitch = &p
	}
	return s
}

// Narrative returns the play-by-play so far.
func (m *Match) Narrative() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.game.Narrative()
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteVec(v physics.Vec3) bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}
