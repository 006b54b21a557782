package game

// MatchStatus represents the lifecycle of a match
type MatchStatus string

const (
	StatusWaiting    MatchStatus = "WAITING"
	StatusInProgress MatchStatus = "IN_PROGRESS"
	StatusCompleted  MatchStatus = "COMPLETED"
	StatusAbandoned  MatchStatus = "ABANDONED"
)

// Phase is where the current play stands.
type Phase string

const (
	PhaseAwaitingPitch Phase = "AWAITING_PITCH"
	PhasePitchInFlight Phase = "PITCH_IN_FLIGHT"
	PhaseBattedBall    Phase = "BATTED_BALL"
	PhaseComplete      Phase = "COMPLETE"
)

// BattedResult classifies a ball put in play.
type BattedResult string

const (
	ResultFoul    BattedResult = "FOUL"
	ResultHomeRun BattedResult = "HOME_RUN"
	ResultOut     BattedResult = "OUT"
)

// OutcomeKind is the type of an event emitted by a match tick or command.
type OutcomeKind string

const (
	OutcomePitchCalled       OutcomeKind = "pitch_called"
	OutcomeContact           OutcomeKind = "contact"
	OutcomeBattedBall        OutcomeKind = "batted_ball"
	OutcomeChallengeResolved OutcomeKind = "challenge_resolved"
	OutcomeMatchOver         OutcomeKind = "match_over"
)
