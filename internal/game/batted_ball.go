package game

import (
	"math"

	"github.com/playmatatu/ballpark/internal/physics"
	"github.com/playmatatu/ballpark/internal/teams"
)

// Spray returns the horizontal distance from home plate and the spray angle in
// degrees of a landing point, negative toward left field.
func Spray(at physics.Vec3) (distance, deg float64) {
	return math.Hypot(at.X, at.Z), math.Atan2(at.X, at.Z) * 180 / math.Pi
}

// ClassifyLanding decides a batted ball from where it first lands. Anything
// behind the plate or outside the foul lines is foul; a fair ball that carries
// the fence at its spray angle is a home run; the rest are fielded for an out.
func ClassifyLanding(at physics.Vec3, park teams.Park) BattedResult {
	distance, deg := Spray(at)
	if at.Z < 0 || math.Abs(deg) > teams.FoulLineDeg {
		return ResultFoul
	}
	if distance >= park.FenceDistance(deg) {
		return ResultHomeRun
	}
	return ResultOut
}

func (m *Match) advanceBattedBall(dt float64) []Outcome {
	state, events := m.in.Advance(m.ball, dt, m.subSteps)
	m.flight += dt
	for _, e := range events {
		if e.Kind == physics.EventGroundContact {
			return []Outcome{m.land(e.At)}
		}
	}
	m.ball = state
	if m.flight > MaxBattedFlight {
		// Still airborne: judge it from where it is now.
		return []Outcome{m.land(state.Position)}
	}
	return nil
}

func (m *Match) land(at physics.Vec3) Outcome {
	result := ClassifyLanding(at, m.Home.Park)
	distance, deg := Spray(at)

	runs := 0
	switch result {
	case ResultHomeRun:
		runs = m.game.HomeRun()
	case ResultOut:
		m.game.RecordOut()
	}
	m.endPlay()

	landing := at
	return Outcome{
		Kind:      OutcomeBattedBall,
		Result:    result,
		Landing:   &landing,
		DistanceM: distance,
		SprayDeg:  deg,
		Runs:      runs,
		Snapshot:  m.snapshot(),
	}
}
