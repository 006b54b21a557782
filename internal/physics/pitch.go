package physics

// PitchRelease describes a pitch at the moment the ball leaves the hand.
type PitchRelease struct {
	Power       float64 `json:"power"`         // 0..1 charge
	TopSpeedMPH float64 `json:"top_speed_mph"` // pitcher's maximum velocity
	Aim         Vec3    `json:"aim"`           // direction of travel, any length
	SpinRPM     float64 `json:"spin_rpm"`
	SpinAxis    Vec3    `json:"spin_axis"` // zero means pure backspin
}

const (
	DefaultSpinRPM     = 500.0
	DefaultTopSpeedMPH = 95.0
)

// ReleasePoint is where a pitch leaves the pitcher's hand.
func ReleasePoint() Vec3 {
	return Vec3{X: 0, Y: ReleaseHeight, Z: ReleaseDistance}
}

// Release builds the ball state for a pitch. Speed is the pitcher's top speed
// scaled by power; a zero aim throws straight at the plate.
func (in *Integrator) Release(p PitchRelease) BallState {
	power := p.Power
	if power < 0 {
		power = 0
	}
	if power > 1 {
		power = 1
	}
	top := p.TopSpeedMPH
	if top <= 0 {
		top = DefaultTopSpeedMPH
	}

	origin := ReleasePoint()
	dir := p.Aim.Normalize()
	if dir.IsZero() {
		dir = Vec3{Z: -1}
	}

	rpm := p.SpinRPM
	if rpm == 0 {
		rpm = DefaultSpinRPM
	}
	axis := p.SpinAxis.Normalize()
	if axis.IsZero() {
		// For a ball travelling toward -z, w along +x gives w x v pointing up.
		axis = Vec3{X: 1}
	}

	return BallState{
		Position: origin,
		Velocity: dir.Scale(top * MphToMps * power),
		Spin:     axis.Scale(rpm * RPMToRad),
	}
}
