package physics

import (
	"errors"
	"fmt"
	"math"
)

// Default physical constants, SI units. These are tunable approximations of a
// regulation baseball in sea-level air, not exact aerodynamics.
const (
	DefaultGravity           = 9.80665
	DefaultAirDensity        = 1.225
	DefaultCircumference     = 0.232
	DefaultMass              = 0.145
	DefaultArea              = 0.00426
	DefaultDragCoefficient   = 0.35
	DefaultLiftFactor        = 1.5 // C_L = k*S, linear fit for typical pitch spin/speed
	DefaultVelocityEpsilon   = 0.1
	DefaultGroundRestitution = 0.5
	DefaultGroundFriction    = 0.9
	DefaultBatRestitution    = 0.55 // wooden bat
	DefaultSwingSpinFactor   = 200.0
	DefaultMaxStep           = 1.0 / 60.0

	MphToMps = 0.44704
	RPMToRad = 2 * math.Pi / 60
)

// Constants holds the process-wide physical configuration. It is passed by
// value and never mutated by the integrator.
type Constants struct {
	Gravity           float64 `json:"gravity"`
	AirDensity        float64 `json:"air_density"`
	Circumference     float64 `json:"circumference"`
	Mass              float64 `json:"mass"`
	Area              float64 `json:"area"`
	DragCoefficient   float64 `json:"drag_coefficient"`
	LiftFactor        float64 `json:"lift_factor"`
	VelocityEpsilon   float64 `json:"velocity_epsilon"`
	GroundOffset      float64 `json:"ground_offset"`
	GroundRestitution float64 `json:"ground_restitution"`
	GroundFriction    float64 `json:"ground_friction"`
	BatRestitution    float64 `json:"bat_restitution"`
	SwingSpinFactor   float64 `json:"swing_spin_factor"`
	MaxStep           float64 `json:"max_step"`
}

// DefaultConstants returns the baseline baseball constants. The ground offset
// is the ball radius so a resting ball sits on the turf.
func DefaultConstants() Constants {
	c := Constants{
		Gravity:           DefaultGravity,
		AirDensity:        DefaultAirDensity,
		Circumference:     DefaultCircumference,
		Mass:              DefaultMass,
		Area:              DefaultArea,
		DragCoefficient:   DefaultDragCoefficient,
		LiftFactor:        DefaultLiftFactor,
		VelocityEpsilon:   DefaultVelocityEpsilon,
		GroundRestitution: DefaultGroundRestitution,
		GroundFriction:    DefaultGroundFriction,
		BatRestitution:    DefaultBatRestitution,
		SwingSpinFactor:   DefaultSwingSpinFactor,
		MaxStep:           DefaultMaxStep,
	}
	c.GroundOffset = c.Radius()
	return c
}

// Radius is the ball radius derived from the circumference.
func (c Constants) Radius() float64 {
	return c.Circumference / (2 * math.Pi)
}

// Validate rejects values that would make the integrator diverge or stop
// modelling a bounce.
func (c Constants) Validate() error {
	if c.Gravity < 0 {
		return errors.New("gravity must not be negative")
	}
	if c.AirDensity < 0 || c.DragCoefficient < 0 || c.LiftFactor < 0 {
		return errors.New("aerodynamic coefficients must not be negative")
	}
	if c.Mass <= 0 {
		return errors.New("mass must be positive")
	}
	if c.Area <= 0 || c.Circumference <= 0 {
		return errors.New("ball dimensions must be positive")
	}
	if c.VelocityEpsilon < 0 || c.GroundOffset < 0 {
		return errors.New("velocity epsilon and ground offset must not be negative")
	}
	if c.GroundRestitution <= 0 || c.GroundRestitution >= 1 {
		return fmt.Errorf("ground restitution %.3f outside (0,1)", c.GroundRestitution)
	}
	if c.GroundFriction <= 0 || c.GroundFriction > 1 {
		return fmt.Errorf("ground friction %.3f outside (0,1]", c.GroundFriction)
	}
	if c.BatRestitution <= 0 || c.BatRestitution >= 1 {
		return fmt.Errorf("bat restitution %.3f outside (0,1)", c.BatRestitution)
	}
	if c.MaxStep <= 0 {
		return errors.New("max step must be positive")
	}
	return nil
}
