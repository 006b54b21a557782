package physics

import "math"

// BallState is the kinematic state of a ball in flight.
type BallState struct {
	Position Vec3 `json:"position"` // m
	Velocity Vec3 `json:"velocity"` // m/s
	Spin     Vec3 `json:"spin"`     // rad/s, axis * magnitude
}

// Speed returns |v|.
func (b BallState) Speed() float64 {
	return b.Velocity.Length()
}

// EventKind names something the host needs to react to after a step.
type EventKind string

const (
	EventGroundContact EventKind = "ground_contact"
	EventPlateCrossing EventKind = "plate_crossing"
)

// Event records where and when, within an Advance call, something happened.
type Event struct {
	Kind     EventKind `json:"kind"`
	At       Vec3      `json:"at"`
	Velocity Vec3      `json:"velocity"`
	Time     float64   `json:"time"` // seconds since the start of the Advance call
}

// Integrator advances ball states under drag, Magnus lift, gravity and ground
// contact. It holds only read-only constants, so one Integrator may be shared
// by any number of balls.
type Integrator struct {
	c Constants
}

// NewIntegrator creates an integrator for the given constants.
func NewIntegrator(c Constants) *Integrator {
	return &Integrator{c: c}
}

// Constants returns the integrator's configuration.
func (in *Integrator) Constants() Constants {
	return in.c
}

// DragForce is -1/2*Cd*rho*A*|v|^2 along v. Zero below the velocity epsilon.
func (in *Integrator) DragForce(velocity Vec3) Vec3 {
	speed := velocity.Length()
	if speed < in.c.VelocityEpsilon || speed == 0 {
		return Vec3{}
	}
	mag := 0.5 * in.c.DragCoefficient * in.c.AirDensity * in.c.Area * speed * speed
	return velocity.Scale(-mag / speed)
}

// MagnusForce is the spin-induced lift 1/2*C_L*rho*A*|v|^2 along (w x v), with
// C_L = k*S and S = r|w|/|v|. The linear lift coefficient is an approximation
// that holds for typical pitch and batted-ball spin rates.
func (in *Integrator) MagnusForce(velocity, spin Vec3) Vec3 {
	speed := velocity.Length()
	if speed < in.c.VelocityEpsilon || speed == 0 {
		return Vec3{}
	}
	dir := spin.Cross(velocity).Normalize()
	if dir.IsZero() {
		return Vec3{}
	}
	spinParameter := in.c.Radius() * spin.Length() / speed
	cl := in.c.LiftFactor * spinParameter
	mag := 0.5 * cl * in.c.AirDensity * in.c.Area * speed * speed
	return dir.Scale(mag)
}

// Acceleration sums drag, Magnus and gravity and divides by mass.
func (in *Integrator) Acceleration(s BallState) Vec3 {
	gravity := Vec3{Y: -in.c.Gravity * in.c.Mass}
	net := in.DragForce(s.Velocity).Add(in.MagnusForce(s.Velocity, s.Spin)).Add(gravity)
	return net.Scale(1.0 / in.c.Mass)
}

// Step advances s by dt using semi-implicit Euler and resolves ground
// contact. It is a pure function of (s, dt, constants); callers must keep dt
// at or below MaxStep, see Advance.
func (in *Integrator) Step(s BallState, dt float64) BallState {
	next, _ := in.step(s, dt)
	return next
}

func (in *Integrator) step(s BallState, dt float64) (BallState, bool) {
	if dt <= 0 {
		return s, false
	}

	a := in.Acceleration(s)
	v := s.Velocity.Add(a.Scale(dt))
	p := s.Position.Add(v.Scale(dt))

	grounded := false
	if p.Y < in.c.GroundOffset {
		p.Y = in.c.GroundOffset
		if v.Y < 0 {
			v.Y = -v.Y * in.c.GroundRestitution
			grounded = true
		}
		v.X *= in.c.GroundFriction
		v.Z *= in.c.GroundFriction
	}

	return BallState{Position: p, Velocity: v, Spin: s.Spin}, grounded
}

// ResolveContact applies a bat impulse to the ball. The model projects the
// collision onto the relative velocity (impulse = -(1+COR)/2 * (v_ball - v_bat))
// instead of solving rigid-body contact. Spin is set from the vertical component
// of the swing plane: an upward plane gives backspin for a ball driven toward
// the mound (+z).
func (in *Integrator) ResolveContact(s BallState, batVelocity, swingPlane Vec3) BallState {
	relative := s.Velocity.Sub(batVelocity)
	impulse := relative.Scale(-(1 + in.c.BatRestitution) * 0.5)
	return BallState{
		Position: s.Position,
		Velocity: s.Velocity.Add(impulse),
		Spin:     Vec3{X: -swingPlane.Y * in.c.SwingSpinFactor},
	}
}

// Advance integrates dt in subSteps equal slices, raising the slice count
// until each slice is at most MaxStep, and reports ground contacts in order.
func (in *Integrator) Advance(s BallState, dt float64, subSteps int) (BallState, []Event) {
	if dt <= 0 {
		return s, nil
	}
	n, h := in.slices(dt, subSteps)
	var events []Event
	cur := s
	for i := 0; i < n; i++ {
		next, grounded := in.step(cur, h)
		if grounded {
			events = append(events, groundEvent(next, float64(i+1)*h))
		}
		cur = next
	}
	return cur, events
}

// AdvanceToPlane is Advance that halts when the ball crosses the plane
// z = planeZ. On a crossing the returned state is interpolated to the exact
// crossing instant, the last event is an EventPlateCrossing and remaining is
// the part of dt left unintegrated.
func (in *Integrator) AdvanceToPlane(s BallState, dt float64, subSteps int, planeZ float64) (state BallState, events []Event, remaining float64, crossed bool) {
	if dt <= 0 {
		return s, nil, 0, false
	}
	n, h := in.slices(dt, subSteps)
	cur := s
	for i := 0; i < n; i++ {
		next, grounded := in.step(cur, h)
		elapsed := float64(i) * h

		if at, t, ok := PlaneCrossing(cur.Position, next.Position, planeZ); ok {
			// A bounce inside the crossing slice happened at the slice end, so
			// it is only reported when the crossing is the slice end too.
			if grounded && t == 1 {
				events = append(events, groundEvent(next, elapsed+h))
			}
			crossing := BallState{
				Position: at,
				Velocity: cur.Velocity.Lerp(next.Velocity, t),
				Spin:     cur.Spin,
			}
			events = append(events, Event{
				Kind:     EventPlateCrossing,
				At:       at,
				Velocity: crossing.Velocity,
				Time:     elapsed + t*h,
			})
			return crossing, events, dt - (elapsed + t*h), true
		}
		if grounded {
			events = append(events, groundEvent(next, elapsed+h))
		}
		cur = next
	}
	return cur, events, 0, false
}

func (in *Integrator) slices(dt float64, subSteps int) (int, float64) {
	if subSteps < 1 {
		subSteps = 1
	}
	if in.c.MaxStep > 0 {
		if need := int(math.Ceil(dt / in.c.MaxStep)); need > subSteps {
			subSteps = need
		}
	}
	return subSteps, dt / float64(subSteps)
}

func groundEvent(s BallState, at float64) Event {
	return Event{Kind: EventGroundContact, At: s.Position, Velocity: s.Velocity, Time: at}
}

// AtRest reports whether the ball is on the ground and slower than the
// velocity epsilon.
func (in *Integrator) AtRest(s BallState) bool {
	return s.Position.Y <= in.c.GroundOffset+restTolerance && s.Velocity.Length() < in.c.VelocityEpsilon
}

// restTolerance absorbs the sub-millimetre hop a rolling ball makes between
// ground clamps.
const restTolerance = 1e-3
