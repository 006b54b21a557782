package physics

import (
	"math"
	"testing"
)

const tol = 1e-9

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func nearVec(a, b Vec3, eps float64) bool {
	return near(a.X, b.X, eps) && near(a.Y, b.Y, eps) && near(a.Z, b.Z, eps)
}

// vacuum returns constants with no air so only gravity and contact act.
func vacuum() Constants {
	c := DefaultConstants()
	c.AirDensity = 0
	return c
}

func TestStepBelowEpsilonAppliesOnlyGravity(t *testing.T) {
	in := NewIntegrator(DefaultConstants())
	s := BallState{
		Position: NewVec3(0, 5, 0),
		Velocity: NewVec3(0.05, 0, 0.02),
		Spin:     NewVec3(300, 0, 0),
	}
	dt := 1.0 / 240

	if f := in.DragForce(s.Velocity); !f.IsZero() {
		t.Errorf("drag below epsilon = %+v, want zero", f)
	}
	if f := in.MagnusForce(s.Velocity, s.Spin); !f.IsZero() {
		t.Errorf("magnus below epsilon = %+v, want zero", f)
	}

	got := in.Step(s, dt)
	want := NewVec3(0.05, -DefaultGravity*dt, 0.02)
	if !nearVec(got.Velocity, want, tol) {
		t.Errorf("velocity = %+v, want %+v", got.Velocity, want)
	}
}

func TestZeroVelocityHasNoAerodynamicForce(t *testing.T) {
	in := NewIntegrator(DefaultConstants())
	if f := in.DragForce(Vec3{}); !f.IsZero() {
		t.Errorf("drag at rest = %+v", f)
	}
	if f := in.MagnusForce(Vec3{}, NewVec3(100, 0, 0)); !f.IsZero() {
		t.Errorf("magnus at rest = %+v", f)
	}
}

func TestDragOpposesVelocity(t *testing.T) {
	c := DefaultConstants()
	in := NewIntegrator(c)
	v := NewVec3(0, 0, -40)

	f := in.DragForce(v)
	wantMag := 0.5 * c.DragCoefficient * c.AirDensity * c.Area * 40 * 40
	if !near(f.Length(), wantMag, tol) {
		t.Errorf("drag magnitude = %.9f, want %.9f", f.Length(), wantMag)
	}
	if f.Z <= 0 || f.X != 0 || f.Y != 0 {
		t.Errorf("drag should point along +z against the pitch, got %+v", f)
	}
}

func TestMagnusBackspinLiftsPitch(t *testing.T) {
	c := DefaultConstants()
	in := NewIntegrator(c)
	v := NewVec3(0, 0, -40)
	spin := NewVec3(DefaultSpinRPM*RPMToRad, 0, 0)

	f := in.MagnusForce(v, spin)
	if f.Y <= 0 {
		t.Fatalf("backspin should lift, got %+v", f)
	}

	s := c.Radius() * spin.Length() / 40
	wantMag := 0.5 * c.LiftFactor * s * c.AirDensity * c.Area * 40 * 40
	if !near(f.Length(), wantMag, tol) {
		t.Errorf("magnus magnitude = %.9f, want %.9f", f.Length(), wantMag)
	}
}

func TestMagnusSpinAlongVelocityIsZero(t *testing.T) {
	in := NewIntegrator(DefaultConstants())
	// Gyro spin: axis parallel to travel, no lift.
	f := in.MagnusForce(NewVec3(0, 0, -40), NewVec3(0, 0, 50))
	if !f.IsZero() {
		t.Errorf("gyro spin magnus = %+v, want zero", f)
	}
}

func TestStepIsDeterministicAndPure(t *testing.T) {
	in := NewIntegrator(DefaultConstants())
	s := BallState{
		Position: NewVec3(0.1, 1.8, 16.9),
		Velocity: NewVec3(0.3, -1.2, -40),
		Spin:     NewVec3(52, 3, 0),
	}
	orig := s

	a := in.Step(s, 1.0/240)
	b := in.Step(s, 1.0/240)
	if a != b {
		t.Errorf("non-deterministic step: %+v vs %+v", a, b)
	}
	if s != orig {
		t.Errorf("step mutated its input: %+v", s)
	}
	if same := in.Step(s, 0); same != s {
		t.Errorf("zero dt changed the state: %+v", same)
	}
}

func TestSemiImplicitEulerOrder(t *testing.T) {
	in := NewIntegrator(vacuum())
	s := BallState{Position: NewVec3(0, 10, 0), Velocity: NewVec3(1, 2, 3)}
	dt := 0.01

	got := in.Step(s, dt)
	v := NewVec3(1, 2-DefaultGravity*dt, 3)
	p := s.Position.Add(v.Scale(dt))
	if !nearVec(got.Velocity, v, tol) || !nearVec(got.Position, p, tol) {
		t.Errorf("got p=%+v v=%+v, want p=%+v v=%+v", got.Position, got.Velocity, p, v)
	}
}

func TestGroundContactClampsAndDamps(t *testing.T) {
	c := vacuum()
	in := NewIntegrator(c)
	dt := 1.0 / 240
	s := BallState{
		Position: NewVec3(0, c.GroundOffset+0.001, 0),
		Velocity: NewVec3(2, -5, 3),
	}

	got := in.Step(s, dt)
	if got.Position.Y != c.GroundOffset {
		t.Errorf("y = %.6f, want clamp to %.6f", got.Position.Y, c.GroundOffset)
	}
	wantVY := (5 + DefaultGravity*dt) * c.GroundRestitution
	if !near(got.Velocity.Y, wantVY, tol) {
		t.Errorf("vy = %.9f, want %.9f", got.Velocity.Y, wantVY)
	}
	if !near(got.Velocity.X, 2*c.GroundFriction, tol) || !near(got.Velocity.Z, 3*c.GroundFriction, tol) {
		t.Errorf("horizontal velocity = (%.6f, %.6f), want friction applied", got.Velocity.X, got.Velocity.Z)
	}
}

func TestPositionNeverBelowGround(t *testing.T) {
	c := DefaultConstants()
	in := NewIntegrator(c)
	s := BallState{Position: NewVec3(0, 3, 0), Velocity: NewVec3(5, -20, 10), Spin: NewVec3(-80, 0, 0)}
	for i := 0; i < 2000; i++ {
		s = in.Step(s, 1.0/240)
		if s.Position.Y < c.GroundOffset {
			t.Fatalf("step %d: y = %.6f below ground offset %.6f", i, s.Position.Y, c.GroundOffset)
		}
	}
}

func TestBounceHeightsDecay(t *testing.T) {
	c := DefaultConstants()
	in := NewIntegrator(c)
	s := BallState{Position: NewVec3(0, 2, 0)}
	dt := 1.0 / 240

	var apexes []float64
	bounced := false
	peak := s.Position.Y
	for i := 0; i < 240*6; i++ {
		next, grounded := in.step(s, dt)
		if grounded {
			if bounced && peak > c.GroundOffset+0.01 {
				apexes = append(apexes, peak)
			}
			bounced = true
			peak = next.Position.Y
		} else if next.Position.Y > peak {
			peak = next.Position.Y
		}
		s = next
	}

	if len(apexes) < 2 {
		t.Fatalf("expected at least 2 measurable bounces, got %v", apexes)
	}
	for i := 1; i < len(apexes); i++ {
		if apexes[i] >= apexes[i-1] {
			t.Errorf("bounce %d apex %.4f not below bounce %d apex %.4f", i, apexes[i], i-1, apexes[i-1])
		}
	}
	if !in.AtRest(s) {
		t.Errorf("ball should settle after 6 seconds, got %+v", s)
	}
}

func TestResolveContactImpulse(t *testing.T) {
	c := DefaultConstants()
	in := NewIntegrator(c)
	ball := BallState{
		Position: NewVec3(0, 0.8, 0),
		Velocity: NewVec3(0, 0, -40),
		Spin:     NewVec3(52, 0, 0),
	}
	bat := NewVec3(0, 0, 30)
	plane := NewVec3(0, 0.5, 1)

	got := in.ResolveContact(ball, bat, plane)

	// relative = -70, impulse = -(1.55/2)*(-70) = 54.25
	want := NewVec3(0, 0, -40+54.25)
	if !nearVec(got.Velocity, want, tol) {
		t.Errorf("exit velocity = %+v, want %+v", got.Velocity, want)
	}
	if !near(got.Spin.X, -0.5*c.SwingSpinFactor, tol) || got.Spin.Y != 0 || got.Spin.Z != 0 {
		t.Errorf("spin = %+v, want backspin from swing plane", got.Spin)
	}
	if got.Position != ball.Position {
		t.Errorf("contact moved the ball: %+v", got.Position)
	}

	// Uppercut backspin on a ball heading to the mound must lift.
	if f := in.MagnusForce(got.Velocity, got.Spin); f.Y <= 0 {
		t.Errorf("post-contact magnus = %+v, want upward", f)
	}
}

func TestAdvanceRaisesSubSteps(t *testing.T) {
	c := vacuum()
	in := NewIntegrator(c)
	s := BallState{Position: NewVec3(0, 50, 0), Velocity: NewVec3(1, 0, -3)}
	dt := 0.1

	got, _ := in.Advance(s, dt, 1)

	n := int(math.Ceil(dt / c.MaxStep))
	want := s
	for i := 0; i < n; i++ {
		want = in.Step(want, dt/float64(n))
	}
	if !nearVec(got.Position, want.Position, 1e-12) || !nearVec(got.Velocity, want.Velocity, 1e-12) {
		t.Errorf("Advance = %+v, want %d sub-steps result %+v", got, n, want)
	}
}

func TestAdvanceReportsGroundContacts(t *testing.T) {
	in := NewIntegrator(DefaultConstants())
	s := BallState{Position: NewVec3(0, 0.3, 0), Velocity: NewVec3(0, -2, 5)}

	_, events := in.Advance(s, 1.0/5, 4)
	if len(events) == 0 {
		t.Fatal("expected a ground contact event")
	}
	for i, e := range events {
		if e.Kind != EventGroundContact {
			t.Errorf("event %d kind = %s", i, e.Kind)
		}
		if i > 0 && e.Time < events[i-1].Time {
			t.Errorf("events out of order: %v", events)
		}
	}
}

func TestAdvanceToPlaneStopsAtCrossing(t *testing.T) {
	in := NewIntegrator(DefaultConstants())
	s := in.Release(PitchRelease{Power: 1, TopSpeedMPH: 92, Aim: NewVec3(0, 0, -1)})

	frame := 1.0 / 60
	crossed := false
	var events []Event
	var remaining float64
	for i := 0; i < 120 && !crossed; i++ {
		s, events, remaining, crossed = in.AdvanceToPlane(s, frame, 4, PlateFrontZ)
	}
	if !crossed {
		t.Fatalf("pitch never reached the plate, last state %+v", s)
	}
	if !near(s.Position.Z, PlateFrontZ, 1e-9) {
		t.Errorf("crossing z = %.9f, want plate front", s.Position.Z)
	}
	if remaining < 0 || remaining > frame {
		t.Errorf("remaining = %.6f outside [0, frame]", remaining)
	}
	last := events[len(events)-1]
	if last.Kind != EventPlateCrossing || last.At != s.Position {
		t.Errorf("last event = %+v, want plate crossing at %+v", last, s.Position)
	}
	if s.Position.Y >= ReleaseHeight {
		t.Errorf("pitch should drop below release height, y=%.3f", s.Position.Y)
	}
}

func TestReleaseSpeedAndSpin(t *testing.T) {
	in := NewIntegrator(DefaultConstants())

	s := in.Release(PitchRelease{Power: 1, TopSpeedMPH: 100})
	if !near(s.Speed(), 100*MphToMps, tol) {
		t.Errorf("speed = %.6f, want %.6f", s.Speed(), 100*MphToMps)
	}
	if s.Velocity.Z >= 0 {
		t.Errorf("default aim should travel toward the plate, v=%+v", s.Velocity)
	}
	if !near(s.Spin.Length(), DefaultSpinRPM*RPMToRad, tol) || s.Spin.X <= 0 {
		t.Errorf("spin = %+v, want default backspin", s.Spin)
	}
	if s.Position != ReleasePoint() {
		t.Errorf("release point = %+v", s.Position)
	}

	clamped := in.Release(PitchRelease{Power: 3, TopSpeedMPH: 100})
	if !near(clamped.Speed(), s.Speed(), tol) {
		t.Errorf("power above 1 should clamp, speed %.4f", clamped.Speed())
	}
}

func TestConstantsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Constants)
		ok     bool
	}{
		{"defaults", func(c *Constants) {}, true},
		{"zero mass", func(c *Constants) { c.Mass = 0 }, false},
		{"restitution one", func(c *Constants) { c.GroundRestitution = 1 }, false},
		{"friction above one", func(c *Constants) { c.GroundFriction = 1.2 }, false},
		{"friction exactly one", func(c *Constants) { c.GroundFriction = 1 }, true},
		{"bat cor zero", func(c *Constants) { c.BatRestitution = 0 }, false},
		{"no max step", func(c *Constants) { c.MaxStep = 0 }, false},
		{"negative drag", func(c *Constants) { c.DragCoefficient = -0.1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConstants()
			tt.mutate(&c)
			err := c.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestDefaultGroundOffsetIsRadius(t *testing.T) {
	c := DefaultConstants()
	if c.GroundOffset != c.Radius() {
		t.Errorf("GroundOffset = %v, want Radius() = %v exactly", c.GroundOffset, c.Radius())
	}

	// A copy rebuilt field by field, as config does, must compare equal.
	k := DefaultConstants()
	k.GroundOffset = 0
	k.GroundOffset = k.Radius()
	if k != c {
		t.Errorf("rebuilt constants differ:\n%+v\n%+v", k, c)
	}
}
