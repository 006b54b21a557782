package physics

import "testing"

func TestCheckZone(t *testing.T) {
	rect := Zone{HalfWidth: 0.25, Bottom: 0.5, Top: 1.1, Shape: ZoneRect}
	ellipse := rect
	ellipse.Shape = ZoneEllipse

	tests := []struct {
		name string
		pos  Vec3
		zone Zone
		want bool
	}{
		{"rect center", NewVec3(0, 0.8, 0), rect, true},
		{"rect edge", NewVec3(0.25, 0.5, 0), rect, true},
		{"rect outside wide", NewVec3(0.26, 0.8, 0), rect, false},
		{"rect low", NewVec3(0, 0.49, 0), rect, false},
		{"rect high", NewVec3(0, 1.11, 0), rect, false},
		{"rect corner", NewVec3(0.24, 1.09, 0), rect, true},
		{"ellipse center", NewVec3(0, 0.8, 0), ellipse, true},
		{"ellipse corner is out", NewVec3(0.24, 1.09, 0), ellipse, false},
		{"ellipse side", NewVec3(0.25, 0.8, 0), ellipse, true},
		{"ellipse near top", NewVec3(0, 1.09, 0), ellipse, true},
		{"depth ignored", NewVec3(0, 0.8, 3), rect, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckZone(tt.pos, tt.zone); got != tt.want {
				t.Errorf("CheckZone(%+v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestCheckZoneOffCenter(t *testing.T) {
	z := Zone{CenterX: 0.3, HalfWidth: 0.1, Bottom: 0, Top: 1, Shape: ZoneRect}
	if CheckZone(NewVec3(0, 0.5, 0), z) {
		t.Error("x=0 should miss a zone centred at 0.3")
	}
	if !CheckZone(NewVec3(0.35, 0.5, 0), z) {
		t.Error("x=0.35 should hit a zone centred at 0.3")
	}
}

func TestDegenerateEllipseNeverHits(t *testing.T) {
	z := Zone{HalfWidth: 0, Bottom: 0.5, Top: 1, Shape: ZoneEllipse}
	if CheckZone(NewVec3(0, 0.75, 0), z) {
		t.Error("zero-width ellipse should never contain a point")
	}
}

func TestZoneExpand(t *testing.T) {
	z := DefaultZone(DefaultConstants())
	wide := z.Expand(0.02)
	if !near(wide.HalfWidth, z.HalfWidth+0.02, tol) || !near(wide.Bottom, z.Bottom-0.02, tol) || !near(wide.Top, z.Top+0.02, tol) {
		t.Errorf("Expand(0.02) = %+v", wide)
	}

	edge := NewVec3(z.HalfWidth+0.01, 0.8, 0)
	if CheckZone(edge, z) || !CheckZone(edge, wide) {
		t.Error("margin should turn a borderline ball into a strike")
	}

	collapsed := z.Expand(-5)
	if collapsed.HalfWidth != 0 || collapsed.Top != collapsed.Bottom {
		t.Errorf("over-shrunk zone = %+v, want collapsed", collapsed)
	}
}

func TestDefaultZoneIncludesBallRadius(t *testing.T) {
	c := DefaultConstants()
	z := DefaultZone(c)
	if !near(z.HalfWidth, PlateWidth/2+c.Radius(), tol) {
		t.Errorf("half width = %.4f", z.HalfWidth)
	}
	if z.PlateZ != PlateFrontZ {
		t.Errorf("plate z = %.4f", z.PlateZ)
	}
}

func TestPlaneCrossing(t *testing.T) {
	at, frac, ok := PlaneCrossing(NewVec3(0, 1, 0.5), NewVec3(0.2, 0, -0.5), 0)
	if !ok {
		t.Fatal("expected a crossing")
	}
	if !near(frac, 0.5, tol) || !nearVec(at, NewVec3(0.1, 0.5, 0), tol) {
		t.Errorf("crossing = %+v at t=%.3f", at, frac)
	}

	// Sampling at the segment endpoints would call this a ball: the ball is
	// low at both samples but in the zone when it crosses.
	z := Zone{HalfWidth: 0.25, Bottom: 0.5, Top: 1.1, Shape: ZoneRect}
	prev, next := NewVec3(0, 1.2, 0.3), NewVec3(0, 0.4, -0.3)
	at, _, ok = PlaneCrossing(prev, next, 0)
	if !ok || !CheckZone(at, z) {
		t.Errorf("interpolated crossing %+v should be a strike", at)
	}
	if CheckZone(prev, z) || CheckZone(next, z) {
		t.Error("endpoints were expected to fall outside the zone")
	}
}

func TestPlaneCrossingBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		prev, next Vec3
		want       bool
	}{
		{"both in front", NewVec3(0, 1, 2), NewVec3(0, 1, 1), false},
		{"both behind", NewVec3(0, 1, -1), NewVec3(0, 1, -2), false},
		{"ends on plane", NewVec3(0, 1, 1), NewVec3(0, 1, 0), true},
		{"starts on plane", NewVec3(0, 1, 0), NewVec3(0, 1, -1), false},
		{"reverse direction", NewVec3(0, 1, -1), NewVec3(0, 1, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, ok := PlaneCrossing(tt.prev, tt.next, 0); ok != tt.want {
				t.Errorf("crossed = %v, want %v", ok, tt.want)
			}
		})
	}
}
