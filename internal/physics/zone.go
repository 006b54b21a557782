package physics

import "math"

// ZoneShape selects the strike-zone boundary test.
type ZoneShape string

const (
	ZoneRect    ZoneShape = "rect"
	ZoneEllipse ZoneShape = "ellipse"
)

// Plate and zone dimensions, meters.
const (
	PlateWidth      = 0.4318 // 17 inches
	ZoneBottom      = 0.46
	ZoneTop         = 1.07
	PlateFrontZ     = 0.0
	MoundDistance   = 18.44
	ReleaseHeight   = 1.8
	ReleaseDistance = 16.9 // release point after the pitcher's stride
)

// Zone is the strike zone on the plane z = PlateZ.
type Zone struct {
	CenterX   float64   `json:"center_x"`
	HalfWidth float64   `json:"half_width"`
	Bottom    float64   `json:"bottom"`
	Top       float64   `json:"top"`
	PlateZ    float64   `json:"plate_z"`
	Shape     ZoneShape `json:"shape"`
}

// DefaultZone is the plate width plus one ball radius on each side, since any
// part of the ball touching the zone is a strike.
func DefaultZone(c Constants) Zone {
	return Zone{
		CenterX:   0,
		HalfWidth: PlateWidth/2 + c.Radius(),
		Bottom:    ZoneBottom,
		Top:       ZoneTop,
		PlateZ:    PlateFrontZ,
		Shape:     ZoneRect,
	}
}

// Expand grows (or, with a negative margin, shrinks) the zone on every edge.
func (z Zone) Expand(margin float64) Zone {
	out := z
	out.HalfWidth = math.Max(0, z.HalfWidth+margin)
	out.Bottom = z.Bottom - margin
	out.Top = z.Top + margin
	if out.Top < out.Bottom {
		mid := (z.Top + z.Bottom) / 2
		out.Top, out.Bottom = mid, mid
	}
	return out
}

// CheckZone reports whether the ball position at the plate plane lies inside
// the zone boundary. Only x and y are tested; callers are expected to pass the
// position at the crossing instant, see PlaneCrossing.
func CheckZone(position Vec3, zone Zone) bool {
	dx := position.X - zone.CenterX
	switch zone.Shape {
	case ZoneEllipse:
		halfHeight := (zone.Top - zone.Bottom) / 2
		if zone.HalfWidth <= 0 || halfHeight <= 0 {
			return false
		}
		cy := zone.Bottom + halfHeight
		nx := dx / zone.HalfWidth
		ny := (position.Y - cy) / halfHeight
		return nx*nx+ny*ny <= 1
	default:
		return math.Abs(dx) <= zone.HalfWidth && position.Y >= zone.Bottom && position.Y <= zone.Top
	}
}

// PlaneCrossing interpolates the point where the segment prev->next crosses
// the plane z = planeZ. It returns the point, the fraction t along the segment
// and whether a crossing happened. A segment ending exactly on the plane
// counts; one starting on it does not, so a crossing is never reported twice.
func PlaneCrossing(prev, next Vec3, planeZ float64) (Vec3, float64, bool) {
	d0 := prev.Z - planeZ
	d1 := next.Z - planeZ
	if d0 == 0 || (d0 > 0 && d1 > 0) || (d0 < 0 && d1 < 0) {
		return Vec3{}, 0, false
	}
	t := d0 / (d0 - d1)
	return prev.Lerp(next, t), t, true
}
