package teams

import (
	"errors"
	"math"
	"sort"
	"strings"
)

var ErrUnknownTeam = errors.New("unknown team")

const feetToMeters = 0.3048

// FoulLineDeg is the spray angle of the foul lines; 0 is straight to center.
const FoulLineDeg = 45.0

// Park holds the outfield fence distances of a stadium, in feet.
type Park struct {
	Stadium  string `json:"stadium"`
	LeftFt   int    `json:"lf"`
	CenterFt int    `json:"cf"`
	RightFt  int    `json:"rf"`
}

// Team is a club in the registry.
type Team struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	City     string   `json:"city"`
	Color    string   `json:"color"`
	Division string   `json:"division"`
	Park     Park     `json:"park"`
	Jerseys  []string `json:"jerseys"`
}

func (t Team) FullName() string {
	return t.City + " " + t.Name
}

// FenceDistance returns the fence distance in meters at a spray angle in
// degrees, negative toward left field. Distances are interpolated linearly
// between the foul lines and center field; angles past the lines are clamped.
func (p Park) FenceDistance(sprayDeg float64) float64 {
	a := math.Max(-FoulLineDeg, math.Min(FoulLineDeg, sprayDeg))
	cf := float64(p.CenterFt)
	var ft float64
	if a < 0 {
		ft = cf + (float64(p.LeftFt)-cf)*(-a/FoulLineDeg)
	} else {
		ft = cf + (float64(p.RightFt)-cf)*(a/FoulLineDeg)
	}
	return ft * feetToMeters
}

var byCode = func() map[string]Team {
	m := make(map[string]Team, len(registry))
	for _, t := range registry {
		m[t.Code] = t
	}
	return m
}()

// Lookup finds a team by its code, case-insensitively.
func Lookup(code string) (Team, error) {
	t, ok := byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Team{}, ErrUnknownTeam
	}
	return t, nil
}

// All returns every team sorted by code.
func All() []Team {
	out := make([]Team, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
