package rules

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidBase is returned for a base number outside 1..3.
var ErrInvalidBase = errors.New("base must be 1, 2 or 3")

// Runners is the base occupancy bitfield: bit i set means a runner on base i+1.
// Only the low three bits are ever set.
type Runners uint8

const (
	OnFirst  Runners = 1 << 0
	OnSecond Runners = 1 << 1
	OnThird  Runners = 1 << 2

	BasesEmpty  Runners = 0
	BasesLoaded Runners = OnFirst | OnSecond | OnThird
)

// Occupied reports whether base (1..3) has a runner.
func (r Runners) Occupied(base int) (bool, error) {
	if base < 1 || base > 3 {
		return false, ErrInvalidBase
	}
	return r&(1<<(base-1)) != 0, nil
}

// Count returns the number of runners on base.
func (r Runners) Count() int {
	n := 0
	for b := r & BasesLoaded; b != 0; b &= b - 1 {
		n++
	}
	return n
}

// Bases returns occupancy of first, second and third.
func (r Runners) Bases() [3]bool {
	return [3]bool{r&OnFirst != 0, r&OnSecond != 0, r&OnThird != 0}
}

// String renders occupied bases as "1-3", or "empty".
func (r Runners) String() string {
	var parts []string
	for base := 1; base <= 3; base++ {
		if r&(1<<(base-1)) != 0 {
			parts = append(parts, strconv.Itoa(base))
		}
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, "-")
}

// walk applies the force-walk shift. It returns the new occupancy and whether
// a runner was forced home. With first base open the batter simply takes
// first; a lone runner on second or third does not move.
func (r Runners) walk() (Runners, bool) {
	switch {
	case r&BasesLoaded == BasesLoaded:
		return BasesLoaded, true
	case r&OnFirst != 0:
		return ((r << 1) | OnFirst) & BasesLoaded, false
	default:
		return (r | OnFirst) & BasesLoaded, false
	}
}

// IsForcePlay reports whether a runner heading to base is forced. Unknown
// bases are never forced; use ForceAt when an invalid base is a caller bug.
func (r Runners) IsForcePlay(base int) bool {
	switch base {
	case 1:
		return true
	case 2:
		return r&OnFirst != 0
	case 3:
		return r&(OnFirst|OnSecond) == OnFirst|OnSecond
	default:
		return false
	}
}

// ForceAt is IsForcePlay that rejects bases outside 1..3.
func (r Runners) ForceAt(base int) (bool, error) {
	if base < 1 || base > 3 {
		return false, ErrInvalidBase
	}
	return r.IsForcePlay(base), nil
}
