package rules

import (
	"errors"
	"fmt"
	"strings"
)

// Call is the umpire's verdict on a pitch.
type Call string

const (
	Ball   Call = "BALL"
	Strike Call = "STRIKE"
)

func (c Call) Valid() bool {
	return c == Ball || c == Strike
}

// CallFor maps a zone verdict to a call.
func CallFor(isStrike bool) Call {
	if isStrike {
		return Strike
	}
	return Ball
}

// Half is the half-inning flag.
type Half string

const (
	Top    Half = "TOP"
	Bottom Half = "BOTTOM"
)

// Side is a team. The away side bats in the top half.
type Side int

const (
	Away Side = iota
	Home
)

func (s Side) String() string {
	switch s {
	case Away:
		return "AWAY"
	case Home:
		return "HOME"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == Home {
		return Away
	}
	return Home
}

func (s Side) Valid() bool {
	return s == Away || s == Home
}

func (s Side) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, ErrInvalidSide
	}
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	switch strings.ToUpper(string(b)) {
	case "AWAY":
		*s = Away
	case "HOME":
		*s = Home
	default:
		return ErrInvalidSide
	}
	return nil
}

// Count is balls and strikes in the current plate appearance. Four balls or
// three strikes end the plate appearance in the same call that reaches them,
// so a Count is never observed at those values.
type Count struct {
	Balls   int `json:"balls"`
	Strikes int `json:"strikes"`
}

func (c Count) String() string {
	return fmt.Sprintf("%d-%d", c.Balls, c.Strikes)
}

// PerSide holds one value for each team.
type PerSide struct {
	Away int `json:"away"`
	Home int `json:"home"`
}

func perSide(v [2]int) PerSide {
	return PerSide{Away: v[Away], Home: v[Home]}
}

// Settings are the match-level rule parameters.
type Settings struct {
	MaxInnings        int `json:"max_innings"`
	ChallengesPerGame int `json:"challenges_per_game"`
	ExtraInningFrom   int `json:"extra_inning_from"`
}

func DefaultSettings() Settings {
	return Settings{
		MaxInnings:        9,
		ChallengesPerGame: 2,
		ExtraInningFrom:   10,
	}
}

func (s Settings) Validate() error {
	if s.MaxInnings < 1 {
		return errors.New("max innings must be at least 1")
	}
	if s.ChallengesPerGame < 0 {
		return errors.New("challenges per game must not be negative")
	}
	if s.ExtraInningFrom < 1 {
		return errors.New("extra inning threshold must be at least 1")
	}
	return nil
}

// ChallengeRequest asks for a review of the most recent call. Position is the
// ball position where it crossed the plate and IsStrike the zone verdict there.
type ChallengeRequest struct {
	Side     Side       `json:"side"`
	Position [3]float64 `json:"position"`
	IsStrike bool       `json:"is_strike"`
}

// Play is one line of the play-by-play log.
type Play struct {
	Inning  int    `json:"inning"`
	Half    Half   `json:"half"`
	Text    string `json:"text"`
	// Rewound marks a play undone by an overturned call.
	Rewound bool   `json:"rewound,omitempty"`
}

func (p Play) String() string {
	label := "Top"
	if p.Half == Bottom {
		label = "Bot"
	}
	if p.Rewound {
		return fmt.Sprintf("%s %d: [rewound] %s", label, p.Inning, p.Text)
	}
	return fmt.Sprintf("%s %d: %s", label, p.Inning, p.Text)
}

// Snapshot is a value copy of the game state for display and persistence.
type Snapshot struct {
	Inning           int      `json:"inning"`
	Half             Half     `json:"half"`
	Batting          Side     `json:"batting"`
	Score            PerSide  `json:"score"`
	Outs             int      `json:"outs"`
	Count            Count    `json:"count"`
	Runners          Runners  `json:"runners"`
	Bases            [3]bool  `json:"bases"`
	Challenges       PerSide  `json:"challenges"`
	ChallengePending bool     `json:"challenge_pending"`
	LastCall         Call     `json:"last_call,omitempty"`
	LineScore        [2][]int `json:"line_score"`
	Final            bool     `json:"final"`
	Winner           *Side    `json:"winner,omitempty"`
}
