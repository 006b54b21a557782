package rules

import (
	"fmt"
	"strings"
)

// GameState is the discrete state of one match: inning, count, outs, runners,
// score and challenge budgets. It is not safe for concurrent use; the owner
// must serialize every call.
type GameState struct {
	settings Settings

	inning    int
	half      Half
	score     [2]int
	outs      int
	count     Count
	runners   Runners
	lineScore [2][]int
	final     bool

	challenges [2]int
	pending    *ChallengeRequest
	last       *calledPitch

	plays []Play
}

// frame is the rewindable part of the state. Budgets are included so a
// rewound side switch takes its extra-inning grant with it; the challenger is
// charged after the rewind.
type frame struct {
	inning    int
	half      Half
	score     [2]int
	outs      int
	count     Count
	runners   Runners
	lineScore [2][]int
	final     bool

	challenges [2]int
}

// calledPitch remembers the most recent call so it can be reviewed.
type calledPitch struct {
	before  frame
	call    Call
	batting Side
	scored  bool

	// plays[0]:plays[1] is the log written by the call itself.
	plays [2]int
}

// NewGameState starts a match in the top of the first inning.
func NewGameState(s Settings) (*GameState, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	g := &GameState{
		settings:   s,
		inning:     1,
		half:       Top,
		challenges: [2]int{s.ChallengesPerGame, s.ChallengesPerGame},
	}
	g.ensureInning()
	return g, nil
}

func (g *GameState) Settings() Settings { return g.settings }
func (g *GameState) Inning() int        { return g.inning }
func (g *GameState) Half() Half         { return g.half }
func (g *GameState) Outs() int          { return g.outs }
func (g *GameState) Count() Count       { return g.count }
func (g *GameState) Runners() Runners   { return g.runners }
func (g *GameState) Final() bool        { return g.final }

func (g *GameState) Score(s Side) int {
	if !s.Valid() {
		return 0
	}
	return g.score[s]
}

func (g *GameState) Challenges(s Side) int {
	if !s.Valid() {
		return 0
	}
	return g.challenges[s]
}

// Batting returns the side at the plate.
func (g *GameState) Batting() Side {
	if g.half == Bottom {
		return Home
	}
	return Away
}

// Fielding returns the side in the field.
func (g *GameState) Fielding() Side {
	return g.Batting().Other()
}

// Pending returns the challenge awaiting resolution, if any.
func (g *GameState) Pending() (ChallengeRequest, bool) {
	if g.pending == nil {
		return ChallengeRequest{}, false
	}
	return *g.pending, true
}

// LastCall returns the most recent call while it is still reviewable.
func (g *GameState) LastCall() (Call, bool) {
	if g.last == nil {
		return "", false
	}
	return g.last.call, true
}

// Winner returns the winning side once the match is complete.
func (g *GameState) Winner() (Side, bool) {
	if !g.final || g.score[Away] == g.score[Home] {
		return 0, false
	}
	if g.score[Home] > g.score[Away] {
		return Home, true
	}
	return Away, true
}

// IsForcePlay reports whether a runner heading to base is forced with the
// current occupancy.
func (g *GameState) IsForcePlay(base int) bool {
	return g.runners.IsForcePlay(base)
}

// ForceAt is the strict form of IsForcePlay.
func (g *GameState) ForceAt(base int) (bool, error) {
	return g.runners.ForceAt(base)
}

// ProcessPitch applies an umpire call. A third strike records an out and a
// fourth ball forces a walk; either way the count resets before returning.
func (g *GameState) ProcessPitch(call Call) (Snapshot, error) {
	if !call.Valid() {
		return g.Snapshot(), ErrInvalidCall
	}
	if g.final {
		return g.Snapshot(), ErrMatchComplete
	}
	if g.pending != nil {
		return g.Snapshot(), ErrChallengePending
	}

	batting := g.Batting()
	before := g.capture()
	runs := g.score[batting]
	logStart := len(g.plays)
	g.applyCall(call)
	g.last = &calledPitch{
		before:  before,
		call:    call,
		batting: batting,
		scored:  g.score[batting] != runs,
		plays:   [2]int{logStart, len(g.plays)},
	}
	return g.Snapshot(), nil
}

func (g *GameState) applyCall(call Call) {
	switch call {
	case Strike:
		g.count.Strikes++
		if g.count.Strikes >= 3 {
			g.recordOut("strikeout")
			return
		}
		g.logf("strike (%s)", g.count)
	case Ball:
		g.count.Balls++
		if g.count.Balls >= 4 {
			g.advanceWalk()
			return
		}
		g.logf("ball (%s)", g.count)
	}
}

// AdvanceWalk puts the batter on first and forces runners along.
func (g *GameState) AdvanceWalk() {
	if g.final {
		return
	}
	g.last = nil
	g.advanceWalk()
}

func (g *GameState) advanceWalk() {
	next, forcedHome := g.runners.walk()
	g.runners = next
	g.count = Count{}
	if forcedHome {
		g.logf("walk, run forced in")
		g.addRuns(g.Batting(), 1)
		return
	}
	g.logf("walk, runners %s", g.runners)
}

// RecordOut adds an out and resets the count. The third out switches sides.
func (g *GameState) RecordOut() {
	if g.final {
		return
	}
	g.last = nil
	g.recordOut("out")
}

func (g *GameState) recordOut(what string) {
	g.outs++
	g.count = Count{}
	if g.outs >= 3 {
		g.logf("%s, side retired", what)
		g.switchSide()
		return
	}
	g.logf("%s, %d %s", what, g.outs, plural(g.outs, "out", "outs"))
}

// HomeRun scores the batter and every runner. It returns the runs scored.
func (g *GameState) HomeRun() int {
	if g.final {
		return 0
	}
	g.last = nil
	runs := 1 + g.runners.Count()
	g.runners = BasesEmpty
	g.count = Count{}
	g.logf("home run, %d %s", runs, plural(runs, "run scores", "runs score"))
	g.addRuns(g.Batting(), runs)
	return runs
}

// SwitchSide ends the half inning.
func (g *GameState) SwitchSide() {
	if g.final {
		return
	}
	g.last = nil
	g.switchSide()
}

func (g *GameState) switchSide() {
	g.outs = 0
	g.runners = BasesEmpty
	g.count = Count{}

	if g.overAfterHalf() {
		g.finish()
		return
	}

	if g.half == Top {
		g.half = Bottom
	} else {
		g.half = Top
		g.inning++
	}
	g.ensureInning()

	batting := g.Batting()
	if g.inning >= g.settings.ExtraInningFrom && g.challenges[batting] == 0 {
		g.challenges[batting] = 1
		g.logf("%s regains a challenge", batting)
	}
}

// overAfterHalf decides the match at the end of a half inning: the home side
// does not bat in the last inning when already ahead, and any later half that
// ends with a leader ends the match.
func (g *GameState) overAfterHalf() bool {
	if g.inning < g.settings.MaxInnings {
		return false
	}
	if g.half == Top {
		return g.score[Home] > g.score[Away]
	}
	return g.score[Home] != g.score[Away]
}

func (g *GameState) addRuns(s Side, n int) {
	if n <= 0 {
		return
	}
	g.score[s] += n
	g.lineScore[s][g.inning-1] += n
	if g.half == Bottom && g.inning >= g.settings.MaxInnings && g.score[Home] > g.score[Away] {
		g.finish()
	}
}

func (g *GameState) finish() {
	g.final = true
	g.pending = nil
	g.logf("final, %s %d %s %d", Away, g.score[Away], Home, g.score[Home])
}

func (g *GameState) ensureInning() {
	s := g.Batting()
	for len(g.lineScore[s]) < g.inning {
		g.lineScore[s] = append(g.lineScore[s], 0)
	}
}

// RequestChallenge queues a review of the most recent call. The batting side
// may challenge strikes and the fielding side balls.
func (g *GameState) RequestChallenge(req ChallengeRequest) error {
	if g.final {
		return ErrMatchComplete
	}
	if !req.Side.Valid() {
		return ErrInvalidSide
	}
	if g.pending != nil {
		return ErrChallengePending
	}
	if g.last == nil {
		return ErrNothingToChallenge
	}
	against := g.last.batting
	if g.last.call == Ball {
		against = against.Other()
	}
	if req.Side != against {
		return ErrWrongSide
	}
	if g.challenges[req.Side] <= 0 {
		return ErrNoChallenges
	}
	if g.last.scored {
		return ErrNotReviewable
	}

	r := req
	g.pending = &r
	g.logf("%s challenges the %s call", req.Side, strings.ToLower(string(g.last.call)))
	return nil
}

// ResolveChallenge settles the pending challenge with the zone verdict. The
// challenger's budget drops by one whatever the outcome. An overturned call
// rewinds to just before the pitch and replays it with the corrected call.
// Without a pending challenge nothing changes and ErrNoPendingChallenge is
// returned.
func (g *GameState) ResolveChallenge(isStrike bool) (Snapshot, error) {
	if g.pending == nil {
		return g.Snapshot(), ErrNoPendingChallenge
	}
	req := *g.pending
	g.pending = nil

	last := g.last
	g.last = nil
	verdict := CallFor(isStrike)
	if last == nil || verdict == last.call {
		g.charge(req.Side)
		g.logf("call stands, %s has %d left", req.Side, g.challenges[req.Side])
		return g.Snapshot(), nil
	}

	g.restore(last.before)
	g.charge(req.Side)
	for i := last.plays[0]; i < last.plays[1]; i++ {
		g.plays[i].Rewound = true
	}
	g.logf("call overturned to %s, %s has %d left", strings.ToLower(string(verdict)), req.Side, g.challenges[req.Side])
	g.applyCall(verdict)
	return g.Snapshot(), nil
}

func (g *GameState) charge(s Side) {
	if g.challenges[s] > 0 {
		g.challenges[s]--
	}
}

func (g *GameState) capture() frame {
	return frame{
		inning:    g.inning,
		half:      g.half,
		score:     g.score,
		outs:      g.outs,
		count:     g.count,
		runners:   g.runners,
		lineScore: [2][]int{cloneInts(g.lineScore[Away]), cloneInts(g.lineScore[Home])},
		final:     g.final,

		challenges: g.challenges,
	}
}

func (g *GameState) restore(f frame) {
	g.inning = f.inning
	g.half = f.half
	g.score = f.score
	g.outs = f.outs
	g.count = f.count
	g.runners = f.runners
	g.lineScore = f.lineScore
	g.final = f.final
	g.challenges = f.challenges
}

// Snapshot copies the state for display.
func (g *GameState) Snapshot() Snapshot {
	s := Snapshot{
		Inning:           g.inning,
		Half:             g.half,
		Batting:          g.Batting(),
		Score:            perSide(g.score),
		Outs:             g.outs,
		Count:            g.count,
		Runners:          g.runners,
		Bases:            g.runners.Bases(),
		Challenges:       perSide(g.challenges),
		ChallengePending: g.pending != nil,
		LineScore:        [2][]int{cloneInts(g.lineScore[Away]), cloneInts(g.lineScore[Home])},
		Final:            g.final,
	}
	if c, ok := g.LastCall(); ok {
		s.LastCall = c
	}
	if w, ok := g.Winner(); ok {
		s.Winner = &w
	}
	return s
}

// Plays returns a copy of the play-by-play log.
func (g *GameState) Plays() []Play {
	out := make([]Play, len(g.plays))
	copy(out, g.plays)
	return out
}

// Narrative renders the play-by-play log, one play per line. The log is
// append-only: plays undone by an overturned call stay in place, marked
// [rewound].
func (g *GameState) Narrative() string {
	var b strings.Builder
	for _, p := range g.plays {
		b.WriteString(p.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *GameState) logf(format string, args ...any) {
	g.plays = append(g.plays, Play{
		Inning: g.inning,
		Half:   g.half,
		Text:   fmt.Sprintf(format, args...),
	})
}

func cloneInts(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
