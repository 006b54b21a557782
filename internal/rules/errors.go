package rules

import "errors"

var (
	ErrMatchComplete      = errors.New("match is complete")
	ErrChallengePending   = errors.New("a challenge is awaiting resolution")
	ErrNoPendingChallenge = errors.New("no pending challenge")
	ErrNoChallenges       = errors.New("no challenges remaining")
	ErrNothingToChallenge = errors.New("no called pitch to challenge")
	ErrWrongSide          = errors.New("only the side the call went against may challenge")
	ErrNotReviewable      = errors.New("a call that scored a run cannot be reviewed")
	ErrInvalidCall        = errors.New("call must be BALL or STRIKE")
	ErrInvalidSide        = errors.New("side must be AWAY or HOME")
)
