package pool

import "errors"

var (
	ErrNotConnected     = errors.New("not connected")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrCommentTooLong   = errors.New("comment too long")
	ErrOddsUnavailable  = errors.New("odds unavailable")
	ErrInvalidSeed      = errors.New("pool seed must be positive")
)
