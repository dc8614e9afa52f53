package ledger

import "errors"

// Sentinel kinds for ledger errors.
var (
	ErrNotFound      = errors.New("player not found")
	ErrInvalidLimit  = errors.New("invalid leaderboard limit")
	ErrEmptyPlayerID = errors.New("player id must not be empty")
)
