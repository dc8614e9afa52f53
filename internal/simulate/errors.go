package simulate

import "errors"

// Sentinel kinds for generator errors.
var (
	ErrInvalidConfig = errors.New("invalid generator config")
	ErrCancelled     = errors.New("generation cancelled")
)
