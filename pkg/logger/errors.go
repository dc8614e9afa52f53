package logger

import "errors"

// Sentinel kinds for logger setup errors.
var (
	ErrInit         = errors.New("logger init failed")
	ErrUnknownLevel = errors.New("unknown log level")
)
