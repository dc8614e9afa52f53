package replay

import "errors"

// Sentinel kinds for replay errors.
var (
	ErrLoadLog      = errors.New("load match log failed")
	ErrInvalidEntry = errors.New("invalid match log entry")
	ErrEmptyLog     = errors.New("match log has no matches")
	ErrSaveLog      = errors.New("save match log failed")
)
