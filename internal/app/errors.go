package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrDuplicateMatch = errors.New("match already recorded")
	ErrRecordMatch    = errors.New("record match failed")
)
