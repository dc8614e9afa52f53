package rank

import "errors"

// Sentinel kinds for rank table construction errors.
var (
	ErrEmptyTable      = errors.New("rank table is empty")
	ErrFirstThreshold  = errors.New("first rank must start at 0 xp")
	ErrThresholdOrder  = errors.New("rank thresholds must be strictly increasing")
	ErrTierOrder       = errors.New("rank tiers must be positive and strictly increasing")
	ErrDuplicateName   = errors.New("duplicate rank name")
	ErrMissingRankName = errors.New("rank name must not be empty")
)
