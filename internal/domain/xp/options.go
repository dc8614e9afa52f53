package xp

import "github.com/okian/xprank/pkg/logger"

// Option applies a configuration option to the Formula.
type Option func(*Formula)

// WithDifficulties replaces the multiplier table. Non-positive multipliers are dropped.
// An empty map leaves the built-in table in place.
func WithDifficulties(table map[string]float64) Option {
	return func(f *Formula) {
		if len(table) == 0 {
			return
		}
		f.difficulties = make(map[string]float64, len(table))
		for k, v := range table {
			if v > 0 {
				f.difficulties[k] = v
			}
		}
	}
}

// WithLogger sets the logger used to report unknown difficulties.
func WithLogger(l logger.Logger) Option {
	return func(f *Formula) {
		if l != nil {
			f.logger = l
		}
	}
}
