package simulate

import (
	"github.com/okian/xprank/pkg/logger"
)

// Option configures a Generator.
type Option func(*Generator)

// WithSeed fixes the random seed so runs are reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.seed = seed }
}

// WithWorkers sets how many goroutines generate matches.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// WithDifficulties restricts generated matches to the given keys.
func WithDifficulties(keys ...string) Option {
	return func(g *Generator) {
		if len(keys) > 0 {
			g.difficulties = append([]string(nil), keys...)
		}
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}
