// Package simulate produces synthetic match logs for exercising the
// progression pipeline without real game data.
package simulate

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/okian/xprank/internal/adapters/replay"
	"github.com/okian/xprank/pkg/logger"
	"github.com/okian/xprank/pkg/mathutil"
)

// profile describes how a class of player tends to perform.
type profile struct {
	name      string
	winRate   float64
	healthLo  float64
	healthHi  float64
	maxCombos float64
	perfect   float64
	maxTime   float64
}

// Players are assigned profiles round-robin, so the mix is stable for any seed.
var profiles = []profile{ //nolint:gochecknoglobals // fixed lookup table
	{name: "casual", winRate: 0.35, healthLo: 0, healthHi: 40, maxCombos: 3, perfect: 0.01, maxTime: 10},
	{name: "average", winRate: 0.5, healthLo: 10, healthHi: 70, maxCombos: 6, perfect: 0.05, maxTime: 20},
	{name: "strong", winRate: 0.65, healthLo: 30, healthHi: 90, maxCombos: 10, perfect: 0.12, maxTime: 40},
	{name: "elite", winRate: 0.8, healthLo: 50, healthHi: 100, maxCombos: 15, perfect: 0.25, maxTime: 60},
}

// Generator builds match logs.
type Generator struct {
	seed         int64
	workers      int
	difficulties []string
	logger       logger.Logger
}

// New returns a Generator seeded from the clock unless WithSeed is given.
func New(opts ...Option) *Generator {
	g := &Generator{
		seed:         time.Now().UnixNano(),
		workers:      4,
		difficulties: []string{"easy", "normal", "hard", "nightmare"},
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a log of n matches spread over players players. Each worker
// draws from its own seeded source so the output depends only on the seed.
func (g *Generator) Generate(ctx context.Context, players, n int) (*replay.Log, error) {
	if players <= 0 || n <= 0 {
		return nil, fmt.Errorf("%w: players=%d matches=%d", ErrInvalidConfig, players, n)
	}
	g.logger.Info(ctx, "generating matches",
		logger.Int("players", players),
		logger.Int("matches", n),
		logger.Int("workers", g.workers),
	)

	entries := make([]replay.Entry, n)
	workerCount := min(g.workers, n)
	perWorker := n / workerCount

	type result struct {
		worker int
		err    error
	}
	done := make(chan result, workerCount)

	for w := 0; w < workerCount; w++ {
		start := w * perWorker
		end := start + perWorker
		if w == workerCount-1 {
			end = n
		}
		src := mathutil.NewSource(g.seed + int64(w))
		go func(w, start, end int) {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					done <- result{worker: w, err: err}
					return
				}
				entries[i] = g.entry(src, i, players)
			}
			done <- result{worker: w}
		}(w, start, end)
	}

	for i := 0; i < workerCount; i++ {
		if r := <-done; r.err != nil {
			return nil, fmt.Errorf("%w: worker %d: %w", ErrCancelled, r.worker, r.err)
		}
	}

	g.logger.Info(ctx, "generated matches", logger.Int("count", n))
	return &replay.Log{Matches: entries}, nil
}

func (g *Generator) entry(src *mathutil.Source, i, players int) replay.Entry {
	player := i % players
	p := profiles[player%len(profiles)]

	won := src.Float64() < p.winRate
	health := 0.0
	if won {
		health = math.Round(src.Range(p.healthLo, p.healthHi)*10) / 10
	}
	diff := g.difficulties[int(src.Range(0, float64(len(g.difficulties))))]

	return replay.Entry{
		ID:         uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%d/%d", g.seed, i))).String(),
		Player:     fmt.Sprintf("%s-%03d", p.name, player),
		Won:        won,
		Difficulty: diff,
		Health:     health,
		Combos:     int(src.Range(0, p.maxCombos+1)),
		Perfect:    won && src.Float64() < p.perfect,
		TimeBonus:  math.Floor(src.Range(0, p.maxTime)),
	}
}
