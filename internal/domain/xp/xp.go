// Package xp computes the experience awarded for a single match.
package xp

import (
	"context"
	"math"

	"github.com/okian/xprank/pkg/logger"
	"github.com/okian/xprank/pkg/metrics"
)

// Award components.
const (
	winBase          = 100
	lossBase         = 25
	healthFactor     = 2
	xpPerCombo       = 10
	perfectRoundXP   = 50
	defaultXPMult    = 1.0
	DifficultyNormal = "normal"
)

// Outcome carries the signals of a finished match. Values are not validated.
type Outcome struct {
	Won        bool    `json:"won" koanf:"won"`
	Difficulty string  `json:"difficulty" koanf:"difficulty"`
	Health     float64 `json:"health" koanf:"health"` // expected 0-100
	Combos     int     `json:"combos" koanf:"combos"`
	Perfect    bool    `json:"perfect" koanf:"perfect"`
	TimeBonus  float64 `json:"time_bonus" koanf:"time_bonus"`
}

// Breakdown itemizes an award. Total is the amount to add to cumulative XP.
type Breakdown struct {
	Base       int64
	Health     int64
	Combo      int64
	Perfect    int64
	Time       int64
	Multiplier float64
	// KnownDifficulty is false when the multiplier fell back to 1.
	KnownDifficulty bool
	Total           int64
}

// DefaultDifficulties returns a fresh copy of the built-in multiplier table.
func DefaultDifficulties() map[string]float64 {
	return map[string]float64{
		"easy":           0.75,
		DifficultyNormal: 1.0,
		"hard":           1.5,
		"nightmare":      2.0,
	}
}

// Formula computes match awards against a difficulty multiplier table.
// It is safe for concurrent use; the table is copied at construction.
type Formula struct {
	difficulties map[string]float64
	logger       logger.Logger
}

// NewFormula creates a formula with the built-in difficulties unless overridden.
func NewFormula(opts ...Option) *Formula {
	f := &Formula{
		difficulties: DefaultDifficulties(),
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Multiplier returns the xp multiplier for key and whether key is known.
// Unknown keys yield 1.
func (f *Formula) Multiplier(key string) (float64, bool) {
	m, ok := f.difficulties[key]
	if !ok {
		return defaultXPMult, false
	}
	return m, true
}

// Difficulties returns a copy of the multiplier table.
func (f *Formula) Difficulties() map[string]float64 {
	cp := make(map[string]float64, len(f.difficulties))
	for k, v := range f.difficulties {
		cp[k] = v
	}
	return cp
}

// Breakdown computes every component of the award for o.
// Each component is floored before summing; the sum is multiplied and floored once more.
func (f *Formula) Breakdown(ctx context.Context, o Outcome) Breakdown {
	b := Breakdown{Base: lossBase}
	if o.Won {
		b.Base = winBase
		b.Health = int64(math.Floor(o.Health * healthFactor))
	}
	b.Combo = int64(o.Combos) * xpPerCombo
	if o.Perfect {
		b.Perfect = perfectRoundXP
	}
	if o.TimeBonus > 0 {
		b.Time = int64(math.Floor(o.TimeBonus))
	}

	b.Multiplier, b.KnownDifficulty = f.Multiplier(o.Difficulty)
	if !b.KnownDifficulty {
		f.logger.Warn(ctx, "unknown difficulty; using multiplier 1",
			logger.String("difficulty", o.Difficulty))
		metrics.RecordUnknownDifficulty(o.Difficulty)
	}

	sum := b.Base + b.Health + b.Combo + b.Perfect + b.Time
	b.Total = int64(math.Floor(float64(sum) * b.Multiplier))
	return b
}

// Award returns the XP earned for o.
func (f *Formula) Award(ctx context.Context, o Outcome) int64 {
	b := f.Breakdown(ctx, o)
	metrics.RecordAward(o.Difficulty, o.Won, b.Total)
	return b.Total
}
