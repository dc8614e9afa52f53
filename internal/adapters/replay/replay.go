// Package replay reads match logs so recorded outcomes can be re-applied to a fresh ledger.
package replay

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/xprank/internal/domain/xp"
)

// Entry is one match as written in a log file.
type Entry struct {
	ID         string  `koanf:"id"`
	Player     string  `koanf:"player" validate:"required"`
	Won        bool    `koanf:"won"`
	Difficulty string  `koanf:"difficulty"`
	Health     float64 `koanf:"health"`
	Combos     int     `koanf:"combos" validate:"gte=0"`
	Perfect    bool    `koanf:"perfect"`
	TimeBonus  float64 `koanf:"time_bonus"`
}

// Log is the document layout:
//
//	matches:
//	  - {id: m1, player: ana, won: true, difficulty: hard, health: 62.5, combos: 3}
type Log struct {
	Matches []Entry `koanf:"matches" validate:"dive"`
}

// Outcome converts the entry into formula input.
func (e Entry) Outcome() xp.Outcome {
	return xp.Outcome{
		Won:        e.Won,
		Difficulty: e.Difficulty,
		Health:     e.Health,
		Combos:     e.Combos,
		Perfect:    e.Perfect,
		TimeBonus:  e.TimeBonus,
	}
}

// Load reads and validates the YAML match log at path.
func Load(_ context.Context, path string) (*Log, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadLog, path, err)
	}

	var log Log
	if err := k.UnmarshalWithConf("", &log, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadLog, path, err)
	}
	if len(log.Matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyLog, path)
	}
	if err := validator.New().Struct(&log); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	return &log, nil
}

// logFilePermission is the mode used for written logs.
const logFilePermission = 0o600

// Save writes l to path in the layout Load reads.
func Save(_ context.Context, path string, l *Log) error {
	matches := make([]map[string]any, len(l.Matches))
	for i, e := range l.Matches {
		matches[i] = map[string]any{
			"id":         e.ID,
			"player":     e.Player,
			"won":        e.Won,
			"difficulty": e.Difficulty,
			"health":     e.Health,
			"combos":     e.Combos,
			"perfect":    e.Perfect,
			"time_bonus": e.TimeBonus,
		}
	}
	data, err := yaml.Parser().Marshal(map[string]any{"matches": matches})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveLog, err)
	}
	if err := os.WriteFile(path, data, logFilePermission); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSaveLog, path, err)
	}
	return nil
}
