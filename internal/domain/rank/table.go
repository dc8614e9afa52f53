// Package rank defines the rank ladder and resolves cumulative XP into a standing.
package rank

import (
	"fmt"
	"strings"
)

// Definition describes a single rank on the ladder.
// Icon and Color are display-only and carry no meaning for resolution.
type Definition struct {
	Name  string `json:"name" koanf:"name"`
	MinXP int64  `json:"min_xp" koanf:"min_xp"`
	Icon  string `json:"icon" koanf:"icon"`
	Color string `json:"color" koanf:"color"`
	Tier  int    `json:"tier" koanf:"tier"`
}

// Table is an immutable ladder of rank definitions sorted by MinXP.
type Table struct {
	defs []Definition
}

// defaultDefinitions is the built-in ladder.
var defaultDefinitions = []Definition{ //nolint:gochecknoglobals // process-wide constant ladder
	{Name: "Novice", MinXP: 0, Icon: "🥚", Color: "#9e9e9e", Tier: 1},
	{Name: "Fighter", MinXP: 500, Icon: "🥊", Color: "#8bc34a", Tier: 2},
	{Name: "Warrior", MinXP: 1500, Icon: "⚔️", Color: "#4caf50", Tier: 3},
	{Name: "Veteran", MinXP: 3500, Icon: "🛡️", Color: "#03a9f4", Tier: 4},
	{Name: "Elite", MinXP: 7000, Icon: "💎", Color: "#3f51b5", Tier: 5},
	{Name: "Champion", MinXP: 12000, Icon: "🏆", Color: "#9c27b0", Tier: 6},
	{Name: "Master", MinXP: 20000, Icon: "👑", Color: "#ff9800", Tier: 7},
	{Name: "Grandmaster", MinXP: 35000, Icon: "🔥", Color: "#f44336", Tier: 8},
}

var defaultTable = mustTable(defaultDefinitions) //nolint:gochecknoglobals // built once at start, never mutated

// Default returns the built-in rank ladder.
func Default() *Table {
	return defaultTable
}

// NewTable validates defs and returns a table holding a private copy of them.
// defs must already be in ladder order; they are not sorted.
func NewTable(defs []Definition) (*Table, error) {
	if len(defs) == 0 {
		return nil, ErrEmptyTable
	}
	if defs[0].MinXP != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrFirstThreshold, defs[0].MinXP)
	}

	names := make(map[string]struct{}, len(defs))
	for i, d := range defs {
		if strings.TrimSpace(d.Name) == "" {
			return nil, fmt.Errorf("%w: position %d", ErrMissingRankName, i)
		}
		if _, dup := names[d.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, d.Name)
		}
		names[d.Name] = struct{}{}

		if d.Tier <= 0 {
			return nil, fmt.Errorf("%w: %q has tier %d", ErrTierOrder, d.Name, d.Tier)
		}
		if i == 0 {
			continue
		}
		prev := defs[i-1]
		if d.MinXP <= prev.MinXP {
			return nil, fmt.Errorf("%w: %q (%d) after %q (%d)", ErrThresholdOrder, d.Name, d.MinXP, prev.Name, prev.MinXP)
		}
		if d.Tier <= prev.Tier {
			return nil, fmt.Errorf("%w: %q (%d) after %q (%d)", ErrTierOrder, d.Name, d.Tier, prev.Name, prev.Tier)
		}
	}

	cp := make([]Definition, len(defs))
	copy(cp, defs)
	return &Table{defs: cp}, nil
}

func mustTable(defs []Definition) *Table {
	t, err := NewTable(defs)
	if err != nil {
		panic("rank: invalid built-in table: " + err.Error())
	}
	return t
}

// Len returns the number of ranks.
func (t *Table) Len() int { return len(t.defs) }

// At returns the i-th rank in ascending order. It panics if i is out of range.
func (t *Table) At(i int) Definition { return t.defs[i] }

// All returns a copy of the ladder.
func (t *Table) All() []Definition {
	cp := make([]Definition, len(t.defs))
	copy(cp, t.defs)
	return cp
}

// Max returns the highest rank.
func (t *Table) Max() Definition { return t.defs[len(t.defs)-1] }

// Lookup finds a rank by name.
func (t *Table) Lookup(name string) (Definition, bool) {
	for _, d := range t.defs {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}
