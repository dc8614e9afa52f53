package rank

import (
	"sort"

	"github.com/okian/xprank/pkg/mathutil"
)

// Standing is the result of resolving cumulative XP against a table.
type Standing struct {
	Current Definition
	// Next is nil once the top rank is reached.
	Next *Definition
	XP   int64
}

// Resolve returns the highest rank whose threshold is <= xp and the lowest
// rank whose threshold is > xp. Reaching a threshold exactly counts as being
// in that rank. Negative xp resolves to the lowest rank.
func (t *Table) Resolve(xp int64) Standing {
	// pos is the number of ranks already reached.
	pos := sort.Search(len(t.defs), func(i int) bool {
		return t.defs[i].MinXP > xp
	})

	st := Standing{XP: xp}
	if pos == 0 {
		st.Current = t.defs[0]
	} else {
		st.Current = t.defs[pos-1]
	}
	if pos < len(t.defs) {
		next := t.defs[pos]
		st.Next = &next
	}
	return st
}

// Resolve resolves xp against the built-in table.
func Resolve(xp int64) Standing {
	return defaultTable.Resolve(xp)
}

// Maxed reports whether the top rank has been reached.
func (s Standing) Maxed() bool { return s.Next == nil }

// ToNext returns the XP still needed for the next rank, or 0 when maxed.
func (s Standing) ToNext() int64 {
	if s.Next == nil {
		return 0
	}
	return s.Next.MinXP - s.XP
}

// Progress returns how far the player is between the current and next
// threshold, in [0,1]. It is 1 when maxed.
func (s Standing) Progress() float64 {
	if s.Next == nil {
		return 1
	}
	span := s.Next.MinXP - s.Current.MinXP
	if span <= 0 {
		return 0
	}
	return mathutil.Clamp(float64(s.XP-s.Current.MinXP)/float64(span), 0, 1)
}
