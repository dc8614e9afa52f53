// Package service composes the rank ladder, the XP formula and an in-memory
// ledger into the operations used by the CLI.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/xprank/internal/adapters/ledger"
	"github.com/okian/xprank/internal/domain/dedupe"
	"github.com/okian/xprank/internal/domain/rank"
	"github.com/okian/xprank/internal/domain/xp"
	"github.com/okian/xprank/pkg/logger"
	"github.com/okian/xprank/pkg/metrics"
)

// Match is a single outcome credited to a player.
type Match struct {
	ID       string
	PlayerID string
	Outcome  xp.Outcome
}

// Progress describes the effect of one match on a player's standing.
type Progress struct {
	MatchID  string
	PlayerID string
	Award    xp.Breakdown
	Before   rank.Standing
	After    rank.Standing
	RankedUp bool
}

// Ranked is a ledger entry together with its resolved standing.
type Ranked struct {
	ledger.Entry
	Standing rank.Standing
}

// Service implements progression operations. The rank and XP computations are
// pure; only Record touches the ledger and dedupe state.
type Service struct {
	table        *rank.Table
	difficulties map[string]float64
	formula      *xp.Formula
	ledger       ledger.Store
	deduper      dedupe.Deduper
	dedupeSize   int
	logger       logger.Logger
}

// New constructs a Service. Without options it uses the built-in ladder and difficulties.
func New(opts ...Option) *Service {
	s := &Service{
		table:      rank.Default(),
		dedupeSize: 50_000,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.formula = xp.NewFormula(
		xp.WithDifficulties(s.difficulties),
		xp.WithLogger(s.logger.Named("xp")),
	)
	if s.ledger == nil {
		s.ledger = ledger.NewMemoryStore()
	}
	if s.deduper == nil {
		s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	}
	return s
}

// Table returns the rank ladder in use.
func (s *Service) Table() *rank.Table { return s.table }

// Difficulties returns the multiplier table in use.
func (s *Service) Difficulties() map[string]float64 { return s.formula.Difficulties() }

// Resolve returns the standing for cumulative xp.
func (s *Service) Resolve(_ context.Context, cumulative int64) rank.Standing {
	metrics.RecordResolution()
	return s.table.Resolve(cumulative)
}

// Award returns the itemized XP earned for o.
func (s *Service) Award(ctx context.Context, o xp.Outcome) xp.Breakdown {
	b := s.formula.Breakdown(ctx, o)
	metrics.RecordAward(o.Difficulty, o.Won, b.Total)
	return b
}

// Apply computes the standing change from adding the award for o to cumulative.
// It holds no state; the caller stores the new total (Progress.After.XP).
func (s *Service) Apply(ctx context.Context, cumulative int64, o xp.Outcome) Progress {
	award := s.Award(ctx, o)
	return s.progress(ctx, Progress{
		Award:  award,
		Before: s.Resolve(ctx, cumulative),
		After:  s.Resolve(ctx, cumulative+award.Total),
	})
}

// Record credits m to its player's ledger entry. A match id seen before returns
// ErrDuplicateMatch and changes nothing. An empty id is replaced by a new UUID.
func (s *Service) Record(ctx context.Context, m Match) (Progress, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if s.deduper.SeenAndRecord(ctx, m.ID) {
		metrics.RecordDuplicateMatch()
		s.logger.Warn(ctx, "duplicate match skipped",
			logger.String("match_id", m.ID),
			logger.String("player_id", m.PlayerID),
		)
		return Progress{}, fmt.Errorf("%w: %s", ErrDuplicateMatch, m.ID)
	}

	award := s.Award(ctx, m.Outcome)
	before, after, err := s.ledger.Add(ctx, m.PlayerID, award.Total)
	if err != nil {
		s.deduper.Unrecord(ctx, m.ID)
		return Progress{}, fmt.Errorf("%w: match %s: %w", ErrRecordMatch, m.ID, err)
	}
	metrics.RecordMatchApplied()
	metrics.UpdateTrackedPlayers(s.ledger.Count(ctx))

	return s.progress(ctx, Progress{
		MatchID:  m.ID,
		PlayerID: m.PlayerID,
		Award:    award,
		Before:   s.Resolve(ctx, before),
		After:    s.Resolve(ctx, after),
	}), nil
}

// Standing returns the current standing of a tracked player.
func (s *Service) Standing(ctx context.Context, playerID string) (Ranked, error) {
	e, err := s.ledger.Get(ctx, playerID)
	if err != nil {
		return Ranked{}, fmt.Errorf("standing %s: %w", playerID, err)
	}
	return Ranked{Entry: e, Standing: s.Resolve(ctx, e.XP)}, nil
}

// Leaderboard returns the top n players with their standings.
func (s *Service) Leaderboard(ctx context.Context, n int) ([]Ranked, error) {
	entries, err := s.ledger.TopN(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	out := make([]Ranked, len(entries))
	for i, e := range entries {
		out[i] = Ranked{Entry: e, Standing: s.Resolve(ctx, e.XP)}
	}
	return out, nil
}

// GetStats returns counters for the CLI summary.
func (s *Service) GetStats(ctx context.Context) map[string]any {
	return map[string]any{
		"players":      s.ledger.Count(ctx),
		"seenMatches":  s.deduper.Size(),
		"ranks":        s.table.Len(),
		"difficulties": len(s.formula.Difficulties()),
	}
}

func (s *Service) progress(ctx context.Context, p Progress) Progress {
	p.RankedUp = p.After.Current.Tier > p.Before.Current.Tier
	if p.RankedUp {
		metrics.RecordRankUp(p.After.Current.Name)
		s.logger.Info(ctx, "rank up",
			logger.String("player_id", p.PlayerID),
			logger.String("from", p.Before.Current.Name),
			logger.String("to", p.After.Current.Name),
			logger.Int64("xp", p.After.XP),
		)
	}
	return p
}
