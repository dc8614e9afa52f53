package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/xprank/pkg/logger"
	"github.com/okian/xprank/pkg/metrics"
)

// ReplaySummary reports what a replay changed.
type ReplaySummary struct {
	Applied    int
	Duplicates int
	RankUps    []Progress
}

// Replay records matches in order. Duplicates are counted and skipped; any
// other failure stops the replay and is returned with the summary so far.
func (s *Service) Replay(ctx context.Context, matches []Match) (ReplaySummary, error) {
	var sum ReplaySummary
	for i, m := range matches {
		if err := ctx.Err(); err != nil {
			metrics.RecordReplayError("cancelled")
			return sum, fmt.Errorf("replay cancelled at match %d: %w", i, err)
		}
		p, err := s.Record(ctx, m)
		switch {
		case errors.Is(err, ErrDuplicateMatch):
			sum.Duplicates++
			continue
		case err != nil:
			metrics.RecordReplayError("apply")
			return sum, fmt.Errorf("replay match %d: %w", i, err)
		}
		sum.Applied++
		if p.RankedUp {
			sum.RankUps = append(sum.RankUps, p)
		}
	}
	s.logger.Info(ctx, "replay finished",
		logger.Int("applied", sum.Applied),
		logger.Int("duplicates", sum.Duplicates),
		logger.Int("rank_ups", len(sum.RankUps)),
	)
	return sum, nil
}
