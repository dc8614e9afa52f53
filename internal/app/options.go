package service

import (
	"github.com/okian/xprank/internal/adapters/ledger"
	"github.com/okian/xprank/internal/domain/dedupe"
	"github.com/okian/xprank/internal/domain/rank"
	"github.com/okian/xprank/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTable replaces the built-in rank ladder.
func WithTable(t *rank.Table) Option {
	return func(s *Service) {
		if t != nil {
			s.table = t
		}
	}
}

// WithDifficulties sets the difficulty multiplier table.
func WithDifficulties(table map[string]float64) Option {
	return func(s *Service) {
		s.difficulties = table
	}
}

// WithLedger sets the store holding cumulative XP.
func WithLedger(l ledger.Store) Option {
	return func(s *Service) {
		if l != nil {
			s.ledger = l
		}
	}
}

// WithDeduper sets the match id deduper.
func WithDeduper(d dedupe.Deduper) Option {
	return func(s *Service) {
		if d != nil {
			s.deduper = d
		}
	}
}

// WithDedupeSize bounds the default deduper. Ignored when WithDeduper is used.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		s.dedupeSize = size
	}
}
