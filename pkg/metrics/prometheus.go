// Package metrics provides Prometheus metrics for rank and XP progression.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// awardBuckets cover single-match awards from a loss on easy up to a long perfect win on nightmare.
var awardBuckets = []float64{25, 50, 100, 150, 200, 300, 400, 600, 800, 1200} //nolint:gochecknoglobals // bucket layout

// Manager owns the progression collectors.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Core progression metrics
	awardsTotal       *prometheus.CounterVec
	awardXP           *prometheus.HistogramVec
	resolutionsTotal  prometheus.Counter
	rankUpsTotal      *prometheus.CounterVec
	unknownDifficulty *prometheus.CounterVec
	matchesApplied    prometheus.Counter
	duplicateMatches  prometheus.Counter
	trackedPlayers    prometheus.Gauge
	replayErrorsTotal *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to keep Go runtime collectors out of exported textfiles.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "xprank",
		subsystem:        "progression",
		histogramBuckets: awardBuckets,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.awardsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "awards_total",
		Help:        "Number of XP awards computed, by difficulty and result",
		ConstLabels: m.constLabels,
	}, []string{"difficulty", "result"})

	m.awardXP = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "award_xp",
		Help:        "Distribution of XP awarded per match",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"difficulty"})

	m.resolutionsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "resolutions_total",
		Help:        "Number of XP to rank resolutions",
		ConstLabels: m.constLabels,
	})

	m.rankUpsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rank_ups_total",
		Help:        "Number of promotions, by rank reached",
		ConstLabels: m.constLabels,
	}, []string{"rank"})

	m.unknownDifficulty = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "unknown_difficulty_total",
		Help:        "Awards computed with an unknown difficulty key (multiplier fell back to 1)",
		ConstLabels: m.constLabels,
	}, []string{"difficulty"})

	m.matchesApplied = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "matches_applied_total",
		Help:        "Matches applied to the in-memory ledger",
		ConstLabels: m.constLabels,
	})

	m.duplicateMatches = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "duplicate_matches_total",
		Help:        "Matches skipped because their id was already applied",
		ConstLabels: m.constLabels,
	})

	m.trackedPlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "tracked_players",
		Help:        "Players currently held in the ledger",
		ConstLabels: m.constLabels,
	})

	m.replayErrorsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "replay_errors_total",
		Help:        "Replay failures by stage",
		ConstLabels: m.constLabels,
	}, []string{"stage"})
}

// RecordAward counts an award and observes its size.
func (m *Manager) RecordAward(difficulty string, won bool, xp int64) {
	result := "loss"
	if won {
		result = "win"
	}
	m.awardsTotal.WithLabelValues(difficulty, result).Inc()
	m.awardXP.WithLabelValues(difficulty).Observe(float64(xp))
}

// RecordResolution counts a rank resolution.
func (m *Manager) RecordResolution() { m.resolutionsTotal.Inc() }

// RecordRankUp counts a promotion into rank.
func (m *Manager) RecordRankUp(rank string) { m.rankUpsTotal.WithLabelValues(rank).Inc() }

// RecordUnknownDifficulty counts a multiplier fallback for key.
func (m *Manager) RecordUnknownDifficulty(key string) {
	m.unknownDifficulty.WithLabelValues(key).Inc()
}

// RecordMatchApplied counts a match written to the ledger.
func (m *Manager) RecordMatchApplied() { m.matchesApplied.Inc() }

// RecordDuplicateMatch counts a skipped duplicate match.
func (m *Manager) RecordDuplicateMatch() { m.duplicateMatches.Inc() }

// UpdateTrackedPlayers sets the ledger size.
func (m *Manager) UpdateTrackedPlayers(n int) { m.trackedPlayers.Set(float64(n)) }

// RecordReplayError counts a replay failure at stage.
func (m *Manager) RecordReplayError(stage string) { m.replayErrorsTotal.WithLabelValues(stage).Inc() }

// RecordAward counts an award on the global manager.
func RecordAward(difficulty string, won bool, xp int64) {
	globalManager.RecordAward(difficulty, won, xp)
}

// RecordResolution counts a resolution on the global manager.
func RecordResolution() { globalManager.RecordResolution() }

// RecordRankUp counts a promotion on the global manager.
func RecordRankUp(rank string) { globalManager.RecordRankUp(rank) }

// RecordUnknownDifficulty counts a multiplier fallback on the global manager.
func RecordUnknownDifficulty(key string) { globalManager.RecordUnknownDifficulty(key) }

// RecordMatchApplied counts an applied match on the global manager.
func RecordMatchApplied() { globalManager.RecordMatchApplied() }

// RecordDuplicateMatch counts a duplicate on the global manager.
func RecordDuplicateMatch() { globalManager.RecordDuplicateMatch() }

// UpdateTrackedPlayers sets the ledger size on the global manager.
func UpdateTrackedPlayers(n int) { globalManager.UpdateTrackedPlayers(n) }

// RecordReplayError counts a replay failure on the global manager.
func RecordReplayError(stage string) { globalManager.RecordReplayError(stage) }

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the global registry in text exposition format to path,
// suitable for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
