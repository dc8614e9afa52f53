package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("ranks"),
				WithHistogramBuckets([]float64{10, 100}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then collectors are registered under the custom names", func() {
				manager.RecordResolution()
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var names []string
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_ranks_resolutions_total")
			})
		})

		Convey("When empty options are passed", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithNamespace(""), WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "xprank")
				So(manager.histogramBuckets, ShouldResemble, awardBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording awards", func() {
			m.RecordAward("hard", true, 300)
			m.RecordAward("hard", false, 40)
			m.RecordAward("hard", true, 250)

			Convey("Then they are split by result", func() {
				So(testutil.ToFloat64(m.awardsTotal.WithLabelValues("hard", "win")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.awardsTotal.WithLabelValues("hard", "loss")), ShouldEqual, 1)
			})
		})

		Convey("When recording rank ups and fallbacks", func() {
			m.RecordRankUp("Fighter")
			m.RecordUnknownDifficulty("insane")
			m.RecordUnknownDifficulty("insane")

			Convey("Then the labelled counters move", func() {
				So(testutil.ToFloat64(m.rankUpsTotal.WithLabelValues("Fighter")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.unknownDifficulty.WithLabelValues("insane")), ShouldEqual, 2)
			})
		})

		Convey("When recording ledger activity", func() {
			m.RecordMatchApplied()
			m.RecordDuplicateMatch()
			m.UpdateTrackedPlayers(3)
			m.RecordReplayError("load")

			Convey("Then counters and gauges reflect it", func() {
				So(testutil.ToFloat64(m.matchesApplied), ShouldEqual, 1)
				So(testutil.ToFloat64(m.duplicateMatches), ShouldEqual, 1)
				So(testutil.ToFloat64(m.trackedPlayers), ShouldEqual, 3)
				So(testutil.ToFloat64(m.replayErrorsTotal.WithLabelValues("load")), ShouldEqual, 1)
			})
		})
	})
}

func TestGlobalRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		So(func() {
			RecordAward("normal", true, 200)
			RecordResolution()
			RecordRankUp("Warrior")
			RecordUnknownDifficulty("bogus")
			RecordMatchApplied()
			RecordDuplicateMatch()
			UpdateTrackedPlayers(1)
			RecordReplayError("apply")
		}, ShouldNotPanic)

		Convey("When writing a textfile", func() {
			path := filepath.Join(t.TempDir(), "xprank.prom")
			So(WriteTextfile(path), ShouldBeNil)

			Convey("Then it holds the exposition text", func() {
				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(strings.Contains(string(data), "xprank_progression_awards_total"), ShouldBeTrue)
			})
		})

		Convey("When the target directory does not exist", func() {
			err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
			So(err, ShouldNotBeNil)
		})
	})
}
