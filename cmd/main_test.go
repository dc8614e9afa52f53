package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/xprank/internal/config"
	"github.com/okian/xprank/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newTestCLI(t *testing.T) (*cli, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	c, err := newCLI(config.New(), logger.Nop(), &stdout, &stderr)
	if err != nil {
		t.Fatalf("newCLI: %v", err)
	}
	return c, &stdout, &stderr
}

func TestCLI_Execute(t *testing.T) {
	Convey("Given a CLI with the default configuration", t, func() {
		ctx := context.Background()
		c, stdout, stderr := newTestCLI(t)

		Convey("When no command is given", func() {
			So(c.Execute(ctx, nil), ShouldEqual, exitUsage)
			So(stderr.String(), ShouldContainSubstring, "Usage:")
		})

		Convey("When the command is unknown", func() {
			So(c.Execute(ctx, []string{"dance"}), ShouldEqual, exitUsage)
			So(stderr.String(), ShouldContainSubstring, `unknown command "dance"`)
		})

		Convey("When help is requested", func() {
			So(c.Execute(ctx, []string{"help"}), ShouldEqual, exitOK)
			So(stdout.String(), ShouldContainSubstring, "xprank resolve <xp>")
		})

		Convey("When listing ranks", func() {
			So(c.Execute(ctx, []string{"ranks"}), ShouldEqual, exitOK)
			So(stdout.String(), ShouldContainSubstring, "Novice")
			So(stdout.String(), ShouldContainSubstring, "Grandmaster")
			So(stdout.String(), ShouldContainSubstring, "35000")
		})

		Convey("When listing difficulties", func() {
			So(c.Execute(ctx, []string{"difficulties"}), ShouldEqual, exitOK)
			So(stdout.String(), ShouldContainSubstring, "Nightmare")
			So(stdout.String(), ShouldContainSubstring, "x1.5")
		})

		Convey("When resolving a threshold", func() {
			So(c.Execute(ctx, []string{"resolve", "500"}), ShouldEqual, exitOK)
			So(stdout.String(), ShouldContainSubstring, "Fighter (tier 2)")
			So(stdout.String(), ShouldContainSubstring, "next: Warrior at 1500 (1000 to go)")
		})

		Convey("When resolving past the last threshold", func() {
			So(c.Execute(ctx, []string{"resolve", "40000"}), ShouldEqual, exitOK)
			So(stdout.String(), ShouldContainSubstring, "next: none (max rank)")
		})

		Convey("When the xp argument is not a number", func() {
			So(c.Execute(ctx, []string{"resolve", "lots"}), ShouldEqual, exitUsage)
		})

		Convey("When awarding a hard win", func() {
			code := c.Execute(ctx, []string{"award", "-won", "-difficulty", "hard", "-health", "80", "-combos", "5", "-perfect", "-time", "30", "-xp", "400"})

			Convey("Then the breakdown and rank up are printed", func() {
				So(code, ShouldEqual, exitOK)
				// (100+160+50+50+30)*1.5
				So(stdout.String(), ShouldContainSubstring, "585")
				So(stdout.String(), ShouldContainSubstring, "Hard x1.5")
				So(stdout.String(), ShouldContainSubstring, "rank up: Novice -> Fighter")
			})
		})

		Convey("When awarding with an unknown difficulty", func() {
			So(c.Execute(ctx, []string{"award", "-difficulty", "insane"}), ShouldEqual, exitOK)
			So(stdout.String(), ShouldContainSubstring, "Insane (unknown) x1")
		})

		Convey("When award flags are malformed", func() {
			So(c.Execute(ctx, []string{"award", "-combos", "many"}), ShouldEqual, exitUsage)
		})

		Convey("When replaying a match log", func() {
			path := filepath.Join(t.TempDir(), "matches.yaml")
			So(os.WriteFile(path, []byte(`
matches:
  - {id: m1, player: ana, won: true, difficulty: nightmare, health: 100}
  - {id: m1, player: ana, won: true, difficulty: nightmare, health: 100}
  - {id: m2, player: bo, difficulty: easy}
`), 0o600), ShouldBeNil)

			code := c.Execute(ctx, []string{"replay", path})

			Convey("Then duplicates are skipped and the leaderboard printed", func() {
				So(code, ShouldEqual, exitOK)
				So(stdout.String(), ShouldContainSubstring, "applied 2 matches, skipped 1 duplicates")
				So(stdout.String(), ShouldContainSubstring, "rank up: ana Novice -> Fighter at 600 xp")
				So(stdout.String(), ShouldContainSubstring, "PLAYER")
			})
		})

		Convey("When a generated log is replayed", func() {
			path := filepath.Join(t.TempDir(), "sim.yaml")
			So(c.Execute(ctx, []string{"generate", "-players", "4", "-matches", "60", "-seed", "9", "-out", path}), ShouldEqual, exitOK)
			So(stdout.String(), ShouldContainSubstring, "wrote 60 matches for 4 players")

			stdout.Reset()
			So(c.Execute(ctx, []string{"replay", path}), ShouldEqual, exitOK)
			So(stdout.String(), ShouldContainSubstring, "applied 60 matches, skipped 0 duplicates")
		})

		Convey("When generate is asked for no players", func() {
			So(c.Execute(ctx, []string{"generate", "-players", "0"}), ShouldEqual, exitUsage)
		})

		Convey("When the replay file is missing", func() {
			So(c.Execute(ctx, []string{"replay", filepath.Join(t.TempDir(), "none.yaml")}), ShouldEqual, exitError)
			So(stderr.String(), ShouldContainSubstring, "error:")
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a config file and a metrics textfile path", t, func() {
		dir := t.TempDir()
		cfgPath := filepath.Join(dir, "xprank.yaml")
		metricsPath := filepath.Join(dir, "xprank.prom")
		So(os.WriteFile(cfgPath, []byte(`
log_level: warn
difficulties:
  casual: 0.5
  ranked: 1.25
`), 0o600), ShouldBeNil)
		t.Setenv(config.EnvConfigPath, cfgPath)
		t.Setenv("XPRANK_METRICS_FILE", metricsPath)

		var stdout, stderr bytes.Buffer

		Convey("When difficulties are listed", func() {
			code := run(context.Background(), []string{"difficulties"}, &stdout, &stderr)

			Convey("Then the configured table replaces the defaults", func() {
				So(code, ShouldEqual, exitOK)
				So(stdout.String(), ShouldContainSubstring, "Casual")
				So(stdout.String(), ShouldNotContainSubstring, "Nightmare")
			})

			Convey("Then metrics are exported", func() {
				data, err := os.ReadFile(metricsPath)
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "xprank_progression")
			})
		})
	})

	Convey("Given an invalid config file", t, func() {
		cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
		So(os.WriteFile(cfgPath, []byte("leaderboard_limit: 0\n"), 0o600), ShouldBeNil)
		t.Setenv(config.EnvConfigPath, cfgPath)

		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"ranks"}, &stdout, &stderr)

		So(code, ShouldEqual, exitError)
		So(stderr.String(), ShouldContainSubstring, "failed to load config")
	})
}
