package replay_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/xprank/internal/adapters/replay"
	"github.com/okian/xprank/internal/domain/xp"
	. "github.com/smartystreets/goconvey/convey"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matches.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	Convey("Given match log files", t, func() {
		ctx := context.Background()

		Convey("When the log is well formed", func() {
			path := writeLog(t, `
matches:
  - id: m1
    player: ana
    won: true
    difficulty: hard
    health: 62.5
    combos: 3
    perfect: true
    time_bonus: 12
  - {player: bo, difficulty: easy}
`)
			log, err := replay.Load(ctx, path)

			Convey("Then every entry is decoded", func() {
				So(err, ShouldBeNil)
				So(len(log.Matches), ShouldEqual, 2)
				So(log.Matches[0].Outcome(), ShouldResemble, xp.Outcome{
					Won:        true,
					Difficulty: "hard",
					Health:     62.5,
					Combos:     3,
					Perfect:    true,
					TimeBonus:  12,
				})
				So(log.Matches[0].ID, ShouldEqual, "m1")
				So(log.Matches[1].ID, ShouldBeEmpty)
				So(log.Matches[1].Player, ShouldEqual, "bo")
			})
		})

		Convey("When the file is missing", func() {
			_, err := replay.Load(ctx, filepath.Join(t.TempDir(), "nope.yaml"))
			So(errors.Is(err, replay.ErrLoadLog), ShouldBeTrue)
		})

		Convey("When there are no matches", func() {
			_, err := replay.Load(ctx, writeLog(t, "matches: []\n"))
			So(errors.Is(err, replay.ErrEmptyLog), ShouldBeTrue)
		})

		Convey("When an entry has no player", func() {
			_, err := replay.Load(ctx, writeLog(t, "matches:\n  - {id: m1, won: true}\n"))
			So(errors.Is(err, replay.ErrInvalidEntry), ShouldBeTrue)
		})

		Convey("When combos are negative", func() {
			_, err := replay.Load(ctx, writeLog(t, "matches:\n  - {player: ana, combos: -2}\n"))
			So(errors.Is(err, replay.ErrInvalidEntry), ShouldBeTrue)
		})
	})
}

func TestSave(t *testing.T) {
	Convey("Given a match log", t, func() {
		ctx := context.Background()
		in := &replay.Log{Matches: []replay.Entry{
			{ID: "m1", Player: "ana", Won: true, Difficulty: "hard", Health: 62.5, Combos: 3, Perfect: true, TimeBonus: 12},
			{ID: "m2", Player: "bo", Difficulty: "easy"},
		}}

		Convey("When it is saved and loaded back", func() {
			path := filepath.Join(t.TempDir(), "out.yaml")
			err := replay.Save(ctx, path, in)
			So(err, ShouldBeNil)

			out, err := replay.Load(ctx, path)

			Convey("Then the entries survive", func() {
				So(err, ShouldBeNil)
				So(out.Matches, ShouldResemble, in.Matches)
			})
		})

		Convey("When the target directory does not exist", func() {
			err := replay.Save(ctx, filepath.Join(t.TempDir(), "missing", "out.yaml"), in)
			So(errors.Is(err, replay.ErrSaveLog), ShouldBeTrue)
		})
	})
}
