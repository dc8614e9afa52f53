package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	service "github.com/okian/xprank/internal/app"
	"github.com/okian/xprank/internal/adapters/replay"
	"github.com/okian/xprank/internal/config"
	"github.com/okian/xprank/internal/domain/rank"
	"github.com/okian/xprank/internal/domain/xp"
	"github.com/okian/xprank/internal/simulate"
	"github.com/okian/xprank/pkg/logger"
)

const usage = `xprank - rank and XP progression calculator

Usage:
  xprank ranks                  list the rank ladder
  xprank difficulties           list difficulty multipliers
  xprank resolve <xp>           show the standing for cumulative xp
  xprank award [flags]          compute the XP for one match
  xprank replay <file.yaml>     apply a match log and print the leaderboard
  xprank generate [flags]       write a synthetic match log

Award flags:
  -won            match was won
  -difficulty     difficulty key (default "normal")
  -health         health remaining, 0-100
  -combos         combos landed
  -perfect        perfect round
  -time           time bonus
  -xp             cumulative xp before the match

Generate flags:
  -players        number of players (default 20)
  -matches        number of matches (default 500)
  -seed           random seed (default: clock)
  -out            output file (default "matches.yaml")

Configuration:
  XPRANK_CONFIG points to a YAML file; XPRANK_* env vars override it.
`

type cli struct {
	cfg    *config.Config
	svc    *service.Service
	log    logger.Logger
	stdout io.Writer
	stderr io.Writer
	title  cases.Caser
}

func newCLI(cfg *config.Config, log logger.Logger, stdout, stderr io.Writer) (*cli, error) {
	table, err := cfg.RankTable()
	if err != nil {
		return nil, err
	}
	svc := service.New(
		service.WithLogger(log),
		service.WithTable(table),
		service.WithDifficulties(cfg.Difficulties),
		service.WithDedupeSize(cfg.DedupeSize),
	)
	return &cli{
		cfg:    cfg,
		svc:    svc,
		log:    log,
		stdout: stdout,
		stderr: stderr,
		title:  cases.Title(language.English),
	}, nil
}

// Execute dispatches args[0] and returns the process exit code.
func (c *cli) Execute(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(c.stderr, usage)
		return exitUsage
	}

	var err error
	switch args[0] {
	case "ranks":
		err = c.ranks()
	case "difficulties":
		err = c.difficulties()
	case "resolve":
		err = c.resolve(ctx, args[1:])
	case "award":
		err = c.award(ctx, args[1:])
	case "replay":
		err = c.replay(ctx, args[1:])
	case "generate":
		err = c.generate(ctx, args[1:])
	case "help", "-h", "-help", "--help":
		fmt.Fprint(c.stdout, usage)
		return exitOK
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		fmt.Fprintln(c.stderr, err)
		fmt.Fprint(c.stderr, usage)
		return exitUsage
	default:
		c.log.Error(ctx, "command failed", logger.String("command", args[0]), logger.Error(err))
		fmt.Fprintln(c.stderr, "error:", err)
		return exitError
	}
}

func (c *cli) ranks() error {
	tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIER\tNAME\tMIN XP\tICON\tCOLOR")
	for _, d := range c.svc.Table().All() {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", d.Tier, d.Name, d.MinXP, d.Icon, d.Color)
	}
	return tw.Flush()
}

func (c *cli) difficulties() error {
	table := c.svc.Difficulties()
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return table[keys[i]] < table[keys[j]] })

	tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tNAME\tMULTIPLIER")
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\tx%g\n", k, c.title.String(k), table[k])
	}
	return tw.Flush()
}

func (c *cli) resolve(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: resolve takes exactly one xp value", errUsage)
	}
	cumulative, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid xp %q", errUsage, args[0])
	}
	c.printStanding(c.svc.Resolve(ctx, cumulative))
	return nil
}

func (c *cli) award(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("award", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		o          xp.Outcome
		cumulative int64
	)
	fs.BoolVar(&o.Won, "won", false, "match was won")
	fs.StringVar(&o.Difficulty, "difficulty", xp.DifficultyNormal, "difficulty key")
	fs.Float64Var(&o.Health, "health", 0, "health remaining")
	fs.IntVar(&o.Combos, "combos", 0, "combos landed")
	fs.BoolVar(&o.Perfect, "perfect", false, "perfect round")
	fs.Float64Var(&o.TimeBonus, "time", 0, "time bonus")
	fs.Int64Var(&cumulative, "xp", 0, "cumulative xp before the match")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	p := c.svc.Apply(ctx, cumulative, o)
	b := p.Award
	difficulty := c.title.String(o.Difficulty)
	if !b.KnownDifficulty {
		difficulty += " (unknown)"
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "base\t%d\n", b.Base)
	fmt.Fprintf(tw, "health\t%d\n", b.Health)
	fmt.Fprintf(tw, "combos\t%d\n", b.Combo)
	fmt.Fprintf(tw, "perfect\t%d\n", b.Perfect)
	fmt.Fprintf(tw, "time\t%d\n", b.Time)
	fmt.Fprintf(tw, "difficulty\t%s x%g\n", difficulty, b.Multiplier)
	fmt.Fprintf(tw, "total\t%d\n", b.Total)
	if err := tw.Flush(); err != nil {
		return err
	}
	c.printStanding(p.After)
	if p.RankedUp {
		fmt.Fprintf(c.stdout, "rank up: %s -> %s\n", p.Before.Current.Name, p.After.Current.Name)
	}
	return nil
}

func (c *cli) replay(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: replay takes exactly one file", errUsage)
	}
	doc, err := replay.Load(ctx, args[0])
	if err != nil {
		return err
	}
	matches := make([]service.Match, len(doc.Matches))
	for i, e := range doc.Matches {
		matches[i] = service.Match{ID: e.ID, PlayerID: e.Player, Outcome: e.Outcome()}
	}

	sum, err := c.svc.Replay(ctx, matches)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "applied %d matches, skipped %d duplicates\n", sum.Applied, sum.Duplicates)
	for _, p := range sum.RankUps {
		fmt.Fprintf(c.stdout, "rank up: %s %s -> %s at %d xp\n", p.PlayerID, p.Before.Current.Name, p.After.Current.Name, p.After.XP)
	}

	board, err := c.svc.Leaderboard(ctx, c.cfg.LeaderboardLimit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPLAYER\tXP\tMATCHES\tRANK\tTO NEXT")
	for i, r := range board {
		toNext := "-"
		if !r.Standing.Maxed() {
			toNext = strconv.FormatInt(r.Standing.ToNext(), 10)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s %s\t%s\n", i+1, r.PlayerID, r.XP, r.Matches, r.Standing.Current.Icon, r.Standing.Current.Name, toNext)
	}
	return tw.Flush()
}

func (c *cli) generate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		players = fs.Int("players", 20, "number of players")
		matches = fs.Int("matches", 500, "number of matches")
		seed    = fs.Int64("seed", time.Now().UnixNano(), "random seed")
		out     = fs.String("out", "matches.yaml", "output file")
	)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	keys := make([]string, 0, len(c.cfg.Difficulties))
	for k := range c.cfg.Difficulties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	gen := simulate.New(
		simulate.WithSeed(*seed),
		simulate.WithDifficulties(keys...),
		simulate.WithLogger(c.log.Named("simulate")),
	)
	doc, err := gen.Generate(ctx, *players, *matches)
	if errors.Is(err, simulate.ErrInvalidConfig) {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if err != nil {
		return err
	}
	if err := replay.Save(ctx, *out, doc); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "wrote %d matches for %d players to %s (seed %d)\n", len(doc.Matches), *players, *out, *seed)
	return nil
}

func (c *cli) printStanding(st rank.Standing) {
	cur := st.Current
	fmt.Fprintf(c.stdout, "xp: %d\n", st.XP)
	fmt.Fprintf(c.stdout, "rank: %s %s (tier %d)\n", cur.Icon, cur.Name, cur.Tier)
	if st.Maxed() {
		fmt.Fprintln(c.stdout, "next: none (max rank)")
		return
	}
	fmt.Fprintf(c.stdout, "next: %s at %d (%d to go)\n", st.Next.Name, st.Next.MinXP, st.ToNext())
	fmt.Fprintf(c.stdout, "progress: %.0f%%\n", st.Progress()*100)
}
