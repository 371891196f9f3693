package simulator

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokr/game"
	"github.com/lox/pokr/internal/bot"
	"github.com/lox/pokr/internal/config"
	"github.com/lox/pokr/internal/gameid"
	"github.com/lox/pokr/internal/randutil"
	"github.com/lox/pokr/internal/runner"
	"github.com/lox/pokr/internal/statistics"
)

// Option configures a Simulator
type Option func(*Simulator)

// WithLogger sets the logger; tables log with a "table" prefix
func WithLogger(logger *log.Logger) Option {
	return func(s *Simulator) { s.logger = logger }
}

// WithClock sets the clock used for decision timeouts
func WithClock(clock quartz.Clock) Option {
	return func(s *Simulator) { s.clock = clock }
}

// Simulator plays every configured table concurrently
type Simulator struct {
	config *config.Config
	logger *log.Logger
	clock  quartz.Clock
}

// TableReport is the outcome of one table
type TableReport struct {
	Name      string
	Seed      int64
	Hands     int
	ChipTotal int
	Bots      []string
	Stacks    []int
	Showdowns int
	Timeouts  int
	Rejected  int
}

// Report is the outcome of a whole simulation
type Report struct {
	Seed    int64
	Tables  []TableReport
	Bots    map[string]*statistics.Statistics
	Elapsed time.Duration
}

// BotNames returns the bots in the report, sorted
func (r *Report) BotNames() []string {
	return slices.Sorted(maps.Keys(r.Bots))
}

// Hands returns the total number of hands played
func (r *Report) Hands() int {
	n := 0
	for _, t := range r.Tables {
		n += t.Hands
	}
	return n
}

// New creates a simulator for a validated configuration
func New(cfg *config.Config, opts ...Option) *Simulator {
	s := &Simulator{
		config: cfg,
		logger: log.New(io.Discard),
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type tableOutcome struct {
	report TableReport
	stats  map[string]*statistics.Statistics
}

// Run plays all tables, at most Simulation.Parallel at a time. The first
// table to fail cancels the others.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	seed := randutil.TimeSeed()
	if s.config.Simulation.Seed != nil {
		seed = *s.config.Simulation.Seed
	}
	outcomes := make([]tableOutcome, len(s.config.Tables))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Simulation.Parallel)
	for i, table := range s.config.Tables {
		g.Go(func() error {
			outcome, err := s.playTable(ctx, table, randutil.Derive(seed, i))
			if err != nil {
				return fmt.Errorf("table %s: %w", table.Name, err)
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Seed: seed, Bots: make(map[string]*statistics.Statistics)}
	for _, o := range outcomes {
		report.Tables = append(report.Tables, o.report)
		for name, stats := range o.stats {
			if report.Bots[name] == nil {
				report.Bots[name] = &statistics.Statistics{}
			}
			report.Bots[name].Merge(stats)
		}
	}
	for name, stats := range report.Bots {
		if err := stats.Validate(); err != nil {
			return nil, fmt.Errorf("statistics for %s: %w", name, err)
		}
	}
	report.Elapsed = time.Since(start)
	return report, nil
}

func (s *Simulator) playTable(ctx context.Context, table config.TableConfig, seed int64) (tableOutcome, error) {
	logger := s.logger.WithPrefix(table.Name)

	settings, err := table.Settings()
	if err != nil {
		return tableOutcome{}, err
	}
	ids := gameid.NewGenerator(s.clock, randutil.New(randutil.Derive(seed, 0)))
	g, err := game.New(settings, game.WithSeed(seed), game.WithLogger(logger), game.WithHandIDs(ids))
	if err != nil {
		return tableOutcome{}, err
	}

	lineup := table.Lineup(s.config)
	agents := make([]bot.Agent, len(lineup))
	names := make([]string, len(lineup))
	for seat, b := range lineup {
		rng := randutil.New(randutil.Derive(seed, seat+1))
		agent, err := bot.New(b.Strategy, rng, logger.With("bot", b.Name))
		if err != nil {
			return tableOutcome{}, fmt.Errorf("bot %s: %w", b.Name, err)
		}
		agents[seat] = agent
		names[seat] = b.Name
	}

	r, err := runner.New(g, agents,
		runner.WithTimeout(s.config.DecisionTimeout()),
		runner.WithClock(s.clock),
		runner.WithLogger(logger))
	if err != nil {
		return tableOutcome{}, err
	}

	logger.Info("Starting table", "seats", settings.SeatCount(), "hands", table.Hands, "seed", seed)
	results, err := r.Run(ctx, table.Hands)
	if err != nil {
		return tableOutcome{}, err
	}

	report := TableReport{
		Name:      table.Name,
		Seed:      seed,
		Hands:     len(results),
		ChipTotal: g.ChipTotal(),
		Bots:      names,
	}
	total := 0
	for _, seat := range g.Seats() {
		report.Stacks = append(report.Stacks, seat.Stack)
		total += seat.Stack
	}
	if total != g.ChipTotal() {
		return tableOutcome{}, fmt.Errorf("chips not conserved: %d on the table, expected %d", total, g.ChipTotal())
	}

	for _, res := range results {
		report.Timeouts += res.Timeouts
		report.Rejected += res.Rejected
		if res.Showdown {
			report.Showdowns++
		}
	}
	stats := seatStatistics(results, names, settings.BigBlind())

	logger.Info("Table finished", "hands", report.Hands, "showdowns", report.Showdowns, "timeouts", report.Timeouts)
	return tableOutcome{report: report, stats: stats}, nil
}

// seatStatistics folds hand results into per-bot statistics. Seats that were
// not dealt into a hand do not count it.
func seatStatistics(results []runner.HandResult, names []string, bigBlind int) map[string]*statistics.Statistics {
	bb := float64(max(bigBlind, 1))
	stats := make(map[string]*statistics.Statistics)
	for _, res := range results {
		n := len(res.Net)
		for seat, net := range res.Net {
			if !res.Dealt[seat] {
				continue
			}
			name := names[seat]
			if stats[name] == nil {
				stats[name] = &statistics.Statistics{}
			}
			stats[name].Add(statistics.HandResult{
				NetBB:          float64(net) / bb,
				Position:       (seat - res.Button + n) % n,
				WentToShowdown: res.Showed[seat],
				PotBB:          float64(res.Pot) / bb,
				Street:         res.Street.String(),
			})
		}
	}
	return stats
}

// WriteSummary prints per-bot results in big blinds
func WriteSummary(w io.Writer, report *Report) {
	fmt.Fprintf(w, "Hands played: %d across %d tables (seed %d, %s)\n",
		report.Hands(), len(report.Tables), report.Seed, report.Elapsed.Round(time.Millisecond))

	for _, t := range report.Tables {
		fmt.Fprintf(w, "\nTable %s: %d hands, %d showdowns, %d timeouts\n", t.Name, t.Hands, t.Showdowns, t.Timeouts)
		for seat, name := range t.Bots {
			fmt.Fprintf(w, "  seat %d %-12s %6d chips\n", seat, name, t.Stacks[seat])
		}
	}

	for _, name := range report.BotNames() {
		stats := report.Bots[name]
		low, high := stats.ConfidenceInterval95()
		fmt.Fprintf(w, "\n%s: %d hands\n", name, stats.Hands)
		fmt.Fprintf(w, "  Mean: %.4f bb/hand (%.2f bb/100)\n", stats.Mean(), stats.BBPer100())
		fmt.Fprintf(w, "  Median: %.4f bb/hand, Std Dev: %.4f bb\n", stats.Median(), stats.StdDev())
		fmt.Fprintf(w, "  95%% CI: [%.4f, %.4f] bb/hand\n", low, high)
		fmt.Fprintf(w, "  Wins: %d showdown, %d without showdown\n", stats.ShowdownWins, stats.NonShowdownWins)
		fmt.Fprintf(w, "  Max pot: %.1f bb, big pots (>=50bb): %d\n", stats.MaxPotBB, stats.BigPots)
	}
}
