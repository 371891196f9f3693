package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokr/game"
	"github.com/lox/pokr/internal/bot"
)

// DefaultTimeout is the decision budget when none is configured
const DefaultTimeout = 2 * time.Second

// HandResult summarises one finished hand
type HandResult struct {
	HandID     string
	HandNumber int
	Button     int
	Net        []int  // chips won or lost per seat
	Dealt      []bool // seats dealt into the hand
	Showed     []bool // seats that reached showdown
	Pot        int
	Showdown   bool
	Street     game.Stage // furthest street dealt
	Timeouts   int
	Rejected   int
}

// Option configures a Runner
type Option func(*Runner)

// WithTimeout sets how long an agent may think about one decision
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// WithClock sets the clock used for decision timeouts
func WithClock(clock quartz.Clock) Option {
	return func(r *Runner) { r.clock = clock }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// Runner drives a Game by asking each seat's agent for its decisions
type Runner struct {
	game    *game.Game
	agents  []bot.Agent
	timeout time.Duration
	clock   quartz.Clock
	logger  *log.Logger
}

// New creates a runner with one agent per seat
func New(g *game.Game, agents []bot.Agent, opts ...Option) (*Runner, error) {
	if n := g.Settings().SeatCount(); len(agents) != n {
		return nil, fmt.Errorf("%d agents for %d seats", len(agents), n)
	}
	r := &Runner{
		game:    g,
		agents:  agents,
		timeout: DefaultTimeout,
		clock:   quartz.NewReal(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Game returns the table being driven
func (r *Runner) Game() *game.Game { return r.game }

// Run plays up to hands hands, stopping early when fewer than two seats have
// chips left.
func (r *Runner) Run(ctx context.Context, hands int) ([]HandResult, error) {
	var results []HandResult
	for i := 0; i < hands; i++ {
		if i > 0 {
			err := r.game.NextHand()
			if errors.Is(err, game.ErrNotEnoughPlayers) {
				r.logger.Info("Table finished early", "hands", i)
				break
			}
			if err != nil {
				return results, err
			}
		}
		result, err := r.PlayHand(ctx)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// PlayHand plays the current hand to completion.
func (r *Runner) PlayHand(ctx context.Context) (HandResult, error) {
	g := r.game
	n := len(g.Seats())
	result := HandResult{
		HandID:     g.HandID(),
		HandNumber: g.HandNumber(),
		Button:     g.Button(),
		Dealt:      make([]bool, n),
		Showed:     make([]bool, n),
	}
	start := make([]int, n)
	for i, s := range g.Seats() {
		start[i] = s.Stack + s.TotalBet
		result.Dealt[i] = s.Status != game.SeatSittingOut
	}
	for !g.IsComplete() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		timedOut, rejected, err := r.Step(ctx)
		if err != nil {
			return result, err
		}
		if timedOut {
			result.Timeouts++
		}
		if rejected {
			result.Rejected++
		}
	}

	result.Net = make([]int, len(start))
	for i, s := range g.Seats() {
		result.Net[i] = s.Stack - start[i]
	}
	for _, award := range g.Results() {
		result.Pot += award.Amount
	}
	for _, shown := range g.Showdown() {
		result.Showed[shown.Seat] = true
		result.Showdown = true
	}
	switch len(g.Board()) {
	case 0:
		result.Street = game.PreFlop
	case 3:
		result.Street = game.Flop
	case 4:
		result.Street = game.Turn
	default:
		result.Street = game.River
	}

	r.logger.Debug("Hand complete", "hand", result.HandID, "pot", result.Pot,
		"showdown", result.Showdown, "street", result.Street)
	return result, nil
}

// Step asks the current seat for one decision and applies it. A timed-out
// agent checks when that is free and folds otherwise; an illegal answer is
// replaced the same way.
func (r *Runner) Step(ctx context.Context) (timedOut, rejected bool, err error) {
	view, ok := bot.NewView(r.game)
	if !ok {
		return false, false, fmt.Errorf("no decision pending")
	}

	action, timedOut, err := r.decide(ctx, view)
	if err != nil {
		return false, false, err
	}

	if err := r.game.PlayTurnFor(view.Seat, action); err != nil {
		if !errors.Is(err, game.ErrIllegalAction) {
			return timedOut, false, err
		}
		r.logger.Warn("Agent chose an illegal action", "hand", view.HandID, "seat", view.Seat, "error", err)
		if err := r.game.PlayTurnFor(view.Seat, view.Passive()); err != nil {
			return timedOut, true, err
		}
		return timedOut, true, nil
	}
	return timedOut, false, nil
}

func (r *Runner) decide(ctx context.Context, view bot.View) (game.Action, bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	timeoutFired := make(chan struct{})
	timer := r.clock.AfterFunc(r.timeout, func() {
		close(timeoutFired)
	}, "runner", "decision")
	defer timer.Stop()

	decision := make(chan game.Action, 1)
	agent := r.agents[view.Seat]
	go func() {
		decision <- agent.MakeDecision(ctx, view)
	}()

	select {
	case action := <-decision:
		return action, false, nil
	case <-timeoutFired:
		r.logger.Warn("Decision timeout", "hand", view.HandID, "seat", view.Seat, "timeout", r.timeout)
		return view.Passive(), true, nil
	case <-ctx.Done():
		return game.Action{}, false, ctx.Err()
	}
}
