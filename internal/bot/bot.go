package bot

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/pokr/game"
	"github.com/lox/pokr/poker"
)

// Agent makes decisions for one seat. Implementations should return
// promptly once ctx is done; the runner substitutes a passive action for
// late or illegal answers.
type Agent interface {
	MakeDecision(ctx context.Context, view View) game.Action
}

// AgentFunc adapts a function to the Agent interface
type AgentFunc func(ctx context.Context, view View) game.Action

func (f AgentFunc) MakeDecision(ctx context.Context, view View) game.Action {
	return f(ctx, view)
}

// View is everything a seat is allowed to know when it is asked to act
type View struct {
	HandID     string
	Seat       int
	Button     int
	Stage      game.Stage
	HoleCards  []poker.Card
	Board      []poker.Card
	Stack      int
	RoundBet   int
	CurrentBet int
	CallAmount int
	MinRaiseTo int
	MaxRaiseTo int
	Pot        int
	BigBlind   int
	Legal      []game.ActionType
}

// NewView builds the view of the seat whose turn it is. ok is false when no
// decision is pending.
func NewView(g *game.Game) (view View, ok bool) {
	seat, ok := g.CurrentSeat()
	if !ok {
		return View{}, false
	}
	s := g.Seat(seat)

	pot := 0
	for _, p := range g.Pots() {
		pot += p.Amount
	}
	for _, other := range g.Seats() {
		pot += other.RoundBet
	}

	return View{
		HandID:     g.HandID(),
		Seat:       seat,
		Button:     g.Button(),
		Stage:      g.Stage(),
		HoleCards:  s.HoleCards,
		Board:      g.Board(),
		Stack:      s.Stack,
		RoundBet:   s.RoundBet,
		CurrentBet: g.CurrentBet(),
		CallAmount: g.CallAmount(),
		MinRaiseTo: g.MinRaiseTo(),
		MaxRaiseTo: g.MaxRaiseTo(),
		Pot:        pot,
		BigBlind:   g.Settings().BigBlind(),
		Legal:      g.LegalActions(),
	}, true
}

// Can reports whether an action type is legal
func (v View) Can(t game.ActionType) bool {
	return slices.Contains(v.Legal, t)
}

// Passive checks when it is free and folds otherwise
func (v View) Passive() game.Action {
	if v.Can(game.Check) {
		return game.NewCheck()
	}
	return game.NewFold()
}

// CheckOrCall never folds when it can stay in the hand
func (v View) CheckOrCall() game.Action {
	switch {
	case v.Can(game.Check):
		return game.NewCheck()
	case v.Can(game.Call):
		return game.NewCall()
	default:
		return game.NewFold()
	}
}

// RaiseTo bets or raises to amount, clamped into the legal range. When only
// an all-in remains it shoves; when no raise is possible it calls or checks.
func (v View) RaiseTo(amount int) game.Action {
	amount = min(max(amount, v.MinRaiseTo), v.MaxRaiseTo)
	switch {
	case v.Can(game.Bet):
		return game.NewBet(amount)
	case v.Can(game.Raise):
		return game.NewRaise(amount)
	case v.Can(game.AllIn) && v.MaxRaiseTo > v.CurrentBet:
		return game.NewAllIn()
	default:
		return v.CheckOrCall()
	}
}

// Strength evaluates the seat's best hand. ok is false before the flop.
func (v View) Strength() (rank poker.HandRank, ok bool) {
	if len(v.Board) < 3 {
		return 0, false
	}
	cards := append(slices.Clone(v.HoleCards), v.Board...)
	rank, err := poker.Evaluate(cards...)
	if err != nil {
		return 0, false
	}
	return rank, true
}

// logDecision records a decision at debug level and returns it unchanged.
func logDecision(logger *log.Logger, strategy string, view View, action game.Action) game.Action {
	if logger.GetLevel() > log.DebugLevel {
		return action
	}
	kv := []any{
		"strategy", strategy,
		"hand", view.HandID,
		"seat", view.Seat,
		"stage", view.Stage,
		"action", action,
	}
	if rank, ok := view.Strength(); ok {
		kv = append(kv, "strength", rank)
	}
	logger.Debug("Bot decision", kv...)
	return action
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}

// Strategies lists the names accepted by New
var Strategies = []string{"fold", "call", "random", "aggressive", "tight", "chart"}

// New builds an agent by strategy name. rng drives the strategies that
// randomise; each agent should get its own generator.
func New(strategy string, rng *rand.Rand, logger *log.Logger) (Agent, error) {
	switch strategy {
	case "fold":
		return NewFoldBot(logger), nil
	case "call":
		return NewCallBot(logger), nil
	case "random":
		return NewRandBot(rng, logger), nil
	case "aggressive":
		return NewManiacBot(rng, logger), nil
	case "tight":
		return NewTAGBot(rng, logger), nil
	case "chart":
		return NewChartBot(logger), nil
	default:
		return nil, fmt.Errorf("unknown bot strategy %q", strategy)
	}
}
