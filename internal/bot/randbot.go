package bot

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pokr/game"
)

// RandBot is a simple bot that makes uniform random legal actions
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: orDiscard(logger)}
}

func (r *RandBot) MakeDecision(_ context.Context, view View) game.Action {
	return logDecision(r.logger, "random", view, r.decide(view))
}

func (r *RandBot) decide(view View) game.Action {
	if len(view.Legal) == 0 {
		return game.NewFold()
	}

	switch t := view.Legal[r.rng.IntN(len(view.Legal))]; t {
	case game.Bet, game.Raise:
		// Any amount between the minimum raise and all-in
		amount := view.MinRaiseTo + r.rng.IntN(view.MaxRaiseTo-view.MinRaiseTo+1)
		return game.Action{Type: t, Amount: amount}
	default:
		return game.Action{Type: t}
	}
}
