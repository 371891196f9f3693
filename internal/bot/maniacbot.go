package bot

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pokr/game"
)

// ManiacBot is an extremely aggressive bot that bets and shoves frequently
type ManiacBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewManiacBot creates a new ManiacBot instance
func NewManiacBot(rng *rand.Rand, logger *log.Logger) *ManiacBot {
	return &ManiacBot{rng: rng, logger: orDiscard(logger)}
}

func (m *ManiacBot) MakeDecision(_ context.Context, view View) game.Action {
	return logDecision(m.logger, "aggressive", view, m.decide(view))
}

func (m *ManiacBot) decide(view View) game.Action {
	shortStack := view.Stack <= 20*max(view.BigBlind, 1)

	if view.Can(game.Check) {
		// Maniacs prefer to bet
		if m.rng.Float64() >= 0.85 {
			return game.NewCheck()
		}
		if shortStack || m.rng.Float64() < 0.3 {
			return view.RaiseTo(view.MaxRaiseTo)
		}
		// Use 75% of the raise range
		return view.RaiseTo(view.MinRaiseTo + (view.MaxRaiseTo-view.MinRaiseTo)*3/4)
	}

	// Facing a bet: shove 40%, call 40%, fold the rest
	r := m.rng.Float64()
	switch {
	case r < 0.4 && (view.Can(game.Raise) || view.Can(game.AllIn)):
		return view.RaiseTo(view.MaxRaiseTo)
	case r < 0.8 && view.Can(game.Call):
		return game.NewCall()
	default:
		return game.NewFold()
	}
}
