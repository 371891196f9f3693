package bot

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pokr/game"
	"github.com/lox/pokr/poker"
)

// TAGBot is a tight aggressive bot: it raises premium starting hands and
// strong made hands, and gives up on most others.
type TAGBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewTAGBot creates a new TAGBot instance
func NewTAGBot(rng *rand.Rand, logger *log.Logger) *TAGBot {
	return &TAGBot{rng: rng, logger: orDiscard(logger)}
}

func (t *TAGBot) MakeDecision(_ context.Context, view View) game.Action {
	return logDecision(t.logger, "tight", view, t.decide(view))
}

func (t *TAGBot) decide(view View) game.Action {
	if view.Stage == game.PreFlop {
		if premium(view.HoleCards) {
			return view.RaiseTo(view.CurrentBet + 3*max(view.BigBlind, 1))
		}
	} else if rank, ok := view.Strength(); ok {
		switch {
		case rank.Type() >= poker.TwoPair:
			return view.RaiseTo(view.CurrentBet + view.Pot/2)
		case rank.Type() == poker.Pair:
			return view.CheckOrCall()
		}
	}

	if view.Can(game.Check) {
		return game.NewCheck()
	}
	// 30% call rate with marginal hands
	if view.Can(game.Call) && t.rng.Float64() < 0.3 {
		return game.NewCall()
	}
	return game.NewFold()
}

// premium reports TT+, AK and AQ
func premium(hole []poker.Card) bool {
	if len(hole) != 2 {
		return false
	}
	hi, lo := hole[0].Rank, hole[1].Rank
	if lo > hi {
		hi, lo = lo, hi
	}
	if hi == lo {
		return hi >= poker.Ten
	}
	return hi == poker.Ace && lo >= poker.Queen
}
