package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/pokr/game"
)

// ChartBot implements a simple push-fold pre-flop chart and check/call post-flop
type ChartBot struct {
	logger *log.Logger
}

// NewChartBot creates a new ChartBot instance
func NewChartBot(logger *log.Logger) *ChartBot {
	return &ChartBot{logger: orDiscard(logger)}
}

func (c *ChartBot) MakeDecision(_ context.Context, view View) game.Action {
	return logDecision(c.logger, "chart", view, c.decide(view))
}

func (c *ChartBot) decide(view View) game.Action {
	if view.Stage != game.PreFlop {
		return view.CheckOrCall()
	}

	// Push premium hands when short stacked
	if premium(view.HoleCards) && view.Stack <= 20*max(view.BigBlind, 1) {
		return view.RaiseTo(view.MaxRaiseTo)
	}

	// Limp along cheaply, fold to real raises
	if view.Can(game.Check) {
		return game.NewCheck()
	}
	if view.Can(game.Call) && view.CallAmount <= max(view.BigBlind, 1) {
		return game.NewCall()
	}
	return game.NewFold()
}
