package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/pokr/game"
)

// CallBot checks or calls down every hand
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: orDiscard(logger)}
}

func (c *CallBot) MakeDecision(_ context.Context, view View) game.Action {
	return logDecision(c.logger, "call", view, c.decide(view))
}

func (c *CallBot) decide(view View) game.Action {
	return view.CheckOrCall()
}
