package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/pokr/game"
)

// FoldBot folds everything it can, checking when that is free
type FoldBot struct {
	logger *log.Logger
}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: orDiscard(logger)}
}

func (f *FoldBot) MakeDecision(_ context.Context, view View) game.Action {
	return logDecision(f.logger, "fold", view, f.decide(view))
}

func (f *FoldBot) decide(view View) game.Action {
	return view.Passive()
}
