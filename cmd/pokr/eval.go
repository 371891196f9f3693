package main

import (
	"fmt"
	"strings"

	"github.com/lox/pokr/poker"
)

type EvalCmd struct {
	Cards []string `arg:"" help:"Five to seven cards, e.g. 'AsKs' 'Qs Js Ts'"`
}

func (c *EvalCmd) Run(globals *Globals) error {
	cards, err := poker.ParseCards(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}
	rank, best, err := poker.BestHand(cards...)
	if err != nil {
		return err
	}

	fmt.Fprintf(globals.Out, "%s %s\n", headerStyle.Render("Cards:"), handStyle.Render(poker.FormatCards(cards)))
	fmt.Fprintf(globals.Out, "%s %s\n", headerStyle.Render("Hand: "), categoryStyle.Render(rank.String()))
	fmt.Fprintf(globals.Out, "%s %s\n", headerStyle.Render("Best: "), handStyle.Render(poker.FormatCards(best[:])))
	return nil
}
