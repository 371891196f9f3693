package main

import (
	"context"
	"fmt"
	"io"

	"github.com/lox/pokr/game"
	"github.com/lox/pokr/internal/bot"
	"github.com/lox/pokr/internal/gameid"
	"github.com/lox/pokr/internal/phh"
	"github.com/lox/pokr/internal/randutil"
	"github.com/lox/pokr/internal/runner"
	"github.com/lox/pokr/poker"
)

type DealCmd struct {
	Seats      int    `short:"n" help:"Number of seats" default:"6"`
	Stack      int    `help:"Starting stack" default:"1000"`
	SmallBlind int    `help:"Small blind" default:"5"`
	BigBlind   int    `help:"Big blind" default:"10"`
	Strategy   string `short:"s" help:"Strategy for every seat" default:"random" enum:"fold,call,random,aggressive,tight,chart"`
	Seed       *int64 `help:"Random seed for reproducible results"`
	PHH        bool   `name:"phh" help:"Print the hand in PHH format"`
}

func (c *DealCmd) Run(globals *Globals) error {
	seed := randutil.TimeSeed()
	if c.Seed != nil {
		seed = *c.Seed
	}

	settings, err := game.NewSettings(c.Seats, c.Stack, game.WithBlinds(c.SmallBlind, c.BigBlind))
	if err != nil {
		return err
	}
	ids := gameid.NewGenerator(globals.Clock, randutil.New(randutil.Derive(seed, 0)))
	g, err := game.New(settings, game.WithSeed(seed), game.WithLogger(globals.Logger), game.WithHandIDs(ids))
	if err != nil {
		return err
	}

	agents := make([]bot.Agent, c.Seats)
	names := make([]string, c.Seats)
	for i := range agents {
		agents[i], err = bot.New(c.Strategy, randutil.New(randutil.Derive(seed, i+1)), globals.Logger)
		if err != nil {
			return err
		}
		names[i] = fmt.Sprintf("%s-%d", c.Strategy, i)
	}

	r, err := runner.New(g, agents, runner.WithLogger(globals.Logger))
	if err != nil {
		return err
	}
	if _, err := r.PlayHand(context.Background()); err != nil {
		return err
	}

	if c.PHH {
		hand, err := phh.FromGame(g, "deal", names)
		if err != nil {
			return err
		}
		return phh.Encode(globals.Out, hand)
	}
	printHand(globals.Out, g, names)
	return nil
}

func printHand(out io.Writer, g *game.Game, names []string) {
	fmt.Fprintf(out, "%s %s (button seat %d)\n", headerStyle.Render("Hand"), g.HandID(), g.Button())

	for _, s := range g.Seats() {
		line := fmt.Sprintf("  seat %d %-12s %s %6d", s.Index, names[s.Index], poker.FormatCards(s.HoleCards), s.Stack)
		if s.Status == game.SeatFolded {
			line = dimStyle.Render(line + " folded")
		}
		fmt.Fprintln(out, line)
	}

	for _, rec := range g.Log() {
		fmt.Fprintf(out, "  %-8s seat %d %s\n", rec.Stage, rec.Seat, rec.Action)
	}
	if board := g.Board(); len(board) > 0 {
		fmt.Fprintf(out, "%s %s\n", headerStyle.Render("Board"), handStyle.Render(poker.FormatCards(board)))
	}
	for _, shown := range g.Showdown() {
		fmt.Fprintf(out, "  seat %d shows %s: %s\n", shown.Seat, handStyle.Render(poker.FormatCards(shown.Best[:])),
			categoryStyle.Render(shown.Rank.String()))
	}
	for _, award := range g.Results() {
		fmt.Fprintln(out, winStyle.Render(fmt.Sprintf("  seat %d wins %d from pot %d", award.Seat, award.Amount, award.Pot)))
	}
}
