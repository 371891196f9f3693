// Package game implements a No-Limit Texas Hold'em table.
//
// The main type is Game, which deals hands for a fixed set of seats and
// applies one decision at a time from whichever seat is due to act.
//
// # Basic Usage
//
//	settings, err := game.NewSettings(3, 1000)
//	if err != nil {
//	    return err // wraps game.ErrInvalidConfiguration
//	}
//	g, _ := game.New(settings, game.WithSeed(42))
//	for !g.IsComplete() {
//	    seat, _ := g.CurrentSeat()
//	    if err := g.PlayTurnFor(seat, game.NewCall()); err != nil {
//	        _ = g.PlayTurn(game.NewCheck())
//	    }
//	}
//	_ = g.NextHand()
//
// # Deterministic Testing
//
// Shuffling always goes through an injected random source. Use WithSeed or
// WithRand for reproducible hands, or WithDeck to deal a stacked deck.
//
// # Architecture
//
// Game delegates to specialised components:
//   - PotLedger: collects round bets and splits main and side pots
//   - poker.Deck: provides shuffled cards from the injected RNG
//   - poker.BestHand: ranks each seat's best five cards at showdown
//
// A Game is owned by a single goroutine. Tables that run concurrently each
// get their own Game.
package game
