package game

import "github.com/lox/pokr/poker"

// resolve evaluates the remaining hands and pays out every pot.
func (g *Game) resolve() {
	strengths := make(map[int]poker.HandRank)
	contenders := g.countSeats(Seat.InHand)
	if contenders > 1 {
		for i, s := range g.seats {
			if !s.InHand() {
				continue
			}
			rank, best, err := g.board.BestHand(s.HoleCards)
			if err != nil {
				g.fail("evaluating seat %d: %v", i, err)
			}
			strengths[i] = rank
			g.shown = append(g.shown, ShowdownHand{Seat: i, Rank: rank, Best: best})
			g.logger.Debug("Showdown", "hand", g.handID, "seat", i,
				"cards", poker.FormatCards(s.HoleCards), "rank", rank)
		}
	}

	// Odd chips go to the first winner clockwise from the button.
	n := len(g.seats)
	order := make([]int, n)
	for i := range order {
		order[i] = (g.button + 1 + i) % n
	}

	g.results = g.ledger.Resolve(strengths, order)
	for _, award := range g.results {
		g.seats[award.Seat].Stack += award.Amount
		g.logger.Debug("Award", "hand", g.handID, "pot", award.Pot, "seat", award.Seat, "amount", award.Amount)
	}
	g.stage = Complete
}
