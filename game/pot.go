package game

import (
	"slices"

	"github.com/lox/pokr/poker"
)

// Pot represents a pot (main or side)
type Pot struct {
	Amount   int
	Eligible []int // Seat numbers eligible for this pot, ascending
}

// Award is a share of a pot paid to a seat at showdown
type Award struct {
	Pot    int
	Seat   int
	Amount int
}

// PotLedger tracks what every seat has put into the middle this hand and
// splits it into a main pot and side pots at each all-in level.
type PotLedger struct {
	contributed []int
	inHand      []bool
	allIn       []bool
	pots        []Pot
}

// NewPotLedger creates an empty ledger for a table
func NewPotLedger(seatCount int) *PotLedger {
	return &PotLedger{
		contributed: make([]int, seatCount),
		inHand:      make([]bool, seatCount),
		allIn:       make([]bool, seatCount),
	}
}

// Sweep collects the seats' round bets and recomputes the pots. The caller
// resets the round bets afterwards.
func (l *PotLedger) Sweep(seats []Seat) {
	for _, s := range seats {
		l.contributed[s.Index] += s.RoundBet
		l.inHand[s.Index] = s.InHand()
		l.allIn[s.Index] = s.Status == SeatAllIn
	}
	l.recompute()
}

// recompute rebuilds the pot list from total contributions. Every all-in
// amount is a level; the chips between two levels form one pot contested by
// the seats still in the hand that reached the upper level.
func (l *PotLedger) recompute() {
	var levels []int
	top := 0
	for i, c := range l.contributed {
		top = max(top, c)
		if l.allIn[i] && c > 0 {
			levels = append(levels, c)
		}
	}
	levels = append(levels, top)
	slices.Sort(levels)
	levels = slices.Compact(levels)

	l.pots = l.pots[:0]
	prev, carry := 0, 0
	for _, level := range levels {
		if level == 0 {
			continue
		}
		pot := Pot{}
		for i, c := range l.contributed {
			pot.Amount += min(c, level) - min(c, prev)
			if l.inHand[i] && c >= level {
				pot.Eligible = append(pot.Eligible, i)
			}
		}
		prev = level
		if pot.Amount == 0 {
			continue
		}
		if len(pot.Eligible) == 0 {
			// Nobody left to contest these chips; they join a neighbouring pot.
			if len(l.pots) > 0 {
				l.pots[len(l.pots)-1].Amount += pot.Amount
			} else {
				carry += pot.Amount
			}
			continue
		}
		pot.Amount += carry
		carry = 0
		l.pots = append(l.pots, pot)
	}
	if carry > 0 && len(l.pots) > 0 {
		l.pots[len(l.pots)-1].Amount += carry
	}
}

// Pots returns a copy of the pots, main pot first
func (l *PotLedger) Pots() []Pot {
	out := make([]Pot, len(l.pots))
	for i, p := range l.pots {
		out[i] = Pot{Amount: p.Amount, Eligible: slices.Clone(p.Eligible)}
	}
	return out
}

// Total returns the chips held by the ledger
func (l *PotLedger) Total() int {
	total := 0
	for _, c := range l.contributed {
		total += c
	}
	return total
}

// Resolve pays out every pot and empties the ledger. Each pot goes to its
// strongest eligible seats; a seat missing from strengths ranks lowest. Ties
// split evenly and odd chips go one at a time to the winners in order, which
// the caller supplies clockwise from the button.
func (l *PotLedger) Resolve(strengths map[int]poker.HandRank, order []int) []Award {
	position := make(map[int]int, len(order))
	for i, seat := range order {
		position[seat] = i
	}

	var awards []Award
	for idx, pot := range l.pots {
		var winners []int
		var best poker.HandRank
		for _, seat := range pot.Eligible {
			rank := strengths[seat]
			switch {
			case len(winners) == 0 || rank > best:
				best = rank
				winners = []int{seat}
			case rank == best:
				winners = append(winners, seat)
			}
		}
		if len(winners) == 0 {
			continue
		}
		slices.SortFunc(winners, func(a, b int) int {
			return position[a] - position[b]
		})

		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)
		for i, seat := range winners {
			amount := share
			if i < remainder {
				amount++
			}
			awards = append(awards, Award{Pot: idx, Seat: seat, Amount: amount})
		}
	}

	clear(l.contributed)
	l.pots = nil
	return awards
}
