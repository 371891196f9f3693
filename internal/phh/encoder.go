package phh

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/pokr/game"
	"github.com/lox/pokr/poker"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// FromGame records a complete hand. names labels the seats by index; seats
// without a name are left out of the players list.
func FromGame(g *game.Game, table string, names []string) (*HandHistory, error) {
	if !g.IsComplete() {
		return nil, fmt.Errorf("phh: %w", game.ErrHandInProgress)
	}

	seats := g.Seats()
	n := len(seats)
	hand := &HandHistory{
		Variant:   "NT",
		Table:     table,
		SeatCount: n,
		MinBet:    g.Settings().BigBlind(),
		HandID:    g.HandID(),
	}

	// Players in PHH order: small blind first, the button last except heads-up
	var order []int
	for i := range n {
		if s := seats[(g.Button()+1+i)%n]; s.Status != game.SeatSittingOut {
			order = append(order, s.Index)
		}
	}
	if len(order) == 2 {
		order[0], order[1] = order[1], order[0]
	}
	player := make(map[int]int, len(order))
	for p, seat := range order {
		player[seat] = p + 1
	}

	log := g.Log()
	committed := make([]int, n)
	for _, rec := range log {
		committed[rec.Seat] += rec.Committed
	}
	won := make([]int, n)
	for _, award := range g.Results() {
		won[award.Seat] += award.Amount
	}

	roundBet := make([]int, n)
	for _, seat := range order {
		s := seats[seat]
		blind := s.TotalBet - committed[seat]
		roundBet[seat] = blind

		hand.Seats = append(hand.Seats, seat+1)
		hand.Antes = append(hand.Antes, 0)
		hand.BlindsOrStraddles = append(hand.BlindsOrStraddles, blind)
		hand.StartingStacks = append(hand.StartingStacks, s.Stack-won[seat]+s.TotalBet)
		hand.FinishingStacks = append(hand.FinishingStacks, s.Stack)
		hand.Winnings = append(hand.Winnings, won[seat])
		if seat < len(names) && names[seat] != "" {
			hand.Players = append(hand.Players, names[seat])
		}
		hand.Actions = append(hand.Actions,
			fmt.Sprintf("d dh p%d %s", player[seat], strings.Join(cardStrings(s.HoleCards), "")))
	}

	board := g.Board()
	stage := game.PreFlop
	for _, rec := range log {
		for stage < rec.Stage {
			stage++
			hand.Actions = append(hand.Actions, dealBoard(board, stage))
			clear(roundBet)
		}
		highest := 0
		for _, b := range roundBet {
			highest = max(highest, b)
		}
		roundBet[rec.Seat] += rec.Committed
		hand.Actions = append(hand.Actions, formatAction(player[rec.Seat], rec.Action, roundBet[rec.Seat], highest))
	}
	for stage < game.River && boardCards(stage+1) <= len(board) {
		stage++
		hand.Actions = append(hand.Actions, dealBoard(board, stage))
	}

	for _, shown := range g.Showdown() {
		hand.Actions = append(hand.Actions, fmt.Sprintf("p%d sm %s",
			player[shown.Seat], strings.Join(cardStrings(seats[shown.Seat].HoleCards), "")))
	}
	return hand, nil
}

// formatAction converts an engine action to a PHH action string. An all-in
// that lifts the bet is a raise; anything else is a call.
func formatAction(p int, a game.Action, total, highest int) string {
	switch a.Type {
	case game.Fold:
		return fmt.Sprintf("p%d f", p)
	case game.Check, game.Call:
		return fmt.Sprintf("p%d cc", p)
	case game.Bet, game.Raise:
		return fmt.Sprintf("p%d cbr %d", p, a.Amount)
	case game.AllIn:
		if total > highest {
			return fmt.Sprintf("p%d cbr %d", p, total)
		}
		return fmt.Sprintf("p%d cc", p)
	default:
		return fmt.Sprintf("# p%d %s", p, a)
	}
}

// boardCards returns how many community cards are out on a street
func boardCards(stage game.Stage) int {
	switch stage {
	case game.Flop:
		return 3
	case game.Turn:
		return 4
	case game.River:
		return 5
	default:
		return 0
	}
}

func dealBoard(board []poker.Card, stage game.Stage) string {
	cards := board[boardCards(stage-1):boardCards(stage)]
	return "d db " + strings.Join(cardStrings(cards), "")
}

func cardStrings(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
