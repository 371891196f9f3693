package poker

import "errors"

// ErrBoardFull is returned when adding a sixth community card.
var ErrBoardFull = errors.New("board already has 5 cards")

// BoardSize is the number of community cards dealt by the river
const BoardSize = 5

// Board holds the community cards
type Board struct {
	cards [BoardSize]Card
	count int
}

// Add places a card on the board
func (b *Board) Add(cards ...Card) error {
	if b.count+len(cards) > BoardSize {
		return ErrBoardFull
	}
	for _, c := range cards {
		b.cards[b.count] = c
		b.count++
	}
	return nil
}

// Len returns the number of community cards dealt
func (b *Board) Len() int {
	return b.count
}

// Cards returns a copy of the community cards
func (b *Board) Cards() []Card {
	return append([]Card(nil), b.cards[:b.count]...)
}

// BestHand returns the best hand for the given hole cards on this board
func (b *Board) BestHand(hole []Card) (HandRank, [5]Card, error) {
	all := make([]Card, 0, len(hole)+b.count)
	all = append(all, hole...)
	all = append(all, b.cards[:b.count]...)
	return BestHand(all...)
}
