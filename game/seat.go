package game

import "github.com/lox/pokr/poker"

// SeatStatus is a seat's state within the current hand
type SeatStatus int

const (
	SeatActive SeatStatus = iota
	SeatFolded
	SeatAllIn
	SeatSittingOut
)

func (s SeatStatus) String() string {
	return [...]string{"active", "folded", "allin", "sitting-out"}[s]
}

// Seat is a table position and the state of the player in it
type Seat struct {
	Index     int
	Stack     int
	HoleCards []poker.Card
	RoundBet  int // committed in the current betting round
	TotalBet  int // committed in the whole hand
	Status    SeatStatus
}

// InHand returns true if the seat still contests the pot
func (s Seat) InHand() bool {
	return s.Status == SeatActive || s.Status == SeatAllIn
}

// CanAct returns true if the seat may still make decisions this hand
func (s Seat) CanAct() bool {
	return s.Status == SeatActive
}

func (s Seat) clone() Seat {
	s.HoleCards = append([]poker.Card(nil), s.HoleCards...)
	return s
}
