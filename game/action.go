package game

import "fmt"

// ActionType identifies a player decision
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (t ActionType) String() string {
	switch t {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case AllIn:
		return "allin"
	default:
		return fmt.Sprintf("action(%d)", int(t))
	}
}

// Action is a decision submitted by the seat whose turn it is. Amount is only
// meaningful for Bet and Raise, where it is the seat's total bet for the
// round after the action ("raise to"), not the increment.
type Action struct {
	Type   ActionType
	Amount int
}

// NewFold returns a fold
func NewFold() Action { return Action{Type: Fold} }

// NewCheck returns a check
func NewCheck() Action { return Action{Type: Check} }

// NewCall returns a call
func NewCall() Action { return Action{Type: Call} }

// NewBet returns an opening bet to amount
func NewBet(amount int) Action { return Action{Type: Bet, Amount: amount} }

// NewRaise returns a raise to amount
func NewRaise(amount int) Action { return Action{Type: Raise, Amount: amount} }

// NewAllIn commits the seat's whole stack
func NewAllIn() Action { return Action{Type: AllIn} }

func (a Action) String() string {
	switch a.Type {
	case Bet, Raise:
		return fmt.Sprintf("%s(%d)", a.Type, a.Amount)
	default:
		return a.Type.String()
	}
}
