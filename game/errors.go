package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned when settings or game options are out of range.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrIllegalAction is returned when an action is not legal in the current state.
	// The game is left unchanged.
	ErrIllegalAction = errors.New("illegal action")
	// ErrHandInProgress is returned by NextHand before the current hand is complete.
	ErrHandInProgress = errors.New("hand in progress")
	// ErrNotEnoughPlayers is returned when fewer than two seats can be dealt in.
	ErrNotEnoughPlayers = errors.New("not enough players with chips")
)

// IllegalActionError describes a rejected action
type IllegalActionError struct {
	Seat   int
	Action Action
	Reason string
}

func (e *IllegalActionError) Error() string {
	if e.Seat < 0 {
		return fmt.Sprintf("illegal action %s: %s", e.Action, e.Reason)
	}
	return fmt.Sprintf("illegal action %s by seat %d: %s", e.Action, e.Seat, e.Reason)
}

func (e *IllegalActionError) Unwrap() error {
	return ErrIllegalAction
}

// InvariantError reports a broken engine invariant. It is raised with panic:
// it signals a logic defect, never a caller mistake.
type InvariantError struct {
	Hand   int
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated in hand %d: %s", e.Hand, e.Reason)
}

func illegal(seat int, a Action, format string, args ...any) error {
	return &IllegalActionError{Seat: seat, Action: a, Reason: fmt.Sprintf(format, args...)}
}
