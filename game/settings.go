package game

import "fmt"

// MaxSeats is the largest supported table
const MaxSeats = 10

const (
	defaultSmallBlind = 1
	defaultBigBlind   = 2
)

// Settings is the immutable configuration of a table
type Settings struct {
	seatCount     int
	startingStack int
	smallBlind    int
	bigBlind      int
}

// SettingsOption configures optional Settings values
type SettingsOption func(*Settings)

// WithBlinds sets the forced bets posted each hand. WithBlinds(0, 0) disables them.
func WithBlinds(small, big int) SettingsOption {
	return func(s *Settings) {
		s.smallBlind = small
		s.bigBlind = big
	}
}

// NewSettings validates and builds table settings.
func NewSettings(seatCount, startingStack int, opts ...SettingsOption) (Settings, error) {
	s := Settings{
		seatCount:     seatCount,
		startingStack: startingStack,
		smallBlind:    defaultSmallBlind,
		bigBlind:      defaultBigBlind,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) validate() error {
	if s.seatCount < 2 || s.seatCount > MaxSeats {
		return fmt.Errorf("%w: seat count %d must be between 2 and %d", ErrInvalidConfiguration, s.seatCount, MaxSeats)
	}
	if s.startingStack <= 0 {
		return fmt.Errorf("%w: starting stack %d must be positive", ErrInvalidConfiguration, s.startingStack)
	}
	if s.smallBlind < 0 || s.bigBlind < 0 {
		return fmt.Errorf("%w: blinds must not be negative", ErrInvalidConfiguration)
	}
	if s.smallBlind > s.bigBlind {
		return fmt.Errorf("%w: small blind %d exceeds big blind %d", ErrInvalidConfiguration, s.smallBlind, s.bigBlind)
	}
	return nil
}

// SeatCount returns the number of seats at the table
func (s Settings) SeatCount() int { return s.seatCount }

// StartingStack returns the chips each seat starts with
func (s Settings) StartingStack() int { return s.startingStack }

// SmallBlind returns the small blind
func (s Settings) SmallBlind() int { return s.smallBlind }

// BigBlind returns the big blind
func (s Settings) BigBlind() int { return s.bigBlind }

// minBet is the smallest opening bet and raise increment on a fresh street
func (s Settings) minBet() int {
	return max(s.bigBlind, 1)
}
