package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokr/poker"
)

// stackDeck arranges a deck so that holes[i] is dealt to seat i when the
// deal starts at seat first, followed by the five board cards.
func stackDeck(t *testing.T, first int, holes []string, board string) *poker.Deck {
	t.Helper()
	n := len(holes)
	var cards []poker.Card
	for round := range 2 {
		for i := range n {
			seat := (first + i) % n
			cards = append(cards, poker.MustParseCards(holes[seat])[round])
		}
	}
	cards = append(cards, poker.MustParseCards(board)...)
	deck, err := poker.NewDeckFromCards(cards)
	require.NoError(t, err)
	return deck
}

func newTestGame(t *testing.T, seats, stack int, sopts []SettingsOption, opts ...Option) *Game {
	t.Helper()
	settings, err := NewSettings(seats, stack, sopts...)
	require.NoError(t, err)
	g, err := New(settings, append([]Option{WithSeed(1)}, opts...)...)
	require.NoError(t, err)
	return g
}

func play(t *testing.T, g *Game, actions ...Action) {
	t.Helper()
	for _, a := range actions {
		seat, ok := g.CurrentSeat()
		require.True(t, ok, "no seat to play %s", a)
		require.NoError(t, g.PlayTurn(a), "seat %d playing %s", seat, a)
	}
}

func stacks(g *Game) []int {
	var out []int
	for _, s := range g.Seats() {
		out = append(out, s.Stack)
	}
	return out
}

func TestFirstActionIsFold(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, 3, 1000, nil, WithButton(0))

	seat, ok := g.CurrentSeat()
	require.True(t, ok)
	assert.Equal(t, 0, seat, "seat after the big blind acts first")
	assert.Equal(t, 1, g.Seat(1).RoundBet)
	assert.Equal(t, 2, g.Seat(2).RoundBet)

	require.NoError(t, g.PlayTurn(NewFold()))

	seat, ok = g.CurrentSeat()
	require.True(t, ok)
	assert.Equal(t, 1, seat)
	assert.Equal(t, SeatFolded, g.Seat(0).Status)
	assert.Equal(t, 1000, g.Seat(0).Stack)
}

func TestNewValidation(t *testing.T) {
	t.Parallel()
	settings, err := NewSettings(3, 100)
	require.NoError(t, err)
	shortDeck, err := poker.NewDeckFromCards(poker.MustParseCards("As Ks Qs"))
	require.NoError(t, err)

	tests := []struct {
		name string
		opts []Option
	}{
		{"button out of range", []Option{WithButton(3)}},
		{"negative button", []Option{WithButton(-1)}},
		{"wrong stack count", []Option{WithStacks([]int{100, 100})}},
		{"negative stack", []Option{WithStacks([]int{100, -1, 100})}},
		{"one funded seat", []Option{WithStacks([]int{100, 0, 0})}},
		{"short deck", []Option{WithDeck(shortDeck)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(settings, tc.opts...)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestIllegalActionsLeaveStateUnchanged(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, 3, 1000, nil, WithButton(0))
	before := g.State()

	tests := []struct {
		name   string
		seat   int
		action Action
	}{
		{"check facing the big blind", 0, NewCheck()},
		{"out of turn", 1, NewFold()},
		{"raise below minimum", 0, NewRaise(3)},
		{"bet into a bet", 0, NewBet(10)},
		{"raise beyond stack", 0, NewRaise(5000)},
		{"raise not above current bet", 0, NewRaise(2)},
		{"unknown action", 0, Action{Type: ActionType(99)}},
	}
	for _, tc := range tests {
		err := g.PlayTurnFor(tc.seat, tc.action)
		require.ErrorIs(t, err, ErrIllegalAction, tc.name)

		var iae *IllegalActionError
		require.True(t, errors.As(err, &iae), tc.name)
		assert.Equal(t, tc.seat, iae.Seat, tc.name)
		assert.Equal(t, before, g.State(), tc.name)
	}
}

func TestPlayTurnAfterHandComplete(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, 2, 100, nil)
	play(t, g, NewFold())
	require.True(t, g.IsComplete())

	_, ok := g.CurrentSeat()
	assert.False(t, ok)
	assert.Empty(t, g.LegalActions())
	assert.ErrorIs(t, g.PlayTurn(NewCheck()), ErrIllegalAction)
}

func TestHeadsUpBlinds(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, 2, 100, nil, WithButton(1))

	assert.Equal(t, 1, g.Seat(1).RoundBet, "button posts the small blind")
	assert.Equal(t, 2, g.Seat(0).RoundBet)
	seat, _ := g.CurrentSeat()
	assert.Equal(t, 1, seat, "button acts first preflop")

	play(t, g, NewCall())
	seat, _ = g.CurrentSeat()
	assert.Equal(t, 0, seat, "big blind has the option")

	play(t, g, NewCheck())
	assert.Equal(t, Flop, g.Stage())
	seat, _ = g.CurrentSeat()
	assert.Equal(t, 0, seat, "big blind acts first after the flop")
}

func TestBigBlindOption(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, 3, 1000, nil, WithButton(0))
	play(t, g, NewCall(), NewCall())

	seat, ok := g.CurrentSeat()
	require.True(t, ok)
	assert.Equal(t, 2, seat)
	assert.Equal(t, []ActionType{Fold, Check, Raise, AllIn}, g.LegalActions())
	assert.Equal(t, 4, g.MinRaiseTo())
	assert.Equal(t, 1000, g.MaxRaiseTo())

	play(t, g, NewCheck())
	assert.Equal(t, Flop, g.Stage())
	assert.Len(t, g.Board(), 3)
	seat, _ = g.CurrentSeat()
	assert.Equal(t, 1, seat, "first seat after the button opens the flop")
	assert.Equal(t, []Pot{{Amount: 6, Eligible: []int{0, 1, 2}}}, g.Pots())
}

func TestRaiseReopensBetting(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, 3, 1000, nil, WithButton(0))
	play(t, g, NewRaise(6), NewCall())

	seat, _ := g.CurrentSeat()
	assert.Equal(t, 2, seat)
	assert.Equal(t, 10, g.MinRaiseTo(), "raise increment of 4 carries over")
	assert.Equal(t, 4, g.CallAmount())

	play(t, g, NewRaise(20))
	last, ok := g.LastAggressor()
	require.True(t, ok)
	assert.Equal(t, 2, last)

	seat, _ = g.CurrentSeat()
	assert.Equal(t, 0, seat)
	assert.Contains(t, g.LegalActions(), Raise)
	assert.Equal(t, 34, g.MinRaiseTo())
}

func TestShortAllInDoesNotReopenBetting(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, 3, 1000, []SettingsOption{WithBlinds(0, 0)},
		WithButton(0), WithStacks([]int{1000, 150, 1000}))

	play(t, g, NewBet(100), NewAllIn())
	assert.Equal(t, 150, g.CurrentBet())
	assert.Equal(t, 100, g.MinRaise(), "short all-in keeps the raise increment")

	// Seat 2 has not acted yet and may still raise.
	assert.Equal(t, []ActionType{Fold, Call, Raise, AllIn}, g.LegalActions())
	assert.Equal(t, 250, g.MinRaiseTo())
	play(t, g, NewCall())

	seat, _ := g.CurrentSeat()
	require.Equal(t, 0, seat)
	assert.Equal(t, []ActionType{Fold, Call}, g.LegalActions())
	assert.ErrorIs(t, g.PlayTurn(NewRaise(400)), ErrIllegalAction)
	assert.ErrorIs(t, g.PlayTurn(NewAllIn()), ErrIllegalAction)

	play(t, g, NewCall())
	assert.Equal(t, Flop, g.Stage())
	assert.Equal(t, []Pot{{Amount: 450, Eligible: []int{0, 1, 2}}}, g.Pots())
}

func TestShowdownBestHandWins(t *testing.T) {
	t.Parallel()
	deck := stackDeck(t, 0, []string{"Ah Ad", "7c 7d"}, "2s 7h 9c Jd 3s")
	g := newTestGame(t, 2, 100, nil, WithButton(0), WithDeck(deck))

	play(t, g, NewCall(), NewCheck())
	for range 3 {
		play(t, g, NewCheck(), NewCheck())
	}

	require.True(t, g.IsComplete())
	assert.Equal(t, []int{98, 102}, stacks(g))
	assert.Equal(t, []Award{{Pot: 0, Seat: 1, Amount: 4}}, g.Results())

	shown := g.Showdown()
	require.Len(t, shown, 2)
	assert.Equal(t, poker.Pair, shown[0].Rank.Type())
	assert.Equal(t, poker.ThreeOfAKind, shown[1].Rank.Type())
}

func TestSidePotShowdown(t *testing.T) {
	t.Parallel()
	deck := stackDeck(t, 1, []string{"As Ah", "Ks Kh", "Qs Qh"}, "2c 7d 9c Jd 3h")
	g := newTestGame(t, 3, 1000, []SettingsOption{WithBlinds(0, 0)},
		WithButton(0), WithStacks([]int{100, 1000, 1000}), WithDeck(deck))

	play(t, g, NewAllIn(), NewRaise(300), NewCall())

	assert.Equal(t, Flop, g.Stage())
	assert.Equal(t, []Pot{
		{Amount: 300, Eligible: []int{0, 1, 2}},
		{Amount: 400, Eligible: []int{1, 2}},
	}, g.Pots())

	for range 3 {
		play(t, g, NewCheck(), NewCheck())
	}

	require.True(t, g.IsComplete())
	assert.Equal(t, []Award{
		{Pot: 0, Seat: 0, Amount: 300},
		{Pot: 1, Seat: 1, Amount: 400},
	}, g.Results())
	assert.Equal(t, []int{300, 1100, 700}, stacks(g))
}

func TestSplitPotOddChip(t *testing.T) {
	t.Parallel()
	deck := stackDeck(t, 1, []string{"2c 3c", "4d 5d", "2d 3d"}, "As Ks Qs Js Ts")
	g := newTestGame(t, 3, 1000, nil, WithButton(0), WithDeck(deck))

	// Button calls, small blind folds, big blind checks: 5 chips between seats 0 and 2.
	play(t, g, NewCall(), NewFold(), NewCheck())
	for range 3 {
		play(t, g, NewCheck(), NewCheck())
	}

	require.True(t, g.IsComplete())
	assert.Equal(t, []Award{
		{Pot: 0, Seat: 2, Amount: 3},
		{Pot: 0, Seat: 0, Amount: 2},
	}, g.Results(), "odd chip goes to the first winner clockwise from the button")
	assert.Equal(t, []int{1000, 999, 1001}, stacks(g))
}

func TestAllInRunsOutBoard(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, 2, 100, nil, WithButton(0))

	play(t, g, NewAllIn(), NewCall())

	require.True(t, g.IsComplete())
	assert.Len(t, g.Board(), 5)
	_, ok := g.CurrentSeat()
	assert.False(t, ok)

	total := 0
	for _, s := range g.Seats() {
		total += s.Stack
	}
	assert.Equal(t, 200, total)
}

func TestEveryoneFoldsToBigBlind(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, 3, 1000, nil, WithButton(0))
	play(t, g, NewFold(), NewFold())

	require.True(t, g.IsComplete())
	assert.Empty(t, g.Showdown(), "uncontested hands are not shown")
	assert.Empty(t, g.Board())
	assert.Equal(t, []int{1000, 999, 1001}, stacks(g))

	log := g.Log()
	require.Len(t, log, 2)
	assert.Equal(t, ActionRecord{Stage: PreFlop, Seat: 1, Action: NewFold()}, log[1])
}

func TestNextHand(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, 3, 1000, nil, WithButton(0))
	assert.ErrorIs(t, g.NextHand(), ErrHandInProgress)

	firstID := g.HandID()
	play(t, g, NewFold(), NewFold())
	require.NoError(t, g.NextHand())

	assert.Equal(t, 2, g.HandNumber())
	assert.NotEqual(t, firstID, g.HandID())
	assert.Equal(t, 1, g.Button())
	assert.Equal(t, PreFlop, g.Stage())
	assert.Empty(t, g.Log())

	// Stacks carry over, then the new blinds are posted.
	assert.Equal(t, 998, g.Seat(0).Stack)
	assert.Equal(t, 999, g.Seat(1).Stack)
	assert.Equal(t, 1000, g.Seat(2).Stack)
	assert.Equal(t, 3000, g.ChipTotal())
	for _, s := range g.Seats() {
		assert.Len(t, s.HoleCards, 2)
	}
}

func TestBustedSeatSitsOut(t *testing.T) {
	t.Parallel()
	deck := stackDeck(t, 1, []string{"2c 7d", "4h 5h", "As Ad"}, "Kc Qd 9h 8s 3c")
	g := newTestGame(t, 3, 1000, nil,
		WithButton(0), WithStacks([]int{10, 1000, 1000}), WithDeck(deck))

	play(t, g, NewAllIn(), NewFold(), NewCall())
	require.True(t, g.IsComplete(), "a lone seat with chips does not bet against all-ins")
	assert.Equal(t, []int{0, 999, 1011}, stacks(g))

	require.NoError(t, g.NextHand())
	assert.Equal(t, 1, g.Button())
	assert.Equal(t, SeatSittingOut, g.Seat(0).Status)
	assert.Empty(t, g.Seat(0).HoleCards)
	assert.Equal(t, 1, g.Seat(1).RoundBet, "heads-up button posts the small blind")
	assert.Equal(t, 2, g.Seat(2).RoundBet)

	play(t, g, NewFold())
	require.NoError(t, g.SitOut(1))
	assert.ErrorIs(t, g.NextHand(), ErrNotEnoughPlayers)

	require.NoError(t, g.SitIn(1))
	require.NoError(t, g.NextHand())
	assert.ErrorIs(t, g.SitOut(7), ErrInvalidConfiguration)
}

func TestSeedIsDeterministic(t *testing.T) {
	t.Parallel()
	a := newTestGame(t, 4, 500, nil, WithSeed(42))
	b := newTestGame(t, 4, 500, nil, WithSeed(42))
	for i := range 4 {
		assert.Equal(t, a.Seat(i).HoleCards, b.Seat(i).HoleCards)
	}
}

func TestBrokenInvariantPanics(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, 3, 1000, nil)
	g.chipTotal++

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		g.checkInvariants()
	}()

	ie, ok := recovered.(*InvariantError)
	require.True(t, ok, "expected *InvariantError, got %T", recovered)
	assert.Equal(t, 1, ie.Hand)
	assert.Contains(t, ie.Error(), "chip total")
}
