package game

import (
	"fmt"
	"io"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/pokr/internal/gameid"
	"github.com/lox/pokr/internal/randutil"
	"github.com/lox/pokr/poker"
)

// Stage is the street a hand is on
type Stage int

const (
	PreFlop Stage = iota
	Flop
	Turn
	River
	Showdown
	Complete
)

func (s Stage) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown", "complete"}[s]
}

// ActionRecord is one applied action in the hand log
type ActionRecord struct {
	Stage     Stage
	Seat      int
	Action    Action
	Committed int // chips moved from stack to bet by this action
}

// ShowdownHand is the hand a seat showed at showdown
type ShowdownHand struct {
	Seat int
	Rank poker.HandRank
	Best [5]poker.Card
}

// Option configures a Game during creation.
type Option func(*gameConfig)

type gameConfig struct {
	rng    *rand.Rand
	deck   *poker.Deck
	button int
	stacks []int
	logger *log.Logger
	ids    *gameid.Generator
}

// WithRand sets the random source used to shuffle every hand.
func WithRand(rng *rand.Rand) Option {
	return func(c *gameConfig) { c.rng = rng }
}

// WithSeed seeds a deterministic random source.
func WithSeed(seed int64) Option {
	return func(c *gameConfig) { c.rng = randutil.New(seed) }
}

// WithDeck deals the first hand from a pre-arranged deck. Later hands are
// shuffled with the game's random source.
func WithDeck(deck *poker.Deck) Option {
	return func(c *gameConfig) { c.deck = deck }
}

// WithButton places the dealer button for the first hand.
func WithButton(seat int) Option {
	return func(c *gameConfig) { c.button = seat }
}

// WithStacks overrides the starting stack of every seat.
func WithStacks(stacks []int) Option {
	return func(c *gameConfig) { c.stacks = slices.Clone(stacks) }
}

// WithLogger sets the logger for hand events. The default discards output.
func WithLogger(logger *log.Logger) Option {
	return func(c *gameConfig) { c.logger = logger }
}

// WithHandIDs sets the generator for hand identifiers.
func WithHandIDs(ids *gameid.Generator) Option {
	return func(c *gameConfig) { c.ids = ids }
}

// Game is a table playing one hand at a time. It is not safe for concurrent
// use; callers running several tables use one Game per table.
type Game struct {
	settings Settings
	rng      *rand.Rand
	logger   *log.Logger
	ids      *gameid.Generator
	nextDeck *poker.Deck

	handID     string
	handNumber int
	button     int
	chipTotal  int

	deck   *poker.Deck
	board  poker.Board
	seats  []Seat
	ledger *PotLedger
	stage  Stage

	current       int // -1 when no decision is pending
	lastAggressor int // -1 when nobody has bet this round
	currentBet    int
	minRaise      int
	acted         []bool // acted since the last full raise
	sitOut        []bool // requested to skip upcoming hands

	log     []ActionRecord
	shown   []ShowdownHand
	results []Award
}

// New creates a table from settings and deals the first hand.
//
//	settings, _ := game.NewSettings(3, 1000)
//	g, _ := game.New(settings, game.WithSeed(42))
//	seat, _ := g.CurrentSeat()
//	err := g.PlayTurn(game.NewFold())
func New(settings Settings, opts ...Option) (*Game, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}

	cfg := &gameConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	n := settings.seatCount
	if cfg.button < 0 || cfg.button >= n {
		return nil, fmt.Errorf("%w: button %d out of range", ErrInvalidConfiguration, cfg.button)
	}
	if cfg.stacks != nil && len(cfg.stacks) != n {
		return nil, fmt.Errorf("%w: %d stacks for %d seats", ErrInvalidConfiguration, len(cfg.stacks), n)
	}
	if cfg.deck != nil && cfg.deck.CardsRemaining() < 2*n+poker.BoardSize {
		return nil, fmt.Errorf("%w: deck holds %d cards, a hand needs %d",
			ErrInvalidConfiguration, cfg.deck.CardsRemaining(), 2*n+poker.BoardSize)
	}
	if cfg.rng == nil {
		cfg.rng = randutil.New(randutil.TimeSeed())
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.ids == nil {
		cfg.ids = gameid.NewGenerator(nil, nil)
	}

	g := &Game{
		settings: settings,
		rng:      cfg.rng,
		logger:   cfg.logger,
		ids:      cfg.ids,
		nextDeck: cfg.deck,
		button:   cfg.button,
		seats:    make([]Seat, n),
		acted:    make([]bool, n),
		sitOut:   make([]bool, n),
	}
	for i := range g.seats {
		stack := settings.startingStack
		if cfg.stacks != nil {
			stack = cfg.stacks[i]
			if stack < 0 {
				return nil, fmt.Errorf("%w: seat %d stack %d is negative", ErrInvalidConfiguration, i, stack)
			}
		}
		g.seats[i] = Seat{Index: i, Stack: stack}
		g.chipTotal += stack
	}

	if g.fundedSeats() < 2 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, ErrNotEnoughPlayers)
	}
	if !g.canBeDealt(g.button) {
		g.button = g.nextDealtSeat(g.button)
	}
	g.startHand()
	return g, nil
}

// NextHand moves the button and deals a new hand. Seats keep their stacks;
// seats without chips sit out.
func (g *Game) NextHand() error {
	if g.stage != Complete {
		return ErrHandInProgress
	}
	if g.fundedSeats() < 2 {
		return ErrNotEnoughPlayers
	}
	g.button = g.nextDealtSeat(g.button + 1)
	g.startHand()
	return nil
}

// SitOut excludes a seat from the hands dealt after the current one.
func (g *Game) SitOut(seat int) error {
	if seat < 0 || seat >= len(g.seats) {
		return fmt.Errorf("%w: seat %d out of range", ErrInvalidConfiguration, seat)
	}
	g.sitOut[seat] = true
	return nil
}

// SitIn reverses SitOut from the next hand on.
func (g *Game) SitIn(seat int) error {
	if seat < 0 || seat >= len(g.seats) {
		return fmt.Errorf("%w: seat %d out of range", ErrInvalidConfiguration, seat)
	}
	g.sitOut[seat] = false
	return nil
}

func (g *Game) canBeDealt(seat int) bool {
	return g.seats[seat].Stack > 0 && !g.sitOut[seat]
}

func (g *Game) fundedSeats() int {
	n := 0
	for i := range g.seats {
		if g.canBeDealt(i) {
			n++
		}
	}
	return n
}

// nextDealtSeat returns the first seat clockwise from (and including) from
// that will be dealt into the next hand.
func (g *Game) nextDealtSeat(from int) int {
	n := len(g.seats)
	for i := range n {
		pos := (from + i) % n
		if g.canBeDealt(pos) {
			return pos
		}
	}
	return -1
}

// nextInHand returns the first seat clockwise from (and including) from
// that holds cards this hand.
func (g *Game) nextInHand(from int) int {
	n := len(g.seats)
	for i := range n {
		pos := (from + i) % n
		if g.seats[pos].Status != SeatSittingOut {
			return pos
		}
	}
	return -1
}

func (g *Game) startHand() {
	g.handNumber++
	g.handID = g.ids.Next()

	for i := range g.seats {
		s := &g.seats[i]
		s.HoleCards = nil
		s.RoundBet = 0
		s.TotalBet = 0
		if g.canBeDealt(i) {
			s.Status = SeatActive
		} else {
			s.Status = SeatSittingOut
		}
	}

	if g.nextDeck != nil {
		g.deck, g.nextDeck = g.nextDeck, nil
	} else {
		g.deck = poker.NewDeck(g.rng)
	}
	g.board = poker.Board{}
	g.ledger = NewPotLedger(len(g.seats))
	g.stage = PreFlop
	g.log = nil
	g.shown = nil
	g.results = nil
	g.resetBetting()

	dealt := 0
	for i := range g.seats {
		if g.seats[i].Status == SeatActive {
			dealt++
		}
	}

	var sb, bb int
	if dealt == 2 {
		// Heads-up: button posts small blind and acts first preflop
		sb = g.button
		bb = g.nextInHand(g.button + 1)
	} else {
		sb = g.nextInHand(g.button + 1)
		bb = g.nextInHand(sb + 1)
	}

	g.logger.Debug("Starting hand", "hand", g.handID, "number", g.handNumber,
		"button", g.button, "small_blind", sb, "big_blind", bb)

	g.dealHoleCards(sb)
	g.post(sb, g.settings.smallBlind)
	g.post(bb, g.settings.bigBlind)
	g.currentBet = max(g.settings.bigBlind, g.seats[sb].RoundBet, g.seats[bb].RoundBet)

	first := bb + 1
	if dealt == 2 {
		first = sb
	}
	g.advanceFrom(first)
	g.checkInvariants()
}

func (g *Game) dealHoleCards(from int) {
	for range 2 {
		seat := from
		for range g.seats {
			if g.seats[seat].Status != SeatSittingOut {
				card, err := g.deck.DealOne()
				if err != nil {
					g.fail("dealing hole cards: %v", err)
				}
				g.seats[seat].HoleCards = append(g.seats[seat].HoleCards, card)
			}
			seat = (seat + 1) % len(g.seats)
		}
	}
}

func (g *Game) post(seat, amount int) {
	if amount <= 0 {
		return
	}
	g.commit(seat, min(amount, g.seats[seat].Stack))
}

func (g *Game) commit(seat, amount int) {
	s := &g.seats[seat]
	s.Stack -= amount
	s.RoundBet += amount
	s.TotalBet += amount
	if s.Stack == 0 {
		s.Status = SeatAllIn
	}
}

func (g *Game) resetBetting() {
	g.current = -1
	g.lastAggressor = -1
	g.currentBet = 0
	g.minRaise = g.settings.minBet()
	clear(g.acted)
}

func (g *Game) fail(format string, args ...any) {
	panic(&InvariantError{Hand: g.handNumber, Reason: fmt.Sprintf(format, args...)})
}

// checkInvariants panics when chip conservation or turn ownership is broken.
func (g *Game) checkInvariants() {
	total := g.ledger.Total()
	for _, s := range g.seats {
		if s.Stack < 0 || s.RoundBet < 0 {
			g.fail("seat %d has negative chips", s.Index)
		}
		total += s.Stack + s.RoundBet
	}
	if total != g.chipTotal {
		g.fail("chip total %d, expected %d", total, g.chipTotal)
	}
	if g.current >= 0 && !g.seats[g.current].CanAct() {
		g.fail("seat %d is current but %s", g.current, g.seats[g.current].Status)
	}
	if g.current >= 0 && g.stage >= Showdown {
		g.fail("seat %d is current at %s", g.current, g.stage)
	}
}

// CurrentSeat returns the seat awaiting a decision. ok is false once the hand
// has reached showdown.
func (g *Game) CurrentSeat() (seat int, ok bool) {
	if g.current < 0 {
		return -1, false
	}
	return g.current, true
}

// Settings returns the table settings
func (g *Game) Settings() Settings { return g.settings }

// Stage returns the current street
func (g *Game) Stage() Stage { return g.stage }

// IsComplete returns true once the pots have been paid out
func (g *Game) IsComplete() bool { return g.stage == Complete }

// HandID returns the identifier of the current hand
func (g *Game) HandID() string { return g.handID }

// HandNumber returns how many hands this table has dealt
func (g *Game) HandNumber() int { return g.handNumber }

// Button returns the dealer seat
func (g *Game) Button() int { return g.button }

// CurrentBet returns the highest round bet
func (g *Game) CurrentBet() int { return g.currentBet }

// MinRaise returns the smallest legal raise increment
func (g *Game) MinRaise() int { return g.minRaise }

// LastAggressor returns the last seat to bet or raise this round
func (g *Game) LastAggressor() (int, bool) {
	return g.lastAggressor, g.lastAggressor >= 0
}

// ChipTotal returns the chips on the table, constant for the table's lifetime
func (g *Game) ChipTotal() int { return g.chipTotal }

// Seat returns a copy of one seat
func (g *Game) Seat(i int) Seat { return g.seats[i].clone() }

// Seats returns copies of all seats
func (g *Game) Seats() []Seat {
	out := make([]Seat, len(g.seats))
	for i, s := range g.seats {
		out[i] = s.clone()
	}
	return out
}

// Pots returns the pots collected so far, main pot first. Chips still in
// front of the seats this round are not included.
func (g *Game) Pots() []Pot { return g.ledger.Pots() }

// Board returns the community cards
func (g *Game) Board() []poker.Card { return g.board.Cards() }

// Log returns the actions applied this hand
func (g *Game) Log() []ActionRecord { return slices.Clone(g.log) }

// Showdown returns the hands shown at showdown
func (g *Game) Showdown() []ShowdownHand { return slices.Clone(g.shown) }

// Results returns the pot awards of a complete hand
func (g *Game) Results() []Award { return slices.Clone(g.results) }

// State is a deep copy of everything observable about a game
type State struct {
	HandID        string
	HandNumber    int
	Button        int
	Stage         Stage
	Current       int
	LastAggressor int
	CurrentBet    int
	MinRaise      int
	Seats         []Seat
	Pots          []Pot
	Board         []poker.Card
	Acted         []bool
	Log           []ActionRecord
	Showdown      []ShowdownHand
	Results       []Award
	DeckRemaining int
}

// State returns a snapshot of the game
func (g *Game) State() State {
	return State{
		HandID:        g.handID,
		HandNumber:    g.handNumber,
		Button:        g.button,
		Stage:         g.stage,
		Current:       g.current,
		LastAggressor: g.lastAggressor,
		CurrentBet:    g.currentBet,
		MinRaise:      g.minRaise,
		Seats:         g.Seats(),
		Pots:          g.Pots(),
		Board:         g.Board(),
		Acted:         slices.Clone(g.acted),
		Log:           g.Log(),
		Showdown:      g.Showdown(),
		Results:       g.Results(),
		DeckRemaining: g.deck.CardsRemaining(),
	}
}
