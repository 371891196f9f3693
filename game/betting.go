package game

// PlayTurn applies an action for the seat whose turn it is. An illegal
// action returns an error wrapping ErrIllegalAction and changes nothing.
func (g *Game) PlayTurn(action Action) error {
	if g.current < 0 {
		return illegal(-1, action, "no decision pending, hand is at %s", g.stage)
	}
	return g.PlayTurnFor(g.current, action)
}

// PlayTurnFor applies an action on behalf of seat, rejecting it unless that
// seat is the one to act.
func (g *Game) PlayTurnFor(seat int, action Action) error {
	if err := g.validate(seat, action); err != nil {
		g.logger.Debug("Rejected action", "hand", g.handID, "seat", seat, "action", action, "error", err)
		return err
	}
	g.apply(seat, action)
	g.checkInvariants()
	return nil
}

// LegalActions returns the action types the current seat may submit.
func (g *Game) LegalActions() []ActionType {
	if g.current < 0 {
		return nil
	}
	probes := []Action{
		NewFold(),
		NewCheck(),
		NewCall(),
		NewBet(g.MinRaiseTo()),
		NewRaise(g.MinRaiseTo()),
		NewAllIn(),
	}
	var legal []ActionType
	for _, a := range probes {
		if g.validate(g.current, a) == nil {
			legal = append(legal, a.Type)
		}
	}
	return legal
}

// CallAmount returns the chips the current seat needs to call, capped at its stack.
func (g *Game) CallAmount() int {
	if g.current < 0 {
		return 0
	}
	s := g.seats[g.current]
	return min(g.currentBet-s.RoundBet, s.Stack)
}

// MinRaiseTo returns the smallest legal bet or raise-to amount for the
// current seat, or its whole stack when it cannot cover a full raise.
func (g *Game) MinRaiseTo() int {
	if g.current < 0 {
		return 0
	}
	return min(g.currentBet+g.minRaise, g.MaxRaiseTo())
}

// MaxRaiseTo returns the largest bet the current seat can make: all its chips.
func (g *Game) MaxRaiseTo() int {
	if g.current < 0 {
		return 0
	}
	s := g.seats[g.current]
	return s.RoundBet + s.Stack
}

func (g *Game) validate(seat int, a Action) error {
	if g.current < 0 {
		return illegal(seat, a, "no decision pending, hand is at %s", g.stage)
	}
	if seat != g.current {
		return illegal(seat, a, "seat %d is to act", g.current)
	}
	s := g.seats[seat]
	toCall := g.currentBet - s.RoundBet
	total := s.RoundBet + s.Stack

	switch a.Type {
	case Fold:
		return nil
	case Check:
		if toCall > 0 {
			return illegal(seat, a, "cannot check, must call %d", toCall)
		}
		return nil
	case Call:
		if toCall == 0 {
			return illegal(seat, a, "nothing to call")
		}
		return nil
	case Bet:
		if g.currentBet > 0 {
			return illegal(seat, a, "cannot bet into %d, raise instead", g.currentBet)
		}
		return g.validateRaiseTo(seat, a, total)
	case Raise:
		if g.currentBet == 0 {
			return illegal(seat, a, "nothing to raise, bet instead")
		}
		return g.validateRaiseTo(seat, a, total)
	case AllIn:
		if total > g.currentBet && g.acted[seat] {
			return illegal(seat, a, "betting was not reopened, call or fold")
		}
		return nil
	default:
		return illegal(seat, a, "unknown action type")
	}
}

func (g *Game) validateRaiseTo(seat int, a Action, total int) error {
	if g.acted[seat] {
		return illegal(seat, a, "betting was not reopened, call or fold")
	}
	if a.Amount <= g.currentBet {
		return illegal(seat, a, "amount must exceed current bet %d", g.currentBet)
	}
	if a.Amount > total {
		return illegal(seat, a, "insufficient chips, maximum %d", total)
	}
	// Going all-in for less than a full raise is allowed.
	if minTo := g.currentBet + g.minRaise; a.Amount < minTo && a.Amount < total {
		return illegal(seat, a, "%s too small, minimum %d", a.Type, minTo)
	}
	return nil
}

func (g *Game) apply(seat int, a Action) {
	s := &g.seats[seat]
	before := s.Stack

	switch a.Type {
	case Fold:
		s.Status = SeatFolded
	case Check:
	case Call:
		g.commit(seat, min(g.currentBet-s.RoundBet, s.Stack))
	case Bet, Raise:
		g.raiseTo(seat, a.Amount)
	case AllIn:
		if to := s.RoundBet + s.Stack; to > g.currentBet {
			g.raiseTo(seat, to)
		} else {
			g.commit(seat, s.Stack)
		}
	}
	g.acted[seat] = true

	committed := before - s.Stack
	g.log = append(g.log, ActionRecord{Stage: g.stage, Seat: seat, Action: a, Committed: committed})
	g.logger.Debug("Action", "hand", g.handID, "stage", g.stage, "seat", seat,
		"action", a, "committed", committed, "stack", s.Stack)

	g.advanceFrom(seat + 1)
}

// raiseTo lifts the seat's round bet to amount. Only a full raise reopens the
// betting for seats that already acted.
func (g *Game) raiseTo(seat, amount int) {
	increment := amount - g.currentBet
	g.commit(seat, amount-g.seats[seat].RoundBet)
	g.currentBet = amount
	g.lastAggressor = seat
	if increment >= g.minRaise {
		g.minRaise = increment
		clear(g.acted)
	}
}

func (g *Game) countSeats(pred func(Seat) bool) int {
	n := 0
	for _, s := range g.seats {
		if pred(s) {
			n++
		}
	}
	return n
}

// needsToAct reports whether seat i owes a decision this round.
func (g *Game) needsToAct(i int) bool {
	s := g.seats[i]
	if !s.CanAct() {
		return false
	}
	if s.RoundBet < g.currentBet {
		return true
	}
	if g.acted[i] {
		return false
	}
	// A lone seat facing only all-in opponents has nobody to bet against.
	return g.countSeats(Seat.CanAct) > 1
}

func (g *Game) nextActor(from int) int {
	n := len(g.seats)
	for i := range n {
		pos := (from + i) % n
		if g.needsToAct(pos) {
			return pos
		}
	}
	return -1
}

// advanceFrom passes the turn to the first seat clockwise from `from` that
// owes a decision. When nobody does, the round is swept and the next street
// dealt, repeatedly, until someone must act or the hand reaches showdown.
func (g *Game) advanceFrom(from int) {
	for {
		if g.countSeats(Seat.InHand) < 2 {
			g.sweep()
			break
		}
		if next := g.nextActor(from); next >= 0 {
			g.current = next
			return
		}
		g.sweep()
		if !g.nextStreet() {
			break
		}
		from = g.button + 1
	}
	g.current = -1
	g.stage = Showdown
	g.resolve()
}

func (g *Game) sweep() {
	g.ledger.Sweep(g.seats)
	for i := range g.seats {
		g.seats[i].RoundBet = 0
	}
}

// nextStreet deals the next street. It returns false when the river betting
// is over and the hand goes to showdown.
func (g *Game) nextStreet() bool {
	var deal int
	switch g.stage {
	case PreFlop:
		deal = 3
	case Flop, Turn:
		deal = 1
	default:
		return false
	}

	cards, err := g.deck.Deal(deal)
	if err != nil {
		g.fail("dealing %s: %v", g.stage+1, err)
	}
	if err := g.board.Add(cards...); err != nil {
		g.fail("dealing %s: %v", g.stage+1, err)
	}
	g.stage++
	g.resetBetting()
	g.logger.Debug("Street", "hand", g.handID, "stage", g.stage, "board", g.board.Cards())
	return true
}
