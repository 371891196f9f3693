package poker

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrCardCount is returned when evaluating fewer than 5 or more than 7 cards.
	ErrCardCount = errors.New("hand evaluation needs 5 to 7 cards")
	// ErrDuplicateCard is returned when the same card appears twice.
	ErrDuplicateCard = errors.New("duplicate card")
)

// HandRank represents the strength of a poker hand. Higher values are stronger.
//
// The category occupies the bits above 20; the five tie-break ranks follow
// as 4-bit nibbles from most to least significant.
type HandRank uint32

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (t HandType) String() string {
	switch t {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

const typeShift = 20

// Type returns the type of hand (pair, flush, etc.).
func (hr HandRank) Type() HandType {
	return HandType(hr >> typeShift)
}

// Ranks returns the tie-break ranks, most significant first
func (hr HandRank) Ranks() []Rank {
	var ranks []Rank
	for i := range 5 {
		r := Rank((hr >> (16 - 4*i)) & 0xF)
		if r == 0 {
			break
		}
		ranks = append(ranks, r)
	}
	return ranks
}

// Compare returns 1 if hr is stronger, -1 if weaker and 0 on a tie.
func (hr HandRank) Compare(other HandRank) int {
	switch {
	case hr > other:
		return 1
	case hr < other:
		return -1
	}
	return 0
}

// String returns a human-readable hand description.
func (hr HandRank) String() string {
	ranks := hr.Ranks()
	if len(ranks) == 0 {
		return hr.Type().String()
	}
	switch hr.Type() {
	case TwoPair, FullHouse:
		return fmt.Sprintf("%s (%s/%s)", hr.Type(), ranks[0], ranks[1])
	default:
		return fmt.Sprintf("%s (%s)", hr.Type(), ranks[0])
	}
}

func makeRank(t HandType, ranks ...Rank) HandRank {
	hr := HandRank(t) << typeShift
	for i, r := range ranks {
		hr |= HandRank(r) << (16 - 4*i)
	}
	return hr
}

// Eval5 ranks exactly five cards. The cards must be distinct and valid.
func Eval5(cards [5]Card) HandRank {
	var counts [Ace + 1]int
	flush := true
	for i, c := range cards {
		counts[c.Rank]++
		if i > 0 && c.Suit != cards[0].Suit {
			flush = false
		}
	}

	// Distinct ranks ordered by multiplicity, then rank, both descending.
	groups := make([]Rank, 0, 5)
	for r := Ace; r >= Two; r-- {
		if counts[r] > 0 {
			groups = append(groups, r)
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return counts[groups[i]] > counts[groups[j]]
	})

	if len(groups) == 5 {
		high := Rank(0)
		switch {
		case groups[0]-groups[4] == 4:
			high = groups[0]
		case groups[0] == Ace && groups[1] == Five:
			high = Five // wheel
		}
		switch {
		case high > 0 && flush:
			return makeRank(StraightFlush, high)
		case flush:
			return makeRank(Flush, groups...)
		case high > 0:
			return makeRank(Straight, high)
		default:
			return makeRank(HighCard, groups...)
		}
	}

	switch counts[groups[0]] {
	case 4:
		return makeRank(FourOfAKind, groups...)
	case 3:
		if counts[groups[1]] == 2 {
			return makeRank(FullHouse, groups...)
		}
		return makeRank(ThreeOfAKind, groups...)
	default:
		if counts[groups[1]] == 2 {
			return makeRank(TwoPair, groups...)
		}
		return makeRank(Pair, groups...)
	}
}

// Evaluate returns the rank of the best five-card hand among 5 to 7 cards.
func Evaluate(cards ...Card) (HandRank, error) {
	rank, _, err := BestHand(cards...)
	return rank, err
}

// BestHand returns the rank of the best five-card hand among 5 to 7 cards
// together with the five cards that make it.
func BestHand(cards ...Card) (HandRank, [5]Card, error) {
	var best [5]Card
	if len(cards) < 5 || len(cards) > 7 {
		return 0, best, fmt.Errorf("%w: got %d", ErrCardCount, len(cards))
	}
	var seen [52]bool
	for _, c := range cards {
		if !c.Valid() {
			return 0, best, fmt.Errorf("%w: %v", ErrInvalidCard, c)
		}
		if seen[c.index()] {
			return 0, best, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c.index()] = true
	}

	var bestRank HandRank
	found := false
	n := len(cards)
	var five [5]Card
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						five = [5]Card{cards[a], cards[b], cards[c], cards[d], cards[e]}
						if rank := Eval5(five); !found || rank > bestRank {
							bestRank, best, found = rank, five, true
						}
					}
				}
			}
		}
	}
	return bestRank, best, nil
}
