package limitholdem

import (
	"sort"

	"github.com/mitchelldurbincs/cardgym/internal/deck"
)

// Hand categories, strongest last.
const (
	CategoryHighCard = iota
	CategoryPair
	CategoryTwoPair
	CategoryThreeOfAKind
	CategoryStraight
	CategoryFlush
	CategoryFullHouse
	CategoryFourOfAKind
	CategoryStraightFlush
)

var categoryNames = []string{
	"high card", "pair", "two pair", "three of a kind", "straight",
	"flush", "full house", "four of a kind", "straight flush",
}

// HandRank is a comparable ranking of a five-card hand.
type HandRank struct {
	Category int
	// Tiebreak holds the group high-card values ordered by significance,
	// aces high.
	Tiebreak []int
}

// Name returns the category name.
func (h HandRank) Name() string {
	return categoryNames[h.Category]
}

// Compare returns -1, 0 or 1 as h ranks below, equal to or above other.
func (h HandRank) Compare(other HandRank) int {
	if h.Category != other.Category {
		if h.Category < other.Category {
			return -1
		}
		return 1
	}
	for i := 0; i < len(h.Tiebreak) && i < len(other.Tiebreak); i++ {
		if h.Tiebreak[i] != other.Tiebreak[i] {
			if h.Tiebreak[i] < other.Tiebreak[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// aceHighValue maps a card to 0 (deuce) through 12 (ace).
func aceHighValue(c deck.Card) int {
	idx := c.RankIndex()
	if idx == 0 {
		return 12
	}
	return idx - 1
}

// Evaluate returns the best five-card rank over any number of cards >= 5 by
// scanning every five-card combination.
func Evaluate(cards []deck.Card) HandRank {
	if len(cards) == 5 {
		return rankFive(cards)
	}

	best := HandRank{Category: -1}
	pick := make([]deck.Card, 5)
	var recurse func(start, chosen int)
	recurse = func(start, chosen int) {
		if chosen == 5 {
			r := rankFive(pick)
			if best.Category == -1 || r.Compare(best) > 0 {
				best = r
			}
			return
		}
		for i := start; i <= len(cards)-(5-chosen); i++ {
			pick[chosen] = cards[i]
			recurse(i+1, chosen+1)
		}
	}
	recurse(0, 0)
	return best
}

// rankFive ranks exactly five cards.
func rankFive(cards []deck.Card) HandRank {
	values := make([]int, 5)
	flush := true
	for i, c := range cards {
		values[i] = aceHighValue(c)
		if c.Suit != cards[0].Suit {
			flush = false
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	straightHigh, straight := straightHighCard(values)

	switch {
	case straight && flush:
		return HandRank{Category: CategoryStraightFlush, Tiebreak: []int{straightHigh}}
	case flush:
		return HandRank{Category: CategoryFlush, Tiebreak: values}
	case straight:
		return HandRank{Category: CategoryStraight, Tiebreak: []int{straightHigh}}
	}

	// Group values by multiplicity.
	counts := make(map[int]int)
	for _, v := range values {
		counts[v]++
	}
	type group struct{ value, count int }
	groups := make([]group, 0, len(counts))
	for v, n := range counts {
		groups = append(groups, group{value: v, count: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].value > groups[j].value
	})

	tiebreak := make([]int, 0, len(groups))
	for _, grp := range groups {
		tiebreak = append(tiebreak, grp.value)
	}

	switch {
	case groups[0].count == 4:
		return HandRank{Category: CategoryFourOfAKind, Tiebreak: tiebreak}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandRank{Category: CategoryFullHouse, Tiebreak: tiebreak}
	case groups[0].count == 3:
		return HandRank{Category: CategoryThreeOfAKind, Tiebreak: tiebreak}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandRank{Category: CategoryTwoPair, Tiebreak: tiebreak}
	case groups[0].count == 2:
		return HandRank{Category: CategoryPair, Tiebreak: tiebreak}
	}
	return HandRank{Category: CategoryHighCard, Tiebreak: tiebreak}
}

// straightHighCard detects a straight in five descending values, including
// the wheel (A-2-3-4-5, which plays as five high).
func straightHighCard(desc []int) (int, bool) {
	run := true
	for i := 1; i < 5; i++ {
		if desc[i] != desc[i-1]-1 {
			run = false
			break
		}
	}
	if run {
		return desc[0], true
	}
	// Wheel: A,5,4,3,2 sorts to [12,3,2,1,0].
	if desc[0] == 12 && desc[1] == 3 && desc[2] == 2 && desc[3] == 1 && desc[4] == 0 {
		return 3, true
	}
	return 0, false
}
