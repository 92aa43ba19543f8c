package deck

import "fmt"

// Suit is one of the four French suits.
type Suit byte

const (
	Spades   Suit = 'S'
	Hearts   Suit = 'H'
	Diamonds Suit = 'D'
	Clubs    Suit = 'C'
)

// Suits lists all suits in deal order.
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Ranks lists all ranks from ace to king. The index of a rank in this string
// is its RankIndex.
const Ranks = "A23456789TJQK"

// Card is a single playing card.
type Card struct {
	Suit Suit
	Rank byte
}

// String renders the card as suit letter followed by rank letter, e.g. "SA"
// for the ace of spades or "HT" for the ten of hearts.
func (c Card) String() string {
	return fmt.Sprintf("%c%c", c.Suit, c.Rank)
}

// RankIndex returns the rank position, 0 for ace through 12 for king.
// Returns -1 for an invalid rank byte.
func (c Card) RankIndex() int {
	for i := 0; i < len(Ranks); i++ {
		if Ranks[i] == c.Rank {
			return i
		}
	}
	return -1
}

// BlackjackValue returns the card's blackjack face value with aces counted
// as 1; ten and court cards count 10.
func (c Card) BlackjackValue() int {
	idx := c.RankIndex()
	if idx < 0 {
		return 0
	}
	if idx >= 9 { // T, J, Q, K
		return 10
	}
	return idx + 1
}
