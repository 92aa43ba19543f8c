// Package deck provides the standard 52-card deck used by the card game
// engines. All shuffling is driven by an injected RNG so that games are
// reproducible for a fixed seed.
package deck

import (
	"errors"
	"math/rand"

	"github.com/mitchelldurbincs/cardgym/internal/common"
)

// ErrEmptyDeck is returned when drawing from a deck with no cards left.
var ErrEmptyDeck = errors.New("deck is empty")

// Deck is an ordered pile of cards with a draw position.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a full 52-card deck in canonical order. If rng is nil the
// process-wide default generator is used.
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = common.DefaultRNG()
	}

	cards := make([]Card, 0, 52)
	for _, s := range Suits {
		for i := 0; i < len(Ranks); i++ {
			cards = append(cards, Card{Suit: s, Rank: Ranks[i]})
		}
	}
	return &Deck{cards: cards, rng: rng}
}

// Shuffle randomizes the remaining cards in place.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, nil
}

// MustDraw draws the top card and panics on an empty deck. Game engines use
// it in spots where deck exhaustion is impossible by construction.
func (d *Deck) MustDraw() Card {
	c, err := d.Draw()
	if err != nil {
		panic(err)
	}
	return c
}

// Remaining reports how many cards are left to draw.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
