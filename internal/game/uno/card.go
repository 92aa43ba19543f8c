package uno

import "fmt"

// Colors, in action-space order. Wild cards carry ColorWild until played
// with a declared color.
const (
	ColorRed    = byte('r')
	ColorGreen  = byte('g')
	ColorBlue   = byte('b')
	ColorYellow = byte('y')
	ColorWild   = byte('w')
)

var colors = []byte{ColorRed, ColorGreen, ColorBlue, ColorYellow}

// Traits, in action-space order.
const (
	TraitSkip     = "skip"
	TraitReverse  = "reverse"
	TraitDrawTwo  = "draw_2"
	TraitWild     = "wild"
	TraitWildFour = "wild_draw_4"
)

var traits = []string{
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	TraitSkip, TraitReverse, TraitDrawTwo, TraitWild, TraitWildFour,
}

// Card is one Uno card.
type Card struct {
	Color byte   `json:"color"`
	Trait string `json:"trait"`
}

// String renders the card as color letter and trait, e.g. "r-5" or
// "w-wild_draw_4".
func (c Card) String() string {
	return fmt.Sprintf("%c-%s", c.Color, c.Trait)
}

// IsWild reports whether the card is a wild or wild-draw-four.
func (c Card) IsWild() bool {
	return c.Trait == TraitWild || c.Trait == TraitWildFour
}

// IsNumber reports whether the card is a plain number card.
func (c Card) IsNumber() bool {
	return len(c.Trait) == 1
}

func colorIndex(color byte) int {
	for i, c := range colors {
		if c == color {
			return i
		}
	}
	return -1
}

func traitIndex(trait string) int {
	for i, t := range traits {
		if t == trait {
			return i
		}
	}
	return -1
}

// newDeck builds the 108-card Uno deck: per color one zero, two of each
// digit one through nine, two each of skip, reverse and draw-two, plus four
// wilds and four wild-draw-fours.
func newDeck() []Card {
	cards := make([]Card, 0, 108)
	for _, color := range colors {
		cards = append(cards, Card{Color: color, Trait: "0"})
		for digit := 1; digit <= 9; digit++ {
			c := Card{Color: color, Trait: traits[digit]}
			cards = append(cards, c, c)
		}
		for _, trait := range []string{TraitSkip, TraitReverse, TraitDrawTwo} {
			c := Card{Color: color, Trait: trait}
			cards = append(cards, c, c)
		}
	}
	for i := 0; i < 4; i++ {
		cards = append(cards, Card{Color: ColorWild, Trait: TraitWild})
		cards = append(cards, Card{Color: ColorWild, Trait: TraitWildFour})
	}
	return cards
}
