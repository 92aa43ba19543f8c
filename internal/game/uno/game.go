// Package uno implements the full 108-card Uno game for two or more seats.
// The 61-action space follows the card encoding: sixty play actions (four
// colors times fifteen traits, wilds declare their color through the action)
// plus one draw action.
package uno

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/mitchelldurbincs/cardgym/internal/common"
	"github.com/mitchelldurbincs/cardgym/internal/env"
)

// ActionDraw draws one card from the pile instead of playing.
const ActionDraw = 60

const (
	numActions     = 4*15 + 1
	initialHand    = 7
	minPlayers     = 2
	maxPlayersEver = 10
)

// Game is the Uno rules engine.
type Game struct {
	numPlayers int
	rng        *rand.Rand

	hands     [][]Card
	pile      []Card
	discard   []Card
	target    Card
	color     byte
	direction int
	current   int
	over      bool
	winner    int
}

// NewGame creates an engine for the given seat count. If rng is nil the
// process-wide default generator is used.
func NewGame(numPlayers int, rng *rand.Rand) (*Game, error) {
	if numPlayers < minPlayers || numPlayers > maxPlayersEver {
		return nil, fmt.Errorf("uno supports %d-%d players, got %d", minPlayers, maxPlayersEver, numPlayers)
	}
	if rng == nil {
		rng = common.DefaultRNG()
	}
	return &Game{numPlayers: numPlayers, rng: rng}, nil
}

// Reset implements env.Game.
func (g *Game) Reset() error {
	g.pile = newDeck()
	g.rng.Shuffle(len(g.pile), func(i, j int) {
		g.pile[i], g.pile[j] = g.pile[j], g.pile[i]
	})

	g.hands = make([][]Card, g.numPlayers)
	for i := 0; i < g.numPlayers; i++ {
		g.hands[i] = append([]Card(nil), g.pile[:initialHand]...)
		g.pile = g.pile[initialHand:]
	}

	// Flip until a number card starts the discard; action cards and wilds
	// go back under the pile.
	g.discard = g.discard[:0]
	for {
		top := g.pile[len(g.pile)-1]
		g.pile = g.pile[:len(g.pile)-1]
		if top.IsNumber() {
			g.target = top
			g.color = top.Color
			break
		}
		g.pile = append([]Card{top}, g.pile...)
	}

	g.direction = 1
	g.current = 0
	g.over = false
	g.winner = -1
	return nil
}

// CurrentPlayer implements env.Game.
func (g *Game) CurrentPlayer() int { return g.current }

// playable reports whether a hand card can legally be put on the target.
func (g *Game) playable(c Card) bool {
	if c.IsWild() {
		return true
	}
	return c.Color == g.color || c.Trait == g.target.Trait
}

// LegalActions implements env.Game. Wild cards expand to one action per
// declarable color; the draw action is only available when nothing in hand
// is playable.
func (g *Game) LegalActions() []int {
	if g.over {
		return nil
	}
	seen := make(map[int]bool)
	for _, c := range g.hands[g.current] {
		if !g.playable(c) {
			continue
		}
		if c.IsWild() {
			for colorIdx := range colors {
				seen[colorIdx*15+traitIndex(c.Trait)] = true
			}
		} else {
			seen[colorIndex(c.Color)*15+traitIndex(c.Trait)] = true
		}
	}
	if len(seen) == 0 {
		return []int{ActionDraw}
	}
	legal := make([]int, 0, len(seen))
	for a := range seen {
		legal = append(legal, a)
	}
	sort.Ints(legal)
	return legal
}

// Apply implements env.Game.
func (g *Game) Apply(action int) error {
	if g.over {
		return fmt.Errorf("uno: game is over")
	}
	if action == ActionDraw {
		g.drawCards(g.current, 1)
		if !g.over {
			g.advance(1)
		}
		return nil
	}
	if action < 0 || action >= ActionDraw {
		return fmt.Errorf("uno: unknown action %d", action)
	}

	color := colors[action/15]
	trait := traits[action%15]
	if err := g.removeFromHand(g.current, color, trait); err != nil {
		return err
	}

	g.discard = append(g.discard, g.target)
	g.target = Card{Color: color, Trait: trait}
	g.color = color

	if len(g.hands[g.current]) == 0 {
		g.over = true
		g.winner = g.current
		return nil
	}

	switch trait {
	case TraitSkip:
		g.advance(2)
	case TraitReverse:
		g.direction = -g.direction
		g.advance(1)
	case TraitDrawTwo:
		g.drawCards(g.next(1), 2)
		if !g.over {
			g.advance(2)
		}
	case TraitWildFour:
		g.drawCards(g.next(1), 4)
		if !g.over {
			g.advance(2)
		}
	default: // numbers and plain wild
		g.advance(1)
	}
	return nil
}

// removeFromHand discards one card matching the played action. A wild
// action removes a wild of that trait regardless of declared color.
func (g *Game) removeFromHand(seat int, color byte, trait string) error {
	hand := g.hands[seat]
	wild := trait == TraitWild || trait == TraitWildFour
	for i, c := range hand {
		if c.Trait != trait {
			continue
		}
		if wild || c.Color == color {
			g.hands[seat] = append(hand[:i], hand[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("uno: seat %d holds no card for %c-%s", seat, color, trait)
}

func (g *Game) next(k int) int {
	n := g.numPlayers
	return ((g.current+g.direction*k)%n + n) % n
}

func (g *Game) advance(k int) {
	g.current = g.next(k)
}

// drawCards moves n cards from the pile to a seat, recycling the discard
// pile when the draw pile runs dry. If both piles are exhausted the game
// ends and the seat holding the fewest cards wins.
func (g *Game) drawCards(seat, n int) {
	for i := 0; i < n; i++ {
		if len(g.pile) == 0 {
			g.replenish()
		}
		if len(g.pile) == 0 {
			g.endByExhaustion()
			return
		}
		g.hands[seat] = append(g.hands[seat], g.pile[len(g.pile)-1])
		g.pile = g.pile[:len(g.pile)-1]
	}
}

func (g *Game) replenish() {
	if len(g.discard) == 0 {
		return
	}
	g.pile = append(g.pile, g.discard...)
	g.discard = g.discard[:0]
	g.rng.Shuffle(len(g.pile), func(i, j int) {
		g.pile[i], g.pile[j] = g.pile[j], g.pile[i]
	})
}

func (g *Game) endByExhaustion() {
	g.over = true
	g.winner = 0
	for seat := 1; seat < g.numPlayers; seat++ {
		if len(g.hands[seat]) < len(g.hands[g.winner]) {
			g.winner = seat
		}
	}
}

// IsOver implements env.Game.
func (g *Game) IsOver() bool { return g.over }

// Winner returns the winning seat of a finished game.
func (g *Game) Winner() int { return g.winner }

// Payoffs implements env.Game: the winner scores +1, everyone else -1.
func (g *Game) Payoffs() []float32 {
	if !g.over {
		return nil
	}
	payoffs := make([]float32, g.numPlayers)
	for i := range payoffs {
		if i == g.winner {
			payoffs[i] = 1
		} else {
			payoffs[i] = -1
		}
	}
	return payoffs
}

// NumPlayers implements env.Game.
func (g *Game) NumPlayers() int { return g.numPlayers }

// NumActions implements env.Game.
func (g *Game) NumActions() int { return numActions }

// ActionLabel renders an action id as its card string or "draw".
func ActionLabel(action int) string {
	if action == ActionDraw {
		return "draw"
	}
	return fmt.Sprintf("%c-%s", colors[action/15], traits[action%15])
}

// Observation is the readable Uno view for one seat.
type Observation struct {
	Seat         int      `json:"seat"`
	Hand         []string `json:"hand"`
	Target       string   `json:"target"`
	CurrentColor string   `json:"current_color"`
	NumCards     []int    `json:"num_cards"`
	Direction    int      `json:"direction"`
}

// String implements fmt.Stringer.
func (o Observation) String() string {
	return fmt.Sprintf("seat %d: hand %v, target %s, color %s, opponents hold %v",
		o.Seat, o.Hand, o.Target, o.CurrentColor, o.NumCards)
}

// State implements env.Game. The first sixty observation slots count the
// seat's hand per play action (a wild counts toward each color it could
// declare), the next sixty one-hot the current target under the declared
// color.
func (g *Game) State(seat int) *env.State {
	obs := make([]float32, 120)
	for _, c := range g.hands[seat] {
		if c.IsWild() {
			for colorIdx := range colors {
				obs[colorIdx*15+traitIndex(c.Trait)]++
			}
		} else {
			obs[colorIndex(c.Color)*15+traitIndex(c.Trait)]++
		}
	}
	if ci := colorIndex(g.color); ci >= 0 {
		obs[60+ci*15+traitIndex(g.target.Trait)] = 1
	}

	var legal []int
	if !g.over && seat == g.current {
		legal = g.LegalActions()
	}
	labels := make([]string, len(legal))
	for i, a := range legal {
		labels[i] = ActionLabel(a)
	}

	hand := make([]string, len(g.hands[seat]))
	for i, c := range g.hands[seat] {
		hand[i] = c.String()
	}
	numCards := make([]int, g.numPlayers)
	for i, h := range g.hands {
		numCards[i] = len(h)
	}

	return &env.State{
		Obs:          obs,
		LegalActions: legal,
		RawObs: Observation{
			Seat:         seat,
			Hand:         hand,
			Target:       g.target.String(),
			CurrentColor: string(g.color),
			NumCards:     numCards,
			Direction:    g.direction,
		},
		RawLegalActions: labels,
		CurrentPlayer:   seat,
	}
}

func init() {
	env.Register("uno", func(cfg env.Config) (env.Env, error) {
		numPlayers := cfg.NumPlayers
		if numPlayers == 0 {
			numPlayers = minPlayers
		}
		g, err := NewGame(numPlayers, common.NewRNG(cfg.Seed))
		if err != nil {
			return nil, err
		}
		return env.NewBase("uno", g), nil
	})
}
