// Package blackjack implements a multi-seat blackjack engine where every
// seat plays independently against a house dealer. The dealer is internal to
// the engine and does not occupy an agent seat.
package blackjack

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/cardgym/internal/common"
	"github.com/mitchelldurbincs/cardgym/internal/deck"
	"github.com/mitchelldurbincs/cardgym/internal/env"
)

// Action ids.
const (
	ActionHit   = 0
	ActionStand = 1

	numActions = 2
)

// Per-seat status over the course of a hand.
type seatStatus int

const (
	statusPlaying seatStatus = iota
	statusStood
	statusBust
)

var actionLabels = []string{"hit", "stand"}

// MaxPlayers keeps a single 52-card deck sufficient for the deal.
const MaxPlayers = 7

// Game is the blackjack rules engine.
type Game struct {
	numPlayers int
	rng        *rand.Rand

	d       *deck.Deck
	hands   [][]deck.Card
	dealer  []deck.Card
	status  []seatStatus
	current int
	over    bool
	payoffs []float32
}

// NewGame creates an engine for the given seat count. If rng is nil the
// process-wide default generator is used.
func NewGame(numPlayers int, rng *rand.Rand) (*Game, error) {
	if numPlayers < 1 || numPlayers > MaxPlayers {
		return nil, fmt.Errorf("blackjack supports 1-%d players, got %d", MaxPlayers, numPlayers)
	}
	if rng == nil {
		rng = common.DefaultRNG()
	}
	return &Game{numPlayers: numPlayers, rng: rng}, nil
}

// Score returns the best blackjack value of a hand, counting one ace as 11
// when that does not bust.
func Score(hand []deck.Card) int {
	total := 0
	aces := 0
	for _, c := range hand {
		total += c.BlackjackValue()
		if c.Rank == 'A' {
			aces++
		}
	}
	if aces > 0 && total+10 <= 21 {
		total += 10
	}
	return total
}

// Reset implements env.Game.
func (g *Game) Reset() error {
	g.d = deck.New(g.rng)
	g.d.Shuffle()

	g.hands = make([][]deck.Card, g.numPlayers)
	g.status = make([]seatStatus, g.numPlayers)
	for i := 0; i < g.numPlayers; i++ {
		g.hands[i] = []deck.Card{g.d.MustDraw(), g.d.MustDraw()}
	}
	g.dealer = []deck.Card{g.d.MustDraw(), g.d.MustDraw()}
	g.current = 0
	g.over = false
	g.payoffs = nil
	return nil
}

// CurrentPlayer implements env.Game.
func (g *Game) CurrentPlayer() int { return g.current }

// LegalActions implements env.Game.
func (g *Game) LegalActions() []int {
	if g.over {
		return nil
	}
	return []int{ActionHit, ActionStand}
}

// Apply implements env.Game.
func (g *Game) Apply(action int) error {
	if g.over {
		return fmt.Errorf("blackjack: hand is over")
	}
	switch action {
	case ActionHit:
		card, err := g.d.Draw()
		if err != nil {
			return fmt.Errorf("blackjack hit: %w", err)
		}
		g.hands[g.current] = append(g.hands[g.current], card)
		if Score(g.hands[g.current]) > 21 {
			g.status[g.current] = statusBust
			g.advance()
		}
	case ActionStand:
		g.status[g.current] = statusStood
		g.advance()
	default:
		return fmt.Errorf("blackjack: unknown action %d", action)
	}
	return nil
}

// advance moves to the next undecided seat; once all seats are settled the
// dealer plays out and the hand is judged.
func (g *Game) advance() {
	for g.current < g.numPlayers && g.status[g.current] != statusPlaying {
		g.current++
	}
	if g.current < g.numPlayers {
		return
	}
	g.playDealer()
	g.judge()
	g.over = true
}

// playDealer draws until the house total reaches 17.
func (g *Game) playDealer() {
	for Score(g.dealer) < 17 {
		card, err := g.d.Draw()
		if err != nil {
			return
		}
		g.dealer = append(g.dealer, card)
	}
}

func (g *Game) judge() {
	dealerScore := Score(g.dealer)
	g.payoffs = make([]float32, g.numPlayers)
	for i := 0; i < g.numPlayers; i++ {
		playerScore := Score(g.hands[i])
		switch {
		case g.status[i] == statusBust:
			g.payoffs[i] = -1
		case dealerScore > 21 || playerScore > dealerScore:
			g.payoffs[i] = 1
		case playerScore == dealerScore:
			g.payoffs[i] = 0
		default:
			g.payoffs[i] = -1
		}
	}
}

// IsOver implements env.Game.
func (g *Game) IsOver() bool { return g.over }

// Payoffs implements env.Game.
func (g *Game) Payoffs() []float32 { return g.payoffs }

// NumPlayers implements env.Game.
func (g *Game) NumPlayers() int { return g.numPlayers }

// NumActions implements env.Game.
func (g *Game) NumActions() int { return numActions }

// Observation is the readable blackjack view for one seat. Only the dealer's
// up card is visible while the hand is live; the full dealer hand is shown
// once the hand is over.
type Observation struct {
	Seat        int      `json:"seat"`
	Hand        []string `json:"hand"`
	Score       int      `json:"score"`
	DealerHand  []string `json:"dealer_hand"`
	DealerScore int      `json:"dealer_score"`
}

// String implements fmt.Stringer.
func (o Observation) String() string {
	return fmt.Sprintf("seat %d: hand %v (score %d), dealer %v (score %d)",
		o.Seat, o.Hand, o.Score, o.DealerHand, o.DealerScore)
}

// State implements env.Game.
func (g *Game) State(seat int) *env.State {
	dealerVisible := g.dealer
	if !g.over {
		dealerVisible = g.dealer[:1]
	}

	handStrings := cardStrings(g.hands[seat])
	dealerStrings := cardStrings(dealerVisible)
	obs := Observation{
		Seat:        seat,
		Hand:        handStrings,
		Score:       Score(g.hands[seat]),
		DealerHand:  dealerStrings,
		DealerScore: Score(dealerVisible),
	}

	var legal []int
	if !g.over && seat == g.current {
		legal = g.LegalActions()
	}
	labels := make([]string, len(legal))
	for i, a := range legal {
		labels[i] = actionLabels[a]
	}

	return &env.State{
		Obs:             []float32{float32(obs.Score), float32(obs.DealerScore)},
		LegalActions:    legal,
		RawObs:          obs,
		RawLegalActions: labels,
		CurrentPlayer:   seat,
	}
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func init() {
	env.Register("blackjack", func(cfg env.Config) (env.Env, error) {
		g, err := NewGame(cfg.NumPlayers, common.NewRNG(cfg.Seed))
		if err != nil {
			return nil, err
		}
		return env.NewBase("blackjack", g), nil
	})
}
