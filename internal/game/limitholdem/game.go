// Package limitholdem implements heads-up limit Texas Hold'em with fixed
// raise sizes: four betting rounds, raises of 2 chips before and on the
// flop and 4 chips on the turn and river, at most four raises per round.
// Both players post a one-chip ante instead of blinds.
package limitholdem

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/cardgym/internal/common"
	"github.com/mitchelldurbincs/cardgym/internal/deck"
	"github.com/mitchelldurbincs/cardgym/internal/env"
)

// Action ids.
const (
	ActionCall  = 0
	ActionRaise = 1
	ActionFold  = 2
	ActionCheck = 3

	numActions = 2 + 2
)

var actionLabels = []string{"call", "raise", "fold", "check"}

const (
	numPlayers        = 2
	numRounds         = 4
	maxRaisesPerRound = 4
	ante              = 1
)

// maxBet is the most chips one player can stake across all four rounds.
const maxBet = ante + 2*maxRaisesPerRound + 2*maxRaisesPerRound + 4*maxRaisesPerRound + 4*maxRaisesPerRound

// roundNames labels the betting rounds for observations.
var roundNames = []string{"preflop", "flop", "turn", "river"}

// Game is the limit hold'em rules engine.
type Game struct {
	rng *rand.Rand

	d       *deck.Deck
	hole    [numPlayers][]deck.Card
	board   []deck.Card
	round   int
	bets    [numPlayers]float32
	raises  int
	checked int
	folded  int
	current int
	over    bool
	payoffs []float32
}

// NewGame creates a heads-up engine. If rng is nil the process-wide default
// generator is used.
func NewGame(rng *rand.Rand) *Game {
	if rng == nil {
		rng = common.DefaultRNG()
	}
	return &Game{rng: rng}
}

// Reset implements env.Game.
func (g *Game) Reset() error {
	g.d = deck.New(g.rng)
	g.d.Shuffle()

	for i := 0; i < numPlayers; i++ {
		g.hole[i] = []deck.Card{g.d.MustDraw(), g.d.MustDraw()}
	}
	g.board = g.board[:0]
	g.round = 0
	g.bets = [numPlayers]float32{ante, ante}
	g.raises = 0
	g.checked = 0
	g.folded = -1
	g.current = 0
	g.over = false
	g.payoffs = nil
	return nil
}

// CurrentPlayer implements env.Game.
func (g *Game) CurrentPlayer() int { return g.current }

func (g *Game) maxStake() float32 {
	if g.bets[0] > g.bets[1] {
		return g.bets[0]
	}
	return g.bets[1]
}

func (g *Game) raiseAmount() float32 {
	if g.round < 2 {
		return 2
	}
	return 4
}

// LegalActions implements env.Game.
func (g *Game) LegalActions() []int {
	if g.over {
		return nil
	}
	facingBet := g.bets[g.current] < g.maxStake()

	var legal []int
	if facingBet {
		legal = append(legal, ActionCall)
	}
	if g.raises < maxRaisesPerRound {
		legal = append(legal, ActionRaise)
	}
	if facingBet {
		legal = append(legal, ActionFold)
	} else {
		legal = append(legal, ActionCheck)
	}
	return legal
}

// Apply implements env.Game.
func (g *Game) Apply(action int) error {
	if g.over {
		return fmt.Errorf("limitholdem: hand is over")
	}
	switch action {
	case ActionCall:
		g.bets[g.current] = g.maxStake()
		g.endRound()
	case ActionRaise:
		g.bets[g.current] = g.maxStake() + g.raiseAmount()
		g.raises++
		g.checked = 0
		g.current = 1 - g.current
	case ActionFold:
		g.folded = g.current
		g.settle(1 - g.current)
	case ActionCheck:
		g.checked++
		if g.checked == numPlayers {
			g.endRound()
		} else {
			g.current = 1 - g.current
		}
	default:
		return fmt.Errorf("limitholdem: unknown action %d", action)
	}
	return nil
}

func (g *Game) endRound() {
	g.round++
	if g.round == numRounds {
		g.showdown()
		return
	}

	// Deal the community cards for the new street: three on the flop, one
	// each on the turn and river.
	switch g.round {
	case 1:
		g.board = append(g.board, g.d.MustDraw(), g.d.MustDraw(), g.d.MustDraw())
	case 2, 3:
		g.board = append(g.board, g.d.MustDraw())
	}
	g.raises = 0
	g.checked = 0
	g.current = 0
}

func (g *Game) showdown() {
	r0 := Evaluate(append(append([]deck.Card(nil), g.hole[0]...), g.board...))
	r1 := Evaluate(append(append([]deck.Card(nil), g.hole[1]...), g.board...))
	switch r0.Compare(r1) {
	case 1:
		g.settle(0)
	case -1:
		g.settle(1)
	default:
		g.over = true
		g.payoffs = []float32{0, 0}
	}
}

// settle ends the hand: the winner collects the loser's stake.
func (g *Game) settle(winner int) {
	g.over = true
	loser := 1 - winner
	g.payoffs = make([]float32, numPlayers)
	g.payoffs[winner] = g.bets[loser]
	g.payoffs[loser] = -g.bets[loser]
}

// IsOver implements env.Game.
func (g *Game) IsOver() bool { return g.over }

// Payoffs implements env.Game.
func (g *Game) Payoffs() []float32 { return g.payoffs }

// NumPlayers implements env.Game.
func (g *Game) NumPlayers() int { return numPlayers }

// NumActions implements env.Game.
func (g *Game) NumActions() int { return numActions }

// Observation is the readable hold'em view for one seat.
type Observation struct {
	Seat     int       `json:"seat"`
	Hole     []string  `json:"hole"`
	Board    []string  `json:"board"`
	AllChips []float32 `json:"all_chips"`
	Round    string    `json:"round"`
}

// String implements fmt.Stringer.
func (o Observation) String() string {
	return fmt.Sprintf("seat %d: hole %v, board %v, chips %v, %s",
		o.Seat, o.Hole, o.Board, o.AllChips, o.Round)
}

// State implements env.Game. The observation one-hot encodes the 52 cards
// visible to the seat (hole plus board) and appends both stakes normalized
// by the betting cap.
func (g *Game) State(seat int) *env.State {
	obs := make([]float32, 54)
	for _, c := range g.hole[seat] {
		obs[cardIndex(c)] = 1
	}
	for _, c := range g.board {
		obs[cardIndex(c)] = 1
	}
	obs[52] = g.bets[seat] / maxBet
	obs[53] = g.bets[1-seat] / maxBet

	var legal []int
	if !g.over && seat == g.current {
		legal = g.LegalActions()
	}
	labels := make([]string, len(legal))
	for i, a := range legal {
		labels[i] = actionLabels[a]
	}

	round := g.round
	if round >= numRounds {
		round = numRounds - 1
	}

	return &env.State{
		Obs:          obs,
		LegalActions: legal,
		RawObs: Observation{
			Seat:     seat,
			Hole:     cardStrings(g.hole[seat]),
			Board:    cardStrings(g.board),
			AllChips: []float32{g.bets[0], g.bets[1]},
			Round:    roundNames[round],
		},
		RawLegalActions: labels,
		CurrentPlayer:   seat,
	}
}

// cardIndex flattens a card to 0..51 by suit then rank.
func cardIndex(c deck.Card) int {
	suit := 0
	switch c.Suit {
	case deck.Spades:
		suit = 0
	case deck.Hearts:
		suit = 1
	case deck.Diamonds:
		suit = 2
	case deck.Clubs:
		suit = 3
	}
	return suit*13 + c.RankIndex()
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func init() {
	env.Register("limit-holdem", func(cfg env.Config) (env.Env, error) {
		if cfg.NumPlayers != 0 && cfg.NumPlayers != numPlayers {
			return nil, fmt.Errorf("limit-holdem is heads-up only, got %d players", cfg.NumPlayers)
		}
		return env.NewBase("limit-holdem", NewGame(common.NewRNG(cfg.Seed))), nil
	})
}
