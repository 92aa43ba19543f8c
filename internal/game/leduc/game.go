// Package leduc implements heads-up Leduc Hold'em: a six-card deck (two
// suits of jack, queen, king), one private card per player, one board card
// revealed for the second betting round. A pair with the board beats a bare
// high card.
package leduc

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/cardgym/internal/common"
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
	numPlayers = 2
	numRounds  = 2
	// Raises per round are capped, first-round raises are worth 2 chips and
	// second-round raises 4.
	maxRaisesPerRound = 2
	ante              = 1
)

// maxBet is the most chips one player can stake: the ante plus every raise
// called in both rounds.
const maxBet = ante + 2*maxRaisesPerRound + 4*maxRaisesPerRound

// Card is one of the six Leduc cards.
type Card struct {
	Suit byte // 'S' or 'H'
	Rank byte // 'J', 'Q' or 'K'
}

// String renders the card as suit then rank, e.g. "SJ".
func (c Card) String() string {
	return fmt.Sprintf("%c%c", c.Suit, c.Rank)
}

func rankValue(rank byte) int {
	switch rank {
	case 'J':
		return 0
	case 'Q':
		return 1
	case 'K':
		return 2
	}
	return -1
}

// Game is the Leduc Hold'em rules engine.
type Game struct {
	rng *rand.Rand

	private [numPlayers]Card
	public  Card
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
	cards := make([]Card, 0, 6)
	for _, suit := range []byte{'S', 'H'} {
		for _, rank := range []byte{'J', 'Q', 'K'} {
			cards = append(cards, Card{Suit: suit, Rank: rank})
		}
	}
	g.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	g.private[0], g.private[1] = cards[0], cards[1]
	g.public = cards[2]
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
	if g.round == 0 {
		return 2
	}
	return 4
}

// LegalActions implements env.Game. Facing a bet the options are call, fold
// and (below the cap) raise; otherwise check and (below the cap) raise.
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
		return fmt.Errorf("leduc: hand is over")
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
		return fmt.Errorf("leduc: unknown action %d", action)
	}
	return nil
}

func (g *Game) endRound() {
	g.round++
	if g.round == numRounds {
		g.showdown()
		return
	}
	g.raises = 0
	g.checked = 0
	g.current = 0
}

// showdown ranks a board pair above a bare high card, then by rank.
func (g *Game) showdown() {
	s0 := g.handStrength(0)
	s1 := g.handStrength(1)
	switch {
	case s0 > s1:
		g.settle(0)
	case s1 > s0:
		g.settle(1)
	default:
		g.over = true
		g.payoffs = []float32{0, 0}
	}
}

func (g *Game) handStrength(seat int) int {
	v := rankValue(g.private[seat].Rank)
	if g.private[seat].Rank == g.public.Rank {
		return 3 + v
	}
	return v
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

// Observation is the readable Leduc view for one seat.
type Observation struct {
	Seat     int       `json:"seat"`
	Hand     string    `json:"hand"`
	Public   string    `json:"public_card"`
	AllChips []float32 `json:"all_chips"`
	Round    int       `json:"round"`
}

// String implements fmt.Stringer.
func (o Observation) String() string {
	public := o.Public
	if public == "" {
		public = "-"
	}
	return fmt.Sprintf("seat %d: hand %s, public %s, chips %v, round %d",
		o.Seat, o.Hand, public, o.AllChips, o.Round)
}

// State implements env.Game. The observation encodes the private card and
// (once revealed) the board card as rank one-hots plus the chips staked by
// both players, normalized by the betting cap.
func (g *Game) State(seat int) *env.State {
	obs := make([]float32, 8)
	obs[rankValue(g.private[seat].Rank)] = 1
	publicLabel := ""
	if g.round > 0 {
		obs[3+rankValue(g.public.Rank)] = 1
		publicLabel = g.public.String()
	}
	obs[6] = g.bets[seat] / maxBet
	obs[7] = g.bets[1-seat] / maxBet

	var legal []int
	if !g.over && seat == g.current {
		legal = g.LegalActions()
	}
	labels := make([]string, len(legal))
	for i, a := range legal {
		labels[i] = actionLabels[a]
	}

	return &env.State{
		Obs:          obs,
		LegalActions: legal,
		RawObs: Observation{
			Seat:     seat,
			Hand:     g.private[seat].String(),
			Public:   publicLabel,
			AllChips: []float32{g.bets[0], g.bets[1]},
			Round:    g.round,
		},
		RawLegalActions: labels,
		CurrentPlayer:   seat,
	}
}

func init() {
	env.Register("leduc-holdem", func(cfg env.Config) (env.Env, error) {
		if cfg.NumPlayers != 0 && cfg.NumPlayers != numPlayers {
			return nil, fmt.Errorf("leduc-holdem is heads-up only, got %d players", cfg.NumPlayers)
		}
		return env.NewBase("leduc-holdem", NewGame(common.NewRNG(cfg.Seed))), nil
	})
}
