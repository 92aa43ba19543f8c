package uno

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/cardgym/internal/testutil"
)

func TestDeckComposition(t *testing.T) {
	cards := newDeck()
	require.Len(t, cards, 108)

	counts := make(map[string]int)
	for _, c := range cards {
		counts[c.String()]++
	}
	assert.Equal(t, 1, counts["r-0"])
	assert.Equal(t, 2, counts["r-5"])
	assert.Equal(t, 2, counts["g-skip"])
	assert.Equal(t, 2, counts["b-reverse"])
	assert.Equal(t, 2, counts["y-draw_2"])
	assert.Equal(t, 4, counts["w-wild"])
	assert.Equal(t, 4, counts["w-wild_draw_4"])
}

func TestActionLabels(t *testing.T) {
	assert.Equal(t, "r-0", ActionLabel(0))
	assert.Equal(t, "r-wild", ActionLabel(13))
	assert.Equal(t, "g-0", ActionLabel(15))
	assert.Equal(t, "y-wild_draw_4", ActionLabel(59))
	assert.Equal(t, "draw", ActionLabel(ActionDraw))
}

func TestNewGameValidatesPlayers(t *testing.T) {
	_, err := NewGame(1, testutil.NewTestRNG(1))
	assert.Error(t, err)
	_, err = NewGame(11, testutil.NewTestRNG(1))
	assert.Error(t, err)

	g, err := NewGame(4, testutil.NewTestRNG(1))
	require.NoError(t, err)
	assert.Equal(t, 4, g.NumPlayers())
}

func TestResetDealsSevenEach(t *testing.T) {
	g, err := NewGame(3, testutil.NewTestRNG(42))
	require.NoError(t, err)
	require.NoError(t, g.Reset())

	for seat := 0; seat < 3; seat++ {
		assert.Len(t, g.hands[seat], 7)
	}
	assert.True(t, g.target.IsNumber(), "the opening target must be a number card")
	assert.Equal(t, g.target.Color, g.color)
	assert.Equal(t, 0, g.CurrentPlayer())
	assert.False(t, g.IsOver())
}

func TestPlayable(t *testing.T) {
	g, err := NewGame(2, testutil.NewTestRNG(1))
	require.NoError(t, err)
	require.NoError(t, g.Reset())
	g.target = Card{Color: ColorRed, Trait: "5"}
	g.color = ColorRed

	assert.True(t, g.playable(Card{Color: ColorRed, Trait: "9"}), "color match")
	assert.True(t, g.playable(Card{Color: ColorGreen, Trait: "5"}), "trait match")
	assert.True(t, g.playable(Card{Color: ColorWild, Trait: TraitWild}))
	assert.True(t, g.playable(Card{Color: ColorWild, Trait: TraitWildFour}))
	assert.False(t, g.playable(Card{Color: ColorGreen, Trait: "9"}))
}

func TestLegalActionsExpandWilds(t *testing.T) {
	g, err := NewGame(2, testutil.NewTestRNG(1))
	require.NoError(t, err)
	require.NoError(t, g.Reset())
	g.target = Card{Color: ColorRed, Trait: "5"}
	g.color = ColorRed
	g.hands[0] = []Card{{Color: ColorWild, Trait: TraitWild}}
	g.current = 0

	legal := g.LegalActions()
	assert.Equal(t, []int{13, 28, 43, 58}, legal, "a wild is playable under every color")
}

func TestLegalActionsDrawWhenStuck(t *testing.T) {
	g, err := NewGame(2, testutil.NewTestRNG(1))
	require.NoError(t, err)
	require.NoError(t, g.Reset())
	g.target = Card{Color: ColorRed, Trait: "5"}
	g.color = ColorRed
	g.hands[0] = []Card{{Color: ColorGreen, Trait: "9"}, {Color: ColorBlue, Trait: TraitSkip}}
	g.current = 0

	assert.Equal(t, []int{ActionDraw}, g.LegalActions())
}

func TestDrawAddsCardAndPassesTurn(t *testing.T) {
	g, err := NewGame(2, testutil.NewTestRNG(1))
	require.NoError(t, err)
	require.NoError(t, g.Reset())
	before := len(g.hands[0])

	require.NoError(t, g.Apply(ActionDraw))
	assert.Len(t, g.hands[0], before+1)
	assert.Equal(t, 1, g.CurrentPlayer())
}

func TestSkipAdvancesTwo(t *testing.T) {
	g, err := NewGame(3, testutil.NewTestRNG(1))
	require.NoError(t, err)
	require.NoError(t, g.Reset())
	g.target = Card{Color: ColorRed, Trait: "5"}
	g.color = ColorRed
	g.hands[0] = []Card{{Color: ColorRed, Trait: TraitSkip}, {Color: ColorGreen, Trait: "1"}}
	g.current = 0

	action := colorIndex(ColorRed)*15 + traitIndex(TraitSkip)
	require.NoError(t, g.Apply(action))
	assert.Equal(t, 2, g.CurrentPlayer(), "skip jumps over the next seat")
	assert.Equal(t, TraitSkip, g.target.Trait)
}

func TestDrawTwoPunishesNextSeat(t *testing.T) {
	g, err := NewGame(3, testutil.NewTestRNG(1))
	require.NoError(t, err)
	require.NoError(t, g.Reset())
	g.target = Card{Color: ColorRed, Trait: "5"}
	g.color = ColorRed
	g.hands[0] = []Card{{Color: ColorRed, Trait: TraitDrawTwo}, {Color: ColorGreen, Trait: "1"}}
	g.current = 0
	next := len(g.hands[1])

	action := colorIndex(ColorRed)*15 + traitIndex(TraitDrawTwo)
	require.NoError(t, g.Apply(action))
	assert.Len(t, g.hands[1], next+2)
	assert.Equal(t, 2, g.CurrentPlayer())
}

func TestWildDeclaresColor(t *testing.T) {
	g, err := NewGame(2, testutil.NewTestRNG(1))
	require.NoError(t, err)
	require.NoError(t, g.Reset())
	g.target = Card{Color: ColorRed, Trait: "5"}
	g.color = ColorRed
	g.hands[0] = []Card{{Color: ColorWild, Trait: TraitWild}, {Color: ColorGreen, Trait: "1"}}
	g.current = 0

	action := colorIndex(ColorBlue)*15 + traitIndex(TraitWild)
	require.NoError(t, g.Apply(action))
	assert.Equal(t, ColorBlue, g.color)
	assert.Len(t, g.hands[0], 1)
}

func TestReverseFlipsDirection(t *testing.T) {
	g, err := NewGame(3, testutil.NewTestRNG(1))
	require.NoError(t, err)
	require.NoError(t, g.Reset())
	g.target = Card{Color: ColorRed, Trait: "5"}
	g.color = ColorRed
	g.hands[0] = []Card{{Color: ColorRed, Trait: TraitReverse}, {Color: ColorGreen, Trait: "1"}}
	g.current = 0

	action := colorIndex(ColorRed)*15 + traitIndex(TraitReverse)
	require.NoError(t, g.Apply(action))
	assert.Equal(t, -1, g.direction)
	assert.Equal(t, 2, g.CurrentPlayer(), "play wraps backwards after a reverse")
}

func TestEmptyHandWins(t *testing.T) {
	g, err := NewGame(2, testutil.NewTestRNG(1))
	require.NoError(t, err)
	require.NoError(t, g.Reset())
	g.target = Card{Color: ColorRed, Trait: "5"}
	g.color = ColorRed
	g.hands[0] = []Card{{Color: ColorRed, Trait: "7"}}
	g.current = 0

	action := colorIndex(ColorRed)*15 + traitIndex("7")
	require.NoError(t, g.Apply(action))
	require.True(t, g.IsOver())
	assert.Equal(t, 0, g.Winner())
	assert.Equal(t, []float32{1, -1}, g.Payoffs())
}

func TestRandomEpisodesTerminate(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		g, err := NewGame(2, testutil.NewTestRNG(seed))
		require.NoError(t, err)
		require.NoError(t, g.Reset())

		rng := testutil.NewTestRNG(seed + 1000)
		steps := 0
		for !g.IsOver() {
			legal := g.LegalActions()
			require.NotEmpty(t, legal, "seed %d stalled", seed)
			require.NoError(t, g.Apply(legal[rng.Intn(len(legal))]))
			steps++
			require.Less(t, steps, 100000, "seed %d runaway episode", seed)
		}
		require.NotEqual(t, -1, g.Winner())
	}
}

func TestStateEncoding(t *testing.T) {
	g, err := NewGame(2, testutil.NewTestRNG(1))
	require.NoError(t, err)
	require.NoError(t, g.Reset())
	g.target = Card{Color: ColorGreen, Trait: "3"}
	g.color = ColorGreen
	g.hands[0] = []Card{{Color: ColorRed, Trait: "5"}, {Color: ColorWild, Trait: TraitWild}}
	g.current = 0

	state := g.State(0)
	require.Len(t, state.Obs, 120)
	assert.Equal(t, float32(1), state.Obs[5], "red five in hand")
	for colorIdx := 0; colorIdx < 4; colorIdx++ {
		assert.Equal(t, float32(1), state.Obs[colorIdx*15+13], "wild counts toward every color")
	}
	assert.Equal(t, float32(1), state.Obs[60+colorIndex(ColorGreen)*15+3], "target one-hot")

	obs := state.RawObs.(Observation)
	assert.Equal(t, "g-3", obs.Target)
	assert.Equal(t, []int{2, 7}, obs.NumCards)
}
