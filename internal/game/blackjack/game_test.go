package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/cardgym/internal/deck"
	"github.com/mitchelldurbincs/cardgym/internal/testutil"
)

func card(suit deck.Suit, rank byte) deck.Card {
	return deck.Card{Suit: suit, Rank: rank}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		hand []deck.Card
		want int
	}{
		{"hard total", []deck.Card{card(deck.Spades, '9'), card(deck.Hearts, '8')}, 17},
		{"soft ace", []deck.Card{card(deck.Spades, 'A'), card(deck.Hearts, '6')}, 17},
		{"blackjack", []deck.Card{card(deck.Spades, 'A'), card(deck.Hearts, 'K')}, 21},
		{"ace drops to one", []deck.Card{card(deck.Spades, 'A'), card(deck.Hearts, '9'), card(deck.Clubs, '5')}, 15},
		{"two aces", []deck.Card{card(deck.Spades, 'A'), card(deck.Hearts, 'A')}, 12},
		{"court cards", []deck.Card{card(deck.Spades, 'J'), card(deck.Hearts, 'Q'), card(deck.Clubs, 'K')}, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.hand))
		})
	}
}

func TestNewGameValidatesPlayers(t *testing.T) {
	_, err := NewGame(0, testutil.NewTestRNG(1))
	assert.Error(t, err)
	_, err = NewGame(MaxPlayers+1, testutil.NewTestRNG(1))
	assert.Error(t, err)

	g, err := NewGame(2, testutil.NewTestRNG(1))
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumPlayers())
}

func TestResetDealsHands(t *testing.T) {
	g, err := NewGame(2, testutil.NewTestRNG(42))
	require.NoError(t, err)
	require.NoError(t, g.Reset())

	assert.Equal(t, 0, g.CurrentPlayer())
	assert.False(t, g.IsOver())
	assert.Equal(t, []int{ActionHit, ActionStand}, g.LegalActions())

	for seat := 0; seat < 2; seat++ {
		state := g.State(seat)
		obs := state.RawObs.(Observation)
		assert.Len(t, obs.Hand, 2)
		assert.Len(t, obs.DealerHand, 1, "only the dealer up card is visible during play")
	}
}

func TestStandEverywhereFinishesHand(t *testing.T) {
	g, err := NewGame(2, testutil.NewTestRNG(42))
	require.NoError(t, err)
	require.NoError(t, g.Reset())

	require.NoError(t, g.Apply(ActionStand))
	assert.False(t, g.IsOver())
	assert.Equal(t, 1, g.CurrentPlayer())

	require.NoError(t, g.Apply(ActionStand))
	require.True(t, g.IsOver())

	payoffs := g.Payoffs()
	require.Len(t, payoffs, 2)
	for _, p := range payoffs {
		assert.Contains(t, []float32{-1, 0, 1}, p)
	}

	// Dealer must have played out to at least 17.
	state := g.State(0)
	obs := state.RawObs.(Observation)
	assert.GreaterOrEqual(t, obs.DealerScore, 17)
}

func TestHittingUntilBust(t *testing.T) {
	g, err := NewGame(1, testutil.NewTestRNG(7))
	require.NoError(t, err)
	require.NoError(t, g.Reset())

	// A single seat hitting forever must eventually bust and end the hand.
	for !g.IsOver() {
		require.NoError(t, g.Apply(ActionHit))
	}
	assert.Equal(t, float32(-1), g.Payoffs()[0])
}

func TestApplyAfterGameOver(t *testing.T) {
	g, err := NewGame(1, testutil.NewTestRNG(1))
	require.NoError(t, err)
	require.NoError(t, g.Reset())
	require.NoError(t, g.Apply(ActionStand))
	require.True(t, g.IsOver())

	assert.Error(t, g.Apply(ActionHit))
	assert.Nil(t, g.LegalActions())
}

func TestStateObsEncoding(t *testing.T) {
	g, err := NewGame(1, testutil.NewTestRNG(3))
	require.NoError(t, err)
	require.NoError(t, g.Reset())

	state := g.State(0)
	require.Len(t, state.Obs, 2)
	obs := state.RawObs.(Observation)
	assert.Equal(t, float32(obs.Score), state.Obs[0])
	assert.Equal(t, float32(obs.DealerScore), state.Obs[1])
	assert.Equal(t, []string{"hit", "stand"}, state.RawLegalActions)
}
