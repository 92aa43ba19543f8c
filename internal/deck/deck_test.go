package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/cardgym/internal/testutil"
)

func TestNewDeckComplete(t *testing.T) {
	d := New(testutil.NewTestRNG(1))
	require.Equal(t, 52, d.Remaining())

	seen := make(map[Card]bool)
	for d.Remaining() > 0 {
		c, err := d.Draw()
		require.NoError(t, err)
		assert.False(t, seen[c], "card %s dealt twice", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}

func TestShuffleDeterministic(t *testing.T) {
	a := New(testutil.NewTestRNG(42))
	b := New(testutil.NewTestRNG(42))
	a.Shuffle()
	b.Shuffle()
	for a.Remaining() > 0 {
		ca, err := a.Draw()
		require.NoError(t, err)
		cb, err := b.Draw()
		require.NoError(t, err)
		assert.Equal(t, ca, cb, "same seed must produce the same shuffle")
	}
}

func TestDrawEmpty(t *testing.T) {
	d := New(testutil.NewTestRNG(1))
	for i := 0; i < 52; i++ {
		_, err := d.Draw()
		require.NoError(t, err)
	}
	_, err := d.Draw()
	assert.ErrorIs(t, err, ErrEmptyDeck)
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "SA", Card{Suit: Spades, Rank: 'A'}.String())
	assert.Equal(t, "HT", Card{Suit: Hearts, Rank: 'T'}.String())
	assert.Equal(t, "CK", Card{Suit: Clubs, Rank: 'K'}.String())
}

func TestBlackjackValue(t *testing.T) {
	assert.Equal(t, 1, Card{Suit: Spades, Rank: 'A'}.BlackjackValue())
	assert.Equal(t, 2, Card{Suit: Spades, Rank: '2'}.BlackjackValue())
	assert.Equal(t, 9, Card{Suit: Spades, Rank: '9'}.BlackjackValue())
	assert.Equal(t, 10, Card{Suit: Spades, Rank: 'T'}.BlackjackValue())
	assert.Equal(t, 10, Card{Suit: Spades, Rank: 'Q'}.BlackjackValue())
}

func TestRankIndex(t *testing.T) {
	assert.Equal(t, 0, Card{Suit: Spades, Rank: 'A'}.RankIndex())
	assert.Equal(t, 12, Card{Suit: Spades, Rank: 'K'}.RankIndex())
	assert.Equal(t, -1, Card{Suit: Spades, Rank: 'X'}.RankIndex())
}
