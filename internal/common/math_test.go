package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbs(t *testing.T) {
	assert.Equal(t, 5, Abs(-5))
	assert.Equal(t, 5, Abs(5))
	assert.Equal(t, 0, Abs(0))
}

func TestMin(t *testing.T) {
	assert.Equal(t, 2, Min(2, 7))
	assert.Equal(t, 2, Min(7, 2))
	assert.Equal(t, -7, Min(-7, 2))
}

func TestMax(t *testing.T) {
	assert.Equal(t, 7, Max(2, 7))
	assert.Equal(t, 7, Max(7, 2))
	assert.Equal(t, 2, Max(-7, 2))
}
