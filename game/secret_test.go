// Copyright (c) Microsoft. All rights reserved.

package game_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talhadar90/number-guessing-game-show/game"
)

func TestNewSecret_WithinBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		s, err := game.NewSecret(rng, 1, 100)
		require.NoError(t, err)
		require.True(t, s >= 1 && s <= 100, "secret %d out of range", s)
		seen[s] = true
	}
	// 2000 draws over 100 values should hit nearly all of them.
	assert.Greater(t, len(seen), 90)
}

func TestNewSecret_SingleValue(t *testing.T) {
	s, err := game.NewSecret(nil, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, s)
}

func TestNewSecret_InvalidRange(t *testing.T) {
	_, err := game.NewSecret(nil, 10, 1)
	assert.ErrorIs(t, err, game.ErrInvalidRange)
}
