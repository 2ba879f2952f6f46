// Copyright (c) Microsoft. All rights reserved.

package game

import (
	"fmt"
	"math/rand/v2"
)

// NewSecret draws a uniformly random integer in [lower, upper]. A nil rng uses
// the global source.
func NewSecret(rng *rand.Rand, lower, upper int) (int, error) {
	if lower > upper {
		return 0, fmt.Errorf("%w: lower %d > upper %d", ErrInvalidRange, lower, upper)
	}
	n := upper - lower + 1
	if rng == nil {
		return lower + rand.IntN(n), nil
	}
	return lower + rng.IntN(n), nil
}
