// Copyright (c) Microsoft. All rights reserved.

package show

import (
	"slices"

	"github.com/talhadar90/number-guessing-game-show/game"
)

// Suggest returns the binary-search pick for req: the middle of the numbers
// in the valid range that nobody has guessed yet. When every number in the
// range has been tried, or the range is inverted, it returns the lower bound.
func Suggest(req game.GuessRequest) int {
	valid := req.Valid
	if valid.Inverted() {
		return valid.Lower
	}

	var tried []int
	for _, rs := range [][]game.Result{req.History, req.Others} {
		for _, r := range rs {
			if valid.Contains(r.Guess) {
				tried = append(tried, r.Guess)
			}
		}
	}
	slices.Sort(tried)
	tried = slices.Compact(tried)

	open := valid.Size() - len(tried)
	if open <= 0 {
		return valid.Lower
	}

	// Walk to the (open/2)-th untried number, stepping over tried ones.
	pick := valid.Lower + open/2
	for _, n := range tried {
		if n <= pick {
			pick++
		}
	}
	return pick
}
