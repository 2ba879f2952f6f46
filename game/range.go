// Copyright (c) Microsoft. All rights reserved.

package game

import "fmt"

// Range is an inclusive interval of integers.
type Range struct {
	Lower int `json:"lower"`
	Upper int `json:"upper"`
}

// DefaultBounds is the range a secret is drawn from unless overridden.
var DefaultBounds = Range{Lower: 1, Upper: 100}

// Contains reports whether n lies within the range.
func (r Range) Contains(n int) bool {
	return r.Lower <= n && n <= r.Upper
}

// Inverted reports whether the lower bound exceeds the upper bound. An
// inverted valid range means the recorded feedback is contradictory.
func (r Range) Inverted() bool {
	return r.Lower > r.Upper
}

// Size returns the number of integers in the range, or 0 if it is inverted.
func (r Range) Size() int {
	if r.Inverted() {
		return 0
	}
	return r.Upper - r.Lower + 1
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Lower, r.Upper)
}
