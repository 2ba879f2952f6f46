// Copyright (c) Microsoft. All rights reserved.

package game

// Classification is the referee's verdict on a guess.
type Classification int

const (
	TooLow Classification = iota + 1
	TooHigh
	Correct
)

func (c Classification) String() string {
	switch c {
	case TooLow:
		return "too-low"
	case TooHigh:
		return "too-high"
	case Correct:
		return "correct"
	default:
		return "unknown"
	}
}

// Hint returns the feedback a player hears for the classification.
func (c Classification) Hint() string {
	switch c {
	case TooLow:
		return "higher"
	case TooHigh:
		return "lower"
	case Correct:
		return "correct"
	default:
		return ""
	}
}

// Classify compares guess against secret and returns the verdict together with
// the narrowed valid range. It has no side effects.
//
// A guess outside current is still classified against the secret. If the
// narrowed range ends up inverted it is returned as is.
func Classify(secret, guess int, current Range) (Classification, Range) {
	switch {
	case guess == secret:
		return Correct, current
	case guess < secret:
		next := current
		next.Lower = max(current.Lower, guess+1)
		return TooLow, next
	default:
		next := current
		next.Upper = min(current.Upper, guess-1)
		return TooHigh, next
	}
}
