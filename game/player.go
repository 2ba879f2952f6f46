// Copyright (c) Microsoft. All rights reserved.

package game

import "context"

// DefaultAttempts is the attempt budget each player starts with.
const DefaultAttempts = 3

// Result is a classified guess.
type Result struct {
	Guess          int            `json:"guess"`
	Classification Classification `json:"classification"`
}

// Player is a roster entry and its progress in the current game.
type Player struct {
	Name      string
	Remaining int
	History   []Result
	Forfeits  int
}

// Active reports whether the player still has attempts left.
func (p *Player) Active() bool { return p.Remaining > 0 }

// Guesses returns the numbers the player has guessed so far, in order.
func (p *Player) Guesses() []int {
	out := make([]int, len(p.History))
	for i, r := range p.History {
		out[i] = r.Guess
	}
	return out
}

// consume uses up one attempt. It never takes Remaining below zero.
func (p *Player) consume() {
	if p.Remaining > 0 {
		p.Remaining--
	}
}

// GuessRequest is everything a [Guesser] may look at when choosing a number.
type GuessRequest struct {
	Player    string
	Round     int
	Bounds    Range
	Valid     Range
	Remaining int
	History   []Result
	Others    []Result
}

// Guesser produces a player's next guess. Implementations return an error
// wrapping [ErrMalformedGuess] when they could not come up with a usable
// integer; any other error aborts the game.
type Guesser interface {
	Guess(ctx context.Context, req GuessRequest) (int, error)
}

// GuesserFunc adapts a function to the [Guesser] interface.
type GuesserFunc func(ctx context.Context, req GuessRequest) (int, error)

func (f GuesserFunc) Guess(ctx context.Context, req GuessRequest) (int, error) {
	return f(ctx, req)
}

// Contestant pairs a player name with the guesser that plays for it.
type Contestant struct {
	Name    string
	Guesser Guesser
}
