// Copyright (c) Microsoft. All rights reserved.

// Package game implements the number guessing game: the secret, the referee
// that classifies guesses and narrows the valid range, and the [Controller]
// that runs the turn loop over a roster of players.
//
// Guesses and narration are delegated to the [Guesser] and [Narrator]
// interfaces, so the loop can be driven by deterministic stubs in tests and
// by language-model backed players in the show:
//
//	g, err := game.New([]game.Contestant{
//	    {Name: "Contestant 1", Guesser: p1},
//	    {Name: "Contestant 2", Guesser: p2},
//	})
//	if err != nil {
//	    return err
//	}
//	outcome, err := game.NewController(g, game.WithNarrator(host)).Run(ctx)
package game
