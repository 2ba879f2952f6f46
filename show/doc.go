// Copyright (c) Microsoft. All rights reserved.

// Package show provides the language-model backed cast of the game show:
// [Contestant], a [game.Guesser] that asks a model for each guess, and
// [Host], a [game.Narrator] that narrates every turn to a writer.
package show
