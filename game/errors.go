// Copyright (c) Microsoft. All rights reserved.

package game

import "errors"

// Sentinel errors for use with errors.Is.
var (
	// ErrInvalidRange is returned when a range's lower bound exceeds its upper bound.
	ErrInvalidRange = errors.New("invalid range")

	// ErrNoPlayers is returned when a game is created with an empty roster.
	ErrNoPlayers = errors.New("no players")

	// ErrInvalidAttempts is returned for an attempt budget below one.
	ErrInvalidAttempts = errors.New("attempt budget must be at least 1")

	// ErrAlreadyStarted is returned when a started game is started again.
	ErrAlreadyStarted = errors.New("game already started")

	// ErrMalformedGuess marks a guess provider reply that is not a usable
	// integer. The controller treats it as a forfeited turn.
	ErrMalformedGuess = errors.New("malformed guess")
)
