// Copyright (c) Microsoft. All rights reserved.

package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Narrator observes the game. It has no influence on game state.
type Narrator interface {
	Started(ctx context.Context, g *Game)
	Played(ctx context.Context, g *Game, t Turn)
	Finished(ctx context.Context, g *Game)
}

type nopNarrator struct{}

func (nopNarrator) Started(context.Context, *Game)      {}
func (nopNarrator) Played(context.Context, *Game, Turn) {}
func (nopNarrator) Finished(context.Context, *Game)     {}

// Outcome summarizes a finished game.
type Outcome struct {
	Status Status
	Winner string
	Secret int
	Rounds int
	Turns  int
}

// Controller runs the turn loop of a [Game].
type Controller struct {
	game     *Game
	narrator Narrator
	logger   *slog.Logger
}

// ControllerOption configures a [Controller] via [NewController].
type ControllerOption func(*Controller)

// WithNarrator sets the narrator that is told about every turn.
func WithNarrator(n Narrator) ControllerOption {
	return func(c *Controller) { c.narrator = n }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

// NewController creates a Controller for g.
func NewController(g *Game, opts ...ControllerOption) *Controller {
	c := &Controller{game: g}
	for _, opt := range opts {
		opt(c)
	}
	if c.narrator == nil {
		c.narrator = nopNarrator{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Run plays the game until a player wins or every player is out of attempts.
// A game that has not been started is started first.
//
// Run returns early with the context's error when ctx is cancelled, and with
// the guesser's error when a guesser fails with anything other than
// [ErrMalformedGuess]. In both cases the game is left in progress.
func (c *Controller) Run(ctx context.Context) (*Outcome, error) {
	g := c.game
	if g.status == NotStarted {
		if err := g.Start(); err != nil {
			return nil, err
		}
		c.logger.InfoContext(ctx, "game started",
			"players", len(g.players),
			"attempts", g.attempts,
			"bounds", g.bounds.String(),
		)
		c.logger.DebugContext(ctx, "secret drawn", "secret", g.secret)
		c.narrator.Started(ctx, g)
	}

	for g.status == InProgress {
		g.round++
		for i, p := range g.players {
			if !p.Active() {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := c.playTurn(ctx, i); err != nil {
				return nil, err
			}
			if g.status == Won {
				break
			}
		}
		if g.status == InProgress && g.exhausted() {
			g.status = Exhausted
		}
	}

	c.narrator.Finished(ctx, g)

	out := &Outcome{
		Status: g.status,
		Secret: g.secret,
		Rounds: g.Round(),
		Turns:  g.seq,
	}
	if g.winner != nil {
		out.Winner = g.winner.Name
	}
	c.logger.InfoContext(ctx, "game over",
		"status", out.Status.String(),
		"winner", out.Winner,
		"rounds", out.Rounds,
		"turns", out.Turns,
	)
	return out, nil
}

func (c *Controller) playTurn(ctx context.Context, idx int) error {
	g := c.game
	p := g.players[idx]

	req := GuessRequest{
		Player:    p.Name,
		Round:     g.round,
		Bounds:    g.bounds,
		Valid:     g.valid,
		Remaining: p.Remaining,
		History:   append([]Result(nil), p.History...),
		Others:    g.othersResults(p),
	}

	guess, err := g.guessers[idx].Guess(ctx, req)
	if err != nil && !errors.Is(err, ErrMalformedGuess) {
		return fmt.Errorf("player %s: %w", p.Name, err)
	}
	if err == nil && !g.bounds.Contains(guess) {
		err = fmt.Errorf("%w: %d outside %s", ErrMalformedGuess, guess, g.bounds)
	}

	p.consume()
	g.seq++
	turn := Turn{
		Seq:       g.seq,
		Round:     g.round,
		Player:    p.Name,
		Remaining: p.Remaining,
	}

	if err != nil {
		p.Forfeits++
		turn.Forfeited = true
		turn.Reason = err.Error()
		turn.Valid = g.valid
		c.logger.WarnContext(ctx, "turn forfeited",
			"player", p.Name,
			"reason", err,
			"remaining", p.Remaining,
		)
		g.log = append(g.log, turn)
		c.narrator.Played(ctx, g, turn)
		return nil
	}

	if !g.valid.Contains(guess) {
		turn.OutOfRange = true
		c.logger.WarnContext(ctx, "guess outside valid range",
			"player", p.Name,
			"guess", guess,
			"valid", g.valid.String(),
		)
	}

	class, next := Classify(g.secret, guess, g.valid)
	g.valid = next
	result := Result{Guess: guess, Classification: class}
	p.History = append(p.History, result)

	turn.Result = result
	turn.Valid = next
	if next.Inverted() {
		turn.Contradictory = true
		c.logger.WarnContext(ctx, "valid range inverted, feedback is contradictory",
			"player", p.Name,
			"valid", next.String(),
		)
	}

	c.logger.InfoContext(ctx, "guess classified",
		"player", p.Name,
		"guess", guess,
		"classification", class.String(),
		"valid", next.String(),
		"remaining", p.Remaining,
	)

	if class == Correct {
		g.status = Won
		g.winner = p
	}
	g.log = append(g.log, turn)
	c.narrator.Played(ctx, g, turn)
	return nil
}
