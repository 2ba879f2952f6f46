// Copyright (c) Microsoft. All rights reserved.

package show

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/talhadar90/number-guessing-game-show/game"
	"github.com/talhadar90/number-guessing-game-show/llm"
)

var actionFormat = &llm.ResponseFormat{
	Name:   "player_action",
	Schema: llm.MustSchemaFor[Action](),
}

// Contestant is a [game.Guesser] that asks a language model for every guess.
type Contestant struct {
	name   string
	agent  *llm.Agent
	logger *slog.Logger
}

var _ game.Guesser = (*Contestant)(nil)

// NewContestant creates a contestant named name that plays through client.
func NewContestant(client llm.ChatClient, name string, opts ...Option) *Contestant {
	s := newSettings(0.3, 300, opts)
	return &Contestant{
		name:   name,
		agent:  s.agent(client, name, contestantInstructions),
		logger: s.logger,
	}
}

// Name returns the contestant's name.
func (c *Contestant) Name() string { return c.name }

// Guess asks the model for the next guess. Replies that hold no integer, and
// replies the provider refused or could not deliver intact, are reported as
// [game.ErrMalformedGuess]. Other failures are returned as is.
func (c *Contestant) Guess(ctx context.Context, req game.GuessRequest) (int, error) {
	suggestion := Suggest(req)
	msg := llm.NewUserMessage(contestantPrompt(req, suggestion))
	msg.AuthorName = "host"

	resp, err := c.agent.Run(ctx, []llm.Message{msg},
		llm.WithRunOptions(&llm.ChatOptions{ResponseFormat: actionFormat}),
	)
	if err != nil {
		if errors.Is(err, llm.ErrContentFilter) || errors.Is(err, llm.ErrInvalidResponse) {
			return 0, fmt.Errorf("%w: %v", game.ErrMalformedGuess, err)
		}
		return 0, err
	}

	action, n, err := ParseAction(resp.Text())
	if err != nil {
		c.logger.DebugContext(ctx, "unusable contestant reply", "player", c.name, "reply", resp.Text())
		return 0, fmt.Errorf("%w: %v", game.ErrMalformedGuess, err)
	}

	c.logger.InfoContext(ctx, "contestant decided",
		"player", c.name,
		"guess", n,
		"suggested", suggestion,
		"confidence", action.Confidence,
		"reasoning", action.Reasoning,
	)
	return n, nil
}
