// Copyright (c) Microsoft. All rights reserved.

package show_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/talhadar90/number-guessing-game-show/llm"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// scriptedClient replies with the queued texts in order and records prompts.
type scriptedClient struct {
	replies []string
	err     error
	prompts []string
	opts    []*llm.ChatOptions
}

func (c *scriptedClient) Response(ctx context.Context, msgs []llm.Message, opts *llm.ChatOptions) (*llm.ChatResponse, error) {
	c.prompts = append(c.prompts, msgs[len(msgs)-1].Text)
	c.opts = append(c.opts, opts)
	if c.err != nil {
		return nil, c.err
	}
	text := ""
	if len(c.replies) > 0 {
		text = c.replies[0]
		c.replies = c.replies[1:]
	}
	return &llm.ChatResponse{Messages: []llm.Message{llm.NewAssistantMessage(text)}}, nil
}
