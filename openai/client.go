// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"context"
	"fmt"
	"io"

	"github.com/talhadar90/number-guessing-game-show/llm"
)

// Client implements [llm.ChatClient] using the OpenAI Chat Completions API.
// Use [New] to create one.
type Client struct {
	tp      transport
	model   string
	handler llm.ChatHandler
}

// Verify interface compliance at compile time.
var _ llm.ChatClient = (*Client)(nil)

// New creates an OpenAI [Client] with the given API key and options.
func New(apiKey string, opts ...Option) *Client {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}
	c := &Client{
		tp:    newHTTPTransport(apiKey, cfg),
		model: cfg.model,
	}
	c.handler = llm.ChainChatMiddleware(c.coreResponse, cfg.chatMiddleware...)
	return c
}

// Model returns the default model.
func (c *Client) Model() string { return c.model }

// Response sends a chat completion request and returns the complete response.
func (c *Client) Response(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (*llm.ChatResponse, error) {
	return c.handler(ctx, messages, opts)
}

// coreResponse is the base implementation called by the middleware chain.
func (c *Client) coreResponse(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (*llm.ChatResponse, error) {
	req := buildRequest(messages, opts, c.model)

	resp, err := c.tp.do(ctx, "POST", "/chat/completions", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", llm.ErrService, err)
	}

	raw, err := unmarshalChatResponse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", llm.ErrInvalidResponse, err)
	}
	if len(raw.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", llm.ErrInvalidResponse)
	}

	result := parseChatResponse(raw)
	result.Raw = raw
	if result.FinishReason == llm.FinishReasonContentFilter {
		return result, fmt.Errorf("%w: completion %s", llm.ErrContentFilter, raw.ID)
	}
	return result, nil
}
