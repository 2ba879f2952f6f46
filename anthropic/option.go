// Copyright (c) Microsoft. All rights reserved.

package anthropic

import (
	"net/http"

	"github.com/talhadar90/number-guessing-game-show/llm"
)

// DefaultMaxTokens caps the reply length when no [llm.ChatOptions.MaxTokens] is given.
const DefaultMaxTokens = 1024

type clientConfig struct {
	model          string
	baseURL        string
	httpClient     *http.Client
	maxRetries     *int
	maxTokens      int64
	chatMiddleware []llm.ChatMiddleware
}

// Option configures an Anthropic [Client].
type Option func(*clientConfig)

// WithModel sets the default model for requests.
func WithModel(model string) Option {
	return func(c *clientConfig) { c.model = model }
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) { c.baseURL = url }
}

// WithHTTPClient provides a custom http.Client for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = client }
}

// WithMaxRetries sets how often the SDK retries a failed request. The SDK
// default is 2.
func WithMaxRetries(n int) Option {
	return func(c *clientConfig) { c.maxRetries = &n }
}

// WithMaxTokens sets the default reply length cap.
func WithMaxTokens(n int) Option {
	return func(c *clientConfig) { c.maxTokens = int64(n) }
}

// WithChatMiddleware adds middleware to the chat pipeline.
// Middleware is applied in the order provided (first = outermost).
func WithChatMiddleware(mw ...llm.ChatMiddleware) Option {
	return func(c *clientConfig) { c.chatMiddleware = append(c.chatMiddleware, mw...) }
}
