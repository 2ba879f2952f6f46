// Copyright (c) Microsoft. All rights reserved.

package show

import (
	"log/slog"

	"github.com/talhadar90/number-guessing-game-show/llm"
)

type settings struct {
	logger          *slog.Logger
	chatMiddleware  []llm.ChatMiddleware
	agentMiddleware []llm.AgentMiddleware
	temperature     *float64
	maxTokens       *int
}

// Option configures a [Contestant] or a [Host].
type Option func(*settings)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithChatMiddleware wraps every model call, e.g. with [llm.RateLimitMiddleware].
func WithChatMiddleware(mws ...llm.ChatMiddleware) Option {
	return func(s *settings) { s.chatMiddleware = append(s.chatMiddleware, mws...) }
}

// WithAgentMiddleware wraps every agent run, e.g. with [llm.LoggingMiddleware].
func WithAgentMiddleware(mws ...llm.AgentMiddleware) Option {
	return func(s *settings) { s.agentMiddleware = append(s.agentMiddleware, mws...) }
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float64) Option {
	return func(s *settings) { s.temperature = &t }
}

// WithMaxTokens overrides the reply length cap.
func WithMaxTokens(n int) Option {
	return func(s *settings) { s.maxTokens = &n }
}

func newSettings(temperature float64, maxTokens int, opts []Option) *settings {
	s := &settings{temperature: &temperature, maxTokens: &maxTokens}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *settings) agent(client llm.ChatClient, name, instructions string) *llm.Agent {
	return llm.NewAgent(client,
		llm.WithName(name),
		llm.WithInstructions(instructions),
		llm.WithDefaultOptions(&llm.ChatOptions{
			Temperature: s.temperature,
			MaxTokens:   s.maxTokens,
		}),
		llm.WithAgentMiddleware(s.agentMiddleware...),
		llm.WithChatMiddleware(s.chatMiddleware...),
	)
}
