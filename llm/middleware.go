// Copyright (c) Microsoft. All rights reserved.

package llm

import (
	"context"
	"time"
)

// AgentHandler is the function signature for processing an agent run.
type AgentHandler func(ctx context.Context, req *AgentRequest) (*AgentResponse, error)

// AgentRequest carries the inputs for an agent run through the middleware pipeline.
type AgentRequest struct {
	AgentName string
	Messages  []Message
	Options   *ChatOptions
}

// AgentMiddleware wraps an [AgentHandler] to add cross-cutting behavior.
// Middleware should call next to continue the chain, or return early to short-circuit.
type AgentMiddleware func(next AgentHandler) AgentHandler

// ChatHandler is the function signature for processing a chat request.
type ChatHandler func(ctx context.Context, messages []Message, opts *ChatOptions) (*ChatResponse, error)

// ChatMiddleware wraps a [ChatHandler] to add cross-cutting behavior.
type ChatMiddleware func(next ChatHandler) ChatHandler

// ChainAgentMiddleware applies middleware in order (first in list = outermost wrapper).
func ChainAgentMiddleware(handler AgentHandler, mws ...AgentMiddleware) AgentHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	return handler
}

// ChainChatMiddleware applies middleware in order (first in list = outermost wrapper).
func ChainChatMiddleware(handler ChatHandler, mws ...ChatMiddleware) ChatHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	return handler
}

// TimeoutMiddleware bounds every model call to d. A zero or negative d
// leaves calls unbounded.
func TimeoutMiddleware(d time.Duration) ChatMiddleware {
	return func(next ChatHandler) ChatHandler {
		if d <= 0 {
			return next
		}
		return func(ctx context.Context, messages []Message, opts *ChatOptions) (*ChatResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, messages, opts)
		}
	}
}
