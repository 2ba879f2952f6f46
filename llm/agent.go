// Copyright (c) Microsoft. All rights reserved.

package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Agent pairs a [ChatClient] with a name, system instructions, default
// options and middleware.
//
// Create one with [NewAgent] and functional options:
//
//	agent := llm.NewAgent(client,
//	    llm.WithName("Contestant 1"),
//	    llm.WithInstructions("You are a strategic player."),
//	)
type Agent struct {
	id              string
	name            string
	client          ChatClient
	instructions    string
	defaultOptions  *ChatOptions
	agentMiddleware []AgentMiddleware
	chatMiddleware  []ChatMiddleware
}

// AgentOption configures an [Agent] via [NewAgent].
type AgentOption func(*Agent)

// WithName sets the agent's display name.
func WithName(name string) AgentOption {
	return func(a *Agent) { a.name = name }
}

// WithInstructions sets the system instructions for the agent.
func WithInstructions(instructions string) AgentOption {
	return func(a *Agent) { a.instructions = instructions }
}

// WithDefaultOptions sets default [ChatOptions] for all requests.
func WithDefaultOptions(opts *ChatOptions) AgentOption {
	return func(a *Agent) { a.defaultOptions = opts }
}

// WithAgentMiddleware adds [AgentMiddleware] to the agent pipeline.
func WithAgentMiddleware(mws ...AgentMiddleware) AgentOption {
	return func(a *Agent) { a.agentMiddleware = append(a.agentMiddleware, mws...) }
}

// WithChatMiddleware adds [ChatMiddleware] around every client call.
func WithChatMiddleware(mws ...ChatMiddleware) AgentOption {
	return func(a *Agent) { a.chatMiddleware = append(a.chatMiddleware, mws...) }
}

// NewAgent creates an Agent with the given [ChatClient] and options.
func NewAgent(client ChatClient, opts ...AgentOption) *Agent {
	a := &Agent{
		id:     uuid.NewString(),
		client: client,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ID returns the agent's unique identifier.
func (a *Agent) ID() string { return a.id }

// Name returns the agent's display name.
func (a *Agent) Name() string { return a.name }

// RunOption configures a single [Agent.Run] call.
type RunOption func(*runConfig)

type runConfig struct {
	options *ChatOptions
}

// WithRunOptions provides per-call [ChatOptions] overrides.
func WithRunOptions(opts *ChatOptions) RunOption {
	return func(c *runConfig) { c.options = opts }
}

// Run sends messages to the agent and returns a complete response.
func (a *Agent) Run(ctx context.Context, messages []Message, opts ...RunOption) (*AgentResponse, error) {
	cfg := &runConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := &AgentRequest{
		AgentName: a.name,
		Messages:  messages,
		Options:   cfg.options,
	}
	return ChainAgentMiddleware(a.handle, a.agentMiddleware...)(ctx, req)
}

func (a *Agent) handle(ctx context.Context, req *AgentRequest) (*AgentResponse, error) {
	chatOpts := MergeChatOptions(a.defaultOptions, req.Options)
	if a.instructions != "" {
		if chatOpts.Instructions != "" {
			chatOpts.Instructions = a.instructions + "\n" + chatOpts.Instructions
		} else {
			chatOpts.Instructions = a.instructions
		}
	}
	messages := PrependInstructions(req.Messages, chatOpts.Instructions)

	slog.DebugContext(ctx, "agent run",
		"agent_id", a.id,
		"agent_name", a.name,
		"message_count", len(messages),
	)

	chat := ChainChatMiddleware(a.client.Response, a.chatMiddleware...)
	resp, err := chat(ctx, messages, chatOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecution, err)
	}

	return &AgentResponse{
		Messages:     resp.Messages,
		ResponseID:   resp.ResponseID,
		AgentID:      a.id,
		ModelID:      resp.ModelID,
		FinishReason: resp.FinishReason,
		Usage:        resp.Usage,
		Raw:          resp.Raw,
	}, nil
}
