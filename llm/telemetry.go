// Copyright (c) Microsoft. All rights reserved.

package llm

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// LoggingMiddleware returns an [AgentMiddleware] that logs one record per
// agent run: the agent, its reply's finish reason and the tokens it spent.
func LoggingMiddleware(logger *slog.Logger) AgentMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next AgentHandler) AgentHandler {
		return func(ctx context.Context, req *AgentRequest) (*AgentResponse, error) {
			start := time.Now()
			logger.DebugContext(ctx, "agent run started",
				"agent", req.AgentName,
				"message_count", len(req.Messages),
			)

			resp, err := next(ctx, req)
			if err != nil {
				logger.ErrorContext(ctx, "agent run failed",
					"agent", req.AgentName,
					"duration", time.Since(start),
					"error", err,
				)
				return nil, err
			}

			logger.InfoContext(ctx, "agent replied",
				"agent", req.AgentName,
				"model", resp.ModelID,
				"finish_reason", resp.FinishReason,
				"duration", time.Since(start),
				"input_tokens", resp.Usage.InputTokens,
				"output_tokens", resp.Usage.OutputTokens,
			)
			return resp, nil
		}
	}
}

// UsageMeter totals token usage per agent across a game.
// It is safe for concurrent use.
type UsageMeter struct {
	mu     sync.Mutex
	calls  map[string]int
	totals map[string]UsageDetails
}

// NewUsageMeter returns an empty meter.
func NewUsageMeter() *UsageMeter {
	return &UsageMeter{calls: make(map[string]int), totals: make(map[string]UsageDetails)}
}

// Middleware returns an [AgentMiddleware] that records every successful run.
func (m *UsageMeter) Middleware() AgentMiddleware {
	return func(next AgentHandler) AgentHandler {
		return func(ctx context.Context, req *AgentRequest) (*AgentResponse, error) {
			resp, err := next(ctx, req)
			if err == nil {
				m.add(req.AgentName, resp.Usage)
			}
			return resp, err
		}
	}
}

func (m *UsageMeter) add(agent string, u UsageDetails) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.totals[agent]
	t.InputTokens += u.InputTokens
	t.OutputTokens += u.OutputTokens
	t.TotalTokens += u.TotalTokens
	m.totals[agent] = t
	m.calls[agent]++
}

// Usage returns the accumulated usage and run count of one agent.
func (m *UsageMeter) Usage(agent string) (UsageDetails, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals[agent], m.calls[agent]
}

// Total returns the usage summed over every agent.
func (m *UsageMeter) Total() UsageDetails {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sum UsageDetails
	for _, u := range m.totals {
		sum.InputTokens += u.InputTokens
		sum.OutputTokens += u.OutputTokens
		sum.TotalTokens += u.TotalTokens
	}
	return sum
}

// LogValue reports per-agent totals, so a meter can be logged directly.
func (m *UsageMeter) LogValue() slog.Value {
	m.mu.Lock()
	defer m.mu.Unlock()
	attrs := make([]slog.Attr, 0, len(m.totals))
	for agent, u := range m.totals {
		attrs = append(attrs, slog.Group(agent,
			"runs", m.calls[agent],
			"input_tokens", u.InputTokens,
			"output_tokens", u.OutputTokens,
		))
	}
	return slog.GroupValue(attrs...)
}
