// Copyright (c) Microsoft. All rights reserved.

package llm_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/talhadar90/number-guessing-game-show/llm"
)

func okClient() *mockClient {
	return &mockClient{
		responseFn: func(ctx context.Context, msgs []llm.Message, opts *llm.ChatOptions) (*llm.ChatResponse, error) {
			return &llm.ChatResponse{
				Messages:     []llm.Message{llm.NewAssistantMessage("ok")},
				ModelID:      "test-model",
				FinishReason: llm.FinishReasonStop,
				Usage:        llm.UsageDetails{InputTokens: 10, OutputTokens: 4, TotalTokens: 14},
			}, nil
		},
	}
}

func TestChainMiddleware_ExecutionOrder(t *testing.T) {
	var order []string

	mw1 := llm.AgentMiddleware(func(next llm.AgentHandler) llm.AgentHandler {
		return func(ctx context.Context, req *llm.AgentRequest) (*llm.AgentResponse, error) {
			order = append(order, "mw1-before")
			resp, err := next(ctx, req)
			order = append(order, "mw1-after")
			return resp, err
		}
	})

	mw2 := llm.AgentMiddleware(func(next llm.AgentHandler) llm.AgentHandler {
		return func(ctx context.Context, req *llm.AgentRequest) (*llm.AgentResponse, error) {
			order = append(order, "mw2-before")
			resp, err := next(ctx, req)
			order = append(order, "mw2-after")
			return resp, err
		}
	})

	chat := llm.ChatMiddleware(func(next llm.ChatHandler) llm.ChatHandler {
		return func(ctx context.Context, msgs []llm.Message, opts *llm.ChatOptions) (*llm.ChatResponse, error) {
			order = append(order, "chat")
			return next(ctx, msgs, opts)
		}
	})

	agent := llm.NewAgent(okClient(), llm.WithAgentMiddleware(mw1, mw2), llm.WithChatMiddleware(chat))
	_, err := agent.Run(context.Background(), []llm.Message{llm.NewUserMessage("hi")})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// First middleware should be outermost
	expected := []string{"mw1-before", "mw2-before", "chat", "mw2-after", "mw1-after"}
	if len(order) != len(expected) {
		t.Fatalf("order = %v, want %v", order, expected)
	}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("order[%d] = %q, want %q", i, order[i], v)
		}
	}
}

func TestChatMiddleware_ShortCircuit(t *testing.T) {
	client := okClient()
	deny := llm.ChatMiddleware(func(next llm.ChatHandler) llm.ChatHandler {
		return func(ctx context.Context, msgs []llm.Message, opts *llm.ChatOptions) (*llm.ChatResponse, error) {
			return nil, llm.ErrMiddleware
		}
	})

	_, err := llm.NewAgent(client, llm.WithChatMiddleware(deny)).Run(context.Background(), nil)
	if !errors.Is(err, llm.ErrMiddleware) {
		t.Errorf("expected ErrMiddleware, got %v", err)
	}
	if client.calls != 0 {
		t.Errorf("client called %d times, want 0", client.calls)
	}
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	agent := llm.NewAgent(okClient(),
		llm.WithName("narrator"),
		llm.WithAgentMiddleware(llm.LoggingMiddleware(logger)),
	)
	if _, err := agent.Run(context.Background(), []llm.Message{llm.NewUserMessage("hi")}); err != nil {
		t.Fatalf("run: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"agent run started", "agent replied", "agent=narrator",
		"model=test-model", "finish_reason=stop", "input_tokens=10", "output_tokens=4",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLoggingMiddleware_Error(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	client := &mockClient{
		responseFn: func(ctx context.Context, msgs []llm.Message, opts *llm.ChatOptions) (*llm.ChatResponse, error) {
			return nil, llm.ErrService
		},
	}

	agent := llm.NewAgent(client, llm.WithAgentMiddleware(llm.LoggingMiddleware(logger)))
	if _, err := agent.Run(context.Background(), nil); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(buf.String(), "agent run failed") {
		t.Errorf("log output missing failure:\n%s", buf.String())
	}
}

func TestLoggingMiddleware_ReplyVisibleAtInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	agent := llm.NewAgent(okClient(), llm.WithName("host"), llm.WithAgentMiddleware(llm.LoggingMiddleware(logger)))
	if _, err := agent.Run(context.Background(), []llm.Message{llm.NewUserMessage("hi")}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Contains(buf.String(), "agent run started") {
		t.Errorf("start record should be debug only:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "agent replied") {
		t.Errorf("reply record missing at info:\n%s", buf.String())
	}
}

func TestUsageMeter(t *testing.T) {
	meter := llm.NewUsageMeter()
	client := okClient()
	contestant := llm.NewAgent(client, llm.WithName("Contestant 1"), llm.WithAgentMiddleware(meter.Middleware()))
	host := llm.NewAgent(client, llm.WithName("host"), llm.WithAgentMiddleware(meter.Middleware()))

	for range 2 {
		if _, err := contestant.Run(context.Background(), []llm.Message{llm.NewUserMessage("guess")}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := host.Run(context.Background(), []llm.Message{llm.NewUserMessage("narrate")}); err != nil {
		t.Fatal(err)
	}

	u, runs := meter.Usage("Contestant 1")
	if runs != 2 || u.InputTokens != 20 || u.OutputTokens != 8 || u.TotalTokens != 28 {
		t.Errorf("contestant usage = %+v over %d runs", u, runs)
	}
	if total := meter.Total(); total.TotalTokens != 42 {
		t.Errorf("Total = %+v", total)
	}

	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Info("usage", "tokens", meter)
	if !strings.Contains(buf.String(), "tokens.host.runs=1") {
		t.Errorf("LogValue output = %s", buf.String())
	}
}

func TestUsageMeter_IgnoresFailures(t *testing.T) {
	meter := llm.NewUsageMeter()
	client := &mockClient{
		responseFn: func(ctx context.Context, msgs []llm.Message, opts *llm.ChatOptions) (*llm.ChatResponse, error) {
			return nil, llm.ErrService
		},
	}
	agent := llm.NewAgent(client, llm.WithName("a"), llm.WithAgentMiddleware(meter.Middleware()))
	_, _ = agent.Run(context.Background(), nil)

	if _, runs := meter.Usage("a"); runs != 0 {
		t.Errorf("runs = %d, want 0", runs)
	}
}

func TestTimeoutMiddleware(t *testing.T) {
	slow := &mockClient{
		responseFn: func(ctx context.Context, msgs []llm.Message, opts *llm.ChatOptions) (*llm.ChatResponse, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	agent := llm.NewAgent(slow, llm.WithChatMiddleware(llm.TimeoutMiddleware(10*time.Millisecond)))

	_, err := agent.Run(context.Background(), []llm.Message{llm.NewUserMessage("hi")})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
}

func TestTimeoutMiddleware_ZeroPassesThrough(t *testing.T) {
	var hasDeadline bool
	client := &mockClient{
		responseFn: func(ctx context.Context, msgs []llm.Message, opts *llm.ChatOptions) (*llm.ChatResponse, error) {
			_, hasDeadline = ctx.Deadline()
			return &llm.ChatResponse{}, nil
		},
	}
	agent := llm.NewAgent(client, llm.WithChatMiddleware(llm.TimeoutMiddleware(0)))
	if _, err := agent.Run(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if hasDeadline {
		t.Error("zero timeout should not set a deadline")
	}
}
