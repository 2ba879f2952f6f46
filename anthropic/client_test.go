// Copyright (c) Microsoft. All rights reserved.

package anthropic_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/talhadar90/number-guessing-game-show/anthropic"
	"github.com/talhadar90/number-guessing-game-show/llm"
)

// fakeServer serves the Messages API, recording the last request body.
func fakeServer(t *testing.T, status int, reply any, sent *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q", got)
		}
		if sent != nil {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, sent)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func message(text, stop string) map[string]any {
	return map[string]any{
		"id":            "msg_01",
		"type":          "message",
		"role":          "assistant",
		"model":         "claude-test",
		"content":       []map[string]any{{"type": "text", "text": text}},
		"stop_reason":   stop,
		"stop_sequence": nil,
		"usage":         map[string]any{"input_tokens": 12, "output_tokens": 7},
	}
}

func newClient(srv *httptest.Server, opts ...anthropic.Option) *anthropic.Client {
	base := []anthropic.Option{
		anthropic.WithModel("claude-test"),
		anthropic.WithBaseURL(srv.URL),
		anthropic.WithMaxRetries(0),
	}
	return anthropic.New("test-key", append(base, opts...)...)
}

func TestClient_Response_Basic(t *testing.T) {
	var sent map[string]any
	srv := fakeServer(t, 200, message("Fifty it is!", "end_turn"), &sent)
	client := newClient(srv)

	resp, err := client.Response(context.Background(), []llm.Message{
		llm.NewSystemMessage("You are a contestant."),
		llm.NewUserMessage("The range is [1, 100]."),
		llm.NewUserMessage("Your guess?"),
	}, &llm.ChatOptions{Temperature: llm.Float(0.4), MaxTokens: llm.Int(200)})
	if err != nil {
		t.Fatalf("Response: %v", err)
	}

	if resp.Text() != "Fifty it is!" {
		t.Errorf("Text = %q", resp.Text())
	}
	if resp.ResponseID != "msg_01" || resp.ModelID != "claude-test" {
		t.Errorf("ids = %q %q", resp.ResponseID, resp.ModelID)
	}
	if resp.FinishReason != llm.FinishReasonStop {
		t.Errorf("FinishReason = %q", resp.FinishReason)
	}
	if resp.Usage.InputTokens != 12 || resp.Usage.OutputTokens != 7 || resp.Usage.TotalTokens != 19 {
		t.Errorf("Usage = %+v", resp.Usage)
	}

	if sent["model"] != "claude-test" {
		t.Errorf("model = %v", sent["model"])
	}
	if sent["max_tokens"] != float64(200) {
		t.Errorf("max_tokens = %v", sent["max_tokens"])
	}
	if sent["temperature"] != 0.4 {
		t.Errorf("temperature = %v", sent["temperature"])
	}
	system, _ := sent["system"].([]any)
	if len(system) != 1 {
		t.Fatalf("system = %v", sent["system"])
	}
	if block, _ := system[0].(map[string]any); block["text"] != "You are a contestant." {
		t.Errorf("system block = %v", block)
	}
	msgs, _ := sent["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("consecutive user messages should merge, got %d", len(msgs))
	}
}

func TestClient_ResponseFormatGoesToSystemPrompt(t *testing.T) {
	var sent map[string]any
	srv := fakeServer(t, 200, message(`{"number": 42}`, "end_turn"), &sent)
	client := newClient(srv)

	_, err := client.Response(context.Background(),
		[]llm.Message{llm.NewUserMessage("guess")},
		&llm.ChatOptions{ResponseFormat: &llm.ResponseFormat{
			Name:   "action",
			Schema: json.RawMessage(`{"type":"object","properties":{"number":{"type":"integer"}}}`),
		}},
	)
	if err != nil {
		t.Fatal(err)
	}

	system, _ := sent["system"].([]any)
	if len(system) != 1 {
		t.Fatalf("system = %v", sent["system"])
	}
	text, _ := system[0].(map[string]any)["text"].(string)
	if !strings.Contains(text, `"number":{"type":"integer"}`) {
		t.Errorf("schema missing from system prompt: %q", text)
	}
	if sent["max_tokens"] != float64(anthropic.DefaultMaxTokens) {
		t.Errorf("max_tokens = %v", sent["max_tokens"])
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		typ    string
		want   error
	}{
		{"unauthorized", 401, "authentication_error", llm.ErrAuth},
		{"bad request", 400, "invalid_request_error", llm.ErrInvalidRequest},
		{"rate limited", 429, "rate_limit_error", llm.ErrRateLimit},
		{"overloaded", 529, "overloaded_error", llm.ErrService},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := map[string]any{
				"type":  "error",
				"error": map[string]any{"type": tc.typ, "message": "nope"},
			}
			srv := fakeServer(t, tc.status, body, nil)
			client := newClient(srv)

			_, err := client.Response(context.Background(), []llm.Message{llm.NewUserMessage("hi")}, nil)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			var svcErr *llm.ServiceError
			if !errors.As(err, &svcErr) {
				t.Fatal("expected ServiceError")
			}
			if svcErr.StatusCode != tc.status {
				t.Errorf("StatusCode = %d", svcErr.StatusCode)
			}
			if svcErr.Code != tc.typ {
				t.Errorf("Code = %q", svcErr.Code)
			}
			if svcErr.Message != "nope" {
				t.Errorf("Message = %q", svcErr.Message)
			}
		})
	}
}

func TestClient_Refusal(t *testing.T) {
	srv := fakeServer(t, 200, message("", "refusal"), nil)
	_, err := newClient(srv).Response(context.Background(), []llm.Message{llm.NewUserMessage("hi")}, nil)
	if !errors.Is(err, llm.ErrContentFilter) {
		t.Errorf("err = %v, want ErrContentFilter", err)
	}
}

func TestClient_RequiresConversation(t *testing.T) {
	srv := fakeServer(t, 200, message("unused", "end_turn"), nil)
	_, err := newClient(srv).Response(context.Background(), []llm.Message{llm.NewSystemMessage("only system")}, nil)
	if !errors.Is(err, llm.ErrInvalidRequest) {
		t.Errorf("err = %v, want ErrInvalidRequest", err)
	}
}

func TestClient_ChatMiddleware(t *testing.T) {
	srv := fakeServer(t, 200, message("ok", "end_turn"), nil)
	calls := 0
	mw := llm.ChatMiddleware(func(next llm.ChatHandler) llm.ChatHandler {
		return func(ctx context.Context, msgs []llm.Message, opts *llm.ChatOptions) (*llm.ChatResponse, error) {
			calls++
			return next(ctx, msgs, opts)
		}
	})

	client := newClient(srv, anthropic.WithChatMiddleware(mw))
	if client.Model() != "claude-test" {
		t.Errorf("Model = %q", client.Model())
	}
	if _, err := client.Response(context.Background(), []llm.Message{llm.NewUserMessage("hi")}, nil); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("calls = %d", calls)
	}
}

func TestClient_HTTPClientAndMaxTokens(t *testing.T) {
	var sent map[string]any
	srv := fakeServer(t, 200, message("17", "end_turn"), &sent)

	var requests int
	httpClient := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		requests++
		return http.DefaultTransport.RoundTrip(r)
	})}
	client := newClient(srv, anthropic.WithHTTPClient(httpClient), anthropic.WithMaxTokens(64))

	if _, err := client.Response(context.Background(), []llm.Message{llm.NewUserMessage("guess")}, nil); err != nil {
		t.Fatal(err)
	}
	if requests != 1 {
		t.Errorf("requests through custom client = %d, want 1", requests)
	}
	if sent["max_tokens"] != float64(64) {
		t.Errorf("max_tokens = %v, want 64", sent["max_tokens"])
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
