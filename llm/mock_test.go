// Copyright (c) Microsoft. All rights reserved.

package llm_test

import (
	"context"

	"github.com/talhadar90/number-guessing-game-show/llm"
)

// mockClient is a ChatClient whose behavior is supplied by the test.
type mockClient struct {
	responseFn func(ctx context.Context, msgs []llm.Message, opts *llm.ChatOptions) (*llm.ChatResponse, error)
	calls      int
}

func (m *mockClient) Response(ctx context.Context, msgs []llm.Message, opts *llm.ChatOptions) (*llm.ChatResponse, error) {
	m.calls++
	return m.responseFn(ctx, msgs, opts)
}
