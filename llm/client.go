// Copyright (c) Microsoft. All rights reserved.

package llm

import "context"

// ChatClient is the interface for interacting with an LLM backend.
// Provider packages (e.g., anthropic, openai) implement this interface.
type ChatClient interface {
	// Response sends messages to the model and returns a complete response.
	Response(ctx context.Context, messages []Message, opts *ChatOptions) (*ChatResponse, error)
}
