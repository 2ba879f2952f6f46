// Copyright (c) Microsoft. All rights reserved.

// Package anthropic provides an [llm.ChatClient] backed by the Anthropic
// Messages API through the official anthropic-sdk-go client.
//
//	client := anthropic.New(os.Getenv("ANTHROPIC_API_KEY"),
//	    anthropic.WithModel(os.Getenv("ANTHROPIC_MODEL_NAME")),
//	)
//
// System messages are lifted into the request's system prompt. When a
// [llm.ChatOptions.ResponseFormat] is set, its schema is appended to the
// system prompt with an instruction to answer with a bare JSON object.
//
// Transient failures (connection errors, 408, 409, 429 and 5xx responses) are
// retried by the SDK; see [WithMaxRetries].
package anthropic
