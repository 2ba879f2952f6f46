// Copyright (c) Microsoft. All rights reserved.

// Package llm provides the provider-neutral chat layer the game show talks to:
// messages, request options, responses, errors and a small [Agent] that
// pairs a [ChatClient] with instructions and middleware.
//
// Provider packages (anthropic, openai) implement [ChatClient]:
//
//	client := anthropic.New(apiKey, anthropic.WithModel(model))
//
//	host := llm.NewAgent(client,
//	    llm.WithName("host"),
//	    llm.WithInstructions("You are the charismatic host of a game show."),
//	    llm.WithChatMiddleware(llm.RateLimitMiddleware(limiter)),
//	)
//
//	resp, err := host.Run(ctx, []llm.Message{llm.NewUserMessage("Open the show!")})
//
// # Middleware
//
// Two levels are available. Agent middleware wraps a whole [Agent.Run];
// chat middleware wraps each call into the [ChatClient]. [LoggingMiddleware]
// and [RateLimitMiddleware] are provided.
//
// # Structured replies
//
// [SchemaFor] renders the JSON Schema of a Go type so it can be placed in
// [ChatOptions.ResponseFormat] or quoted in a prompt.
package llm
