// Copyright (c) Microsoft. All rights reserved.

// Package openai provides an [llm.ChatClient] for the OpenAI Chat
// Completions API and for OpenAI-compatible deployments on Azure AI Foundry.
//
//	client := openai.New(os.Getenv("OPENAI_API_KEY"),
//	    openai.WithModel("gpt-4o"),
//	)
//
// # Configuration
//
// Use functional options to configure the client:
//
//   - [WithModel]: set the default model
//   - [WithBaseURL]: override the API endpoint (e.g., Azure AI Foundry)
//   - [WithAzureCredential]: authenticate with an Azure AD token credential
//   - [WithHTTPClient]: provide a custom http.Client
//   - [WithHeaders]: add custom headers to every request
//   - [WithChatMiddleware]: wrap every call
//
// A [llm.ChatOptions.ResponseFormat] is sent as a strict json_schema
// response format.
//
// # Testing
//
// Provide a mock http.Client via [WithHTTPClient] with a custom RoundTripper.
package openai
