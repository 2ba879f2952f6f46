// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/talhadar90/number-guessing-game-show/llm"
)

type clientConfig struct {
	baseURL         string
	apiVersion      string
	httpClient      *http.Client
	headers         map[string]string
	model           string
	azureCredential azcore.TokenCredential
	chatMiddleware  []llm.ChatMiddleware
}

// Option configures an OpenAI [Client].
type Option func(*clientConfig)

// WithBaseURL points the client at another OpenAI-compatible endpoint, such
// as an Azure AI Foundry deployment or a local model server.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) { c.baseURL = url }
}

// WithAPIVersion adds the api-version query parameter Azure deployments
// require. Empty leaves the URL untouched.
func WithAPIVersion(v string) Option {
	return func(c *clientConfig) { c.apiVersion = v }
}

// WithHTTPClient sets the http.Client. Defaults to http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = client }
}

// WithHeaders adds headers to every request, e.g. Azure's api-key.
func WithHeaders(headers map[string]string) Option {
	return func(c *clientConfig) { c.headers = headers }
}

// WithModel sets the model used when the call does not name one.
func WithModel(model string) Option {
	return func(c *clientConfig) { c.model = model }
}

// WithAzureCredential authenticates with Azure AD tokens from cred instead
// of an API key.
func WithAzureCredential(cred azcore.TokenCredential) Option {
	return func(c *clientConfig) { c.azureCredential = cred }
}

// WithChatMiddleware wraps every call; the first middleware is outermost.
func WithChatMiddleware(mw ...llm.ChatMiddleware) Option {
	return func(c *clientConfig) { c.chatMiddleware = append(c.chatMiddleware, mw...) }
}
