// Copyright (c) Microsoft. All rights reserved.

package main

import (
	"fmt"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/talhadar90/number-guessing-game-show/anthropic"
	"github.com/talhadar90/number-guessing-game-show/config"
	"github.com/talhadar90/number-guessing-game-show/llm"
	"github.com/talhadar90/number-guessing-game-show/openai"
)

// newChatClient creates the client for the configured provider.
func newChatClient(cfg *config.Config) (llm.ChatClient, error) {
	switch cfg.Provider {
	case config.Anthropic:
		opts := []anthropic.Option{anthropic.WithModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		slog.Debug("using Anthropic", "model", cfg.Model)
		return anthropic.New(cfg.APIKey, opts...), nil

	case config.OpenAI:
		opts := []openai.Option{openai.WithModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		slog.Debug("using OpenAI", "model", cfg.Model)
		return openai.New(cfg.APIKey, opts...), nil

	case config.Azure:
		// Azure AI Foundry serves the OpenAI-compatible API.
		if cfg.APIKey == "" {
			slog.Debug("using Azure AI Foundry with Azure AD authentication", "endpoint", cfg.BaseURL)
			cred, err := azidentity.NewDefaultAzureCredential(nil)
			if err != nil {
				return nil, fmt.Errorf("create Azure credential: %w", err)
			}
			return openai.New("",
				openai.WithBaseURL(cfg.BaseURL),
				openai.WithAPIVersion(cfg.APIVersion),
				openai.WithModel(cfg.Model),
				openai.WithAzureCredential(cred),
			), nil
		}
		slog.Debug("using Azure AI Foundry with API key", "endpoint", cfg.BaseURL)
		return openai.New(cfg.APIKey,
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithAPIVersion(cfg.APIVersion),
			openai.WithModel(cfg.Model),
			openai.WithHeaders(map[string]string{"api-key": cfg.APIKey}),
		), nil

	default:
		return nil, fmt.Errorf("%w: unknown provider %q", config.ErrInvalid, cfg.Provider)
	}
}
