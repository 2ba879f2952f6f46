// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"encoding/json"

	"github.com/talhadar90/number-guessing-game-show/llm"
)

// chatRequest is the OpenAI Chat Completions API request body.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float64        `json:"temperature,omitempty"`
	MaxTokens      *int            `json:"max_completion_tokens,omitempty"`
	Stop           []string        `json:"stop,omitempty"`
	User           string          `json:"user,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

type responseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *jsonSchema `json:"json_schema,omitempty"`
}

type jsonSchema struct {
	Name   string          `json:"name"`
	Schema json.RawMessage `json:"schema"`
	Strict bool            `json:"strict"`
}

// buildRequest converts llm types into an OpenAI API request.
func buildRequest(messages []llm.Message, opts *llm.ChatOptions, defaultModel string) *chatRequest {
	req := &chatRequest{
		Model: defaultModel,
	}
	if opts != nil {
		if opts.ModelID != "" {
			req.Model = opts.ModelID
		}
		req.Temperature = opts.Temperature
		req.MaxTokens = opts.MaxTokens
		req.Stop = opts.Stop
		req.User = opts.User
		req.ResponseFormat = convertResponseFormat(opts.ResponseFormat)
	}

	req.Messages = convertMessages(messages)
	return req
}

// convertMessages translates llm Messages into OpenAI chat messages.
func convertMessages(messages []llm.Message) []chatMessage {
	result := make([]chatMessage, 0, len(messages))
	for _, msg := range messages {
		result = append(result, chatMessage{
			Role:    string(msg.Role),
			Content: msg.Text,
			Name:    sanitizeName(msg.AuthorName),
		})
	}
	return result
}

func convertResponseFormat(rf *llm.ResponseFormat) *responseFormat {
	if rf == nil {
		return nil
	}
	if len(rf.Schema) == 0 {
		return &responseFormat{Type: "json_object"}
	}
	name := rf.Name
	if name == "" {
		name = "response"
	}
	return &responseFormat{
		Type: "json_schema",
		JSONSchema: &jsonSchema{
			Name:   sanitizeName(name),
			Schema: rf.Schema,
			Strict: true,
		},
	}
}

// sanitizeName maps a display name onto the [a-zA-Z0-9_-] alphabet the API
// accepts for message and schema names.
func sanitizeName(s string) string {
	if s == "" {
		return ""
	}
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}
