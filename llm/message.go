// Copyright (c) Microsoft. All rights reserved.

package llm

import "strings"

// Role identifies the author of a [Message].
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// FinishReason indicates why the model stopped generating.
type FinishReason string

const (
	FinishReasonStop          FinishReason = "stop"
	FinishReasonLength        FinishReason = "length"
	FinishReasonContentFilter FinishReason = "content_filter"
)

// Message is a single chat message exchanged with a model.
type Message struct {
	Role       Role   `json:"role"`
	Text       string `json:"text"`
	AuthorName string `json:"authorName,omitempty"`
}

// NewUserMessage creates a user-role [Message].
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

// NewAssistantMessage creates an assistant-role [Message].
func NewAssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Text: text}
}

// NewSystemMessage creates a system-role [Message].
func NewSystemMessage(text string) Message {
	return Message{Role: RoleSystem, Text: text}
}

// PrependInstructions inserts a system message at the beginning of the message
// list if instructions are non-empty and no system message already exists.
func PrependInstructions(messages []Message, instructions string) []Message {
	if instructions == "" {
		return messages
	}
	for _, m := range messages {
		if m.Role == RoleSystem {
			return messages
		}
	}
	return append([]Message{NewSystemMessage(instructions)}, messages...)
}

// SplitSystem separates system messages from the conversation, joining their
// text with blank lines. Providers that take the system prompt as a separate
// request field use it.
func SplitSystem(messages []Message) (system string, rest []Message) {
	var parts []string
	for _, m := range messages {
		if m.Role == RoleSystem {
			if m.Text != "" {
				parts = append(parts, m.Text)
			}
			continue
		}
		rest = append(rest, m)
	}
	return strings.Join(parts, "\n\n"), rest
}
