// Copyright (c) Microsoft. All rights reserved.

package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/talhadar90/number-guessing-game-show/llm"
)

// Client implements [llm.ChatClient] using the Anthropic Messages API.
// Use [New] to create one.
type Client struct {
	api       sdk.Client
	model     string
	maxTokens int64
	handler   llm.ChatHandler
}

// Verify interface compliance at compile time.
var _ llm.ChatClient = (*Client)(nil)

// New creates an Anthropic [Client] with the given API key and options.
func New(apiKey string, opts ...Option) *Client {
	cfg := &clientConfig{maxTokens: DefaultMaxTokens}
	for _, o := range opts {
		o(cfg)
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(cfg.httpClient))
	}
	if cfg.maxRetries != nil {
		reqOpts = append(reqOpts, option.WithMaxRetries(*cfg.maxRetries))
	}

	c := &Client{
		api:       sdk.NewClient(reqOpts...),
		model:     cfg.model,
		maxTokens: cfg.maxTokens,
	}
	c.handler = llm.ChainChatMiddleware(c.coreResponse, cfg.chatMiddleware...)
	return c
}

// Model returns the default model.
func (c *Client) Model() string { return c.model }

// Response sends messages to the Messages API and returns the complete reply.
func (c *Client) Response(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (*llm.ChatResponse, error) {
	return c.handler(ctx, messages, opts)
}

func (c *Client) coreResponse(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (*llm.ChatResponse, error) {
	params, err := c.buildParams(messages, opts)
	if err != nil {
		return nil, err
	}

	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}

	resp := parseMessage(msg)
	if resp.FinishReason == llm.FinishReasonContentFilter {
		return resp, fmt.Errorf("%w: message %s refused", llm.ErrContentFilter, msg.ID)
	}
	return resp, nil
}

func (c *Client) buildParams(messages []llm.Message, opts *llm.ChatOptions) (sdk.MessageNewParams, error) {
	if opts == nil {
		opts = &llm.ChatOptions{}
	}

	system, rest := llm.SplitSystem(messages)
	if rf := opts.ResponseFormat; rf != nil && len(rf.Schema) > 0 {
		system = appendSchemaInstruction(system, rf.Schema)
	}

	conv := convertMessages(rest)
	if len(conv) == 0 {
		return sdk.MessageNewParams{}, fmt.Errorf("%w: no user or assistant messages", llm.ErrInvalidRequest)
	}

	params := sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages:  conv,
	}
	if opts.ModelID != "" {
		params.Model = sdk.Model(opts.ModelID)
	}
	if params.Model == "" {
		return sdk.MessageNewParams{}, fmt.Errorf("%w: no model", llm.ErrInvalidRequest)
	}
	if opts.MaxTokens != nil {
		params.MaxTokens = int64(*opts.MaxTokens)
	}
	if opts.Temperature != nil {
		params.Temperature = sdk.Float(*opts.Temperature)
	}
	if len(opts.Stop) > 0 {
		params.StopSequences = opts.Stop
	}
	if system != "" {
		params.System = []sdk.TextBlockParam{{Text: system}}
	}
	return params, nil
}

// convertMessages maps llm messages onto Messages API turns. Consecutive
// messages of the same role are merged, since the API expects alternation.
func convertMessages(messages []llm.Message) []sdk.MessageParam {
	var (
		out   []sdk.MessageParam
		role  llm.Role
		texts []string
	)
	flush := func() {
		if len(texts) == 0 {
			return
		}
		block := sdk.NewTextBlock(strings.Join(texts, "\n\n"))
		if role == llm.RoleAssistant {
			out = append(out, sdk.NewAssistantMessage(block))
		} else {
			out = append(out, sdk.NewUserMessage(block))
		}
		texts = nil
	}
	for _, m := range messages {
		r := m.Role
		if r != llm.RoleAssistant {
			r = llm.RoleUser
		}
		if r != role {
			flush()
			role = r
		}
		if m.Text != "" {
			texts = append(texts, m.Text)
		}
	}
	flush()
	return out
}

func appendSchemaInstruction(system string, schema json.RawMessage) string {
	instr := "Respond with a single JSON object and nothing else. It must match this JSON Schema:\n" + string(schema)
	if system == "" {
		return instr
	}
	return system + "\n\n" + instr
}

func parseMessage(msg *sdk.Message) *llm.ChatResponse {
	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	in, out := int(msg.Usage.InputTokens), int(msg.Usage.OutputTokens)
	return &llm.ChatResponse{
		Messages:     []llm.Message{llm.NewAssistantMessage(b.String())},
		ResponseID:   msg.ID,
		ModelID:      string(msg.Model),
		FinishReason: mapStopReason(string(msg.StopReason)),
		Usage: llm.UsageDetails{
			InputTokens:  in,
			OutputTokens: out,
			TotalTokens:  in + out,
		},
		Raw: msg,
	}
}

func mapStopReason(s string) llm.FinishReason {
	switch s {
	case "end_turn", "stop_sequence":
		return llm.FinishReasonStop
	case "max_tokens":
		return llm.FinishReasonLength
	case "refusal":
		return llm.FinishReasonContentFilter
	default:
		return llm.FinishReason(s)
	}
}

// mapError converts SDK errors into [llm.ServiceError] values.
func mapError(err error) error {
	var apiErr *sdk.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %w", llm.ErrService, err)
	}

	var body struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal([]byte(apiErr.RawJSON()), &body)

	msg := body.Error.Message
	if msg == "" {
		msg = apiErr.Error()
	}
	return &llm.ServiceError{
		StatusCode: apiErr.StatusCode,
		Message:    msg,
		Code:       body.Error.Type,
		Err:        llm.ClassifyStatus(apiErr.StatusCode),
	}
}
