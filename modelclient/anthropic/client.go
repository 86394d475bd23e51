// Package anthropic provides a modelclient.Client implementation backed by
// the Anthropic Claude Messages API. It translates agentcore requests into
// anthropic.Message calls using github.com/anthropics/anthropic-sdk-go and
// maps streamed events back into the generic message.Block/ChatResponse
// types the ReAct loop and AG-UI adapter speak.
package anthropic

import (
	"context"
	"errors"
	"fmt"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"

	"github.com/agentcore/agentcore/message"
	"github.com/agentcore/agentcore/modelclient"
)

// MessagesClient captures the subset of the Anthropic SDK client used by the
// adapter, so callers can pass either a real client or a test double.
type MessagesClient interface {
	NewStreaming(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) *ssestream.Stream[sdk.MessageStreamEventUnion]
}

// Options configures the adapter's default model and sampling parameters.
type Options struct {
	// DefaultModel is used when the caller does not request a specific model
	// elsewhere. Prefer the anthropic-sdk-go Model constants (e.g.
	// string(sdk.ModelClaudeSonnet4_5_20250929)).
	DefaultModel string
	// MaxTokens is the default completion cap applied when Options.MaxTokens
	// is zero on a given call.
	MaxTokens int
	// Temperature is the default sampling temperature.
	Temperature float64
}

// Client implements modelclient.Client on top of Anthropic Claude Messages.
type Client struct {
	msg          MessagesClient
	defaultModel string
	maxTok       int
	temp         float64
}

// New builds an Anthropic-backed model client from the provided Messages
// client and configuration options.
func New(msg MessagesClient, opts Options) (*Client, error) {
	if msg == nil {
		return nil, errors.New("anthropic: messages client is required")
	}
	if opts.DefaultModel == "" {
		return nil, errors.New("anthropic: default model identifier is required")
	}
	return &Client{msg: msg, defaultModel: opts.DefaultModel, maxTok: opts.MaxTokens, temp: opts.Temperature}, nil
}

// NewFromAPIKey constructs a client using the default Anthropic HTTP client,
// authenticated with apiKey; an empty apiKey is an error.
func NewFromAPIKey(apiKey, defaultModel string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic: api key is required")
	}
	ac := sdk.NewClient(option.WithAPIKey(apiKey))
	return New(&ac.Messages, Options{DefaultModel: defaultModel})
}

// Stream invokes Messages.NewStreaming and adapts incremental events into
// modelclient.ChatResponse values.
func (c *Client) Stream(ctx context.Context, messages []message.Message, tools []modelclient.ToolDefinition, opts modelclient.Options) (modelclient.Streamer, error) {
	params, err := c.prepareRequest(messages, tools, opts)
	if err != nil {
		return nil, err
	}
	stream := c.msg.NewStreaming(ctx, *params)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("anthropic messages.new stream: %w", err)
	}
	return newStreamer(ctx, stream), nil
}

func (c *Client) prepareRequest(msgs []message.Message, toolDefs []modelclient.ToolDefinition, opts modelclient.Options) (*sdk.MessageNewParams, error) {
	if len(msgs) == 0 {
		return nil, errors.New("anthropic: messages are required")
	}
	conversation, system, err := encodeMessages(msgs)
	if err != nil {
		return nil, err
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTok
	}
	if maxTokens <= 0 {
		return nil, errors.New("anthropic: max_tokens must be positive")
	}
	params := sdk.MessageNewParams{
		MaxTokens: int64(maxTokens),
		Messages:  conversation,
		Model:     sdk.Model(c.defaultModel),
	}
	if len(system) > 0 {
		params.System = system
	}
	if encoded := encodeTools(toolDefs); len(encoded) > 0 {
		params.Tools = encoded
	}
	temp := float64(opts.Temperature)
	if temp <= 0 {
		temp = c.temp
	}
	if temp > 0 {
		params.Temperature = sdk.Float(temp)
	}
	if opts.ThinkingBudget > 0 {
		params.Thinking = sdk.ThinkingConfigParamOfEnabled(int64(opts.ThinkingBudget))
	}
	if opts.ToolChoice != nil {
		params.ToolChoice = encodeToolChoice(*opts.ToolChoice)
	}
	return &params, nil
}

func encodeToolChoice(tc modelclient.ToolChoice) sdk.ToolChoiceUnionParam {
	switch tc.Mode {
	case modelclient.ToolChoiceNone:
		return sdk.ToolChoiceUnionParam{OfNone: &sdk.ToolChoiceNoneParam{}}
	case modelclient.ToolChoiceRequired:
		return sdk.ToolChoiceUnionParam{OfAny: &sdk.ToolChoiceAnyParam{}}
	case modelclient.ToolChoiceSpecific:
		return sdk.ToolChoiceUnionParam{OfTool: &sdk.ToolChoiceToolParam{Name: tc.Name}}
	default:
		return sdk.ToolChoiceUnionParam{OfAuto: &sdk.ToolChoiceAutoParam{}}
	}
}

func encodeTools(defs []modelclient.ToolDefinition) []sdk.ToolUnionParam {
	if len(defs) == 0 {
		return nil
	}
	out := make([]sdk.ToolUnionParam, 0, len(defs))
	for _, d := range defs {
		schema := sdk.ToolInputSchemaParam{}
		if m, ok := d.InputSchema.(map[string]any); ok {
			if props, ok := m["properties"]; ok {
				schema.Properties = props
			}
		}
		out = append(out, sdk.ToolUnionParam{
			OfTool: &sdk.ToolParam{
				Name:        d.Name,
				Description: sdk.String(d.Description),
				InputSchema: schema,
			},
		})
	}
	return out
}

func encodeMessages(msgs []message.Message) ([]sdk.MessageParam, []sdk.TextBlockParam, error) {
	conversation := make([]sdk.MessageParam, 0, len(msgs))
	system := make([]sdk.TextBlockParam, 0)

	for _, m := range msgs {
		if m.Role() == message.RoleSystem {
			if text := m.Text(); text != "" {
				system = append(system, sdk.TextBlockParam{Text: text})
			}
			continue
		}

		blocks := make([]sdk.ContentBlockParamUnion, 0, len(m.Content()))
		for _, part := range m.Content() {
			switch v := part.(type) {
			case message.TextBlock:
				if v.Text != "" {
					blocks = append(blocks, sdk.NewTextBlock(v.Text))
				}
			case message.ToolUseBlock:
				blocks = append(blocks, sdk.NewToolUseBlock(v.ID, v.Input, v.Name))
			case message.ToolResultBlock:
				blocks = append(blocks, encodeToolResult(v))
			case message.ImageBlock:
				if b64, ok := v.Source.(message.Base64ImageSource); ok {
					blocks = append(blocks, sdk.NewImageBlockBase64(b64.MediaType, b64.Data))
				}
			}
		}
		if len(blocks) == 0 {
			continue
		}
		switch m.Role() {
		case message.RoleUser, message.RoleTool:
			conversation = append(conversation, sdk.NewUserMessage(blocks...))
		case message.RoleAssistant:
			conversation = append(conversation, sdk.NewAssistantMessage(blocks...))
		}
	}
	return conversation, system, nil
}

func encodeToolResult(v message.ToolResultBlock) sdk.ContentBlockParamUnion {
	var text string
	for _, b := range v.Output {
		if t, ok := b.(message.TextBlock); ok {
			text += t.Text
		}
	}
	return sdk.NewToolResultBlock(v.ID, text, v.IsError)
}
