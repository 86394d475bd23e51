// Package modelclient defines the provider-agnostic model contract (spec.md
// §6). Concrete vendor clients are external collaborators; this package only
// specifies the streaming contract every provider adapter must satisfy.
package modelclient

import (
	"context"

	"github.com/agentcore/agentcore/message"
)

// ToolChoiceMode controls how the model uses tools for a request.
type ToolChoiceMode string

const (
	ToolChoiceAuto     ToolChoiceMode = "auto"
	ToolChoiceNone     ToolChoiceMode = "none"
	ToolChoiceRequired ToolChoiceMode = "required"
	ToolChoiceSpecific ToolChoiceMode = "specific"
)

// ToolChoice configures optional tool-use behavior for a Request.
type ToolChoice struct {
	Mode ToolChoiceMode
	// Name identifies the tool to request when Mode is ToolChoiceSpecific.
	Name string
}

// ToolDefinition describes a tool exposed to the model.
type ToolDefinition struct {
	Name        string
	Description string
	// InputSchema is a JSON Schema describing the tool input payload.
	InputSchema any
}

// Options configures a single model invocation.
type Options struct {
	Temperature           float32
	TopP                  float32
	TopK                  int
	MaxTokens             int
	ThinkingBudget        int
	ToolChoice            *ToolChoice
	AdditionalHeaders     map[string]string
	AdditionalBodyParams  map[string]any
	AdditionalQueryParams map[string]string
}

// Usage tracks token counts for a model call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// ChatResponse is a single streamed unit of model output.
type ChatResponse struct {
	// ID is stable across every ChatResponse belonging to the same model
	// turn, so consumers can correlate/deduplicate streaming chunks.
	ID      string
	Content []message.Block
	Usage   Usage
}

// Streamer delivers incremental model output. Callers must drain Recv until
// it returns io.EOF (or another terminal error) and then call Close exactly
// once. A Streamer is single-subscriber and not restartable.
type Streamer interface {
	// Recv returns the next ChatResponse, or io.EOF when the stream ends
	// normally.
	Recv() (ChatResponse, error)
	// Close releases resources associated with the stream. Idempotent.
	Close() error
}

// Client is the provider-agnostic model client. Concrete implementations
// (e.g., modelclient/anthropic) translate Stream calls into vendor-specific
// requests and adapt vendor responses back into ChatResponse/Block values.
type Client interface {
	// Stream performs a streaming model invocation and returns a lazy,
	// finite, non-restartable sequence of ChatResponse values.
	Stream(ctx context.Context, messages []message.Message, tools []ToolDefinition, opts Options) (Streamer, error)
}
