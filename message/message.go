// Package message defines the typed, immutable message and content-block
// model shared by every other agentcore package: short-term memory,
// auto-context compaction, the ReAct loop, and the AG-UI adapter all move
// Message values rather than vendor-specific payloads.
package message

import (
	"maps"

	"github.com/google/uuid"
)

// Role identifies the speaker for a Message.
type Role string

const (
	// RoleSystem carries system/instruction content.
	RoleSystem Role = "system"
	// RoleUser carries end-user content.
	RoleUser Role = "user"
	// RoleAssistant carries model-generated content.
	RoleAssistant Role = "assistant"
	// RoleTool carries tool-result content surfaced back to the model.
	RoleTool Role = "tool"
)

// Block is a marker interface implemented by every content-block variant.
// Modeling content as a tagged sum type (rather than an open interface
// hierarchy) lets every consumer exhaustively switch on concrete types.
type Block interface {
	isBlock()
}

type (
	// TextBlock is a plain text content block.
	TextBlock struct {
		Text string
	}

	// ThinkingBlock carries provider reasoning content.
	ThinkingBlock struct {
		Thinking string
	}

	// ToolUseBlock declares a tool invocation requested by the assistant.
	ToolUseBlock struct {
		// ID uniquely identifies this tool call within the run.
		ID string
		// Name is the tool identifier requested by the model.
		Name string
		// Input is the JSON-compatible arguments object.
		Input map[string]any
		// Content is the raw, unparsed arguments string as streamed by the
		// model, when available. Optional.
		Content string
	}

	// ToolResultBlock carries the result of a tool invocation. ID matches
	// the originating ToolUseBlock's ID.
	ToolResultBlock struct {
		ID      string
		Name    string
		Output  []Block
		IsError bool
	}

	// ImageSource is a tagged union over the two supported image sources.
	ImageSource interface {
		isImageSource()
	}

	// Base64ImageSource carries inline base64-encoded image bytes.
	Base64ImageSource struct {
		Data      string
		MediaType string
	}

	// URLImageSource references an externally hosted image.
	URLImageSource struct {
		URL string
	}

	// ImageBlock is an image content block.
	ImageBlock struct {
		Source ImageSource
	}
)

func (TextBlock) isBlock()        {}
func (ThinkingBlock) isBlock()    {}
func (ToolUseBlock) isBlock()     {}
func (ToolResultBlock) isBlock()  {}
func (ImageBlock) isBlock()       {}

func (Base64ImageSource) isImageSource() {}
func (URLImageSource) isImageSource()    {}

// Message is a single, immutable chat message. Once constructed a Message is
// never mutated in place; callers that need to change a message replace it
// in the owning log (see package stm).
type Message struct {
	id       string
	role     Role
	name     string
	content  []Block
	metadata map[string]any
}

// New constructs a Message. If id is empty a fresh UUID is generated.
func New(id string, role Role, content []Block) Message {
	if id == "" {
		id = uuid.NewString()
	}
	blocks := make([]Block, len(content))
	copy(blocks, content)
	return Message{id: id, role: role, content: blocks}
}

// NewText is a convenience constructor for a single-block text message.
func NewText(role Role, text string) Message {
	return New("", role, []Block{TextBlock{Text: text}})
}

// WithName returns a copy of m with Name set.
func (m Message) WithName(name string) Message {
	m.name = name
	return m
}

// WithMetadata returns a copy of m with Metadata set to a shallow copy of md.
// Metadata is immutable once set: subsequent WithMetadata calls replace the
// whole map rather than mutating it in place.
func (m Message) WithMetadata(md map[string]any) Message {
	m.metadata = maps.Clone(md)
	return m
}

// ID returns the message's stable identifier.
func (m Message) ID() string { return m.id }

// Role returns the message's role.
func (m Message) Role() Role { return m.role }

// Name returns the optional participant name.
func (m Message) Name() string { return m.name }

// Content returns a copy of the message's content blocks. Mutating the
// returned slice does not affect m.
func (m Message) Content() []Block {
	out := make([]Block, len(m.content))
	copy(out, m.content)
	return out
}

// Metadata returns a copy of the message's metadata map, or nil if unset.
func (m Message) Metadata() map[string]any {
	return maps.Clone(m.metadata)
}

// MetaString returns the string value for key, and whether it was present
// and of type string. A convenience accessor for the common case (compaction
// tags, RAG context markers) without requiring callers to clone the whole map.
func (m Message) MetaString(key string) (string, bool) {
	if m.metadata == nil {
		return "", false
	}
	v, ok := m.metadata[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// ToolUseBlocks returns the ordered ToolUseBlock values found in the
// message's content, in appearance order.
func (m Message) ToolUseBlocks() []ToolUseBlock {
	var out []ToolUseBlock
	for _, b := range m.content {
		if tu, ok := b.(ToolUseBlock); ok {
			out = append(out, tu)
		}
	}
	return out
}

// Text concatenates every TextBlock in the message's content, in order. It is
// a convenience for callers that only care about the plain-text rendering
// (e.g., char-count thresholds, logging).
func (m Message) Text() string {
	var out string
	for _, b := range m.content {
		if t, ok := b.(TextBlock); ok {
			out += t.Text
		}
	}
	return out
}

// IsToolRelated reports whether m carries only tool-use and/or tool-result
// blocks (used by the compaction strategies to detect consecutive tool runs).
func (m Message) IsToolRelated() bool {
	if len(m.content) == 0 {
		return false
	}
	for _, b := range m.content {
		switch b.(type) {
		case ToolUseBlock, ToolResultBlock:
		default:
			return false
		}
	}
	return true
}
