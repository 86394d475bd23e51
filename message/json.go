package message

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes a Message while preserving the concrete Block types
// stored in Content via an explicit Kind discriminator, so round-trips
// through JSON (e.g. session persistence, offload storage) do not lose type
// information for the tagged sum type.
func (m Message) MarshalJSON() ([]byte, error) {
	type alias struct {
		ID       string         `json:"id"`
		Role     Role           `json:"role"`
		Name     string         `json:"name,omitempty"`
		Content  []any          `json:"content,omitempty"`
		Metadata map[string]any `json:"metadata,omitempty"`
	}
	blocks := make([]any, 0, len(m.content))
	for i, b := range m.content {
		enc, err := encodeBlock(b)
		if err != nil {
			return nil, fmt.Errorf("message: encode content[%d]: %w", i, err)
		}
		blocks = append(blocks, enc)
	}
	return json.Marshal(alias{ID: m.id, Role: m.role, Name: m.name, Content: blocks, Metadata: m.metadata})
}

// UnmarshalJSON decodes a Message, materializing concrete Block
// implementations from the Kind discriminator.
func (m *Message) UnmarshalJSON(data []byte) error {
	type alias struct {
		ID       string            `json:"id"`
		Role     Role              `json:"role"`
		Name     string            `json:"name,omitempty"`
		Content  []json.RawMessage `json:"content,omitempty"`
		Metadata map[string]any    `json:"metadata,omitempty"`
	}
	var tmp alias
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	content := make([]Block, 0, len(tmp.Content))
	for i, raw := range tmp.Content {
		b, err := decodeBlock(raw)
		if err != nil {
			return fmt.Errorf("message: decode content[%d]: %w", i, err)
		}
		content = append(content, b)
	}
	m.id = tmp.ID
	m.role = tmp.Role
	m.name = tmp.Name
	m.content = content
	m.metadata = tmp.Metadata
	return nil
}

func encodeBlock(b Block) (any, error) {
	switch v := b.(type) {
	case TextBlock:
		return struct {
			Kind string `json:"kind"`
			TextBlock
		}{"text", v}, nil
	case ThinkingBlock:
		return struct {
			Kind string `json:"kind"`
			ThinkingBlock
		}{"thinking", v}, nil
	case ToolUseBlock:
		return struct {
			Kind string `json:"kind"`
			ToolUseBlock
		}{"tool_use", v}, nil
	case ToolResultBlock:
		output := make([]any, 0, len(v.Output))
		for i, ob := range v.Output {
			enc, err := encodeBlock(ob)
			if err != nil {
				return nil, fmt.Errorf("tool_result output[%d]: %w", i, err)
			}
			output = append(output, enc)
		}
		return struct {
			Kind    string `json:"kind"`
			ID      string `json:"ID"`
			Name    string `json:"Name"`
			Output  []any  `json:"Output"`
			IsError bool   `json:"IsError"`
		}{"tool_result", v.ID, v.Name, output, v.IsError}, nil
	case ImageBlock:
		src, err := encodeImageSource(v.Source)
		if err != nil {
			return nil, err
		}
		return struct {
			Kind   string `json:"kind"`
			Source any    `json:"Source"`
		}{"image", src}, nil
	default:
		return nil, fmt.Errorf("message: unknown block type %T", b)
	}
}

func encodeImageSource(src ImageSource) (any, error) {
	switch v := src.(type) {
	case Base64ImageSource:
		return struct {
			Kind string `json:"kind"`
			Base64ImageSource
		}{"base64", v}, nil
	case URLImageSource:
		return struct {
			Kind string `json:"kind"`
			URLImageSource
		}{"url", v}, nil
	default:
		return nil, fmt.Errorf("message: unknown image source type %T", src)
	}
}

func decodeBlock(raw json.RawMessage) (Block, error) {
	var disc struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &disc); err != nil {
		return nil, fmt.Errorf("message: decode kind: %w", err)
	}
	switch disc.Kind {
	case "text":
		var b TextBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		return b, nil
	case "thinking":
		var b ThinkingBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		return b, nil
	case "tool_use":
		var b ToolUseBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		return b, nil
	case "tool_result":
		var wrapper struct {
			ID      string            `json:"ID"`
			Name    string            `json:"Name"`
			Output  []json.RawMessage `json:"Output"`
			IsError bool              `json:"IsError"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, err
		}
		output := make([]Block, 0, len(wrapper.Output))
		for i, ob := range wrapper.Output {
			decoded, err := decodeBlock(ob)
			if err != nil {
				return nil, fmt.Errorf("tool_result output[%d]: %w", i, err)
			}
			output = append(output, decoded)
		}
		return ToolResultBlock{ID: wrapper.ID, Name: wrapper.Name, Output: output, IsError: wrapper.IsError}, nil
	case "image":
		var wrapper struct {
			Source json.RawMessage `json:"Source"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, err
		}
		src, err := decodeImageSource(wrapper.Source)
		if err != nil {
			return nil, err
		}
		return ImageBlock{Source: src}, nil
	default:
		return nil, fmt.Errorf("message: unknown block kind %q", disc.Kind)
	}
}

func decodeImageSource(raw json.RawMessage) (ImageSource, error) {
	var disc struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &disc); err != nil {
		return nil, fmt.Errorf("message: decode image source kind: %w", err)
	}
	switch disc.Kind {
	case "base64":
		var s Base64ImageSource
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return s, nil
	case "url":
		var s URLImageSource
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("message: unknown image source kind %q", disc.Kind)
	}
}
