// Package formatter defines the vendor-prompt translation contract (spec.md
// §6). Formatters own role-remapping rules and media conversion; concrete
// vendor formatters are external collaborators, out of scope for the core.
package formatter

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/agentcore/agentcore/message"
	"github.com/agentcore/agentcore/modelclient"
)

// Formatter translates between the generic message.Message model and a
// vendor-specific prompt representation.
//
// Round-trip invariant (spec.md §8): Format followed by ParseResponse on a
// conversation containing only text preserves the text, modulo
// vendor-mandated role remapping (e.g. a leading system message folded into
// the first user message).
type Formatter interface {
	// Format converts messages into a vendor-specific prompt list.
	Format(messages []message.Message) (any, error)
	// ParseResponse converts a vendor response into a ChatResponse. startTime
	// is used by implementations that compute request latency as part of
	// response metadata.
	ParseResponse(vendorResponse any, startTime time.Time) (modelclient.ChatResponse, error)
}

// RoleRemapPolicy controls how a formatter treats roles its vendor does not
// support natively.
type RoleRemapPolicy struct {
	// FirstSystemToUser remaps a leading system message to a user message
	// when the vendor has no dedicated system-role slot.
	FirstSystemToUser bool
	// ToolResultToUser remaps tool-result messages to user messages when the
	// vendor does not support a dedicated tool role.
	ToolResultToUser bool
}

// Apply rewrites msgs per the policy, used by formatters that need a
// generic starting point before vendor-specific encoding.
func (p RoleRemapPolicy) Apply(msgs []message.Message) []message.Message {
	out := make([]message.Message, len(msgs))
	copy(out, msgs)
	if p.FirstSystemToUser {
		for i, m := range out {
			if m.Role() == message.RoleSystem {
				out[i] = message.New(m.ID(), message.RoleUser, m.Content())
				break
			}
		}
	}
	if p.ToolResultToUser {
		for i, m := range out {
			if m.Role() == message.RoleTool {
				out[i] = message.New(m.ID(), message.RoleUser, m.Content())
			}
		}
	}
	return out
}

// InferImageMediaType infers a media type from a file path extension, for
// formatters that accept local file paths and must convert them to base64
// payloads with an explicit media type. Supported extensions are png, jpeg,
// jpg, webp, and gif; any other extension is an error.
func InferImageMediaType(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png", nil
	case ".jpeg", ".jpg":
		return "image/jpeg", nil
	case ".webp":
		return "image/webp", nil
	case ".gif":
		return "image/gif", nil
	default:
		return "", fmt.Errorf("formatter: unsupported image extension %q", filepath.Ext(path))
	}
}

// EncodeImageBase64 base64-encodes raw image bytes for inline transmission.
func EncodeImageBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
