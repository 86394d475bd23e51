package autocontext

import (
	"sync"

	"github.com/google/uuid"

	"github.com/agentcore/agentcore/message"
)

// OffloadTable stores spans of messages displaced from the working set,
// addressable by an opaque handle (spec.md §4.2 "Offload / reload
// contract"). It is owned by a single Memory instance and mutated only
// during compression; storage is in-memory and carries no durability
// guarantee.
type OffloadTable struct {
	mu    sync.Mutex
	spans map[string][]message.Message
}

// newOffloadTable constructs an empty OffloadTable.
func newOffloadTable() *OffloadTable {
	return &OffloadTable{spans: make(map[string][]message.Message)}
}

// Offload stores a defensive copy of msgs under a freshly generated handle
// and returns that handle.
func (t *OffloadTable) Offload(msgs []message.Message) string {
	handle := uuid.NewString()
	cp := make([]message.Message, len(msgs))
	copy(cp, msgs)
	t.mu.Lock()
	t.spans[handle] = cp
	t.mu.Unlock()
	return handle
}

// Reload returns the messages stored under handle, and whether handle was
// found. An empty or unknown handle returns (nil, false).
func (t *OffloadTable) Reload(handle string) ([]message.Message, bool) {
	if handle == "" {
		return nil, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	msgs, ok := t.spans[handle]
	if !ok {
		return nil, false
	}
	cp := make([]message.Message, len(msgs))
	copy(cp, msgs)
	return cp, true
}

// Clear removes handle from the table. A no-op if handle is not present.
func (t *OffloadTable) Clear(handle string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.spans, handle)
}

// reloadErrorMessage builds the tool-style error message returned by Memory
// when a reload targets an unknown or empty handle — an error kind the spec
// requires to surface as visible content, never as a thrown error (spec.md
// §4.2, §7 KindOffload).
func reloadErrorMessage(handle string) message.Message {
	if handle == "" {
		return message.New("", message.RoleTool, []message.Block{
			message.ToolResultBlock{
				Name:    "reload",
				IsError: true,
				Output:  []message.Block{message.TextBlock{Text: "reload failed: empty handle"}},
			},
		})
	}
	return message.New("", message.RoleTool, []message.Block{
		message.ToolResultBlock{
			ID:      handle,
			Name:    "reload",
			IsError: true,
			Output:  []message.Block{message.TextBlock{Text: "reload failed: unknown handle " + handle}},
		},
	})
}
