package agui

import "encoding/json"

// EventType enumerates the AG-UI wire event flavors (spec.md §4.5
// "Lifecycle invariants").
type EventType string

const (
	EventRunStarted              EventType = "RUN_STARTED"
	EventRunFinished             EventType = "RUN_FINISHED"
	EventTextMessageStart        EventType = "TEXT_MESSAGE_START"
	EventTextMessageContent      EventType = "TEXT_MESSAGE_CONTENT"
	EventTextMessageEnd          EventType = "TEXT_MESSAGE_END"
	EventToolCallStart           EventType = "TOOL_CALL_START"
	EventToolCallArgs            EventType = "TOOL_CALL_ARGS"
	EventToolCallEnd             EventType = "TOOL_CALL_END"
	EventToolCallResult          EventType = "TOOL_CALL_RESULT"
	EventReasoningMessageStart   EventType = "REASONING_MESSAGE_START"
	EventReasoningMessageContent EventType = "REASONING_MESSAGE_CONTENT"
	EventReasoningMessageEnd     EventType = "REASONING_MESSAGE_END"
	EventStateSnapshot           EventType = "STATE_SNAPSHOT"
	EventStateDelta              EventType = "STATE_DELTA"
	EventRaw                     EventType = "RAW"
)

// Event is a single AG-UI wire event. Rather than a tagged interface
// hierarchy (cf. message.Block) every event shares one Go struct, since
// SSE consumers discriminate on Type alone and most fields are mutually
// exclusive per Type; MarshalJSON emits only the fields relevant to Type,
// mirroring message.MarshalJSON's explicit per-kind encoding.
type Event struct {
	Type EventType

	ThreadID string
	RunID    string

	MessageID string
	Role      string
	TextDelta string

	ToolCallID   string
	ToolCallName string
	ToolContent  string

	Snapshot map[string]any
	Ops      []PatchOp

	RawError  string
	Truncated bool
}

// MarshalJSON encodes e using the field set appropriate for e.Type, so the
// wire payload never carries irrelevant zero-valued siblings.
func (e Event) MarshalJSON() ([]byte, error) {
	m := map[string]any{"type": e.Type}
	if e.ThreadID != "" {
		m["threadId"] = e.ThreadID
	}
	if e.RunID != "" {
		m["runId"] = e.RunID
	}
	if e.Type == EventRunFinished && e.Truncated {
		m["truncated"] = true
	}
	switch e.Type {
	case EventTextMessageStart:
		m["messageId"] = e.MessageID
		m["role"] = e.Role
	case EventTextMessageContent:
		m["messageId"] = e.MessageID
		m["delta"] = e.TextDelta
	case EventTextMessageEnd:
		m["messageId"] = e.MessageID
	case EventReasoningMessageStart:
		m["messageId"] = e.MessageID
	case EventReasoningMessageContent:
		m["messageId"] = e.MessageID
		m["delta"] = e.TextDelta
	case EventReasoningMessageEnd:
		m["messageId"] = e.MessageID
	case EventToolCallStart:
		m["toolCallId"] = e.ToolCallID
		m["toolCallName"] = e.ToolCallName
	case EventToolCallArgs:
		m["toolCallId"] = e.ToolCallID
		m["delta"] = e.TextDelta
	case EventToolCallEnd:
		m["toolCallId"] = e.ToolCallID
	case EventToolCallResult:
		m["toolCallId"] = e.ToolCallID
		m["content"] = e.ToolContent
	case EventStateSnapshot:
		m["snapshot"] = e.Snapshot
	case EventStateDelta:
		m["delta"] = e.Ops
	case EventRaw:
		if e.RawError != "" {
			m["error"] = e.RawError
		}
	}
	return json.Marshal(m)
}
