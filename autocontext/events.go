package autocontext

import "time"

// EventKind classifies a CompressionEvent by which strategy produced it
// (spec.md §3 "Compression event").
type EventKind string

const (
	KindToolInvocationCompress   EventKind = "TOOL_INVOCATION_COMPRESS"
	KindPreviousRoundSummary     EventKind = "PREVIOUS_ROUND_SUMMARY"
	KindCurrentRoundLargeMessage EventKind = "CURRENT_ROUND_LARGE_MESSAGE"
	KindCurrentRoundCompress     EventKind = "CURRENT_ROUND_MESSAGE_COMPRESS"
	KindLargePayloadOffload      EventKind = "LARGE_PAYLOAD_OFFLOAD"
)

// CompressionEvent records one compaction rewrite for audit purposes. Events
// never affect working-set semantics; they exist purely as a trail (spec.md
// §3, §4.2).
type CompressionEvent struct {
	Kind            EventKind
	Timestamp       time.Time
	CompressedCount int
	PreviousID      string
	NextID          string
	CompressedID    string
	Metadata        map[string]any
}

// eventLog accumulates CompressionEvents for a Memory instance.
type eventLog struct {
	events []CompressionEvent
}

func (l *eventLog) record(e CompressionEvent) {
	l.events = append(l.events, e)
}

// Events returns a defensive copy of all recorded CompressionEvents.
func (l *eventLog) Events() []CompressionEvent {
	out := make([]CompressionEvent, len(l.events))
	copy(out, l.events)
	return out
}
