// Package stm implements the short-term memory log (C2): an ordered,
// mutable sequence of messages that forms the substrate for the
// auto-context working set. The log is not internally synchronized; callers
// running concurrent goroutines against the same Log must serialize access
// themselves (spec.md §4.1, §5).
package stm

import (
	"fmt"

	"github.com/agentcore/agentcore/message"
)

// Log is an ordered, mutable sequence of messages.
type Log struct {
	messages []message.Message
}

// New constructs an empty Log.
func New() *Log {
	return &Log{}
}

// Append adds m to the end of the log.
func (l *Log) Append(m message.Message) {
	l.messages = append(l.messages, m)
}

// Get returns a snapshot (defensive copy) of the log's current messages.
// Indices into the returned slice remain stable for the lifetime of that
// slice even if the log is mutated afterward.
func (l *Log) Get() []message.Message {
	out := make([]message.Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len returns the number of messages currently in the log.
func (l *Log) Len() int {
	return len(l.messages)
}

// ReplaceRange replaces the inclusive span [start, endInclusive] with
// replacement. Per spec.md §3/§8, an invalid range is a silent no-op: this
// includes start > endInclusive, start < 0, or endInclusive >= len(messages).
// This tolerates opportunistic rewrites from compaction strategies that
// compute a span against a possibly-stale view of the log.
func (l *Log) ReplaceRange(start, endInclusive int, replacement []message.Message) {
	n := len(l.messages)
	if start < 0 || endInclusive < start || endInclusive >= n {
		return
	}
	next := make([]message.Message, 0, start+len(replacement)+(n-endInclusive-1))
	next = append(next, l.messages[:start]...)
	next = append(next, replacement...)
	next = append(next, l.messages[endInclusive+1:]...)
	l.messages = next
}

// DeleteAt removes the message at index i. Unlike ReplaceRange, an
// out-of-bounds index is an error (spec.md §4.1): deletion is a targeted,
// caller-driven operation and silent failure would hide programmer error.
func (l *Log) DeleteAt(i int) error {
	if i < 0 || i >= len(l.messages) {
		return fmt.Errorf("stm: index %d out of range [0,%d)", i, len(l.messages))
	}
	l.messages = append(l.messages[:i], l.messages[i+1:]...)
	return nil
}

// Clear empties the log.
func (l *Log) Clear() {
	l.messages = nil
}
