package agent

import "github.com/agentcore/agentcore/message"

// EventKind classifies a single unit of ReAct loop output (spec.md §3, §4.3).
type EventKind string

const (
	// EventReasoning carries incremental or final assistant content (text,
	// thinking, and queued tool-use blocks).
	EventReasoning EventKind = "REASONING"
	// EventToolResult carries the result of one tool invocation.
	EventToolResult EventKind = "TOOL_RESULT"
	// EventFinish marks loop termination, either because the assistant
	// produced a final textual answer or maxIters was reached.
	EventFinish EventKind = "FINISH"
)

// Event is one element of the lazy, cancellable event sequence produced by
// Loop.Stream (spec.md §4.3 "stream(messages, options) → lazy sequence of
// Event").
type Event struct {
	Kind EventKind
	// Message carries the event's payload. For EventReasoning, chunks share
	// a stable Message id across a single model turn so consumers can
	// deduplicate starts; each chunk carries only the content new since the
	// previous chunk. The Last=true closing event for a turn carries no
	// content of its own — every block was already delivered by an earlier
	// chunk — and exists only to signal end-of-turn framing.
	Message message.Message
	// Last marks the final event for the message id it carries.
	Last bool
	// Truncated is set on the terminal EventFinish when the loop stopped
	// because maxIters was reached rather than because the model produced
	// a final answer.
	Truncated bool
	// Err carries a terminal error (spec.md §7: only Model and
	// Cancellation/Timeout errors reach here — Tool and Memory errors are
	// recovered as visible content instead).
	Err error
}
