package agui

import "time"

// ToolMergeMode selects how frontend-declared tools (RunAgentInput.Tools)
// are reconciled against the resolved agent's own toolkit (spec.md §4.5
// "Configuration").
type ToolMergeMode string

const (
	// ToolMergeFrontendOnly exposes only the frontend-declared tools to the
	// model, ignoring the agent's registered toolkit for this run.
	ToolMergeFrontendOnly ToolMergeMode = "FRONTEND_ONLY"
	// ToolMergeAgentOnly exposes only the agent's own registered toolkit,
	// ignoring any frontend-declared tools.
	ToolMergeAgentOnly ToolMergeMode = "AGENT_ONLY"
	// ToolMergeFrontendPriority exposes the union of both sets; when a name
	// collides, the frontend-declared definition wins.
	ToolMergeFrontendPriority ToolMergeMode = "MERGE_FRONTEND_PRIORITY"
)

// Config configures an adapter Run (spec.md §4.5 "Configuration").
type Config struct {
	// ToolMergeMode reconciles frontend-declared and agent-registered tools.
	ToolMergeMode ToolMergeMode
	// EmitStateEvents gates StateSnapshot/StateDelta emission.
	EmitStateEvents bool
	// EmitToolCallArgs gates ToolCallArgs emission; when false, tool call
	// argument deltas are suppressed from the external stream.
	EmitToolCallArgs bool
	// EnableReasoning gates ReasoningMessage* emission for ThinkingBlock
	// content; off by default.
	EnableReasoning bool
	// RunTimeout bounds the full run's wall-clock duration. Zero disables
	// the timeout.
	RunTimeout time.Duration
	// DefaultAgentID is used when no agent id is supplied by the URL path,
	// header, or forwardedProps (spec.md §4.5 "Agent resolution").
	DefaultAgentID string
}

// DefaultConfig returns the documented defaults: AGENT_ONLY tool merge,
// tool call argument deltas and state events on, reasoning off, no run
// timeout (spec.md §4.5).
func DefaultConfig() Config {
	return Config{
		ToolMergeMode:    ToolMergeAgentOnly,
		EmitStateEvents:  true,
		EmitToolCallArgs: true,
		EnableReasoning:  false,
		DefaultAgentID:   "default",
	}
}

// withDefaults fills zero-valued fields left unset by a hand-built Config.
func (c Config) withDefaults() Config {
	if c.ToolMergeMode == "" {
		c.ToolMergeMode = ToolMergeAgentOnly
	}
	if c.DefaultAgentID == "" {
		c.DefaultAgentID = "default"
	}
	return c
}
