// Package ltm defines the optional long-term memory contract (spec.md §6).
// Long-term memory is an external collaborator: concrete vector/keyword
// backends live outside the core; this package only specifies how the ReAct
// loop (C4) talks to one.
package ltm

import (
	"context"

	"github.com/agentcore/agentcore/message"
)

// Mode selects how long-term memory is invoked during a run.
type Mode string

const (
	// ModeStaticControl has the loop invoke Record/Retrieve directly
	// (spec.md §4.3).
	ModeStaticControl Mode = "static_control"
	// ModeAgentControl exposes Record/Retrieve as tools the model can call.
	ModeAgentControl Mode = "agent_control"
)

// Store is the long-term memory contract.
type Store interface {
	// Record persists messages for later retrieval.
	Record(ctx context.Context, messages []message.Message) error
	// Retrieve returns messages relevant to query.
	Retrieve(ctx context.Context, query string) ([]message.Message, error)
}
