// Package session defines the session persistence contract (spec.md §6).
// Session serialization is an external collaborator; the core only depends
// on this interface to save/load the pieces of state a run needs to resume:
// the memory log, the plan, and the offload table.
package session

import (
	"context"

	"github.com/agentcore/agentcore/message"
	"github.com/agentcore/agentcore/plan"
)

// State is the serializable snapshot of a single agent session.
type State struct {
	AgentID  string
	Messages []message.Message
	Plan     *plan.Plan
	Offloads map[string][]message.Message
}

// Store persists and restores session State.
type Store interface {
	Save(ctx context.Context, agent, id string, state State) error
	Load(ctx context.Context, agent, id string) (State, error)
}
