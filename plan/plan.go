// Package plan implements the plan notebook referenced by spec.md §3 (Plan)
// and §4.3 (Plan integration). A Notebook holds at most one Plan at a time
// and is attached to/detached from a ReAct run by reference, never the other
// way around — this avoids a plan-to-memory back-pointer (spec.md §9).
package plan

import (
	"fmt"
	"sync"
)

// State is a plan's lifecycle state.
type State string

const (
	StateTODO       State = "TODO"
	StateInProgress State = "IN_PROGRESS"
	StateDone       State = "DONE"
	StateAbandoned  State = "ABANDONED"
)

// SubtaskState is a subtask's lifecycle state.
type SubtaskState string

const (
	SubtaskTODO       SubtaskState = "TODO"
	SubtaskInProgress SubtaskState = "IN_PROGRESS"
	SubtaskDone       SubtaskState = "DONE"
	SubtaskSkipped    SubtaskState = "SKIPPED"
)

// Subtask is one step of a Plan.
type Subtask struct {
	Title       string
	Description string
	Outcome     string
	State       SubtaskState
}

// Plan is the agent's current task breakdown.
type Plan struct {
	Title           string
	Description     string
	ExpectedOutcome string
	Subtasks        []Subtask
	State           State
}

// Notebook holds the plan attached to the current run, if any. Operations
// are mutated only via the plan tools registered by the ReAct loop
// (spec.md §4.3, §5), so Notebook serializes its own access.
type Notebook struct {
	mu   sync.Mutex
	plan *Plan
}

// NewNotebook constructs an empty Notebook.
func NewNotebook() *Notebook {
	return &Notebook{}
}

// Attach installs p as the notebook's current plan, replacing any prior
// plan.
func (n *Notebook) Attach(p *Plan) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.plan = p
}

// Detach removes the current plan, if any.
func (n *Notebook) Detach() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.plan = nil
}

// Current returns a copy of the current plan and whether one is attached.
func (n *Notebook) Current() (Plan, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.plan == nil {
		return Plan{}, false
	}
	cp := *n.plan
	cp.Subtasks = append([]Subtask(nil), n.plan.Subtasks...)
	return cp, true
}

// Create replaces the current plan with a fresh one. A plan without subtasks
// starts in state TODO; otherwise the plan and its first subtask are marked
// IN_PROGRESS — maintaining the "exactly one
// IN_PROGRESS subtask" invariant from spec.md §3.
func (n *Notebook) Create(title, description, expectedOutcome string, subtasks []Subtask) {
	n.mu.Lock()
	defer n.mu.Unlock()
	p := &Plan{
		Title:           title,
		Description:     description,
		ExpectedOutcome: expectedOutcome,
		Subtasks:        subtasks,
		State:           StateTODO,
	}
	if len(p.Subtasks) > 0 {
		p.State = StateInProgress
		p.Subtasks[0].State = SubtaskInProgress
	}
	n.plan = p
}

// Advance marks the current IN_PROGRESS subtask with the given terminal
// state (DONE or SKIPPED) and advances the next TODO subtask to
// IN_PROGRESS. Returns an error if no plan is attached or no subtask is
// currently IN_PROGRESS.
func (n *Notebook) Advance(terminal SubtaskState, outcome string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.plan == nil {
		return fmt.Errorf("plan: no plan attached")
	}
	idx := -1
	for i, s := range n.plan.Subtasks {
		if s.State == SubtaskInProgress {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("plan: no subtask in progress")
	}
	n.plan.Subtasks[idx].State = terminal
	n.plan.Subtasks[idx].Outcome = outcome
	for i := idx + 1; i < len(n.plan.Subtasks); i++ {
		if n.plan.Subtasks[i].State == SubtaskTODO {
			n.plan.Subtasks[i].State = SubtaskInProgress
			return nil
		}
	}
	// No further TODO subtasks: the plan is complete.
	n.plan.State = StateDone
	return nil
}

// Finish marks the plan itself as DONE or ABANDONED, independent of
// individual subtask states (used when the agent decides to stop early).
func (n *Notebook) Finish(final State) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.plan == nil {
		return fmt.Errorf("plan: no plan attached")
	}
	if final != StateDone && final != StateAbandoned {
		return fmt.Errorf("plan: invalid terminal state %q", final)
	}
	n.plan.State = final
	return nil
}

// Render renders the current plan as a short human-readable hint suitable
// for inlining into a compaction prompt (spec.md §4.2 "Plan awareness").
// Returns "" if no plan is attached.
func (n *Notebook) Render() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.plan == nil {
		return ""
	}
	out := fmt.Sprintf("Plan: %s [%s]\n%s\n", n.plan.Title, n.plan.State, n.plan.Description)
	for i, s := range n.plan.Subtasks {
		out += fmt.Sprintf("  %d. [%s] %s\n", i+1, s.State, s.Title)
	}
	return out
}
