package agent

import (
	"context"
	"fmt"

	"github.com/agentcore/agentcore/message"
	"github.com/agentcore/agentcore/plan"
	"github.com/agentcore/agentcore/tool"
)

// registerPlanTools installs the built-in plan toolkit against notebook
// (spec.md §4.3 "Plan integration", SPEC_FULL.md [ADD 4.3.1]). Each tool
// declares an explicit JSON Schema for its input, grounded in the teacher's
// pattern of schema-validated generated tool specs.
func registerPlanTools(r *tool.Registry, notebook *plan.Notebook) {
	if create, err := tool.New("plan_create", "Create or replace the current task plan.", planCreateSchema, planCreateInvoker(notebook)); err == nil {
		r.Register(create)
	}
	if advance, err := tool.New("plan_advance", "Mark the in-progress subtask complete or skipped and advance to the next one.", planAdvanceSchema, planAdvanceInvoker(notebook)); err == nil {
		r.Register(advance)
	}
	if finish, err := tool.New("plan_finish", "Mark the current plan as done or abandoned.", planFinishSchema, planFinishInvoker(notebook)); err == nil {
		r.Register(finish)
	}
}

var planCreateSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":           map[string]any{"type": "string"},
		"description":     map[string]any{"type": "string"},
		"expectedOutcome": map[string]any{"type": "string"},
		"subtasks": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":       map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
				},
				"required": []any{"title"},
			},
		},
	},
	"required": []any{"title"},
}

var planAdvanceSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"terminalState": map[string]any{"type": "string", "enum": []any{"DONE", "SKIPPED"}},
		"outcome":       map[string]any{"type": "string"},
	},
	"required": []any{"terminalState"},
}

var planFinishSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"finalState": map[string]any{"type": "string", "enum": []any{"DONE", "ABANDONED"}},
	},
	"required": []any{"finalState"},
}

func planCreateInvoker(notebook *plan.Notebook) tool.Invoker {
	return func(_ context.Context, input map[string]any) ([]message.Block, error) {
		title, _ := input["title"].(string)
		description, _ := input["description"].(string)
		outcome, _ := input["expectedOutcome"].(string)
		var subtasks []plan.Subtask
		if raw, ok := input["subtasks"].([]any); ok {
			for _, item := range raw {
				obj, ok := item.(map[string]any)
				if !ok {
					continue
				}
				st := plan.Subtask{State: plan.SubtaskTODO}
				st.Title, _ = obj["title"].(string)
				st.Description, _ = obj["description"].(string)
				subtasks = append(subtasks, st)
			}
		}
		notebook.Create(title, description, outcome, subtasks)
		return []message.Block{message.TextBlock{Text: fmt.Sprintf("plan %q created with %d subtask(s)", title, len(subtasks))}}, nil
	}
}

func planAdvanceInvoker(notebook *plan.Notebook) tool.Invoker {
	return func(_ context.Context, input map[string]any) ([]message.Block, error) {
		terminal, _ := input["terminalState"].(string)
		outcome, _ := input["outcome"].(string)
		if err := notebook.Advance(plan.SubtaskState(terminal), outcome); err != nil {
			return nil, err
		}
		return []message.Block{message.TextBlock{Text: "subtask advanced"}}, nil
	}
}

func planFinishInvoker(notebook *plan.Notebook) tool.Invoker {
	return func(_ context.Context, input map[string]any) ([]message.Block, error) {
		final, _ := input["finalState"].(string)
		if err := notebook.Finish(plan.State(final)); err != nil {
			return nil, err
		}
		return []message.Block{message.TextBlock{Text: "plan finished: " + final}}, nil
	}
}
