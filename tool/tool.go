// Package tool implements the Tool Invocation Contract (spec.md §4.4): a
// tool declares a JSON-Schema-validated input shape and an invoke function,
// and every outcome — success or failure — is normalized into a
// ToolResultBlock sharing the originating ToolUseBlock's id.
package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/agentcore/agentcore/agenterr"
	"github.com/agentcore/agentcore/message"
)

// Invoker executes a tool call against a decoded input payload. A single
// Invoker must be safe to call repeatedly with the same input (spec.md
// §4.4 "must be idempotent from the runtime's perspective").
type Invoker func(ctx context.Context, input map[string]any) ([]message.Block, error)

// Tool is a single callable tool exposed to the model.
type Tool struct {
	Name        string
	Description string
	// Schema is the JSON Schema (as a Go value, e.g. from json.Unmarshal)
	// describing the tool's input payload.
	Schema any

	invoke   Invoker
	compiled *jsonschema.Schema
}

// New constructs a Tool and compiles its JSON Schema eagerly so malformed
// schemas fail at registration time rather than on first invocation
// (spec.md §3 "a tool registered with an invalid schema is a ConfigError").
func New(name, description string, schema any, invoke Invoker) (*Tool, error) {
	if name == "" {
		return nil, agenterr.New(agenterr.KindConfig, "tool: name must not be empty")
	}
	if invoke == nil {
		return nil, agenterr.Errorf(agenterr.KindConfig, "tool %q: invoke must not be nil", name)
	}
	t := &Tool{Name: name, Description: description, Schema: schema, invoke: invoke}
	if schema != nil {
		compiled, err := compileSchema(name, schema)
		if err != nil {
			return nil, err
		}
		t.compiled = compiled
	}
	return t, nil
}

func compileSchema(name string, schema any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, agenterr.Wrap(agenterr.KindConfig, fmt.Sprintf("tool %q: marshal schema", name), err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, agenterr.Wrap(agenterr.KindConfig, fmt.Sprintf("tool %q: decode schema", name), err)
	}
	resource := "agentcore://tool/" + name
	c := jsonschema.NewCompiler()
	if err := c.AddResource(resource, doc); err != nil {
		return nil, agenterr.Wrap(agenterr.KindConfig, fmt.Sprintf("tool %q: add schema resource", name), err)
	}
	compiled, err := c.Compile(resource)
	if err != nil {
		return nil, agenterr.Wrap(agenterr.KindConfig, fmt.Sprintf("tool %q: compile schema", name), err)
	}
	return compiled, nil
}

// Validate checks input against the tool's compiled schema, if any.
func (t *Tool) Validate(input map[string]any) error {
	if t.compiled == nil {
		return nil
	}
	if err := t.compiled.Validate(input); err != nil {
		return agenterr.Wrap(agenterr.KindTool, fmt.Sprintf("tool %q: input validation failed", t.Name), err)
	}
	return nil
}

// Invoke validates input, calls the tool's Invoker, and normalizes the
// outcome into a ToolResultBlock sharing toolUseID. A validation failure or
// an error returned by Invoker becomes an error TextBlock inside the
// ToolResultBlock rather than propagating, per the invocation contract.
func (t *Tool) Invoke(ctx context.Context, toolUseID string, input map[string]any) message.Message {
	if err := t.Validate(input); err != nil {
		return errorResult(toolUseID, t.Name, err)
	}
	output, err := t.invoke(ctx, input)
	if err != nil {
		return errorResult(toolUseID, t.Name, err)
	}
	return message.New("", message.RoleTool, []message.Block{
		message.ToolResultBlock{ID: toolUseID, Name: t.Name, Output: output},
	})
}

func errorResult(toolUseID, name string, err error) message.Message {
	return message.New("", message.RoleTool, []message.Block{
		message.ToolResultBlock{
			ID:      toolUseID,
			Name:    name,
			IsError: true,
			Output:  []message.Block{message.TextBlock{Text: err.Error()}},
		},
	})
}

// Registry holds the set of tools available to a single ReAct run, keyed by
// name.
type Registry struct {
	tools map[string]*Tool
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register adds t to the registry, replacing any existing tool of the same
// name.
func (r *Registry) Register(t *Tool) {
	r.tools[t.Name] = t
}

// Get returns the tool registered under name, if any.
func (r *Registry) Get(name string) (*Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Definitions returns the registry's tools as modelclient.ToolDefinition
// candidates (name, description, schema), for requests to the model.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, Definition{Name: t.Name, Description: t.Description, InputSchema: t.Schema})
	}
	return out
}

// Definition is the wire-agnostic shape a Registry exposes to the model
// client layer.
type Definition struct {
	Name        string
	Description string
	InputSchema any
}
