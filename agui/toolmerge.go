package agui

import (
	"github.com/agentcore/agentcore/modelclient"
	"github.com/agentcore/agentcore/tool"
)

// mergeToolDefinitions reconciles the resolved agent's own registered tools
// with the frontend-declared tools carried on the request, per
// Config.ToolMergeMode (spec.md §4.5 "Configuration"). The result is the
// tool list sent to the model for the run. The adapter does not register or
// invoke frontend-declared tools, and tool-role messages on later requests
// are not forwarded to the agent, so a model call to a frontend-only tool is
// handled by the loop as a call to an unknown tool.
func mergeToolDefinitions(agentDefs []tool.Definition, frontendTools []ToolSpec, mode ToolMergeMode) []tool.Definition {
	switch mode {
	case ToolMergeFrontendOnly:
		return frontendDefinitions(frontendTools)
	case ToolMergeFrontendPriority:
		byName := make(map[string]tool.Definition, len(agentDefs)+len(frontendTools))
		order := make([]string, 0, len(agentDefs)+len(frontendTools))
		for _, d := range agentDefs {
			byName[d.Name] = d
			order = append(order, d.Name)
		}
		for _, t := range frontendTools {
			if _, ok := byName[t.Name]; !ok {
				order = append(order, t.Name)
			}
			byName[t.Name] = tool.Definition{Name: t.Name, Description: t.Description, InputSchema: t.Parameters}
		}
		out := make([]tool.Definition, 0, len(order))
		for _, name := range order {
			out = append(out, byName[name])
		}
		return out
	case ToolMergeAgentOnly, "":
		fallthrough
	default:
		return agentDefs
	}
}

func frontendDefinitions(specs []ToolSpec) []tool.Definition {
	out := make([]tool.Definition, len(specs))
	for i, s := range specs {
		out[i] = tool.Definition{Name: s.Name, Description: s.Description, InputSchema: s.Parameters}
	}
	return out
}

// toModelToolDefinitions converts a reconciled tool.Definition list into the
// shape modelclient.Client.Stream expects, so the merge computed above can
// actually reach the model (agent.Options.ExtraTools).
func toModelToolDefinitions(defs []tool.Definition) []modelclient.ToolDefinition {
	out := make([]modelclient.ToolDefinition, len(defs))
	for i, d := range defs {
		out[i] = modelclient.ToolDefinition{Name: d.Name, Description: d.Description, InputSchema: d.InputSchema}
	}
	return out
}
