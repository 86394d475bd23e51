package agui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentcore/agentcore/tool"
)

func TestMergeToolDefinitionsAgentOnly(t *testing.T) {
	agentDefs := []tool.Definition{{Name: "a"}}
	frontend := []ToolSpec{{Name: "b"}}

	out := mergeToolDefinitions(agentDefs, frontend, ToolMergeAgentOnly)

	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].Name)
}

func TestMergeToolDefinitionsFrontendOnly(t *testing.T) {
	agentDefs := []tool.Definition{{Name: "a"}}
	frontend := []ToolSpec{{Name: "b", Description: "d"}}

	out := mergeToolDefinitions(agentDefs, frontend, ToolMergeFrontendOnly)

	require.Len(t, out, 1)
	assert.Equal(t, "b", out[0].Name)
	assert.Equal(t, "d", out[0].Description)
}

func TestMergeToolDefinitionsFrontendPriorityUnionAndOverride(t *testing.T) {
	agentDefs := []tool.Definition{{Name: "a", Description: "agent-a"}, {Name: "shared", Description: "agent-shared"}}
	frontend := []ToolSpec{{Name: "shared", Description: "frontend-shared"}, {Name: "c", Description: "frontend-c"}}

	out := mergeToolDefinitions(agentDefs, frontend, ToolMergeFrontendPriority)

	byName := map[string]tool.Definition{}
	for _, d := range out {
		byName[d.Name] = d
	}
	require.Len(t, out, 3)
	assert.Equal(t, "agent-a", byName["a"].Description)
	assert.Equal(t, "frontend-shared", byName["shared"].Description)
	assert.Equal(t, "frontend-c", byName["c"].Description)
}
