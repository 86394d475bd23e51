package agent_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentcore/agentcore/agent"
	"github.com/agentcore/agentcore/ltm"
	"github.com/agentcore/agentcore/message"
	"github.com/agentcore/agentcore/modelclient"
)

// fakeLongTermMemory is a scripted ltm.Store double for AGENT_CONTROL tests.
type fakeLongTermMemory struct {
	recorded []message.Message
	queries  []string
	results  []message.Message
}

func (f *fakeLongTermMemory) Record(_ context.Context, messages []message.Message) error {
	f.recorded = append(f.recorded, messages...)
	return nil
}

func (f *fakeLongTermMemory) Retrieve(_ context.Context, query string) ([]message.Message, error) {
	f.queries = append(f.queries, query)
	return f.results, nil
}

func TestAgentControlLongTermMemoryRegistersRecordAndRetrieveTools(t *testing.T) {
	client := &scriptedClient{turns: [][]modelclient.ChatResponse{
		{{ID: "t1", Content: []message.Block{
			message.ToolUseBlock{ID: "tc-1", Name: "record", Input: map[string]any{"content": "user prefers dark mode"}},
		}}},
		{{ID: "t2", Content: []message.Block{
			message.ToolUseBlock{ID: "tc-2", Name: "retrieve", Input: map[string]any{"query": "preferences"}},
		}}},
		{{ID: "t3", Content: []message.Block{message.TextBlock{Text: "done"}}}},
	}}
	mem := newMemory(t, client)
	store := &fakeLongTermMemory{results: []message.Message{message.NewText(message.RoleAssistant, "user prefers dark mode")}}
	loop := agent.New(client, mem, nil, agent.WithAgentControlLongTermMemory(store))

	events := drain(loop.Stream(context.Background(), message.NewText(message.RoleUser, "remember my preference"), agent.Options{
		LongTermMemoryMode: ltm.ModeAgentControl,
	}))

	require.Len(t, store.recorded, 1)
	assert.Equal(t, "user prefers dark mode", store.recorded[0].Text())
	require.Len(t, store.queries, 1)
	assert.Equal(t, "preferences", store.queries[0])

	var toolResults []message.ToolResultBlock
	for _, ev := range events {
		if ev.Kind == agent.EventToolResult {
			toolResults = append(toolResults, ev.Message.Content()[0].(message.ToolResultBlock))
		}
	}
	require.Len(t, toolResults, 2)
	assert.False(t, toolResults[0].IsError)
	assert.Equal(t, "recorded", toolResults[0].Output[0].(message.TextBlock).Text)
	assert.False(t, toolResults[1].IsError)
	assert.Contains(t, toolResults[1].Output[0].(message.TextBlock).Text, "dark mode")

	last := events[len(events)-1]
	assert.Equal(t, agent.EventFinish, last.Kind)
	assert.Equal(t, "done", last.Message.Text())
}
