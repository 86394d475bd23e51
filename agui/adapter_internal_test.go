package agui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentcore/agentcore/agent"
	"github.com/agentcore/agentcore/message"
)

func newTestAdapterRun() *adapterRun {
	return &adapterRun{
		cfg:       DefaultConfig(),
		threadID:  "t1",
		runID:     "r1",
		out:       make(chan Event, 64),
		seenMsg:   map[string]bool{},
		seenTool:  map[string]bool{},
		endedTool: map[string]bool{},
	}
}

func drainBuffered(ch chan Event) []Event {
	close(ch)
	var out []Event
	for ev := range ch {
		out = append(out, ev)
	}
	return out
}

// S5: a TOOL_RESULT event with no preceding REASONING event back-fills
// ToolCallStart/ToolCallEnd before emitting ToolCallResult (spec.md §8 S5).
func TestBackfillOrphanedToolResult(t *testing.T) {
	a := newTestAdapterRun()
	ctx := context.Background()

	resultMsg := message.New("", message.RoleTool, []message.Block{
		message.ToolResultBlock{ID: "tc-orphan", Name: "ghost", Output: []message.Block{message.TextBlock{Text: "boo"}}},
	})
	a.handleToolResult(ctx, agent.Event{Kind: agent.EventToolResult, Message: resultMsg})

	events := drainBuffered(a.out)
	require.Len(t, events, 3)
	assert.Equal(t, EventToolCallStart, events[0].Type)
	assert.Equal(t, "tc-orphan", events[0].ToolCallID)
	assert.Equal(t, "ghost", events[0].ToolCallName)
	assert.Equal(t, EventToolCallEnd, events[1].Type)
	assert.Equal(t, EventToolCallResult, events[2].Type)
	assert.Equal(t, "boo", events[2].ToolContent)
}

// S6: two REASONING events bearing the same message id and ToolUseBlock id
// produce exactly one ToolCallStart (de-duplication, spec.md §8 S6).
func TestDeduplicatesRepeatedToolCallStart(t *testing.T) {
	a := newTestAdapterRun()
	ctx := context.Background()

	tu := message.ToolUseBlock{ID: "tc-1", Name: "get_weather", Input: map[string]any{"city": "Beijing"}}
	msg := message.New("turn1", message.RoleAssistant, []message.Block{tu})

	a.handleReasoning(ctx, agent.Event{Kind: agent.EventReasoning, Message: msg})
	a.handleReasoning(ctx, agent.Event{Kind: agent.EventReasoning, Message: msg, Last: true})

	events := drainBuffered(a.out)
	starts := 0
	for _, ev := range events {
		if ev.Type == EventToolCallStart {
			starts++
		}
	}
	assert.Equal(t, 1, starts)
}

// De-duplication also applies to TEXT_MESSAGE_START across repeated chunks
// sharing the same message id.
func TestDeduplicatesRepeatedTextMessageStart(t *testing.T) {
	a := newTestAdapterRun()
	ctx := context.Background()

	msg1 := message.New("turn1", message.RoleAssistant, []message.Block{message.TextBlock{Text: "Hel"}})
	msg2 := message.New("turn1", message.RoleAssistant, []message.Block{message.TextBlock{Text: "lo"}})

	a.handleReasoning(ctx, agent.Event{Kind: agent.EventReasoning, Message: msg1})
	a.handleReasoning(ctx, agent.Event{Kind: agent.EventReasoning, Message: msg2, Last: true})

	events := drainBuffered(a.out)
	starts, ends := 0, 0
	for _, ev := range events {
		switch ev.Type {
		case EventTextMessageStart:
			starts++
		case EventTextMessageEnd:
			ends++
		}
	}
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, ends)
}
