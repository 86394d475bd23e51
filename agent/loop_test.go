package agent_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentcore/agentcore/agent"
	"github.com/agentcore/agentcore/autocontext"
	"github.com/agentcore/agentcore/message"
	"github.com/agentcore/agentcore/modelclient"
	"github.com/agentcore/agentcore/tool"
)

type scriptedStreamer struct {
	responses []modelclient.ChatResponse
	i         int
}

func (s *scriptedStreamer) Recv() (modelclient.ChatResponse, error) {
	if s.i >= len(s.responses) {
		return modelclient.ChatResponse{}, io.EOF
	}
	r := s.responses[s.i]
	s.i++
	return r, nil
}

func (s *scriptedStreamer) Close() error { return nil }

// scriptedClient returns one pre-scripted set of chunks per call, advancing
// through calls in order — enough to drive a multi-turn ReAct loop
// deterministically (spec.md §8 S1/S2 scenarios).
type scriptedClient struct {
	turns [][]modelclient.ChatResponse
	idx   int
	// received records the messages passed to each Stream call, in order.
	received [][]message.Message
}

func (c *scriptedClient) Stream(_ context.Context, msgs []message.Message, _ []modelclient.ToolDefinition, _ modelclient.Options) (modelclient.Streamer, error) {
	c.received = append(c.received, msgs)
	turn := c.turns[c.idx]
	c.idx++
	return &scriptedStreamer{responses: turn}, nil
}

func newMemory(t *testing.T, client modelclient.Client) *autocontext.Memory {
	t.Helper()
	cfg := autocontext.DefaultConfig()
	cfg.MsgThreshold = 1000
	mem, err := autocontext.New(cfg, client)
	require.NoError(t, err)
	return mem
}

func drain(ch <-chan agent.Event) []agent.Event {
	var out []agent.Event
	for ev := range ch {
		out = append(out, ev)
	}
	return out
}

func TestSingleTurnText(t *testing.T) {
	client := &scriptedClient{turns: [][]modelclient.ChatResponse{
		{{ID: "turn1", Content: []message.Block{message.TextBlock{Text: "Hi"}}}},
	}}
	mem := newMemory(t, client)
	loop := agent.New(client, mem, nil)

	events := drain(loop.Stream(context.Background(), message.NewText(message.RoleUser, "Hello"), agent.Options{}))

	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, agent.EventFinish, last.Kind)
	assert.Equal(t, "Hi", last.Message.Text())
	assert.False(t, last.Truncated)

	var sawReasoningLast, sawReasoningContent bool
	for _, ev := range events {
		if ev.Kind != agent.EventReasoning {
			continue
		}
		if ev.Last {
			sawReasoningLast = true
			continue
		}
		if ev.Message.Text() == "Hi" {
			sawReasoningContent = true
		}
	}
	assert.True(t, sawReasoningContent, "expected the streamed chunk to carry the turn's text")
	assert.True(t, sawReasoningLast, "expected a closing REASONING event marking end of turn")
}

func TestToolRoundTrip(t *testing.T) {
	client := &scriptedClient{turns: [][]modelclient.ChatResponse{
		{{ID: "turn1", Content: []message.Block{
			message.ToolUseBlock{ID: "tc-1", Name: "get_weather", Input: map[string]any{"city": "Beijing"}},
		}}},
		{{ID: "turn2", Content: []message.Block{message.TextBlock{Text: "It is sunny, 25°C in Beijing."}}}},
	}}
	mem := newMemory(t, client)

	registry := tool.NewRegistry()
	weather, err := tool.New("get_weather", "", nil, func(_ context.Context, input map[string]any) ([]message.Block, error) {
		return []message.Block{message.TextBlock{Text: "sunny, 25°C"}}, nil
	})
	require.NoError(t, err)
	registry.Register(weather)

	loop := agent.New(client, mem, registry)
	events := drain(loop.Stream(context.Background(), message.NewText(message.RoleUser, "weather in Beijing"), agent.Options{}))

	var toolResults []agent.Event
	for _, ev := range events {
		if ev.Kind == agent.EventToolResult {
			toolResults = append(toolResults, ev)
		}
	}
	require.Len(t, toolResults, 1)
	tr := toolResults[0].Message.Content()[0].(message.ToolResultBlock)
	assert.Equal(t, "tc-1", tr.ID)
	assert.False(t, tr.IsError)
	assert.Equal(t, "sunny, 25°C", tr.Output[0].(message.TextBlock).Text)

	last := events[len(events)-1]
	assert.Equal(t, agent.EventFinish, last.Kind)
	assert.Equal(t, "It is sunny, 25°C in Beijing.", last.Message.Text())
}

func TestMaxItersTruncation(t *testing.T) {
	toolUse := []message.Block{message.ToolUseBlock{ID: "tc-loop", Name: "noop", Input: map[string]any{}}}
	client := &scriptedClient{turns: [][]modelclient.ChatResponse{
		{{ID: "t1", Content: toolUse}},
		{{ID: "t2", Content: toolUse}},
		{{ID: "t3", Content: toolUse}},
	}}
	mem := newMemory(t, client)
	registry := tool.NewRegistry()
	noop, err := tool.New("noop", "", nil, func(context.Context, map[string]any) ([]message.Block, error) {
		return []message.Block{message.TextBlock{Text: "done"}}, nil
	})
	require.NoError(t, err)
	registry.Register(noop)

	loop := agent.New(client, mem, registry)
	events := drain(loop.Stream(context.Background(), message.NewText(message.RoleUser, "loop forever"), agent.Options{MaxIters: 2}))

	last := events[len(events)-1]
	assert.Equal(t, agent.EventFinish, last.Kind)
	assert.True(t, last.Truncated)
}

func TestCallReturnsLastAssistantMessage(t *testing.T) {
	client := &scriptedClient{turns: [][]modelclient.ChatResponse{
		{{ID: "turn1", Content: []message.Block{message.TextBlock{Text: "final answer"}}}},
	}}
	mem := newMemory(t, client)
	loop := agent.New(client, mem, nil)

	result, err := loop.Call(context.Background(), message.NewText(message.RoleUser, "question"), agent.Options{})
	require.NoError(t, err)
	assert.Equal(t, "final answer", result.Text())
}

func TestUnknownToolBecomesErrorResult(t *testing.T) {
	client := &scriptedClient{turns: [][]modelclient.ChatResponse{
		{{ID: "turn1", Content: []message.Block{
			message.ToolUseBlock{ID: "tc-1", Name: "does_not_exist", Input: map[string]any{}},
		}}},
		{{ID: "turn2", Content: []message.Block{message.TextBlock{Text: "ok"}}}},
	}}
	mem := newMemory(t, client)
	loop := agent.New(client, mem, nil)

	events := drain(loop.Stream(context.Background(), message.NewText(message.RoleUser, "call unknown tool"), agent.Options{}))

	var found bool
	for _, ev := range events {
		if ev.Kind == agent.EventToolResult {
			tr := ev.Message.Content()[0].(message.ToolResultBlock)
			assert.True(t, tr.IsError)
			found = true
		}
	}
	assert.True(t, found)
}
