package autocontext_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentcore/agentcore/autocontext"
	"github.com/agentcore/agentcore/message"
	"github.com/agentcore/agentcore/modelclient"
)

// stubStreamer yields a single fixed text chunk then io.EOF, counting how
// many times it was invoked via stubClient.calls.
type stubStreamer struct {
	text string
	sent bool
}

func (s *stubStreamer) Recv() (modelclient.ChatResponse, error) {
	if s.sent {
		return modelclient.ChatResponse{}, io.EOF
	}
	s.sent = true
	return modelclient.ChatResponse{
		Content: []message.Block{message.TextBlock{Text: s.text}},
	}, nil
}

func (s *stubStreamer) Close() error { return nil }

type stubClient struct {
	calls int
}

func (c *stubClient) Stream(_ context.Context, _ []message.Message, _ []modelclient.ToolDefinition, _ modelclient.Options) (modelclient.Streamer, error) {
	c.calls++
	return &stubStreamer{text: "summary"}, nil
}

func toolPair(name string) (message.Message, message.Message) {
	use := message.New("", message.RoleAssistant, []message.Block{
		message.ToolUseBlock{ID: "id-" + name, Name: name, Input: map[string]any{}},
	})
	result := message.New("", message.RoleTool, []message.Block{
		message.ToolResultBlock{ID: "id-" + name, Name: name, Output: []message.Block{message.TextBlock{Text: "ok"}}},
	})
	return use, result
}

func TestCompressionTriggerConsecutiveToolMessages(t *testing.T) {
	client := &stubClient{}
	cfg := autocontext.Config{
		MsgThreshold:               10,
		MaxToken:                   50,
		TokenRatio:                 0.5,
		LastKeep:                   5,
		MinConsecutiveToolMessages: 3,
		LargePayloadThreshold:      1_000_000,
	}
	mem, err := autocontext.New(cfg, client)
	require.NoError(t, err)

	mem.AddMessage(message.NewText(message.RoleUser, "start"))
	for i := 0; i < 5; i++ {
		use, result := toolPair("test_tool")
		mem.AddMessage(use)
		mem.AddMessage(result)
	}
	mem.AddMessage(message.NewText(message.RoleAssistant, "done with tools"))
	for i := 0; i < 10; i++ {
		mem.AddMessage(message.NewText(message.RoleUser, "filler"))
	}

	require.Equal(t, 22, len(mem.Original()))

	working, err := mem.GetMessages(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, client.calls, 1)
	assert.Less(t, len(working), 22)
	assert.Equal(t, 22, len(mem.Original()))

	var offloadHandle string
	events := mem.Events()
	require.NotEmpty(t, events)
	for _, e := range events {
		if e.Kind == autocontext.KindToolInvocationCompress {
			v, _ := e.Metadata["offload_handle"].(string)
			offloadHandle = v
		}
	}
	require.NotEmpty(t, offloadHandle)
	reloaded := mem.Reload(offloadHandle)
	assert.Equal(t, 10, len(reloaded))
}

func TestCompressionTriggerPreviousRoundSummary(t *testing.T) {
	client := &stubClient{}
	cfg := autocontext.Config{
		MsgThreshold:               5,
		MaxToken:                   50,
		TokenRatio:                 0.5,
		LastKeep:                   2,
		MinConsecutiveToolMessages: 10,
		LargePayloadThreshold:      1_000_000,
	}
	mem, err := autocontext.New(cfg, client)
	require.NoError(t, err)

	for round := 0; round < 5; round++ {
		mem.AddMessage(message.NewText(message.RoleUser, "ask"))
		use, result := toolPair("round_tool")
		mem.AddMessage(use)
		mem.AddMessage(result)
		mem.AddMessage(message.NewText(message.RoleAssistant, "answer"))
	}
	mem.AddMessage(message.NewText(message.RoleUser, "final question"))

	working, err := mem.GetMessages(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, client.calls, 4)
	assert.Less(t, len(working), 21)

	var sawConversationSummary bool
	for _, m := range working {
		if kind, ok := m.MetaString("kind"); ok && kind == "conversation_summary" {
			sawConversationSummary = true
		}
	}
	assert.True(t, sawConversationSummary)
}

func TestReloadUnknownHandleReturnsToolStyleError(t *testing.T) {
	client := &stubClient{}
	mem, err := autocontext.New(autocontext.DefaultConfig(), client)
	require.NoError(t, err)

	msgs := mem.Reload("does-not-exist")
	require.Len(t, msgs, 1)
	assert.Equal(t, message.RoleTool, msgs[0].Role())
}

func TestReloadEmptyHandleReturnsToolStyleError(t *testing.T) {
	client := &stubClient{}
	mem, err := autocontext.New(autocontext.DefaultConfig(), client)
	require.NoError(t, err)

	msgs := mem.Reload("")
	require.Len(t, msgs, 1)
	assert.Nil(t, msgs[0].ToolUseBlocks())
}

func TestNewRejectsInvalidTokenRatio(t *testing.T) {
	client := &stubClient{}
	cfg := autocontext.DefaultConfig()
	cfg.TokenRatio = 1.5
	_, err := autocontext.New(cfg, client)
	assert.Error(t, err)
}
