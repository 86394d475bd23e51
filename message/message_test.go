package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentcore/agentcore/message"
)

func TestNewGeneratesID(t *testing.T) {
	m := message.New("", message.RoleUser, []message.Block{message.TextBlock{Text: "hi"}})
	require.NotEmpty(t, m.ID())
}

func TestNewPreservesExplicitID(t *testing.T) {
	m := message.New("msg-1", message.RoleUser, nil)
	assert.Equal(t, "msg-1", m.ID())
}

func TestContentIsCopiedNotShared(t *testing.T) {
	blocks := []message.Block{message.TextBlock{Text: "a"}}
	m := message.New("m1", message.RoleUser, blocks)
	blocks[0] = message.TextBlock{Text: "mutated"}
	assert.Equal(t, "a", m.Content()[0].(message.TextBlock).Text)
}

func TestWithMetadataIsShallowImmutable(t *testing.T) {
	base := map[string]any{"k": "v"}
	m := message.New("m1", message.RoleUser, nil).WithMetadata(base)
	base["k"] = "changed"
	got, ok := m.MetaString("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestToolUseBlocksOrder(t *testing.T) {
	m := message.New("m1", message.RoleAssistant, []message.Block{
		message.TextBlock{Text: "thinking"},
		message.ToolUseBlock{ID: "t1", Name: "a"},
		message.ToolUseBlock{ID: "t2", Name: "b"},
	})
	got := m.ToolUseBlocks()
	require.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].ID)
	assert.Equal(t, "t2", got[1].ID)
}

func TestIsToolRelated(t *testing.T) {
	toolMsg := message.New("m1", message.RoleAssistant, []message.Block{message.ToolUseBlock{ID: "t1"}})
	assert.True(t, toolMsg.IsToolRelated())

	mixed := message.New("m2", message.RoleAssistant, []message.Block{
		message.TextBlock{Text: "x"},
		message.ToolUseBlock{ID: "t1"},
	})
	assert.False(t, mixed.IsToolRelated())

	empty := message.New("m3", message.RoleUser, nil)
	assert.False(t, empty.IsToolRelated())
}

func TestTextConcatenatesTextBlocksOnly(t *testing.T) {
	m := message.New("m1", message.RoleAssistant, []message.Block{
		message.TextBlock{Text: "hello "},
		message.ThinkingBlock{Thinking: "ignored"},
		message.TextBlock{Text: "world"},
	})
	assert.Equal(t, "hello world", m.Text())
}
