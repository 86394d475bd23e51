package message_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentcore/agentcore/message"
)

func TestJSONRoundTripAllBlockKinds(t *testing.T) {
	original := message.New("m1", message.RoleAssistant, []message.Block{
		message.TextBlock{Text: "hello"},
		message.ThinkingBlock{Thinking: "pondering"},
		message.ToolUseBlock{ID: "t1", Name: "search", Input: map[string]any{"q": "go"}},
		message.ToolResultBlock{
			ID:   "t1",
			Name: "search",
			Output: []message.Block{
				message.TextBlock{Text: "result text"},
			},
		},
		message.ImageBlock{Source: message.Base64ImageSource{Data: "Zm9v", MediaType: "image/png"}},
		message.ImageBlock{Source: message.URLImageSource{URL: "https://example.com/x.png"}},
	}).WithMetadata(map[string]any{"k": "v"})

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded message.Message
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original.ID(), decoded.ID())
	assert.Equal(t, original.Role(), decoded.Role())
	assert.Equal(t, "hello", decoded.Text())

	require.Len(t, decoded.Content(), 6)
	tu, ok := decoded.Content()[2].(message.ToolUseBlock)
	require.True(t, ok)
	assert.Equal(t, "search", tu.Name)
	assert.Equal(t, "go", tu.Input["q"])

	tr, ok := decoded.Content()[3].(message.ToolResultBlock)
	require.True(t, ok)
	require.Len(t, tr.Output, 1)
	assert.Equal(t, "result text", tr.Output[0].(message.TextBlock).Text)

	v, ok := decoded.MetaString("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestJSONRoundTripTextOnlyPreservesText(t *testing.T) {
	original := message.NewText(message.RoleUser, "plain text message")
	data, err := json.Marshal(original)
	require.NoError(t, err)
	var decoded message.Message
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original.Text(), decoded.Text())
}
