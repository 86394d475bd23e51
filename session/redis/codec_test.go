package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentcore/agentcore/message"
	"github.com/agentcore/agentcore/plan"
	"github.com/agentcore/agentcore/session"
)

func TestEncodeDecodeStateRoundTrip(t *testing.T) {
	p := &plan.Plan{Title: "ship it", State: plan.StateInProgress}
	state := session.State{
		AgentID:  "agent-1",
		Messages: []message.Message{message.NewText(message.RoleUser, "hi")},
		Plan:     p,
		Offloads: map[string][]message.Message{
			"handle-1": {message.NewText(message.RoleTool, "offloaded")},
		},
	}

	w, err := encodeState(state)
	require.NoError(t, err)

	decoded, err := decodeState(w)
	require.NoError(t, err)

	assert.Equal(t, state.AgentID, decoded.AgentID)
	require.Len(t, decoded.Messages, 1)
	assert.Equal(t, "hi", decoded.Messages[0].Text())
	require.NotNil(t, decoded.Plan)
	assert.Equal(t, "ship it", decoded.Plan.Title)
	require.Contains(t, decoded.Offloads, "handle-1")
	assert.Equal(t, "offloaded", decoded.Offloads["handle-1"][0].Text())
}

func TestEncodeDecodeStateEmpty(t *testing.T) {
	w, err := encodeState(session.State{AgentID: "a"})
	require.NoError(t, err)
	decoded, err := decodeState(w)
	require.NoError(t, err)
	assert.Equal(t, "a", decoded.AgentID)
	assert.Empty(t, decoded.Messages)
	assert.Nil(t, decoded.Plan)
}
