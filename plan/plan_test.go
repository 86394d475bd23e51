package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentcore/agentcore/plan"
)

func TestCreateMarksFirstSubtaskInProgress(t *testing.T) {
	n := plan.NewNotebook()
	n.Create("ship feature", "desc", "outcome", []plan.Subtask{
		{Title: "design"}, {Title: "implement"},
	})
	cur, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, plan.StateInProgress, cur.State)
	assert.Equal(t, plan.SubtaskInProgress, cur.Subtasks[0].State)
	assert.Equal(t, plan.SubtaskTODO, cur.Subtasks[1].State)
}

func TestAdvanceMovesToNextSubtask(t *testing.T) {
	n := plan.NewNotebook()
	n.Create("t", "d", "o", []plan.Subtask{{Title: "a"}, {Title: "b"}})
	require.NoError(t, n.Advance(plan.SubtaskDone, "done a"))
	cur, _ := n.Current()
	assert.Equal(t, plan.SubtaskDone, cur.Subtasks[0].State)
	assert.Equal(t, plan.SubtaskInProgress, cur.Subtasks[1].State)
	assert.Equal(t, plan.StateInProgress, cur.State)
}

func TestAdvanceCompletesPlanWhenNoMoreSubtasks(t *testing.T) {
	n := plan.NewNotebook()
	n.Create("t", "d", "o", []plan.Subtask{{Title: "only"}})
	require.NoError(t, n.Advance(plan.SubtaskDone, "finished"))
	cur, _ := n.Current()
	assert.Equal(t, plan.StateDone, cur.State)
}

func TestAdvanceWithoutPlanErrors(t *testing.T) {
	n := plan.NewNotebook()
	assert.Error(t, n.Advance(plan.SubtaskDone, ""))
}

func TestDetachClearsCurrent(t *testing.T) {
	n := plan.NewNotebook()
	n.Create("t", "d", "o", []plan.Subtask{{Title: "a"}})
	n.Detach()
	_, ok := n.Current()
	assert.False(t, ok)
}

func TestRenderEmptyWhenNoPlan(t *testing.T) {
	n := plan.NewNotebook()
	assert.Equal(t, "", n.Render())
}

func TestRenderIncludesSubtasks(t *testing.T) {
	n := plan.NewNotebook()
	n.Create("Ship X", "d", "o", []plan.Subtask{{Title: "write code"}})
	out := n.Render()
	assert.Contains(t, out, "Ship X")
	assert.Contains(t, out, "write code")
}
