package agui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapePointer(t *testing.T) {
	assert.Equal(t, "~0", escapePointer("~"))
	assert.Equal(t, "~1", escapePointer("/"))
	assert.Equal(t, "a~01b", escapePointer("a~1b"))
}

func TestDiffStateAddReplaceRemove(t *testing.T) {
	before := map[string]any{"count": float64(1), "stale": "x"}
	after := map[string]any{"count": float64(2), "fresh": "y"}

	ops := diffState(before, after)

	var sawReplace, sawAdd, sawRemove bool
	for _, op := range ops {
		switch op.Op {
		case "replace":
			sawReplace = true
			assert.Equal(t, "/count", op.Path)
		case "add":
			sawAdd = true
			assert.Equal(t, "/fresh", op.Path)
		case "remove":
			sawRemove = true
			assert.Equal(t, "/stale", op.Path)
		}
	}
	assert.True(t, sawReplace)
	assert.True(t, sawAdd)
	assert.True(t, sawRemove)
}

func TestDiffStateNoChangeProducesNoOps(t *testing.T) {
	m := map[string]any{"a": float64(1)}
	assert.Nil(t, diffState(m, map[string]any{"a": float64(1)}))
}

func TestDiffStateEscapesSlashAndTilde(t *testing.T) {
	ops := diffState(nil, map[string]any{"a/b~c": "v"})
	require := assert.New(t)
	require.Len(ops, 1)
	require.Equal("/a~1b~0c", ops[0].Path)
}
