package tool_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentcore/agentcore/message"
	"github.com/agentcore/agentcore/tool"
)

var weatherSchema = map[string]any{
	"type":                 "object",
	"properties":           map[string]any{"city": map[string]any{"type": "string"}},
	"required":             []any{"city"},
	"additionalProperties": false,
}

func TestNewRejectsInvalidSchema(t *testing.T) {
	_, err := tool.New("broken", "", map[string]any{"type": "not-a-real-type"}, func(context.Context, map[string]any) ([]message.Block, error) {
		return nil, nil
	})
	assert.Error(t, err)
}

func TestNewRejectsEmptyName(t *testing.T) {
	_, err := tool.New("", "", nil, func(context.Context, map[string]any) ([]message.Block, error) { return nil, nil })
	assert.Error(t, err)
}

func TestInvokeSuccessNormalizesToolResult(t *testing.T) {
	tl, err := tool.New("get_weather", "fetch weather", weatherSchema, func(_ context.Context, input map[string]any) ([]message.Block, error) {
		return []message.Block{message.TextBlock{Text: "sunny, 25°C"}}, nil
	})
	require.NoError(t, err)

	result := tl.Invoke(context.Background(), "tc-1", map[string]any{"city": "Beijing"})
	require.Len(t, result.Content(), 1)
	tr, ok := result.Content()[0].(message.ToolResultBlock)
	require.True(t, ok)
	assert.Equal(t, "tc-1", tr.ID)
	assert.False(t, tr.IsError)
	require.Len(t, tr.Output, 1)
	assert.Equal(t, "sunny, 25°C", tr.Output[0].(message.TextBlock).Text)
}

func TestInvokeValidationFailureBecomesErrorResult(t *testing.T) {
	tl, err := tool.New("get_weather", "", weatherSchema, func(context.Context, map[string]any) ([]message.Block, error) {
		t.Fatal("invoke should not be called when validation fails")
		return nil, nil
	})
	require.NoError(t, err)

	result := tl.Invoke(context.Background(), "tc-2", map[string]any{"unexpected": true})
	tr := result.Content()[0].(message.ToolResultBlock)
	assert.True(t, tr.IsError)
	assert.Equal(t, "tc-2", tr.ID)
}

func TestInvokeErrorBecomesErrorResult(t *testing.T) {
	tl, err := tool.New("flaky", "", nil, func(context.Context, map[string]any) ([]message.Block, error) {
		return nil, errors.New("boom")
	})
	require.NoError(t, err)

	result := tl.Invoke(context.Background(), "tc-3", map[string]any{})
	tr := result.Content()[0].(message.ToolResultBlock)
	assert.True(t, tr.IsError)
	assert.Equal(t, "boom", tr.Output[0].(message.TextBlock).Text)
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := tool.NewRegistry()
	tl, err := tool.New("noop", "does nothing", nil, func(context.Context, map[string]any) ([]message.Block, error) {
		return nil, nil
	})
	require.NoError(t, err)

	r.Register(tl)
	got, ok := r.Get("noop")
	require.True(t, ok)
	assert.Equal(t, "noop", got.Name)

	_, ok = r.Get("missing")
	assert.False(t, ok)

	defs := r.Definitions()
	require.Len(t, defs, 1)
	assert.Equal(t, "noop", defs[0].Name)
}
