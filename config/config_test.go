package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentcore/agentcore/config"
)

func TestLoadAppliesDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agentcore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
agent:
  maxIters: 5
redis:
  addr: redis.internal:6379
`), 0o644))

	cfg, err := config.Load(path, config.WithMaxIters(7))
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Agent.MaxIters, "WithMaxIters overrides the YAML value")
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, 20, cfg.Memory.MsgThreshold, "unset memory fields fall back to Default()")
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAutocontextConfigProjection(t *testing.T) {
	cfg := config.Default()
	ac := cfg.AutocontextConfig()
	assert.Equal(t, cfg.Memory.MsgThreshold, ac.MsgThreshold)
	assert.Equal(t, cfg.Memory.TokenRatio, ac.TokenRatio)
}
