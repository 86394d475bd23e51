// Package config loads agentcore's runtime configuration from YAML, the
// way the teacher's integration test framework loads scenario files
// (integration_tests/framework/runner.go): plain structs with `yaml` tags,
// decoded via gopkg.in/yaml.v3. Functional options let callers override
// individual fields programmatically after loading (mirrors the teacher's
// registry.ServiceOptions construction pattern).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agentcore/agentcore/agui"
	"github.com/agentcore/agentcore/autocontext"
)

// Config is the top-level runtime configuration for an agentcore process.
type Config struct {
	Agent  AgentConfig  `yaml:"agent"`
	Memory MemoryConfig `yaml:"memory"`
	AGUI   AGUIConfig   `yaml:"agui"`
	Redis  RedisConfig  `yaml:"redis"`
	Model  ModelConfig  `yaml:"model"`
}

// AgentConfig configures the ReAct loop defaults.
type AgentConfig struct {
	MaxIters int    `yaml:"maxIters"`
	RAGMode  string `yaml:"ragMode"`
}

// MemoryConfig mirrors autocontext.Config's YAML-facing subset.
type MemoryConfig struct {
	MsgThreshold               int     `yaml:"msgThreshold"`
	MaxToken                   int     `yaml:"maxToken"`
	TokenRatio                 float64 `yaml:"tokenRatio"`
	LastKeep                   int     `yaml:"lastKeep"`
	MinConsecutiveToolMessages int     `yaml:"minConsecutiveToolMessages"`
	LargePayloadThreshold      int     `yaml:"largePayloadThreshold"`
}

// AGUIConfig mirrors agui.Config's YAML-facing subset.
type AGUIConfig struct {
	ToolMergeMode    string        `yaml:"toolMergeMode"`
	EmitStateEvents  bool          `yaml:"emitStateEvents"`
	EmitToolCallArgs bool          `yaml:"emitToolCallArgs"`
	EnableReasoning  bool          `yaml:"enableReasoning"`
	RunTimeout       time.Duration `yaml:"runTimeout"`
	DefaultAgentID   string        `yaml:"defaultAgentId"`
}

// RedisConfig configures the session/redis.Store connection.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ModelConfig selects and configures the model vendor adapter. Vendor API
// keys are read directly from the environment by the vendor adapter, not
// stored here (spec.md §6 "Environment variables").
type ModelConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

// Option mutates a loaded Config programmatically.
type Option func(*Config)

// WithMaxIters overrides Agent.MaxIters.
func WithMaxIters(n int) Option {
	return func(c *Config) { c.Agent.MaxIters = n }
}

// WithRedisAddr overrides Redis.Addr.
func WithRedisAddr(addr string) Option {
	return func(c *Config) { c.Redis.Addr = addr }
}

// Default returns the documented defaults for every section.
func Default() Config {
	ac := autocontext.DefaultConfig()
	return Config{
		Agent: AgentConfig{MaxIters: 10},
		Memory: MemoryConfig{
			MsgThreshold:               ac.MsgThreshold,
			MaxToken:                   ac.MaxToken,
			TokenRatio:                 ac.TokenRatio,
			LastKeep:                   ac.LastKeep,
			MinConsecutiveToolMessages: ac.MinConsecutiveToolMessages,
			LargePayloadThreshold:      ac.LargePayloadThreshold,
		},
		AGUI: AGUIConfig{
			ToolMergeMode:    string(agui.ToolMergeAgentOnly),
			EmitStateEvents:  true,
			EmitToolCallArgs: true,
			DefaultAgentID:   "default",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
	}
}

// Load reads and decodes a YAML configuration file, applying opts after
// decoding.
func Load(path string, opts ...Option) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, nil
}

// AutocontextConfig projects Memory into an autocontext.Config. Fields are
// copied as they are, zero values included; no defaults are applied here.
func (c Config) AutocontextConfig() autocontext.Config {
	return autocontext.Config{
		MsgThreshold:               c.Memory.MsgThreshold,
		MaxToken:                   c.Memory.MaxToken,
		TokenRatio:                 c.Memory.TokenRatio,
		LastKeep:                   c.Memory.LastKeep,
		MinConsecutiveToolMessages: c.Memory.MinConsecutiveToolMessages,
		LargePayloadThreshold:      c.Memory.LargePayloadThreshold,
	}
}

// AGUIAdapterConfig projects AGUI into an agui.Config.
func (c Config) AGUIAdapterConfig() agui.Config {
	return agui.Config{
		ToolMergeMode:    agui.ToolMergeMode(c.AGUI.ToolMergeMode),
		EmitStateEvents:  c.AGUI.EmitStateEvents,
		EmitToolCallArgs: c.AGUI.EmitToolCallArgs,
		EnableReasoning:  c.AGUI.EnableReasoning,
		RunTimeout:       c.AGUI.RunTimeout,
		DefaultAgentID:   c.AGUI.DefaultAgentID,
	}
}
