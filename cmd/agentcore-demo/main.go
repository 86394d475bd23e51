// Command agentcore-demo wires a ReAct agent loop behind the AG-UI
// HTTP/SSE transport, the way registry/cmd/registry/main.go wires the
// registry service behind its gRPC transport: load configuration from the
// environment, construct the collaborators, serve.
//
// # Configuration
//
// Environment variables:
//
//	AGENTCORE_ADDR        - HTTP listen address (default: ":8080")
//	AGENTCORE_CONFIG      - path to a YAML config file (optional)
//	ANTHROPIC_API_KEY     - model vendor API key (required)
//	ANTHROPIC_MODEL       - model identifier (default: "claude-sonnet-4-5")
//	REDIS_ADDR            - session store address (default: "localhost:6379")
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/agentcore/agentcore/agent"
	"github.com/agentcore/agentcore/agui"
	"github.com/agentcore/agentcore/autocontext"
	"github.com/agentcore/agentcore/config"
	"github.com/agentcore/agentcore/modelclient/anthropic"
	sessionredis "github.com/agentcore/agentcore/session/redis"
	"github.com/agentcore/agentcore/tool"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()

	cfg := config.Default()
	if path := os.Getenv("AGENTCORE_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	model := envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5")

	client, err := anthropic.NewFromAPIKey(apiKey, model)
	if err != nil {
		return fmt.Errorf("create model client: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	store := sessionredis.NewStore(rdb)

	resolver := agui.ResolverFunc(func(ctx context.Context, agentID, threadID string) (agui.ResolvedAgent, error) {
		mem, err := autocontext.New(cfg.AutocontextConfig(), client)
		if err != nil {
			return agui.ResolvedAgent{}, fmt.Errorf("new memory: %w", err)
		}
		hasMemory := false
		if state, err := store.Load(ctx, agentID, threadID); err == nil {
			for _, m := range state.Messages {
				mem.AddMessage(m)
			}
			hasMemory = len(state.Messages) > 0
		}
		loop := agent.New(client, mem, tool.NewRegistry())
		return agui.ResolvedAgent{Loop: loop, Opts: agent.Options{MaxIters: cfg.Agent.MaxIters}, HasServerMemory: hasMemory}, nil
	})

	server := agui.NewServer(resolver, cfg.AGUIAdapterConfig())

	addr := envOr("AGENTCORE_ADDR", ":8080")
	r := gin.Default()
	server.Register(r)

	log.Printf("starting agentcore-demo on %s", addr)
	return r.Run(addr)
}

func envOr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
