package agui

import (
	"context"

	"github.com/agentcore/agentcore/agent"
)

// ResolvedAgent binds a resolved agent.Loop and its call options to a run,
// plus whether the thread already carries server-side memory (spec.md §4.5
// "Agent resolution").
type ResolvedAgent struct {
	Loop *agent.Loop
	Opts agent.Options
	// HasServerMemory reports whether the thread already carries
	// server-side memory. The adapter forwards only the latest user message
	// from the request whether this is true or false; earlier request
	// messages are not forwarded to the agent in either case.
	HasServerMemory bool
}

// Resolver maps a resolved agent id and thread id to a ResolvedAgent.
type Resolver interface {
	Resolve(ctx context.Context, agentID, threadID string) (ResolvedAgent, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, agentID, threadID string) (ResolvedAgent, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context, agentID, threadID string) (ResolvedAgent, error) {
	return f(ctx, agentID, threadID)
}

// RequestAgentID carries the candidate agent-id sources in priority order
// (spec.md §4.5 "Agent id resolution priority: URL path > HTTP header >
// request forwardedProps.agentId > config.defaultAgentId > the literal
// default").
type RequestAgentID struct {
	PathParam      string
	HeaderValue    string
	ForwardedProps map[string]any
}

// Resolve applies the documented priority order and falls back to
// cfg.DefaultAgentID (or "default" if also unset).
func (r RequestAgentID) Resolve(cfg Config) string {
	if r.PathParam != "" {
		return r.PathParam
	}
	if r.HeaderValue != "" {
		return r.HeaderValue
	}
	if r.ForwardedProps != nil {
		if v, ok := r.ForwardedProps["agentId"].(string); ok && v != "" {
			return v
		}
	}
	if cfg.DefaultAgentID != "" {
		return cfg.DefaultAgentID
	}
	return "default"
}
