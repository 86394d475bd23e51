// Package redis implements session.Store against Redis, persisting each
// agent session's message log, plan, and offload table as a single JSON
// document under a namespaced key (spec.md §6 "Session store"). Grounded on
// the teacher's registry.Service key-namespacing and TTL conventions
// (registry/service.go's "pulse:stream:%s" key, rdb.Expire usage).
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agentcore/agentcore/agenterr"
	"github.com/agentcore/agentcore/session"
)

// Store persists session.State documents in Redis.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithTTL sets the expiration applied to every saved session key. Zero (the
// default) means sessions never expire.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithKeyPrefix overrides the default "agentcore:session:" key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// NewStore constructs a Store backed by rdb.
func NewStore(rdb *redis.Client, opts ...Option) *Store {
	s := &Store{rdb: rdb, prefix: "agentcore:session:"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// wireState is the JSON-serializable projection of session.State; message
// values implement MarshalJSON/UnmarshalJSON and the plan is a plain struct
// encoded by encoding/json, so this wrapper only needs to name the fields.
type wireState struct {
	AgentID  string                        `json:"agentId"`
	Messages []json.RawMessage             `json:"messages"`
	Plan     json.RawMessage               `json:"plan,omitempty"`
	Offloads map[string][]json.RawMessage  `json:"offloads,omitempty"`
}

// Save implements session.Store.
func (s *Store) Save(ctx context.Context, agent, id string, state session.State) error {
	w, err := encodeState(state)
	if err != nil {
		return agenterr.Wrap(agenterr.KindConfig, "session/redis: encode state", err)
	}
	data, err := json.Marshal(w)
	if err != nil {
		return agenterr.Wrap(agenterr.KindConfig, "session/redis: marshal state", err)
	}
	key := s.key(agent, id)
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return agenterr.Wrap(agenterr.KindConfig, fmt.Sprintf("session/redis: set %q", key), err)
	}
	return nil
}

// Load implements session.Store.
func (s *Store) Load(ctx context.Context, agent, id string) (session.State, error) {
	key := s.key(agent, id)
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return session.State{}, agenterr.Errorf(agenterr.KindConfig, "session/redis: no session for %q", key)
	}
	if err != nil {
		return session.State{}, agenterr.Wrap(agenterr.KindConfig, fmt.Sprintf("session/redis: get %q", key), err)
	}
	var w wireState
	if err := json.Unmarshal(data, &w); err != nil {
		return session.State{}, agenterr.Wrap(agenterr.KindConfig, "session/redis: unmarshal state", err)
	}
	return decodeState(w)
}

func (s *Store) key(agent, id string) string {
	return s.prefix + agent + ":" + id
}
