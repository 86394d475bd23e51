// Package autocontext implements the Auto-Context Memory engine (C3):
// a working-set compaction layer over the short-term memory log (C2) that
// keeps the model's context within a token budget via a fixed-priority set
// of compression strategies, with offload/reload semantics preserving
// access to the full original history (spec.md §4.2).
package autocontext

import (
	"context"
	"sync"
	"time"

	"github.com/agentcore/agentcore/agenterr"
	"github.com/agentcore/agentcore/message"
	"github.com/agentcore/agentcore/modelclient"
	"github.com/agentcore/agentcore/plan"
	"github.com/agentcore/agentcore/stm"
)

// Option configures a Memory at construction time.
type Option func(*Memory)

// WithTokenCounter overrides the default HeuristicCounter.
func WithTokenCounter(c TokenCounter) Option {
	return func(m *Memory) { m.counter = c }
}

// WithNotebook attaches a plan.Notebook so compaction prompts can inline the
// current plan as a hint (spec.md §4.2 "Plan awareness").
func WithNotebook(n *plan.Notebook) Option {
	return func(m *Memory) { m.notebook = n }
}

// Memory is the Auto-Context Memory engine. It owns a working log (mutated
// by compaction), an append-only original log, and an offload table. Memory
// is not internally synchronized beyond its own mutex: a single Memory
// instance is intended for use by one ReAct run at a time (spec.md §5).
type Memory struct {
	mu sync.Mutex

	cfg        Config
	working    *stm.Log
	original   *stm.Log
	offloads   *OffloadTable
	events     eventLog
	counter    TokenCounter
	summarizer *summarizer
	notebook   *plan.Notebook
}

// New constructs a Memory backed by client for summarization calls. Returns
// a KindConfig error if cfg or its prompt templates are invalid.
func New(cfg Config, client modelclient.Client, opts ...Option) (*Memory, error) {
	cfg = cfg.withDefaults()
	if cfg.TokenRatio <= 0 || cfg.TokenRatio > 1 {
		return nil, agenterr.Errorf(agenterr.KindConfig, "autocontext: tokenRatio must be in (0,1], got %v", cfg.TokenRatio)
	}
	if cfg.MaxToken <= 0 {
		return nil, agenterr.Errorf(agenterr.KindConfig, "autocontext: maxToken must be positive, got %d", cfg.MaxToken)
	}
	s, err := newSummarizer(client, cfg.CustomPrompts)
	if err != nil {
		return nil, err
	}
	m := &Memory{
		cfg:        cfg,
		working:    stm.New(),
		original:   stm.New(),
		offloads:   newOffloadTable(),
		counter:    HeuristicCounter{},
		summarizer: s,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// AddMessage appends m to both the working set and the append-only original
// log. Compaction never runs on write, only lazily on read (spec.md §4.2).
func (mem *Memory) AddMessage(m message.Message) {
	mem.mu.Lock()
	defer mem.mu.Unlock()
	mem.working.Append(m)
	mem.original.Append(m)
}

// GetMessages returns the current working set, running compaction first if
// the working set exceeds its configured thresholds. Summarization
// failures are recorded as CompressionEvents and otherwise swallowed per
// spec.md §4.2 "Failure semantics" — only context cancellation propagates.
func (mem *Memory) GetMessages(ctx context.Context) ([]message.Message, error) {
	mem.mu.Lock()
	defer mem.mu.Unlock()
	if err := mem.compress(ctx); err != nil {
		return mem.working.Get(), err
	}
	return mem.working.Get(), nil
}

// Original returns a copy of the append-only original log, independent of
// any compaction applied to the working set.
func (mem *Memory) Original() []message.Message {
	mem.mu.Lock()
	defer mem.mu.Unlock()
	return mem.original.Get()
}

// Events returns the CompressionEvent audit trail recorded so far.
func (mem *Memory) Events() []CompressionEvent {
	mem.mu.Lock()
	defer mem.mu.Unlock()
	return mem.events.Events()
}

// Reload returns the messages offloaded under handle. An unknown or empty
// handle yields a single tool-style error message rather than an error
// return, per spec.md §4.2 "Offload / reload contract".
func (mem *Memory) Reload(handle string) []message.Message {
	mem.mu.Lock()
	defer mem.mu.Unlock()
	msgs, ok := mem.offloads.Reload(handle)
	if !ok {
		return []message.Message{reloadErrorMessage(handle)}
	}
	return msgs
}

// Clear removes handle from the offload table.
func (mem *Memory) Clear(handle string) {
	mem.mu.Lock()
	defer mem.mu.Unlock()
	mem.offloads.Clear(handle)
}

// compress repeatedly applies the fixed-priority strategy list while the
// working set exceeds both msgThreshold and tokenRatio*maxToken, stopping
// as soon as a pass applies no strategy (spec.md §4.2).
func (mem *Memory) compress(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return agenterr.Wrap(agenterr.KindCancellation, "autocontext: compaction canceled", err)
		}
		msgs := mem.working.Get()
		if len(msgs) <= mem.cfg.MsgThreshold {
			return nil
		}
		tokens := mem.counter.CountMessages(msgs)
		threshold := int(mem.cfg.TokenRatio * float64(mem.cfg.MaxToken))
		if tokens <= threshold {
			return nil
		}

		applied := false
		for _, strat := range strategies() {
			if strat(ctx, mem, msgs) {
				applied = true
				break
			}
		}
		if !applied {
			return nil
		}
	}
}

// recordFailure logs a CompressionEvent marking a skipped strategy, per the
// "Failure semantics" in spec.md §4.2: the working set is left unchanged,
// but the attempt is still recorded.
func (mem *Memory) recordFailure(kind EventKind, err error) {
	mem.events.record(CompressionEvent{
		Kind:      kind,
		Timestamp: time.Now(),
		Metadata:  map[string]any{"error": err.Error()},
	})
}

// planHint renders the attached plan notebook, if any, for inlining into a
// compaction prompt (spec.md §4.2 "Plan awareness"). Returns "" if no
// notebook is attached or no plan is current.
func (mem *Memory) planHint() string {
	if mem.notebook == nil {
		return ""
	}
	return mem.notebook.Render()
}
