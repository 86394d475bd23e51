// Package agui adapts C4's internal agent.Event stream into the AG-UI
// wire protocol: a strictly lifecycle-ordered sequence of RUN_STARTED,
// TEXT_MESSAGE_*, TOOL_CALL_*, REASONING_MESSAGE_*, STATE_* and RUN_FINISHED
// events suitable for a streaming HTTP/SSE front end (spec.md §4.5).
package agui

import (
	"context"
	"encoding/json"

	"github.com/agentcore/agentcore/agent"
	"github.com/agentcore/agentcore/message"
	"github.com/agentcore/agentcore/telemetry"
)

// Run translates a single agent.Loop invocation into the AG-UI event
// sequence. The returned channel is closed after exactly one RunFinished
// event, regardless of how the run ended (spec.md §4.5 "Lifecycle
// invariants").
func Run(ctx context.Context, resolved ResolvedAgent, req RunAgentInput, cfg Config) <-chan Event {
	return RunWithTelemetry(ctx, resolved, req, cfg, telemetry.NoopLogger{})
}

// RunWithTelemetry is Run with an explicit logger, used by the HTTP
// transport to surface tool-merge reconciliation and error diagnostics.
func RunWithTelemetry(ctx context.Context, resolved ResolvedAgent, req RunAgentInput, cfg Config, logger telemetry.Logger) <-chan Event {
	cfg = cfg.withDefaults()
	out := make(chan Event)

	if len(req.Tools) > 0 {
		merged := mergeToolDefinitions(resolved.Loop.ToolDefinitions(), req.Tools, cfg.ToolMergeMode)
		logger.Debug(ctx, "agui: reconciled frontend tool declarations", "mode", string(cfg.ToolMergeMode), "count", len(merged))
		// Thread the reconciled list into the model call itself: without
		// this, FRONTEND_ONLY/MERGE_FRONTEND_PRIORITY would reconcile tool
		// definitions only for logging, never actually telling the model
		// they exist.
		resolved.Opts.ExtraTools = toModelToolDefinitions(merged)
	}

	go func() {
		a := &adapterRun{
			cfg:       cfg,
			threadID:  req.ThreadID,
			runID:     req.RunID,
			out:       out,
			seenMsg:   map[string]bool{},
			seenTool:  map[string]bool{},
			endedTool: map[string]bool{},
		}
		a.run(ctx, resolved, req)
	}()
	return out
}

type adapterRun struct {
	cfg      Config
	threadID string
	runID    string
	out      chan<- Event

	seenMsg   map[string]bool
	seenTool  map[string]bool
	endedTool map[string]bool

	openTextID string
	prevState  map[string]any
}

func (a *adapterRun) run(ctx context.Context, resolved ResolvedAgent, req RunAgentInput) {
	defer close(a.out)

	// RUN_FINISHED is sent against the caller's context, not the run-timeout
	// context below, so a run that hits RunTimeout still ends with it.
	finishCtx := ctx
	if a.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.RunTimeout)
		defer cancel()
	}

	truncated := false
	defer func() {
		a.emit(finishCtx, Event{Type: EventRunFinished, ThreadID: a.threadID, RunID: a.runID, Truncated: truncated})
	}()

	a.emit(ctx, Event{Type: EventRunStarted, ThreadID: a.threadID, RunID: a.runID})

	userMsg, ok := latestUserMessage(req)
	if !ok {
		return
	}

	a.prevState = req.State
	if a.cfg.EmitStateEvents && a.prevState != nil {
		a.emit(ctx, Event{Type: EventStateSnapshot, Snapshot: a.prevState})
	}

	for ev := range resolved.Loop.Stream(ctx, userMsg, resolved.Opts) {
		if ctx.Err() != nil {
			return
		}
		switch {
		case ev.Err != nil:
			a.emit(ctx, Event{Type: EventRaw, RawError: ev.Err.Error()})
			return
		case ev.Kind == agent.EventReasoning:
			a.handleReasoning(ctx, ev)
		case ev.Kind == agent.EventToolResult:
			a.handleToolResult(ctx, ev)
		case ev.Kind == agent.EventFinish:
			a.closeOpenText(ctx)
			truncated = ev.Truncated
		}
	}
}

// latestUserMessage extracts the last user-role WireMessage and converts it
// to a message.Message. Multi-turn history hydration for fresh threads is
// the session store's responsibility (load into autocontext.Memory before
// resolving the Loop); when the resolver reports HasServerMemory the same
// rule applies, avoiding double-applying history either way (spec.md §4.5
// "Agent resolution").
func latestUserMessage(req RunAgentInput) (message.Message, bool) {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		m := req.Messages[i]
		if m.Role == "user" {
			return message.NewText(message.RoleUser, m.Content), true
		}
	}
	return message.Message{}, false
}

func (a *adapterRun) handleReasoning(ctx context.Context, ev agent.Event) {
	msg := ev.Message
	for _, b := range msg.Content() {
		switch blk := b.(type) {
		case message.TextBlock:
			a.ensureTextOpen(ctx, msg.ID())
			a.emit(ctx, Event{Type: EventTextMessageContent, MessageID: msg.ID(), TextDelta: blk.Text})
		case message.ThinkingBlock:
			if !a.cfg.EnableReasoning {
				continue
			}
			if !a.seenMsg["reasoning:"+msg.ID()] {
				a.seenMsg["reasoning:"+msg.ID()] = true
				a.emit(ctx, Event{Type: EventReasoningMessageStart, MessageID: msg.ID()})
			}
			a.emit(ctx, Event{Type: EventReasoningMessageContent, MessageID: msg.ID(), TextDelta: blk.Thinking})
		case message.ToolUseBlock:
			a.closeOpenText(ctx)
			if !a.seenTool[blk.ID] {
				a.seenTool[blk.ID] = true
				a.emit(ctx, Event{Type: EventToolCallStart, ToolCallID: blk.ID, ToolCallName: blk.Name})
			}
			if a.cfg.EmitToolCallArgs {
				args := blk.Content
				if args == "" {
					if encoded, err := json.Marshal(blk.Input); err == nil {
						args = string(encoded)
					}
				}
				a.emit(ctx, Event{Type: EventToolCallArgs, ToolCallID: blk.ID, TextDelta: args})
			}
		}
	}
	if ev.Last {
		a.closeOpenText(ctx)
		if a.cfg.EnableReasoning && a.seenMsg["reasoning:"+msg.ID()] {
			a.emit(ctx, Event{Type: EventReasoningMessageEnd, MessageID: msg.ID()})
		}
		// Tool calls close when their result arrives (handleToolResult),
		// not here: the closing REASONING event carries no content to
		// walk, and every started tool call is always followed by exactly
		// one EventToolResult.
	}
}

func (a *adapterRun) handleToolResult(ctx context.Context, ev agent.Event) {
	blocks := ev.Message.Content()
	if len(blocks) == 0 {
		return
	}
	tr, ok := blocks[0].(message.ToolResultBlock)
	if !ok {
		return
	}
	if !a.seenTool[tr.ID] {
		// Back-fill: a TOOL_RESULT arrived for an id never announced by a
		// prior ToolUseBlock (spec.md §4.5, S5).
		a.seenTool[tr.ID] = true
		a.emit(ctx, Event{Type: EventToolCallStart, ToolCallID: tr.ID, ToolCallName: tr.Name})
	}
	a.endToolCall(ctx, tr.ID)
	a.emit(ctx, Event{Type: EventToolCallResult, ToolCallID: tr.ID, ToolContent: renderToolResult(tr)})

	if a.cfg.EmitStateEvents {
		if next, ok := ev.Message.Metadata()["state"].(map[string]any); ok {
			a.applyState(ctx, next)
		}
	}
}

// applyState emits a STATE_DELTA for the transition from the last known
// state to next, at the tool-result boundary (spec.md §4.5 "State events").
// A delta is only emitted if the two maps actually differ.
func (a *adapterRun) applyState(ctx context.Context, next map[string]any) {
	ops := diffState(a.prevState, next)
	if len(ops) == 0 {
		return
	}
	a.prevState = next
	a.emit(ctx, Event{Type: EventStateDelta, Ops: ops})
}

func (a *adapterRun) endToolCall(ctx context.Context, id string) {
	if a.endedTool[id] {
		return
	}
	a.endedTool[id] = true
	a.emit(ctx, Event{Type: EventToolCallEnd, ToolCallID: id})
}

func (a *adapterRun) ensureTextOpen(ctx context.Context, id string) {
	if a.openTextID == id {
		return
	}
	a.closeOpenText(ctx)
	a.openTextID = id
	if !a.seenMsg[id] {
		a.seenMsg[id] = true
		a.emit(ctx, Event{Type: EventTextMessageStart, MessageID: id, Role: string(message.RoleAssistant)})
	}
}

func (a *adapterRun) closeOpenText(ctx context.Context) {
	if a.openTextID == "" {
		return
	}
	id := a.openTextID
	a.openTextID = ""
	a.emit(ctx, Event{Type: EventTextMessageEnd, MessageID: id})
}

func renderToolResult(tr message.ToolResultBlock) string {
	var out string
	for _, b := range tr.Output {
		if t, ok := b.(message.TextBlock); ok {
			out += t.Text
		}
	}
	return out
}

func (a *adapterRun) emit(ctx context.Context, ev Event) {
	ev.ThreadID = a.threadID
	ev.RunID = a.runID
	select {
	case a.out <- ev:
	case <-ctx.Done():
	}
}
