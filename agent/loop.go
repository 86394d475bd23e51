// Package agent implements the ReAct Agent Loop (C4, spec.md §4.3): given a
// user message and a toolkit, it iterates reasoning, tool execution, and
// observation until the model produces a final answer or maxIters is
// reached, emitting a lazy, cancellable stream of Events.
package agent

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/agentcore/agentcore/agenterr"
	"github.com/agentcore/agentcore/autocontext"
	"github.com/agentcore/agentcore/ltm"
	"github.com/agentcore/agentcore/message"
	"github.com/agentcore/agentcore/modelclient"
	"github.com/agentcore/agentcore/plan"
	"github.com/agentcore/agentcore/telemetry"
	"github.com/agentcore/agentcore/tool"
)

// Loop is the ReAct agent runtime. A Loop is reusable across calls but a
// single Stream/Call invocation owns its own event channel and must run to
// completion or be canceled via ctx before starting another.
type Loop struct {
	model  modelclient.Client
	memory *autocontext.Memory
	tools  *tool.Registry

	notebook *plan.Notebook

	logger telemetry.Logger
	tracer telemetry.Tracer
}

// New constructs a Loop. tools may be nil, in which case an empty registry
// is created; LoopOptions (e.g. WithNotebook) can add to it afterward.
func New(model modelclient.Client, memory *autocontext.Memory, tools *tool.Registry, opts ...LoopOption) *Loop {
	if tools == nil {
		tools = tool.NewRegistry()
	}
	l := &Loop{
		model:  model,
		memory: memory,
		tools:  tools,
		logger: telemetry.NoopLogger{},
		tracer: telemetry.NoopTracer{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithTelemetry overrides the Loop's logger and tracer.
func WithTelemetry(logger telemetry.Logger, tracer telemetry.Tracer) LoopOption {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
		if tracer != nil {
			l.tracer = tracer
		}
	}
}

// Call runs Stream to completion and returns the last assistant text
// message (spec.md §4.3 "call(userMsg) → Promise<Message>").
func (l *Loop) Call(ctx context.Context, userMsg message.Message, opts Options) (message.Message, error) {
	var last message.Message
	for ev := range l.Stream(ctx, userMsg, opts) {
		if ev.Err != nil {
			return message.Message{}, ev.Err
		}
		if ev.Kind == EventFinish || (ev.Kind == EventReasoning && ev.Last) {
			last = ev.Message
		}
	}
	return last, nil
}

// Stream runs the ReAct iteration algorithm and returns a finite,
// not-restartable, cancellable sequence of Events (spec.md §4.3). Canceling
// ctx stops the in-flight model call or tool invocation at the next
// cooperative checkpoint; memory writes already completed are not rolled
// back.
func (l *Loop) Stream(ctx context.Context, userMsg message.Message, opts Options) <-chan Event {
	out := make(chan Event)
	go l.run(ctx, userMsg, opts, out)
	return out
}

func (l *Loop) run(ctx context.Context, userMsg message.Message, opts Options, out chan<- Event) {
	defer close(out)

	ctx, span := l.tracer.Start(ctx, "agent.run")
	defer span.End()

	l.memory.AddMessage(userMsg)

	maxIters := opts.maxIters()
	for iter := 0; ; iter++ {
		if ctx.Err() != nil {
			emit(ctx, out, Event{Err: agenterr.Wrap(agenterr.KindCancellation, "agent: run canceled", ctx.Err())})
			return
		}

		messages, err := l.memory.GetMessages(ctx)
		if err != nil && agenterr.Terminal(err) {
			emit(ctx, out, Event{Err: err})
			return
		}

		messages = l.applyLongTermMemory(ctx, messages, userMsg, opts)
		messages = l.applyGenericRAG(ctx, messages, userMsg, opts)

		assembled, err := l.step(ctx, messages, opts, out)
		if err != nil {
			emit(ctx, out, Event{Err: agenterr.Wrap(agenterr.KindModel, "agent: model call failed", err)})
			return
		}
		l.memory.AddMessage(assembled)

		toolUses := assembled.ToolUseBlocks()
		if len(toolUses) == 0 {
			emit(ctx, out, Event{Kind: EventFinish, Message: assembled, Last: true})
			return
		}

		// Tool calls within a single assistant turn are dispatched
		// sequentially by default: this is the spec's Open Question
		// resolution favoring deterministic ordering of results over
		// speculative parallelism (spec.md §9, §4.3 "MAY proceed in
		// parallel provided their results are emitted in the same order").
		for _, tu := range toolUses {
			if ctx.Err() != nil {
				emit(ctx, out, Event{Err: agenterr.Wrap(agenterr.KindCancellation, "agent: run canceled", ctx.Err())})
				return
			}
			result := l.invokeTool(ctx, tu)
			l.memory.AddMessage(result)
			emit(ctx, out, Event{Kind: EventToolResult, Message: result, Last: true})
		}

		if iter+1 >= maxIters {
			emit(ctx, out, Event{Kind: EventFinish, Message: assembled, Last: true, Truncated: true})
			return
		}
	}
}

// step performs one model call, forwarding incremental REASONING events,
// and returns the fully assembled assistant message for the turn.
func (l *Loop) step(ctx context.Context, messages []message.Message, opts Options, out chan<- Event) (message.Message, error) {
	stream, err := l.model.Stream(ctx, messages, l.toolDefinitions(opts), opts.Model)
	if err != nil {
		return message.Message{}, err
	}
	defer stream.Close()

	turnID := ""
	var blocks []message.Block
	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return message.Message{}, err
		}
		if turnID == "" {
			turnID = resp.ID
			if turnID == "" {
				turnID = uuid.NewString()
			}
		}
		blocks = append(blocks, resp.Content...)
		emit(ctx, out, Event{Kind: EventReasoning, Message: message.New(turnID, message.RoleAssistant, resp.Content)})
	}
	if turnID == "" {
		turnID = uuid.NewString()
	}
	final := message.New(turnID, message.RoleAssistant, blocks)
	// The closing event carries no new blocks: every block in the turn was
	// already streamed via its own chunk event above. Last:true signals
	// only end-of-turn framing (e.g. closing an open text/reasoning
	// message), not additional content — consumers must not re-walk this
	// event's content as if it were new.
	emit(ctx, out, Event{Kind: EventReasoning, Message: message.New(turnID, message.RoleAssistant, nil), Last: true})
	return final, nil
}

func (l *Loop) invokeTool(ctx context.Context, tu message.ToolUseBlock) message.Message {
	t, ok := l.tools.Get(tu.Name)
	if !ok {
		return message.New("", message.RoleTool, []message.Block{
			message.ToolResultBlock{
				ID:      tu.ID,
				Name:    tu.Name,
				IsError: true,
				Output:  []message.Block{message.TextBlock{Text: "unknown tool: " + tu.Name}},
			},
		})
	}
	return t.Invoke(ctx, tu.ID, tu.Input)
}

// ToolDefinitions returns the loop's currently registered tool definitions,
// used by consumers (e.g. the AG-UI adapter) that need to reconcile them
// against externally declared tools.
func (l *Loop) ToolDefinitions() []tool.Definition {
	return l.tools.Definitions()
}

// toolDefinitions returns the tool definitions to send to the model for
// this call: opts.ExtraTools verbatim when set (the AG-UI adapter's
// reconciled merge), otherwise the loop's own registry.
func (l *Loop) toolDefinitions(opts Options) []modelclient.ToolDefinition {
	if opts.ExtraTools != nil {
		return opts.ExtraTools
	}
	defs := l.tools.Definitions()
	out := make([]modelclient.ToolDefinition, len(defs))
	for i, d := range defs {
		out[i] = modelclient.ToolDefinition{Name: d.Name, Description: d.Description, InputSchema: d.InputSchema}
	}
	return out
}

func (l *Loop) applyLongTermMemory(ctx context.Context, messages []message.Message, userMsg message.Message, opts Options) []message.Message {
	if opts.LongTermMemory == nil || opts.LongTermMemoryMode != ltm.ModeStaticControl {
		return messages
	}
	retrieved, err := opts.LongTermMemory.Retrieve(ctx, userMsg.Text())
	if err != nil || len(retrieved) == 0 {
		return messages
	}
	return append(append([]message.Message{}, retrieved...), messages...)
}

func (l *Loop) applyGenericRAG(ctx context.Context, messages []message.Message, userMsg message.Message, opts Options) []message.Message {
	if opts.RAGMode != RAGGeneric || opts.Knowledge == nil {
		return messages
	}
	ctxMsg, ok := genericKnowledgeContext(ctx, opts.Knowledge, userMsg.Text(), opts.Retrieve)
	if !ok {
		return messages
	}
	return append([]message.Message{ctxMsg}, messages...)
}

func emit(ctx context.Context, out chan<- Event, ev Event) {
	select {
	case out <- ev:
	case <-ctx.Done():
	}
}
