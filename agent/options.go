package agent

import (
	"github.com/agentcore/agentcore/knowledge"
	"github.com/agentcore/agentcore/ltm"
	"github.com/agentcore/agentcore/modelclient"
	"github.com/agentcore/agentcore/plan"
)

// RAGMode selects how the loop integrates a knowledge.Base (spec.md §4.3
// "RAG integration").
type RAGMode string

const (
	// RAGNone disables RAG integration.
	RAGNone RAGMode = ""
	// RAGGeneric issues a retrieval before every model call and prepends
	// the results as a system-role context message.
	RAGGeneric RAGMode = "generic"
	// RAGAgentic exposes retrieval as a tool the model calls at will.
	RAGAgentic RAGMode = "agentic"
)

// defaultMaxIters bounds the loop when Options.MaxIters is unset.
const defaultMaxIters = 10

// Options configures a single Stream/Call invocation.
type Options struct {
	// MaxIters bounds the number of model-call/tool-execution rounds
	// (spec.md §4.3 step 7). Zero selects defaultMaxIters.
	MaxIters int
	// Model carries per-call model options (temperature, tool choice, …).
	Model modelclient.Options
	// RAGMode selects GENERIC, AGENTIC, or no RAG integration.
	RAGMode RAGMode
	// Knowledge is the knowledge base queried before every model call when
	// RAGMode is RAGGeneric; other modes do not read it.
	Knowledge knowledge.Base
	// Retrieve bounds the GENERIC retrieval call; other modes do not read it.
	Retrieve knowledge.RetrieveConfig
	// LongTermMemory is the optional bound long-term memory store.
	LongTermMemory ltm.Store
	// LongTermMemoryMode selects STATIC_CONTROL or AGENT_CONTROL dispatch.
	LongTermMemoryMode ltm.Mode
	// ExtraTools, when non-nil, is sent to the model in place of the tool
	// definitions otherwise derived from the loop's own registry. The AG-UI
	// adapter sets this to its reconciled frontend/agent tool merge (spec.md
	// §4.5 "tool merge reconciliation"), so a ToolMergeMode other than
	// AGENT_ONLY actually changes what the model is told exists.
	ExtraTools []modelclient.ToolDefinition
}

func (o Options) maxIters() int {
	if o.MaxIters <= 0 {
		return defaultMaxIters
	}
	return o.MaxIters
}

// LoopOption configures a Loop at construction time.
type LoopOption func(*Loop)

// WithNotebook attaches a plan.Notebook and registers the built-in plan
// toolkit (plan_create, plan_advance, plan_finish) against it (spec.md
// §4.3 "Plan integration").
func WithNotebook(n *plan.Notebook) LoopOption {
	return func(l *Loop) {
		l.notebook = n
		registerPlanTools(l.tools, n)
	}
}

// WithAgenticRetrieval registers retrieve_knowledge as a callable tool
// against base, for use with RAGMode AGENTIC (spec.md §4.3 "AGENTIC").
func WithAgenticRetrieval(base knowledge.Base, cfg knowledge.RetrieveConfig) LoopOption {
	return func(l *Loop) {
		registerAgenticRetrieval(l.tools, base, cfg)
	}
}

// WithAgentControlLongTermMemory registers record/retrieve as callable tools
// against store, for use with LongTermMemoryMode AGENT_CONTROL (spec.md §6
// "AGENT_CONTROL"). STATIC_CONTROL dispatch does not need this option: the
// loop invokes store.Retrieve directly (see applyLongTermMemory).
func WithAgentControlLongTermMemory(store ltm.Store) LoopOption {
	return func(l *Loop) {
		registerAgentControlLongTermMemory(l.tools, store)
	}
}
