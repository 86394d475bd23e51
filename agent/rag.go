package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentcore/agentcore/knowledge"
	"github.com/agentcore/agentcore/message"
	"github.com/agentcore/agentcore/tool"
)

var retrieveKnowledgeSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"query": map[string]any{"type": "string"},
	},
	"required": []any{"query"},
}

// registerAgenticRetrieval installs retrieve_knowledge as an ordinary tool,
// so the AGENTIC RAG mode can let the model decide when to retrieve (spec.md
// §4.3 "AGENTIC — register retrieve_knowledge as a tool").
func registerAgenticRetrieval(r *tool.Registry, base knowledge.Base, cfg knowledge.RetrieveConfig) {
	invoke := func(ctx context.Context, input map[string]any) ([]message.Block, error) {
		query, _ := input["query"].(string)
		results, err := base.Retrieve(ctx, query, cfg)
		if err != nil {
			return nil, err
		}
		return []message.Block{message.TextBlock{Text: renderResults(results)}}, nil
	}
	if t, err := tool.New("retrieve_knowledge", "Retrieve relevant documents from the knowledge base.", retrieveKnowledgeSchema, invoke); err == nil {
		r.Register(t)
	}
}

// genericKnowledgeContext performs a GENERIC-mode retrieval and builds the
// system-role context message prepended before every model call (spec.md
// §4.3 "GENERIC"). The message is tagged Meta["kind"]="knowledge_context"
// (SPEC_FULL.md [ADD 4.3.2]); it is passed to the model only and is never
// added to memory, so the auto-context compactor does not see it.
func genericKnowledgeContext(ctx context.Context, base knowledge.Base, query string, cfg knowledge.RetrieveConfig) (message.Message, bool) {
	results, err := base.Retrieve(ctx, query, cfg)
	if err != nil || len(results) == 0 {
		return message.Message{}, false
	}
	m := message.NewText(message.RoleSystem, renderResults(results)).WithMetadata(map[string]any{"kind": "knowledge_context"})
	return m, true
}

func renderResults(results []knowledge.Result) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.Document.Text)
	}
	return b.String()
}
