package agent

import (
	"context"
	"strings"

	"github.com/agentcore/agentcore/ltm"
	"github.com/agentcore/agentcore/message"
	"github.com/agentcore/agentcore/tool"
)

var ltmRecordSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"content": map[string]any{"type": "string"},
	},
	"required": []any{"content"},
}

var ltmRetrieveSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"query": map[string]any{"type": "string"},
	},
	"required": []any{"query"},
}

// registerAgentControlLongTermMemory installs record/retrieve as ordinary
// tools against store, so AGENT_CONTROL mode can let the model decide when
// to persist and recall long-term memory itself (spec.md §6 "AGENT_CONTROL —
// exposed as tools"), mirroring registerAgenticRetrieval's RAG wiring.
func registerAgentControlLongTermMemory(r *tool.Registry, store ltm.Store) {
	record := func(ctx context.Context, input map[string]any) ([]message.Block, error) {
		content, _ := input["content"].(string)
		if err := store.Record(ctx, []message.Message{message.NewText(message.RoleAssistant, content)}); err != nil {
			return nil, err
		}
		return []message.Block{message.TextBlock{Text: "recorded"}}, nil
	}
	if t, err := tool.New("record", "Persist a fact or observation to long-term memory for later recall.", ltmRecordSchema, record); err == nil {
		r.Register(t)
	}

	retrieve := func(ctx context.Context, input map[string]any) ([]message.Block, error) {
		query, _ := input["query"].(string)
		results, err := store.Retrieve(ctx, query)
		if err != nil {
			return nil, err
		}
		return []message.Block{message.TextBlock{Text: renderLongTermMemory(results)}}, nil
	}
	if t, err := tool.New("retrieve", "Recall facts or observations previously recorded to long-term memory.", ltmRetrieveSchema, retrieve); err == nil {
		r.Register(t)
	}
}

func renderLongTermMemory(results []message.Message) string {
	var texts []string
	for _, m := range results {
		texts = append(texts, m.Text())
	}
	return strings.Join(texts, "\n")
}
