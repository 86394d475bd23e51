package autocontext

import (
	"bytes"
	"context"
	"io"
	"strings"
	"text/template"

	"github.com/agentcore/agentcore/agenterr"
	"github.com/agentcore/agentcore/message"
	"github.com/agentcore/agentcore/modelclient"
)

const defaultToolInvocationRunPrompt = `The messages below are a run of tool calls and their results from an
earlier part of this conversation. Summarize them into a short paragraph
that preserves which tools were called, with what arguments, and what each
returned. Keep exact identifiers, file paths, and error strings verbatim.
{{if .PlanHint}}
Current plan:
{{.PlanHint}}
{{end}}
Messages:
{{range .Messages}}[{{.Role}}] {{.Text}}
{{end}}`

const defaultPreviousRoundPairPrompt = `Summarize the following user request and the assistant's reply into one
concise sentence capturing the request and its outcome.
{{if .PlanHint}}
Current plan:
{{.PlanHint}}
{{end}}
{{range .Messages}}[{{.Role}}] {{.Text}}
{{end}}`

const defaultCurrentRoundLargeMessagePrompt = `The following message is unusually large. Produce a short summary that
preserves its key facts and any identifiers a later turn might need to
reference.
{{range .Messages}}{{.Text}}
{{end}}`

const defaultCurrentRoundCollapsePrompt = `Collapse the following tool interactions from the current round into one
short summary that preserves what was attempted and what the tools
returned.
{{range .Messages}}[{{.Role}}] {{.Text}}
{{end}}`

type promptData struct {
	Messages []message.Message
	PlanHint string
}

// summarizer renders one of the four compaction prompts and dispatches it
// through modelclient.Client, the same contract the ReAct loop (C4) uses
// (spec.md §4.2 "Summarizer"). Rendering is done with text/template,
// mirroring the teacher's use of text/template for hint rendering in
// runtime/agent/runtime/runtime.go.
type summarizer struct {
	client    modelclient.Client
	templates map[string]*template.Template
}

func newSummarizer(client modelclient.Client, prompts Prompts) (*summarizer, error) {
	raw := map[string]string{
		"tool_invocation_run":    firstNonEmpty(prompts.ToolInvocationRun, defaultToolInvocationRunPrompt),
		"previous_round_pair":    firstNonEmpty(prompts.PreviousRoundPair, defaultPreviousRoundPairPrompt),
		"current_round_large":    firstNonEmpty(prompts.CurrentRoundLargeMessage, defaultCurrentRoundLargeMessagePrompt),
		"current_round_collapse": firstNonEmpty(prompts.CurrentRoundCollapse, defaultCurrentRoundCollapsePrompt),
	}
	templates := make(map[string]*template.Template, len(raw))
	for name, body := range raw {
		tmpl, err := template.New(name).Parse(body)
		if err != nil {
			return nil, agenterr.Wrap(agenterr.KindConfig, "autocontext: parse prompt "+name, err)
		}
		templates[name] = tmpl
	}
	return &summarizer{client: client, templates: templates}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// summarize renders promptName against msgs and planHint, sends it to the
// model as a single user turn, and returns the concatenated text of the
// model's reply. Failures are always wrapped as KindMemory per the
// "Failure semantics" in spec.md §4.2: summarization failure skips the
// strategy rather than terminating the run.
func (s *summarizer) summarize(ctx context.Context, promptName string, msgs []message.Message, planHint string) (string, error) {
	tmpl, ok := s.templates[promptName]
	if !ok {
		return "", agenterr.Errorf(agenterr.KindMemory, "autocontext: unknown prompt %q", promptName)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, promptData{Messages: msgs, PlanHint: planHint}); err != nil {
		return "", agenterr.Wrap(agenterr.KindMemory, "autocontext: render prompt", err)
	}

	stream, err := s.client.Stream(ctx, []message.Message{message.NewText(message.RoleUser, buf.String())}, nil, modelclient.Options{})
	if err != nil {
		return "", agenterr.Wrap(agenterr.KindMemory, "autocontext: summarization call failed", err)
	}
	defer stream.Close()

	var out strings.Builder
	for {
		resp, err := stream.Recv()
		if err != nil {
			if err == io.EOF {
				break
			}
			return "", agenterr.Wrap(agenterr.KindMemory, "autocontext: summarization stream failed", err)
		}
		for _, b := range resp.Content {
			if t, ok := b.(message.TextBlock); ok {
				out.WriteString(t.Text)
			}
		}
	}
	if out.Len() == 0 {
		return "", agenterr.New(agenterr.KindMemory, "autocontext: summarizer produced empty output")
	}
	return out.String(), nil
}
