package autocontext

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agentcore/agentcore/message"
)

// TestTokenCountMonotonicityProperty verifies spec.md §4.2/§8: appending
// text to a message's content never decreases its estimated token count.
func TestTokenCountMonotonicityProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	counter := HeuristicCounter{}

	properties.Property("appending text never decreases token count", prop.ForAll(
		func(base, extra string) bool {
			before := message.NewText(message.RoleUser, base)
			after := message.NewText(message.RoleUser, base+extra)
			return counter.CountMessage(after) >= counter.CountMessage(before)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("empty message costs at least the fixed overhead", prop.ForAll(
		func(role message.Role) bool {
			m := message.New("", role, nil)
			return counter.CountMessage(m) >= messageOverhead
		},
		gen.OneConstOf(message.RoleSystem, message.RoleUser, message.RoleAssistant, message.RoleTool),
	))

	properties.Property("CountMessages is additive over a slice of equal messages", prop.ForAll(
		func(text string, n int) bool {
			if n < 0 || n > 50 {
				return true
			}
			msgs := make([]message.Message, n)
			for i := range msgs {
				msgs[i] = message.NewText(message.RoleUser, text)
			}
			return counter.CountMessages(msgs) == n*counter.CountMessage(message.NewText(message.RoleUser, text))
		},
		gen.AlphaString(),
		gen.IntRange(0, 50),
	))

	properties.TestingRun(t)
}

func TestCalculateMessagesCharCountEmpty(t *testing.T) {
	if got := calculateMessagesCharCount(nil); got != 0 {
		t.Fatalf("calculateMessagesCharCount(nil) = %d, want 0", got)
	}
}

func TestCalculateMessageCharCountEmptyText(t *testing.T) {
	m := message.NewText(message.RoleUser, "")
	if got := calculateMessageCharCount(m); got != 0 {
		t.Fatalf("calculateMessageCharCount(empty text) = %d, want 0", got)
	}
}
