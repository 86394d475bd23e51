package autocontext

// Prompts overrides the default summarization prompt templates. Any blank
// field falls back to the corresponding default template (spec.md §4.2
// "customPrompts").
type Prompts struct {
	// ToolInvocationRun renders strategy 1 (previous-round tool-invocation
	// compression).
	ToolInvocationRun string
	// PreviousRoundPair renders strategy 4 (previous-round conversation
	// summary) for one user/assistant pair.
	PreviousRoundPair string
	// CurrentRoundLargeMessage renders strategy 5 (current-round
	// large-message summary).
	CurrentRoundLargeMessage string
	// CurrentRoundCollapse renders strategy 6 (current-round messages
	// compression).
	CurrentRoundCollapse string
}

// Config bounds and tunes the compaction engine (spec.md §4.2).
type Config struct {
	// MsgThreshold is the minimum working-set message count to consider
	// compression.
	MsgThreshold int
	// MaxToken is the hard ceiling used to compute the effective budget.
	MaxToken int
	// TokenRatio is the fraction of MaxToken at which compression activates.
	TokenRatio float64
	// LastKeep is the tail window of messages always preserved verbatim.
	LastKeep int
	// MinConsecutiveToolMessages is the minimum run length of consecutive
	// tool-related messages eligible for strategy 1.
	MinConsecutiveToolMessages int
	// LargePayloadThreshold is the character-count threshold above which a
	// single message is a "large payload".
	LargePayloadThreshold int
	// CustomPrompts optionally overrides the default summarization prompts.
	CustomPrompts Prompts
}

// DefaultConfig returns reasonable defaults modeled on the corpus's own
// compaction thresholds (e.g. the forge threshold/tool-call strategies).
func DefaultConfig() Config {
	return Config{
		MsgThreshold:               20,
		MaxToken:                   128_000,
		TokenRatio:                 0.8,
		LastKeep:                   5,
		MinConsecutiveToolMessages: 6,
		LargePayloadThreshold:      4_000,
	}
}

// withDefaults fills zero-valued fields with DefaultConfig values so callers
// may supply a partial Config.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MsgThreshold == 0 {
		c.MsgThreshold = d.MsgThreshold
	}
	if c.MaxToken == 0 {
		c.MaxToken = d.MaxToken
	}
	if c.TokenRatio == 0 {
		c.TokenRatio = d.TokenRatio
	}
	if c.LastKeep == 0 {
		c.LastKeep = d.LastKeep
	}
	if c.MinConsecutiveToolMessages == 0 {
		c.MinConsecutiveToolMessages = d.MinConsecutiveToolMessages
	}
	if c.LargePayloadThreshold == 0 {
		c.LargePayloadThreshold = d.LargePayloadThreshold
	}
	return c
}
