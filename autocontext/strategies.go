package autocontext

import (
	"context"
	"fmt"
	"time"

	"github.com/agentcore/agentcore/message"
)

// strategyFunc attempts one compaction rewrite against the current working
// set snapshot msgs. It returns true if a rewrite was applied (the caller
// must re-snapshot and re-evaluate thresholds before trying the next
// strategy, per spec.md §4.2). A strategy records its own CompressionEvent,
// including on failure, since only the strategy knows the span and handle
// involved.
type strategyFunc func(ctx context.Context, m *Memory, msgs []message.Message) bool

// strategies returns the six compaction strategies in the fixed priority
// order required by spec.md §4.2.
func strategies() []strategyFunc {
	return []strategyFunc{
		previousRoundToolInvocationCompress,
		previousRoundLargePayloadOffload,
		currentRoundLargePayloadOffload,
		previousRoundConversationSummary,
		currentRoundLargeMessageSummary,
		currentRoundMessagesCompress,
	}
}

func lastIndexOfRole(msgs []message.Message, role message.Role) int {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role() == role {
			return i
		}
	}
	return -1
}

// protectedBoundary returns the exclusive upper bound a strategy may touch,
// respecting the LastKeep tail window (spec.md §4.2).
func protectedBoundary(msgs []message.Message, cfg Config) int {
	b := len(msgs) - cfg.LastKeep
	if b < 0 {
		return 0
	}
	return b
}

func neighborIDs(msgs []message.Message, start, endInclusive int) (prevID, nextID string) {
	if start > 0 {
		prevID = msgs[start-1].ID()
	}
	if endInclusive+1 < len(msgs) {
		nextID = msgs[endInclusive+1].ID()
	}
	return
}

// strategy 1: previousRoundToolInvocationCompress finds the longest run of
// consecutive tool-related messages before the latest user message, whose
// length is at least MinConsecutiveToolMessages, and summarizes it into a
// single assistant message carrying a reload hint.
func previousRoundToolInvocationCompress(ctx context.Context, m *Memory, msgs []message.Message) bool {
	latestUser := lastIndexOfRole(msgs, message.RoleUser)
	limit := protectedBoundary(msgs, m.cfg)
	if latestUser >= 0 && latestUser < limit {
		limit = latestUser
	}
	if limit <= 0 {
		return false
	}

	bestStart, bestEnd := -1, -1
	runStart := -1
	for i := 0; i < limit; i++ {
		if msgs[i].IsToolRelated() {
			if runStart == -1 {
				runStart = i
			}
			if i == limit-1 || !msgs[i+1].IsToolRelated() {
				if i-runStart+1 >= m.cfg.MinConsecutiveToolMessages && i-runStart+1 > bestEnd-bestStart {
					bestStart, bestEnd = runStart, i
				}
				runStart = -1
			}
		}
	}
	if bestStart == -1 {
		return false
	}

	span := msgs[bestStart : bestEnd+1]
	summary, err := m.summarizer.summarize(ctx, "tool_invocation_run", span, m.planHint())
	if err != nil {
		m.recordFailure(KindToolInvocationCompress, err)
		return false
	}
	handle := m.offloads.Offload(span)
	prevID, nextID := neighborIDs(msgs, bestStart, bestEnd)
	summaryMsg := message.New("", message.RoleAssistant, []message.Block{
		message.TextBlock{Text: fmt.Sprintf("%s\n\n[reload hint: uuid:%s]", summary, handle)},
	}).WithMetadata(map[string]any{"kind": "tool_invocation_summary", "offload_handle": handle})

	m.working.ReplaceRange(bestStart, bestEnd, []message.Message{summaryMsg})
	m.events.record(CompressionEvent{
		Kind:            KindToolInvocationCompress,
		Timestamp:       time.Now(),
		CompressedCount: bestEnd - bestStart + 1,
		PreviousID:      prevID,
		NextID:          nextID,
		CompressedID:    summaryMsg.ID(),
		Metadata:        map[string]any{"offload_handle": handle},
	})
	return true
}

// largePayloadOffloadIn finds the first oversized message within [from,to)
// and replaces it with a placeholder referencing a fresh offload handle.
// Shared by strategies 2 and 3, which differ only in the window they scan.
func largePayloadOffloadIn(m *Memory, msgs []message.Message, from, to int) bool {
	for i := from; i < to; i++ {
		if kind, _ := msgs[i].MetaString("kind"); kind == "large_payload_placeholder" {
			continue
		}
		chars := calculateMessageCharCount(msgs[i])
		if chars <= m.cfg.LargePayloadThreshold {
			continue
		}
		handle := m.offloads.Offload(msgs[i : i+1])
		placeholder := message.New("", msgs[i].Role(), []message.Block{
			message.TextBlock{Text: fmt.Sprintf("[offloaded large message: %d chars, handle %s]", chars, handle)},
		}).WithMetadata(map[string]any{"kind": "large_payload_placeholder", "offload_handle": handle})

		prevID, nextID := neighborIDs(msgs, i, i)
		m.working.ReplaceRange(i, i, []message.Message{placeholder})
		m.events.record(CompressionEvent{
			Kind:            KindLargePayloadOffload,
			Timestamp:       time.Now(),
			CompressedCount: 1,
			PreviousID:      prevID,
			NextID:          nextID,
			CompressedID:    placeholder.ID(),
			Metadata:        map[string]any{"offload_handle": handle, "chars": chars},
		})
		return true
	}
	return false
}

// strategy 2: previousRoundLargePayloadOffload offloads an oversized message
// found before the latest assistant message.
func previousRoundLargePayloadOffload(_ context.Context, m *Memory, msgs []message.Message) bool {
	latestAssistant := lastIndexOfRole(msgs, message.RoleAssistant)
	limit := protectedBoundary(msgs, m.cfg)
	if latestAssistant >= 0 && latestAssistant < limit {
		limit = latestAssistant
	}
	return largePayloadOffloadIn(m, msgs, 0, limit)
}

// strategy 3: currentRoundLargePayloadOffload offloads an oversized message
// found between the latest user message and the latest assistant message.
func currentRoundLargePayloadOffload(_ context.Context, m *Memory, msgs []message.Message) bool {
	latestUser := lastIndexOfRole(msgs, message.RoleUser)
	latestAssistant := lastIndexOfRole(msgs, message.RoleAssistant)
	if latestUser < 0 || latestAssistant <= latestUser {
		return false
	}
	limit := protectedBoundary(msgs, m.cfg)
	if latestAssistant < limit {
		limit = latestAssistant
	}
	return largePayloadOffloadIn(m, msgs, latestUser+1, limit)
}

// strategy 4: previousRoundConversationSummary collapses the first
// qualifying user/assistant pair in a prior round — one where the pair is
// not directly adjacent, i.e. had other messages (typically tool calls)
// between them — into a single tagged summary message.
func previousRoundConversationSummary(ctx context.Context, m *Memory, msgs []message.Message) bool {
	latestUser := lastIndexOfRole(msgs, message.RoleUser)
	limit := protectedBoundary(msgs, m.cfg)
	if latestUser >= 0 && latestUser < limit {
		limit = latestUser
	}
	for userIdx := 0; userIdx < limit; userIdx++ {
		if msgs[userIdx].Role() != message.RoleUser {
			continue
		}
		for assistantIdx := userIdx + 2; assistantIdx < limit; assistantIdx++ {
			if msgs[assistantIdx].Role() != message.RoleAssistant {
				continue
			}
			// assistantIdx > userIdx+1 guarantees at least one message sits
			// between the pair, satisfying the non-adjacency requirement.
			span := msgs[userIdx : assistantIdx+1]
			summary, err := m.summarizer.summarize(ctx, "previous_round_pair", span, m.planHint())
			if err != nil {
				m.recordFailure(KindPreviousRoundSummary, err)
				return false
			}
			handle := m.offloads.Offload(span)
			prevID, nextID := neighborIDs(msgs, userIdx, assistantIdx)
			summaryMsg := message.New("", message.RoleAssistant, []message.Block{
				message.TextBlock{Text: summary},
			}).WithMetadata(map[string]any{"kind": "conversation_summary", "offload_handle": handle})

			m.working.ReplaceRange(userIdx, assistantIdx, []message.Message{summaryMsg})
			m.events.record(CompressionEvent{
				Kind:            KindPreviousRoundSummary,
				Timestamp:       time.Now(),
				CompressedCount: assistantIdx - userIdx + 1,
				PreviousID:      prevID,
				NextID:          nextID,
				CompressedID:    summaryMsg.ID(),
				Metadata:        map[string]any{"offload_handle": handle},
			})
			return true
		}
	}
	return false
}

// strategy 5: currentRoundLargeMessageSummary summarizes a single oversized
// message within the current round via the model, replacing it with a
// placeholder carrying a reload handle.
func currentRoundLargeMessageSummary(ctx context.Context, m *Memory, msgs []message.Message) bool {
	latestUser := lastIndexOfRole(msgs, message.RoleUser)
	if latestUser < 0 {
		return false
	}
	limit := protectedBoundary(msgs, m.cfg)
	for i := latestUser + 1; i < limit; i++ {
		if kind, _ := msgs[i].MetaString("kind"); kind == "compressed_large_message" {
			continue
		}
		if calculateMessageCharCount(msgs[i]) <= m.cfg.LargePayloadThreshold {
			continue
		}
		summary, err := m.summarizer.summarize(ctx, "current_round_large", msgs[i:i+1], m.planHint())
		if err != nil {
			m.recordFailure(KindCurrentRoundLargeMessage, err)
			return false
		}
		handle := m.offloads.Offload(msgs[i : i+1])
		placeholder := message.New("", msgs[i].Role(), []message.Block{
			message.TextBlock{Text: fmt.Sprintf("%s\n\n[reload hint: uuid:%s]", summary, handle)},
		}).WithMetadata(map[string]any{"kind": "compressed_large_message", "offload_handle": handle})

		prevID, nextID := neighborIDs(msgs, i, i)
		m.working.ReplaceRange(i, i, []message.Message{placeholder})
		m.events.record(CompressionEvent{
			Kind:            KindCurrentRoundLargeMessage,
			Timestamp:       time.Now(),
			CompressedCount: 1,
			PreviousID:      prevID,
			NextID:          nextID,
			CompressedID:    placeholder.ID(),
			Metadata:        map[string]any{"offload_handle": handle},
		})
		return true
	}
	return false
}

// strategy 6: currentRoundMessagesCompress collapses every tool-related
// message since the latest user message into a single summary, as a last
// resort once strategies 1-5 no longer apply.
func currentRoundMessagesCompress(ctx context.Context, m *Memory, msgs []message.Message) bool {
	latestUser := lastIndexOfRole(msgs, message.RoleUser)
	if latestUser < 0 {
		return false
	}
	limit := protectedBoundary(msgs, m.cfg)
	start, end := -1, -1
	for i := latestUser + 1; i < limit; i++ {
		if !msgs[i].IsToolRelated() {
			continue
		}
		if start == -1 {
			start = i
		}
		end = i
	}
	if start == -1 {
		return false
	}

	span := msgs[start : end+1]
	summary, err := m.summarizer.summarize(ctx, "current_round_collapse", span, m.planHint())
	if err != nil {
		m.recordFailure(KindCurrentRoundCompress, err)
		return false
	}
	handle := m.offloads.Offload(span)
	prevID, nextID := neighborIDs(msgs, start, end)
	summaryMsg := message.New("", message.RoleAssistant, []message.Block{
		message.TextBlock{Text: summary},
	}).WithMetadata(map[string]any{"kind": "compressed_current_round", "offload_handle": handle})

	m.working.ReplaceRange(start, end, []message.Message{summaryMsg})
	m.events.record(CompressionEvent{
		Kind:            KindCurrentRoundCompress,
		Timestamp:       time.Now(),
		CompressedCount: end - start + 1,
		PreviousID:      prevID,
		NextID:          nextID,
		CompressedID:    summaryMsg.ID(),
		Metadata:        map[string]any{"offload_handle": handle},
	})
	return true
}
