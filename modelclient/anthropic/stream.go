package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"

	"github.com/agentcore/agentcore/message"
	"github.com/agentcore/agentcore/modelclient"
)

// streamer adapts an Anthropic Messages streaming response to the
// modelclient.Streamer interface. Every ChatResponse it emits shares the same
// ID (the underlying Anthropic message ID) so consumers can treat them as
// chunks of a single model turn.
type streamer struct {
	ctx    context.Context
	cancel context.CancelFunc
	stream *ssestream.Stream[sdk.MessageStreamEventUnion]

	out chan modelclient.ChatResponse

	errMu sync.Mutex
	err   error

	toolBlocks     map[int64]*toolBuffer
	thinkingBlocks map[int64]*strings.Builder
	msgID          string
}

type toolBuffer struct {
	id        string
	name      string
	fragments []string
}

func newStreamer(ctx context.Context, stream *ssestream.Stream[sdk.MessageStreamEventUnion]) modelclient.Streamer {
	cctx, cancel := context.WithCancel(ctx)
	s := &streamer{
		ctx:            cctx,
		cancel:         cancel,
		stream:         stream,
		out:            make(chan modelclient.ChatResponse, 32),
		toolBlocks:     make(map[int64]*toolBuffer),
		thinkingBlocks: make(map[int64]*strings.Builder),
	}
	go s.run()
	return s
}

// Recv returns the next ChatResponse chunk, or io.EOF when the stream ends
// normally.
func (s *streamer) Recv() (modelclient.ChatResponse, error) {
	select {
	case resp, ok := <-s.out:
		if ok {
			return resp, nil
		}
		if err := s.getErr(); err != nil {
			return modelclient.ChatResponse{}, err
		}
		return modelclient.ChatResponse{}, io.EOF
	case <-s.ctx.Done():
		s.setErr(s.ctx.Err())
		return modelclient.ChatResponse{}, s.ctx.Err()
	}
}

// Close releases resources associated with the stream.
func (s *streamer) Close() error {
	s.cancel()
	if s.stream == nil {
		return nil
	}
	return s.stream.Close()
}

func (s *streamer) run() {
	defer close(s.out)
	defer func() {
		if s.stream != nil {
			_ = s.stream.Close()
		}
	}()
	for s.stream.Next() {
		select {
		case <-s.ctx.Done():
			s.setErr(s.ctx.Err())
			return
		default:
		}
		if err := s.handle(s.stream.Current()); err != nil {
			s.setErr(err)
			return
		}
	}
	if err := s.stream.Err(); err != nil {
		s.setErr(err)
	}
}

func (s *streamer) handle(event sdk.MessageStreamEventUnion) error {
	switch ev := event.AsAny().(type) {
	case sdk.MessageStartEvent:
		s.msgID = ev.Message.ID
		return nil
	case sdk.ContentBlockStartEvent:
		if toolUse, ok := ev.ContentBlock.AsAny().(sdk.ToolUseBlock); ok {
			if toolUse.ID == "" || toolUse.Name == "" {
				return errors.New("anthropic stream: tool_use block missing id or name")
			}
			s.toolBlocks[ev.Index] = &toolBuffer{id: toolUse.ID, name: toolUse.Name}
		}
		return nil
	case sdk.ContentBlockDeltaEvent:
		switch delta := ev.Delta.AsAny().(type) {
		case sdk.TextDelta:
			if delta.Text == "" {
				return nil
			}
			return s.emit(message.TextBlock{Text: delta.Text})
		case sdk.ThinkingDelta:
			if delta.Thinking == "" {
				return nil
			}
			b := s.thinkingBlocks[ev.Index]
			if b == nil {
				b = &strings.Builder{}
				s.thinkingBlocks[ev.Index] = b
			}
			b.WriteString(delta.Thinking)
			return s.emit(message.ThinkingBlock{Thinking: delta.Thinking})
		case sdk.InputJSONDelta:
			if delta.PartialJSON == "" {
				return nil
			}
			tb := s.toolBlocks[ev.Index]
			if tb == nil {
				return fmt.Errorf("anthropic stream: input JSON delta for unknown block %d", ev.Index)
			}
			tb.fragments = append(tb.fragments, delta.PartialJSON)
			return nil
		}
		return nil
	case sdk.ContentBlockStopEvent:
		if tb := s.toolBlocks[ev.Index]; tb != nil {
			input, err := decodeToolInput(strings.Join(tb.fragments, ""))
			if err != nil {
				return fmt.Errorf("anthropic stream: decoding tool input for %q: %w", tb.name, err)
			}
			delete(s.toolBlocks, ev.Index)
			return s.emit(message.ToolUseBlock{
				ID:      tb.id,
				Name:    tb.name,
				Input:   input,
				Content: strings.Join(tb.fragments, ""),
			})
		}
		return nil
	case sdk.MessageDeltaEvent:
		return nil
	case sdk.MessageStopEvent:
		return nil
	default:
		return nil
	}
}

func (s *streamer) emit(block message.Block) error {
	resp := modelclient.ChatResponse{ID: s.msgID, Content: []message.Block{block}}
	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	case s.out <- resp:
		return nil
	}
}

func (s *streamer) setErr(err error) {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

func (s *streamer) getErr() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.err
}

func decodeToolInput(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, err
	}
	return m, nil
}
