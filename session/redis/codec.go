package redis

import (
	"encoding/json"
	"fmt"

	"github.com/agentcore/agentcore/message"
	"github.com/agentcore/agentcore/plan"
	"github.com/agentcore/agentcore/session"
)

func encodeState(state session.State) (wireState, error) {
	w := wireState{AgentID: state.AgentID}
	for i, m := range state.Messages {
		raw, err := json.Marshal(m)
		if err != nil {
			return wireState{}, fmt.Errorf("message[%d]: %w", i, err)
		}
		w.Messages = append(w.Messages, raw)
	}
	if state.Plan != nil {
		raw, err := json.Marshal(state.Plan)
		if err != nil {
			return wireState{}, fmt.Errorf("plan: %w", err)
		}
		w.Plan = raw
	}
	if len(state.Offloads) > 0 {
		w.Offloads = make(map[string][]json.RawMessage, len(state.Offloads))
		for handle, msgs := range state.Offloads {
			raws := make([]json.RawMessage, 0, len(msgs))
			for i, m := range msgs {
				raw, err := json.Marshal(m)
				if err != nil {
					return wireState{}, fmt.Errorf("offload %q[%d]: %w", handle, i, err)
				}
				raws = append(raws, raw)
			}
			w.Offloads[handle] = raws
		}
	}
	return w, nil
}

func decodeState(w wireState) (session.State, error) {
	state := session.State{AgentID: w.AgentID}
	for i, raw := range w.Messages {
		var m message.Message
		if err := json.Unmarshal(raw, &m); err != nil {
			return session.State{}, fmt.Errorf("message[%d]: %w", i, err)
		}
		state.Messages = append(state.Messages, m)
	}
	if len(w.Plan) > 0 {
		var p plan.Plan
		if err := json.Unmarshal(w.Plan, &p); err != nil {
			return session.State{}, fmt.Errorf("plan: %w", err)
		}
		state.Plan = &p
	}
	if len(w.Offloads) > 0 {
		state.Offloads = make(map[string][]message.Message, len(w.Offloads))
		for handle, raws := range w.Offloads {
			msgs := make([]message.Message, 0, len(raws))
			for i, raw := range raws {
				var m message.Message
				if err := json.Unmarshal(raw, &m); err != nil {
					return session.State{}, fmt.Errorf("offload %q[%d]: %w", handle, i, err)
				}
				msgs = append(msgs, m)
			}
			state.Offloads[handle] = msgs
		}
	}
	return state, nil
}
