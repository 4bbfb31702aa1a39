package conversation

import (
	"encoding/json"
	"io"
)

// Kind tags the variant held by a Turn.
type Kind string

const (
	KindUserText      Kind = "user_text"
	KindAssistantText Kind = "assistant_text"
	KindToolRequest   Kind = "tool_request"
	KindToolResult    Kind = "tool_result"
	KindSystemError   Kind = "system_error"
)

// Role is the wire-level speaker a turn is attributed to.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single transcript entry. Only the fields relevant to Kind are set.
type Turn struct {
	Kind      Kind           `json:"kind"`
	Text      string         `json:"text,omitempty"`
	ToolName  string         `json:"tool_name,omitempty"`
	Arguments map[string]any `json:"arguments,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Payload   string         `json:"payload,omitempty"`
}

func UserText(text string) Turn { return Turn{Kind: KindUserText, Text: text} }

func AssistantText(text string) Turn { return Turn{Kind: KindAssistantText, Text: text} }

// ToolRequest records the assistant asking for a tool invocation.
func ToolRequest(id, name string, args map[string]any) Turn {
	return Turn{Kind: KindToolRequest, RequestID: id, ToolName: name, Arguments: args}
}

// ToolResult records the serialized output returned for request id.
func ToolResult(id, payload string) Turn {
	return Turn{Kind: KindToolResult, RequestID: id, Payload: payload}
}

func SystemError(text string) Turn { return Turn{Kind: KindSystemError, Text: text} }

// Role maps the turn kind to the speaker it is sent as.
func (t Turn) Role() Role {
	switch t.Kind {
	case KindAssistantText, KindToolRequest:
		return RoleAssistant
	default:
		return RoleUser
	}
}

// History is an ordered transcript, oldest first.
type History []Turn

// Append returns a new History with turns added. The receiver's backing
// array is never written to, so callers may keep their copy.
func (h History) Append(turns ...Turn) History {
	out := make(History, 0, len(h)+len(turns))
	out = append(out, h...)
	return append(out, turns...)
}

// Clone returns an independent copy of h. Argument maps are shared.
func (h History) Clone() History {
	if h == nil {
		return nil
	}
	out := make(History, len(h))
	copy(out, h)
	return out
}

// Last returns the newest turn, if any.
func (h History) Last() (Turn, bool) {
	if len(h) == 0 {
		return Turn{}, false
	}
	return h[len(h)-1], true
}

// Count returns the number of turns of kind k.
func (h History) Count(k Kind) int {
	n := 0
	for _, t := range h {
		if t.Kind == k {
			n++
		}
	}
	return n
}

// WriteJSON writes h as indented JSON to w.
func (h History) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	if h == nil {
		h = History{}
	}
	return enc.Encode(h)
}
