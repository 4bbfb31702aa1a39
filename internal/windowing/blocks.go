// Package windowing selects the newest slice of a transcript that fits an
// input-token budget without separating a tool request from its result.
package windowing

import "github.com/petasbytes/toolloop/conversation"

// GroupKind denotes the atomic unit type when preparing a send window.
type GroupKind int

const (
	GroupSingleton GroupKind = iota
	GroupPair
)

// Group describes a contiguous span of turns [Start, End) in the original slice.
type Group struct {
	Kind  GroupKind
	Start int // inclusive
	End   int // exclusive
}

// GroupBlocks splits turns into atomic units. A pair is a tool request
// immediately followed by the tool result carrying the same non-empty request
// id; every other turn is a singleton.
func GroupBlocks(turns conversation.History) []Group {
	groups := make([]Group, 0, len(turns))
	for i := 0; i < len(turns); {
		if isPairAt(turns, i) {
			groups = append(groups, Group{Kind: GroupPair, Start: i, End: i + 2})
			i += 2
			continue
		}
		groups = append(groups, Group{Kind: GroupSingleton, Start: i, End: i + 1})
		i++
	}
	return groups
}

func isPairAt(turns conversation.History, i int) bool {
	if i+1 >= len(turns) {
		return false
	}
	req, res := turns[i], turns[i+1]
	return req.Kind == conversation.KindToolRequest &&
		res.Kind == conversation.KindToolResult &&
		req.RequestID != "" &&
		req.RequestID == res.RequestID
}
