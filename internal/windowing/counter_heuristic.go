package windowing

import (
	"unicode/utf8"

	"github.com/petasbytes/toolloop/conversation"
)

// TokenCounter estimates input-token cost for turns or groups.
type TokenCounter interface {
	CountTurn(t conversation.Turn) int
	CountGroup(g Group, all conversation.History) int
}

// HeuristicCounter is the default deterministic estimator:
//   - text-bearing turns: rune count of the text
//   - tool results: rune count of the payload
//   - tool requests: overhead only
//
// Each turn adds a fixed overhead.
type HeuristicCounter struct{}

// Fixed per-turn overhead; changing it requires updating the guard tests.
const turnOverhead = 4

func (HeuristicCounter) CountTurn(t conversation.Turn) int {
	switch t.Kind {
	case conversation.KindUserText, conversation.KindAssistantText, conversation.KindSystemError:
		return utf8.RuneCountInString(t.Text) + turnOverhead
	case conversation.KindToolResult:
		return utf8.RuneCountInString(t.Payload) + turnOverhead
	}
	return turnOverhead
}

func (h HeuristicCounter) CountGroup(g Group, all conversation.History) int {
	total := 0
	for i := g.Start; i < g.End && i < len(all); i++ {
		total += h.CountTurn(all[i])
	}
	return total
}
