package windowing

import "github.com/petasbytes/toolloop/conversation"

// Stats summarizes the result of window preparation.
//
// Fields:
//   - Total: estimated tokens for included groups only.
//   - Budget: the input token budget used.
//   - IncludedGroups: number of groups included.
//   - SkippedGroups: total groups minus IncludedGroups.
//   - OverBudgetNewest: true when the newest single group alone exceeds Budget.
//   - ExtendedToUser: true when the window was widened past Budget to start
//     on a user turn.
type Stats struct {
	Total            int
	Budget           int
	IncludedGroups   int
	SkippedGroups    int
	OverBudgetNewest bool
	ExtendedToUser   bool
}

// PrepareSendWindow returns the suffix of turns (oldest to newest) that fits
// within budget, never splitting a group.
//
// Rules:
//   - Include whole groups scanning newest to oldest while total <= budget.
//   - If the newest group alone exceeds budget, return an empty window and set OverBudgetNewest.
//   - If budget <= 0, return an empty window (OverBudgetNewest set when any groups exist).
//   - A window always opens on a user turn. Leading groups that start with an
//     assistant turn are dropped; if none would remain, the window is widened
//     back to the nearest group that starts with a user turn instead.
func PrepareSendWindow(turns conversation.History, budget int, c TokenCounter) (conversation.History, Stats) {
	if len(turns) == 0 {
		return nil, Stats{Budget: budget}
	}

	groups := GroupBlocks(turns)

	if budget <= 0 {
		return nil, Stats{Budget: budget, SkippedGroups: len(groups), OverBudgetNewest: len(groups) > 0}
	}

	costs := make([]int, len(groups))
	total := 0
	included := 0
	startIdx := len(groups)

	for gi := len(groups) - 1; gi >= 0; gi-- {
		costs[gi] = c.CountGroup(groups[gi], turns)
		if included == 0 && costs[gi] > budget {
			return nil, Stats{
				Budget:           budget,
				SkippedGroups:    len(groups),
				OverBudgetNewest: true,
			}
		}
		if total+costs[gi] > budget {
			break
		}
		total += costs[gi]
		included++
		startIdx = gi
	}

	extended := false
	start := startIdx
	for start < len(groups) && opensWithAssistant(turns, groups[start]) {
		start++
	}
	if start == len(groups) {
		// Nothing user-led fits; reach back instead of sending an
		// assistant-first transcript.
		start = startIdx
		for start > 0 && opensWithAssistant(turns, groups[start]) {
			start--
			costs[start] = c.CountGroup(groups[start], turns)
		}
		extended = start < startIdx
	}
	total = 0
	for gi := start; gi < len(groups); gi++ {
		total += costs[gi]
	}
	included = len(groups) - start

	window := turns[groups[start].Start:]
	return window, Stats{
		Total:          total,
		Budget:         budget,
		IncludedGroups: included,
		SkippedGroups:  len(groups) - included,
		ExtendedToUser: extended,
	}
}

func opensWithAssistant(turns conversation.History, g Group) bool {
	return turns[g.Start].Role() == conversation.RoleAssistant
}
