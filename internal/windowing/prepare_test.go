package windowing_test

import (
	"testing"

	"github.com/petasbytes/toolloop/conversation"
	"github.com/petasbytes/toolloop/internal/windowing"
)

func TestPrepareSendWindow_BudgetRespected_OrderPreserved(t *testing.T) {
	turns := H(
		U("old"),      // G0: 3 + 4 = 7
		U("q"),        // G1: 5
		Req("a"),      // G2: 4
		Res("a", "r"), //     1 + 4 => G2 total 9
		U("tail"),     // G3: 4 + 4 = 8
	)
	budget := 22 // G3(8) + G2(9) + G1(5)

	window, stats := windowing.PrepareSendWindow(turns, budget, windowing.HeuristicCounter{})

	if stats.Budget != budget || stats.Total != 22 || stats.IncludedGroups != 3 || stats.SkippedGroups != 1 || stats.OverBudgetNewest || stats.ExtendedToUser {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(window) != 4 {
		t.Fatalf("unexpected window length: got %d want=4", len(window))
	}
	if window[0].Text != "q" || window[1].Kind != conversation.KindToolRequest || window[2].Kind != conversation.KindToolResult || window[3].Text != "tail" {
		t.Fatalf("unexpected order in window: %+v", window)
	}
}

func TestPrepareSendWindow_DropsLeadingAssistantGroups(t *testing.T) {
	turns := H(
		U("old"),      // G0: 7
		Req("a"),      // G1: 4
		Res("a", "r"), //     5 => 9
		A("mid"),      // G2: 7
		U("tail"),     // G3: 8
	)
	// G1..G3 fit in 24, but the window may not open on the tool request or
	// the assistant text.
	window, stats := windowing.PrepareSendWindow(turns, 24, windowing.HeuristicCounter{})

	if len(window) != 1 || window[0].Text != "tail" {
		t.Fatalf("unexpected window: %+v", window)
	}
	if stats.Total != 8 || stats.IncludedGroups != 1 || stats.SkippedGroups != 3 || stats.ExtendedToUser {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestPrepareSendWindow_ExtendsBackToUserTurn(t *testing.T) {
	turns := H(
		U("older"),       // G0: 9
		U("what is 2+3"), // G1: 15
		Req("t1"),        // G2: 4
		Res("t1", "5"),   //     5 => 9
	)
	// Only the pair fits in 20; the window reaches back to the prompt.
	window, stats := windowing.PrepareSendWindow(turns, 20, windowing.HeuristicCounter{})

	if len(window) != 3 || window[0].Role() != conversation.RoleUser || window[0].Text != "what is 2+3" {
		t.Fatalf("unexpected window: %+v", window)
	}
	if !stats.ExtendedToUser || stats.Total != 24 || stats.IncludedGroups != 2 || stats.SkippedGroups != 1 || stats.OverBudgetNewest {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestPrepareSendWindow_NeverSplitsPair(t *testing.T) {
	turns := H(
		U("q"),               // G0: 5
		Req("a"),             // G1: 4
		Res("a", "xxxxxxxx"), //     12 => 16
		SysErr("e"),          // G2: 5
	)
	// 5 fits G2; adding G1 (16) would exceed, and half a pair is never taken.
	window, stats := windowing.PrepareSendWindow(turns, 20, windowing.HeuristicCounter{})
	if len(window) != 1 || window[0].Kind != conversation.KindSystemError {
		t.Fatalf("unexpected window: %+v", window)
	}
	if stats.IncludedGroups != 1 || stats.SkippedGroups != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestPrepareSendWindow_NewestGroupOverBudget(t *testing.T) {
	turns := H(
		U("old"),
		Req("a"),
		Res("a", "xxxxxx"), // newest pair costs 14
	)

	window, stats := windowing.PrepareSendWindow(turns, 10, windowing.HeuristicCounter{})

	if len(window) != 0 {
		t.Fatalf("expected empty window; got=%d", len(window))
	}
	if !stats.OverBudgetNewest || stats.IncludedGroups != 0 || stats.SkippedGroups != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestPrepareSendWindow_NoCapacityBudget_WithGroups(t *testing.T) {
	window, stats := windowing.PrepareSendWindow(H(U("x")), 0, windowing.HeuristicCounter{})
	if len(window) != 0 || !stats.OverBudgetNewest || stats.SkippedGroups != 1 || stats.IncludedGroups != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestPrepareSendWindow_Empty(t *testing.T) {
	window, stats := windowing.PrepareSendWindow(nil, 123, windowing.HeuristicCounter{})
	if window != nil || stats.Budget != 123 || stats.Total != 0 || stats.OverBudgetNewest {
		t.Fatalf("unexpected result: window=%v stats=%+v", window, stats)
	}
}

func TestPrepareSendWindow_AllFit(t *testing.T) {
	turns := H(U("oldest"), A("mid"), U("new")) // 10 + 7 + 7
	window, stats := windowing.PrepareSendWindow(turns, 24, windowing.HeuristicCounter{})

	if stats.IncludedGroups != 3 || stats.SkippedGroups != 0 || stats.Total != 24 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(window) != len(turns) {
		t.Fatalf("window size: got=%d want=%d", len(window), len(turns))
	}
}

func TestPrepareSendWindow_ExactlyOneOlderAlsoFits(t *testing.T) {
	turns := H(U("a"), U("bbbb"), U("cc")) // 5, 8, 6
	window, stats := windowing.PrepareSendWindow(turns, 14, windowing.HeuristicCounter{})

	if stats.IncludedGroups != 2 || stats.SkippedGroups != 1 || stats.Total != 14 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(window) != 2 || window[0].Text != "bbbb" || window[1].Text != "cc" {
		t.Fatalf("unexpected window: %+v", window)
	}
}
