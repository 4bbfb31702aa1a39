package windowing_test

import (
	"testing"

	"github.com/petasbytes/toolloop/conversation"
	"github.com/petasbytes/toolloop/internal/windowing"
)

func TestGroupBlocks_Invariants(t *testing.T) {
	single := func(i int) windowing.Group { return windowing.Group{Kind: windowing.GroupSingleton, Start: i, End: i + 1} }
	pair := func(i int) windowing.Group { return windowing.Group{Kind: windowing.GroupPair, Start: i, End: i + 2} }

	tests := []struct {
		name  string
		turns conversation.History
		want  []windowing.Group
	}{
		{
			name:  "valid pair",
			turns: H(Req("t1"), Res("t1", "ok")),
			want:  []windowing.Group{pair(0)},
		},
		{
			name:  "two sequential pairs",
			turns: H(U("q"), A("working"), Req("t1"), Res("t1", "a"), Req("t2"), Res("t2", "b")),
			want:  []windowing.Group{single(0), single(1), pair(2), pair(4)},
		},
		{
			name:  "mismatched ids",
			turns: H(Req("t1"), Res("tX", "ok")),
			want:  []windowing.Group{single(0), single(1)},
		},
		{
			name:  "intervening turn breaks adjacency",
			turns: H(Req("t1"), A("note"), Res("t1", "ok")),
			want:  []windowing.Group{single(0), single(1), single(2)},
		},
		{
			name:  "request not followed by result",
			turns: H(Req("t1")),
			want:  []windowing.Group{single(0)},
		},
		{
			name:  "empty id never pairs",
			turns: H(Req(""), Res("", "ok")),
			want:  []windowing.Group{single(0), single(1)},
		},
		{
			name:  "system error is a singleton",
			turns: H(U("q"), SysErr("tool not found: x")),
			want:  []windowing.Group{single(0), single(1)},
		},
		{
			name:  "result first then request",
			turns: H(Res("t1", "ok"), Req("t1")),
			want:  []windowing.Group{single(0), single(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := windowing.GroupBlocks(tt.turns)
			if !groupsEqual(got, tt.want) {
				t.Fatalf("unexpected groups. got=%v want=%v", got, tt.want)
			}
		})
	}
}
