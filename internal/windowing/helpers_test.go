package windowing_test

import (
	"github.com/petasbytes/toolloop/conversation"
	"github.com/petasbytes/toolloop/internal/windowing"
)

// Short constructors keep the tables readable.
func U(text string) conversation.Turn { return conversation.UserText(text) }

func A(text string) conversation.Turn { return conversation.AssistantText(text) }

func Req(id string) conversation.Turn { return conversation.ToolRequest(id, "dummy_tool", nil) }

func Res(id, payload string) conversation.Turn { return conversation.ToolResult(id, payload) }

func SysErr(text string) conversation.Turn { return conversation.SystemError(text) }

func H(turns ...conversation.Turn) conversation.History { return conversation.History(turns) }

func groupsEqual(got, want []windowing.Group) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
