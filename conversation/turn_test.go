package conversation_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/petasbytes/toolloop/conversation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurn_Roles(t *testing.T) {
	cases := []struct {
		turn conversation.Turn
		want conversation.Role
	}{
		{conversation.UserText("hi"), conversation.RoleUser},
		{conversation.AssistantText("hello"), conversation.RoleAssistant},
		{conversation.ToolRequest("t1", "add", map[string]any{"a": 1}), conversation.RoleAssistant},
		{conversation.ToolResult("t1", "5"), conversation.RoleUser},
		{conversation.SystemError("tool not found: x"), conversation.RoleUser},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.turn.Role(), "kind=%s", tc.turn.Kind)
	}
}

func TestHistory_AppendDoesNotMutateCaller(t *testing.T) {
	base := make(conversation.History, 1, 4)
	base[0] = conversation.UserText("first")

	a := base.Append(conversation.AssistantText("a"))
	b := base.Append(conversation.AssistantText("b"))

	require.Len(t, a, 2)
	require.Len(t, b, 2)
	assert.Equal(t, "a", a[1].Text)
	assert.Equal(t, "b", b[1].Text)
	assert.Len(t, base, 1)
}

func TestHistory_CloneAndLast(t *testing.T) {
	var empty conversation.History
	assert.Nil(t, empty.Clone())
	_, ok := empty.Last()
	assert.False(t, ok)

	h := conversation.History{conversation.UserText("q"), conversation.AssistantText("a")}
	c := h.Clone()
	c[0].Text = "changed"
	assert.Equal(t, "q", h[0].Text)

	last, ok := h.Last()
	require.True(t, ok)
	assert.Equal(t, conversation.KindAssistantText, last.Kind)
}

func TestHistory_Count(t *testing.T) {
	h := conversation.History{
		conversation.UserText("q"),
		conversation.ToolRequest("1", "add", nil),
		conversation.ToolResult("1", "5"),
		conversation.ToolRequest("2", "add", nil),
		conversation.ToolResult("2", "7"),
	}
	assert.Equal(t, 2, h.Count(conversation.KindToolRequest))
	assert.Equal(t, 0, h.Count(conversation.KindSystemError))
}

func TestHistory_WriteJSON(t *testing.T) {
	h := conversation.History{
		conversation.UserText("hi"),
		conversation.ToolRequest("t1", "add", map[string]any{"a": 2.0}),
		conversation.ToolResult("t1", "5"),
	}
	var buf bytes.Buffer
	require.NoError(t, h.WriteJSON(&buf))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Equal(t, "user_text", out[0]["kind"])
	assert.Equal(t, "add", out[1]["tool_name"])
	assert.Equal(t, "t1", out[2]["request_id"])
	assert.NotContains(t, out[0], "payload")

	buf.Reset()
	require.NoError(t, conversation.History(nil).WriteJSON(&buf))
	assert.JSONEq(t, "[]", buf.String())
}
