package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/docent"
	"github.com/aretw0/docent/internal/testutils"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	oracle := testutils.NewFakeOracle()
	oracle.Default = testutils.Reply{Text: "What did you build in the sandbox?"}
	return NewServer(docent.New(testutils.Catalog(t), oracle))
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.MCPServer().GetTool(name)
	require.NotNil(t, tool, "tool %s not registered", name)

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestTools_StartAndChat(t *testing.T) {
	s := newTestServer(t)

	res := callTool(t, s, "start_session", map[string]any{"session_id": "kiosk"})
	require.False(t, res.IsError)
	assert.Contains(t, text(t, res), "Tap the button below")

	res = callTool(t, s, "chat", map[string]any{"session_id": "kiosk", "user_text": "I loved the sandbox"})
	require.False(t, res.IsError)
	assert.Equal(t, "What did you build in the sandbox?", text(t, res))

	out, ok := res.StructuredContent.(ChatResult)
	require.True(t, ok)
	assert.Equal(t, "Sandbox", out.Exhibit)
	assert.Equal(t, "sandbox_q1", out.StepID)
	assert.False(t, out.Closed)
}

func TestTools_Validation(t *testing.T) {
	s := newTestServer(t)

	assert.True(t, callTool(t, s, "start_session", nil).IsError)
	assert.True(t, callTool(t, s, "chat", map[string]any{"session_id": "kiosk"}).IsError)
	assert.True(t, callTool(t, s, "chat", map[string]any{"session_id": "kiosk", "user_text": "bad \xff"}).IsError)
	assert.True(t, callTool(t, s, "chat", map[string]any{"session_id": 42, "user_text": "hi"}).IsError)
	assert.True(t, callTool(t, s, "chat", map[string]any{"session_id": "kiosk\n1", "user_text": "hi"}).IsError)
	assert.True(t, callTool(t, s, "chat", map[string]any{"session_id": "kiosk", "user_text": " \x00 "}).IsError)
}

func TestTools_ListExhibits(t *testing.T) {
	res := callTool(t, newTestServer(t), "list_exhibits", nil)
	assert.Contains(t, text(t, res), "- Faces: LiDAR sensors track your eyes.")
}

func TestResources_Catalog(t *testing.T) {
	s := newTestServer(t)
	msg := s.MCPServer().HandleMessage(context.Background(), json.RawMessage(
		`{"jsonrpc":"2.0","id":1,"method":"resources/read","params":{"uri":"docent://catalog"}}`,
	))

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `\"name\":\"Sandbox\"`)
}
