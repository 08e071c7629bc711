package clipserver

import (
	"context"
	"time"

	"github.com/anatolykoptev/go_clipverb/internal/engine/clips"
	"github.com/anatolykoptev/go_clipverb/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerSessionStatus(server *mcp.Server, reg *registry) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "session_status",
		Description: "Report this client's generation state: idle, resolving, streaming, completed or failed (with the error), and whether a result is available for export, audio or sharing.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(_ context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, SessionStatusOutput, error) {
		id := toolutil.SessionID(req)
		out := SessionStatusOutput{
			SessionID: id,
			Status:    clips.Status{State: clips.StateIdle, UpdatedAt: time.Now()},
		}
		if c, ok := reg.peek(id); ok {
			out.Status = c.session.Status()
			_, _, out.HasResult = c.lastResult()
		}
		return nil, out, nil
	})
}
