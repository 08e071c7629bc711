// Package toolutil provides shared helper functions for go_clipverb MCP tools.
package toolutil

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/anatolykoptev/go_clipverb/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CacheLoadJSON tries to load a cached value of type T from the engine cache.
// Returns the decoded value and true on hit; zero value and false on miss or decode error.
func CacheLoadJSON[T any](ctx context.Context, key string) (T, bool) {
	var out T
	cached, ok := engine.CacheGet(ctx, key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(cached, &out); err != nil {
		var zero T
		return zero, false
	}
	return out, true
}

// CacheStoreJSON marshals v and stores it in the engine cache.
func CacheStoreJSON[T any](ctx context.Context, key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	engine.CacheSet(ctx, key, data)
}

// Progress returns a reporter that sends progress notifications for the
// request. Calls are no-ops when the client sent no progress token.
func Progress(ctx context.Context, req *mcp.CallToolRequest) func(step int, message string) {
	if req == nil || req.Session == nil || req.Params == nil {
		return func(int, string) {}
	}
	token := req.Params.GetProgressToken()
	if token == nil {
		return func(int, string) {}
	}
	return func(step int, message string) {
		err := req.Session.NotifyProgress(ctx, &mcp.ProgressNotificationParams{
			ProgressToken: token,
			Message:       message,
			Progress:      float64(step),
		})
		if err != nil {
			slog.Debug("progress notification failed", slog.Any("error", err))
		}
	}
}

// SessionID returns the MCP session id of the caller, or "" over stdio.
func SessionID(req *mcp.CallToolRequest) string {
	if req == nil || req.Session == nil {
		return ""
	}
	return req.Session.ID()
}

// ExpandHome resolves a leading "~/" against the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
