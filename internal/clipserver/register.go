package clipserver

import (
	"time"

	"github.com/anatolykoptev/go_clipverb/internal/engine/clips"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Deps are the capabilities shared by every tool.
type Deps struct {
	Resolver    *clips.Resolver
	Client      *clips.Client
	Synthesizer *clips.Synthesizer
	Prefs       clips.PreferenceStore // nil disables get/save_preferences
	Rewrite     clips.Rewriter        // nil disables share_post adaptation
	OutputDir   string
	MaxUpload   int64
	Timeout     time.Duration
}

// RegisterTools registers the ClipVerb tools on the given MCP server:
// generate_content, generate_audio, export_document, share_post,
// get_preferences, save_preferences, session_status.
func RegisterTools(server *mcp.Server, deps Deps) {
	reg := newRegistry(deps.Resolver, deps.Client, deps.Timeout)

	registerGenerateContent(server, deps, reg)
	registerGenerateAudio(server, deps, reg)
	registerExportDocument(server, deps, reg)
	registerSharePost(server, deps, reg)
	registerPreferences(server, deps)
	registerSessionStatus(server, reg)
}

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 7
