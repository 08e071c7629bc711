package clipserver

import (
	"context"

	"github.com/anatolykoptev/go_clipverb/internal/engine/clips"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerSharePost(server *mcp.Server, deps Deps, reg *registry) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "share_post",
		Description: "Prepare content for LinkedIn, X/Twitter or Medium. Returns the post text (X is capped at 280 characters) and a share URL that opens the platform's composer. With adapt=true the text is first rewritten to suit the platform; if rewriting fails the original text is used. Nothing is posted automatically.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input SharePostInput) (*mcp.CallToolResult, clips.Share, error) {
		platform, err := clips.ParsePlatform(input.Platform)
		if err != nil {
			return nil, clips.Share{}, err
		}
		text, err := textOrLast(reg, req, input.Text)
		if err != nil {
			return nil, clips.Share{}, err
		}
		var rewrite clips.Rewriter
		if input.Adapt {
			rewrite = deps.Rewrite
		}
		share, err := clips.PrepareShare(ctx, platform, text, rewrite)
		if err != nil {
			return nil, clips.Share{}, err
		}
		return nil, share, nil
	})
}
