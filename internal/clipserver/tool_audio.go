package clipserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anatolykoptev/go_clipverb/internal/engine"
	"github.com/anatolykoptev/go_clipverb/internal/engine/clips"
	"github.com/anatolykoptev/go_clipverb/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerGenerateAudio(server *mcp.Server, deps Deps, reg *registry) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_audio",
		Description: "Read text aloud with Gemini text-to-speech and return a WAV file (24 kHz mono). Only the first part of long text is spoken. Defaults to the last content produced by generate_content in this session. The file is also saved to the output directory.",
		Annotations: &mcp.ToolAnnotations{OpenWorldHint: ptr(true)},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input GenerateAudioInput) (*mcp.CallToolResult, GenerateAudioOutput, error) {
		text, err := textOrLast(reg, req, input.Text)
		if err != nil {
			return nil, GenerateAudioOutput{}, err
		}
		if deps.Synthesizer == nil {
			return nil, GenerateAudioOutput{}, errors.New("speech synthesis is not configured")
		}

		var asset *clips.AudioAsset
		err = engine.TrackOperation(ctx, "generate_audio", 20*time.Second, func(ctx context.Context) error {
			var err error
			asset, err = deps.Synthesizer.Synthesize(ctx, text)
			return err
		})
		if err != nil {
			return nil, GenerateAudioOutput{}, err
		}

		name := fmt.Sprintf("ClipVerb_Audio_%s.wav", uuid.NewString()[:8])
		path, err := clips.WriteAsset(deps.OutputDir, name, asset.Data)
		if err != nil {
			return nil, GenerateAudioOutput{}, err
		}

		out := GenerateAudioOutput{
			Path:            path,
			MIMEType:        asset.MIMEType,
			DurationSeconds: asset.Duration.Seconds(),
			InputChars:      asset.InputChars,
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.AudioContent{Data: asset.Data, MIMEType: asset.MIMEType},
				&mcp.TextContent{Text: fmt.Sprintf("Saved %.1fs of audio to %s", out.DurationSeconds, path)},
			},
		}, out, nil
	})
}

// textOrLast returns text, or the caller's last generated content when
// text is empty.
func textOrLast(reg *registry, req *mcp.CallToolRequest, text string) (string, error) {
	if text != "" {
		return text, nil
	}
	if c, ok := reg.peek(toolutil.SessionID(req)); ok {
		if res, _, ok := c.lastResult(); ok && res.Text != "" {
			return res.Text, nil
		}
	}
	return "", fmt.Errorf("%w: text is required (no generated content in this session)", clips.ErrConfiguration)
}
