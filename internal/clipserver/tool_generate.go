package clipserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_clipverb/internal/engine/clips"
	"github.com/anatolykoptev/go_clipverb/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerGenerateContent(server *mcp.Server, deps Deps, reg *registry) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_content",
		Description: "Turn a video into written content with Gemini. Source is a local file (video_path), inline bytes (video_base64 + mime_type) or a public video URL (youtube_url). Choose persona, content type, language, template and research mode (strict = source only, enhanced = may search the web). Streams progress notifications and returns the text with the web sources consulted. If the stream breaks midway the partial text is returned with partial=true.",
		Annotations: &mcp.ToolAnnotations{OpenWorldHint: ptr(true)},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input GenerateContentInput) (*mcp.CallToolResult, GenerateContentOutput, error) {
		draft, err := draftFromInput(ctx, deps, input)
		if err != nil {
			return nil, GenerateContentOutput{}, err
		}
		cfg, err := draft.Snapshot()
		if err != nil {
			return nil, GenerateContentOutput{}, err
		}

		client := reg.get(toolutil.SessionID(req))
		report := toolutil.Progress(ctx, req)
		step := 0
		onProgress := func(text string) {
			step++
			report(step, fmt.Sprintf("%d characters received", len([]rune(text))))
		}

		res, err := client.session.Start(ctx, cfg, onProgress)
		if err != nil {
			if errors.Is(err, clips.ErrAlreadyInProgress) {
				return nil, GenerateContentOutput{}, fmt.Errorf("a generation is already running for this session: %w", err)
			}
			if res.Text == "" {
				return nil, GenerateContentOutput{}, err
			}
			slog.Warn("generate_content: returning partial result", slog.Int("chars", len(res.Text)), slog.Any("error", err))
			client.remember(cfg, res)
			return nil, GenerateContentOutput{
				Text:    res.Text,
				Sources: nonNil(res.Sources),
				State:   client.session.State(),
				Partial: true,
				Error:   err.Error(),
			}, nil
		}

		client.remember(cfg, res)
		return nil, GenerateContentOutput{
			Text:    res.Text,
			Sources: nonNil(res.Sources),
			State:   client.session.State(),
		}, nil
	})
}

// draftFromInput starts from the mode defaults, applies saved preferences,
// then the explicit input. Validation happens in Snapshot.
func draftFromInput(ctx context.Context, deps Deps, in GenerateContentInput) (*clips.Draft, error) {
	src, err := sourceFromInput(in, deps.MaxUpload)
	if err != nil {
		return nil, err
	}

	d := clips.NewDraft(clips.ParseMode(in.Mode))
	if deps.Prefs != nil {
		prefs, err := clips.LoadPreferences(ctx, deps.Prefs)
		if err != nil {
			slog.Warn("generate_content: preferences unavailable", slog.Any("error", err))
		} else {
			prefs.ApplyTo(d)
		}
	}

	d.Source = src
	setIf(&d.Persona, in.Persona)
	setIf(&d.ContentType, in.ContentType)
	setIf(&d.Language, in.Language)
	setIf(&d.Template, in.Template)
	setIf(&d.ResearchMode, in.ResearchMode)
	if in.Segment != nil {
		d.Segment = *in.Segment
	}
	if in.AgencyName != "" {
		d.Branding.AgencyName = in.AgencyName
	}
	if in.ClientName != "" {
		d.Branding.ClientName = in.ClientName
	}
	logo, err := decodeLogo(in.AgencyLogo)
	if err != nil {
		return nil, err
	}
	if logo != nil {
		d.Branding.Logo = logo
	}
	return d, nil
}

func setIf[T ~string](dst *T, v string) {
	if v != "" {
		*dst = T(v)
	}
}

func nonNil(c []clips.Citation) []clips.Citation {
	if c == nil {
		return []clips.Citation{}
	}
	return c
}

func ptr[T any](v T) *T { return &v }
