package clips

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/anatolykoptev/go_clipverb/internal/engine"
)

// Request is the assembled payload for one generation call.
type Request struct {
	Instruction  string
	Contents     []*genai.Content
	ToolsEnabled bool
}

// BuildInstruction assembles the instruction text from cfg and the
// resolved source. Pure: the same inputs always give the same text.
func BuildInstruction(cfg GenerationConfig, rs ResolvedSource) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, engine.PromptBase, cfg.Persona(), cfg.ContentType(), cfg.Language(), cfg.Template())

	if seg := cfg.Segment(); seg.Enabled {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, engine.PromptSegment, seg.Start, seg.End)
	}
	if b := cfg.branding; b.AgencyName != "" || b.ClientName != "" {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, engine.PromptBranding, orDash(b.AgencyName), orDash(b.ClientName))
	}

	sb.WriteString("\n\n")
	switch rs.Source.Kind {
	case SourceUpload:
		if cfg.ResearchMode() == ResearchEnhanced {
			sb.WriteString(engine.PromptUploadEnhanced)
		} else {
			sb.WriteString(engine.PromptUploadStrict)
		}
	case SourceRemote:
		if md := rs.Metadata; md != nil {
			author := md.Author
			if author == "" {
				author = "Creator"
			}
			fmt.Fprintf(&sb, engine.PromptRemoteKnown, rs.Source.Reference, md.Title, author, cfg.ContentType())
		} else {
			fmt.Fprintf(&sb, engine.PromptRemoteUnknown, rs.Source.Reference, cfg.ContentType())
		}
		sb.WriteString("\n")
		if cfg.ResearchMode() == ResearchEnhanced {
			sb.WriteString(engine.PromptRemoteEnhanced)
		} else {
			sb.WriteString(engine.PromptRemoteStrict)
		}
	}
	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// BuildRequest turns cfg into model contents. Uploads travel inline ahead
// of the instruction. Remote references always get the search tool since
// it is the only way to learn what the video contains; uploads get it only
// in enhanced mode.
func BuildRequest(cfg GenerationConfig, rs ResolvedSource) (Request, error) {
	instruction := BuildInstruction(cfg, rs)
	var parts []*genai.Part
	switch rs.Source.Kind {
	case SourceUpload:
		if len(rs.Source.Data) == 0 {
			return Request{}, fmt.Errorf("%w: upload is empty", ErrConfiguration)
		}
		parts = append(parts, genai.NewPartFromBytes(rs.Source.Data, rs.Source.MIMEType))
	case SourceRemote:
		if rs.Source.Reference == "" {
			return Request{}, fmt.Errorf("%w: reference is empty", ErrConfiguration)
		}
	default:
		return Request{}, fmt.Errorf("%w: no source", ErrConfiguration)
	}
	parts = append(parts, genai.NewPartFromText(instruction))

	return Request{
		Instruction:  instruction,
		Contents:     []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		ToolsEnabled: rs.Source.Kind == SourceRemote || cfg.ResearchMode() == ResearchEnhanced,
	}, nil
}

// generationConfig pins sampling for reproducible output and attaches the
// search tool when allowed.
func generationConfig(toolsEnabled bool) *genai.GenerateContentConfig {
	temperature := float32(0)
	topP := float32(0.1)
	topK := float32(1)
	thinkingBudget := int32(0)
	gc := &genai.GenerateContentConfig{
		Temperature:    &temperature,
		TopP:           &topP,
		TopK:           &topK,
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: &thinkingBudget},
	}
	if toolsEnabled {
		gc.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return gc
}
