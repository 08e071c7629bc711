package clips

import (
	"context"
	"errors"
	"iter"
	"strings"

	"google.golang.org/genai"

	"github.com/anatolykoptev/go_clipverb/internal/engine"
)

// ContentModel is the subset of *genai.Models used here.
type ContentModel interface {
	GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client issues generation requests against a content model.
type Client struct {
	models ContentModel
	model  string
}

// NewClient wraps models for the named model.
func NewClient(models ContentModel, model string) *Client {
	return &Client{models: models, model: model}
}

// Stream starts one generation and returns its fragments as a lazy,
// single-use sequence. An error from the first read is reported as
// *UpstreamError; later errors are passed through as-is.
func (c *Client) Stream(ctx context.Context, cfg GenerationConfig, rs ResolvedSource) (iter.Seq2[Fragment, error], error) {
	req, err := BuildRequest(cfg, rs)
	if err != nil {
		return nil, err
	}
	if err := engine.WaitGeneration(ctx); err != nil {
		return nil, err
	}
	gc := generationConfig(req.ToolsEnabled)

	used := false
	return func(yield func(Fragment, error) bool) {
		if used {
			yield(Fragment{}, errors.New("clips: fragment stream already consumed"))
			return
		}
		used = true

		started := false
		for resp, err := range c.models.GenerateContentStream(ctx, c.model, req.Contents, gc) {
			if err != nil {
				if !started {
					yield(Fragment{}, newUpstreamError(err))
				} else {
					yield(Fragment{}, err)
				}
				return
			}
			started = true
			if !yield(fragmentFrom(resp), nil) {
				return
			}
		}
	}, nil
}

// fragmentFrom extracts text and web citations from the first candidate.
// Thought parts are skipped.
func fragmentFrom(resp *genai.GenerateContentResponse) Fragment {
	var f Fragment
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return f
	}
	cand := resp.Candidates[0]
	if cand.Content != nil {
		var sb strings.Builder
		for _, p := range cand.Content.Parts {
			if p == nil || p.Thought {
				continue
			}
			sb.WriteString(p.Text)
		}
		f.Text = sb.String()
	}
	if gm := cand.GroundingMetadata; gm != nil {
		for _, ch := range gm.GroundingChunks {
			if ch == nil || ch.Web == nil || ch.Web.URI == "" {
				continue
			}
			f.Citations = append(f.Citations, Citation{Title: ch.Web.Title, URL: ch.Web.URI})
		}
	}
	return f
}
