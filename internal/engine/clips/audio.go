package clips

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/anatolykoptev/go_clipverb/internal/engine"
)

// AudioAsset is a self-contained playable WAV file.
type AudioAsset struct {
	Data       []byte
	MIMEType   string
	Duration   time.Duration
	InputChars int
}

// Synthesizer turns finished text into speech. It keeps no state between
// calls; the same text may be synthesized repeatedly.
type Synthesizer struct {
	models ContentModel
	model  string
	voice  string
	limit  int
}

// NewSynthesizer builds a synthesizer that reads at most limit runes.
func NewSynthesizer(models ContentModel, model, voice string, limit int) *Synthesizer {
	return &Synthesizer{models: models, model: model, voice: voice, limit: limit}
}

// Synthesize speaks the first limit runes of text.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) (*AudioAsset, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: nothing to synthesize", ErrConfiguration)
	}
	if s.limit > 0 {
		text = engine.TruncateRunes(text, s.limit, "")
	}

	engine.IncrSynthesisRequests()
	if err := engine.WaitGeneration(ctx); err != nil {
		engine.IncrSynthesisErrors()
		return nil, fmt.Errorf("%w: %w", ErrSynthesis, err)
	}

	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}
	resp, err := s.models.GenerateContent(ctx, s.model, contents, s.speechConfig())
	if err != nil {
		engine.IncrSynthesisErrors()
		return nil, fmt.Errorf("%w: %w", ErrSynthesis, newUpstreamError(err))
	}

	pcm := audioPayload(resp)
	if len(pcm) == 0 {
		engine.IncrSynthesisErrors()
		reason := describeFinish(resp)
		if reason == "" {
			reason = "response carried no audio"
		}
		return nil, fmt.Errorf("%w: %s", ErrSynthesis, reason)
	}

	asset := &AudioAsset{
		Data:       EncodeWAV(pcm, SampleRate, Channels, BitsPerSample),
		MIMEType:   "audio/wav",
		Duration:   PCMDuration(len(pcm), SampleRate, Channels, BitsPerSample),
		InputChars: len([]rune(text)),
	}
	slog.Info("clips: audio synthesized",
		slog.Int("chars", asset.InputChars),
		slog.Duration("duration", asset.Duration),
	)
	return asset, nil
}

func (s *Synthesizer) speechConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: s.voice},
			},
		},
	}
}

// audioPayload returns the first inline blob of the first candidate.
func audioPayload(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && p.InlineData != nil && len(p.InlineData.Data) > 0 {
			return p.InlineData.Data
		}
	}
	return nil
}

// describeFinish reports a non-normal finish reason, or "" for a clean stop.
func describeFinish(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "no candidates"
	}
	switch r := resp.Candidates[0].FinishReason; r {
	case "", genai.FinishReasonStop:
		return ""
	default:
		return fmt.Sprintf("finish reason %s", r)
	}
}
