package clips

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/anatolykoptev/go_clipverb/internal/engine"
	"github.com/anatolykoptev/go_clipverb/internal/engine/sources"
)

func TestBuildRequestTools(t *testing.T) {
	tests := []struct {
		name      string
		cfg       GenerationConfig
		wantTools bool
		wantParts int
	}{
		{"upload strict", uploadConfig(8, ResearchStrict), false, 2},
		{"upload enhanced", uploadConfig(8, ResearchEnhanced), true, 2},
		{"remote strict", remoteConfig("https://youtu.be/abc123XYZ9", ResearchStrict), true, 1},
		{"remote enhanced", remoteConfig("https://youtu.be/abc123XYZ9", ResearchEnhanced), true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := BuildRequest(tt.cfg, ResolvedSource{Source: tt.cfg.Source()})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTools, req.ToolsEnabled)
			require.Len(t, req.Contents, 1)
			assert.Len(t, req.Contents[0].Parts, tt.wantParts)
		})
	}
}

func TestBuildRequestUploadInline(t *testing.T) {
	cfg := uploadConfig(8, ResearchStrict)
	req, err := BuildRequest(cfg, ResolvedSource{Source: cfg.Source()})
	require.NoError(t, err)

	inline := req.Contents[0].Parts[0].InlineData
	require.NotNil(t, inline)
	assert.Equal(t, "video/mp4", inline.MIMEType)
	assert.Len(t, inline.Data, 8)
	assert.Contains(t, req.Instruction, engine.PromptUploadStrict)
}

func TestBuildRequestNoSource(t *testing.T) {
	_, err := BuildRequest(GenerationConfig{}, ResolvedSource{})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestBuildInstruction(t *testing.T) {
	d := NewDraft(ModeReport)
	d.Source = RemoteSource("https://youtu.be/abc123XYZ9")
	d.Persona = PersonaJournalist
	d.Language = LangTamil
	d.Template = TemplateDebate
	d.ResearchMode = ResearchStrict
	d.Segment = Segment{Enabled: true, Start: "00:01:00", End: "00:02:30"}
	d.Branding = Branding{AgencyName: "Acme Media", ClientName: "Globex"}
	cfg := mustSnapshot(d)

	t.Run("without metadata", func(t *testing.T) {
		got := BuildInstruction(cfg, ResolvedSource{Source: cfg.Source()})
		assert.Contains(t, got, "Persona: Investigative Journalist")
		assert.Contains(t, got, "Target: Client Report (Tamil)")
		assert.Contains(t, got, "Template: Debate Summary")
		assert.Contains(t, got, "00:01:00 to 00:02:30")
		assert.Contains(t, got, "Brand: Acme Media. Client: Globex.")
		assert.Contains(t, got, "Never state that you cannot access")
		assert.Contains(t, got, engine.PromptRemoteStrict)
	})

	t.Run("with metadata", func(t *testing.T) {
		rs := ResolvedSource{Source: cfg.Source(), Metadata: &sources.Metadata{Title: "Demo Video"}}
		got := BuildInstruction(cfg, rs)
		assert.Contains(t, got, `Video Title: "Demo Video"`)
		assert.Contains(t, got, `Channel: "Creator"`)
		assert.NotContains(t, got, "Never state that you cannot access")
	})

	t.Run("deterministic", func(t *testing.T) {
		rs := ResolvedSource{Source: cfg.Source()}
		assert.Equal(t, BuildInstruction(cfg, rs), BuildInstruction(cfg, rs))
	})

	t.Run("disabled segment ignored", func(t *testing.T) {
		d2 := *d
		d2.Segment.Enabled = false
		got := BuildInstruction(mustSnapshot(&d2), ResolvedSource{Source: cfg.Source()})
		assert.NotContains(t, got, "Segment:")
	})
}

func TestFragmentFromSkipsThoughts(t *testing.T) {
	resp := chunk("visible", Citation{Title: "T", URL: "https://x.test"})
	resp.Candidates[0].Content.Parts = append(resp.Candidates[0].Content.Parts,
		&genai.Part{Text: "thinking about it", Thought: true},
		nil,
	)
	f := fragmentFrom(resp)
	assert.Equal(t, "visible", f.Text)
	assert.Equal(t, []Citation{{Title: "T", URL: "https://x.test"}}, f.Citations)

	assert.Equal(t, Fragment{}, fragmentFrom(nil))
}
