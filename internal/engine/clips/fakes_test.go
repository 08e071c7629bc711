package clips

import (
	"context"
	"iter"
	"sync"
	"sync/atomic"

	"google.golang.org/genai"

	"github.com/anatolykoptev/go_clipverb/internal/engine/sources"
)

// fakeModel is an in-memory ContentModel.
type fakeModel struct {
	mu           sync.Mutex
	calls        int
	lastModel    string
	lastContents []*genai.Content
	lastConfig   *genai.GenerateContentConfig

	stream func(yield func(*genai.GenerateContentResponse, error) bool)
	resp   *genai.GenerateContentResponse
	err    error
}

func (f *fakeModel) record(model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastModel = model
	f.lastContents = contents
	f.lastConfig = cfg
}

func (f *fakeModel) GenerateContentStream(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
	f.record(model, contents, cfg)
	if f.stream == nil {
		return func(func(*genai.GenerateContentResponse, error) bool) {}
	}
	return f.stream
}

func (f *fakeModel) GenerateContent(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.record(model, contents, cfg)
	return f.resp, f.err
}

// streamOf yields the given responses in order.
func streamOf(chunks ...*genai.GenerateContentResponse) func(yield func(*genai.GenerateContentResponse, error) bool) {
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for _, c := range chunks {
			if !yield(c, nil) {
				return
			}
		}
	}
}

// streamThenFail yields chunks and then err.
func streamThenFail(err error, chunks ...*genai.GenerateContentResponse) func(yield func(*genai.GenerateContentResponse, error) bool) {
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for _, c := range chunks {
			if !yield(c, nil) {
				return
			}
		}
		yield(nil, err)
	}
}

// chunk builds a single-candidate response with text and web citations.
func chunk(text string, cites ...Citation) *genai.GenerateContentResponse {
	cand := &genai.Candidate{}
	if text != "" {
		cand.Content = &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}}
	}
	if len(cites) > 0 {
		gm := &genai.GroundingMetadata{}
		for _, c := range cites {
			gm.GroundingChunks = append(gm.GroundingChunks, &genai.GroundingChunk{
				Web: &genai.GroundingChunkWeb{URI: c.URL, Title: c.Title},
			})
		}
		cand.GroundingMetadata = gm
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{cand}}
}

// audioResponse wraps raw PCM the way the speech model returns it.
func audioResponse(pcm []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{{
			InlineData: &genai.Blob{MIMEType: "audio/L16;codec=pcm;rate=24000", Data: pcm},
		}}},
		FinishReason: genai.FinishReasonStop,
	}}}
}

// fakeLookup is a scripted MetadataLookup.
type fakeLookup struct {
	md    *sources.Metadata
	err   error
	calls atomic.Int32
}

func (f *fakeLookup) Lookup(ctx context.Context, _ string) (*sources.Metadata, error) {
	f.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.md, f.err
}

// memStore is an in-memory PreferenceStore.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	return b, ok, nil
}

func (m *memStore) Save(_ context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = blob
	return nil
}

// mustSnapshot snapshots d or panics; for table setup only.
func mustSnapshot(d *Draft) GenerationConfig {
	c, err := d.Snapshot()
	if err != nil {
		panic(err)
	}
	return c
}

func uploadConfig(size int, mode ResearchMode) GenerationConfig {
	d := NewDraft(ModeBlog)
	d.Source = UploadSource(make([]byte, size), "video/mp4")
	d.ResearchMode = mode
	return mustSnapshot(d)
}

func remoteConfig(ref string, mode ResearchMode) GenerationConfig {
	d := NewDraft(ModeBlog)
	d.Source = RemoteSource(ref)
	d.ResearchMode = mode
	return mustSnapshot(d)
}
