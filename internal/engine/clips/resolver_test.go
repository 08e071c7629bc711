package clips

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_clipverb/internal/engine/sources"
)

const testLimit = 20 << 20

func TestResolveOversizedUpload(t *testing.T) {
	lookup := &fakeLookup{md: &sources.Metadata{Title: "x"}}
	r := NewResolver(lookup, testLimit, time.Second)

	_, err := r.Resolve(context.Background(), uploadConfig(testLimit+1, ResearchStrict))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOversizedInput)

	var oe *OversizedInputError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, int64(testLimit+1), oe.Size)
	assert.Equal(t, int64(testLimit), oe.Limit)
	assert.Zero(t, lookup.calls.Load(), "no network call for uploads")
}

func TestResolveUploadAtLimit(t *testing.T) {
	r := NewResolver(nil, testLimit, time.Second)
	rs, err := r.Resolve(context.Background(), uploadConfig(testLimit, ResearchStrict))
	require.NoError(t, err)
	assert.Nil(t, rs.Metadata)
	assert.Len(t, rs.Source.Data, testLimit)
	assert.Equal(t, "video/mp4", rs.Source.MIMEType)
}

func TestResolveRemoteLookupFailureAbsorbed(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"timeout", context.DeadlineExceeded},
		{"no metadata", sources.ErrNoMetadata},
		{"network", errors.New("dial tcp: connection refused")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := &fakeLookup{err: tt.err}
			r := NewResolver(lookup, testLimit, time.Second)
			rs, err := r.Resolve(context.Background(), remoteConfig("https://youtu.be/abc123XYZ9", ResearchEnhanced))
			require.NoError(t, err)
			assert.Nil(t, rs.Metadata)
			assert.Nil(t, rs.Seed())
			assert.Equal(t, int32(1), lookup.calls.Load())
		})
	}
}

func TestResolveRemoteWithMetadata(t *testing.T) {
	lookup := &fakeLookup{md: &sources.Metadata{Title: "Demo Video", Author: "Acme"}}
	r := NewResolver(lookup, testLimit, time.Second)

	rs, err := r.Resolve(context.Background(), remoteConfig("https://youtu.be/abc123XYZ9", ResearchEnhanced))
	require.NoError(t, err)
	require.NotNil(t, rs.Metadata)
	assert.Equal(t, "Acme", rs.Metadata.Author)
	assert.Equal(t, []Citation{{Title: "YouTube: Demo Video", URL: "https://youtu.be/abc123XYZ9"}}, rs.Seed())
}

func TestSeedNonYouTubeTitle(t *testing.T) {
	rs := ResolvedSource{
		Source:   RemoteSource("https://vimeo.com/1"),
		Metadata: &sources.Metadata{Title: "Talk"},
	}
	assert.Equal(t, []Citation{{Title: "Talk", URL: "https://vimeo.com/1"}}, rs.Seed())
}

// stuckLookup never answers and ignores cancellation.
type stuckLookup struct {
	entered chan struct{}
	release chan struct{}
}

func (s *stuckLookup) Lookup(context.Context, string) (*sources.Metadata, error) {
	close(s.entered)
	<-s.release
	return &sources.Metadata{Title: "too late"}, nil
}

func TestResolveBoundsSlowLookup(t *testing.T) {
	lookup := &stuckLookup{entered: make(chan struct{}), release: make(chan struct{})}
	t.Cleanup(func() { close(lookup.release) })
	r := NewResolver(lookup, testLimit, 50*time.Millisecond)

	start := time.Now()
	rs, err := r.Resolve(context.Background(), remoteConfig("https://youtu.be/abc123XYZ9", ResearchEnhanced))
	elapsed := time.Since(start)

	require.NoError(t, err, "lookup timeout is absorbed")
	assert.Nil(t, rs.Metadata)
	assert.Less(t, elapsed, time.Second)
	<-lookup.entered
}
