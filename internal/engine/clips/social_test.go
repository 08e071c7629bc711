package clips

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildShare(t *testing.T) {
	text := "New post about Go & video"

	li := BuildShare(PlatformLinkedIn, text)
	u, err := url.Parse(li.URL)
	require.NoError(t, err)
	assert.Equal(t, "www.linkedin.com", u.Host)
	assert.Equal(t, "true", u.Query().Get("shareActive"))
	assert.Equal(t, text, u.Query().Get("text"))

	tw := BuildShare(PlatformTwitter, text)
	u, err = url.Parse(tw.URL)
	require.NoError(t, err)
	assert.Equal(t, "/intent/tweet", u.Path)
	assert.Equal(t, text, u.Query().Get("text"))

	md := BuildShare(PlatformMedium, text)
	assert.Equal(t, "https://medium.com/new-story", md.URL)
	assert.Equal(t, text, md.Text)
}

func TestBuildShareTwitterLimit(t *testing.T) {
	long := strings.Repeat("தமிழ் ", 100)
	tw := BuildShare(PlatformTwitter, long)
	assert.LessOrEqual(t, utf8.RuneCountInString(tw.Text), TweetLimit)

	li := BuildShare(PlatformLinkedIn, long)
	assert.Equal(t, strings.TrimSpace(long), li.Text)
}

func TestParsePlatform(t *testing.T) {
	for in, want := range map[string]Platform{
		"linkedin": PlatformLinkedIn,
		"X":        PlatformTwitter,
		"twitter":  PlatformTwitter,
		"Medium":   PlatformMedium,
	} {
		got, err := ParsePlatform(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParsePlatform("myspace")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestPrepareShare(t *testing.T) {
	ctx := context.Background()

	var gotPlatform string
	rewrite := func(_ context.Context, platform, text string) (string, error) {
		gotPlatform = platform
		return "adapted: " + text, nil
	}
	s, err := PrepareShare(ctx, PlatformLinkedIn, "hello", rewrite)
	require.NoError(t, err)
	assert.True(t, s.Adapted)
	assert.Equal(t, "adapted: hello", s.Text)
	assert.Equal(t, "linkedin", gotPlatform)

	failing := func(context.Context, string, string) (string, error) { return "", errors.New("llm down") }
	s, err = PrepareShare(ctx, PlatformMedium, "hello", failing)
	require.NoError(t, err)
	assert.False(t, s.Adapted)
	assert.Equal(t, "hello", s.Text)

	s, err = PrepareShare(ctx, PlatformTwitter, "hello", nil)
	require.NoError(t, err)
	assert.False(t, s.Adapted)

	_, err = PrepareShare(ctx, PlatformTwitter, "  ", nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}
