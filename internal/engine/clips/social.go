package clips

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/anatolykoptev/go_clipverb/internal/engine"
)

// Platform is a social network a post can be shared to.
type Platform string

const (
	PlatformLinkedIn Platform = "LinkedIn"
	PlatformTwitter  Platform = "Twitter"
	PlatformMedium   Platform = "Medium"
)

// Platforms lists the supported share targets.
var Platforms = []Platform{PlatformLinkedIn, PlatformTwitter, PlatformMedium}

// TweetLimit is the character cap for a single post on X/Twitter.
const TweetLimit = 280

// ParsePlatform accepts platform names case-insensitively; "x" means Twitter.
func ParsePlatform(s string) (Platform, error) {
	if strings.EqualFold(strings.TrimSpace(s), "x") {
		return PlatformTwitter, nil
	}
	return parseEnum("platform", s, Platforms)
}

// Share is a ready-to-post text and the intent URL that opens the composer.
type Share struct {
	Platform Platform `json:"platform"`
	Text     string   `json:"text"`
	URL      string   `json:"url"`
	Adapted  bool     `json:"adapted"`
}

// BuildShare fits text to the platform and builds its share-intent URL.
// Posting itself is left to the user's browser.
func BuildShare(p Platform, text string) Share {
	text = strings.TrimSpace(text)
	s := Share{Platform: p, Text: text}
	switch p {
	case PlatformTwitter:
		s.Text = engine.TruncateRunes(text, TweetLimit, "")
		s.URL = "https://twitter.com/intent/tweet?text=" + url.QueryEscape(s.Text)
	case PlatformLinkedIn:
		s.URL = "https://www.linkedin.com/feed/?shareActive=true&text=" + url.QueryEscape(s.Text)
	case PlatformMedium:
		s.URL = "https://medium.com/new-story"
	}
	return s
}

// Rewriter adapts text for a platform. engine.AdaptForPlatform is the
// production implementation.
type Rewriter func(ctx context.Context, platform, text string) (string, error)

// Adapt rewrites text for p. Any rewrite failure falls back to the
// original text; the bool reports whether the rewrite was used.
func Adapt(ctx context.Context, p Platform, text string, rewrite Rewriter) (string, bool) {
	if rewrite == nil {
		return text, false
	}
	out, err := rewrite(ctx, strings.ToLower(string(p)), text)
	if err != nil || strings.TrimSpace(out) == "" {
		slog.Debug("clips: social rewrite skipped",
			slog.String("platform", string(p)),
			slog.Any("error", err),
		)
		return text, false
	}
	return out, true
}

// PrepareShare optionally adapts text and then builds the share.
func PrepareShare(ctx context.Context, p Platform, text string, rewrite Rewriter) (Share, error) {
	if strings.TrimSpace(text) == "" {
		return Share{}, fmt.Errorf("%w: nothing to share", ErrConfiguration)
	}
	adapted, ok := Adapt(ctx, p, text, rewrite)
	s := BuildShare(p, adapted)
	s.Adapted = ok
	return s, nil
}
