package sources

import (
	"net/url"
	"regexp"
	"strings"
)

// videoIDRE matches the 11-char video id in watch, short-link, shorts,
// embed and live URLs.
var videoIDRE = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|shorts/|embed/|live/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

var youtubeHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
	"youtu.be":          true,
}

// VideoID extracts the YouTube video id from ref, or "" if none.
func VideoID(ref string) string {
	m := videoIDRE.FindStringSubmatch(ref)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// IsYouTube reports whether ref points at a YouTube host.
func IsYouTube(ref string) bool {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return false
	}
	return youtubeHosts[strings.ToLower(u.Hostname())]
}

// Canonical normalises a reference for use as a cache key. YouTube URLs
// collapse to the watch form; anything else is returned trimmed.
func Canonical(ref string) string {
	ref = strings.TrimSpace(ref)
	if id := VideoID(ref); id != "" {
		return "https://www.youtube.com/watch?v=" + id
	}
	return ref
}

// ValidReference reports whether ref is an absolute http(s) URL.
func ValidReference(ref string) bool {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
