package engine

import (
	"regexp"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8 (Devanagari, Tamil, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}

var (
	mdLinkRe    = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	mdHeadingRe = regexp.MustCompile(`(?m)^#{1,6}[ \t]*`)
	blankRunRe  = regexp.MustCompile(`\n{3,}`)
)

// StripMarkdown reduces generated Markdown to printable plain text:
// links become their label, bold markers and heading hashes are dropped.
func StripMarkdown(s string) string {
	s = mdLinkRe.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = mdHeadingRe.ReplaceAllString(s, "")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
