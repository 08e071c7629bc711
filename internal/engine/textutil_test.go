package engine

import "testing"

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"bold", "a **bold** move", "a bold move"},
		{"heading", "## Key Points\nbody", "Key Points\nbody"},
		{"deep heading", "###### tiny", "tiny"},
		{"link", "see [the docs](https://go.dev/doc) now", "see the docs now"},
		{"hash mid-line kept", "issue #42 fixed", "issue #42 fixed"},
		{"blank runs collapsed", "a\n\n\n\nb", "a\n\nb"},
		{"trims", "  \n# Title\n\n", "Title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkdown(tt.in); got != tt.want {
				t.Errorf("StripMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		limit  int
		suffix string
		want   string
	}{
		{"short", "abc", 5, "", "abc"},
		{"exact", "abcde", 5, "", "abcde"},
		{"cut", "abcdef", 3, "", "abc"},
		{"multibyte", "नमस्ते दुनिया", 2, "", "नम"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateRunes(tt.in, tt.limit, tt.suffix); got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}
