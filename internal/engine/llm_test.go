package engine

import (
	"context"
	"errors"
	"testing"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", "hello", "hello"},
		{"plain fences", "```\nhello\n```", "hello"},
		{"markdown fences", "```markdown\n# Post\nbody\n```", "# Post\nbody"},
		{"text fences", "```text\nhi\n```", "hi"},
		{"whitespace", "  \n hi \n ", "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCallLLMDisabled(t *testing.T) {
	Init(Config{})
	if _, err := CallLLMShort(context.Background(), "x", 0.5, 10); !errors.Is(err, ErrLLMDisabled) {
		t.Errorf("CallLLMShort err = %v, want ErrLLMDisabled", err)
	}
}

func TestAdaptForPlatformUnknown(t *testing.T) {
	Init(Config{})
	if _, err := AdaptForPlatform(context.Background(), "myspace", "hi"); err == nil {
		t.Error("expected error for unknown platform")
	}
	if _, err := AdaptForPlatform(context.Background(), "LinkedIn", "hi"); !errors.Is(err, ErrLLMDisabled) {
		t.Errorf("err = %v, want ErrLLMDisabled", err)
	}
}
