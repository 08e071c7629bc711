package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"
)

// ErrLLMDisabled is returned when no LLM client was configured.
var ErrLLMDisabled = errors.New("llm: client not configured")

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```markdown")
	s = strings.TrimPrefix(s, "```text")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CallLLMShort sends a prompt with per-call sampling overrides, for short
// rewrites where the global max_tokens is far too generous.
func CallLLMShort(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	if cfg.LLMClient == nil {
		return "", ErrLLMDisabled
	}
	metrics.LLMCalls.Add(1)
	resp, err := cfg.LLMClient.Complete(ctx, "", prompt,
		llm.WithChatTemperature(temperature),
		llm.WithChatMaxTokens(maxTokens),
	)
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", err
	}
	return stripFences(resp), nil
}

// AdaptForPlatform rewrites text to fit a social platform's conventions.
// Unknown platforms and empty rewrites return an error so callers can fall
// back to the original text.
func AdaptForPlatform(ctx context.Context, platform, text string) (string, error) {
	rules, ok := SocialPlatformRules[strings.ToLower(platform)]
	if !ok {
		return "", fmt.Errorf("adapt: unknown platform %q", platform)
	}
	prompt := fmt.Sprintf(socialAdaptPrompt, platform, rules, text)
	out, err := CallLLMShort(ctx, prompt, 0.4, 1024)
	if err != nil {
		return "", fmt.Errorf("adapt %s: %w", platform, err)
	}
	if out == "" {
		return "", fmt.Errorf("adapt %s: empty rewrite", platform)
	}
	return out, nil
}
