package engine

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"
)

// Outbound pacing for the content model. The free Gemini tier rejects
// bursts with 429, so every generation and synthesis call waits here first.
var (
	limiterMu sync.RWMutex
	limiter   *rate.Limiter
)

// initLimiter installs the shared limiter. rps <= 0 disables pacing.
func initLimiter(rps float64, burst int) {
	limiterMu.Lock()
	defer limiterMu.Unlock()
	if rps <= 0 {
		limiter = nil
		return
	}
	if burst <= 0 {
		burst = 1
	}
	limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// WaitGeneration blocks until the next model call may proceed or ctx ends.
func WaitGeneration(ctx context.Context) error {
	limiterMu.RLock()
	l := limiter
	limiterMu.RUnlock()
	if l == nil {
		return nil
	}
	if err := l.Wait(ctx); err != nil {
		return fmt.Errorf("generation pacing: %w", err)
	}
	return nil
}
