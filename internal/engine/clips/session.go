package clips

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/anatolykoptev/go_clipverb/internal/engine"
)

// State is a session lifecycle phase.
type State string

const (
	StateIdle      State = "idle"
	StateResolving State = "resolving"
	StateStreaming State = "streaming"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// active reports whether a generation is in flight.
func (s State) active() bool { return s == StateResolving || s == StateStreaming }

// Status is a point-in-time view of a session.
type Status struct {
	State     State     `json:"state"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session runs at most one generation at a time. Completed and Failed are
// terminal for that run; the next Start begins a fresh one.
type Session struct {
	resolver *Resolver
	client   *Client
	timeout  time.Duration

	mu      sync.Mutex
	state   State
	lastErr error
	updated time.Time
}

// NewSession wires a resolver and client. timeout <= 0 means no deadline.
func NewSession(resolver *Resolver, client *Client, timeout time.Duration) *Session {
	return &Session{
		resolver: resolver,
		client:   client,
		timeout:  timeout,
		state:    StateIdle,
		updated:  time.Now(),
	}
}

// State returns the current phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status returns the current phase and the last failure, if any.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{State: s.state, UpdatedAt: s.updated}
	if s.state == StateFailed && s.lastErr != nil {
		st.Error = s.lastErr.Error()
	}
	return st
}

func (s *Session) setState(st State, err error) {
	s.mu.Lock()
	s.state = st
	s.lastErr = err
	s.updated = time.Now()
	s.mu.Unlock()
	slog.Debug("clips: session state", slog.String("state", string(st)))
}

// Start resolves the source, streams the generation and aggregates it.
// onProgress is called synchronously after every fragment. On a mid-stream
// failure the partial result is returned together with the error.
func (s *Session) Start(ctx context.Context, cfg GenerationConfig, onProgress ProgressFunc) (Result, error) {
	s.mu.Lock()
	if s.state.active() {
		s.mu.Unlock()
		return Result{}, ErrAlreadyInProgress
	}
	s.state = StateResolving
	s.lastErr = nil
	s.updated = time.Now()
	s.mu.Unlock()

	engine.IncrGenerationRequests()
	start := time.Now()

	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.run(runCtx, cfg, onProgress)
	if err != nil {
		if ctx.Err() == nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s: %w", ErrTimeout, s.timeout, err)
			engine.IncrGenerationTimeouts()
		}
		engine.IncrGenerationErrors()
		s.setState(StateFailed, err)
		slog.Warn("clips: generation failed",
			slog.String("source", string(cfg.source.Kind)),
			slog.Int("partial_chars", len(res.Text)),
			slog.Duration("elapsed", time.Since(start)),
			slog.Any("error", err),
		)
		return res, err
	}

	s.setState(StateCompleted, nil)
	slog.Info("clips: generation completed",
		slog.String("source", string(cfg.source.Kind)),
		slog.Int("chars", len(res.Text)),
		slog.Int("sources", len(res.Sources)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

func (s *Session) run(ctx context.Context, cfg GenerationConfig, onProgress ProgressFunc) (Result, error) {
	rs, err := s.resolver.Resolve(ctx, cfg)
	if err != nil {
		return Result{}, err
	}

	s.setState(StateStreaming, nil)
	fragments, err := s.client.Stream(ctx, cfg, rs)
	if err != nil {
		return Result{}, err
	}
	return Aggregate(fragments, rs.Seed(), onProgress)
}
