package clips

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go_clipverb/internal/engine/sources"
)

// MetadataLookup resolves descriptive metadata for a remote reference.
// *sources.NoEmbed is the production implementation.
type MetadataLookup interface {
	Lookup(ctx context.Context, ref string) (*sources.Metadata, error)
}

// ResolvedSource is a source ready to be sent to the model.
// Metadata is nil for uploads and for remote references whose lookup failed.
type ResolvedSource struct {
	Source   Source
	Metadata *sources.Metadata
}

// Seed returns the citation known before streaming starts, if any.
func (r ResolvedSource) Seed() []Citation {
	if r.Source.Kind != SourceRemote || r.Metadata == nil {
		return nil
	}
	title := r.Metadata.Title
	if sources.IsYouTube(r.Source.Reference) {
		title = "YouTube: " + title
	}
	return []Citation{{Title: title, URL: r.Source.Reference}}
}

// Resolver validates uploads and enriches remote references.
type Resolver struct {
	lookup        MetadataLookup
	maxBytes      int64
	lookupTimeout time.Duration
}

// NewResolver returns a resolver enforcing maxBytes on uploads. Each
// metadata lookup is abandoned after lookupTimeout (<= 0 means unbounded).
// lookup may be nil, in which case remote references resolve without metadata.
func NewResolver(lookup MetadataLookup, maxBytes int64, lookupTimeout time.Duration) *Resolver {
	return &Resolver{lookup: lookup, maxBytes: maxBytes, lookupTimeout: lookupTimeout}
}

// Resolve checks the upload ceiling or performs the best-effort metadata
// lookup. Lookup failures are logged and absorbed.
func (r *Resolver) Resolve(ctx context.Context, cfg GenerationConfig) (ResolvedSource, error) {
	src := cfg.source
	switch src.Kind {
	case SourceUpload:
		if size := int64(len(src.Data)); r.maxBytes > 0 && size > r.maxBytes {
			return ResolvedSource{}, &OversizedInputError{Size: size, Limit: r.maxBytes}
		}
		return ResolvedSource{Source: src}, nil

	case SourceRemote:
		if r.lookup == nil {
			return ResolvedSource{Source: src}, nil
		}
		md, err := r.boundedLookup(ctx, src.Reference)
		if err != nil {
			slog.Debug("clips: metadata lookup absorbed",
				slog.String("ref", src.Reference),
				slog.Any("error", err),
			)
			return ResolvedSource{Source: src}, nil
		}
		return ResolvedSource{Source: src, Metadata: md}, nil

	default:
		return ResolvedSource{}, fmt.Errorf("%w: no source", ErrConfiguration)
	}
}

// boundedLookup returns once the lookup answers or lookupTimeout passes,
// whichever is first, even if the lookup ignores its context.
func (r *Resolver) boundedLookup(ctx context.Context, ref string) (*sources.Metadata, error) {
	if r.lookupTimeout <= 0 {
		return r.lookup.Lookup(ctx, ref)
	}
	ctx, cancel := context.WithTimeout(ctx, r.lookupTimeout)
	defer cancel()

	type answer struct {
		md  *sources.Metadata
		err error
	}
	ch := make(chan answer, 1)
	go func() {
		md, err := r.lookup.Lookup(ctx, ref)
		ch <- answer{md, err}
	}()
	select {
	case a := <-ch:
		return a.md, a.err
	case <-ctx.Done():
		return nil, fmt.Errorf("metadata lookup: %w", ctx.Err())
	}
}
