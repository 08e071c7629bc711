package clips

import (
	"errors"
	"iter"
	"strings"

	"github.com/anatolykoptev/go_clipverb/internal/engine"
)

// Citation is a {title, url} pair the model consulted or referenced.
type Citation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Fragment is one element of the response stream.
type Fragment struct {
	Text      string
	Citations []Citation
}

// Result is the aggregated output of a finished (or interrupted) stream.
type Result struct {
	Text    string     `json:"text"`
	Sources []Citation `json:"sources"`
}

// ProgressFunc receives the full accumulated text after every fragment.
type ProgressFunc func(text string)

// Aggregator accumulates fragment text in arrival order and keeps one
// citation per URL, first title wins.
type Aggregator struct {
	buf     strings.Builder
	sources []Citation
	seen    map[string]struct{}
}

// NewAggregator returns an aggregator pre-seeded with known sources.
func NewAggregator(seed ...Citation) *Aggregator {
	a := &Aggregator{seen: make(map[string]struct{})}
	for _, c := range seed {
		a.addCitation(c)
	}
	return a
}

func (a *Aggregator) addCitation(c Citation) {
	c.URL = strings.TrimSpace(c.URL)
	if c.URL == "" {
		return
	}
	if _, dup := a.seen[c.URL]; dup {
		return
	}
	if strings.TrimSpace(c.Title) == "" {
		c.Title = c.URL
	}
	a.seen[c.URL] = struct{}{}
	a.sources = append(a.sources, c)
}

// Add folds one fragment into the accumulator.
func (a *Aggregator) Add(f Fragment) {
	if f.Text != "" {
		a.buf.WriteString(f.Text)
	}
	for _, c := range f.Citations {
		a.addCitation(c)
	}
}

// Text returns the text accumulated so far.
func (a *Aggregator) Text() string { return a.buf.String() }

// Result returns a copy of the current text and sources.
func (a *Aggregator) Result() Result {
	out := make([]Citation, len(a.sources))
	copy(out, a.sources)
	return Result{Text: a.buf.String(), Sources: out}
}

// Aggregate drains fragments into a Result, calling onProgress after each
// fragment. Setup failures (*UpstreamError) pass through unchanged; any
// other sequence error becomes a *StreamInterruptedError carrying the
// partial result.
func Aggregate(fragments iter.Seq2[Fragment, error], seed []Citation, onProgress ProgressFunc) (Result, error) {
	a := NewAggregator(seed...)
	for f, err := range fragments {
		if err != nil {
			var upErr *UpstreamError
			if errors.As(err, &upErr) {
				return a.Result(), err
			}
			partial := a.Result()
			return partial, &StreamInterruptedError{Partial: partial, Err: err}
		}
		a.Add(f)
		engine.IncrStreamFragments()
		if onProgress != nil {
			onProgress(a.Text())
		}
	}
	return a.Result(), nil
}
