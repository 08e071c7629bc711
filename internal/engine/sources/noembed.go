package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anatolykoptev/go_clipverb/internal/engine"
	"github.com/anatolykoptev/go_clipverb/internal/toolutil"
)

// ErrNoMetadata is returned when the lookup service answers but has no
// usable title for the reference.
var ErrNoMetadata = errors.New("noembed: no metadata")

// Metadata is the descriptive subset of an oEmbed response.
type Metadata struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// noembedResponse mirrors the fields we read from noembed.com.
type noembedResponse struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
	Error      string `json:"error"`
}

// NoEmbed looks up video metadata through an oEmbed proxy.
type NoEmbed struct {
	BaseURL string
	Client  *http.Client
	Timeout time.Duration
}

// NewNoEmbed builds a lookup from the engine configuration.
func NewNoEmbed() *NoEmbed {
	return &NoEmbed{
		BaseURL: engine.Cfg.MetadataURL,
		Client:  engine.Cfg.HTTPClient,
		Timeout: engine.Cfg.MetadataTimeout,
	}
}

// Lookup fetches title and author for ref. The whole call, cache included,
// finishes within n.Timeout.
// Successful lookups are cached by canonical reference.
func (n *NoEmbed) Lookup(ctx context.Context, ref string) (*Metadata, error) {
	// The bound covers the L2 cache read as well as the HTTP call.
	if n.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.Timeout)
		defer cancel()
	}

	key := engine.CacheKey("noembed", Canonical(ref))
	if md, ok := toolutil.CacheLoadJSON[Metadata](ctx, key); ok && md.Title != "" {
		return &md, nil
	}

	engine.IncrMetadataLookups()
	md, err := n.fetch(ctx, ref)
	if err != nil {
		engine.IncrMetadataMisses()
		return nil, err
	}

	toolutil.CacheStoreJSON(ctx, key, *md)
	return md, nil
}

func (n *NoEmbed) fetch(ctx context.Context, ref string) (*Metadata, error) {
	u, err := url.Parse(n.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("noembed: base url: %w", err)
	}
	q := u.Query()
	q.Set("url", ref)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", engine.RandomUserAgent())
	req.Header.Set("Accept", "application/json")

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("noembed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("noembed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("noembed: read: %w", err)
	}
	var data noembedResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("noembed: decode: %w", err)
	}
	if data.Error != "" || strings.TrimSpace(data.Title) == "" {
		return nil, ErrNoMetadata
	}

	slog.Debug("noembed: resolved",
		slog.String("title", data.Title),
		slog.Duration("elapsed", time.Since(start)),
	)
	return &Metadata{Title: strings.TrimSpace(data.Title), Author: strings.TrimSpace(data.AuthorName)}, nil
}
