package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	GenerationRequests atomic.Int64
	GenerationErrors   atomic.Int64
	GenerationTimeouts atomic.Int64
	StreamFragments    atomic.Int64
	MetadataLookups    atomic.Int64
	MetadataMisses     atomic.Int64
	SynthesisRequests  atomic.Int64
	SynthesisErrors    atomic.Int64
	Exports            atomic.Int64
	LLMCalls           atomic.Int64
	LLMErrors          atomic.Int64
}

// metricKeys fixes the output order of FormatMetrics.
var metricKeys = []string{
	"generation_requests", "generation_errors", "generation_timeouts",
	"stream_fragments",
	"metadata_lookups", "metadata_misses",
	"synthesis_requests", "synthesis_errors",
	"exports",
	"llm_calls", "llm_errors",
	"cache_hits", "cache_misses",
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"generation_requests": metrics.GenerationRequests.Load(),
		"generation_errors":   metrics.GenerationErrors.Load(),
		"generation_timeouts": metrics.GenerationTimeouts.Load(),
		"stream_fragments":    metrics.StreamFragments.Load(),
		"metadata_lookups":    metrics.MetadataLookups.Load(),
		"metadata_misses":     metrics.MetadataMisses.Load(),
		"synthesis_requests":  metrics.SynthesisRequests.Load(),
		"synthesis_errors":    metrics.SynthesisErrors.Load(),
		"exports":             metrics.Exports.Load(),
		"llm_calls":           metrics.LLMCalls.Load(),
		"llm_errors":          metrics.LLMErrors.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the clips and sources sub-packages.
func IncrGenerationRequests() { metrics.GenerationRequests.Add(1) }
func IncrGenerationErrors()   { metrics.GenerationErrors.Add(1) }
func IncrGenerationTimeouts() { metrics.GenerationTimeouts.Add(1) }
func IncrStreamFragments()    { metrics.StreamFragments.Add(1) }
func IncrMetadataLookups()    { metrics.MetadataLookups.Add(1) }
func IncrMetadataMisses()     { metrics.MetadataMisses.Add(1) }
func IncrSynthesisRequests()  { metrics.SynthesisRequests.Add(1) }
func IncrSynthesisErrors()    { metrics.SynthesisErrors.Add(1) }
func IncrExports()            { metrics.Exports.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, threshold time.Duration, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > threshold {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
