// go_clipverb: video-to-content MCP server.
//
// Turns an uploaded video or a public video URL into written content with
// Gemini, streams progress, reads results aloud, exports TXT/PDF reports and
// prepares social posts. Runs as HTTP MCP server or stdio transport.
package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_clipverb/internal/clipserver"
	"github.com/anatolykoptev/go_clipverb/internal/engine"
	"github.com/anatolykoptev/go_clipverb/internal/engine/clips"
	"github.com/anatolykoptev/go_clipverb/internal/engine/sources"
	"github.com/anatolykoptev/go_clipverb/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/genai"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	c := initEngine()

	ctx := context.Background()
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     c.GeminiAPIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: c.GenerationTimeout + 30*time.Second},
	})
	if err != nil {
		slog.Error("gemini client init failed", slog.Any("error", err))
		os.Exit(1)
	}

	prefs := openPreferences(ctx)
	if closer, ok := prefs.(io.Closer); ok {
		defer closer.Close()
	}

	slog.Info("starting go_clipverb",
		slog.String("port", mcpPort),
		slog.String("model", c.GeminiModel),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_clipverb",
		Version: version,
	}, nil)

	clipserver.RegisterTools(server, clipserver.Deps{
		Resolver:    clips.NewResolver(sources.NewNoEmbed(), c.MaxUploadBytes, c.MetadataTimeout),
		Client:      clips.NewClient(gc.Models, c.GeminiModel),
		Synthesizer: clips.NewSynthesizer(gc.Models, c.GeminiTTSModel, c.TTSVoice, c.AudioTextLimit),
		Prefs:       prefs,
		Rewrite:     engine.AdaptForPlatform,
		OutputDir:   c.OutputDir,
		MaxUpload:   c.MaxUploadBytes,
		Timeout:     c.GenerationTimeout,
	})
	slog.Info("tools registered", slog.Int("count", clipserver.ToolCount))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_clipverb",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() engine.Config {
	c := engine.Config{
		GeminiAPIKey:         env.Str("GEMINI_API_KEY", ""),
		GeminiModel:          env.Str("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiTTSModel:       env.Str("GEMINI_TTS_MODEL", "gemini-2.5-flash-preview-tts"),
		TTSVoice:             env.Str("TTS_VOICE", engine.DefaultTTSVoice),
		AudioTextLimit:       env.Int("AUDIO_TEXT_LIMIT", engine.DefaultAudioTextLimit),
		MetadataURL:          env.Str("METADATA_URL", engine.DefaultMetadataURL),
		MetadataTimeout:      env.Duration("METADATA_TIMEOUT", engine.DefaultMetadataTimeout),
		GenerationTimeout:    env.Duration("GENERATION_TIMEOUT", engine.DefaultGenerationTimeout),
		MaxUploadBytes:       int64(env.Int("MAX_UPLOAD_BYTES", engine.DefaultMaxUploadBytes)),
		GenerationRPS:        env.Float("GENERATION_RPS", 1),
		GenerationBurst:      env.Int("GENERATION_BURST", 2),
		LLMAPIKey:            env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks:   env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:           env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:             env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:       env.Float("LLM_TEMPERATURE", 0.7),
		LLMMaxTokens:         env.Int("LLM_MAX_TOKENS", 2048),
		CacheTTL:             env.Duration("CACHE_TTL", 24*time.Hour),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		OutputDir:            toolutil.ExpandHome(env.Str("OUTPUT_DIR", "~/.go_clipverb/out")),
		PDFFontPath:          toolutil.ExpandHome(env.Str("PDF_FONT_PATH", "")),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	// Social rewrite is optional; share_post falls back to the raw text.
	if c.LLMAPIKey != "" {
		c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
			llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
			llm.WithMaxTokens(c.LLMMaxTokens),
			llm.WithTemperature(c.LLMTemperature),
			llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
		)
		slog.Info("social rewrite enabled", slog.String("model", c.LLMModel))
	}

	engine.Init(c)
	engine.InitCache(env.Str("REDIS_URL", ""), c.CacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
	return *engine.Cfg
}

// openPreferences picks Postgres when DATABASE_URL is set, SQLite otherwise.
// A nil store disables the preference tools.
func openPreferences(ctx context.Context) clips.PreferenceStore {
	if dbURL := env.Str("DATABASE_URL", ""); dbURL != "" {
		store, err := clips.ConnectPostgresStore(ctx, dbURL)
		if err == nil {
			slog.Info("preferences: postgres store ready")
			return store
		}
		slog.Warn("preferences: postgres unavailable, falling back to sqlite", slog.Any("error", err))
	}

	path := toolutil.ExpandHome(env.Str("PREFS_PATH", "~/.go_clipverb/prefs.db"))
	store, err := clips.OpenSQLiteStore(path)
	if err != nil {
		slog.Warn("preferences: sqlite init failed, preferences disabled", slog.Any("error", err))
		return nil
	}
	slog.Info("preferences: sqlite store ready", slog.String("path", path))
	return store
}
