package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	GeminiAPIKey         string
	GeminiModel          string
	GeminiTTSModel       string
	TTSVoice             string
	AudioTextLimit       int
	MetadataURL          string
	MetadataTimeout      time.Duration
	GenerationTimeout    time.Duration
	MaxUploadBytes       int64
	GenerationRPS        float64
	GenerationBurst      int
	LLMAPIKey            string
	LLMAPIKeyFallbacks   []string
	LLMAPIBase           string
	LLMModel             string
	LLMTemperature       float64
	LLMMaxTokens         int
	CacheTTL             time.Duration
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	OutputDir            string
	PDFFontPath          string // optional TrueType font for non-Latin PDF exports
	HTTPClient           *http.Client
	LLMClient            *llm.Client // nil = social rewrite disabled
}

// Defaults applied when a field is left zero.
const (
	DefaultMetadataTimeout   = 1200 * time.Millisecond
	DefaultGenerationTimeout = 60 * time.Second
	DefaultMaxUploadBytes    = 20 << 20
	DefaultAudioTextLimit    = 1500
	DefaultTTSVoice          = "Kore"
	DefaultMetadataURL       = "https://noembed.com/embed"
)

var cfg Config

// Cfg exposes the engine configuration for sub-packages (clips, sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.MetadataTimeout <= 0 {
		c.MetadataTimeout = DefaultMetadataTimeout
	}
	if c.GenerationTimeout <= 0 {
		c.GenerationTimeout = DefaultGenerationTimeout
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.AudioTextLimit <= 0 {
		c.AudioTextLimit = DefaultAudioTextLimit
	}
	if c.TTSVoice == "" {
		c.TTSVoice = DefaultTTSVoice
	}
	if c.MetadataURL == "" {
		c.MetadataURL = DefaultMetadataURL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	cfg = c
	Cfg = &cfg
	initLimiter(c.GenerationRPS, c.GenerationBurst)
}
