package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	PageSource PageSourceConfig
	Recco      ReccoConfig
	YouTube    YouTubeConfig
	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	Redis      RedisConfig
	Pipeline   PipelineConfig
	Logging    LoggingConfig
}

type ServerConfig struct {
	Addr string
}

type PageSourceConfig struct {
	BaseURL string
}

type ReccoConfig struct {
	BaseURL string
}

type YouTubeConfig struct {
	APIKey string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type PipelineConfig struct {
	// CandidateCount is the result size requested from the recommendation
	// service per segment.
	CandidateCount int
	// SegmentConcurrency bounds the per-segment fan-out.
	SegmentConcurrency int
	// PageConcurrency bounds concurrent page image fetches.
	PageConcurrency int
	// ScoringEnabled picks the best-ranked candidate; when disabled the
	// first returned candidate is used as-is.
	ScoringEnabled bool
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr: getEnv("SERVER_ADDR", ":8080"),
		},
		PageSource: PageSourceConfig{
			BaseURL: getEnv("MANGADEX_BASE_URL", "https://api.mangadex.org"),
		},
		Recco: ReccoConfig{
			BaseURL: getEnv("RECCOBEATS_BASE_URL", "https://api.reccobeats.com/v1"),
		},
		YouTube: YouTubeConfig{
			APIKey: getEnv("YOUTUBE_API_KEY", ""),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
			EnableFallback: getEnvBool("OPENAI_ENABLE_FALLBACK", true),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_TTL_MINUTES", 360)) * time.Minute,
		},
		Pipeline: PipelineConfig{
			CandidateCount:     getEnvInt("PIPELINE_CANDIDATE_COUNT", 10),
			SegmentConcurrency: getEnvInt("PIPELINE_SEGMENT_CONCURRENCY", 4),
			PageConcurrency:    getEnvInt("PIPELINE_PAGE_CONCURRENCY", 8),
			ScoringEnabled:     getEnvBool("PIPELINE_SCORING_ENABLED", true),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("YOUTUBE_API_KEY is required")
	}
	if c.Pipeline.CandidateCount <= 0 {
		return fmt.Errorf("PIPELINE_CANDIDATE_COUNT must be positive")
	}
	if c.Pipeline.SegmentConcurrency <= 0 || c.Pipeline.PageConcurrency <= 0 {
		return fmt.Errorf("pipeline concurrency bounds must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
