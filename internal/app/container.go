package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/yomu/manga-bgm-go/internal/config"
	"github.com/yomu/manga-bgm-go/internal/pipeline"
	"github.com/yomu/manga-bgm-go/internal/service"
	"github.com/yomu/manga-bgm-go/internal/service/ai"
	"github.com/yomu/manga-bgm-go/internal/service/cache"
	"github.com/yomu/manga-bgm-go/internal/service/corpus"
	"github.com/yomu/manga-bgm-go/internal/service/mood"
	"github.com/yomu/manga-bgm-go/internal/service/recco"
	"github.com/yomu/manga-bgm-go/internal/service/ytmusic"
)

// Container bundles the assembled pipeline and everything that needs
// closing at shutdown.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Pipeline *pipeline.Pipeline

	closers []func()
}

// Close releases held resources in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build assembles all infrastructure services behind the pipeline. Heavy
// initialization (AI clients, Redis, YouTube) happens here so the HTTP
// layer stays free of wiring.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	httpClient := &http.Client{Timeout: 60 * time.Second}

	// Classifier providers
	geminiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	primary := ai.NewGeminiProvider(geminiClient, cfg.Gemini.Model, logger)

	var fallback ai.JSONProvider
	if cfg.OpenAI.EnableFallback {
		if p := ai.NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger); p != nil {
			fallback = p
		}
	}

	classifier := ai.NewClassifier(primary, fallback, logger)
	engine := mood.NewEngine(classifier, logger)

	// External data services
	pageSource := service.NewMangaDexClient(cfg.PageSource.BaseURL, httpClient, logger)
	builder := corpus.NewBuilder(httpClient, cfg.Pipeline.PageConcurrency, logger)
	reccoClient := recco.NewClient(cfg.Recco.BaseURL, httpClient, logger)

	mediaResolver, err := ytmusic.NewService(cfg.YouTube.APIKey, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create media resolver: %w", err)
	}

	// Optional result cache
	var timelineCache pipeline.TimelineCache
	if cfg.Redis.Host != "" {
		cacheSvc, err := cache.NewService(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache service: %w", err)
		}
		closers = append(closers, func() {
			_ = cacheSvc.Close()
		})
		timelineCache = cacheSvc
	}

	pipe := pipeline.New(
		pageSource,
		builder,
		engine,
		reccoClient,
		mediaResolver,
		timelineCache,
		pipeline.Options{
			CandidateCount:     cfg.Pipeline.CandidateCount,
			SegmentConcurrency: cfg.Pipeline.SegmentConcurrency,
			ScoringEnabled:     cfg.Pipeline.ScoringEnabled,
		},
		logger,
	)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Pipeline: pipe,
		closers:  closers,
	}, nil
}
