// Package cache memoizes computed chapter timelines. A chapter's pipeline
// run costs several classifier and recommendation calls, so re-reads within
// the TTL are served from Redis. Cache failures never fail a request; the
// pipeline recomputes.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yomu/manga-bgm-go/internal/domain"
	pkgerrors "github.com/yomu/manga-bgm-go/pkg/errors"
)

const timelineKeyPrefix = "bgm:chapter:"

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type Service struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewService(cfg Config, logger *zap.Logger) (*Service, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, pkgerrors.NewCacheError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB),
	)

	return &Service{
		client: client,
		ttl:    cfg.TTL,
		logger: logger,
	}, nil
}

// GetTimeline returns the cached timeline for a chapter, or (nil, false)
// on miss or error.
func (s *Service) GetTimeline(ctx context.Context, chapterID string) ([]domain.MusicSegment, bool) {
	key := timelineKeyPrefix + chapterID

	value, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		s.logger.Warn("Cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var timeline []domain.MusicSegment
	if err := json.Unmarshal([]byte(value), &timeline); err != nil {
		s.logger.Warn("Cache unmarshal failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return timeline, true
}

// SetTimeline stores a computed timeline under the configured TTL.
func (s *Service) SetTimeline(ctx context.Context, chapterID string, timeline []domain.MusicSegment) {
	key := timelineKeyPrefix + chapterID

	data, err := json.Marshal(timeline)
	if err != nil {
		s.logger.Warn("Cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops a chapter's cached timeline.
func (s *Service) Invalidate(ctx context.Context, chapterID string) error {
	key := timelineKeyPrefix + chapterID
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return pkgerrors.NewCacheError("delete failed", "del", key, err)
	}
	return nil
}

func (s *Service) Close() error {
	return s.client.Close()
}
