// Package ytmusic resolves a winning (artist, title) pair to a playable
// media URL via YouTube video search.
package ytmusic

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/yomu/manga-bgm-go/internal/domain"
)

const searchResultLimit = 5

// Resolver is the media-search interface the orchestrator consumes.
type Resolver interface {
	Resolve(ctx context.Context, artist, title string) (*domain.ResolvedTrack, error)
}

type Service struct {
	service *youtube.Service
	logger  *zap.Logger
}

func NewService(apiKey string, logger *zap.Logger) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	svc, err := youtube.NewService(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Service{
		service: svc,
		logger:  logger,
	}, nil
}

// Resolve searches for the track and returns the top video hit. No hit is
// an error; the orchestrator treats it as segment-local and drops only the
// affected segment.
func (s *Service) Resolve(ctx context.Context, artist, title string) (*domain.ResolvedTrack, error) {
	query := strings.TrimSpace(artist + " " + title)

	call := s.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(searchResultLimit)

	response, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("media search failed for %q: %w", query, err)
	}

	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}

		resolved := &domain.ResolvedTrack{
			URL:    fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.Id.VideoId),
			Title:  title,
			Artist: artist,
		}
		if item.Snippet != nil {
			if item.Snippet.Title != "" {
				resolved.Title = item.Snippet.Title
			}
			if item.Snippet.ChannelTitle != "" {
				resolved.Artist = item.Snippet.ChannelTitle
			}
			resolved.ThumbnailURL = extractThumbnail(item.Snippet.Thumbnails)
		}

		s.logger.Debug("Media resolved",
			zap.String("query", query),
			zap.String("url", resolved.URL),
		)
		return resolved, nil
	}

	return nil, fmt.Errorf("no media results for %q", query)
}

func extractThumbnail(thumbnails *youtube.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}
	switch {
	case thumbnails.High != nil && thumbnails.High.Url != "":
		return thumbnails.High.Url
	case thumbnails.Medium != nil && thumbnails.Medium.Url != "":
		return thumbnails.Medium.Url
	case thumbnails.Default != nil && thumbnails.Default.Url != "":
		return thumbnails.Default.Url
	}
	return ""
}
