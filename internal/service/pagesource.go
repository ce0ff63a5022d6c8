package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"

	"github.com/yomu/manga-bgm-go/internal/domain"
	pkgerrors "github.com/yomu/manga-bgm-go/pkg/errors"
)

// PageSource locates a chapter's page images. Implemented by the MangaDex
// at-home client below; faked in pipeline tests.
type PageSource interface {
	GetChapterPages(ctx context.Context, chapterID string) (*domain.ChapterPages, error)
}

type atHomeResponse struct {
	BaseURL string `json:"baseUrl"`
	Chapter struct {
		Hash string   `json:"hash"`
		Data []string `json:"data"`
	} `json:"chapter"`
}

// MangaDexClient resolves chapter ids against the MangaDex at-home server
// endpoint. Failures here are fatal to the chapter request, so transient
// errors are retried before giving up.
type MangaDexClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewMangaDexClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *MangaDexClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &MangaDexClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *MangaDexClient) GetChapterPages(ctx context.Context, chapterID string) (*domain.ChapterPages, error) {
	reqURL := fmt.Sprintf("%s/at-home/server/%s", c.baseURL, chapterID)

	var payload atHomeResponse
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}

			if resp.StatusCode != http.StatusOK {
				err := pkgerrors.NewAPIError(
					fmt.Sprintf("page source returned %d", resp.StatusCode),
					resp.StatusCode,
					map[string]any{"chapter_id": chapterID},
				)
				if resp.StatusCode >= 400 && resp.StatusCode < 500 {
					return retry.Unrecoverable(err)
				}
				return err
			}

			return json.Unmarshal(body, &payload)
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch chapter pages: %w", err)
	}

	if payload.BaseURL == "" || payload.Chapter.Hash == "" || len(payload.Chapter.Data) == 0 {
		return nil, pkgerrors.NewValidationError("incomplete page source response", "chapter", chapterID)
	}

	c.logger.Debug("Chapter pages located",
		zap.String("chapter_id", chapterID),
		zap.Int("pages", len(payload.Chapter.Data)),
	)

	return &domain.ChapterPages{
		ChapterID: chapterID,
		BaseURL:   payload.BaseURL,
		Hash:      payload.Chapter.Hash,
		Filenames: payload.Chapter.Data,
	}, nil
}
