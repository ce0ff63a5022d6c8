// Package corpus fetches a chapter's page images and assembles them into a
// single PDF document for the vision classifier.
package corpus

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/yomu/manga-bgm-go/internal/domain"
)

// Content types pdfcpu can place on a page directly.
var supportedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/tiff": true,
}

type Builder struct {
	httpClient  *http.Client
	concurrency int
	logger      *zap.Logger
}

func NewBuilder(httpClient *http.Client, concurrency int, logger *zap.Logger) *Builder {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Builder{
		httpClient:  httpClient,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Build fetches every page concurrently and bundles the results, in
// original page order, into one PDF sized to each image's native pixel
// dimensions. A failed fetch aborts the whole build; a page with an
// unsupported content type is logged and skipped.
func (b *Builder) Build(ctx context.Context, pageURLs []string) ([]byte, error) {
	if len(pageURLs) == 0 {
		return nil, fmt.Errorf("chapter has no pages")
	}

	pages := make([]*domain.PageImage, len(pageURLs))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(b.concurrency).WithErrors()
	for i, pageURL := range pageURLs {
		i, pageURL := i, pageURL
		p.Go(func() error {
			page, err := b.fetchPage(ctx, i, pageURL)
			if err != nil {
				return err
			}
			mu.Lock()
			pages[i] = page
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("page fetch failed: %w", err)
	}

	images := make([]io.Reader, 0, len(pages))
	for _, page := range pages {
		if page == nil {
			continue
		}
		images = append(images, bytes.NewReader(page.Data))
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no supported page images in chapter")
	}

	var doc bytes.Buffer
	if err := api.ImportImages(nil, &doc, images, nil, nil); err != nil {
		return nil, fmt.Errorf("document assembly failed: %w", err)
	}

	b.logger.Info("Chapter document assembled",
		zap.Int("pages", len(images)),
		zap.Int("bytes", doc.Len()),
	)
	return doc.Bytes(), nil
}

// fetchPage returns nil (without error) for pages whose content type the
// document assembler cannot handle.
func (b *Builder) fetchPage(ctx context.Context, index int, pageURL string) (*domain.PageImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", index+1, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page %d: status %d", index+1, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !supportedContentTypes[contentType] {
		b.logger.Warn("Skipping page with unsupported content type",
			zap.Int("page", index+1),
			zap.String("content_type", contentType),
		)
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", index+1, err)
	}

	return &domain.PageImage{
		Index:       index,
		ContentType: contentType,
		Data:        data,
	}, nil
}
