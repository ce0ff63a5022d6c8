// Package recco talks to the track recommendation and audio-feature
// service. Recommendation and enrichment failures are segment-local by
// design: callers log the error and continue with other segments.
package recco

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc/pool"
	"github.com/yomu/manga-bgm-go/internal/domain"
	pkgerrors "github.com/yomu/manga-bgm-go/pkg/errors"
	"go.uber.org/zap"
)

// Hard floor applied as a request parameter so the service never returns
// vocal tracks, whatever the synthesized target asked for.
const instrumentalnessFloor = 0.8

type trackContentResponse struct {
	Content []domain.TrackCandidate `json:"content" validate:"dive"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		validate:   validator.New(),
		logger:     logger,
	}
}

// Recommend fetches candidate tracks for a segment's target parameters,
// seeded by the mood's reference tracks.
func (c *Client) Recommend(ctx context.Context, params domain.AudioParameters, mood domain.Mood, size int) ([]domain.TrackCandidate, error) {
	query := url.Values{}
	query.Set("seeds", strings.Join(SeedsFor(mood), ","))
	query.Set("size", strconv.Itoa(size))
	query.Set("acousticness", formatFloat(params.Acousticness))
	query.Set("danceability", formatFloat(params.Danceability))
	query.Set("energy", formatFloat(params.Energy))
	query.Set("instrumentalness", formatFloat(max(params.Instrumentalness, instrumentalnessFloor)))
	query.Set("liveness", formatFloat(params.Liveness))
	query.Set("loudness", formatFloat(params.Loudness))
	query.Set("mode", strconv.Itoa(params.Mode))
	query.Set("speechiness", formatFloat(params.Speechiness))
	query.Set("tempo", formatFloat(params.Tempo))
	query.Set("valence", formatFloat(params.Valence))

	body, err := c.get(ctx, "/track/recommendation", query)
	if err != nil {
		return nil, err
	}

	var resp trackContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, pkgerrors.NewValidationError("invalid recommendation response", "content", err.Error())
	}
	if err := c.validate.Struct(&resp); err != nil {
		return nil, pkgerrors.NewValidationError("recommendation response schema violation", "content", err.Error())
	}

	c.logger.Debug("Recommendation candidates fetched",
		zap.String("mood", string(mood)),
		zap.Int("count", len(resp.Content)),
	)
	return resp.Content, nil
}

// GetSongsFeatures enriches track ids with measured audio features. Track
// metadata is fetched in one batched call; per-track feature lookups run
// concurrently. Missing ids and failed feature fetches are logged and
// dropped; partial results are valid results.
func (c *Client) GetSongsFeatures(ctx context.Context, trackIDs []string) ([]domain.EnrichedAudioFeatures, error) {
	if len(trackIDs) == 0 {
		return nil, nil
	}

	query := url.Values{}
	query.Set("ids", strings.Join(trackIDs, ","))

	body, err := c.get(ctx, "/track", query)
	if err != nil {
		return nil, err
	}

	var tracks trackContentResponse
	if err := json.Unmarshal(body, &tracks); err != nil {
		return nil, pkgerrors.NewValidationError("invalid track response", "content", err.Error())
	}

	var missing []string
	for _, id := range trackIDs {
		if !c.trackResolved(tracks.Content, id) {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		c.logger.Warn("Some tracks were not found", zap.Strings("ids", missing))
	}

	results := make([]*domain.EnrichedAudioFeatures, len(tracks.Content))
	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(featurePoolSize(len(tracks.Content)))
	for idx, track := range tracks.Content {
		idx, track := idx, track
		p.Go(func() {
			features, err := c.getAudioFeatures(ctx, track.ID)
			if err != nil {
				c.logger.Warn("Audio feature fetch failed",
					zap.String("track_id", track.ID),
					zap.Error(err),
				)
				return
			}
			enriched := &domain.EnrichedAudioFeatures{
				AudioFeatures: *features,
				Title:         track.TrackTitle,
			}
			mu.Lock()
			results[idx] = enriched
			mu.Unlock()
		})
	}
	p.Wait()

	out := make([]domain.EnrichedAudioFeatures, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (c *Client) getAudioFeatures(ctx context.Context, trackID string) (*domain.AudioFeatures, error) {
	body, err := c.get(ctx, "/track/"+trackID+"/audio-features", nil)
	if err != nil {
		return nil, err
	}

	var features domain.AudioFeatures
	if err := json.Unmarshal(body, &features); err != nil {
		return nil, pkgerrors.NewValidationError("invalid audio features", "track", trackID)
	}
	if features.ID == "" {
		features.ID = trackID
	}
	return &features, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.NewAPIError("recommendation service unreachable", 0, map[string]any{"path": path}).WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, pkgerrors.NewAPIError(
			fmt.Sprintf("recommendation service returned %d", resp.StatusCode),
			resp.StatusCode,
			map[string]any{"path": path},
		)
	}
	return body, nil
}

// The batched lookup links tracks by href rather than echoing the request
// ids verbatim, so missing-id detection matches on either.
func (c *Client) trackResolved(content []domain.TrackCandidate, id string) bool {
	for _, track := range content {
		if track.ID == id || strings.Contains(track.Href, id) {
			return true
		}
	}
	return false
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func featurePoolSize(n int) int {
	if n > 8 {
		return 8
	}
	if n < 1 {
		return 1
	}
	return n
}
