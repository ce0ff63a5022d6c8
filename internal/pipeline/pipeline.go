// Package pipeline orchestrates the chapter → music timeline computation:
// corpus assembly and mood segmentation once per chapter, then a concurrent
// per-segment fan-out of recommendation, enrichment, scoring and media
// resolution. Segment-local failures drop only their segment.
package pipeline

import (
	"context"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/yomu/manga-bgm-go/internal/domain"
	"github.com/yomu/manga-bgm-go/internal/service/scoring"
)

type PageSource interface {
	GetChapterPages(ctx context.Context, chapterID string) (*domain.ChapterPages, error)
}

type CorpusBuilder interface {
	Build(ctx context.Context, pageURLs []string) ([]byte, error)
}

type Segmenter interface {
	Segment(ctx context.Context, document []byte) (*domain.MoodOutput, error)
}

type Recommender interface {
	Recommend(ctx context.Context, params domain.AudioParameters, mood domain.Mood, size int) ([]domain.TrackCandidate, error)
	GetSongsFeatures(ctx context.Context, trackIDs []string) ([]domain.EnrichedAudioFeatures, error)
}

type MediaResolver interface {
	Resolve(ctx context.Context, artist, title string) (*domain.ResolvedTrack, error)
}

// TimelineCache is optional; a nil cache means every request recomputes.
type TimelineCache interface {
	GetTimeline(ctx context.Context, chapterID string) ([]domain.MusicSegment, bool)
	SetTimeline(ctx context.Context, chapterID string, timeline []domain.MusicSegment)
}

type Options struct {
	CandidateCount     int
	SegmentConcurrency int
	ScoringEnabled     bool
}

type Pipeline struct {
	pages    PageSource
	corpus   CorpusBuilder
	segments Segmenter
	recs     Recommender
	media    MediaResolver
	cache    TimelineCache
	opts     Options
	logger   *zap.Logger
}

func New(pages PageSource, corpus CorpusBuilder, segments Segmenter, recs Recommender, media MediaResolver, cache TimelineCache, opts Options, logger *zap.Logger) *Pipeline {
	if opts.CandidateCount < 1 {
		opts.CandidateCount = 10
	}
	if opts.SegmentConcurrency < 1 {
		opts.SegmentConcurrency = 4
	}
	return &Pipeline{
		pages:    pages,
		corpus:   corpus,
		segments: segments,
		recs:     recs,
		media:    media,
		cache:    cache,
		opts:     opts,
		logger:   logger,
	}
}

// Run computes the music timeline for one chapter. Page-source, corpus and
// segmentation failures are fatal; everything after is segment-local. A
// chapter where no segment resolves yields an empty timeline, not an error.
func (p *Pipeline) Run(ctx context.Context, chapterID string) ([]domain.MusicSegment, error) {
	if p.cache != nil {
		if timeline, ok := p.cache.GetTimeline(ctx, chapterID); ok {
			p.logger.Debug("Timeline served from cache", zap.String("chapter_id", chapterID))
			return timeline, nil
		}
	}

	pages, err := p.pages.GetChapterPages(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	document, err := p.corpus.Build(ctx, pages.PageURLs())
	if err != nil {
		return nil, err
	}

	moods, err := p.segments.Segment(ctx, document)
	if err != nil {
		return nil, err
	}

	results := make([]*domain.MusicSegment, len(moods.Result))
	fanout := pool.New().WithMaxGoroutines(p.opts.SegmentConcurrency)
	for i, seg := range moods.Result {
		i, seg := i, seg
		fanout.Go(func() {
			results[i] = p.resolveSegment(ctx, seg)
		})
	}
	fanout.Wait()

	timeline := make([]domain.MusicSegment, 0, len(results))
	for _, r := range results {
		if r != nil {
			timeline = append(timeline, *r)
		}
	}

	p.logger.Info("Chapter timeline assembled",
		zap.String("chapter_id", chapterID),
		zap.Int("segments", len(moods.Result)),
		zap.Int("resolved", len(timeline)),
	)

	if p.cache != nil && len(timeline) > 0 {
		p.cache.SetTimeline(ctx, chapterID, timeline)
	}
	return timeline, nil
}

// resolveSegment runs fetch → enrich → score → resolve for one segment.
// Every failure path logs and returns nil so sibling segments are never
// affected.
func (p *Pipeline) resolveSegment(ctx context.Context, seg domain.ScoredSegment) *domain.MusicSegment {
	log := p.logger.With(
		zap.Int("start", seg.Start),
		zap.Int("end", seg.End),
		zap.String("mood", string(seg.Mood)),
	)

	candidates, err := p.recs.Recommend(ctx, seg.Parameters, seg.Mood, p.opts.CandidateCount)
	if err != nil {
		log.Warn("Recommendation fetch failed, segment dropped", zap.Error(err))
		return nil
	}
	if len(candidates) == 0 {
		log.Warn("No recommendation candidates, segment dropped")
		return nil
	}

	winner, ok := p.pickWinner(ctx, seg, candidates, log)
	if !ok {
		return nil
	}

	resolved, err := p.media.Resolve(ctx, winner.ArtistNames(), winner.TrackTitle)
	if err != nil {
		log.Warn("Media resolution failed, segment dropped", zap.Error(err))
		return nil
	}

	return &domain.MusicSegment{
		Start:        seg.Start,
		End:          seg.End,
		Src:          resolved.URL,
		Title:        resolved.Title,
		Artist:       resolved.Artist,
		ThumbnailURL: resolved.ThumbnailURL,
	}
}

func (p *Pipeline) pickWinner(ctx context.Context, seg domain.ScoredSegment, candidates []domain.TrackCandidate, log *zap.Logger) (domain.TrackCandidate, bool) {
	if !p.opts.ScoringEnabled {
		return candidates[0], true
	}

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}

	features, err := p.recs.GetSongsFeatures(ctx, ids)
	if err != nil {
		log.Warn("Feature enrichment failed, segment dropped", zap.Error(err))
		return domain.TrackCandidate{}, false
	}
	if len(features) == 0 {
		log.Warn("No audio features resolved, segment dropped")
		return domain.TrackCandidate{}, false
	}

	ranked := scoring.Rank(candidates, features, seg.Parameters, seg.Mood)
	best := ranked[0]
	if best.Score <= 0 {
		log.Warn("No qualifying candidates after gating, segment dropped")
		return domain.TrackCandidate{}, false
	}

	log.Debug("Candidate selected",
		zap.String("track_id", best.Candidate.ID),
		zap.Float64("score", best.Score),
	)
	return best.Candidate, true
}
