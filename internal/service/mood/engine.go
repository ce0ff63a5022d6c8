// Package mood implements the three-stage segmentation engine: per-page
// analysis, segment grouping, and audio-parameter synthesis. Stages are
// strictly sequential; each stage's output is the next stage's only input.
package mood

import (
	"context"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/yomu/manga-bgm-go/internal/domain"
	pkgerrors "github.com/yomu/manga-bgm-go/pkg/errors"
	"go.uber.org/zap"
)

// Stage names carried by StageError for diagnostics.
const (
	StagePageAnalysis       = "page-analysis"
	StageSegmentation       = "segmentation"
	StageParameterSynthesis = "parameter-synthesis"
)

// StageClassifier is the structured-generation capability the engine
// sequences. Implemented by ai.Classifier; stubbed in tests.
type StageClassifier interface {
	AnalyzePages(ctx context.Context, document []byte) (*domain.PageAnalysisResult, error)
	SegmentMoods(ctx context.Context, analysis *domain.PageAnalysisResult) (*domain.SegmentationResult, error)
	SynthesizeParameters(ctx context.Context, segments *domain.SegmentationResult) (*domain.MoodOutput, error)
}

type Engine struct {
	classifier StageClassifier
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewEngine(classifier StageClassifier, logger *zap.Logger) *Engine {
	return &Engine{
		classifier: classifier,
		validate:   validator.New(),
		logger:     logger,
	}
}

// Segment runs all three stages against the chapter document. Any stage
// failure aborts the chapter request with a StageError; there is no retry.
// The returned segments are sorted by start page, non-overlapping, and
// carry parameters clamped into their valid ranges.
func (e *Engine) Segment(ctx context.Context, document []byte) (*domain.MoodOutput, error) {
	analysis, err := e.classifier.AnalyzePages(ctx, document)
	if err != nil {
		return nil, pkgerrors.NewStageError(StagePageAnalysis, "page analysis failed", err)
	}
	if err := e.validate.Struct(analysis); err != nil {
		return nil, pkgerrors.NewStageError(StagePageAnalysis, "page analysis schema violation", err)
	}
	e.logger.Info("Page analysis complete",
		zap.Int("pages", len(analysis.Pages)),
		zap.Ints("skipped", analysis.Metadata.SkipPages),
	)

	segments, err := e.classifier.SegmentMoods(ctx, analysis)
	if err != nil {
		return nil, pkgerrors.NewStageError(StageSegmentation, "segmentation failed", err)
	}
	if err := e.validate.Struct(segments); err != nil {
		return nil, pkgerrors.NewStageError(StageSegmentation, "segmentation schema violation", err)
	}
	e.logger.Info("Segmentation complete",
		zap.Int("segments", len(segments.Segments)),
		zap.Float64("avg_confidence", segments.Metadata.ConfidenceAverage),
	)

	output, err := e.classifier.SynthesizeParameters(ctx, segments)
	if err != nil {
		return nil, pkgerrors.NewStageError(StageParameterSynthesis, "parameter synthesis failed", err)
	}

	normalized := e.normalize(output)
	if err := e.validate.Struct(normalized); err != nil {
		return nil, pkgerrors.NewStageError(StageParameterSynthesis, "parameter synthesis schema violation", err)
	}
	e.logger.Info("Music parameters generated", zap.Int("segments", len(normalized.Result)))

	return normalized, nil
}

// normalize enforces the segment invariants the rest of the pipeline
// depends on: sorted by start page, non-overlapping page ranges, parameters
// inside their contract ranges. Classifier slip-ups are repaired rather
// than escalated so a usable chapter is never lost to a borderline value.
func (e *Engine) normalize(output *domain.MoodOutput) *domain.MoodOutput {
	segments := make([]domain.ScoredSegment, len(output.Result))
	copy(segments, output.Result)

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})

	result := make([]domain.ScoredSegment, 0, len(segments))
	lastEnd := 0
	for _, seg := range segments {
		if seg.Start <= lastEnd {
			e.logger.Warn("Overlapping segment clamped",
				zap.Int("start", seg.Start),
				zap.Int("prev_end", lastEnd),
			)
			seg.Start = lastEnd + 1
		}
		if seg.End < seg.Start {
			e.logger.Warn("Degenerate segment dropped",
				zap.Int("start", seg.Start),
				zap.Int("end", seg.End),
			)
			continue
		}

		clamped := seg.Parameters.Clamp()
		if clamped != seg.Parameters {
			e.logger.Warn("Audio parameters clamped into range",
				zap.Int("start", seg.Start),
				zap.String("mood", string(seg.Mood)),
			)
		}
		seg.Parameters = clamped

		result = append(result, seg)
		lastEnd = seg.End
	}

	return &domain.MoodOutput{Result: result}
}
