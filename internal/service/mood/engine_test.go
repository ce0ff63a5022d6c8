package mood

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/yomu/manga-bgm-go/internal/domain"
	pkgerrors "github.com/yomu/manga-bgm-go/pkg/errors"
	"go.uber.org/zap"
)

type stubClassifier struct {
	analyzeFn    func(ctx context.Context, document []byte) (*domain.PageAnalysisResult, error)
	segmentFn    func(ctx context.Context, analysis *domain.PageAnalysisResult) (*domain.SegmentationResult, error)
	synthesizeFn func(ctx context.Context, segments *domain.SegmentationResult) (*domain.MoodOutput, error)
}

func (s *stubClassifier) AnalyzePages(ctx context.Context, document []byte) (*domain.PageAnalysisResult, error) {
	return s.analyzeFn(ctx, document)
}

func (s *stubClassifier) SegmentMoods(ctx context.Context, analysis *domain.PageAnalysisResult) (*domain.SegmentationResult, error) {
	return s.segmentFn(ctx, analysis)
}

func (s *stubClassifier) SynthesizeParameters(ctx context.Context, segments *domain.SegmentationResult) (*domain.MoodOutput, error) {
	return s.synthesizeFn(ctx, segments)
}

func validAnalysis(pages int) *domain.PageAnalysisResult {
	result := &domain.PageAnalysisResult{
		Metadata: domain.PageAnalysisMetadata{
			TotalPages:     pages,
			ProcessingTime: 2.5,
		},
	}
	for i := 1; i <= pages; i++ {
		result.Pages = append(result.Pages, domain.PageAnalysis{
			PageNumber: i,
			VisualElements: domain.VisualElements{
				PanelLayout: "standard",
				Expressions: []string{"calm"},
				Movement:    "calm",
				Composition: domain.Composition{
					FocalPoint: "character",
					Depth:      "deep",
					Emphasis:   []string{"face"},
				},
			},
			EmotionalTone: []string{"peaceful"},
			Confidence:    0.9,
		})
	}
	return result
}

func validSegmentation() *domain.SegmentationResult {
	return &domain.SegmentationResult{
		Segments: []domain.MoodSegment{
			{
				Start: 1, End: 6, Mood: domain.MoodSerene,
				Emotions:   []string{"peaceful"},
				Intensity:  domain.IntensityLow,
				Transition: domain.SegmentTransition{Type: domain.TransitionGradual, NextMood: "tense"},
				Confidence: 0.9,
			},
			{
				Start: 7, End: 12, Mood: domain.MoodTense,
				Emotions:   []string{"dread"},
				Intensity:  domain.IntensityHigh,
				Transition: domain.SegmentTransition{Type: domain.TransitionNone},
				Confidence: 0.8,
			},
		},
		Metadata: domain.SegmentationMetadata{
			AverageSegmentLength: 6,
			TotalSegments:        2,
			ConfidenceAverage:    0.85,
		},
	}
}

func validParams() domain.AudioParameters {
	return domain.AudioParameters{
		Acousticness:     0.85,
		Danceability:     0.4,
		Energy:           0.15,
		Instrumentalness: 0.9,
		Liveness:         0.2,
		Loudness:         -15,
		Mode:             0,
		Speechiness:      0.05,
		Tempo:            110,
		Valence:          0.2,
	}
}

func TestSegmentNormalizesOrderAndOverlaps(t *testing.T) {
	outOfRange := validParams()
	outOfRange.Instrumentalness = 0.5
	outOfRange.Tempo = 220

	classifier := &stubClassifier{
		analyzeFn: func(_ context.Context, _ []byte) (*domain.PageAnalysisResult, error) {
			return validAnalysis(15), nil
		},
		segmentFn: func(_ context.Context, _ *domain.PageAnalysisResult) (*domain.SegmentationResult, error) {
			return validSegmentation(), nil
		},
		synthesizeFn: func(_ context.Context, _ *domain.SegmentationResult) (*domain.MoodOutput, error) {
			return &domain.MoodOutput{Result: []domain.ScoredSegment{
				{Start: 7, End: 12, Mood: domain.MoodTense, Confidence: 0.8, Parameters: validParams()},
				{Start: 1, End: 6, Mood: domain.MoodSerene, Confidence: 0.9, Parameters: outOfRange},
				{Start: 11, End: 15, Mood: domain.MoodAction, Confidence: 0.7, Parameters: validParams()},
			}}, nil
		},
	}

	engine := NewEngine(classifier, zap.NewNop())
	output, err := engine.Segment(context.Background(), []byte("doc"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(output.Result) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(output.Result))
	}

	lastEnd := 0
	for i, seg := range output.Result {
		if seg.Start <= lastEnd {
			t.Errorf("segment %d overlaps previous (start %d, prev end %d)", i, seg.Start, lastEnd)
		}
		if seg.End < seg.Start {
			t.Errorf("segment %d has inverted range %d-%d", i, seg.Start, seg.End)
		}
		lastEnd = seg.End

		p := seg.Parameters
		if p.Instrumentalness < 0.7 || p.Instrumentalness > 1 {
			t.Errorf("segment %d instrumentalness out of range: %v", i, p.Instrumentalness)
		}
		if p.Tempo < 60 || p.Tempo > 180 {
			t.Errorf("segment %d tempo out of range: %v", i, p.Tempo)
		}
	}

	if output.Result[0].Start != 1 || output.Result[1].Start != 7 {
		t.Errorf("segments not sorted by start: %+v", output.Result)
	}
}

func TestSegmentStageFailureAborts(t *testing.T) {
	boom := fmt.Errorf("model unavailable")
	classifier := &stubClassifier{
		analyzeFn: func(_ context.Context, _ []byte) (*domain.PageAnalysisResult, error) {
			return validAnalysis(12), nil
		},
		segmentFn: func(_ context.Context, _ *domain.PageAnalysisResult) (*domain.SegmentationResult, error) {
			return nil, boom
		},
		synthesizeFn: func(_ context.Context, _ *domain.SegmentationResult) (*domain.MoodOutput, error) {
			t.Fatal("stage 3 must not run after stage 2 failure")
			return nil, nil
		},
	}

	engine := NewEngine(classifier, zap.NewNop())
	_, err := engine.Segment(context.Background(), []byte("doc"))
	if err == nil {
		t.Fatal("expected error")
	}

	var stageErr *pkgerrors.StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("expected StageError, got %T: %v", err, err)
	}
	if stageErr.Stage != StageSegmentation {
		t.Fatalf("expected stage %q, got %q", StageSegmentation, stageErr.Stage)
	}
	if !errors.Is(err, boom) {
		t.Fatal("expected cause to be preserved")
	}
}

func TestSegmentStagesAreSequential(t *testing.T) {
	analysis := validAnalysis(12)
	segmentation := validSegmentation()

	classifier := &stubClassifier{
		analyzeFn: func(_ context.Context, document []byte) (*domain.PageAnalysisResult, error) {
			if string(document) != "doc" {
				t.Errorf("stage 1 received wrong document: %q", document)
			}
			return analysis, nil
		},
		segmentFn: func(_ context.Context, got *domain.PageAnalysisResult) (*domain.SegmentationResult, error) {
			if got != analysis {
				t.Error("stage 2 must receive stage 1 output")
			}
			return segmentation, nil
		},
		synthesizeFn: func(_ context.Context, got *domain.SegmentationResult) (*domain.MoodOutput, error) {
			if got != segmentation {
				t.Error("stage 3 must receive stage 2 output")
			}
			return &domain.MoodOutput{Result: []domain.ScoredSegment{
				{Start: 1, End: 12, Mood: domain.MoodSerene, Confidence: 0.9, Parameters: validParams()},
			}}, nil
		},
	}

	engine := NewEngine(classifier, zap.NewNop())
	if _, err := engine.Segment(context.Background(), []byte("doc")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
