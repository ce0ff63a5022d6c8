package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yomu/manga-bgm-go/internal/domain"
	"github.com/yomu/manga-bgm-go/internal/prompt"
	"go.uber.org/zap"
)

// Classifier runs the three schema-constrained generation calls the
// segmentation engine sequences. The primary provider handles all stages;
// the fallback (when configured) covers the two text-only stages.
type Classifier struct {
	primary  JSONProvider
	fallback JSONProvider
	logger   *zap.Logger
}

func NewClassifier(primary, fallback JSONProvider, logger *zap.Logger) *Classifier {
	return &Classifier{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// AnalyzePages performs stage 1 against the assembled chapter document.
// Document input rules out the text-only fallback provider.
func (c *Classifier) AnalyzePages(ctx context.Context, document []byte) (*domain.PageAnalysisResult, error) {
	raw, err := c.primary.Generate(ctx, GenerateRequest{
		System:       prompt.PageAnalysisSystem,
		Text:         "Analyze the visual and textual elements of these pages.",
		Document:     document,
		DocumentMIME: "application/pdf",
		Schema:       PageAnalysisSchema(),
	})
	if err != nil {
		return nil, err
	}

	var result domain.PageAnalysisResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("decode page analysis: %w", err)
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("page analysis returned no story pages")
	}
	return &result, nil
}

// SegmentMoods performs stage 2 on the stage-1 output.
func (c *Classifier) SegmentMoods(ctx context.Context, analysis *domain.PageAnalysisResult) (*domain.SegmentationResult, error) {
	input, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("encode page analysis: %w", err)
	}

	raw, err := c.generateWithFallback(ctx, GenerateRequest{
		System: prompt.SegmentationSystem,
		Text:   string(input),
		Schema: SegmentationSchema(),
	})
	if err != nil {
		return nil, err
	}

	var result domain.SegmentationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("decode segmentation: %w", err)
	}
	if len(result.Segments) == 0 {
		return nil, fmt.Errorf("segmentation returned no segments")
	}
	return &result, nil
}

// SynthesizeParameters performs stage 3 on the stage-2 output.
func (c *Classifier) SynthesizeParameters(ctx context.Context, segments *domain.SegmentationResult) (*domain.MoodOutput, error) {
	input, err := json.Marshal(segments)
	if err != nil {
		return nil, fmt.Errorf("encode segmentation: %w", err)
	}

	raw, err := c.generateWithFallback(ctx, GenerateRequest{
		System: prompt.ParameterSynthesisSystem,
		Text:   string(input),
		Schema: ParameterSynthesisSchema(),
	})
	if err != nil {
		return nil, err
	}

	var result domain.MoodOutput
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("decode parameter synthesis: %w", err)
	}
	if len(result.Result) == 0 {
		return nil, fmt.Errorf("parameter synthesis returned no segments")
	}
	return &result, nil
}

func (c *Classifier) generateWithFallback(ctx context.Context, req GenerateRequest) (string, error) {
	raw, err := c.primary.Generate(ctx, req)
	if err == nil {
		return raw, nil
	}
	if c.fallback == nil {
		return "", err
	}

	c.logger.Warn("Primary provider failed, trying fallback",
		zap.String("primary", c.primary.Name()),
		zap.String("fallback", c.fallback.Name()),
		zap.Error(err),
	)
	return c.fallback.Generate(ctx, req)
}
