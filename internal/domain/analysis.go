package domain

// Composition captures where a page directs the reader's eye.
type Composition struct {
	FocalPoint string   `json:"focalPoint"`
	Depth      string   `json:"depth" validate:"oneof=flat shallow deep"`
	Emphasis   []string `json:"emphasis"`
}

// VisualElements is the per-page visual breakdown produced by stage 1.
type VisualElements struct {
	PanelLayout string      `json:"panelLayout" validate:"oneof=standard dynamic scattered focused overlapping full-page"`
	Expressions []string    `json:"expressions"`
	Movement    string      `json:"movement" validate:"oneof=static flowing intense chaotic calm"`
	Composition Composition `json:"composition"`
}

// TextElements holds the readable content found on a page. All fields are
// optional; silent pages have none.
type TextElements struct {
	Dialogue     []string `json:"dialogue,omitempty"`
	Narration    []string `json:"narration,omitempty"`
	SoundEffects []string `json:"soundEffects,omitempty"`
}

// PageAnalysis is the stage-1 result for a single story page. Non-story
// pages (title, credits, ads) are omitted entirely.
type PageAnalysis struct {
	PageNumber     int            `json:"pageNumber" validate:"gt=0"`
	VisualElements VisualElements `json:"visualElements"`
	TextElements   *TextElements  `json:"textElements,omitempty"`
	EmotionalTone  []string       `json:"emotionalTone"`
	Confidence     float64        `json:"confidence" validate:"gte=0,lte=1"`
}

// PageAnalysisMetadata aggregates stage-1 bookkeeping.
type PageAnalysisMetadata struct {
	TotalPages     int     `json:"totalPages" validate:"gt=0"`
	SkipPages      []int   `json:"skipPages,omitempty"`
	ProcessingTime float64 `json:"processingTime"`
}

// PageAnalysisResult is the full stage-1 output.
type PageAnalysisResult struct {
	Pages    []PageAnalysis       `json:"pages" validate:"min=1,dive"`
	Metadata PageAnalysisMetadata `json:"metadata"`
}

// SegmentTransition describes the handover into the following segment.
type SegmentTransition struct {
	Type     TransitionType `json:"type" validate:"oneof=gradual sudden none"`
	NextMood string         `json:"nextMood,omitempty"`
}

// MoodSegment is a contiguous, emotionally coherent page range. Pages are
// 1-indexed and the range is inclusive.
type MoodSegment struct {
	Start      int               `json:"start" validate:"gt=0"`
	End        int               `json:"end" validate:"gt=0,gtefield=Start"`
	Mood       Mood              `json:"mood"`
	Emotions   []string          `json:"emotions"`
	Intensity  Intensity         `json:"intensity" validate:"oneof=low medium high extreme"`
	Transition SegmentTransition `json:"transition"`
	Confidence float64           `json:"confidence" validate:"gte=0,lte=1"`
}

// SegmentationMetadata aggregates stage-2 bookkeeping.
type SegmentationMetadata struct {
	AverageSegmentLength float64 `json:"averageSegmentLength"`
	TotalSegments        int     `json:"totalSegments"`
	ConfidenceAverage    float64 `json:"confidenceAverage" validate:"gte=0,lte=1"`
}

// SegmentationResult is the full stage-2 output.
type SegmentationResult struct {
	Segments []MoodSegment        `json:"segments" validate:"min=1,dive"`
	Metadata SegmentationMetadata `json:"metadata"`
}

// ScoredSegment pairs a mood segment with its synthesized audio parameters.
// One per segment is produced by stage 3.
type ScoredSegment struct {
	Start      int             `json:"start" validate:"gt=0"`
	End        int             `json:"end" validate:"gt=0"`
	Mood       Mood            `json:"mood"`
	Confidence float64         `json:"confidence" validate:"gte=0,lte=1"`
	Parameters AudioParameters `json:"parameters"`
}

// MoodOutput is the final segmentation-engine output consumed by the
// per-segment recommendation fan-out.
type MoodOutput struct {
	Result []ScoredSegment `json:"result" validate:"min=1,dive"`
}
