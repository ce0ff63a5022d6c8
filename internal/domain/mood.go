package domain

import "fmt"

// Mood classifies the dominant emotional tone of a chapter segment.
type Mood string

const (
	MoodSerene      Mood = "serene"
	MoodTense       Mood = "tense"
	MoodMelancholic Mood = "melancholic"
	MoodAction      Mood = "action"
	MoodRomantic    Mood = "romantic"
	MoodWhimsical   Mood = "whimsical"
)

var allMoods = []Mood{
	MoodSerene,
	MoodTense,
	MoodMelancholic,
	MoodAction,
	MoodRomantic,
	MoodWhimsical,
}

// Moods returns every known mood category.
func Moods() []Mood {
	out := make([]Mood, len(allMoods))
	copy(out, allMoods)
	return out
}

// ParseMood validates a classifier-supplied mood string.
func ParseMood(s string) (Mood, error) {
	for _, m := range allMoods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mood category: %q", s)
}

// IsValid reports whether the mood is one of the known categories.
func (m Mood) IsValid() bool {
	_, err := ParseMood(string(m))
	return err == nil
}

// Intensity is the emotional intensity tier of a segment.
type Intensity string

const (
	IntensityLow     Intensity = "low"
	IntensityMedium  Intensity = "medium"
	IntensityHigh    Intensity = "high"
	IntensityExtreme Intensity = "extreme"
)

// TransitionType describes how one segment hands over to the next.
type TransitionType string

const (
	TransitionGradual TransitionType = "gradual"
	TransitionSudden  TransitionType = "sudden"
	TransitionNone    TransitionType = "none"
)
