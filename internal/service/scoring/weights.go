package scoring

import "github.com/yomu/manga-bgm-go/internal/domain"

// FeatureWeight bounds one audio feature for a mood: its importance, the
// expected [Min, Max] window used for normalization, and the ideal value
// used when the request carries no explicit target. MinThreshold, when
// non-zero, is a hard gate: a measured value below it disqualifies the
// candidate outright.
type FeatureWeight struct {
	Weight       float64
	Min          float64
	Max          float64
	Ideal        float64
	MinThreshold float64
}

// MoodWeights covers the features relevant to ranking. Liveness, loudness,
// mode and speechiness are request-only parameters and do not participate
// in scoring.
type MoodWeights struct {
	Acousticness     FeatureWeight
	Danceability     FeatureWeight
	Energy           FeatureWeight
	Instrumentalness FeatureWeight
	Tempo            FeatureWeight
	Valence          FeatureWeight
}

// Weights and ranges derived from seed-track feature analysis.
var moodWeights = map[domain.Mood]MoodWeights{
	domain.MoodSerene: {
		Acousticness:     FeatureWeight{Weight: 2.0, Min: 0.7, Max: 0.98, Ideal: 0.85},
		Danceability:     FeatureWeight{Weight: 0.5, Min: 0.3, Max: 0.55, Ideal: 0.4},
		Energy:           FeatureWeight{Weight: 2.0, Min: 0.1, Max: 0.25, Ideal: 0.15},
		Instrumentalness: FeatureWeight{Weight: 3.0, Min: 0.8, Max: 1.0, Ideal: 0.9, MinThreshold: 0.8},
		Tempo:            FeatureWeight{Weight: 0.5, Min: 85, Max: 140, Ideal: 110},
		Valence:          FeatureWeight{Weight: 1.0, Min: 0.1, Max: 0.35, Ideal: 0.2},
	},
	domain.MoodTense: {
		Acousticness:     FeatureWeight{Weight: 1.0, Min: 0.0, Max: 0.9, Ideal: 0.3},
		Danceability:     FeatureWeight{Weight: 1.0, Min: 0.2, Max: 0.45, Ideal: 0.35},
		Energy:           FeatureWeight{Weight: 2.0, Min: 0.3, Max: 0.6, Ideal: 0.45},
		Instrumentalness: FeatureWeight{Weight: 3.0, Min: 0.8, Max: 1.0, Ideal: 0.9, MinThreshold: 0.8},
		Tempo:            FeatureWeight{Weight: 1.5, Min: 80, Max: 172, Ideal: 130},
		Valence:          FeatureWeight{Weight: 1.5, Min: 0.06, Max: 0.25, Ideal: 0.15},
	},
	domain.MoodMelancholic: {
		Acousticness:     FeatureWeight{Weight: 2.0, Min: 0.85, Max: 1.0, Ideal: 0.95},
		Danceability:     FeatureWeight{Weight: 1.0, Min: 0.2, Max: 0.5, Ideal: 0.3},
		Energy:           FeatureWeight{Weight: 2.0, Min: 0.02, Max: 0.15, Ideal: 0.08},
		Instrumentalness: FeatureWeight{Weight: 3.0, Min: 0.8, Max: 1.0, Ideal: 0.9, MinThreshold: 0.8},
		Tempo:            FeatureWeight{Weight: 1.0, Min: 65, Max: 97, Ideal: 80},
		Valence:          FeatureWeight{Weight: 2.0, Min: 0.04, Max: 0.3, Ideal: 0.15},
	},
	domain.MoodAction: {
		Acousticness:     FeatureWeight{Weight: 2.0, Min: 0.0, Max: 0.1, Ideal: 0.002},
		Danceability:     FeatureWeight{Weight: 1.0, Min: 0.35, Max: 0.6, Ideal: 0.45},
		Energy:           FeatureWeight{Weight: 2.0, Min: 0.65, Max: 0.85, Ideal: 0.75},
		Instrumentalness: FeatureWeight{Weight: 3.0, Min: 0.8, Max: 1.0, Ideal: 0.9, MinThreshold: 0.8},
		Tempo:            FeatureWeight{Weight: 1.5, Min: 130, Max: 155, Ideal: 145},
		Valence:          FeatureWeight{Weight: 1.0, Min: 0.03, Max: 0.9, Ideal: 0.4},
	},
	domain.MoodRomantic: {
		Acousticness:     FeatureWeight{Weight: 2.0, Min: 0.9, Max: 1.0, Ideal: 0.95},
		Danceability:     FeatureWeight{Weight: 1.0, Min: 0.25, Max: 0.55, Ideal: 0.35},
		Energy:           FeatureWeight{Weight: 2.0, Min: 0.08, Max: 0.3, Ideal: 0.2},
		Instrumentalness: FeatureWeight{Weight: 3.0, Min: 0.8, Max: 1.0, Ideal: 0.9, MinThreshold: 0.8},
		Tempo:            FeatureWeight{Weight: 0.5, Min: 70, Max: 175, Ideal: 120},
		Valence:          FeatureWeight{Weight: 1.5, Min: 0.15, Max: 0.3, Ideal: 0.22},
	},
	domain.MoodWhimsical: {
		Acousticness:     FeatureWeight{Weight: 1.0, Min: 0.0, Max: 1.0, Ideal: 0.5},
		Danceability:     FeatureWeight{Weight: 1.5, Min: 0.5, Max: 0.85, Ideal: 0.65},
		Energy:           FeatureWeight{Weight: 1.5, Min: 0.25, Max: 0.85, Ideal: 0.5},
		Instrumentalness: FeatureWeight{Weight: 3.0, Min: 0.8, Max: 1.0, Ideal: 0.8, MinThreshold: 0.8},
		Tempo:            FeatureWeight{Weight: 1.0, Min: 85, Max: 150, Ideal: 120},
		Valence:          FeatureWeight{Weight: 2.0, Min: 0.2, Max: 0.9, Ideal: 0.7},
	},
}

// WeightsFor returns the weight profile for a mood.
func WeightsFor(mood domain.Mood) (MoodWeights, bool) {
	w, ok := moodWeights[mood]
	return w, ok
}
