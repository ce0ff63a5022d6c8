// Package scoring ranks candidate tracks against a segment's target audio
// parameters using mood-specific weighted distance scoring. Everything here
// is pure: same inputs, same score.
package scoring

import (
	"math"
	"sort"

	"github.com/yomu/manga-bgm-go/internal/domain"
)

// scoreFeature normalizes the measured value and the target into [0,1]
// over the feature's expected window and converts their distance to a
// score: 1 is a perfect match, 0 is maximal distance. The weight is
// applied last. target < 0 means "no explicit target, use the ideal".
func scoreFeature(value float64, w FeatureWeight, target float64) float64 {
	if target < 0 {
		target = w.Ideal
	}

	span := w.Max - w.Min
	if span == 0 {
		return w.Weight
	}

	normalizedValue := (value - w.Min) / span
	normalizedTarget := (target - w.Min) / span

	distance := math.Min(math.Abs(normalizedValue-normalizedTarget), 1)
	return (1 - distance) * w.Weight
}

// Score rates a candidate's measured features against the requested
// parameters for a mood. The result is a scalar in [0,1]. A candidate
// below the mood's instrumentalness gate scores exactly 0 regardless of
// every other feature: it does not sound instrumental, so it is out.
// Unknown moods score 0 for every candidate.
func Score(features domain.AudioFeatures, params domain.AudioParameters, mood domain.Mood) float64 {
	weights, ok := WeightsFor(mood)
	if !ok {
		return 0
	}

	if features.Instrumentalness < weights.Instrumentalness.MinThreshold {
		return 0
	}

	totalScore := scoreFeature(features.Acousticness, weights.Acousticness, params.Acousticness) +
		scoreFeature(features.Danceability, weights.Danceability, params.Danceability) +
		scoreFeature(features.Energy, weights.Energy, params.Energy) +
		scoreFeature(features.Instrumentalness, weights.Instrumentalness, -1) +
		scoreFeature(features.Tempo, weights.Tempo, params.Tempo) +
		scoreFeature(features.Valence, weights.Valence, params.Valence)

	totalWeight := weights.Acousticness.Weight +
		weights.Danceability.Weight +
		weights.Energy.Weight +
		weights.Instrumentalness.Weight +
		weights.Tempo.Weight +
		weights.Valence.Weight

	return totalScore / totalWeight
}

// Rank scores every enriched candidate and orders them best-first. The
// sort is stable, so equally scored candidates keep the service's order.
func Rank(candidates []domain.TrackCandidate, features []domain.EnrichedAudioFeatures, params domain.AudioParameters, mood domain.Mood) []domain.ScoredRecommendation {
	byID := make(map[string]domain.TrackCandidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	ranked := make([]domain.ScoredRecommendation, 0, len(features))
	for _, f := range features {
		candidate, ok := byID[f.ID]
		if !ok {
			candidate = domain.TrackCandidate{ID: f.ID, TrackTitle: f.Title}
		}
		ranked = append(ranked, domain.ScoredRecommendation{
			Candidate: candidate,
			Features:  f,
			Score:     Score(f.AudioFeatures, params, mood),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
