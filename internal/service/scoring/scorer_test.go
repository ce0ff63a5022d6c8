package scoring

import (
	"math"
	"testing"

	"github.com/yomu/manga-bgm-go/internal/domain"
)

func sereneIdealFeatures() domain.AudioFeatures {
	w, _ := WeightsFor(domain.MoodSerene)
	return domain.AudioFeatures{
		ID:               "ideal",
		Acousticness:     w.Acousticness.Ideal,
		Danceability:     w.Danceability.Ideal,
		Energy:           w.Energy.Ideal,
		Instrumentalness: w.Instrumentalness.Ideal,
		Tempo:            w.Tempo.Ideal,
		Valence:          w.Valence.Ideal,
	}
}

func sereneIdealParams() domain.AudioParameters {
	w, _ := WeightsFor(domain.MoodSerene)
	return domain.AudioParameters{
		Acousticness:     w.Acousticness.Ideal,
		Danceability:     w.Danceability.Ideal,
		Energy:           w.Energy.Ideal,
		Instrumentalness: 0.9,
		Liveness:         0.2,
		Loudness:         -15,
		Mode:             0,
		Speechiness:      0.05,
		Tempo:            w.Tempo.Ideal,
		Valence:          w.Valence.Ideal,
	}
}

func TestScoreGatesLowInstrumentalness(t *testing.T) {
	features := sereneIdealFeatures()
	features.Instrumentalness = 0.5 // below the 0.8 gate

	got := Score(features, sereneIdealParams(), domain.MoodSerene)
	if got != 0 {
		t.Fatalf("expected gated candidate to score 0, got %v", got)
	}
}

func TestScoreIdealMatch(t *testing.T) {
	got := Score(sereneIdealFeatures(), sereneIdealParams(), domain.MoodSerene)
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected perfect match to score 1.0, got %v", got)
	}
}

func TestScoreFeatureComponentsAtIdeal(t *testing.T) {
	w, _ := WeightsFor(domain.MoodMelancholic)
	for name, fw := range map[string]FeatureWeight{
		"acousticness":     w.Acousticness,
		"danceability":     w.Danceability,
		"energy":           w.Energy,
		"instrumentalness": w.Instrumentalness,
		"tempo":            w.Tempo,
		"valence":          w.Valence,
	} {
		got := scoreFeature(fw.Ideal, fw, -1)
		if math.Abs(got-fw.Weight) > 1e-9 {
			t.Errorf("%s: expected unweighted component 1.0 (weighted %v), got %v", name, fw.Weight, got)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	features := sereneIdealFeatures()
	features.Energy = 0.22
	features.Tempo = 131
	params := sereneIdealParams()

	first := Score(features, params, domain.MoodSerene)
	for i := 0; i < 10; i++ {
		if got := Score(features, params, domain.MoodSerene); got != first {
			t.Fatalf("score not deterministic: %v != %v", got, first)
		}
	}
}

func TestScoreUnknownMood(t *testing.T) {
	if got := Score(sereneIdealFeatures(), sereneIdealParams(), domain.Mood("unknown-category")); got != 0 {
		t.Fatalf("expected unknown mood to score 0, got %v", got)
	}
}

func TestRankOrdersBestFirst(t *testing.T) {
	candidates := []domain.TrackCandidate{
		{ID: "far", TrackTitle: "Far"},
		{ID: "near", TrackTitle: "Near"},
	}

	near := sereneIdealFeatures()
	near.ID = "near"

	far := sereneIdealFeatures()
	far.ID = "far"
	far.Energy = 0.25
	far.Valence = 0.35

	features := []domain.EnrichedAudioFeatures{
		{AudioFeatures: far, Title: "Far"},
		{AudioFeatures: near, Title: "Near"},
	}

	ranked := Rank(candidates, features, sereneIdealParams(), domain.MoodSerene)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked candidates, got %d", len(ranked))
	}
	if ranked[0].Candidate.ID != "near" {
		t.Fatalf("expected closest candidate first, got %q", ranked[0].Candidate.ID)
	}
	if ranked[0].Score <= ranked[1].Score {
		t.Fatalf("expected descending scores, got %v then %v", ranked[0].Score, ranked[1].Score)
	}
}
