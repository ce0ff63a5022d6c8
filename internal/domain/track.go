package domain

import "github.com/yomu/manga-bgm-go/internal/util"

// AudioParameters are the normalized target values a segment's music should
// aim for. Ranges are fixed by the recommendation contract; Clamp forces a
// value set into them.
type AudioParameters struct {
	Acousticness     float64 `json:"acousticness" validate:"gte=0,lte=1"`
	Danceability     float64 `json:"danceability" validate:"gte=0,lte=0.5"`
	Energy           float64 `json:"energy" validate:"gte=0.1,lte=1"`
	Instrumentalness float64 `json:"instrumentalness" validate:"gte=0.7,lte=1"`
	Liveness         float64 `json:"liveness" validate:"gte=0.1,lte=0.5"`
	Loudness         float64 `json:"loudness" validate:"gte=-25,lte=-5"`
	Mode             int     `json:"mode" validate:"gte=0,lte=1"`
	Speechiness      float64 `json:"speechiness" validate:"gte=0,lte=0.2"`
	Tempo            float64 `json:"tempo" validate:"gte=60,lte=180"`
	Valence          float64 `json:"valence" validate:"gte=0,lte=1"`
}

// Clamp returns a copy with every field forced into its valid range.
func (p AudioParameters) Clamp() AudioParameters {
	return AudioParameters{
		Acousticness:     util.Clamp(p.Acousticness, 0, 1),
		Danceability:     util.Clamp(p.Danceability, 0, 0.5),
		Energy:           util.Clamp(p.Energy, 0.1, 1),
		Instrumentalness: util.Clamp(p.Instrumentalness, 0.7, 1),
		Liveness:         util.Clamp(p.Liveness, 0.1, 0.5),
		Loudness:         util.Clamp(p.Loudness, -25, -5),
		Mode:             int(util.Clamp(float64(p.Mode), 0, 1)),
		Speechiness:      util.Clamp(p.Speechiness, 0, 0.2),
		Tempo:            util.Clamp(p.Tempo, 60, 180),
		Valence:          util.Clamp(p.Valence, 0, 1),
	}
}

// TrackArtist is an artist reference inside a track payload.
type TrackArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Href string `json:"href"`
}

// TrackCandidate is one track returned by the recommendation service.
type TrackCandidate struct {
	ID         string        `json:"id"`
	TrackTitle string        `json:"trackTitle"`
	Artists    []TrackArtist `json:"artists"`
	DurationMs int           `json:"durationMs"`
	Href       string        `json:"href"`
	Popularity int           `json:"popularity" validate:"gte=0"`
}

// ArtistNames joins candidate artists for display and search queries.
func (t TrackCandidate) ArtistNames() string {
	names := ""
	for i, a := range t.Artists {
		if i > 0 {
			names += ", "
		}
		names += a.Name
	}
	return names
}

// AudioFeatures are the measured values for a track, keyed by track id.
type AudioFeatures struct {
	ID               string  `json:"id"`
	Acousticness     float64 `json:"acousticness"`
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Loudness         float64 `json:"loudness"`
	Speechiness      float64 `json:"speechiness"`
	Tempo            float64 `json:"tempo"`
	Valence          float64 `json:"valence"`
}

// EnrichedAudioFeatures carries the track title alongside its features so
// downstream search queries do not need a second metadata lookup.
type EnrichedAudioFeatures struct {
	AudioFeatures
	Title string `json:"title"`
}

// ScoredRecommendation ranks a candidate against a segment's parameters.
type ScoredRecommendation struct {
	Candidate TrackCandidate
	Features  EnrichedAudioFeatures
	Score     float64
}

// ResolvedTrack binds a winning recommendation to a playable media URL.
type ResolvedTrack struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// MusicSegment is the final output unit: a page range bound to a playable
// track. The playback component crossfades between these as the reader
// turns pages.
type MusicSegment struct {
	Start        int    `json:"start"`
	End          int    `json:"end"`
	Src          string `json:"src"`
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	ThumbnailURL string `json:"thumbnailUrl"`
}
