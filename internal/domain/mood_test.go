package domain

import "testing"

func TestParseMood(t *testing.T) {
	for _, m := range Moods() {
		parsed, err := ParseMood(string(m))
		if err != nil {
			t.Errorf("ParseMood(%q) failed: %v", m, err)
		}
		if parsed != m {
			t.Errorf("ParseMood(%q) = %q", m, parsed)
		}
	}

	if _, err := ParseMood("unknown-category"); err == nil {
		t.Error("expected error for unknown mood")
	}
	if Mood("UNKNOWN").IsValid() {
		t.Error("expected unknown mood to be invalid")
	}
}

func TestAudioParametersClamp(t *testing.T) {
	p := AudioParameters{
		Acousticness:     1.4,
		Danceability:     0.9,
		Energy:           0,
		Instrumentalness: 0.2,
		Liveness:         0.7,
		Loudness:         -40,
		Mode:             3,
		Speechiness:      0.5,
		Tempo:            240,
		Valence:          -0.3,
	}.Clamp()

	want := AudioParameters{
		Acousticness:     1,
		Danceability:     0.5,
		Energy:           0.1,
		Instrumentalness: 0.7,
		Liveness:         0.5,
		Loudness:         -25,
		Mode:             1,
		Speechiness:      0.2,
		Tempo:            180,
		Valence:          0,
	}
	if p != want {
		t.Fatalf("Clamp() = %+v, want %+v", p, want)
	}
}

func TestPageURLs(t *testing.T) {
	pages := ChapterPages{
		ChapterID: "ch1",
		BaseURL:   "https://uploads.example",
		Hash:      "abc",
		Filenames: []string{"1.png", "2.png"},
	}
	urls := pages.PageURLs()
	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %d", len(urls))
	}
	if urls[1] != "https://uploads.example/data/abc/2.png" {
		t.Fatalf("unexpected page URL %q", urls[1])
	}
}
