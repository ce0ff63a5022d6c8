package recco

import "github.com/yomu/manga-bgm-go/internal/domain"

// Seed tracks bias the recommendation query toward a mood. Ids reference
// instrumental anime/game OST recordings known to the recommendation
// service. The table is process-wide constant configuration.
var moodSeedTracks = map[domain.Mood][]string{
	domain.MoodSerene: {
		"5R6jJiQXA866TsPs3xtaAK", // Nakama
		"6AFkv6rIVRusZNifR74Q7t", // Shingeki GT
		"3k637XK6FXDQy2kmn892z7", // Ochibabune
		"7aHAkZyl07HbAPNLGshCB9", // Suzume
		"5L9MJsGqzTRD09rSzHkCDy", // Home
	},
	domain.MoodTense: {
		"1x2uye0yok42ce8EjRZCil", // GATE OF STEINER
		"0szhcYBMoNDyH5UAriWUKN", // A Murder of Crows
		"4aB5opnzeKNjk4XIcSo3gn", // MORPHO
		"5jrIk6jLrhvscjgPH3b31Z", // Hyouri
		"1gVN2TuTQh2g9LE1wi6FTY", // Girei
	},
	domain.MoodMelancholic: {
		"5FUUGPgA1J5QCkdfnhfeCB", // Surechigau Kokoro to Kokoro
		"4XbWSZ1Kp5I5NescINVN6V", // Neath Dark Waters
		"2k00f8Wu5dp8ghDXUfcg6b",
		"2XnI5n569R4tAb9QvI0wkF",
	},
	domain.MoodAction: {
		"6ecrP5i79ognSteH3UYtfz", // Velt Leen
		"2NTrPafNIYUvqGaG5JcOjH", // REGINLEIF
		"7q2voLm7RirWQGgfk7W35m",
		"75NMYcYoqqwFH7ixp6cc2H", // Contact With You
		"5PjdpjCXjN48yvc4SIhIGi", // Five
	},
	domain.MoodRomantic: {
		"7FBMpSs6CNpzBm1Jbbgex0", // Uso to Honto
		"4WedBZTeFawYCBCgfj36iK", // Katawaredoki
		"0NZEHy9ihAmdldI94Q9pGk", // Kirameki
		"3W2fl3P4T8a034exQmfNoT", // Sparkle (instrumental)
	},
	domain.MoodWhimsical: {
		"62EGUED22fAnvQbS7gBxRi", // MISATO
		"5ASxwnS9Y1EwxBsA9qmOV8", // Sutekimeppou
		"1ngJEe74iWtd70uh6k0WTB", // Cycle
		"5d5W8gq0WNnPi2cVifNBp9", // Noisy Times
		"26lWYpgbcknITI0Fy1eZDs", // Sans.
	},
}

// defaultSeedTrack keeps the recommendation query functional when a mood
// has no seed list (unknown category or table gap).
const defaultSeedTrack = "5R6jJiQXA866TsPs3xtaAK"

// SeedsFor resolves the seed-track list for a mood, falling back to the
// default seed when the category is unrecognized or empty.
func SeedsFor(mood domain.Mood) []string {
	if seeds, ok := moodSeedTracks[mood]; ok && len(seeds) > 0 {
		return seeds
	}
	return []string{defaultSeedTrack}
}
