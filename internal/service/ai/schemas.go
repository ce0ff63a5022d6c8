package ai

import "google.golang.org/genai"

// Response schemas for the three segmentation stages. These mirror the
// domain types in internal/domain exactly; the classifier unmarshals the
// provider output straight into them.

var moodEnum = []string{"serene", "tense", "melancholic", "action", "romantic", "whimsical"}

func stringArray() *genai.Schema {
	return &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}
}

func number(min, max float64) *genai.Schema {
	return &genai.Schema{Type: genai.TypeNumber, Minimum: &min, Maximum: &max}
}

// PageAnalysisSchema constrains stage-1 output.
func PageAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"pages", "metadata"},
		Properties: map[string]*genai.Schema{
			"pages": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:     genai.TypeObject,
					Required: []string{"pageNumber", "visualElements", "emotionalTone", "confidence"},
					Properties: map[string]*genai.Schema{
						"pageNumber": {Type: genai.TypeInteger},
						"visualElements": {
							Type:     genai.TypeObject,
							Required: []string{"panelLayout", "expressions", "movement", "composition"},
							Properties: map[string]*genai.Schema{
								"panelLayout": {
									Type: genai.TypeString,
									Enum: []string{"standard", "dynamic", "scattered", "focused", "overlapping", "full-page"},
								},
								"expressions": stringArray(),
								"movement": {
									Type: genai.TypeString,
									Enum: []string{"static", "flowing", "intense", "chaotic", "calm"},
								},
								"composition": {
									Type:     genai.TypeObject,
									Required: []string{"focalPoint", "depth", "emphasis"},
									Properties: map[string]*genai.Schema{
										"focalPoint": {Type: genai.TypeString},
										"depth": {
											Type: genai.TypeString,
											Enum: []string{"flat", "shallow", "deep"},
										},
										"emphasis": stringArray(),
									},
								},
							},
						},
						"textElements": {
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"dialogue":     stringArray(),
								"narration":    stringArray(),
								"soundEffects": stringArray(),
							},
						},
						"emotionalTone": stringArray(),
						"confidence":    number(0, 1),
					},
				},
			},
			"metadata": {
				Type:     genai.TypeObject,
				Required: []string{"totalPages", "processingTime"},
				Properties: map[string]*genai.Schema{
					"totalPages": {Type: genai.TypeInteger},
					"skipPages": {
						Type:  genai.TypeArray,
						Items: &genai.Schema{Type: genai.TypeInteger},
					},
					"processingTime": {Type: genai.TypeNumber},
				},
			},
		},
	}
}

// SegmentationSchema constrains stage-2 output.
func SegmentationSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"segments", "metadata"},
		Properties: map[string]*genai.Schema{
			"segments": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:     genai.TypeObject,
					Required: []string{"start", "end", "mood", "emotions", "intensity", "transition", "confidence"},
					Properties: map[string]*genai.Schema{
						"start":    {Type: genai.TypeInteger},
						"end":      {Type: genai.TypeInteger},
						"mood":     {Type: genai.TypeString, Enum: moodEnum},
						"emotions": stringArray(),
						"intensity": {
							Type: genai.TypeString,
							Enum: []string{"low", "medium", "high", "extreme"},
						},
						"transition": {
							Type:     genai.TypeObject,
							Required: []string{"type"},
							Properties: map[string]*genai.Schema{
								"type": {
									Type: genai.TypeString,
									Enum: []string{"gradual", "sudden", "none"},
								},
								"nextMood": {Type: genai.TypeString},
							},
						},
						"confidence": number(0, 1),
					},
				},
			},
			"metadata": {
				Type:     genai.TypeObject,
				Required: []string{"averageSegmentLength", "totalSegments", "confidenceAverage"},
				Properties: map[string]*genai.Schema{
					"averageSegmentLength": {Type: genai.TypeNumber},
					"totalSegments":        {Type: genai.TypeInteger},
					"confidenceAverage":    number(0, 1),
				},
			},
		},
	}
}

// ParameterSynthesisSchema constrains stage-3 output.
func ParameterSynthesisSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"result"},
		Properties: map[string]*genai.Schema{
			"result": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:     genai.TypeObject,
					Required: []string{"start", "end", "mood", "confidence", "parameters"},
					Properties: map[string]*genai.Schema{
						"start":      {Type: genai.TypeInteger},
						"end":        {Type: genai.TypeInteger},
						"mood":       {Type: genai.TypeString, Enum: moodEnum},
						"confidence": number(0, 1),
						"parameters": {
							Type: genai.TypeObject,
							Required: []string{
								"acousticness", "danceability", "energy", "instrumentalness",
								"liveness", "loudness", "mode", "speechiness", "tempo", "valence",
							},
							Properties: map[string]*genai.Schema{
								"acousticness":     number(0, 1),
								"danceability":     number(0, 0.5),
								"energy":           number(0.1, 1),
								"instrumentalness": number(0.7, 1),
								"liveness":         number(0.1, 0.5),
								"loudness":         number(-25, -5),
								"mode":             {Type: genai.TypeInteger},
								"speechiness":      number(0, 0.2),
								"tempo":            number(60, 180),
								"valence":          number(0, 1),
							},
						},
					},
				},
			},
		},
	}
}
