// Package prompt holds the system instructions for the three segmentation
// stages. Each prompt pairs with a response schema in service/ai.
package prompt

// PageAnalysisSystem drives stage 1: per-page visual and textual analysis
// of the chapter document.
const PageAnalysisSystem = `Analyze manga pages for visual storytelling elements and emotional content.
Focus on:
- Panel layout and composition
- Character expressions and body language
- Scene composition and depth
- Movement and action flow
- Text integration and context

Skip non-story pages (title, credits, ads).

Provide for each page:
1. Page number
2. Visual elements analysis
   - Panel layout type
   - Key expressions
   - Movement quality
   - Compositional focus
3. Text elements
   - Important dialogue
   - Narrative text
   - Sound effects
4. Emotional tone keywords
5. Confidence score`

// SegmentationSystem drives stage 2: grouping analyzed pages into
// emotionally coherent segments.
const SegmentationSystem = `Create emotionally coherent segments from manga page analysis.
Requirements:
- Minimum 6 pages per segment unless a strong, clearly-signaled mood shift occurs
- Minimize the total number of segments
- Clear emotional progression
- Smooth transitions between segments unless the narrative justifies an abrupt shift (climax, twist)
- Consistent mood within segments
- Mood must be one of: serene, tense, melancholic, action, romantic, whimsical

For each segment provide:
1. Page range (start-end)
2. Primary mood
3. Emotional undertones
4. Intensity level
5. Transition type to next segment
6. Confidence score`

// ParameterSynthesisSystem drives stage 3: converting segments into target
// audio parameters.
const ParameterSynthesisSystem = `Generate music parameters for manga segments.
Follow these constraints:
- acousticness: 0.0-1.0 (organic/synthetic)
- danceability: 0.0-0.5 (narrative focus)
- energy: 0.1-1.0 (intensity, scaled to the segment's intensity level)
- instrumentalness: 0.7-1.0 (no vocals)
- liveness: 0.1-0.5 (studio quality)
- loudness: -25.0 to -5.0 (volume)
- mode: 0=minor, 1=major (emotional tone)
- speechiness: 0.0-0.2 (no speaking)
- tempo: 60-180 BPM (pacing, scaled to mood intensity)
- valence: 0.0-1.0 (positivity)
Parameters must be consistent with each segment's mood category.`
