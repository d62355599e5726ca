package narrative

import "strings"

// EmotionLabel is the coarse emotion classification of a comment.
type EmotionLabel string

const (
	EmotionPositive EmotionLabel = "positivo"
	EmotionNegative EmotionLabel = "negativo"
	EmotionNeutral  EmotionLabel = "neutral"
)

// Default emotion vocabularies, matched as lowercase substrings.
var (
	DefaultPositiveTerms = []string{"apoyo", "excelente", "gracias", "fuerte", "vencer"}
	DefaultNegativeTerms = []string{"corrupción", "protesta", "crisis", "bloqueo", "injusto"}
)

// ClassifyEmotion scores text by positive-term occurrences minus negative-term
// occurrences. The returned weight is 1 for a non-neutral label and 0 for
// neutral.
func ClassifyEmotion(text string) (EmotionLabel, int) {
	lower := strings.ToLower(text)

	score := 0
	for _, term := range DefaultPositiveTerms {
		score += strings.Count(lower, term)
	}
	for _, term := range DefaultNegativeTerms {
		score -= strings.Count(lower, term)
	}

	switch {
	case score > 0:
		return EmotionPositive, 1
	case score < 0:
		return EmotionNegative, 1
	default:
		return EmotionNeutral, 0
	}
}

// RadarEmotions are the named emotions counted for the radar chart.
var RadarEmotions = []string{"alegria", "tristeza", "enojo", "sorpresa", "miedo"}

// EmotionCount is one axis of the emotion radar.
type EmotionCount struct {
	Emotion string `json:"emotion"`
	Count   int    `json:"count"`
}

// EmotionRadar counts, per named emotion, how many texts mention it as a
// case-insensitive substring.
func EmotionRadar(texts []string) []EmotionCount {
	out := make([]EmotionCount, len(RadarEmotions))
	for i, emotion := range RadarEmotions {
		n := 0
		for _, t := range texts {
			if strings.Contains(strings.ToLower(t), emotion) {
				n++
			}
		}
		out[i] = EmotionCount{Emotion: emotion, Count: n}
	}
	return out
}
