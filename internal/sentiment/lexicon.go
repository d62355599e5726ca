package sentiment

import "strings"

// LexiconScorer is a rule-based Spanish polarity scorer: weighted keyword
// occurrences, normalized by word count. VADER's lexicon is English, so
// Spanish-heavy deployments plug this one in instead.
type LexiconScorer struct {
	positive map[string]float64
	negative map[string]float64
}

// NewLexiconScorer creates a scorer with the default Spanish weights.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{
		positive: map[string]float64{
			"excelente": 1.0, "apoyo": 0.7, "gracias": 0.6, "bueno": 0.6,
			"avance": 0.6, "logro": 0.7, "esperanza": 0.5, "mejora": 0.6,
			"fuerte": 0.4, "vencer": 0.5, "unidad": 0.4, "victoria": 0.7,
		},
		negative: map[string]float64{
			"terrible": -1.0, "crisis": -0.8, "corrupción": -0.8, "malo": -0.6,
			"protesta": -0.5, "injusto": -0.7, "escasez": -0.6, "apagón": -0.6,
			"apagones": -0.6, "represión": -0.8, "miedo": -0.5, "fracaso": -0.7,
		},
	}
}

// Score sums keyword weights over the words of the text and normalizes the
// total into [-1, 1] by the number of words.
func (s *LexiconScorer) Score(text string) float64 {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0
	}

	var total float64
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:¡¿\"'")
		if weight, ok := s.positive[w]; ok {
			total += weight
		}
		if weight, ok := s.negative[w]; ok {
			total += weight
		}
	}

	score := total / float64(len(words))
	return clamp(score * 5) // Scale up: one strong word in a short comment should register
}
