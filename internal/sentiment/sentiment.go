// Package sentiment scores comment polarity and maps scores onto the three
// dashboard categories. The scorer itself is pluggable: anything mapping text
// to a float in [-1,1] satisfies the contract, so the lexicon stand-in can be
// swapped without touching callers.
package sentiment

import (
	"strings"

	"ecocubano/internal/dataset"
)

// Category is the discrete sentiment label shown in the pie chart.
type Category string

const (
	CategoryPositive Category = "Positivo"
	CategoryNegative Category = "Negativo"
	CategoryNeutral  Category = "Neutral"
)

// Scorer maps text onto a polarity in [-1, 1].
type Scorer interface {
	Score(text string) float64
}

// Analyzer classifies comments using a polarity scorer.
type Analyzer struct {
	scorer Scorer
}

// NewAnalyzer creates an analyzer around the given scorer. A nil scorer
// selects the VADER scorer.
func NewAnalyzer(scorer Scorer) *Analyzer {
	if scorer == nil {
		scorer = NewVaderScorer()
	}
	return &Analyzer{scorer: scorer}
}

// Classify scores one text. Empty or whitespace-only text is forced to
// polarity 0 / Neutral without consulting the scorer; any other text is
// categorized by the sign of its clamped polarity.
func (a *Analyzer) Classify(text string) (float64, Category) {
	if strings.TrimSpace(text) == "" {
		return 0, CategoryNeutral
	}

	score := clamp(a.scorer.Score(text))
	switch {
	case score > 0:
		return score, CategoryPositive
	case score < 0:
		return score, CategoryNegative
	default:
		return score, CategoryNeutral
	}
}

// Distribution aggregates sentiment over a dataset view.
type Distribution struct {
	Total        int     `json:"total"`
	Positive     int     `json:"positive"`
	Negative     int     `json:"negative"`
	Neutral      int     `json:"neutral"`
	AverageScore float64 `json:"average_score"`
}

// Distribution classifies every record in the view. An empty view yields a
// zero Distribution.
func (a *Analyzer) Distribution(ds *dataset.Dataset) Distribution {
	dist := Distribution{Total: ds.Len()}
	if dist.Total == 0 {
		return dist
	}

	var sum float64
	for _, r := range ds.Records() {
		score, category := a.Classify(r.Content)
		sum += score
		switch category {
		case CategoryPositive:
			dist.Positive++
		case CategoryNegative:
			dist.Negative++
		default:
			dist.Neutral++
		}
	}
	dist.AverageScore = sum / float64(dist.Total)
	return dist
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
