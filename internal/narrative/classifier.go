// Package narrative implements the keyword-count classifiers: political
// stance (PRO/ANTI/NEUTRO), coarse emotion, violent-language counting and
// slogan detection. Every function is a pure mapping from text plus static
// word lists to a label, so identical input always yields identical output.
package narrative

import "strings"

// Label is a political stance classification.
type Label string

const (
	LabelPro    Label = "PRO"
	LabelAnti   Label = "ANTI"
	LabelNeutro Label = "NEUTRO"
)

// labelPriority is the deterministic tie-break order for dominant-label votes.
var labelPriority = []Label{LabelPro, LabelAnti, LabelNeutro}

// Default stance vocabularies. Matching is by substring, not whole word, so a
// term inside a longer word still counts.
var (
	DefaultProTerms  = []string{"bloqueo", "revolución", "patria", "díaz-canel", "imperialismo"}
	DefaultAntiTerms = []string{"corrupción", "ineficiencia", "protesta", "crisis"}
)

// Classifier classifies text into a stance label by counting occurrences of
// two fixed vocabularies.
type Classifier struct {
	proTerms  []string
	antiTerms []string
}

// NewClassifier creates a classifier with the default stance vocabularies.
func NewClassifier() *Classifier {
	return NewClassifierWithTerms(DefaultProTerms, DefaultAntiTerms)
}

// NewClassifierWithTerms creates a classifier with custom vocabularies.
// Terms are matched lowercase; pass them lowercase.
func NewClassifierWithTerms(pro, anti []string) *Classifier {
	return &Classifier{proTerms: pro, antiTerms: anti}
}

// Classify returns PRO when pro-term occurrences outnumber anti-term
// occurrences, ANTI for the reverse, and NEUTRO on a tie (including empty
// text). Counting is case-insensitive.
func (c *Classifier) Classify(text string) Label {
	lower := strings.ToLower(text)

	pro := 0
	for _, term := range c.proTerms {
		pro += strings.Count(lower, term)
	}
	anti := 0
	for _, term := range c.antiTerms {
		anti += strings.Count(lower, term)
	}

	switch {
	case pro > anti:
		return LabelPro
	case anti > pro:
		return LabelAnti
	default:
		return LabelNeutro
	}
}

// DominantLabel returns the majority label over the texts. Ties resolve by
// the fixed priority PRO > ANTI > NEUTRO so the result never depends on map
// iteration order. Empty input is NEUTRO.
func (c *Classifier) DominantLabel(texts []string) Label {
	votes := make(map[Label]int, 3)
	for _, t := range texts {
		votes[c.Classify(t)]++
	}

	best := LabelNeutro
	bestVotes := -1
	for _, label := range labelPriority {
		if votes[label] > bestVotes {
			best = label
			bestVotes = votes[label]
		}
	}
	return best
}

// Distribution counts each label over the texts, always reporting all three.
func (c *Classifier) Distribution(texts []string) map[Label]int {
	dist := map[Label]int{LabelPro: 0, LabelAnti: 0, LabelNeutro: 0}
	for _, t := range texts {
		dist[c.Classify(t)]++
	}
	return dist
}
