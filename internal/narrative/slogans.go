package narrative

import (
	"math"
	"sort"
	"strings"

	"ecocubano/internal/dataset"
)

// SloganSet maps an affinity label onto the slogans tracked for it. Sets are
// a slice, not a map, so frequency tables and tie-breaks keep a fixed order.
type SloganSet struct {
	Affinity Label
	Phrases  []string
}

// DefaultSloganSets are the tracked political slogans with their affinity.
var DefaultSloganSets = []SloganSet{
	{Affinity: LabelPro, Phrases: []string{
		"Patria o Muerte", "Viva la Revolución", "Socialismo o Muerte",
		"Cuba sí, bloqueo no", "Yo soy Fidel",
	}},
	{Affinity: LabelAnti, Phrases: []string{
		"Abajo la dictadura", "No tenemos miedo", "Libertad para los presos políticos",
		"Cuba libre", "No más represión", "no mas apagones",
	}},
}

// DetectSlogans reports whether any of the slogans appears in the text as a
// case-insensitive substring.
func DetectSlogans(text string, slogans []string) bool {
	lower := strings.ToLower(text)
	for _, s := range slogans {
		if strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

// SloganStat is one row of the slogan frequency table.
type SloganStat struct {
	Slogan     string  `json:"slogan"`
	Affinity   Label   `json:"affinity"`
	Frequency  int     `json:"frequency"`
	Percentage float64 `json:"percentage"` // Of total analyzed comments, rounded to 2 decimals
}

// SloganSummary aggregates the frequency table.
type SloganSummary struct {
	TotalAnalyzed int    `json:"total_analyzed"`
	ProDetected   int    `json:"pro_detected"`
	AntiDetected  int    `json:"anti_detected"`
	MostFrequent  string `json:"most_frequent"`
}

// SloganFrequency counts, per configured slogan, how many comments contain it
// as a case-insensitive substring, and summarizes the table. The table is
// sorted descending by frequency, stably, so equally frequent slogans keep
// their configured order — including the summary's most-frequent pick. An
// empty dataset yields an all-zero table.
func SloganFrequency(ds *dataset.Dataset, sets []SloganSet) ([]SloganStat, SloganSummary) {
	if len(sets) == 0 {
		sets = DefaultSloganSets
	}

	total := ds.Len()
	var stats []SloganStat
	for _, set := range sets {
		for _, phrase := range set.Phrases {
			needle := strings.ToLower(phrase)
			count := 0
			for _, r := range ds.Records() {
				if strings.Contains(strings.ToLower(r.Content), needle) {
					count++
				}
			}

			pct := 0.0
			if total > 0 {
				pct = math.Round(float64(count)/float64(total)*100*100) / 100
			}
			stats = append(stats, SloganStat{
				Slogan:     phrase,
				Affinity:   set.Affinity,
				Frequency:  count,
				Percentage: pct,
			})
		}
	}

	summary := SloganSummary{TotalAnalyzed: total}
	for _, s := range stats {
		switch s.Affinity {
		case LabelPro:
			summary.ProDetected += s.Frequency
		case LabelAnti:
			summary.AntiDetected += s.Frequency
		}
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Frequency > stats[j].Frequency })
	if len(stats) > 0 {
		summary.MostFrequent = stats[0].Slogan
	}
	return stats, summary
}
