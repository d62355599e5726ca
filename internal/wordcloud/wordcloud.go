// Package wordcloud produces the word-frequency data behind the word cloud
// panel: lowercased words longer than five runes, Spanish function words
// removed, ranked by count.
package wordcloud

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// MinWordLength is the exclusive lower bound on counted word length, in runes.
const MinWordLength = 5

// DefaultLimit bounds the number of ranked words when callers pass none.
const DefaultLimit = 100

// stopWords are Spanish pronouns, articles, prepositions and other function
// words excluded from the cloud.
var stopWords = map[string]bool{
	"yo": true, "tú": true, "él": true, "ella": true, "nosotros": true,
	"vosotros": true, "ellos": true, "ellas": true, "usted": true, "ustedes": true,
	"mi": true, "tu": true, "su": true, "nuestro": true, "vuestro": true,
	"mío": true, "tuyo": true, "suyo": true,
	"que": true, "cual": true, "quien": true, "cuyo": true, "cuanto": true,
	"donde": true, "cuando": true, "como": true,
	"y": true, "o": true, "pero": true, "ni": true, "si": true,
	"aunque": true, "porque": true,
	"el": true, "la": true, "los": true, "las": true,
	"un": true, "una": true, "unos": true, "unas": true,
	"a": true, "ante": true, "bajo": true, "cabe": true, "con": true,
	"contra": true, "de": true, "desde": true, "en": true, "entre": true,
	"hacia": true, "hasta": true, "para": true, "por": true, "según": true,
	"sin": true, "so": true, "sobre": true, "tras": true,
	"aquí": true, "allí": true, "ahora": true, "antes": true, "después": true,
	"hoy": true, "mañana": true, "ayer": true, "siempre": true, "nunca": true,
	"tarde": true, "pronto": true, "bien": true, "mal": true, "mejor": true,
	"peor": true, "muy": true, "mucho": true, "poco": true, "bastante": true,
	"demasiado": true, "casi": true, "todo": true, "nada": true,
	"también": true, "además": true,
}

// Word is one entry of the ranked frequency table.
type Word struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// Result is the word cloud data for a set of texts.
type Result struct {
	TotalTexts int    `json:"total_texts"`
	TotalWords int    `json:"total_words"`
	Words      []Word `json:"words"`
}

// Analyze counts word frequencies across the texts and returns the top limit
// entries, ordered by descending count then alphabetically for equal counts.
func Analyze(texts []string, limit int) Result {
	if limit <= 0 {
		limit = DefaultLimit
	}

	freq := make(map[string]int)
	total := 0
	for _, text := range texts {
		for _, raw := range strings.Fields(text) {
			word := strings.ToLower(strings.Trim(raw, ".,!?;:¡¿\"'()"))
			if utf8.RuneCountInString(word) <= MinWordLength || stopWords[word] {
				continue
			}
			freq[word]++
			total++
		}
	}

	words := make([]Word, 0, len(freq))
	for text, count := range freq {
		words = append(words, Word{Text: text, Count: count})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Text < words[j].Text
	})
	if len(words) > limit {
		words = words[:limit]
	}

	return Result{TotalTexts: len(texts), TotalWords: total, Words: words}
}
