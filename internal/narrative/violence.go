package narrative

import (
	"regexp"
	"strings"
)

// DefaultViolenceTerms is the configurable violent-language vocabulary used
// when callers pass none.
var DefaultViolenceTerms = []string{
	"matar", "asesinar", "destruir", "violencia", "golpear", "apuñalar",
	"estrangular", "torturar", "quemar", "violar", "atacar",
}

// CountViolenceTerms counts total occurrences of the violence vocabulary in
// the text, case-insensitively, using an alternation of the terms. A nil or
// empty term list selects the default vocabulary.
func CountViolenceTerms(text string, terms []string) int {
	if len(terms) == 0 {
		terms = DefaultViolenceTerms
	}

	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(t))
	}
	pattern := regexp.MustCompile(strings.Join(quoted, "|"))

	return len(pattern.FindAllString(strings.ToLower(text), -1))
}
