package similarity

import (
	"strings"
	"unicode"
)

// stopWords are removed before computing lexical overlap.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true, "were": true,
}

// ExtractKeywords returns the lower-cased word set of a skill's name and
// description with stop words removed. Words are maximal runs of letters,
// digits and underscores.
func ExtractKeywords(name, description string) map[string]struct{} {
	text := strings.ToLower(name + " " + description)
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	})

	keywords := make(map[string]struct{}, len(words))
	for _, w := range words {
		if stopWords[w] {
			continue
		}
		keywords[w] = struct{}{}
	}
	return keywords
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// KeywordSimilarity returns the Jaccard similarity of two keyword sets.
// Two empty sets have similarity 0.
func KeywordSimilarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	intersection := 0
	for w := range small {
		if _, ok := large[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
