package rank

import (
	"strings"

	"NewsRadar/internal/domain"
)

// Classify assigns exactly one category by counting how many of each
// category's trigger keywords appear as substrings of the lowercase text.
// The highest count wins; ties go to the first-declared category in the
// lexicon. Zero matches everywhere yields General.
func Classify(text string) domain.Category {
	lower := strings.ToLower(text)

	best := domain.CategoryGeneral
	bestCount := 0

	for _, entry := range categoryLexicon {
		count := 0
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, kw) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = entry.Category
		}
	}

	return best
}
