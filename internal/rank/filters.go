package rank

import (
	"strings"

	"NewsRadar/internal/domain"
)

// Relevant reports whether the item mentions at least one profile keyword.
// Hard gate: items failing it are discarded regardless of any other signal.
func Relevant(item domain.Item, profile domain.SubjectProfile) bool {
	text := item.Text()
	for _, kw := range profile.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// NoiseCount counts noise-vocabulary matches in the lowercase text.
func NoiseCount(text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, kw := range noiseKeywords {
		if strings.Contains(lower, kw) {
			count++
		}
	}
	return count
}

// Noisy reports whether the item is dominated by off-topic vocabulary.
// Exactly one noise hit is tolerated, two or more is a hard reject.
func Noisy(item domain.Item) bool {
	return NoiseCount(item.Text()) >= 2
}
