package rank

import (
	"regexp"
	"strings"

	"NewsRadar/internal/domain"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

const dedupKeyLen = 50

// DedupKey projects a title onto its lowercase alphanumeric characters and
// truncates to the first 50. The prefix match is intentionally aggressive:
// syndicated near-duplicates differ only in trailing punctuation or suffixes.
func DedupKey(title string) string {
	key := nonAlnum.ReplaceAllString(strings.ToLower(title), "")
	if len(key) > dedupKeyLen {
		key = key[:dedupKeyLen]
	}
	return key
}

// Dedup drops items whose title key was already seen, keeping the first
// occurrence. Output order is stable on first occurrence, which makes the
// operation idempotent.
func Dedup(items []domain.Item) []domain.Item {
	seen := make(map[string]struct{}, len(items))
	unique := make([]domain.Item, 0, len(items))

	for _, item := range items {
		key := DedupKey(item.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, item)
	}

	return unique
}
