package rank

import (
	"sort"

	"NewsRadar/internal/domain"
)

// Reference selection bounds.
const (
	DefaultTotalLimit       = 8
	DefaultQuotaPerCategory = 2
)

// priorityCategories is the fixed fill order for the quota pass. Filing is
// deliberately absent: its scoring penalty already pushes it to the bottom
// and it only re-enters via the backfill pass.
var priorityCategories = []domain.Category{
	domain.CategoryEarnings,
	domain.CategoryAnalyst,
	domain.CategoryCorporate,
	domain.CategoryManagement,
	domain.CategoryRegulation,
	domain.CategoryGeneral,
}

// SelectTop returns at most totalLimit items with at most quotaPerCategory
// per category, filling categories in priority order and backfilling the
// remaining capacity with the next highest-scoring unselected items.
// Input is stable-sorted by descending score first, so equal scores keep
// their prior relative order and per-category truncation keeps the best.
func SelectTop(scored []domain.ScoredItem, quotaPerCategory, totalLimit int) []domain.ScoredItem {
	if quotaPerCategory <= 0 {
		quotaPerCategory = DefaultQuotaPerCategory
	}
	if totalLimit <= 0 {
		totalLimit = DefaultTotalLimit
	}

	ranked := make([]domain.ScoredItem, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	buckets := make(map[domain.Category][]int, len(priorityCategories))
	for i, si := range ranked {
		buckets[si.Category] = append(buckets[si.Category], i)
	}

	taken := make([]bool, len(ranked))
	picked := make([]int, 0, totalLimit)

	for _, cat := range priorityCategories {
		indices := buckets[cat]
		if len(indices) > quotaPerCategory {
			indices = indices[:quotaPerCategory]
		}
		for _, i := range indices {
			taken[i] = true
			picked = append(picked, i)
		}
	}

	if len(picked) < totalLimit {
		for i := range ranked {
			if len(picked) >= totalLimit {
				break
			}
			if taken[i] {
				continue
			}
			taken[i] = true
			picked = append(picked, i)
		}
	}

	if len(picked) > totalLimit {
		picked = picked[:totalLimit]
	}

	selected := make([]domain.ScoredItem, 0, len(picked))
	for _, i := range picked {
		selected = append(selected, ranked[i])
	}
	return selected
}
