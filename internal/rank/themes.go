package rank

import (
	"strings"

	"NewsRadar/internal/domain"
)

// Themes are the richer display taxonomy used to group the final selection
// for digest rendering. They never influence selection; the first theme (in
// declaration order) with any keyword match wins.
type themeEntry struct {
	Name     string
	Keywords []string
}

const themeGeneral = "General"

var themes = []themeEntry{
	{"Earnings & Financials", []string{
		"earnings", "revenue", "profit", "margin", "eps", "financial",
		"quarterly", "forecast", "guidance", "balance sheet", "net income",
		"sales", "dividend",
	}},
	{"Operations & Deliveries", []string{
		"production", "delivery", "deliveries", "factory", "plant",
		"operations", "supply chain", "logistics", "manufacturing", "inventory",
	}},
	{"Regulation & Legal", []string{
		"lawsuit", "sued", "regulation", "regulator", "court", "legal",
		"compliance", "ban", "investigation", "fines", "recall", "safety", "sec",
	}},
	{"Innovation / AI / Growth", []string{
		"ai", "artificial intelligence", "innovation", "technology", "tech",
		"growth", "expansion", "new product", "launch", "robot",
	}},
	{"Energy & Growth", []string{
		"energy", "solar", "battery", "storage", "renewable", "clean energy",
	}},
	{"Competition & Market Pressure", []string{
		"competition", "rival", "competitor", "market share", "price cut",
		"pressure", "macro", "inflation", "rates", "interest rate", "demand",
		"analyst", "downgrade", "upgrade", "price target",
	}},
	{"Management & Strategy", []string{
		"ceo", "management", "strategy", "executive", "board", "hire", "fire",
		"layoff", "shareholder", "vote", "acquisition", "merger",
	}},
}

// ThemeGroup is one non-empty display bucket, in taxonomy order.
type ThemeGroup struct {
	Name  string
	Items []domain.Item
}

// GroupByTheme buckets items under the display taxonomy, preserving item
// order inside each group. Unmatched items land in a trailing General group.
func GroupByTheme(items []domain.Item) []ThemeGroup {
	buckets := make(map[string][]domain.Item, len(themes)+1)

	for _, item := range items {
		name := themeFor(item)
		buckets[name] = append(buckets[name], item)
	}

	groups := make([]ThemeGroup, 0, len(themes)+1)
	for _, entry := range themes {
		if bucket := buckets[entry.Name]; len(bucket) > 0 {
			groups = append(groups, ThemeGroup{Name: entry.Name, Items: bucket})
		}
	}
	if bucket := buckets[themeGeneral]; len(bucket) > 0 {
		groups = append(groups, ThemeGroup{Name: themeGeneral, Items: bucket})
	}
	return groups
}

func themeFor(item domain.Item) string {
	text := item.Text()
	for _, entry := range themes {
		for _, kw := range entry.Keywords {
			if strings.Contains(text, kw) {
				return entry.Name
			}
		}
	}
	return themeGeneral
}
