package domain

import (
	"strings"
	"time"
)

// Category is the closed set of financial topics an item can be classified into.
type Category string

const (
	CategoryEarnings   Category = "earnings"
	CategoryAnalyst    Category = "analyst"
	CategoryManagement Category = "management"
	CategoryCorporate  Category = "corporate"
	CategoryFiling     Category = "filing"
	CategoryRegulation Category = "regulation"
	CategoryGeneral    Category = "general"
)

// Item is a single candidate news record fetched from a feed.
// Category is empty until the pipeline emits the item.
type Item struct {
	Title       string
	Summary     string
	Link        string
	Source      string
	PublishedAt time.Time
	Category    Category
}

// Text returns the lowercase title+summary projection every filter and
// scoring rule matches against.
func (i Item) Text() string {
	return strings.ToLower(i.Title + " " + i.Summary)
}

// ScoredItem carries the classification and score assigned to an item
// between the scoring and selection stages. The score never travels past
// selection; only the category is copied onto the emitted Item.
type ScoredItem struct {
	Item     Item
	Category Category
	Score    float64
}

// Tier separates subject-specific feeds from general finance feeds.
type Tier string

const (
	// TierA feeds are already scoped to the subject.
	TierA Tier = "A"
	// TierB feeds are general sources whose items must pass the relevance filter.
	TierB Tier = "B"
)

// FeedSource is one syndication endpoint. Immutable configuration-time data.
type FeedSource struct {
	URL  string
	Tier Tier
}

// SubjectProfile holds the normalized lowercase keywords used for relevance
// matching. Keywords are deduplicated and ordered, identifier first.
type SubjectProfile struct {
	SubjectID string
	Keywords  []string
}
