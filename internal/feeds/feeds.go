package feeds

import (
	"net/url"
	"strings"

	"NewsRadar/internal/domain"
)

// Placeholder replaced with the escaped subject identifier in tier A templates.
const Placeholder = "{symbol}"

// Default endpoints mirror the production feed set: tier A templates are
// subject-specific, tier B are general finance sources whose items rely on
// the downstream relevance filter.
var defaultSubjectTemplates = []string{
	"https://news.google.com/rss/search?q=" + Placeholder + "+stock&hl=en-US&gl=US&ceid=US:en",
	"https://feeds.finance.yahoo.com/rss/2.0/headline?s=" + Placeholder,
	"https://www.nasdaq.com/feed/rssoutbound?symbol=" + Placeholder,
	"https://stocktwits.com/symbol/" + Placeholder + ".rss",
	"https://seekingalpha.com/api/sa/combined/" + Placeholder + ".xml",
}

var defaultGeneralFeeds = []string{
	"https://feeds.benzinga.com/benzinga",
	"https://seekingalpha.com/market_currents.xml",
}

// Registry maps a subject identifier to its ordered list of feed endpoints.
type Registry struct {
	subjectTemplates []string
	general          []string
}

// NewRegistry builds a registry from configured endpoints, falling back to
// the default feed set when a list is empty.
func NewRegistry(subjectTemplates, general []string) *Registry {
	if len(subjectTemplates) == 0 {
		subjectTemplates = defaultSubjectTemplates
	}
	if len(general) == 0 {
		general = defaultGeneralFeeds
	}
	return &Registry{subjectTemplates: subjectTemplates, general: general}
}

// Resolve expands the tier A templates with the subject identifier and
// appends the tier B endpoints, preserving configuration order.
func (r *Registry) Resolve(subjectID string) []domain.FeedSource {
	symbol := url.QueryEscape(strings.ToUpper(strings.TrimSpace(subjectID)))

	sources := make([]domain.FeedSource, 0, len(r.subjectTemplates)+len(r.general))
	for _, tmpl := range r.subjectTemplates {
		sources = append(sources, domain.FeedSource{
			URL:  strings.ReplaceAll(tmpl, Placeholder, symbol),
			Tier: domain.TierA,
		})
	}
	for _, u := range r.general {
		sources = append(sources, domain.FeedSource{URL: u, Tier: domain.TierB})
	}
	return sources
}
