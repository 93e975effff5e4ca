package profile

import (
	"context"
	"log/slog"
	"strings"

	"NewsRadar/internal/domain"
	"NewsRadar/internal/ports"
)

const minNameTokenLen = 4

// Resolver builds the keyword profile used for relevance matching: always
// the lowercased identifier, plus the display name and its significant
// tokens when the lookup collaborator resolves one.
type Resolver struct {
	lookup ports.NameLookup
	cache  *Cache
	logger *slog.Logger
}

// NewResolver wires the optional name-lookup collaborator. A nil lookup
// degrades every profile to just the identifier.
func NewResolver(lookup ports.NameLookup, cache *Cache, logger *slog.Logger) *Resolver {
	if cache == nil {
		cache = NewCache(DefaultCacheSize)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{lookup: lookup, cache: cache, logger: logger}
}

// Resolve returns the non-empty keyword set for the subject, cached for the
// process lifetime. Lookup failure is non-fatal.
func (r *Resolver) Resolve(ctx context.Context, subjectID string) domain.SubjectProfile {
	if cached, ok := r.cache.Get(subjectID); ok {
		return cached
	}

	keywords := []string{strings.ToLower(subjectID)}

	if r.lookup != nil {
		name, err := r.lookup.DisplayName(ctx, subjectID)
		switch {
		case err != nil:
			r.logger.Warn("name lookup failed, degrading to identifier",
				"subject", subjectID, "error", err)
		case name != "":
			lower := strings.ToLower(name)
			keywords = append(keywords, lower)
			for _, token := range strings.Fields(lower) {
				if len(token) >= minNameTokenLen {
					keywords = append(keywords, token)
				}
			}
		}
	}

	prof := domain.SubjectProfile{
		SubjectID: subjectID,
		Keywords:  dedupeKeywords(keywords),
	}
	r.cache.Put(subjectID, prof)
	return prof
}

func dedupeKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}
