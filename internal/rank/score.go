package rank

import (
	"context"
	"log/slog"
	"strings"

	"NewsRadar/internal/domain"
)

// Score weights. All contributions are additive and integral; the final
// score has no floor or ceiling, negative totals simply rank low.
const (
	weightTickerInTitle = 10
	weightTickerInText  = 5
	weightCompanyMatch  = 6
	weightImpactKeyword = 2
	impactCap           = 8
	weightNoisePenalty  = -10

	weightEarningsAnalyst     = 4
	weightManagementCorporate = 3
	weightRegulation          = 2
	weightFiling              = -8

	semanticHighThreshold = 0.35
	semanticMidThreshold  = 0.25
	semanticLowThreshold  = 0.15
	semanticHighBonus     = 5
	semanticMidBonus      = 2
	semanticLowPenalty    = -5
)

// SimilaritySource yields cosine similarity between a text and the fixed
// finance-reference phrase. Implemented by the embedding client; the scorer
// skips the semantic term entirely when no source is wired.
type SimilaritySource interface {
	Similarity(ctx context.Context, text string) (float64, error)
}

// Scorer produces one deterministic composite score per item.
type Scorer struct {
	semantic SimilaritySource
	logger   *slog.Logger
}

// NewScorer wires the optional semantic collaborator.
func NewScorer(semantic SimilaritySource, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{semantic: semantic, logger: logger}
}

// Score classifies the item and computes its composite relevance score.
// The assigned category is retained on the returned tuple for the quota
// selector; the item itself is not mutated.
func (s *Scorer) Score(ctx context.Context, item domain.Item, profile domain.SubjectProfile) domain.ScoredItem {
	ticker := strings.ToLower(profile.SubjectID)
	title := strings.ToLower(item.Title)
	text := item.Text()
	link := strings.ToLower(item.Link)
	source := strings.ToLower(item.Source)

	var score float64

	// Ticker in the title is the strongest signal.
	if strings.Contains(title, ticker) {
		score += weightTickerInTitle
	} else if strings.Contains(text, ticker) {
		score += weightTickerInText
	}

	// First non-identifier company keyword only.
	for _, kw := range profile.Keywords {
		if kw == ticker {
			continue
		}
		if strings.Contains(text, kw) {
			score += weightCompanyMatch
			break
		}
	}

	impact := 0
	for _, kw := range highImpactKeywords {
		if strings.Contains(text, kw) {
			impact++
		}
	}
	score += min(float64(impact*weightImpactKeyword), impactCap)

	score += sourceWeight(link, source)

	if s.semantic != nil {
		sim, err := s.semantic.Similarity(ctx, text)
		if err != nil {
			s.logger.Debug("semantic similarity unavailable", "error", err)
		} else {
			switch {
			case sim > semanticHighThreshold:
				score += semanticHighBonus
			case sim > semanticMidThreshold:
				score += semanticMidBonus
			case sim < semanticLowThreshold:
				score += semanticLowPenalty
			}
		}
	}

	category := Classify(text)
	score += categoryBonus(category)

	// Same predicate as the noise filter, recomputed here as a penalty only.
	if NoiseCount(text) >= 2 {
		score += weightNoisePenalty
	}

	return domain.ScoredItem{Item: item, Category: category, Score: score}
}

func categoryBonus(category domain.Category) float64 {
	switch category {
	case domain.CategoryEarnings, domain.CategoryAnalyst:
		return weightEarningsAnalyst
	case domain.CategoryManagement, domain.CategoryCorporate:
		return weightManagementCorporate
	case domain.CategoryRegulation:
		return weightRegulation
	case domain.CategoryFiling:
		return weightFiling
	default:
		return 0
	}
}

// sourceWeight looks the source up in the ordered credibility table by link
// and declared-name substring; unmatched sources get the default weight.
func sourceWeight(link, source string) float64 {
	for _, entry := range sourceWeights {
		if strings.Contains(link, entry.Match) || strings.Contains(source, entry.Match) {
			return entry.Weight
		}
	}
	return defaultSourceWeight
}
