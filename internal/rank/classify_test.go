package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"NewsRadar/internal/domain"
)

func TestClassifyPicksCategoryWithMostMatches(t *testing.T) {
	t.Parallel()

	text := "Acme earnings beat: revenue and guidance above forecast for the quarter"

	assert.Equal(t, domain.CategoryEarnings, Classify(text))
}

func TestClassifyTieGoesToFirstDeclaredCategory(t *testing.T) {
	t.Parallel()

	// One earnings keyword, one analyst keyword: earnings is declared first.
	text := "earnings upgrade chatter"

	assert.Equal(t, domain.CategoryEarnings, Classify(text))
}

func TestClassifyZeroMatchesYieldsGeneral(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.CategoryGeneral, Classify("sunny skies over the harbor"))
}

func TestClassifyMatchesSubstrings(t *testing.T) {
	t.Parallel()

	// "miss" inside "dismissed" still counts: matching is plain substring.
	assert.Equal(t, domain.CategoryEarnings, Classify("the claim was dismissed"))
}

func TestClassifyFilingBeatsRegulationOnCount(t *testing.T) {
	t.Parallel()

	text := "Crest Capital LLC increases position, stake filing with SEC shows"

	// filing: stake + llc increases + increases position = 3; regulation: sec = 1.
	assert.Equal(t, domain.CategoryFiling, Classify(text))
}

func TestClassifyDeterministic(t *testing.T) {
	t.Parallel()

	text := "ceo board acquisition merger lawsuit earnings upgrade"
	first := Classify(text)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Classify(text))
	}
}
