package rank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsRadar/internal/domain"
)

func TestDedupCollapsesSyndicatedTitles(t *testing.T) {
	t.Parallel()

	items := []domain.Item{
		{Title: "Acme Corp Earnings Beat Estimates", Source: "first"},
		{Title: "Acme Corp Earnings Beat Estimates!!", Source: "second"},
	}

	unique := Dedup(items)

	require.Len(t, unique, 1)
	assert.Equal(t, "first", unique[0].Source, "first occurrence must win")
}

func TestDedupKeyUsesFiftyCharPrefix(t *testing.T) {
	t.Parallel()

	prefix := strings.Repeat("a", 60)
	items := []domain.Item{
		{Title: prefix + " market update"},
		{Title: prefix + " completely different ending"},
	}

	unique := Dedup(items)

	assert.Len(t, unique, 1, "titles sharing the 50-char key are duplicates")
	assert.Len(t, DedupKey(items[0].Title), 50)
}

func TestDedupIdempotent(t *testing.T) {
	t.Parallel()

	items := []domain.Item{
		{Title: "Acme beats estimates"},
		{Title: "Acme Beats Estimates"},
		{Title: "Regulators open probe"},
		{Title: "Acme announces dividend"},
	}

	once := Dedup(items)
	twice := Dedup(once)

	assert.Equal(t, once, twice)
}

func TestDedupKeepsOrderStable(t *testing.T) {
	t.Parallel()

	items := []domain.Item{
		{Title: "first headline"},
		{Title: "second headline"},
		{Title: "first headline"},
		{Title: "third headline"},
	}

	unique := Dedup(items)

	require.Len(t, unique, 3)
	assert.Equal(t, "first headline", unique[0].Title)
	assert.Equal(t, "second headline", unique[1].Title)
	assert.Equal(t, "third headline", unique[2].Title)
}
