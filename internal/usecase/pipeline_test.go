package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsRadar/internal/domain"
	"NewsRadar/internal/feeds"
	"NewsRadar/internal/profile"
	"NewsRadar/internal/rank"
)

type stubSource struct {
	items []domain.Item
}

func (s *stubSource) Fetch(context.Context, []domain.FeedSource, time.Duration) ([]domain.Item, error) {
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

type recordingNotifier struct {
	digests []string
}

func (n *recordingNotifier) PublishDigest(_ context.Context, digest string) error {
	n.digests = append(n.digests, digest)
	return nil
}

type memoryRepository struct {
	delivered map[string]bool
	saved     []string
}

func (m *memoryRepository) AlreadyDelivered(_ context.Context, links []string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, link := range links {
		if m.delivered[link] {
			out[link] = true
		}
	}
	return out, nil
}

func (m *memoryRepository) SaveDelivered(_ context.Context, _ string, item domain.Item) error {
	m.saved = append(m.saved, item.Link)
	return nil
}

type fixedSummarizer struct {
	text string
}

func (f fixedSummarizer) Summarize(context.Context, []byte) (string, error) {
	return f.text, nil
}

func fixtureItems() []domain.Item {
	published := time.Date(2026, time.August, 20, 9, 0, 0, 0, time.UTC)
	return []domain.Item{
		{
			Title:       "Acme Corp Earnings Beat Estimates",
			Summary:     "Quarterly results beat expectations handily",
			Link:        "https://example.org/beat",
			Source:      "Example Wire",
			PublishedAt: published,
		},
		{
			Title:       "Acme Corp Earnings Beat Estimates!!",
			Summary:     "Syndicated copy of the same story text",
			Link:        "https://example.org/beat-copy",
			Source:      "Other Wire",
			PublishedAt: published,
		},
		{
			Title:       "Local weather causes flight delays",
			Summary:     "Travelers stranded across the region",
			Link:        "https://example.org/weather",
			Source:      "Example Wire",
			PublishedAt: published,
		},
		{
			Title:       "ACME plant hit by hurricane",
			Summary:     "Flood damage halts all shipments",
			Link:        "https://example.org/noise",
			Source:      "Example Wire",
			PublishedAt: published,
		},
		{
			Title:       "Crest Capital LLC increases position in ACME",
			Summary:     "stake filing with SEC shows larger holding",
			Link:        "https://example.org/filing",
			Source:      "Example Wire",
			PublishedAt: published,
		},
		{
			Title:       "ACME posts record earnings",
			Summary:     "earnings beat revenue guidance for the quarter",
			Link:        "https://example.org/earnings",
			Source:      "Example Wire",
			PublishedAt: published,
		},
		{
			Title:       "Analyst upgrade for ACME",
			Summary:     "price target raised after rating review",
			Link:        "https://example.org/upgrade",
			Source:      "Example Wire",
			PublishedAt: published,
		},
	}
}

func newTestPipeline(source *stubSource, deps PipelineDeps) *Pipeline {
	deps.Feeds = feeds.NewRegistry(nil, nil)
	deps.Profiles = profile.NewResolver(nil, profile.NewCache(4), nil)
	deps.Source = source
	return NewPipeline(deps)
}

func TestSelectRelevantItemsEndToEnd(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(&stubSource{items: fixtureItems()}, PipelineDeps{})

	selected, err := pipeline.SelectRelevantItems(context.Background(), "ACME", 0)
	require.NoError(t, err)

	titles := make([]string, 0, len(selected))
	for _, item := range selected {
		titles = append(titles, item.Title)
	}

	// Earnings bucket first (best score first), then analyst, then the
	// filing item re-entering via backfill. The syndicated duplicate, the
	// irrelevant item, and the noisy item never make it this far.
	assert.Equal(t, []string{
		"ACME posts record earnings",
		"Acme Corp Earnings Beat Estimates",
		"Analyst upgrade for ACME",
		"Crest Capital LLC increases position in ACME",
	}, titles)

	for _, item := range selected {
		assert.NotEmpty(t, item.Category, "emitted items carry their category")
		assert.Contains(t, item.Text(), "acme", "relevance soundness")
		assert.Less(t, rank.NoiseCount(item.Text()), 2, "noise exclusion")
	}
}

func TestSelectRelevantItemsQuotaBounds(t *testing.T) {
	t.Parallel()

	published := time.Now().UTC()
	var items []domain.Item
	for i := 0; i < 20; i++ {
		items = append(items, domain.Item{
			Title:       "ACME earnings report number " + string(rune('a'+i)),
			Summary:     "earnings beat revenue guidance for the quarter",
			Link:        "https://example.org/e" + string(rune('a'+i)),
			PublishedAt: published,
		})
	}

	pipeline := newTestPipeline(&stubSource{items: items}, PipelineDeps{
		TotalLimit:       8,
		QuotaPerCategory: 2,
	})

	selected, err := pipeline.SelectRelevantItems(context.Background(), "ACME", 0)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(selected), 8)
	counts := map[domain.Category]int{}
	for _, item := range selected {
		counts[item.Category]++
	}
	// Single-category input: quota admits 2, the rest is backfill up to the
	// total limit.
	assert.Equal(t, 8, counts[domain.CategoryEarnings])
}

func TestSelectRelevantItemsEmptyIsNotAnError(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(&stubSource{}, PipelineDeps{})

	selected, err := pipeline.SelectRelevantItems(context.Background(), "ACME", 0)

	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestSelectRelevantItemsDeterministic(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(&stubSource{items: fixtureItems()}, PipelineDeps{})

	first, err := pipeline.SelectRelevantItems(context.Background(), "ACME", 0)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := pipeline.SelectRelevantItems(context.Background(), "ACME", 0)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestProcessSubjectSkipsDeliveredAndPublishes(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{}
	repo := &memoryRepository{delivered: map[string]bool{
		"https://example.org/earnings": true,
	}}

	pipeline := newTestPipeline(&stubSource{items: fixtureItems()}, PipelineDeps{
		Notifier:   notifier,
		Repository: repo,
	})

	err := pipeline.ProcessSubject(context.Background(), "ACME")
	require.NoError(t, err)

	require.Len(t, notifier.digests, 1)
	digest := notifier.digests[0]
	assert.True(t, strings.HasPrefix(digest, "ACME"))
	assert.NotContains(t, digest, "ACME posts record earnings", "already delivered items are skipped")
	assert.Contains(t, digest, "Analyst upgrade for ACME")

	assert.ElementsMatch(t, []string{
		"https://example.org/beat",
		"https://example.org/upgrade",
		"https://example.org/filing",
	}, repo.saved)
}

func TestProcessSubjectPrefersSummarizerOutput(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{}
	pipeline := newTestPipeline(&stubSource{items: fixtureItems()}, PipelineDeps{
		Notifier:   notifier,
		Summarizer: fixedSummarizer{text: "Concise research note."},
	})

	err := pipeline.ProcessSubject(context.Background(), "ACME")
	require.NoError(t, err)

	require.Len(t, notifier.digests, 1)
	assert.Equal(t, "Concise research note.", notifier.digests[0])
}

func TestProcessSubjectNoItemsNoNotification(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{}
	pipeline := newTestPipeline(&stubSource{}, PipelineDeps{Notifier: notifier})

	err := pipeline.ProcessSubject(context.Background(), "ACME")

	require.NoError(t, err)
	assert.Empty(t, notifier.digests)
}
