package rss

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"NewsRadar/internal/domain"
	"NewsRadar/internal/ports"
)

const (
	defaultWorkers     = 8
	defaultFeedTimeout = 5 * time.Second
	defaultUserAgent   = "NewsRadar/1.0"

	minSummaryLen = 20

	unknownSource = "Unknown"
)

// Fetcher retrieves and parses syndication feeds concurrently, tolerating
// per-feed failure and timeout. Implements ports.ItemSource.
type Fetcher struct {
	client    *http.Client
	workers   int
	timeout   time.Duration
	userAgent string
	logger    *slog.Logger
}

var _ ports.ItemSource = (*Fetcher)(nil)

// NewFetcher wires an HTTP client; defaults cover the reference design
// (pool of 8, 5s per feed).
func NewFetcher(client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultFeedTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:    client,
		workers:   defaultWorkers,
		timeout:   defaultFeedTimeout,
		userAgent: defaultUserAgent,
		logger:    logger,
	}
}

// Fetch issues one task per feed on a bounded pool and merges whatever
// arrived once every task has finished or timed out. A slow or broken feed
// contributes zero items and never aborts its siblings; output order carries
// no guarantee.
func (f *Fetcher) Fetch(ctx context.Context, sources []domain.FeedSource, window time.Duration) ([]domain.Item, error) {
	cutoff := time.Now().Add(-window)

	buffers := make([][]domain.Item, len(sources))
	var g errgroup.Group
	g.SetLimit(f.workers)

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			buffers[i] = f.fetchFeed(ctx, src, cutoff)
			return nil
		})
	}
	// Tasks never return errors; failures are isolated and logged.
	_ = g.Wait()

	var items []domain.Item
	for _, buf := range buffers {
		items = append(items, buf...)
	}
	return items, nil
}

func (f *Fetcher) fetchFeed(ctx context.Context, src domain.FeedSource, cutoff time.Time) []domain.Item {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	feed, err := f.download(ctx, src.URL)
	if err != nil {
		f.logger.Warn("feed skipped", "url", src.URL, "tier", string(src.Tier), "error", err)
		return nil
	}

	source := strings.TrimSpace(feed.Title)
	if source == "" {
		source = unknownSource
	}

	items := make([]domain.Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		published := entryTime(entry)
		if published == nil || published.Before(cutoff) {
			continue
		}

		title := CleanText(entry.Title)
		summary := CleanText(entry.Description)
		if len(summary) < minSummaryLen {
			summary = title
		}

		items = append(items, domain.Item{
			Title:       title,
			Summary:     summary,
			Link:        entry.Link,
			Source:      source,
			PublishedAt: *published,
		})
	}

	f.logger.Debug("feed fetched", "url", src.URL, "items", len(items))
	return items
}

func (f *Fetcher) download(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned %s", resp.Status)
	}

	// gofeed parsers keep per-call state, so each task gets its own.
	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed, nil
}

func entryTime(entry *gofeed.Item) *time.Time {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed
	}
	return entry.UpdatedParsed
}

// CleanText unescapes HTML entities, strips markup, and collapses repeated
// whitespace in a feed text field.
func CleanText(raw string) string {
	if raw == "" {
		return ""
	}
	text := raw
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw)); err == nil {
		text = doc.Text()
	}
	return strings.Join(strings.Fields(text), " ")
}
