package rss

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"NewsRadar/internal/domain"
)

const feedTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Acme Wire</title>
<item>
  <title>Fresh &amp; Ready</title>
  <link>https://example.org/fresh</link>
  <description><![CDATA[<p>Hello &amp; <b>world</b>,   quite a long summary here.</p>]]></description>
  <pubDate>%[1]s</pubDate>
</item>
<item>
  <title>Stale headline from last month</title>
  <link>https://example.org/stale</link>
  <description>an old summary that is long enough</description>
  <pubDate>%[2]s</pubDate>
</item>
<item>
  <title>Headline without any timestamp</title>
  <link>https://example.org/nodate</link>
  <description>a dateless summary that is long enough</description>
</item>
<item>
  <title>Short Summary Headline</title>
  <link>https://example.org/short</link>
  <description>tiny</description>
  <pubDate>%[1]s</pubDate>
</item>
</channel>
</rss>`

const untitledFeedTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<item>
  <title>Item from a nameless feed</title>
  <link>https://example.org/nameless</link>
  <description>long enough summary text right here</description>
  <pubDate>%s</pubDate>
</item>
</channel>
</rss>`

func TestFetchMergesFeedsAndIsolatesFailures(t *testing.T) {
	t.Parallel()

	fresh := time.Now().Add(-2 * time.Hour).Format(time.RFC1123Z)
	stale := time.Now().Add(-30 * 24 * time.Hour).Format(time.RFC1123Z)

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, feedTemplate, fresh, stale)
	}))
	defer good.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer broken.Close()

	untitled := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, untitledFeedTemplate, fresh)
	}))
	defer untitled.Close()

	fetcher := NewFetcher(nil, nil)

	sources := []domain.FeedSource{
		{URL: good.URL, Tier: domain.TierA},
		{URL: broken.URL, Tier: domain.TierA},
		{URL: untitled.URL, Tier: domain.TierB},
	}

	items, err := fetcher.Fetch(context.Background(), sources, 14*24*time.Hour)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d: %+v", len(items), items)
	}

	byLink := map[string]domain.Item{}
	for _, item := range items {
		byLink[item.Link] = item
	}

	freshItem, ok := byLink["https://example.org/fresh"]
	if !ok {
		t.Fatalf("fresh item missing")
	}
	if freshItem.Title != "Fresh & Ready" {
		t.Fatalf("unexpected title: %q", freshItem.Title)
	}
	if freshItem.Summary != "Hello & world, quite a long summary here." {
		t.Fatalf("markup not stripped: %q", freshItem.Summary)
	}
	if freshItem.Source != "Acme Wire" {
		t.Fatalf("unexpected source: %q", freshItem.Source)
	}

	shortItem, ok := byLink["https://example.org/short"]
	if !ok {
		t.Fatalf("short-summary item missing")
	}
	if shortItem.Summary != shortItem.Title {
		t.Fatalf("short summary must fall back to title, got %q", shortItem.Summary)
	}

	namelessItem, ok := byLink["https://example.org/nameless"]
	if !ok {
		t.Fatalf("nameless-feed item missing")
	}
	if namelessItem.Source != "Unknown" {
		t.Fatalf("expected Unknown source, got %q", namelessItem.Source)
	}

	if _, ok := byLink["https://example.org/stale"]; ok {
		t.Fatalf("stale item must be dropped at fetch time")
	}
	if _, ok := byLink["https://example.org/nodate"]; ok {
		t.Fatalf("dateless item must be dropped at fetch time")
	}
}

func TestFetchToleratesUnreachableFeed(t *testing.T) {
	t.Parallel()

	fetcher := NewFetcher(nil, nil)

	sources := []domain.FeedSource{
		{URL: "http://127.0.0.1:1/nothing-listens-here", Tier: domain.TierA},
	}

	items, err := fetcher.Fetch(context.Background(), sources, 14*24*time.Hour)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"Plain   text \n with\tgaps", "Plain text with gaps"},
		{"Ampersand &amp; entity", "Ampersand & entity"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := CleanText(tc.in); got != tc.want {
			t.Fatalf("CleanText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
