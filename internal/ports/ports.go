package ports

import (
	"context"
	"time"

	"NewsRadar/internal/domain"
)

// ItemSource pulls candidate items from a set of feed endpoints. Per-feed
// failures are isolated inside the implementation; the returned slice holds
// whatever arrived, in no particular order.
type ItemSource interface {
	Fetch(ctx context.Context, sources []domain.FeedSource, window time.Duration) ([]domain.Item, error)
}

// NameLookup resolves a subject identifier to an optional display name used
// to seed extra profile keywords. Failure is non-fatal for callers.
type NameLookup interface {
	DisplayName(ctx context.Context, subjectID string) (string, error)
}

// Summarizer turns the grouped digest payload into analyst-style prose.
type Summarizer interface {
	Summarize(ctx context.Context, digest []byte) (string, error)
}

// Notifier delivers the rendered digest to its outbound channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// DigestRepository records which items have already been delivered so that
// recurring runs do not repeat headlines.
type DigestRepository interface {
	AlreadyDelivered(ctx context.Context, links []string) (map[string]bool, error)
	SaveDelivered(ctx context.Context, subjectID string, item domain.Item) error
}

// Scheduler controls when the digest flow executes.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
