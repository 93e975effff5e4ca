package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"NewsRadar/internal/domain"
	"NewsRadar/internal/feeds"
	"NewsRadar/internal/ports"
	"NewsRadar/internal/profile"
	"NewsRadar/internal/rank"
)

// PipelineDeps wires all collaborators into the pipeline. Source, Feeds and
// Profiles are required; everything else is optional and its absence only
// degrades the corresponding term or flow.
type PipelineDeps struct {
	Feeds      *feeds.Registry
	Profiles   *profile.Resolver
	Source     ports.ItemSource
	Semantic   rank.SimilaritySource
	Repository ports.DigestRepository
	Summarizer ports.Summarizer
	Notifier   ports.Notifier
	Logger     *slog.Logger

	Window           time.Duration
	TotalLimit       int
	QuotaPerCategory int
}

// Pipeline implements the relevance-and-ranking workflow.
type Pipeline struct {
	feeds      *feeds.Registry
	profiles   *profile.Resolver
	source     ports.ItemSource
	scorer     *rank.Scorer
	repository ports.DigestRepository
	summarizer ports.Summarizer
	notifier   ports.Notifier
	logger     *slog.Logger

	window           time.Duration
	totalLimit       int
	quotaPerCategory int
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	window := deps.Window
	if window <= 0 {
		window = 14 * 24 * time.Hour
	}

	return &Pipeline{
		feeds:            deps.Feeds,
		profiles:         deps.Profiles,
		source:           deps.Source,
		scorer:           rank.NewScorer(deps.Semantic, logger.With("component", "scorer")),
		repository:       deps.Repository,
		summarizer:       deps.Summarizer,
		notifier:         deps.Notifier,
		logger:           logger,
		window:           window,
		totalLimit:       deps.TotalLimit,
		quotaPerCategory: deps.QuotaPerCategory,
	}
}

// SelectRelevantItems is the single public entry point of the core: fetch,
// dedup, filter, score, and select the bounded category-balanced list for
// the subject. Zero surviving items is a valid, non-error outcome. Emitted
// items carry their category; scores are stripped.
func (p *Pipeline) SelectRelevantItems(ctx context.Context, subjectID string, window time.Duration) ([]domain.Item, error) {
	if p.source == nil || p.feeds == nil || p.profiles == nil {
		return nil, fmt.Errorf("pipeline is not fully wired")
	}
	if window <= 0 {
		window = p.window
	}

	prof := p.profiles.Resolve(ctx, subjectID)
	sources := p.feeds.Resolve(subjectID)

	raw, err := p.source.Fetch(ctx, sources, window)
	if err != nil {
		return nil, fmt.Errorf("fetch feeds for %s: %w", subjectID, err)
	}
	p.logger.Debug("raw items fetched", "subject", subjectID, "count", len(raw))

	items := rank.Dedup(raw)

	relevant := items[:0:0]
	for _, item := range items {
		if rank.Relevant(item, prof) {
			relevant = append(relevant, item)
		}
	}

	quiet := relevant[:0:0]
	for _, item := range relevant {
		if !rank.Noisy(item) {
			quiet = append(quiet, item)
		}
	}

	scored := make([]domain.ScoredItem, 0, len(quiet))
	for _, item := range quiet {
		scored = append(scored, p.scorer.Score(ctx, item, prof))
	}

	top := rank.SelectTop(scored, p.quotaPerCategory, p.totalLimit)

	p.logger.Info("pipeline finished",
		"subject", subjectID,
		"raw", len(raw),
		"deduped", len(items),
		"relevant", len(relevant),
		"clean", len(quiet),
		"selected", len(top))

	out := make([]domain.Item, 0, len(top))
	for _, si := range top {
		item := si.Item
		item.Category = si.Category
		out = append(out, item)
	}
	return out, nil
}

// ProcessSubject runs the digest flow for one subject: select, drop already
// delivered links, summarize, publish, persist. Every collaborator beyond
// the core is optional.
func (p *Pipeline) ProcessSubject(ctx context.Context, subjectID string) error {
	selected, err := p.SelectRelevantItems(ctx, subjectID, p.window)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		p.logger.Info("no relevant items", "subject", subjectID)
		return nil
	}

	if p.repository != nil {
		links := make([]string, 0, len(selected))
		for _, item := range selected {
			links = append(links, item.Link)
		}

		delivered, err := p.repository.AlreadyDelivered(ctx, links)
		if err != nil {
			return fmt.Errorf("load delivered for %s: %w", subjectID, err)
		}

		fresh := selected[:0:0]
		for _, item := range selected {
			if !delivered[item.Link] {
				fresh = append(fresh, item)
			}
		}
		selected = fresh
	}
	if len(selected) == 0 {
		p.logger.Info("all items already delivered", "subject", subjectID)
		return nil
	}

	grouped := rank.GroupByTheme(selected)
	message := buildDigestMessage(subjectID, grouped)

	if p.summarizer != nil {
		payload, err := buildDigestPayload(subjectID, grouped)
		if err != nil {
			return fmt.Errorf("build digest payload for %s: %w", subjectID, err)
		}
		summary, err := p.summarizer.Summarize(ctx, payload)
		if err != nil {
			p.logger.Warn("summarizer unavailable, sending raw digest",
				"subject", subjectID, "error", err)
		} else if summary != "" {
			message = summary
		}
	}

	if p.notifier != nil {
		if err := p.notifier.PublishDigest(ctx, message); err != nil {
			return fmt.Errorf("publish digest for %s: %w", subjectID, err)
		}
	}

	if p.repository != nil {
		for _, item := range selected {
			if err := p.repository.SaveDelivered(ctx, subjectID, item); err != nil {
				return fmt.Errorf("persist delivered %s: %w", item.Link, err)
			}
		}
	}

	return nil
}

// ProcessAll runs the digest flow for every configured subject, isolating
// per-subject failures.
func (p *Pipeline) ProcessAll(ctx context.Context, subjects []string) {
	for _, subject := range subjects {
		if ctx.Err() != nil {
			return
		}
		if err := p.ProcessSubject(ctx, subject); err != nil {
			p.logger.Error("subject failed", "subject", subject, "error", err)
		}
	}
}

func buildDigestMessage(subjectID string, groups []rank.ThemeGroup) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: top headlines\n", strings.ToUpper(subjectID))

	for _, group := range groups {
		fmt.Fprintf(&b, "\n%s\n", group.Name)
		for _, item := range group.Items {
			fmt.Fprintf(&b, "- %s [%s]\n  %s\n", item.Title, item.Source, item.Link)
		}
	}
	return b.String()
}

func buildDigestPayload(subjectID string, groups []rank.ThemeGroup) ([]byte, error) {
	type headline struct {
		Title  string `json:"title"`
		Source string `json:"source"`
		Link   string `json:"link"`
	}
	type themeBlock struct {
		Theme     string     `json:"theme"`
		Headlines []headline `json:"headlines"`
	}

	payload := struct {
		Subject string       `json:"subject"`
		Themes  []themeBlock `json:"themes"`
	}{Subject: strings.ToUpper(subjectID)}

	for _, group := range groups {
		block := themeBlock{Theme: group.Name}
		for _, item := range group.Items {
			block.Headlines = append(block.Headlines, headline{
				Title:  item.Title,
				Source: item.Source,
				Link:   item.Link,
			})
		}
		payload.Themes = append(payload.Themes, block)
	}

	return json.Marshal(payload)
}
