package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"NewsRadar/internal/domain"
	"NewsRadar/internal/ports"
)

// PostgresRepository records delivered digest items so recurring runs can
// skip headlines that were already published.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.DigestRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// AlreadyDelivered returns a map with the links that already exist in storage.
func (r *PostgresRepository) AlreadyDelivered(ctx context.Context, links []string) (map[string]bool, error) {
	if r.db == nil || len(links) == 0 {
		return map[string]bool{}, nil
	}

	query, args, err := r.builder.
		Select("link").
		From("delivered_items").
		Where(sq.Expr("link = ANY(?)", pq.StringArray(links))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delivered query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query delivered: %w", err)
	}
	defer rows.Close()

	result := make(map[string]bool)
	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		result[link] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}

// SaveDelivered inserts the delivered item snapshot; re-deliveries of the
// same link are ignored.
func (r *PostgresRepository) SaveDelivered(ctx context.Context, subjectID string, item domain.Item) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.builder.
		Insert("delivered_items").
		Columns("subject_id", "title", "link", "source", "category", "published_at").
		Values(subjectID, item.Title, item.Link, item.Source, string(item.Category), item.PublishedAt).
		Suffix("ON CONFLICT (link) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert delivered: %w", err)
	}
	return nil
}
