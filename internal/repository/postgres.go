package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"anvi/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresRepository handles database operations: the hotel/villa catalog and
// the durable per-user message log.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

const placeColumns = `
	id, vendor_name, name, category, area_name, zone_name, star_rating,
	address, location, phone, price, description, short_description,
	image_url, thumbnail_image, attributes, created_at, updated_at`

// SearchPlaces fetches catalog records for the canonical category keyword,
// narrowed by the intent's must-have tags. A tag matches when the record
// carries the attribute or mentions it in the description. Result order is
// rating-first and stable, the caller does no re-ranking.
func (r *PostgresRepository) SearchPlaces(ctx context.Context, category string, intent *model.Intent, limit int) ([]model.Place, error) {
	whereClauses := []string{"category ILIKE $1"}
	args := []interface{}{category}
	argIndex := 2

	if intent != nil {
		for _, tag := range intent.MustHave {
			whereClauses = append(whereClauses, fmt.Sprintf(
				"(attributes ->> $%d IS NOT NULL OR description ILIKE $%d)",
				argIndex, argIndex+1,
			))
			args = append(args, tag, "%"+tag+"%")
			argIndex += 2
		}
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM places
		WHERE %s
		ORDER BY star_rating DESC NULLS LAST, updated_at DESC
		LIMIT $%d
	`, placeColumns, strings.Join(whereClauses, " AND "), argIndex)
	args = append(args, limit)

	var places []model.Place
	if err := r.db.SelectContext(ctx, &places, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch places: %w", err)
	}
	return places, nil
}

// ResolvePlaceByName looks up a single catalog record by (normalized) entity
// name. No match returns (nil, nil), not an error.
func (r *PostgresRepository) ResolvePlaceByName(ctx context.Context, name string) (*model.Place, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM places
		WHERE vendor_name ILIKE $1 OR name ILIKE $1
		ORDER BY star_rating DESC NULLS LAST
		LIMIT 1
	`, placeColumns)

	var place model.Place
	err := r.db.GetContext(ctx, &place, query, "%"+name+"%")
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve place: %w", err)
	}
	return &place, nil
}

// SaveMessage appends one turn to the durable per-user message log
func (r *PostgresRepository) SaveMessage(ctx context.Context, userID, role, content string) error {
	query := `INSERT INTO messages (user_id, role, content) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, userID, role, content); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

// RecentMessages returns the user's last limit turns in chronological order
// (oldest first). The query fetches most-recent-first, then reverses.
func (r *PostgresRepository) RecentMessages(ctx context.Context, userID string, limit int) ([]model.Message, error) {
	query := `
		SELECT role, content, created_at
		FROM messages
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	var messages []model.Message
	if err := r.db.SelectContext(ctx, &messages, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	// reverse to chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// UpdateEmbedding updates the embedding vector for a place
func (r *PostgresRepository) UpdateEmbedding(ctx context.Context, placeID int64, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	query := `UPDATE places SET embedding = $1, updated_at = NOW() WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, vec, placeID); err != nil {
		return fmt.Errorf("failed to update embedding: %w", err)
	}
	return nil
}

// BatchUpdateEmbeddings updates embeddings for multiple places in one
// transaction. Per-item failures are collected, not fatal.
func (r *PostgresRepository) BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string) {
	success := 0
	var errors []string

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errors
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE places SET embedding = $1, updated_at = NOW() WHERE id = $2`)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errors
	}
	defer stmt.Close()

	for _, item := range items {
		vec := pgvector.NewVector(item.Embedding)
		if _, err := stmt.ExecContext(ctx, vec, item.PlaceID); err != nil {
			errors = append(errors, fmt.Sprintf("place_id %d: %v", item.PlaceID, err))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errors = append(errors, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errors
	}

	return success, errors
}
