package assets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storysync/internal/client/models"
	"storysync/internal/common"
	"storysync/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Put inserts or replaces a cached image by URL.
func (r *SQLiteRepository) Put(ctx context.Context, a *models.ImageAsset) error {
	query := `INSERT INTO image_assets (url, content_type, data, fetched_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(url) DO UPDATE SET content_type = excluded.content_type,
				data = excluded.data,
				fetched_at = excluded.fetched_at
	`
	_, err := r.db.ExecContext(ctx, query, a.URL, a.ContentType, a.Data, a.FetchedAt)
	if err != nil {
		return fmt.Errorf("failed to cache image asset: %w", err)
	}
	return nil
}

// GetByURL returns a cached image or common.ErrNotFound.
func (r *SQLiteRepository) GetByURL(ctx context.Context, url string) (*models.ImageAsset, error) {
	query := `SELECT url, content_type, data, fetched_at FROM image_assets WHERE url = ?`
	row := r.db.QueryRowContext(ctx, query, url)

	a := &models.ImageAsset{}
	if err := row.Scan(&a.URL, &a.ContentType, &a.Data, &a.FetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return a, nil
}

// DeleteByURL evicts a cached image. A missing URL is a no-op.
func (r *SQLiteRepository) DeleteByURL(ctx context.Context, url string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM image_assets WHERE url = ?`, url); err != nil {
		return fmt.Errorf("failed to evict image asset: %w", err)
	}
	return nil
}

// Clear destroys the whole cache.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM image_assets`); err != nil {
		return fmt.Errorf("failed to clear image assets: %w", err)
	}
	return nil
}
