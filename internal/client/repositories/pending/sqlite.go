package pending

import (
	"context"
	"database/sql"
	"fmt"

	"storysync/internal/client/models"
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

// Insert stores a pending submission. Temp ids are unique; a duplicate is an error.
func (r *SQLiteRepository) Insert(ctx context.Context, p *models.PendingStory) error {
	query := `INSERT INTO pending_stories (temp_id, description, photo, lat, lon, token, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.TempId, p.Description, p.Photo, nullFloat(p.Lat), nullFloat(p.Lon), p.Token, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert pending story: %w", err)
	}
	return nil
}

// GetAll returns every queued submission.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.PendingStory, error) {
	query := `SELECT temp_id, description, photo, lat, lon, token, created_at FROM pending_stories`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select pending stories: %w", err)
	}
	defer rows.Close()

	var result []models.PendingStory
	for rows.Next() {
		var p models.PendingStory
		var lat, lon sql.NullFloat64
		if err := rows.Scan(&p.TempId, &p.Description, &p.Photo, &lat, &lon, &p.Token, &p.CreatedAt); err != nil {
			return nil, err
		}
		if lat.Valid && lon.Valid {
			p.Lat = &lat.Float64
			p.Lon = &lon.Float64
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByTempID removes a queued submission. A missing id is a no-op.
func (r *SQLiteRepository) DeleteByTempID(ctx context.Context, tempID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM pending_stories WHERE temp_id = ?`, tempID); err != nil {
		return fmt.Errorf("failed to delete pending story: %w", err)
	}
	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
