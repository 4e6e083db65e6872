package stories

import (
	"context"

	"storysync/internal/client/models"
)

// Repository describes persistence operations for confirmed stories.
// Implementations are typically backed by a local SQLite database.
type Repository interface {
	// Upsert inserts a new story or replaces an existing one by Id.
	Upsert(ctx context.Context, story *models.Story) error

	// GetByID returns a story by its identifier, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Story, error)

	// GetAll returns every confirmed story in the local collection.
	GetAll(ctx context.Context) ([]models.Story, error)

	// DeleteByID removes a story. Deleting an absent id is not an error.
	DeleteByID(ctx context.Context, id string) error

	// Clear empties the confirmed collection.
	Clear(ctx context.Context) error
}
