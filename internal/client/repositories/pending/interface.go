package pending

import (
	"context"

	"storysync/internal/client/models"
)

// Repository describes persistence operations for queued, not-yet-uploaded
// story submissions. Entries are inserted once and deleted after a confirmed
// upload; they are never updated in place.
type Repository interface {
	// Insert stores a new pending submission under its temp id.
	Insert(ctx context.Context, p *models.PendingStory) error

	// GetAll returns every queued submission. Enumeration order is
	// unspecified; callers must treat each entry independently.
	GetAll(ctx context.Context) ([]models.PendingStory, error)

	// DeleteByTempID removes a queued submission. Absent ids are a no-op.
	DeleteByTempID(ctx context.Context, tempID string) error
}
