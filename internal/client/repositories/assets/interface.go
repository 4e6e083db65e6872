package assets

import (
	"context"

	"storysync/internal/client/models"
)

// Repository describes the binary image cache, keyed by the photo's remote
// URL. The cache is independent of the structured story collections and may
// be cleared on its own.
type Repository interface {
	// Put inserts or replaces a cached image by URL.
	Put(ctx context.Context, a *models.ImageAsset) error

	// GetByURL returns a cached image, or common.ErrNotFound.
	GetByURL(ctx context.Context, url string) (*models.ImageAsset, error)

	// DeleteByURL evicts a cached image. Absent URLs are a no-op.
	DeleteByURL(ctx context.Context, url string) error

	// Clear destroys the whole cache.
	Clear(ctx context.Context) error
}
