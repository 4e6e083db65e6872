// Package store implements the durable on-device persistence layer: the
// confirmed story cache, the pending submission queue, and the binary image
// asset cache. It is the only package that writes to the local database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"storysync/internal/client/models"
	"storysync/internal/client/repositories/assets"
	"storysync/internal/client/repositories/pending"
	"storysync/internal/client/repositories/stories"
	"storysync/internal/common"
	"storysync/internal/dbx"
	"storysync/internal/logging"

	"github.com/google/uuid"
)

const tempIDPrefix = "pending_"

// ImageFetcher downloads a remote photo for offline caching. The gateway
// implements it; tests substitute a fake.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) (*models.ImageAsset, error)
}

// Store is the façade over the three local collections. Image-asset caching
// is coupled to story writes: a stored story gets its photo cached
// best-effort, a deleted story gets its photo evicted first.
type Store struct {
	db      *sql.DB
	stories stories.Repository
	pending pending.Repository
	assets  assets.Repository
	fetcher ImageFetcher
	log     logging.Logger

	now        func() time.Time
	randSuffix func() string
}

// New builds a Store on an already opened and migrated database. fetcher may
// be nil; image caching is then skipped entirely.
func New(db *sql.DB, fetcher ImageFetcher, log logging.Logger) *Store {
	return &Store{
		db:      db,
		stories: stories.NewSQLiteRepository(db),
		pending: pending.NewSQLiteRepository(db),
		assets:  assets.NewSQLiteRepository(db),
		fetcher: fetcher,
		log:     log,
		now:     time.Now,
		randSuffix: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
		},
	}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutStory upserts a confirmed story by id and caches its photo best-effort.
// A story without an id is a caller-contract violation and returns
// common.ErrMissingID.
func (s *Store) PutStory(ctx context.Context, story *models.Story) error {
	if story == nil || story.Id == "" {
		return common.ErrMissingID
	}
	if err := s.stories.Upsert(ctx, story); err != nil {
		return err
	}
	s.cacheImage(ctx, story.PhotoURL)
	return nil
}

// PutStories upserts every valid entry in a single transaction. Entries
// without an id are skipped, not erroring the batch. Returns the number of
// entries stored. Photos are not fetched here; only explicit saves cache
// images.
func (s *Store) PutStories(ctx context.Context, list []models.Story) (int, error) {
	stored := 0
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := stories.NewSQLiteRepository(tx)
		for i := range list {
			if list[i].Id == "" {
				continue
			}
			if err := repo.Upsert(ctx, &list[i]); err != nil {
				return err
			}
			stored++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return stored, nil
}

// GetStory returns a locally stored story. Absent ids, including the empty
// id, yield (nil, nil); "not found" is not an error here.
func (s *Store) GetStory(ctx context.Context, id string) (*models.Story, error) {
	if id == "" {
		return nil, nil
	}
	story, err := s.stories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return story, nil
}

// GetAllStories returns the whole confirmed collection.
func (s *Store) GetAllStories(ctx context.Context) ([]models.Story, error) {
	return s.stories.GetAll(ctx)
}

// DeleteStory removes a story and, best-effort, evicts its cached photo
// first. An eviction failure never blocks the structured delete.
func (s *Store) DeleteStory(ctx context.Context, id string) error {
	if id == "" {
		return common.ErrMissingID
	}

	if story, err := s.stories.GetByID(ctx, id); err == nil && story.PhotoURL != "" {
		if err := s.assets.DeleteByURL(ctx, story.PhotoURL); err != nil {
			s.log.Warn(ctx, "failed to evict cached photo", "url", story.PhotoURL, "error", err)
		}
	}

	return s.stories.DeleteByID(ctx, id)
}

// ClearAllStories empties the confirmed collection and destroys the whole
// image asset cache in one transaction. The pending queue is untouched.
func (s *Store) ClearAllStories(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := stories.NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		return assets.NewSQLiteRepository(tx).Clear(ctx)
	})
}

// AddPendingStory assigns a fresh temp id and queues the submission together
// with the token captured at submission time.
func (s *Store) AddPendingStory(ctx context.Context, sub models.Submission, token string) (*models.PendingStory, error) {
	now := s.now().UTC()
	p := &models.PendingStory{
		TempId:      fmt.Sprintf("%s%d_%s", tempIDPrefix, now.UnixMilli(), s.randSuffix()),
		Description: sub.Description,
		Photo:       sub.Photo,
		Lat:         sub.Lat,
		Lon:         sub.Lon,
		Token:       token,
		CreatedAt:   now,
	}
	if p.Lat == nil || p.Lon == nil {
		p.Lat, p.Lon = nil, nil
	}
	if err := s.pending.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetAllPendingStories returns the queued submissions.
func (s *Store) GetAllPendingStories(ctx context.Context) ([]models.PendingStory, error) {
	return s.pending.GetAll(ctx)
}

// DeletePendingStory removes a queued submission after a confirmed upload.
// An empty temp id returns common.ErrMissingID.
func (s *Store) DeletePendingStory(ctx context.Context, tempID string) error {
	if tempID == "" {
		return common.ErrMissingID
	}
	return s.pending.DeleteByTempID(ctx, tempID)
}

// GetImage returns a cached photo, or (nil, nil) when it is not cached.
func (s *Store) GetImage(ctx context.Context, url string) (*models.ImageAsset, error) {
	if url == "" {
		return nil, nil
	}
	a, err := s.assets.GetByURL(ctx, url)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// cacheImage downloads and stores a photo. Failures are logged and swallowed;
// a story is still saved offline even if its photo cannot be cached.
func (s *Store) cacheImage(ctx context.Context, url string) {
	if s.fetcher == nil || url == "" {
		return
	}
	asset, err := s.fetcher.FetchImage(ctx, url)
	if err != nil {
		s.log.Warn(ctx, "failed to fetch photo for offline cache", "url", url, "error", err)
		return
	}
	if err := s.assets.Put(ctx, asset); err != nil {
		s.log.Warn(ctx, "failed to cache photo", "url", url, "error", err)
	}
}
