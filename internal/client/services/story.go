// Package services contains the application services behind the CLI and the
// background sync worker: the story read/write façade, the pending-queue
// sync coordinator, and authentication.
package services

import (
	"context"
	"errors"
	"fmt"

	"storysync/internal/client/gateway"
	"storysync/internal/client/models"
	"storysync/internal/client/session"
	"storysync/internal/client/store"
	"storysync/internal/common"
	"storysync/internal/logging"
)

// Submission preconditions. A missing photo or description is a user input
// problem, not a transport problem, and is rejected before anything is sent
// or queued.
var (
	ErrDescriptionRequired = errors.New("description is required")
	ErrPhotoRequired       = errors.New("photo is required")
)

// ListResult is one page of stories plus how it was obtained.
type ListResult struct {
	Stories []models.Story

	// FromCache is set when the page came from the local store instead of
	// the network.
	FromCache bool

	// HasMore reports whether another page may exist. A short page is
	// terminal; a full page means "maybe more".
	HasMore bool
}

// StoryService is the single read/write façade the presentation layer uses;
// it hides the online/offline branching.
//
// Contract:
//   - List: network first; on failure the first page falls back to the local
//     store (confirmed plus pending entries), later pages propagate the error.
//   - Detail: local first; a saved story is authoritative offline.
//   - Add: direct online submission; the offline path goes through
//     SyncService.Enqueue instead.
type StoryService interface {
	List(ctx context.Context, page, size int, withLocation bool) (ListResult, error)
	Detail(ctx context.Context, id string) (*models.Story, error)
	Add(ctx context.Context, sub models.Submission) error
	Save(ctx context.Context, id string) error
	Unsave(ctx context.Context, id string) error
	Saved(ctx context.Context) ([]models.Story, error)
	ClearOffline(ctx context.Context) error
}

type storyService struct {
	gw      gateway.Client
	store   *store.Store
	session *session.Session
	log     logging.Logger
}

// NewStoryService constructs the façade. The session is read per call, never
// cached: connectivity and authentication can both change between calls.
func NewStoryService(gw gateway.Client, st *store.Store, sess *session.Session, log logging.Logger) StoryService {
	return &storyService{gw: gw, store: st, session: sess, log: log}
}

func (s *storyService) List(ctx context.Context, page, size int, withLocation bool) (ListResult, error) {
	fetched, err := s.gw.ListStories(ctx, page, size, withLocation, s.session.Token())
	if err == nil {
		// opportunistic cache warm; a store hiccup must not break the read
		if _, werr := s.store.PutStories(ctx, fetched); werr != nil {
			s.log.Warn(ctx, "failed to warm story cache", "error", werr)
		}
		return ListResult{Stories: fetched, HasMore: len(fetched) == size}, nil
	}

	if page > 1 {
		// no meaningful local fallback for a pagination continuation
		return ListResult{}, err
	}

	s.log.Warn(ctx, "network list failed, falling back to local store", "error", err)

	local, lerr := s.store.GetAllStories(ctx)
	queued, qerr := s.store.GetAllPendingStories(ctx)
	if lerr != nil && qerr != nil {
		return ListResult{}, fmt.Errorf("list stories: %w", err)
	}
	if lerr != nil {
		s.log.Warn(ctx, "failed to read confirmed stories", "error", lerr)
	}
	if qerr != nil {
		s.log.Warn(ctx, "failed to read pending stories", "error", qerr)
	}

	merged := make([]models.Story, 0, len(local)+len(queued))
	for _, p := range queued {
		merged = append(merged, pendingAsStory(p))
	}
	merged = append(merged, local...)

	return ListResult{Stories: merged, FromCache: true}, nil
}

func (s *storyService) Detail(ctx context.Context, id string) (*models.Story, error) {
	if id == "" {
		return nil, common.ErrMissingID
	}

	local, err := s.store.GetStory(ctx, id)
	if err != nil {
		s.log.Warn(ctx, "failed to read local story, trying network", "id", id, "error", err)
	}
	if local != nil {
		return local, nil
	}

	return s.gw.GetStoryDetail(ctx, id, s.session.Token())
}

func (s *storyService) Add(ctx context.Context, sub models.Submission) error {
	if err := validateSubmission(sub); err != nil {
		return err
	}
	return s.gw.SubmitStory(ctx, sub, s.session.Token())
}

// Save stores a story for offline reading; the saved copy becomes
// authoritative for Detail.
func (s *storyService) Save(ctx context.Context, id string) error {
	story, err := s.Detail(ctx, id)
	if err != nil {
		return err
	}
	return s.store.PutStory(ctx, story)
}

func (s *storyService) Unsave(ctx context.Context, id string) error {
	return s.store.DeleteStory(ctx, id)
}

func (s *storyService) Saved(ctx context.Context) ([]models.Story, error) {
	return s.store.GetAllStories(ctx)
}

func (s *storyService) ClearOffline(ctx context.Context) error {
	return s.store.ClearAllStories(ctx)
}

func validateSubmission(sub models.Submission) error {
	if sub.Description == "" {
		return ErrDescriptionRequired
	}
	if len(sub.Photo) == 0 {
		return ErrPhotoRequired
	}
	return nil
}

// pendingAsStory renders a queued submission for the offline list view. The
// temp id is shown in place of a server id and is discarded once the real
// story arrives via a fresh fetch.
func pendingAsStory(p models.PendingStory) models.Story {
	return models.Story{
		Id:          p.TempId,
		Name:        "You (pending sync)",
		Description: p.Description,
		Lat:         p.Lat,
		Lon:         p.Lon,
		CreatedAt:   p.CreatedAt,
	}
}
