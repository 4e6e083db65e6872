package services

import (
	"context"

	"storysync/internal/client/gateway"
	"storysync/internal/client/models"
	"storysync/internal/client/session"
	"storysync/internal/client/store"
	"storysync/internal/logging"
)

// Notifier is the user-visible notification collaborator invoked after a
// successful background upload.
type Notifier interface {
	Notify(ctx context.Context, title, body string)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, title, body string) {}

// SyncResult summarizes one drain run.
type SyncResult struct {
	Attempted int
	Synced    int
	Failed    int
}

// SyncService reconciles locally queued submissions with the server. Drain
// is stateless and idempotent: the persisted state of an entry is only ever
// "queued" or gone, and rerunning with an unchanged queue reproduces the
// same outcomes.
type SyncService interface {
	// Enqueue stores a submission for later upload, capturing the current
	// session token. Queueing is the success condition of the offline path.
	Enqueue(ctx context.Context, sub models.Submission) (*models.PendingStory, error)

	// Drain uploads every queued entry sequentially, deleting each on
	// success and leaving it queued on failure. One failed entry never
	// blocks the rest. The returned error covers only a failure to read the
	// queue itself.
	Drain(ctx context.Context) (SyncResult, error)
}

type syncService struct {
	gw       gateway.Client
	store    *store.Store
	session  *session.Session
	notifier Notifier
	log      logging.Logger
}

// NewSyncService constructs the coordinator. A nil notifier disables
// notifications.
func NewSyncService(gw gateway.Client, st *store.Store, sess *session.Session, notifier Notifier, log logging.Logger) SyncService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &syncService{gw: gw, store: st, session: sess, notifier: notifier, log: log}
}

func (s *syncService) Enqueue(ctx context.Context, sub models.Submission) (*models.PendingStory, error) {
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}
	p, err := s.store.AddPendingStory(ctx, sub, s.session.Token())
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "story queued for sync", "temp_id", p.TempId)
	return p, nil
}

func (s *syncService) Drain(ctx context.Context) (SyncResult, error) {
	entries, err := s.store.GetAllPendingStories(ctx)
	if err != nil {
		return SyncResult{}, err
	}

	res := SyncResult{Attempted: len(entries)}
	for _, p := range entries {
		sub := models.Submission{
			Description: p.Description,
			Photo:       p.Photo,
			Lat:         p.Lat,
			Lon:         p.Lon,
		}
		if err := s.gw.SubmitStory(ctx, sub, p.Token); err != nil {
			s.log.Warn(ctx, "failed to sync story, leaving queued", "temp_id", p.TempId, "error", err)
			res.Failed++
			continue
		}
		if err := s.store.DeletePendingStory(ctx, p.TempId); err != nil {
			// upload went through but the entry is still queued; a later run
			// will resubmit it
			s.log.Error(ctx, "uploaded story could not be dequeued", "temp_id", p.TempId, "error", err)
			res.Failed++
			continue
		}
		res.Synced++
		s.notifier.Notify(ctx, "Story uploaded", "Your story \""+truncate(p.Description, 30)+"\" was successfully uploaded.")
	}

	s.log.Info(ctx, "sync run finished",
		"attempted", res.Attempted, "synced", res.Synced, "failed", res.Failed)
	return res, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
