package cli

import (
	"context"
	"fmt"
)

// Sync uploads the pending queue right now instead of waiting for the
// background worker.
func (a *App) Sync(ctx context.Context) error {
	res, err := a.syncer.Drain(ctx)
	if err != nil {
		return err
	}
	if res.Attempted == 0 {
		printlnFn("Nothing to sync")
		return nil
	}
	printlnFn(fmt.Sprintf("Sync finished: %d uploaded, %d still queued", res.Synced, res.Failed))
	return nil
}

// Pending lists the submissions waiting for upload.
func (a *App) Pending(ctx context.Context) error {
	queued, err := a.store.GetAllPendingStories(ctx)
	if err != nil {
		return err
	}
	if len(queued) == 0 {
		printlnFn("The sync queue is empty")
		return nil
	}
	for _, p := range queued {
		printlnFn(fmt.Sprintf("[%s] %s (queued %s)", p.TempId, firstLine(p.Description, 60), p.CreatedAt.Format("2006-01-02 15:04")))
	}
	return nil
}
