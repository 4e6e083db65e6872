// Package syncd runs the deferred-sync loop: wait until the story API is
// reachable, drain the pending queue, sleep, repeat. It is the background
// counterpart of the CLI's manual sync command and shares the same drain
// routine.
package syncd

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"storysync/internal/client/services"
	"storysync/internal/logging"
)

// Pinger reports whether the remote API is reachable right now.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Drainer uploads whatever is queued locally.
type Drainer interface {
	Drain(ctx context.Context) (services.SyncResult, error)
}

const (
	defaultInterval    = time.Minute
	defaultPingTimeout = 3 * time.Second
)

// Worker periodically drains the pending queue once connectivity is back.
type Worker struct {
	pinger  Pinger
	drainer Drainer
	log     logging.Logger

	interval    time.Duration
	pingTimeout time.Duration
	backoffBase time.Duration
	backoffCap  time.Duration
}

// NewWorker constructs a Worker draining every interval. A non-positive
// interval falls back to one minute.
func NewWorker(p Pinger, d Drainer, log logging.Logger, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Worker{
		pinger:      p,
		drainer:     d,
		log:         log,
		interval:    interval,
		pingTimeout: defaultPingTimeout,
		backoffBase: time.Second,
		backoffCap:  30 * time.Second,
	}
}

// Run blocks until ctx is canceled, returning ctx.Err(). Each cycle waits for
// connectivity with fibonacci backoff, drains once, then sleeps the interval.
func (w *Worker) Run(ctx context.Context) error {
	w.log.Info(ctx, "sync worker started", "interval", w.interval)

	for {
		if err := w.waitOnline(ctx); err != nil {
			return err
		}

		res, err := w.drainer.Drain(ctx)
		if err != nil {
			w.log.Error(ctx, "failed to read pending queue", "error", err)
		} else if res.Attempted > 0 {
			w.log.Info(ctx, "drained pending queue",
				"attempted", res.Attempted, "synced", res.Synced, "failed", res.Failed)
		}

		select {
		case <-time.After(w.interval):
		case <-ctx.Done():
			w.log.Info(ctx, "sync worker stopping")
			return ctx.Err()
		}
	}
}

// waitOnline blocks until a ping succeeds, backing off between attempts.
func (w *Worker) waitOnline(ctx context.Context) error {
	b := retry.WithCappedDuration(w.backoffCap, retry.NewFibonacci(w.backoffBase))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		pctx, cancel := context.WithTimeout(ctx, w.pingTimeout)
		defer cancel()

		if err := w.pinger.Ping(pctx); err != nil {
			w.log.Debug(ctx, "api unreachable, waiting", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}
