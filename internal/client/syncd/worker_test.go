package syncd

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storysync/internal/client/services"
	"storysync/internal/logging"
)

type fakePinger struct {
	failures int32
	calls    int32
}

func (f *fakePinger) Ping(ctx context.Context) error {
	n := atomic.AddInt32(&f.calls, 1)
	if n <= atomic.LoadInt32(&f.failures) {
		return errors.New("unreachable")
	}
	return nil
}

type fakeDrainer struct {
	calls   int32
	err     error
	drained chan struct{}
}

func (f *fakeDrainer) Drain(ctx context.Context) (services.SyncResult, error) {
	atomic.AddInt32(&f.calls, 1)
	select {
	case f.drained <- struct{}{}:
	default:
	}
	if f.err != nil {
		return services.SyncResult{}, f.err
	}
	return services.SyncResult{Attempted: 1, Synced: 1}, nil
}

func newTestWorker(p Pinger, d Drainer) *Worker {
	w := NewWorker(p, d, logging.NewDefault(), 5*time.Millisecond)
	w.pingTimeout = 50 * time.Millisecond
	w.backoffBase = time.Millisecond
	w.backoffCap = 2 * time.Millisecond
	return w
}

func TestRun_WaitsForConnectivityThenDrains(t *testing.T) {
	p := &fakePinger{failures: 2}
	d := &fakeDrainer{drained: make(chan struct{}, 1)}
	w := newTestWorker(p, d)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-d.drained:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never drained")
	}
	cancel()

	err := <-done
	require.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&p.calls), int32(3))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&d.calls), int32(1))
}

func TestRun_DrainFailureDoesNotStopTheLoop(t *testing.T) {
	p := &fakePinger{}
	d := &fakeDrainer{err: errors.New("db locked"), drained: make(chan struct{}, 1)}
	w := newTestWorker(p, d)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	<-d.drained
	// wait for at least one more cycle after the failed drain
	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&d.calls) < 2 {
		select {
		case <-deadline:
			t.Fatal("worker stopped after drain failure")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestRun_StopsWhileWaitingForConnectivity(t *testing.T) {
	p := &fakePinger{failures: 1 << 30}
	d := &fakeDrainer{drained: make(chan struct{}, 1)}
	w := newTestWorker(p, d)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on cancel")
	}
	assert.Zero(t, atomic.LoadInt32(&d.calls))
}
