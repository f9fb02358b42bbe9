package reconciler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/metrics"
)

// UpdateFunc receives notifications for components whose version moved.
type UpdateFunc func(domain.UpdateNotification)

// Reconciler polls the component version counters and turns forward
// movement into notifications. The first poll after Start only primes the
// local snapshot, so a restart never replays history as fresh updates.
type Reconciler struct {
	versions domain.VersionRepository
	interval time.Duration
	capacity int
	metrics  *metrics.CardMetrics

	mu        sync.Mutex
	known     map[domain.Component]int64
	buffer    []domain.UpdateNotification
	callbacks []UpdateFunc
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewReconciler(versions domain.VersionRepository, interval time.Duration, capacity int, m *metrics.CardMetrics) *Reconciler {
	if capacity < 1 {
		capacity = 1
	}
	return &Reconciler{
		versions: versions,
		interval: interval,
		capacity: capacity,
		metrics:  m,
		known:    make(map[domain.Component]int64),
	}
}

// OnUpdate registers a callback invoked for every detected update.
// Callbacks registered after Start still see subsequent updates.
func (r *Reconciler) OnUpdate(fn UpdateFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks = append(r.callbacks, fn)
}

// Start launches the polling loop. Calling Start on a running reconciler
// is a no-op.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	if r.cancel != nil {
		r.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	done := make(chan struct{})
	r.done = done
	r.mu.Unlock()

	go r.run(ctx, done)
}

// Stop halts polling and waits for the loop to exit. Safe to call twice.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	done := r.done
	r.cancel = nil
	r.done = nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Notifications returns the buffered updates, oldest first.
func (r *Reconciler) Notifications() []domain.UpdateNotification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.UpdateNotification, len(r.buffer))
	copy(out, r.buffer)
	return out
}

// ClearNotifications drops the buffer, e.g. after the UI consumed it.
func (r *Reconciler) ClearNotifications() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buffer = nil
}

func (r *Reconciler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	// Prime the snapshot; whatever exists now is old news.
	if err := r.Poll(true); err != nil {
		slog.Error("version snapshot priming failed", slog.Any("error", err))
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("version reconciler stopped")
			return
		case <-ticker.C:
			if err := r.Poll(false); err != nil {
				slog.Error("version poll failed", slog.Any("error", err))
			}
		}
	}
}

// Poll reads all component versions and emits a notification for every
// component whose counter moved strictly forward. With prime set, the
// snapshot is updated without emitting.
func (r *Reconciler) Poll(prime bool) error {
	current, err := r.versions.GetAll()
	if err != nil {
		if r.metrics != nil {
			r.metrics.SyncPollErrorsTotal.Inc()
		}
		return err
	}
	if r.metrics != nil {
		r.metrics.SyncPollsTotal.Inc()
	}

	now := time.Now()
	r.mu.Lock()
	var fired []domain.UpdateNotification
	var callbacks []UpdateFunc
	for _, v := range current {
		old, seen := r.known[v.Component]
		r.known[v.Component] = v.Version
		if prime || !seen || v.Version <= old {
			continue
		}
		n := domain.UpdateNotification{
			Component:   v.Component,
			OldVersion:  old,
			NewVersion:  v.Version,
			Description: v.Description,
			DetectedAt:  now,
		}
		r.buffer = append(r.buffer, n)
		fired = append(fired, n)
	}
	// Oldest notifications fall off once the buffer is full.
	if len(r.buffer) > r.capacity {
		r.buffer = r.buffer[len(r.buffer)-r.capacity:]
	}
	callbacks = append(callbacks, r.callbacks...)
	r.mu.Unlock()

	for _, n := range fired {
		if r.metrics != nil {
			r.metrics.SyncNotificationsTotal.WithLabelValues(string(n.Component)).Inc()
		}
		for _, fn := range callbacks {
			fn(n)
		}
	}
	return nil
}
