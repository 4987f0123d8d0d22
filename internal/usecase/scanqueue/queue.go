package scanqueue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cargo-backoffice/internal/domain/scan"
	"cargo-backoffice/internal/pkg/clock"
	"cargo-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
)

// Event is one queued scan intent. Events are mutated in place by sync
// passes and removed only by an explicit ClearSynced sweep — a failure
// stays inspectable, never silently dropped.
type Event struct {
	ID        uuid.UUID   `json:"id"`
	Type      scan.Type   `json:"type"`
	Code      string      `json:"code"`
	Source    scan.Source `json:"source"`
	HubID     *uuid.UUID  `json:"hub_id,omitempty"`
	StaffID   *uuid.UUID  `json:"staff_id,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	Synced    bool        `json:"synced"`
	SyncedAt  *time.Time  `json:"synced_at,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// Intent is the caller-supplied part of a queued scan.
type Intent struct {
	Type    scan.Type
	Code    string
	Source  scan.Source
	HubID   *uuid.UUID
	StaffID *uuid.UUID
}

// Store persists the queue across process restarts. The store is owned
// exclusively by this client process; no other writer touches it.
type Store interface {
	Load() ([]Event, error)
	Save(events []Event) error
}

// Syncer applies one queued scan remotely.
type Syncer interface {
	Sync(ctx context.Context, ev Event) error
}

// Report aggregates one sync pass. Results are reported once per pass,
// not per item.
type Report struct {
	Synced      int
	Failed      int
	AttemptedAt time.Time
}

// Queue is the durable offline scan queue. AddScan never blocks on the
// network; at most one sync pass runs at a time.
type Queue struct {
	mu              sync.Mutex
	events          []Event // most recent first
	online          bool
	syncInProgress  bool
	lastSyncAttempt time.Time

	store  Store
	syncer Syncer
	clock  clock.Clock
	logger *slog.Logger
}

func NewQueue(store Store, syncer Syncer, clk clock.Clock, logger *slog.Logger) (*Queue, error) {
	events, err := store.Load()
	if err != nil {
		return nil, errs.Wrap(err, "failed to load scan queue")
	}
	return &Queue{
		events: events,
		online: true,
		store:  store,
		syncer: syncer,
		clock:  clk,
		logger: logger,
	}, nil
}

// AddScan appends the intent immediately, regardless of connectivity,
// and schedules a sync attempt when the client believes it is online.
// The scheduled pass runs detached from the caller's lifetime.
func (q *Queue) AddScan(intent Intent) Event {
	ev := Event{
		ID:        uuid.New(),
		Type:      intent.Type,
		Code:      intent.Code,
		Source:    intent.Source,
		HubID:     intent.HubID,
		StaffID:   intent.StaffID,
		CreatedAt: q.clock.Now(),
		Synced:    false,
	}

	q.mu.Lock()
	q.events = append([]Event{ev}, q.events...)
	q.persistLocked()
	online := q.online
	q.mu.Unlock()

	if online {
		go func() {
			if _, err := q.RetrySync(context.Background()); err != nil {
				q.logger.Debug("scan queue auto-sync skipped", "reason", err)
			}
		}()
	}
	return ev
}

// RetrySync runs one sync pass over every unsynced event. A previous
// failure marker is not a tombstone: the item is attempted again and the
// marker cleared on success. No two passes run concurrently, and an
// offline client does not attempt the network at all.
func (q *Queue) RetrySync(ctx context.Context) (Report, error) {
	q.mu.Lock()
	if q.syncInProgress {
		q.mu.Unlock()
		return Report{}, errs.ErrSyncInProgress
	}
	if !q.online {
		q.mu.Unlock()
		return Report{}, errs.ErrOffline
	}

	var pending []Event
	for _, ev := range q.events {
		if !ev.Synced {
			pending = append(pending, ev)
		}
	}
	if len(pending) == 0 {
		q.mu.Unlock()
		return Report{AttemptedAt: q.clock.Now()}, nil
	}

	q.syncInProgress = true
	q.lastSyncAttempt = q.clock.Now()
	report := Report{AttemptedAt: q.lastSyncAttempt}
	q.mu.Unlock()

	for _, ev := range pending {
		err := q.syncer.Sync(ctx, ev)

		q.mu.Lock()
		if err != nil {
			q.markFailedLocked(ev.ID, err.Error())
			report.Failed++
		} else {
			q.markSyncedLocked(ev.ID)
			report.Synced++
		}
		q.mu.Unlock()
	}

	q.mu.Lock()
	q.syncInProgress = false
	q.persistLocked()
	q.mu.Unlock()

	q.logger.Info("scan queue sync pass finished",
		"synced", report.Synced, "failed", report.Failed)
	return report, nil
}

// ClearSynced purges synced events. Safe at any time.
func (q *Queue) ClearSynced() {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.events[:0]
	for _, ev := range q.events {
		if !ev.Synced {
			kept = append(kept, ev)
		}
	}
	q.events = kept
	q.persistLocked()
}

// SetOnline records connectivity; the offline-to-online transition
// triggers a detached sync attempt.
func (q *Queue) SetOnline(online bool) {
	q.mu.Lock()
	wasOnline := q.online
	q.online = online
	q.mu.Unlock()

	if online && !wasOnline {
		go func() {
			if _, err := q.RetrySync(context.Background()); err != nil {
				q.logger.Debug("scan queue reconnect sync skipped", "reason", err)
			}
		}()
	}
}

func (q *Queue) Online() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.online
}

// StartAutoRetry runs periodic sync passes while unsynced events remain
// and the client is online. Returns when ctx is done.
func (q *Queue) StartAutoRetry(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if len(q.unsynced()) == 0 || !q.Online() {
				continue
			}
			if _, err := q.RetrySync(ctx); err != nil {
				q.logger.Debug("scan queue periodic sync skipped", "reason", err)
			}
		}
	}
}

// GetPendingScans lists events awaiting their first sync attempt since
// the last failure sweep.
func (q *Queue) GetPendingScans() []Event {
	return q.filter(func(ev Event) bool { return !ev.Synced && ev.Error == "" })
}

// GetFailedScans lists events whose last sync attempt failed.
func (q *Queue) GetFailedScans() []Event {
	return q.filter(func(ev Event) bool { return ev.Error != "" && !ev.Synced })
}

// GetSyncedScans lists successfully applied events not yet cleared.
func (q *Queue) GetSyncedScans() []Event {
	return q.filter(func(ev Event) bool { return ev.Synced })
}

// Len is the total number of events still held, synced or not.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

func (q *Queue) unsynced() []Event {
	return q.filter(func(ev Event) bool { return !ev.Synced })
}

func (q *Queue) filter(keep func(Event) bool) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	var out []Event
	for _, ev := range q.events {
		if keep(ev) {
			out = append(out, ev)
		}
	}
	return out
}

func (q *Queue) markSyncedLocked(id uuid.UUID) {
	for i := range q.events {
		if q.events[i].ID == id {
			now := q.clock.Now()
			q.events[i].Synced = true
			q.events[i].SyncedAt = &now
			q.events[i].Error = ""
			return
		}
	}
}

func (q *Queue) markFailedLocked(id uuid.UUID, msg string) {
	for i := range q.events {
		if q.events[i].ID == id {
			q.events[i].Error = msg
			return
		}
	}
}

func (q *Queue) persistLocked() {
	if err := q.store.Save(q.events); err != nil {
		q.logger.Error("failed to persist scan queue", "error", err)
	}
}
