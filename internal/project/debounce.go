package project

import (
	"sync"
	"time"

	"github.com/millworks/cutlist/internal/model"
)

// DebouncedSaver coalesces rapid successive saves of the same item: only the
// most recent snapshot is written, after the configured quiet interval. Save
// failures are reported through the error callback and never discard the
// pending in-memory snapshot — the next write retries with the latest state.
type DebouncedSaver struct {
	store    Store
	interval time.Duration
	onError  func(itemID string, err error)

	mu      sync.Mutex
	pending map[string]*model.Snapshot
	timers  map[string]*time.Timer
}

// NewDebouncedSaver wraps a store. onError may be nil.
func NewDebouncedSaver(store Store, interval time.Duration, onError func(string, error)) *DebouncedSaver {
	return &DebouncedSaver{
		store:    store,
		interval: interval,
		onError:  onError,
		pending:  make(map[string]*model.Snapshot),
		timers:   make(map[string]*time.Timer),
	}
}

// Save schedules a write of the snapshot, replacing any not-yet-flushed
// snapshot for the same item and restarting its quiet timer.
func (d *DebouncedSaver) Save(itemID string, snap *model.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[itemID] = snap
	if t, ok := d.timers[itemID]; ok {
		t.Stop()
	}
	d.timers[itemID] = time.AfterFunc(d.interval, func() {
		d.flush(itemID)
	})
}

func (d *DebouncedSaver) flush(itemID string) {
	d.mu.Lock()
	snap, ok := d.pending[itemID]
	if ok {
		delete(d.pending, itemID)
		delete(d.timers, itemID)
	}
	d.mu.Unlock()

	if !ok {
		return
	}
	if err := d.store.Save(itemID, snap); err != nil {
		d.mu.Lock()
		// Keep the snapshot so a later Save or Flush retries it.
		if _, exists := d.pending[itemID]; !exists {
			d.pending[itemID] = snap
		}
		d.mu.Unlock()
		if d.onError != nil {
			d.onError(itemID, err)
		}
	}
}

// Flush writes all pending snapshots immediately.
func (d *DebouncedSaver) Flush() {
	d.mu.Lock()
	ids := make([]string, 0, len(d.pending))
	for id := range d.pending {
		ids = append(ids, id)
	}
	for _, t := range d.timers {
		t.Stop()
	}
	d.timers = make(map[string]*time.Timer)
	d.mu.Unlock()

	for _, id := range ids {
		d.flush(id)
	}
}
