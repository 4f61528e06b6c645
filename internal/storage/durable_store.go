package storage

import (
	"carhoot/internal/models"
	"carhoot/internal/providers"
	"carhoot/internal/storage/interfaces"
	"sync"
	"time"
)

const snapshotVersion = 1

// DurableStore is the map-backed store that the scheduler snapshots to disk.
type DurableStore struct {
	mu      sync.RWMutex
	entries map[string]models.KVEntry
	clock   providers.ClockInterface
}

func NewDurableStore(clock providers.ClockInterface) *DurableStore {
	return &DurableStore{
		entries: make(map[string]models.KVEntry),
		clock:   clock,
	}
}

func (d *DurableStore) Get(key string) (string, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.entries[key]
	if !ok || e.Expired(d.clock.Now()) {
		return "", false, nil
	}
	return e.Value, true, nil
}

func (d *DurableStore) Set(key, value string, ttl time.Duration) error {
	e := models.KVEntry{Value: value}
	if ttl > 0 {
		e.ExpiresAt = d.clock.Now().Add(ttl)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[key] = e
	return nil
}

func (d *DurableStore) Remove(key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.entries, key)
	return nil
}

// PurgeExpired deletes expired entries and returns how many were removed.
func (d *DurableStore) PurgeExpired() int {
	now := d.clock.Now()

	d.mu.Lock()
	defer d.mu.Unlock()
	removed := 0
	for k, e := range d.entries {
		if e.Expired(now) {
			delete(d.entries, k)
			removed++
		}
	}
	return removed
}

func (d *DurableStore) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// Snapshot copies every live entry.
func (d *DurableStore) Snapshot() *models.KVSnapshot {
	now := d.clock.Now()

	d.mu.RLock()
	defer d.mu.RUnlock()
	out := &models.KVSnapshot{Version: snapshotVersion, Entries: make(map[string]models.KVEntry, len(d.entries))}
	for k, e := range d.entries {
		if !e.Expired(now) {
			out.Entries[k] = e
		}
	}
	return out
}

// Load replaces the store content with the live entries of snapshot and returns
// how many were kept.
func (d *DurableStore) Load(snapshot *models.KVSnapshot) int {
	now := d.clock.Now()
	entries := make(map[string]models.KVEntry, len(snapshot.Entries))
	for k, e := range snapshot.Entries {
		if !e.Expired(now) {
			entries[k] = e
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = entries
	return len(entries)
}

var (
	_ interfaces.KeyValueProviderInterface = (*DurableStore)(nil)
	_ interfaces.SnapshotterInterface      = (*DurableStore)(nil)
)
