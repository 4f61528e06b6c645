package models

import "time"

type KVEntry struct {
	Value     string    `json:"v"`
	ExpiresAt time.Time `json:"e"`
}

func (e KVEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// KVSnapshot is the on-disk envelope of the durable key-value store.
type KVSnapshot struct {
	Version int                `json:"version"`
	Entries map[string]KVEntry `json:"entries"`
}
