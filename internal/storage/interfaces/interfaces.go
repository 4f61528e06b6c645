package interfaces

import (
	"carhoot/internal/models"
	"time"
)

// KeyValueProviderInterface is a string store with per-entry expiry. A missing
// key is reported by ok=false, never by an error.
type KeyValueProviderInterface interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string, ttl time.Duration) error
	Remove(key string) error
}

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

type SnapshotterInterface interface {
	Snapshot() *models.KVSnapshot
	Load(snapshot *models.KVSnapshot) int
}

type SchedulerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
}

// SweeperInterface drops expired in-memory state and returns what is left.
type SweeperInterface interface {
	Sweep() int
}
