package storage

import (
	"carhoot/internal/providers"
	"carhoot/internal/storage/interfaces"
	"carhoot/internal/structures"
	"errors"
	"github.com/coocood/freecache"
	"time"
)

// MemoryStore keeps progress in a fixed-size freecache segment. Entries may be
// evicted under memory pressure, which the redundant store tolerates.
type MemoryStore struct {
	cache *freecache.Cache
}

func NewMemoryStore(conf *structures.Config, logger providers.Logger) *MemoryStore {
	size := max(conf.Storage.MemorySize, 1) * 1024 * 1024
	logger.Infof(providers.TypeStorage, "Memory store initialized: %dMB", size/1024/1024)
	return &MemoryStore{cache: freecache.NewCache(size)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	val, err := m.cache.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(val), true, nil
}

func (m *MemoryStore) Set(key, value string, ttl time.Duration) error {
	expire := 0
	if ttl > 0 {
		expire = max(int(ttl.Seconds()), 1)
	}
	return m.cache.Set([]byte(key), []byte(value), expire)
}

func (m *MemoryStore) Remove(key string) error {
	m.cache.Del([]byte(key))
	return nil
}

func (m *MemoryStore) Len() int {
	return int(m.cache.EntryCount())
}

func (m *MemoryStore) Clear() {
	m.cache.Clear()
}

var _ interfaces.KeyValueProviderInterface = (*MemoryStore)(nil)
