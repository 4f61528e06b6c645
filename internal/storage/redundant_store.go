package storage

import (
	"carhoot/internal/providers"
	"carhoot/internal/storage/interfaces"
	"errors"
	"fmt"
	"time"
)

// KeyValueProvider writes every key to two stores so that losing one of them
// (eviction, a failed snapshot) does not lose the day's progress.
type KeyValueProvider struct {
	primary   interfaces.KeyValueProviderInterface
	secondary interfaces.KeyValueProviderInterface
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
}

func NewKeyValueProvider(durable *DurableStore, memory *MemoryStore, logger providers.Logger, metrics providers.MetricsProviderInterface) interfaces.KeyValueProviderInterface {
	return NewRedundantStore(durable, memory, logger, metrics)
}

func NewRedundantStore(primary, secondary interfaces.KeyValueProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *KeyValueProvider {
	return &KeyValueProvider{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
		metrics:   metrics,
	}
}

// Get reads the primary store first. A miss or failure falls back to the
// secondary one; only a failure of both is reported.
func (kv *KeyValueProvider) Get(key string) (string, bool, error) {
	val, ok, perr := kv.primary.Get(key)
	if perr == nil && ok {
		return val, true, nil
	}
	if perr != nil {
		kv.logger.Warnf(providers.TypeStorage, "Primary read of %s failed: %s", key, perr)
		kv.metrics.IncPersistenceErrors("read")
	}

	val, ok, serr := kv.secondary.Get(key)
	if serr != nil {
		kv.logger.Warnf(providers.TypeStorage, "Secondary read of %s failed: %s", key, serr)
		kv.metrics.IncPersistenceErrors("read")
		if perr != nil {
			return "", false, errors.Join(perr, serr)
		}
		return "", false, nil
	}
	return val, ok, nil
}

func (kv *KeyValueProvider) Set(key, value string, ttl time.Duration) error {
	return kv.both("write", key, func(s interfaces.KeyValueProviderInterface) error {
		return s.Set(key, value, ttl)
	})
}

func (kv *KeyValueProvider) Remove(key string) error {
	return kv.both("remove", key, func(s interfaces.KeyValueProviderInterface) error {
		return s.Remove(key)
	})
}

func (kv *KeyValueProvider) both(op, key string, fn func(interfaces.KeyValueProviderInterface) error) error {
	perr := fn(kv.primary)
	serr := fn(kv.secondary)
	if perr != nil {
		kv.logger.Warnf(providers.TypeStorage, "Primary %s of %s failed: %s", op, key, perr)
		kv.metrics.IncPersistenceErrors(op)
	}
	if serr != nil {
		kv.logger.Warnf(providers.TypeStorage, "Secondary %s of %s failed: %s", op, key, serr)
		kv.metrics.IncPersistenceErrors(op)
	}
	if perr != nil && serr != nil {
		return fmt.Errorf("%s %s: %w", op, key, errors.Join(perr, serr))
	}
	return nil
}
