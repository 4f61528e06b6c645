package testutil

import (
	"carhoot/internal/models"
	"carhoot/internal/providers"
	"errors"
	"sync"
	"time"
)

var ErrInjected = errors.New("injected failure")

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockClock is a settable providers.ClockInterface.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *MockClock) Today() string {
	return c.Now().Format(providers.DateLayout)
}

func (c *MockClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MockKV implements interfaces.KeyValueProviderInterface in memory. Fail* flags
// make the matching operation return ErrInjected.
type MockKV struct {
	mu         sync.Mutex
	Data       map[string]string
	TTLs       map[string]time.Duration
	FailGet    bool
	FailSet    bool
	FailRemove bool
	Sets       int
}

func NewMockKV() *MockKV {
	return &MockKV{Data: make(map[string]string), TTLs: make(map[string]time.Duration)}
}

func (m *MockKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailGet {
		return "", false, ErrInjected
	}
	v, ok := m.Data[key]
	return v, ok, nil
}

func (m *MockKV) Set(key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet {
		return ErrInjected
	}
	m.Data[key] = value
	m.TTLs[key] = ttl
	m.Sets++
	return nil
}

func (m *MockKV) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailRemove {
		return ErrInjected
	}
	delete(m.Data, key)
	delete(m.TTLs, key)
	return nil
}

func (m *MockKV) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.Data))
	for k := range m.Data {
		keys = append(keys, k)
	}
	return keys
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu                sync.Mutex
	Requests          int
	CacheHits         int
	CacheMisses       int
	PersistenceRuns   int
	PersistenceErrors map[string]int
	Guesses           map[string]int
	ActiveMatches     int
	StoredKeys        int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceRuns++
}
func (m *MockMetrics) IncPersistenceErrors(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PersistenceErrors == nil {
		m.PersistenceErrors = make(map[string]int)
	}
	m.PersistenceErrors[op]++
}
func (m *MockMetrics) IncGuesses(mode string, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Guesses == nil {
		m.Guesses = make(map[string]int)
	}
	m.Guesses[mode+":"+result]++
}
func (m *MockMetrics) SetActiveMatches(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ActiveMatches = count
}
func (m *MockMetrics) SetStoredKeys(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoredKeys = count
}

// MockCache implements providers.CacheProviderInterface. TTLs passed to
// SetTTL are recorded but never enforced.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
	TTLs map[string]time.Duration
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte), TTLs: make(map[string]time.Duration)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) SetTTL(key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
	m.TTLs[key] = ttl
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockSweeper implements interfaces.SweeperInterface.
type MockSweeper struct {
	mu     sync.Mutex
	Calls  int
	Remain int
}

func (m *MockSweeper) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	return m.Remain
}

// Vehicle returns a catalog entry with five images scheduled on date.
func Vehicle(id, brand, model string, year int, date string) models.Vehicle {
	return models.Vehicle{
		ID:              id,
		Brand:           brand,
		Model:           model,
		ManufactureYear: year,
		Images:          []string{id + "-0.jpg", id + "-1.jpg", id + "-2.jpg", id + "-3.jpg", id + "-4.jpg"},
		ScheduledDate:   date,
	}
}
