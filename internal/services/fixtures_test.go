package services

import (
	"carhoot/internal/game"
	"carhoot/internal/models"
	"carhoot/internal/providers"
	"carhoot/internal/structures"
	"carhoot/internal/testutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var serviceNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

const today = "2026-03-14"

func testConfig() *structures.Config {
	return &structures.Config{
		Storage: structures.StorageConfig{
			MemorySize: 1,
			TTL:        24 * time.Hour,
		},
		Game: structures.GameConfig{
			Timezone:        "UTC",
			AttemptBudget:   9,
			HintThreshold:   5,
			HintStep:        3,
			TransitionDelay: 800 * time.Millisecond,
		},
		Multiplayer: structures.MultiplayerConfig{
			Rounds:   3,
			MatchTTL: time.Hour,
		},
	}
}

type storeFixture struct {
	store   *ProgressStore
	kv      *testutil.MockKV
	clock   *testutil.MockClock
	logger  *testutil.MockLogger
	metrics *testutil.MockMetrics
	rules   *game.Rules
}

func newStoreFixture() *storeFixture {
	conf := testConfig()
	f := &storeFixture{
		kv:      testutil.NewMockKV(),
		clock:   testutil.NewMockClock(serviceNow),
		logger:  &testutil.MockLogger{},
		metrics: &testutil.MockMetrics{},
		rules:   game.NewRules(conf),
	}
	f.store = NewProgressStore(conf, f.kv, f.clock, f.rules, f.logger, f.metrics).(*ProgressStore)
	return f
}

func bmw() *models.Vehicle {
	v := testutil.Vehicle("v1", "BMW", "M3", 1995, today)
	return &v
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conf := &structures.Config{
		Database: structures.DatabaseConfig{
			Driver: "sqlite",
			DSN:    filepath.Join(t.TempDir(), "carhoot.db"),
		},
	}
	db, err := providers.NewDatabaseProvider(conf, &testutil.MockLogger{})
	require.NoError(t, err)
	return db
}

func newTestCatalog(t *testing.T, vehicles ...models.Vehicle) (*CatalogService, *testutil.MockCache, *testutil.MockClock) {
	t.Helper()
	cache := testutil.NewMockCache()
	clock := testutil.NewMockClock(serviceNow)
	cs := NewCatalogService(newTestDB(t), cache, clock, &testutil.MockLogger{}).(*CatalogService)
	for i := range vehicles {
		require.NoError(t, cs.db.Create(&vehicles[i]).Error)
	}
	return cs, cache, clock
}
