//go:build wireinject
// +build wireinject

package di

import (
	"carhoot/internal"
	"carhoot/internal/controllers"
	"carhoot/internal/game"
	"carhoot/internal/providers"
	"carhoot/internal/services"
	"carhoot/internal/storage"
	"carhoot/internal/storage/interfaces"
	"carhoot/internal/structures"
	"database/sql"
	wire "github.com/google/wire"
)

var storageSet = wire.NewSet(
	storage.NewDurableStore,
	storage.NewMemoryStore,
	storage.NewKeyValueProvider,
	storage.NewZstdCompressor,
	storage.NewFileManager,
	storage.NewScheduler,
	wire.Bind(new(controllers.Counter), new(*storage.DurableStore)),
)

var serviceSet = wire.NewSet(
	game.NewRules,
	game.NewMatchRules,
	services.NewCatalogService,
	services.NewProgressStore,
	services.NewRankingService,
	services.NewGameService,
	services.NewMatchService,
	wire.Bind(new(services.MatchServiceInterface), new(*services.MatchService)),
	wire.Bind(new(interfaces.SweeperInterface), new(*services.MatchService)),
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewClockProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewDatabaseProvider,
		providers.NewSQLHandle,
		providers.NewRateLimitMiddleware,
		wire.Bind(new(controllers.Pinger), new(*sql.DB)),

		storageSet,
		serviceSet,

		controllers.NewPuzzleController,
		controllers.NewMatchController,
		controllers.NewRankingController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitSeeder(cfg *structures.CliFlags) (*internal.Seeder, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewClockProvider,
		providers.NewCacheProvider,
		providers.NewDatabaseProvider,
		services.NewCatalogService,
		internal.NewSeeder,
	)

	return nil, nil
}
