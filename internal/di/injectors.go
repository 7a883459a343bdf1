//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"blogd/internal"
	"blogd/internal/backup"
	"blogd/internal/controllers"
	"blogd/internal/providers"
	"blogd/internal/services"
	"blogd/internal/storage"
	"blogd/internal/structures"
)

var coreSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,

	storage.NewStore,
	wire.Bind(new(storage.StoreInterface), new(*storage.Store)),
	backup.NewZstdCompressor,
	backup.NewManager,
	wire.Bind(new(backup.ManagerInterface), new(*backup.Manager)),
	services.NewReaderTracker,
	services.NewBlogService,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		coreSet,
		providers.NewInstrumentedCacheProvider,
		providers.NewAuthProvider,

		backup.NewStartToken,
		backup.NewScheduler,
		services.NewUploadService,
		controllers.NewApiController,
		controllers.NewAdminController,
		controllers.NewBackupController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}

func InitConsole(cfg *structures.CliFlags) (*internal.Console, error) {

	wire.Build(
		coreSet,
		internal.NewConsole,
	)

	return nil, nil
}
