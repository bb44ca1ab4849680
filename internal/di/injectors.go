//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"weddingsite/internal"
	"weddingsite/internal/controllers"
	"weddingsite/internal/providers"
	"weddingsite/internal/services"
	"weddingsite/internal/storage"
	"weddingsite/internal/storage/interfaces"
	"weddingsite/internal/structures"
	"weddingsite/internal/uploads"
)

var storeSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,
	providers.NewInstrumentedCacheProvider,

	storage.NewZstdCompressor,
	storage.NewBackupProvider,
	storage.NewFileStore,
	wire.Bind(new(interfaces.DocumentStore), new(*storage.FileStore)),
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		storeSet,
		providers.NewAuthProvider,

		uploads.NewManager,
		wire.Bind(new(uploads.ManagerInterface), new(*uploads.Manager)),

		services.NewRSVPService,
		services.NewPlaylistService,
		services.NewGalleryService,
		services.NewWishlistService,
		services.NewLinksService,

		controllers.NewApiController,
		controllers.NewRSVPController,
		controllers.NewPlaylistController,
		controllers.NewGalleryController,
		controllers.NewWishlistController,
		controllers.NewLinksController,
		controllers.NewPagesController,
		controllers.NewHealthController,
		wire.Struct(new(internal.Handlers), "*"),

		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

// InitStore builds the document store alone, for maintenance commands.
func InitStore(cfg *structures.CliFlags) (*storage.FileStore, error) {

	wire.Build(storeSet)

	return nil, nil
}
