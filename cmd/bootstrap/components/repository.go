package components

import (
	"cargo-backoffice/internal/infra/readstore"
	"cargo-backoffice/internal/infra/repository"
	"cargo-backoffice/internal/usecase/commands"
	"cargo-backoffice/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewManifestRepository,
			fx.As(new(commands.ManifestRepository)),
		),
		fx.Annotate(
			repository.NewShipmentRepository,
			fx.As(new(commands.ShipmentRepository)),
		),
		// Read-side store for queries
		fx.Annotate(
			readstore.NewManifestReadStore,
			fx.As(new(queries.ManifestReadStore)),
		),
	),
)
