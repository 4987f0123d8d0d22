package components

import (
	"cargo-backoffice/internal/pkg/clock"
	"cargo-backoffice/internal/usecase/commands"
	"cargo-backoffice/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewManifestCommands,
		commands.NewAttacher,
		commands.NewScanEventSyncer,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewManifestQueries,
	),
)
