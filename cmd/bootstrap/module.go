package bootstrap

import (
	"court-reservation/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule is shared by the api and sweeper processes.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	components.PersistenceModule,
	components.InfraModule,
	components.UseCaseModule,
)

var Module = fx.Options(
	CoreModule,
	JWTModule,
	components.HandlerModule,
)
