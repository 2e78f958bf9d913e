package bootstrap

import (
	"ghar-ko-sathi/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	MigrateModule,
	RedisModule,
	MQModule,
	JWTModule,
	components.PersistenceModule,
	components.RealtimeModule,
	components.UseCaseModule,
	components.WorkerModule,
	components.HandlerModule,
)
