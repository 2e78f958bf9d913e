package components

import (
	"ghar-ko-sathi/internal/infra/locationstore"
	"ghar-ko-sathi/internal/infra/readstore"
	sqlc "ghar-ko-sathi/internal/infra/sqlc/generated"
	"ghar-ko-sathi/internal/infra/uow"
	"ghar-ko-sathi/internal/pkg/config"
	"ghar-ko-sathi/internal/realtime/dispatch"
	"ghar-ko-sathi/internal/realtime/presence"
	"ghar-ko-sathi/internal/usecase/queries"
	"ghar-ko-sathi/internal/worker"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
	locationModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.BookingViewQueries)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
			fx.As(new(presence.ActiveBookingFinder)),
			fx.As(new(dispatch.PartyResolver)),
			fx.As(new(worker.PendingLister)),
		),
	),
)

// Booking and notification repositories are opened per transaction by the unit of work.
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

var locationModule = fx.Module("persistence/location",
	fx.Provide(
		fx.Annotate(
			NewLocationStore,
			fx.As(new(presence.LocationStore)),
			fx.As(new(queries.LocationReader)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

func NewLocationStore(client *redis.Client, cfg config.Config) *locationstore.RedisLocationStore {
	return locationstore.NewRedisLocationStore(client, cfg.Redis.LocationTTL)
}
