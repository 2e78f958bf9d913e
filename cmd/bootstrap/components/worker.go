package components

import (
	"context"
	"log/slog"

	"ghar-ko-sathi/internal/pkg/clock"
	"ghar-ko-sathi/internal/pkg/config"
	"ghar-ko-sathi/internal/usecase/commands"
	"ghar-ko-sathi/internal/usecase/shared"
	"ghar-ko-sathi/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		fx.Annotate(
			NewTimeoutScheduler,
			fx.As(fx.Self()),
			fx.As(new(commands.PendingTimeouts)),
		),
		NewOutboxRelay,
	),
	fx.Invoke(startWorkers),
)

func NewTimeoutScheduler(clk clock.Clock, cfg config.Config, logger *slog.Logger) *worker.TimeoutScheduler {
	return worker.NewTimeoutScheduler(clk, cfg.Booking.PendingTimeout, logger)
}

func NewOutboxRelay(uow shared.UnitOfWork, publisher worker.EventPublisher, clk clock.Clock, cfg config.Config, logger *slog.Logger) *worker.OutboxRelay {
	return worker.NewOutboxRelay(uow, publisher, clk, cfg.MQ.RelayInterval, cfg.MQ.RelayBatch, logger)
}

// startWorkers re-arms the timers of bookings still pending from a previous
// run and starts draining the outbox.
func startWorkers(lc fx.Lifecycle, scheduler *worker.TimeoutScheduler, relay *worker.OutboxRelay, cmds commands.BookingCommands, pending worker.PendingLister) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := scheduler.Start(ctx, cmds, pending); err != nil {
				return err
			}
			relay.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return relay.Stop(ctx)
		},
	})
}
