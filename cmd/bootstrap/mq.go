package bootstrap

import (
	"context"
	"log/slog"

	"ghar-ko-sathi/internal/infra/mq"
	"ghar-ko-sathi/internal/pkg/config"
	"ghar-ko-sathi/internal/worker"

	"go.uber.org/fx"
)

var MQModule = fx.Module("mq",
	fx.Provide(
		NewEventPublisher,
	),
)

type closablePublisher interface {
	worker.EventPublisher
	Close() error
}

// NewEventPublisher connects to RabbitMQ when enabled and otherwise logs each
// relayed job, so the outbox still drains in local setups.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (worker.EventPublisher, error) {
	var publisher closablePublisher
	if cfg.MQ.Enabled {
		p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			return nil, err
		}
		publisher = p
	} else {
		logger.Info("message broker disabled, relaying outbox to the log")
		publisher = mq.NewLogPublisher(logger)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	return publisher, nil
}
