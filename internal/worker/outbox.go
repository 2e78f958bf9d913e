package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ghar-ko-sathi/internal/pkg/clock"
	"ghar-ko-sathi/internal/usecase/shared"
)

// EventPublisher delivers one outbox payload downstream.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey, messageID string, body []byte) error
}

const (
	defaultMaxAttempts = 8
	baseBackoff        = time.Second
	maxBackoff         = 5 * time.Minute
)

// OutboxRelay drains queued notification jobs to the broker. A job that keeps
// failing is retried with exponential backoff until it is marked failed.
type OutboxRelay struct {
	uow         shared.UnitOfWork
	publisher   EventPublisher
	clock       clock.Clock
	interval    time.Duration
	batch       int32
	maxAttempts int
	logger      *slog.Logger

	stop chan struct{}
	wg   sync.WaitGroup
}

func NewOutboxRelay(uow shared.UnitOfWork, publisher EventPublisher, clk clock.Clock, interval time.Duration, batch int32, logger *slog.Logger) *OutboxRelay {
	if batch <= 0 {
		batch = 50
	}
	return &OutboxRelay{
		uow:         uow,
		publisher:   publisher,
		clock:       clk,
		interval:    interval,
		batch:       batch,
		maxAttempts: defaultMaxAttempts,
		logger:      logger,
		stop:        make(chan struct{}),
	}
}

func (r *OutboxRelay) Start() {
	r.wg.Add(1)
	go r.loop()
}

func (r *OutboxRelay) Stop(ctx context.Context) error {
	close(r.stop)
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *OutboxRelay) loop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-r.stop
		cancel()
	}()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			if _, err := r.RelayOnce(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("outbox relay pass failed", slog.Any("error", err))
			}
		}
	}
}

// RelayOnce claims one batch of due jobs and returns how many were delivered.
func (r *OutboxRelay) RelayOnce(ctx context.Context) (int, error) {
	sent := 0
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sent = 0
		now := r.clock.Now()
		jobs, err := tx.Notifications().ClaimQueued(ctx, tx.DB(), now, r.batch)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			pubErr := r.publisher.Publish(ctx, job.Topic, job.ID.String(), job.Payload)
			if pubErr == nil {
				if err := tx.Notifications().MarkSent(ctx, tx.DB(), job.ID, now); err != nil {
					return err
				}
				sent++
				continue
			}

			var retryAt *time.Time
			if job.Attempts+1 < r.maxAttempts {
				at := now.Add(Backoff(job.Attempts))
				retryAt = &at
			}
			r.logger.Warn("outbox job delivery failed",
				slog.String("job_id", job.ID.String()),
				slog.String("topic", job.Topic),
				slog.Int("attempts", job.Attempts+1),
				slog.Bool("will_retry", retryAt != nil),
				slog.Any("error", pubErr))
			if err := tx.Notifications().MarkFailed(ctx, tx.DB(), job.ID, pubErr.Error(), retryAt); err != nil {
				return err
			}
		}
		return nil
	})
	return sent, err
}

// Backoff doubles from one second per prior attempt, capped at five minutes.
func Backoff(attempts int) time.Duration {
	d := baseBackoff
	for i := 0; i < attempts; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
