//go:build unit

package worker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"ghar-ko-sathi/internal/pkg/clock"
	"ghar-ko-sathi/internal/usecase/shared"
	"ghar-ko-sathi/internal/worker"
	sharedmock "ghar-ko-sathi/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingPublisher struct {
	keys []string
	fail map[string]error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey, _ string, _ []byte) error {
	if err := p.fail[routingKey]; err != nil {
		return err
	}
	p.keys = append(p.keys, routingKey)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupRelay(t *testing.T, pub worker.EventPublisher, now time.Time) (*worker.OutboxRelay, *sharedmock.MockNotificationRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	uow := sharedmock.NewMockUnitOfWork(ctrl)
	tx := sharedmock.NewMockTx(ctrl)
	notifications := sharedmock.NewMockNotificationRepository(ctrl)

	uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, tx)
		}).AnyTimes()
	tx.EXPECT().Notifications().Return(notifications).AnyTimes()
	tx.EXPECT().DB().Return(nil).AnyTimes()

	relay := worker.NewOutboxRelay(uow, pub, clock.NewMockClock(now), time.Second, 10, discardLogger())
	return relay, notifications
}

func TestOutboxRelay_RelayOnce(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("publishes due jobs in claim order and marks them sent", func(t *testing.T) {
		pub := &recordingPublisher{}
		relay, notifications := setupRelay(t, pub, now)

		j1 := shared.NotificationJob{ID: uuid.New(), Topic: "newBookingRequest", Payload: []byte(`{}`)}
		j2 := shared.NotificationJob{ID: uuid.New(), Topic: "bookingAccepted", Payload: []byte(`{}`)}
		notifications.EXPECT().ClaimQueued(gomock.Any(), gomock.Any(), now, int32(10)).
			Return([]shared.NotificationJob{j1, j2}, nil)
		gomock.InOrder(
			notifications.EXPECT().MarkSent(gomock.Any(), gomock.Any(), j1.ID, now).Return(nil),
			notifications.EXPECT().MarkSent(gomock.Any(), gomock.Any(), j2.ID, now).Return(nil),
		)

		sent, err := relay.RelayOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
		assert.Equal(t, []string{"newBookingRequest", "bookingAccepted"}, pub.keys)
	})

	t.Run("failed delivery is requeued with backoff", func(t *testing.T) {
		pub := &recordingPublisher{fail: map[string]error{"jobStarted": errors.New("broker down")}}
		relay, notifications := setupRelay(t, pub, now)

		job := shared.NotificationJob{ID: uuid.New(), Topic: "jobStarted", Attempts: 2}
		notifications.EXPECT().ClaimQueued(gomock.Any(), gomock.Any(), now, int32(10)).
			Return([]shared.NotificationJob{job}, nil)
		notifications.EXPECT().MarkFailed(gomock.Any(), gomock.Any(), job.ID, "broker down", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, _ uuid.UUID, _ string, retryAt *time.Time) error {
				require.NotNil(t, retryAt)
				assert.Equal(t, now.Add(4*time.Second), *retryAt)
				return nil
			})

		sent, err := relay.RelayOnce(context.Background())
		require.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("last attempt fails the job for good", func(t *testing.T) {
		pub := &recordingPublisher{fail: map[string]error{"jobStarted": errors.New("broker down")}}
		relay, notifications := setupRelay(t, pub, now)

		job := shared.NotificationJob{ID: uuid.New(), Topic: "jobStarted", Attempts: 7}
		notifications.EXPECT().ClaimQueued(gomock.Any(), gomock.Any(), now, int32(10)).
			Return([]shared.NotificationJob{job}, nil)
		notifications.EXPECT().MarkFailed(gomock.Any(), gomock.Any(), job.ID, "broker down", (*time.Time)(nil)).Return(nil)

		_, err := relay.RelayOnce(context.Background())
		require.NoError(t, err)
	})

	t.Run("claim error is returned", func(t *testing.T) {
		relay, notifications := setupRelay(t, &recordingPublisher{}, now)
		notifications.EXPECT().ClaimQueued(gomock.Any(), gomock.Any(), now, int32(10)).
			Return(nil, errors.New("connection reset"))

		_, err := relay.RelayOnce(context.Background())
		require.Error(t, err)
	})
}

func TestBackoff(t *testing.T) {
	assert.Equal(t, time.Second, worker.Backoff(0))
	assert.Equal(t, 2*time.Second, worker.Backoff(1))
	assert.Equal(t, 8*time.Second, worker.Backoff(3))
	assert.Equal(t, 5*time.Minute, worker.Backoff(20))
}
