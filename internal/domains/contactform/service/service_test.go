package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"bayleaf/config"
	"bayleaf/infras/metrics"
	otelMocks "bayleaf/infras/otel/mocks"
	"bayleaf/internal/domains/contactform/mocks"
	"bayleaf/internal/domains/contactform/model/dto"
	"bayleaf/internal/domains/contactform/notifier"
	"bayleaf/internal/domains/contactform/service"
	contactMessageMocks "bayleaf/internal/domains/contactmessage/mocks"
	contactMessageModel "bayleaf/internal/domains/contactmessage/model"
	reservationMocks "bayleaf/internal/domains/reservation/mocks"
	"bayleaf/internal/domains/reservation/model"
	"bayleaf/shared/failure"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc          service.ContactForm
	reservations *reservationMocks.MockReservation
	messages     *contactMessageMocks.MockContactMessage
	notifier     *mocks.MockNotifier
	metrics      *metrics.Metrics
}

func setup(t *testing.T, available bool, delayMillis int) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		reservations: reservationMocks.NewMockReservation(ctrl),
		messages:     contactMessageMocks.NewMockContactMessage(ctrl),
		notifier:     mocks.NewMockNotifier(ctrl),
		metrics:      metrics.New(),
	}

	cfg := &config.Config{}
	cfg.Reservation.DemoDelayMillis = delayMillis
	cfg.Reservation.SubmitTimeoutSeconds = 5

	f.reservations.EXPECT().Available().Return(available)
	f.svc = service.New(f.reservations, f.messages, f.notifier, f.metrics, cfg, otelMocks.NewOtel())

	return f
}

func janeDoe() dto.SubmitReservationRequest {
	return dto.SubmitReservationRequest{
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Date:   "2099-01-01",
		Time:   "19:00",
		Guests: 2,
	}
}

func closedErrors(errs ...error) <-chan error {
	ch := make(chan error, len(errs))
	for _, err := range errs {
		ch <- err
	}
	close(ch)

	return ch
}

func submissions(m *metrics.Metrics, kind, mode, result string) float64 {
	return testutil.ToFloat64(m.Submissions.WithLabelValues(kind, mode, result))
}

func TestDemo_SucceedsAfterDelayWithoutStoring(t *testing.T) {
	f := setup(t, false, 50)

	require.True(t, f.svc.Demo())

	start := time.Now()
	res, err := f.svc.SubmitReservation(context.Background(), janeDoe())

	require.NoError(t, err)
	assert.True(t, res.Demo)
	assert.Empty(t, res.ID)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	assert.Equal(t, 1.0, submissions(f.metrics, metrics.KindReservation, metrics.ModeDemo, metrics.ResultSuccess))
}

func TestDemo_LoadingWhileWaiting(t *testing.T) {
	f := setup(t, false, 200)

	finished := make(chan struct{})

	go func() {
		defer close(finished)
		_, _ = f.svc.SubmitReservation(context.Background(), janeDoe())
	}()

	assert.Eventually(t, func() bool { return f.svc.Status().Loading }, time.Second, 5*time.Millisecond)
	<-finished
	assert.False(t, f.svc.Status().Loading)
	assert.Empty(t, f.svc.Status().Error)
}

func TestDemo_ContextDeadline(t *testing.T) {
	f := setup(t, false, 1000)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.svc.SubmitContactMessage(ctx, dto.SubmitContactMessageRequest{Name: "a", Email: "a@b.c", Message: "hi"})

	assert.Equal(t, http.StatusGatewayTimeout, failure.GetCode(err))
}

func TestConnected_CreatesPendingReservationAndNotifies(t *testing.T) {
	f := setup(t, true, 0)

	require.False(t, f.svc.Demo())

	var stored model.Reservation

	f.reservations.EXPECT().InsertOnce(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r model.Reservation) (model.Reservation, bool, error) {
			stored = r

			return r, true, nil
		})
	f.notifier.EXPECT().NotifyReservation(gomock.Any(), gomock.Any()).Return(closedErrors())

	res, err := f.svc.SubmitReservation(context.Background(), janeDoe())

	require.NoError(t, err)
	assert.False(t, res.Demo)
	assert.False(t, res.Duplicate)
	assert.Equal(t, stored.ID, res.ID)
	assert.Equal(t, model.StatusPending, stored.Status)
	assert.Equal(t, 2, stored.Guests)
	assert.Nil(t, stored.Phone)
	assert.Nil(t, stored.Message)
	assert.Equal(t, 1.0, submissions(f.metrics, metrics.KindReservation, metrics.ModeConnected, metrics.ResultSuccess))
}

func TestConnected_NotificationFailureIsNotSurfaced(t *testing.T) {
	f := setup(t, true, 0)

	f.reservations.EXPECT().InsertOnce(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r model.Reservation) (model.Reservation, bool, error) {
			return r, true, nil
		})
	f.notifier.EXPECT().NotifyReservation(gomock.Any(), gomock.Any()).Return(closedErrors(
		&notifier.Error{Sink: metrics.SinkContactMessage, Err: errors.New("insert failed")},
	))

	_, err := f.svc.SubmitReservation(context.Background(), janeDoe())

	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(f.metrics.NotificationFailures.WithLabelValues(metrics.SinkContactMessage)) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Empty(t, f.svc.Status().Error)
}

func TestConnected_DuplicateKeySkipsNotification(t *testing.T) {
	f := setup(t, true, 0)

	req := janeDoe()
	req.IdempotencyKey = "8b3f1f7e-2a43-4b8e-9a55-7d3c1c2f0e11"

	f.reservations.EXPECT().InsertOnce(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r model.Reservation) (model.Reservation, bool, error) {
			assert.Equal(t, req.IdempotencyKey, r.IdempotencyKey)

			return model.Reservation{ID: "first"}, false, nil
		})

	res, err := f.svc.SubmitReservation(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, res.Duplicate)
	assert.Equal(t, "first", res.ID)
	assert.Equal(t, 1.0, submissions(f.metrics, metrics.KindReservation, metrics.ModeConnected, metrics.ResultDuplicate))
}

func TestConnected_StoreFailure(t *testing.T) {
	f := setup(t, true, 0)

	f.reservations.EXPECT().InsertOnce(gomock.Any(), gomock.Any()).Return(model.Reservation{}, false, errors.New("permission denied for table reservations"))

	_, err := f.svc.SubmitReservation(context.Background(), janeDoe())

	require.Error(t, err)
	assert.NotEmpty(t, err.Error())
	assert.Contains(t, f.svc.Status().Error, "permission denied")
	assert.False(t, f.svc.Status().Loading)
	assert.Equal(t, 1.0, submissions(f.metrics, metrics.KindReservation, metrics.ModeConnected, metrics.ResultError))
}

func TestConnected_Timeout(t *testing.T) {
	f := setup(t, true, 0)

	f.reservations.EXPECT().InsertOnce(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ model.Reservation) (model.Reservation, bool, error) {
			<-ctx.Done()

			return model.Reservation{}, false, ctx.Err()
		})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.svc.SubmitReservation(ctx, janeDoe())

	assert.Equal(t, http.StatusGatewayTimeout, failure.GetCode(err))
	assert.True(t, failure.IsTimeout(err))
	assert.Equal(t, 1.0, submissions(f.metrics, metrics.KindReservation, metrics.ModeConnected, metrics.ResultTimeout))
}

func TestConnected_InvalidRequestNeverReachesStore(t *testing.T) {
	f := setup(t, true, 0)

	req := janeDoe()
	req.Guests = 9

	_, err := f.svc.SubmitReservation(context.Background(), req)

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, 1.0, submissions(f.metrics, metrics.KindReservation, metrics.ModeConnected, metrics.ResultInvalid))
}

func TestConnected_SubmitContactMessage(t *testing.T) {
	f := setup(t, true, 0)

	f.messages.EXPECT().InsertReturning(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, m contactMessageModel.ContactMessage) (contactMessageModel.ContactMessage, error) {
			assert.Equal(t, contactMessageModel.StatusUnread, m.Status)

			return m, nil
		})

	res, err := f.svc.SubmitContactMessage(context.Background(), dto.SubmitContactMessageRequest{
		Name:    "Max",
		Email:   "max@example.com",
		Message: "Do you have a private room?",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
}
