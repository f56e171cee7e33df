package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bayleaf/config"
	"bayleaf/infras/metrics"
	"bayleaf/infras/otel"
	"bayleaf/internal/domains/contactform/model/dto"
	"bayleaf/internal/domains/contactform/notifier"
	contactMessageRepo "bayleaf/internal/domains/contactmessage/repository"
	"bayleaf/internal/domains/reservation/model"
	reservationRepo "bayleaf/internal/domains/reservation/repository"
	"bayleaf/shared/constant"
	"bayleaf/shared/failure"
	"bayleaf/shared/status"
	"bayleaf/shared/validator"

	"github.com/rs/zerolog/log"
)

const defaultSubmitTimeout = 10 * time.Second

// ContactForm takes submissions from the public website form.
type ContactForm interface {
	SubmitReservation(ctx context.Context, req dto.SubmitReservationRequest) (dto.SubmissionResponse, error)
	SubmitContactMessage(ctx context.Context, req dto.SubmitContactMessageRequest) (dto.SubmissionResponse, error)
	Status() status.Snapshot
	Demo() bool
}

type serviceImpl struct {
	reservations reservationRepo.Reservation
	messages     contactMessageRepo.ContactMessage
	notifier     notifier.Notifier
	metrics      *metrics.Metrics
	otel         otel.Otel
	timeout      time.Duration
	tracker      status.Tracker
}

// New picks the implementation once: without a table store every submission is simulated.
func New(
	reservations reservationRepo.Reservation,
	messages contactMessageRepo.ContactMessage,
	notifier notifier.Notifier,
	metrics *metrics.Metrics,
	cfg *config.Config,
	otel otel.Otel,
) ContactForm {
	if !reservations.Available() {
		log.Info().Msg("Contact form runs in demo mode, submissions are not stored")

		return newDemo(cfg, metrics, otel)
	}

	timeout := defaultSubmitTimeout
	if cfg.Reservation.SubmitTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Reservation.SubmitTimeoutSeconds) * time.Second
	}

	return &serviceImpl{
		reservations: reservations,
		messages:     messages,
		notifier:     notifier,
		metrics:      metrics,
		otel:         otel,
		timeout:      timeout,
	}
}

func (s *serviceImpl) Demo() bool {
	return false
}

func (s *serviceImpl) Status() status.Snapshot {
	return s.tracker.Snapshot()
}

// SubmitReservation stores the reservation once per idempotency key. A repeated key returns
// the stored reservation without notifying staff again.
func (s *serviceImpl) SubmitReservation(ctx context.Context, req dto.SubmitReservationRequest) (res dto.SubmissionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ContactForm.SubmitReservation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	done := s.tracker.Start()
	defer func() { done(err) }()

	defer func() {
		s.metrics.Submission(metrics.KindReservation, metrics.ModeConnected, result(err, res.Duplicate))
	}()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stored, created, err := s.reservations.InsertOnce(ctx, req.ToModel())
	if err != nil {
		if timedOut(ctx, err) {
			log.Warn().Err(err).Dur("timeout", s.timeout).Msg("reservation submission timed out")

			return res, failure.Timeout("reservation submission timed out") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to submit reservation")

		return res, fmt.Errorf("failed to submit reservation: %w", err)
	}

	res.ID = stored.ID
	res.Duplicate = !created

	scope.SetAttributes(map[string]any{
		"reservation.id":        stored.ID,
		"reservation.guests":    stored.Guests,
		"reservation.duplicate": res.Duplicate,
	})

	if !created {
		log.Info().Str("id", stored.ID).Msg("reservation already submitted with this idempotency key")

		return res, nil
	}

	log.Info().Str("id", stored.ID).Str("date", stored.Date.String()).Str("time", stored.Time).Msg("reservation submitted")

	s.notify(ctx, stored)

	return res, nil
}

func (s *serviceImpl) SubmitContactMessage(ctx context.Context, req dto.SubmitContactMessageRequest) (res dto.SubmissionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ContactForm.SubmitContactMessage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	done := s.tracker.Start()
	defer func() { done(err) }()

	defer func() {
		s.metrics.Submission(metrics.KindContactMessage, metrics.ModeConnected, result(err, false))
	}()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stored, err := s.messages.InsertReturning(ctx, req.ToModel())
	if err != nil {
		if timedOut(ctx, err) {
			log.Warn().Err(err).Dur("timeout", s.timeout).Msg("contact message submission timed out")

			return res, failure.Timeout("contact message submission timed out") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to submit contact message")

		return res, fmt.Errorf("failed to submit contact message: %w", err)
	}

	res.ID = stored.ID

	return res, nil
}

// notify hands the reservation to the notifier and drains its errors off the request path.
func (s *serviceImpl) notify(ctx context.Context, reservation model.Reservation) {
	errs := s.notifier.NotifyReservation(context.WithoutCancel(ctx), reservation)

	go func() {
		for err := range errs {
			sink := "unknown"

			var notifyErr *notifier.Error
			if errors.As(err, &notifyErr) {
				sink = notifyErr.Sink
			}

			s.metrics.NotificationFailed(sink)
			log.Warn().Err(err).Str("reservation_id", reservation.ID).Str("sink", sink).Msg("staff notification failed")
		}
	}()
}

func timedOut(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
}

func result(err error, duplicate bool) string {
	switch {
	case err == nil && duplicate:
		return metrics.ResultDuplicate
	case err == nil:
		return metrics.ResultSuccess
	case failure.IsTimeout(err):
		return metrics.ResultTimeout
	case failure.GetCode(err) == http.StatusBadRequest:
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}
