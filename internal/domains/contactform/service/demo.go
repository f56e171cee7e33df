package service

import (
	"context"
	"time"

	"bayleaf/config"
	"bayleaf/infras/metrics"
	"bayleaf/infras/otel"
	"bayleaf/internal/domains/contactform/model/dto"
	"bayleaf/shared/constant"
	"bayleaf/shared/failure"
	"bayleaf/shared/status"

	"github.com/rs/zerolog/log"
)

// demoImpl pretends to submit: it waits, logs the would-be record and reports success.
type demoImpl struct {
	delay   time.Duration
	metrics *metrics.Metrics
	otel    otel.Otel
	tracker status.Tracker
}

func newDemo(cfg *config.Config, metrics *metrics.Metrics, otel otel.Otel) *demoImpl {
	return &demoImpl{
		delay:   time.Duration(max(cfg.Reservation.DemoDelayMillis, 0)) * time.Millisecond,
		metrics: metrics,
		otel:    otel,
	}
}

func (d *demoImpl) Demo() bool {
	return true
}

func (d *demoImpl) Status() status.Snapshot {
	return d.tracker.Snapshot()
}

func (d *demoImpl) SubmitReservation(ctx context.Context, req dto.SubmitReservationRequest) (res dto.SubmissionResponse, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ContactForm.SubmitReservation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	done := d.tracker.Start()
	defer func() { done(err) }()

	defer func() {
		d.metrics.Submission(metrics.KindReservation, metrics.ModeDemo, result(err, false))
	}()

	if err = d.wait(ctx); err != nil {
		return res, err
	}

	log.Info().
		Str("name", req.Name).
		Str("email", req.Email).
		Str("date", req.Date).
		Str("time", req.Time).
		Int("guests", req.Guests).
		Msg("Demo mode: reservation would have been submitted")

	res.Demo = true

	return res, nil
}

func (d *demoImpl) SubmitContactMessage(ctx context.Context, req dto.SubmitContactMessageRequest) (res dto.SubmissionResponse, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ContactForm.SubmitContactMessage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	done := d.tracker.Start()
	defer func() { done(err) }()

	defer func() {
		d.metrics.Submission(metrics.KindContactMessage, metrics.ModeDemo, result(err, false))
	}()

	if err = d.wait(ctx); err != nil {
		return res, err
	}

	log.Info().
		Str("name", req.Name).
		Str("email", req.Email).
		Msg("Demo mode: contact message would have been submitted")

	res.Demo = true

	return res, nil
}

func (d *demoImpl) wait(ctx context.Context) error {
	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return failure.FromContext(ctx.Err(), "submission timed out") // nolint:wrapcheck
	}
}
