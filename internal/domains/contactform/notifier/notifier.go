// Package notifier tells staff about new reservations. Delivery is best effort: failures come
// back on the returned channel and never undo the reservation.
package notifier

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=../mocks/notifier_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bayleaf/config"
	"bayleaf/infras/kafka"
	"bayleaf/infras/metrics"
	"bayleaf/infras/otel"
	"bayleaf/internal/domains/contactform/model/dto"
	contactMessageModel "bayleaf/internal/domains/contactmessage/model"
	contactMessageRepo "bayleaf/internal/domains/contactmessage/repository"
	"bayleaf/internal/domains/reservation/model"
	"bayleaf/shared/constant"
	"bayleaf/shared/timezone"

	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second

type Notifier interface {
	NotifyReservation(ctx context.Context, reservation model.Reservation) <-chan error
}

// Error names the sink a notification could not reach.
type Error struct {
	Sink string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("notify %s: %v", e.Sink, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type notifierImpl struct {
	messages contactMessageRepo.ContactMessage
	producer kafka.Client
	cfg      *config.Config
	otel     otel.Otel
}

// New accepts a nil producer; reservations are then only announced as contact messages.
func New(messages contactMessageRepo.ContactMessage, producer kafka.Client, cfg *config.Config, otel otel.Otel) Notifier {
	return &notifierImpl{
		messages: messages,
		producer: producer,
		cfg:      cfg,
		otel:     otel,
	}
}

// NotifyReservation writes the staff message and publishes the reservation event in the
// background. The channel is closed once both attempts are over.
func (n *notifierImpl) NotifyReservation(ctx context.Context, reservation model.Reservation) <-chan error {
	errs := make(chan error, 2)

	go func() {
		defer close(errs)

		timeout := defaultTimeout
		if n.cfg.Reservation.NotifyTimeoutSeconds > 0 {
			timeout = time.Duration(n.cfg.Reservation.NotifyTimeoutSeconds) * time.Second
		}

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		ctx, scope := n.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".NotifyReservation")
		defer scope.End()

		scope.SetAttribute("reservation.id", reservation.ID)

		if _, err := n.messages.InsertReturning(ctx, StaffMessage(reservation)); err != nil {
			scope.TraceError(err)
			errs <- &Error{Sink: metrics.SinkContactMessage, Err: err}
		}

		if n.producer == nil {
			return
		}

		var event dto.ReservationEvent
		event.FromModel(reservation)

		if err := n.producer.SendMessages(ctx, n.cfg.Kafka.Topic, kafka.Message{Key: reservation.ID, Value: event}); err != nil {
			scope.TraceError(err)
			errs <- &Error{Sink: metrics.SinkKafka, Err: err}
		}
	}()

	return errs
}

// StaffMessage derives the unread contact message that announces a reservation.
func StaffMessage(reservation model.Reservation) contactMessageModel.ContactMessage {
	subject := fmt.Sprintf("Table Reservation - %s at %s", reservation.Date, reservation.Time)

	return contactMessageModel.ContactMessage{
		ID:        uuid.NewString(),
		Name:      reservation.Name,
		Email:     reservation.Email,
		Subject:   &subject,
		Message:   staffMessageBody(reservation),
		Status:    contactMessageModel.StatusUnread,
		CreatedAt: timezone.Now(),
	}
}

func staffMessageBody(reservation model.Reservation) string {
	phone := "Not provided"
	if reservation.Phone != nil && *reservation.Phone != "" {
		phone = *reservation.Phone
	}

	requests := "None"
	if reservation.Message != nil && *reservation.Message != "" {
		requests = *reservation.Message
	}

	lines := []string{
		"Reservation Details:",
		"- Name: " + reservation.Name,
		"- Email: " + reservation.Email,
		"- Phone: " + phone,
		"- Date: " + reservation.Date.String(),
		"- Time: " + reservation.Time,
		"- Guests: " + strconv.Itoa(reservation.Guests),
		"- Special Requests: " + requests,
	}

	return strings.Join(lines, "\n")
}
