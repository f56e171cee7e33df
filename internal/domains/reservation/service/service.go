package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Reservation=MockReservationService

import (
	"context"
	"fmt"
	"slices"

	"bayleaf/infras/otel"
	"bayleaf/internal/domains/reservation/model"
	"bayleaf/internal/domains/reservation/model/dto"
	"bayleaf/internal/domains/reservation/repository"
	"bayleaf/shared"
	"bayleaf/shared/constant"
	gDto "bayleaf/shared/dto"
	"bayleaf/shared/failure"
	"bayleaf/shared/status"
	"bayleaf/shared/timezone"

	"github.com/rs/zerolog/log"
)

var statuses = []string{model.StatusPending, model.StatusConfirmed, model.StatusCancelled}

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.CreateReservationResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, status string) (dto.GetReservationsResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.ReservationResponse, error)
	Status() status.Snapshot
}

type serviceImpl struct {
	repo    repository.Reservation
	otel    otel.Otel
	tracker status.Tracker
}

func New(repo repository.Reservation, otel otel.Otel) Reservation {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) Status() status.Snapshot {
	return s.tracker.Snapshot()
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.CreateReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	done := s.tracker.Start()
	defer func() { done(err) }()

	stored, created, err := s.repo.InsertOnce(ctx, req.ToModel())
	if err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	res.Reservation.FromModel(stored)
	res.Duplicate = !created

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, state string) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	done := s.tracker.Start()
	defer func() { done(err) }()

	var filter gDto.FilterGroup

	if state != "" {
		if !slices.Contains(statuses, state) {
			return res, failure.BadRequestFromString("status must be one of pending, confirmed, cancelled") // nolint:wrapcheck
		}

		filter = gDto.And(gDto.Eq(model.FieldStatus, state))
	}

	if params.SortBy == "" {
		params.SortBy = model.FieldCreatedAt
		params.SortDir = gDto.SortDirDesc
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	done := s.tracker.Start()
	defer func() { done(err) }()

	reservation, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	return res, nil
}

// UpdateStatus refuses to touch a cancelled reservation. The cancelled check is repeated in
// the update filter so a concurrent cancel still wins.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	done := s.tracker.Start()
	defer func() { done(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if current.Cancelled() {
		return res, failure.Conflict("cancelled reservations cannot change status") // nolint:wrapcheck
	}

	filter := gDto.And(
		gDto.Eq(model.FieldID, id),
		gDto.Filter{ArgName: "current_status", Field: model.FieldStatus, Value: model.StatusCancelled, Operator: gDto.FilterOperatorNotEq},
	)

	updated, err := s.repo.UpdateReturning(ctx, map[string]any{
		model.FieldStatus:       req.Status,
		constant.FieldUpdatedAt: timezone.Now(),
	}, filter)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update reservation status")

		return res, fmt.Errorf("failed to update reservation status: %w", err)
	}

	if updated.ID == "" {
		return res, failure.Conflict("cancelled reservations cannot change status") // nolint:wrapcheck
	}

	log.Info().Str("id", id).Str("from", current.Status).Str("to", updated.Status).Msg("reservation status updated")

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == "" {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	return reservation, nil
}
