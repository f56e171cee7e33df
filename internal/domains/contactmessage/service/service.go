package service

import (
	"context"
	"fmt"
	"slices"

	"bayleaf/infras/otel"
	"bayleaf/internal/domains/contactmessage/model"
	"bayleaf/internal/domains/contactmessage/model/dto"
	"bayleaf/internal/domains/contactmessage/repository"
	"bayleaf/shared"
	"bayleaf/shared/constant"
	gDto "bayleaf/shared/dto"
	"bayleaf/shared/failure"
	"bayleaf/shared/status"

	"github.com/rs/zerolog/log"
)

var statuses = []string{model.StatusUnread, model.StatusRead, model.StatusReplied}

type ContactMessage interface {
	Create(ctx context.Context, req dto.CreateContactMessageRequest) (dto.ContactMessageResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, status string) (dto.GetContactMessagesResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.ContactMessageResponse, error)
	Status() status.Snapshot
}

type serviceImpl struct {
	repo    repository.ContactMessage
	otel    otel.Otel
	tracker status.Tracker
}

func New(repo repository.ContactMessage, otel otel.Otel) ContactMessage {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) Status() status.Snapshot {
	return s.tracker.Snapshot()
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateContactMessageRequest) (res dto.ContactMessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ContactMessage.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	done := s.tracker.Start()
	defer func() { done(err) }()

	stored, err := s.repo.InsertReturning(ctx, req.ToModel())
	if err != nil {
		log.Error().Err(err).Msg("failed to create contact message")

		return res, fmt.Errorf("failed to create contact message: %w", err)
	}

	res.FromModel(stored)

	return res, nil
}

// GetAll always lists newest first.
func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, state string) (res dto.GetContactMessagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ContactMessage.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	done := s.tracker.Start()
	defer func() { done(err) }()

	var filter gDto.FilterGroup

	if state != "" {
		if !slices.Contains(statuses, state) {
			return res, failure.BadRequestFromString("status must be one of unread, read, replied") // nolint:wrapcheck
		}

		filter = gDto.And(gDto.Eq(model.FieldStatus, state))
	}

	params.SortBy = model.FieldCreatedAt
	params.SortDir = gDto.SortDirDesc

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count contact messages")

		return res, fmt.Errorf("failed to count contact messages: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get contact messages")

		return res, fmt.Errorf("failed to get contact messages: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.ContactMessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ContactMessage.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	done := s.tracker.Start()
	defer func() { done(err) }()

	updated, err := s.repo.UpdateReturning(ctx, map[string]any{model.FieldStatus: req.Status}, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update contact message status")

		return res, fmt.Errorf("failed to update contact message status: %w", err)
	}

	if updated.ID == "" {
		return res, failure.NotFound("contact message not found") // nolint:wrapcheck
	}

	res.FromModel(updated)

	return res, nil
}
