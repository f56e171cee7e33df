package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"bayleaf/infras/otel"
	"bayleaf/infras/postgres"
	"bayleaf/internal/domains/reservation/model"
	gDto "bayleaf/shared/dto"
	gRepo "bayleaf/shared/repository"
)

type Reservation interface {
	Available() bool
	InsertOnce(ctx context.Context, reservation model.Reservation) (model.Reservation, bool, error)
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Reservation, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateReturning(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) (model.Reservation, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// InsertOnce stores the reservation unless its idempotency key was used before, in which
// case the earlier row is returned and the bool is false.
func (r *repositoryImpl) InsertOnce(ctx context.Context, reservation model.Reservation) (model.Reservation, bool, error) {
	stored, created, err := r.InsertIgnoreConflict(ctx, reservation, model.FieldIdempotencyKey)
	if err != nil || created {
		return stored, created, err
	}

	stored, err = r.Get(ctx, gDto.And(gDto.Eq(model.FieldIdempotencyKey, reservation.IdempotencyKey)))
	if err != nil {
		return stored, false, fmt.Errorf("failed to load reservation by idempotency key: %w", err)
	}

	return stored, false, nil
}
