package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"bayleaf/infras/otel"
	"bayleaf/infras/postgres"
	"bayleaf/internal/domains/menuitem/model"
	gDto "bayleaf/shared/dto"
	gRepo "bayleaf/shared/repository"
)

type MenuItem interface {
	InsertReturning(ctx context.Context, item model.MenuItem) (model.MenuItem, error)
	Get(ctx context.Context, filter gDto.FilterGroup) (model.MenuItem, error)
	GetAvailable(ctx context.Context) ([]model.MenuItem, error)
	UpdateReturning(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) (model.MenuItem, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.MenuItem]
}

func New(db *postgres.Connection, otel otel.Otel) MenuItem {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.MenuItem](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// GetAvailable lists the items on offer grouped by category.
func (r *repositoryImpl) GetAvailable(ctx context.Context) ([]model.MenuItem, error) {
	params := gDto.QueryParams{SortBy: model.FieldCategory, SortDir: gDto.SortDirAsc}

	return r.GetAll(ctx, params, gDto.And(gDto.Eq(model.FieldIsAvailable, true)))
}
