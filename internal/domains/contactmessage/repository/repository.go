package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"bayleaf/infras/otel"
	"bayleaf/infras/postgres"
	"bayleaf/internal/domains/contactmessage/model"
	gDto "bayleaf/shared/dto"
	gRepo "bayleaf/shared/repository"
)

type ContactMessage interface {
	Available() bool
	InsertReturning(ctx context.Context, message model.ContactMessage) (model.ContactMessage, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.ContactMessage, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateReturning(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) (model.ContactMessage, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.ContactMessage]
}

func New(db *postgres.Connection, otel otel.Otel) ContactMessage {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ContactMessage](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
