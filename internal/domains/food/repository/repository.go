package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"resort/infras/otel"
	"resort/infras/postgres"
	"resort/internal/domains/food/model"
	gDto "resort/shared/dto"
	gRepo "resort/shared/repository"
)

type FoodOption interface {
	Insert(ctx context.Context, model model.FoodOption) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.FoodOption, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.FoodOption, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.FoodOption]
}

func New(db *postgres.Connection, otel otel.Otel) FoodOption {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.FoodOption](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
