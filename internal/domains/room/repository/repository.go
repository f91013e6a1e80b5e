package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"resort/infras/otel"
	"resort/infras/postgres"
	"resort/internal/domains/room/model"
	gDto "resort/shared/dto"
	gRepo "resort/shared/repository"
	"resort/shared/timezone"

	"github.com/jmoiron/sqlx"
)

// adjustAvailabilityQuery applies the delta only while the result stays non-negative,
// so concurrent decrements can never oversell a room.
const adjustAvailabilityQuery = `UPDATE rooms
SET available_count = available_count + :delta, modified_at = :modified_at
WHERE id = :id AND available_count + :delta >= 0`

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	AdjustAvailability(ctx context.Context, id string, delta int) (bool, error)
	AdjustAvailabilityTx(ctx context.Context, sqltx *sqlx.Tx, id string, delta int) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// AdjustAvailability reports false when the room does not exist or the
// count would become negative.
func (repo *repositoryImpl) AdjustAvailability(ctx context.Context, id string, delta int) (bool, error) {
	return repo.adjust(ctx, nil, id, delta)
}

func (repo *repositoryImpl) AdjustAvailabilityTx(ctx context.Context, sqltx *sqlx.Tx, id string, delta int) (bool, error) {
	if sqltx == nil {
		return repo.adjust(ctx, nil, id, delta)
	}

	return repo.adjust(ctx, sqltx, id, delta)
}

func (repo *repositoryImpl) adjust(ctx context.Context, exec gRepo.Execer, id string, delta int) (bool, error) {
	affected, err := repo.ExecTx(ctx, exec, adjustAvailabilityQuery, map[string]any{
		"id":          id,
		"delta":       delta,
		"modified_at": timezone.Now(),
	})
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}
