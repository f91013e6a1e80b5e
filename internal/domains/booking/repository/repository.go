package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"resort/infras/otel"
	"resort/infras/postgres"
	"resort/internal/domains/booking/model"
	"resort/shared"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	gRepo "resort/shared/repository"
	"resort/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateStatusTx(ctx context.Context, sqltx *sqlx.Tx, id, from, to, actor string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// UpdateStatusTx moves the booking to status to only while it is still in status from.
// It reports false when another request changed the status first.
func (repo *repositoryImpl) UpdateStatusTx(ctx context.Context, sqltx *sqlx.Tx, id, from, to, actor string) (bool, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: "current_status", Field: model.FieldStatus, Value: from, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	fields := map[string]any{
		model.FieldStatus:        to,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	affected, err := repo.UpdateTxAffected(ctx, sqltx, fields, filter)
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

// FilterByUser limits a query to the bookings of one user.
func FilterByUser(userID string) gDto.FilterGroup {
	return shared.FilterEq(model.FieldUserID, userID, model.TableName)
}
