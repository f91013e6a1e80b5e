package dto_test

import (
	"testing"

	"resort/shared/dto"

	"github.com/stretchr/testify/assert"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "equality with table",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "confirmed", Table: "bookings"},
			wantWhere: "bookings.status = :status",
			wantArgs:  map[string]any{"status": "confirmed"},
		},
		{
			name:      "at least one unit left",
			filter:    dto.Filter{Field: "available_count", Operator: dto.FilterOperatorGreaterEq, Value: 1, Table: "rooms"},
			wantWhere: "rooms.available_count >= :available_count",
			wantArgs:  map[string]any{"available_count": 1},
		},
		{
			name:      "strictly less with custom arg name",
			filter:    dto.Filter{Field: "price_per_night", Operator: dto.FilterOperatorLess, Value: 300.0, ArgName: "max_price"},
			wantWhere: "price_per_night < :max_price",
			wantArgs:  map[string]any{"max_price": 300.0},
		},
		{
			name:      "case insensitive like",
			filter:    dto.Filter{Field: "name", Operator: dto.FilterOperatorLike, Value: "beach"},
			wantWhere: "LOWER(name) LIKE LOWER(:name) ",
			wantArgs:  map[string]any{"name": "%beach%"},
		},
		{
			name:      "in over a slice",
			filter:    dto.Filter{Field: "room_type", Operator: dto.FilterOperatorIn, Value: []string{"Eco", "Luxury"}},
			wantWhere: "room_type IN (:room_type_0, :room_type_1) ",
			wantArgs:  map[string]any{"room_type_0": "Eco", "room_type_1": "Luxury"},
		},
		{
			name:      "in over a scalar renders nothing",
			filter:    dto.Filter{Field: "room_type", Operator: dto.FilterOperatorIn, Value: "Eco"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "between dates",
			filter:    dto.Filter{Field: "check_in_date", Operator: dto.FilterOperatorBetween, Value: []string{"2026-06-01", "2026-06-30"}},
			wantWhere: "check_in_date BETWEEN :check_in_date_from AND :check_in_date_to",
			wantArgs:  map[string]any{"check_in_date_from": "2026-06-01", "check_in_date_to": "2026-06-30"},
		},
		{
			name:      "between needs two bounds",
			filter:    dto.Filter{Field: "check_in_date", Operator: dto.FilterOperatorBetween, Value: []string{"2026-06-01"}},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "food_option_id", Operator: dto.FilterIsNull, Table: "bookings"},
			wantWhere: "bookings.food_option_id IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "x", Operator: "regex", Value: "y"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("empty group", func(t *testing.T) {
		group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

		where, args := group.GetWhereClause()

		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("nested groups skip empty clauses", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{Field: "resort_id", Operator: dto.FilterOperatorEq, Value: "r-1", Table: "rooms"},
				dto.FilterGroup{Operator: dto.FilterGroupOperatorOr},
				dto.FilterGroup{
					Operator: dto.FilterGroupOperatorOr,
					Filters: []any{
						dto.Filter{Field: "room_type", Operator: dto.FilterOperatorEq, Value: "Eco", ArgName: "type_a"},
						dto.Filter{Field: "room_type", Operator: dto.FilterOperatorEq, Value: "Luxury", ArgName: "type_b"},
					},
				},
				"ignored",
			},
		}

		where, args := group.GetWhereClause()

		assert.Equal(t, "(rooms.resort_id = :resort_id AND (room_type = :type_a OR room_type = :type_b))", where)
		assert.Equal(t, map[string]any{"resort_id": "r-1", "type_a": "Eco", "type_b": "Luxury"}, args)
	})

	t.Run("operator defaults to AND", func(t *testing.T) {
		group := dto.FilterGroup{
			Filters: []any{
				dto.Filter{Field: "a", Operator: dto.FilterOperatorEq, Value: 1},
				dto.Filter{Field: "b", Operator: dto.FilterOperatorEq, Value: 2},
			},
		}

		where, _ := group.GetWhereClause()

		assert.Equal(t, "(a = :a AND b = :b)", where)
	})
}
