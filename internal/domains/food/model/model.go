package model

import "resort/shared/model"

const (
	TableName  = "food_options"
	EntityName = "food_option"

	FieldID          = "id"
	FieldCuisineType = "cuisine_type"
	FieldMealPlan    = "meal_plan"
	FieldPricePerDay = "price_per_day"
)

type FoodOption struct {
	ID          string  `db:"id"`
	CuisineType string  `db:"cuisine_type"`
	MealPlan    string  `db:"meal_plan"`
	PricePerDay float64 `db:"price_per_day"`
	model.Metadata
}
