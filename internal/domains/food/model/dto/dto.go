package dto

import (
	"resort/internal/domains/food/model"
	"resort/shared"
	gDto "resort/shared/dto"
	gModel "resort/shared/model"
	"resort/shared/timezone"

	"github.com/google/uuid"
)

type CreateFoodOptionRequest struct {
	CuisineType string  `json:"cuisine_type"  validate:"required,max=50"`
	MealPlan    string  `json:"meal_plan"     validate:"required,max=50"`
	PricePerDay float64 `json:"price_per_day" validate:"min=0"`
}

func (c *CreateFoodOptionRequest) ToModel(user string) model.FoodOption {
	now := timezone.Now()

	return model.FoodOption{
		ID:          uuid.NewString(),
		CuisineType: c.CuisineType,
		MealPlan:    c.MealPlan,
		PricePerDay: c.PricePerDay,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateFoodOptionRequest struct {
	CuisineType string   `db:"cuisine_type"  json:"cuisine_type"  validate:"omitempty,max=50"`
	MealPlan    string   `db:"meal_plan"     json:"meal_plan"     validate:"omitempty,max=50"`
	PricePerDay *float64 `db:"price_per_day" json:"price_per_day" validate:"omitempty,min=0"`
}

type FoodOptionResponse struct {
	ID          string  `json:"id"`
	CuisineType string  `json:"cuisine_type"`
	MealPlan    string  `json:"meal_plan"`
	PricePerDay float64 `json:"price_per_day"`
	gDto.Metadata
}

func (r *FoodOptionResponse) FromModel(model model.FoodOption) {
	r.ID = model.ID
	r.CuisineType = model.CuisineType
	r.MealPlan = model.MealPlan
	r.PricePerDay = model.PricePerDay
	r.Metadata.FromModel(model.Metadata)
}

type GetFoodOptionsResponse struct {
	FoodOptions []FoodOptionResponse `json:"food_options"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetFoodOptionsResponse) FromModels(models []model.FoodOption, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.FoodOptions = make([]FoodOptionResponse, len(models))
	for i, mod := range models {
		r.FoodOptions[i].FromModel(mod)
	}
}
