package food

import (
	"net/http"

	"resort/infras/otel"
	"resort/internal/domains/food/model"
	"resort/internal/domains/food/model/dto"
	"resort/internal/domains/food/service"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/validator"
	"resort/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.FoodOption
	otel    otel.Otel
}

func New(service service.FoodOption, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/food-options", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateFoodOption)
		routerGroup.Get("/", handler.GetFoodOptions)
		routerGroup.Get("/{id}", handler.GetFoodOptionByID)
		routerGroup.Patch("/{id}", handler.UpdateFoodOption)
		routerGroup.Delete("/{id}", handler.DeleteFoodOption)
	})
}

// CreateFoodOption handles the creation of a meal plan.
// @Summary Create a food option
// @Tags FoodOption
// @Accept json
// @Produce json
// @Param request body dto.CreateFoodOptionRequest true "Create Food Option Request"
// @Success 201 {object} dto.FoodOptionResponse "Food option created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/food-options [post]
// @Security BearerAuth
func (handler *Handler) CreateFoodOption(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFoodOption")
	defer scope.End()

	req := dto.CreateFoodOptionRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create food option")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetFoodOptions lists meal plans.
// @Summary Get all food options
// @Tags FoodOption
// @Produce json
// @Param cuisine_type query string false "Filter by cuisine"
// @Param meal_plan query string false "Filter by meal plan"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.GetFoodOptionsResponse "List of food options"
// @Failure 500 {object} response.Error
// @Router /v1/food-options [get]
func (handler *Handler) GetFoodOptions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFoodOptions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	if queryParams.SortDir == "" {
		queryParams.SortDir = gDto.SortDirAsc
	}

	queryParams.Sanitize(model.FieldPricePerDay, model.FieldPricePerDay, model.FieldCuisineType, model.FieldMealPlan)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldCuisineType, model.FieldMealPlan} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorLike,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	options, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get food options")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, options)
}

// GetFoodOptionByID retrieves a meal plan by its ID.
// @Summary Get a food option by ID
// @Tags FoodOption
// @Produce json
// @Param id path string true "Food option ID"
// @Success 200 {object} dto.FoodOptionResponse "Food option details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/food-options/{id} [get]
func (handler *Handler) GetFoodOptionByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFoodOptionByID")
	defer scope.End()

	option, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get food option by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, option)
}

// UpdateFoodOption updates a meal plan by its ID.
// @Summary Update a food option by ID
// @Tags FoodOption
// @Accept json
// @Produce json
// @Param id path string true "Food option ID"
// @Param request body dto.UpdateFoodOptionRequest true "Update Food Option Request"
// @Success 200 {object} response.Message "Food option updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/food-options/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateFoodOption(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateFoodOption")
	defer scope.End()

	req := dto.UpdateFoodOptionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update food option")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Food option updated successfully")
}

// DeleteFoodOption deletes a meal plan by its ID.
// @Summary Delete a food option by ID
// @Tags FoodOption
// @Produce json
// @Param id path string true "Food option ID"
// @Success 200 {object} response.Message "Food option deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/food-options/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteFoodOption(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFoodOption")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete food option")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Food option deleted successfully")
}
