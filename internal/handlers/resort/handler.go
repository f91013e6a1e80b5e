package resort

import (
	"errors"
	"net/http"

	"resort/infras/otel"
	"resort/internal/domains/resort/model"
	"resort/internal/domains/resort/model/dto"
	"resort/internal/domains/resort/service"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"resort/shared/validator"
	"resort/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const formImage = "image"

type Handler struct {
	service service.Resort
	otel    otel.Otel
}

func New(service service.Resort, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/resorts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateResort)
		routerGroup.Get("/", handler.GetResorts)
		routerGroup.Get("/{id}", handler.GetResortByID)
		routerGroup.Patch("/{id}", handler.UpdateResort)
		routerGroup.Delete("/{id}", handler.DeleteResort)
	})
}

// CreateResort handles the creation of a new resort.
// @Summary Create a new resort
// @Description Create a resort, optionally uploading its image.
// @Tags Resort
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Resort name"
// @Param location formData string true "Resort location"
// @Param description formData string false "Resort description"
// @Param image formData file false "Resort image (png, jpg, jpeg; max 2 MB)"
// @Success 201 {object} dto.ResortResponse "Resort created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/resorts [post]
// @Security BearerAuth
func (handler *Handler) CreateResort(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateResort")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.CreateResortRequest{
		Name:        r.FormValue(model.FieldName),
		Location:    r.FormValue(model.FieldLocation),
		Description: r.FormValue(model.FieldDescription),
	}

	file, header, err := r.FormFile(formImage)
	switch {
	case err == nil:
		defer file.Close()

		req.Image = header
		req.ImageFile = file
	case !errors.Is(err, http.ErrMissingFile):
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get image from form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create resort")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Resort created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetResorts retrieves resorts based on query parameters.
// @Summary Get all resorts
// @Description Retrieve resorts with optional filtering and pagination.
// @Tags Resort
// @Accept json
// @Produce json
// @Param name query string false "Filter by name"
// @Param location query string false "Filter by location"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.GetResortsResponse "List of resorts"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/resorts [get]
func (handler *Handler) GetResorts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetResorts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sanitize(model.FieldName, model.FieldName, model.FieldLocation, constant.FieldCreatedAt)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldName, model.FieldLocation} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorLike,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	resorts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get resorts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Resorts retrieved successfully")

	response.WithJSON(w, http.StatusOK, resorts)
}

// GetResortByID retrieves a resort by its ID.
// @Summary Get a resort by ID
// @Tags Resort
// @Produce json
// @Param id path string true "Resort ID"
// @Success 200 {object} dto.ResortResponse "Resort details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/resorts/{id} [get]
func (handler *Handler) GetResortByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetResortByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	resort, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get resort by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, resort)
}

// UpdateResort updates an existing resort by its ID.
// @Summary Update a resort by ID
// @Description Update resort details; a new image replaces the stored one.
// @Tags Resort
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Resort ID"
// @Param name formData string false "Resort name"
// @Param location formData string false "Resort location"
// @Param description formData string false "Resort description"
// @Param image formData file false "Resort image"
// @Success 200 {object} response.Message "Resort updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/resorts/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateResort(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateResort")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UpdateResortRequest{
		Name:     r.FormValue(model.FieldName),
		Location: r.FormValue(model.FieldLocation),
	}

	if values, ok := r.MultipartForm.Value[model.FieldDescription]; ok && len(values) > 0 {
		req.Description = &values[0]
	}

	file, header, err := r.FormFile(formImage)
	switch {
	case err == nil:
		defer file.Close()

		req.Image = header
		req.ImageFile = file
	case !errors.Is(err, http.ErrMissingFile):
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get image from form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err = handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update resort")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Resort updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Resort updated successfully")
}

// DeleteResort deletes a resort by its ID.
// @Summary Delete a resort by ID
// @Description Deleting a resort with rooms or bookings is rejected.
// @Tags Resort
// @Produce json
// @Param id path string true "Resort ID"
// @Success 200 {object} response.Message "Resort deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/resorts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteResort(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteResort")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete resort")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Resort deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Resort deleted successfully")
}
