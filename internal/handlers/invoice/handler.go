package invoice

import (
	"net/http"

	"resort/infras/otel"
	"resort/internal/domains/invoice/model"
	"resort/internal/domains/invoice/service"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Invoice
	otel    otel.Otel
}

func New(service service.Invoice, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/invoices", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetInvoices)
		routerGroup.Get("/mine", handler.GetMyInvoices)
		routerGroup.Get("/{id}", handler.GetInvoiceByID)
		routerGroup.Get("/{id}/print", handler.PrintInvoice)
	})
}

// GetInvoices lists every invoice.
// @Summary Get all invoices
// @Tags Invoice
// @Produce json
// @Param user_id query string false "Filter by user"
// @Param booking_id query string false "Filter by booking"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.GetInvoicesResponse "List of invoices"
// @Failure 500 {object} response.Error
// @Router /v1/invoices [get]
// @Security BearerAuth
func (handler *Handler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoices")
	defer scope.End()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldUserID, model.FieldBookingID} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	invoices, err := handler.service.GetAll(ctx, invoiceQueryParams(r), filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoices")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoices)
}

// GetMyInvoices lists the invoices of the signed in user.
// @Summary Get my invoices
// @Tags Invoice
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.GetInvoicesResponse "List of invoices"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyInvoices")
	defer scope.End()

	invoices, err := handler.service.GetMine(ctx, invoiceQueryParams(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoices of user")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoices)
}

// GetInvoiceByID retrieves an invoice by its ID.
// @Summary Get an invoice by ID
// @Tags Invoice
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse "Invoice details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetInvoiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoiceByID")
	defer scope.End()

	invoice, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoice by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoice)
}

// PrintInvoice renders the plain text invoice document.
// @Summary Print an invoice
// @Tags Invoice
// @Produce plain
// @Param id path string true "Invoice ID"
// @Success 200 {string} string "Invoice document"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices/{id}/print [get]
// @Security BearerAuth
func (handler *Handler) PrintInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PrintInvoice")
	defer scope.End()

	text, err := handler.service.Render(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to render invoice")

		response.WithError(w, err)

		return
	}

	response.WithText(w, http.StatusOK, text)
}

func invoiceQueryParams(r *http.Request) gDto.QueryParams {
	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sanitize(constant.FieldCreatedAt, constant.FieldCreatedAt, model.FieldInvoiceNumber)

	return queryParams
}
