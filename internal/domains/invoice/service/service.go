package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Invoice=MockInvoiceService

import (
	"context"
	"fmt"

	"resort/config"
	"resort/infras/otel"
	"resort/internal/domains/invoice/model"
	"resort/internal/domains/invoice/model/dto"
	"resort/internal/domains/invoice/repository"
	"resort/internal/domains/pricing"
	"resort/shared"
	"resort/shared/cache"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"

	"github.com/rs/zerolog/log"
)

const cacheGetInvoice = "invoice:get"

type Invoice interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetInvoicesResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetInvoicesResponse, error)
	Get(ctx context.Context, id string) (dto.InvoiceResponse, error)
	GetByBooking(ctx context.Context, bookingID string) (dto.InvoiceResponse, error)
	Render(ctx context.Context, id string) (string, error)
}

type serviceImpl struct {
	repo  repository.Invoice
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Invoice, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Invoice {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInvoicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetInvoicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return res, failure.Unauthorized("missing user identity") // nolint:wrapcheck
	}

	return s.list(ctx, req, shared.FilterEq(model.FieldUserID, userID, model.TableName))
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInvoicesResponse, err error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count invoices")

		return res, fmt.Errorf("failed to count invoices: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoices")

		return res, fmt.Errorf("failed to get invoices: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

// Get serves from cache freely since invoices never change after they are issued.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetInvoice, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr != nil {
		invoice, getErr := s.load(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if getErr != nil {
			return res, getErr
		}

		res.FromModel(invoice)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save invoice to cache")
			}
		}()
	}

	if !shared.CanAccess(ctx, res.UserID) {
		return dto.InvoiceResponse{}, failure.Forbidden("invoice belongs to another user") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) GetByBooking(ctx context.Context, bookingID string) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	invoice, err := s.load(ctx, shared.FilterEq(model.FieldBookingID, bookingID, model.TableName))
	if err != nil {
		return res, err
	}

	if !shared.CanAccess(ctx, invoice.UserID) {
		return res, failure.Forbidden("invoice belongs to another user") // nolint:wrapcheck
	}

	res.FromModel(invoice)

	return res, nil
}

// Render returns the fixed-width invoice document.
func (s *serviceImpl) Render(ctx context.Context, id string) (res string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Render")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	invoice, err := s.load(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	if !shared.CanAccess(ctx, invoice.UserID) {
		return res, failure.Forbidden("invoice belongs to another user") // nolint:wrapcheck
	}

	return pricing.RenderInvoiceText(dto.ToDocument(invoice)), nil
}

func (s *serviceImpl) load(ctx context.Context, filter gDto.FilterGroup) (model.Invoice, error) {
	invoice, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice")

		return invoice, fmt.Errorf("failed to get invoice: %w", err)
	}

	if invoice.ID == constant.Empty {
		return invoice, failure.NotFound("invoice not found") // nolint:wrapcheck
	}

	return invoice, nil
}
