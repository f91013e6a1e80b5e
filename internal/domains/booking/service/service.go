package service

import (
	"context"
	"fmt"
	"time"

	"resort/config"
	"resort/infras/kafka"
	"resort/infras/otel"
	"resort/infras/snowflake"
	"resort/internal/domains/booking/model"
	"resort/internal/domains/booking/model/dto"
	"resort/internal/domains/booking/repository"
	foodModel "resort/internal/domains/food/model"
	foodRepo "resort/internal/domains/food/repository"
	invoiceDto "resort/internal/domains/invoice/model/dto"
	invoiceRepo "resort/internal/domains/invoice/repository"
	"resort/internal/domains/pricing"
	roomModel "resort/internal/domains/room/model"
	roomRepo "resort/internal/domains/room/repository"
	roomService "resort/internal/domains/room/service"
	"resort/internal/events"
	"resort/shared"
	"resort/shared/cache"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	gRepo "resort/shared/repository"
	"resort/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheMineBooking   = "booking:mine"
)

type Booking interface {
	Quote(ctx context.Context, req dto.BookingRequest) (dto.QuoteResponse, error)
	Create(ctx context.Context, req dto.BookingRequest) (dto.ConfirmationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo        repository.Booking
	roomRepo    roomRepo.Room
	foodRepo    foodRepo.FoodOption
	invoiceRepo invoiceRepo.Invoice
	transactor  gRepo.Transactor
	numbers     snowflake.Generator
	kafka       kafka.Client
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	foodRepo foodRepo.FoodOption,
	invoiceRepo invoiceRepo.Invoice,
	transactor gRepo.Transactor,
	numbers snowflake.Generator,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:        repo,
		roomRepo:    roomRepo,
		foodRepo:    foodRepo,
		invoiceRepo: invoiceRepo,
		transactor:  transactor,
		numbers:     numbers,
		kafka:       kafka,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// stay is a validated booking request together with the rows it refers to.
type stay struct {
	room     roomModel.Room
	food     *foodModel.FoodOption
	checkIn  time.Time
	checkOut time.Time
	charges  pricing.Charges
}

func (st stay) metadata(req dto.BookingRequest, guest string, taxRate float64) pricing.InvoiceMetadata {
	meta := pricing.InvoiceMetadata{
		Guest:      guest,
		ResortName: st.room.ResortName,
		Location:   st.room.ResortLocation,
		RoomType:   st.room.RoomType,
		Beds:       st.room.Beds,
		CheckIn:    st.checkIn,
		CheckOut:   st.checkOut,
		Nights:     req.Nights,
		Guests:     req.NumGuests,
		RoomRate:   st.room.PricePerNight,
		TaxRate:    taxRate,
	}

	if st.food != nil {
		meta.Meal = &pricing.MealLine{
			Cuisine: st.food.CuisineType,
			Plan:    st.food.MealPlan,
			Rate:    st.food.PricePerDay,
		}
	}

	return meta
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.BookingRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	guest, _ := ctx.Value(constant.ContextKeyUsername).(string)

	st, err := s.prepare(ctx, &req)
	if err != nil {
		return res, err
	}

	if st.room.AvailableCount <= 0 {
		return res, failure.RoomUnavailable("room is fully booked") // nolint:wrapcheck
	}

	res = dto.QuoteResponse{
		RoomID:         st.room.ID,
		ResortName:     st.room.ResortName,
		ResortLocation: st.room.ResortLocation,
		RoomType:       st.room.RoomType,
		Beds:           st.room.Beds,
		CheckInDate:    st.checkIn.Format(constant.DateOnlyFormat),
		CheckOutDate:   st.checkOut.Format(constant.DateOnlyFormat),
		Nights:         req.Nights,
		NumGuests:      req.NumGuests,
		RoomRate:       st.room.PricePerNight,
		TaxRate:        s.cfg.Booking.TaxRate,
		Charges:        st.charges,
		Summary:        pricing.RenderInvoiceText(st.charges, st.metadata(req, guest, s.cfg.Booking.TaxRate)),
	}

	if st.food != nil {
		res.FoodOptionID = &st.food.ID
		res.CuisineType = &st.food.CuisineType
		res.MealPlan = &st.food.MealPlan
		res.MealRate = &st.food.PricePerDay
	}

	return res, nil
}

// Create confirms a booking. The availability decrement, the booking row and the
// invoice row are written in one transaction, so a stay is either fully booked
// and invoiced or not persisted at all.
func (s *serviceImpl) Create(ctx context.Context, req dto.BookingRequest) (res dto.ConfirmationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	username, _ := ctx.Value(constant.ContextKeyUsername).(string)

	if userID == constant.Empty {
		return res, failure.Unauthorized("missing user identity") // nolint:wrapcheck
	}

	st, err := s.prepare(ctx, &req)
	if err != nil {
		return res, err
	}

	booking := req.ToModel(userID, st.room.ResortID, username)

	invoiceReq := invoiceDto.CreateInvoiceRequest{
		BookingID:     booking.ID,
		UserID:        userID,
		InvoiceNumber: s.numbers.InvoiceNumber(),
		Charges:       st.charges,
		TaxRate:       s.cfg.Booking.TaxRate,
	}
	invoice := invoiceReq.ToModel(username)

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		applied, txErr := s.roomRepo.AdjustAvailabilityTx(ctx, tx, req.RoomID, -1)
		if txErr != nil {
			return failure.FromDatabase(txErr) // nolint:wrapcheck
		}

		if !applied {
			return failure.RoomUnavailable("room no longer available") // nolint:wrapcheck
		}

		if txErr = s.repo.InsertTx(ctx, tx, booking); txErr != nil {
			return failure.FromDatabase(txErr) // nolint:wrapcheck
		}

		if txErr = s.invoiceRepo.InsertTx(ctx, tx, invoice); txErr != nil {
			return failure.FromDatabase(txErr) // nolint:wrapcheck
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", req.RoomID).Msg("failed to confirm booking")

		return res, err
	}

	booking.Username = username
	booking.ResortName = st.room.ResortName
	booking.ResortLocation = st.room.ResortLocation
	booking.RoomType = st.room.RoomType
	booking.Beds = st.room.Beds
	booking.PricePerNight = st.room.PricePerNight

	invoice.Username = username
	invoice.ResortName = st.room.ResortName
	invoice.RoomType = st.room.RoomType
	invoice.CheckInDate = booking.CheckInDate
	invoice.CheckOutDate = booking.CheckOutDate

	if st.food != nil {
		booking.CuisineType = &st.food.CuisineType
		booking.MealPlan = &st.food.MealPlan
	}

	meta := st.metadata(req, username, s.cfg.Booking.TaxRate)
	meta.InvoiceNumber = invoice.InvoiceNumber
	meta.IssuedAt = invoice.CreatedAt

	res.Booking.FromModel(booking)
	res.Invoice.FromModel(invoice)
	res.Text = pricing.RenderInvoiceText(st.charges, meta)

	s.invalidate(ctx, booking)
	s.publish(ctx, events.BookingEvent{
		Type:          events.TypeBookingConfirmed,
		BookingID:     booking.ID,
		InvoiceID:     invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		UserID:        userID,
		RoomID:        booking.RoomID,
		Status:        booking.Status,
		TotalAmount:   invoice.TotalAmount,
		OccurredAt:    timezone.Now(),
	})

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, cacheGetAllBooking, req, filter)
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return res, failure.Unauthorized("missing user identity") // nolint:wrapcheck
	}

	return s.list(ctx, shared.BuildCacheKey(cacheMineBooking, userID), req, repository.FilterByUser(userID))
}

func (s *serviceImpl) list(ctx context.Context, prefix string, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(prefix, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr != nil {
		booking, getErr := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if getErr != nil {
			log.Error().Err(getErr).Msg("failed to get booking")

			return res, fmt.Errorf("failed to get booking: %w", getErr)
		}

		if booking.ID == constant.Empty {
			return res, failure.NotFound("booking not found") // nolint:wrapcheck
		}

		res.FromModel(booking)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}()
	}

	if !shared.CanAccess(ctx, res.UserID) {
		return dto.BookingResponse{}, failure.Forbidden("booking belongs to another user") // nolint:wrapcheck
	}

	return res, nil
}

// UpdateStatus completes or cancels a confirmed booking. Cancelling returns the
// room unit to the pool in the same transaction.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _ := ctx.Value(constant.ContextKeyUsername).(string)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if !model.CanTransition(booking.Status, req.Status) {
		return res, failure.Conflict(fmt.Sprintf("cannot change booking status from %s to %s", booking.Status, req.Status)) // nolint:wrapcheck
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		updated, txErr := s.repo.UpdateStatusTx(ctx, tx, id, booking.Status, req.Status, actor)
		if txErr != nil {
			return failure.FromDatabase(txErr) // nolint:wrapcheck
		}

		if !updated {
			return failure.Conflict("booking status was changed by another request") // nolint:wrapcheck
		}

		if req.Status != model.StatusCancelled {
			return nil
		}

		applied, txErr := s.roomRepo.AdjustAvailabilityTx(ctx, tx, booking.RoomID, 1)
		if txErr != nil {
			return failure.FromDatabase(txErr) // nolint:wrapcheck
		}

		if !applied {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking status")

		return res, err
	}

	booking.Status = req.Status
	booking.ModifiedAt = timezone.Now()
	booking.ModifiedBy = actor

	res.FromModel(booking)

	s.invalidate(ctx, booking)

	if req.Status == model.StatusCancelled {
		s.publish(ctx, events.BookingEvent{
			Type:       events.TypeBookingCancelled,
			BookingID:  booking.ID,
			UserID:     booking.UserID,
			RoomID:     booking.RoomID,
			Status:     booking.Status,
			OccurredAt: timezone.Now(),
		})
	}

	return res, nil
}

// prepare validates the request against the application limits and the referenced
// rows and prices the stay. Nothing is written.
func (s *serviceImpl) prepare(ctx context.Context, req *dto.BookingRequest) (st stay, err error) {
	if req.FoodOptionID != nil && *req.FoodOptionID == constant.Empty {
		req.FoodOptionID = nil
	}

	st.checkIn = req.CheckIn()
	st.checkOut = pricing.CheckOutDate(st.checkIn, req.Nights)

	today := timezone.Today()
	if st.checkIn.Before(time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)) {
		return st, failure.BadRequestFromString("check-in date cannot be in the past") // nolint:wrapcheck
	}

	if req.Nights < 1 || req.Nights > s.cfg.Booking.MaxNights {
		return st, failure.BadRequestFromString(fmt.Sprintf("nights must be between 1 and %d", s.cfg.Booking.MaxNights)) // nolint:wrapcheck
	}

	if req.NumGuests < 1 || req.NumGuests > s.cfg.Booking.MaxGuests {
		return st, failure.BadRequestFromString(fmt.Sprintf("guests must be between 1 and %d", s.cfg.Booking.MaxGuests)) // nolint:wrapcheck
	}

	st.room, err = s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return st, fmt.Errorf("failed to get room: %w", err)
	}

	if st.room.ID == constant.Empty {
		return st, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if capacity := st.room.Beds * s.cfg.Booking.GuestsPerBed; req.NumGuests > capacity {
		return st, failure.BadRequestFromString(fmt.Sprintf("room sleeps at most %d guests", capacity)) // nolint:wrapcheck
	}

	var mealRate *float64

	if req.HasMeal() {
		food, getErr := s.foodRepo.Get(ctx, shared.FilterByID(*req.FoodOptionID, foodModel.FieldID, foodModel.TableName))
		if getErr != nil {
			log.Error().Err(getErr).Msg("failed to get food option")

			return st, fmt.Errorf("failed to get food option: %w", getErr)
		}

		if food.ID == constant.Empty {
			return st, failure.NotFound("food option not found") // nolint:wrapcheck
		}

		st.food = &food
		mealRate = &food.PricePerDay
	}

	st.charges, err = pricing.ComputeCharges(pricing.ChargeInput{
		RoomRate: st.room.PricePerNight,
		Beds:     st.room.Beds,
		MealRate: mealRate,
		Nights:   req.Nights,
		TaxRate:  s.cfg.Booking.TaxRate,
	})
	if err != nil {
		return st, failure.BadRequest(err) // nolint:wrapcheck
	}

	return st, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, booking.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(roomService.CacheGetRoom, booking.RoomID)); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheMineBooking, booking.UserID))
		shared.InvalidateCaches(c, s.cache, roomService.CacheGetAllRoom)
	}()
}

func (s *serviceImpl) publish(ctx context.Context, event events.BookingEvent) {
	if !s.cfg.Kafka.Enable {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, event.Message()); err != nil {
			log.Error().Err(err).Str("booking_id", event.BookingID).Str("type", event.Type).Msg("failed to publish booking event")
		}
	}()
}
