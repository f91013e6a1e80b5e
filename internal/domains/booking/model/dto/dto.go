package dto

import (
	"time"

	"resort/internal/domains/booking/model"
	invoiceDto "resort/internal/domains/invoice/model/dto"
	"resort/internal/domains/pricing"
	"resort/shared"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	gModel "resort/shared/model"
	"resort/shared/timezone"

	"github.com/google/uuid"
)

// BookingRequest describes a stay. It is shared by the quote and the confirmation endpoints.
type BookingRequest struct {
	RoomID       string  `json:"room_id"        validate:"required,uuid"`
	FoodOptionID *string `json:"food_option_id" validate:"omitempty,uuid"`
	CheckInDate  string  `json:"check_in_date"  validate:"required,dateonly"`
	Nights       int     `json:"nights"         validate:"required,min=1,max=30"`
	NumGuests    int     `json:"num_guests"     validate:"required,min=1,max=20"`
}

// CheckIn parses the check-in date as a calendar date. The value is already validated.
func (r *BookingRequest) CheckIn() time.Time {
	checkIn, _ := time.Parse(constant.DateOnlyFormat, r.CheckInDate)

	return checkIn
}

// HasMeal reports whether a food option was chosen.
func (r *BookingRequest) HasMeal() bool {
	return r.FoodOptionID != nil && *r.FoodOptionID != constant.Empty
}

func (r *BookingRequest) ToModel(userID, resortID, actor string) model.Booking {
	now := timezone.Now()
	checkIn := r.CheckIn()

	booking := model.Booking{
		ID:           uuid.NewString(),
		UserID:       userID,
		ResortID:     resortID,
		RoomID:       r.RoomID,
		CheckInDate:  checkIn,
		CheckOutDate: pricing.CheckOutDate(checkIn, r.Nights),
		NumGuests:    r.NumGuests,
		Status:       model.StatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}

	if r.HasMeal() {
		booking.FoodOptionID = r.FoodOptionID
	}

	return booking
}

type UpdateStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=confirmed completed cancelled"`
}

type QuoteResponse struct {
	RoomID         string          `json:"room_id"`
	ResortName     string          `json:"resort_name"`
	ResortLocation string          `json:"resort_location"`
	RoomType       string          `json:"room_type"`
	Beds           int             `json:"beds"`
	FoodOptionID   *string         `json:"food_option_id,omitempty"`
	CuisineType    *string         `json:"cuisine_type,omitempty"`
	MealPlan       *string         `json:"meal_plan,omitempty"`
	CheckInDate    string          `json:"check_in_date"`
	CheckOutDate   string          `json:"check_out_date"`
	Nights         int             `json:"nights"`
	NumGuests      int             `json:"num_guests"`
	RoomRate       float64         `json:"room_rate"`
	MealRate       *float64        `json:"meal_rate,omitempty"`
	TaxRate        float64         `json:"tax_rate"`
	Charges        pricing.Charges `json:"charges"`
	Summary        string          `json:"summary"`
}

type BookingResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	Username       string  `json:"username"`
	ResortID       string  `json:"resort_id"`
	ResortName     string  `json:"resort_name"`
	ResortLocation string  `json:"resort_location"`
	RoomID         string  `json:"room_id"`
	RoomType       string  `json:"room_type"`
	Beds           int     `json:"beds"`
	FoodOptionID   *string `json:"food_option_id,omitempty"`
	CuisineType    *string `json:"cuisine_type,omitempty"`
	MealPlan       *string `json:"meal_plan,omitempty"`
	CheckInDate    string  `json:"check_in_date"`
	CheckOutDate   string  `json:"check_out_date"`
	Nights         int     `json:"nights"`
	NumGuests      int     `json:"num_guests"`
	Status         string  `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.Username = model.Username
	r.ResortID = model.ResortID
	r.ResortName = model.ResortName
	r.ResortLocation = model.ResortLocation
	r.RoomID = model.RoomID
	r.RoomType = model.RoomType
	r.Beds = model.Beds
	r.FoodOptionID = model.FoodOptionID
	r.CuisineType = model.CuisineType
	r.MealPlan = model.MealPlan
	r.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	r.Nights = model.Nights()
	r.NumGuests = model.NumGuests
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// ConfirmationResponse is returned once the booking and its invoice are committed.
type ConfirmationResponse struct {
	Booking BookingResponse            `json:"booking"`
	Invoice invoiceDto.InvoiceResponse `json:"invoice"`
	Text    string                     `json:"invoice_text"`
}
