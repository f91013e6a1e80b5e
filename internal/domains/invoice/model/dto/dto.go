package dto

import (
	"resort/internal/domains/invoice/model"
	"resort/internal/domains/pricing"
	"resort/shared"
	"resort/shared/constant"
	"resort/shared/timezone"

	"github.com/google/uuid"
)

// CreateInvoiceRequest is filled by the booking flow, never by a client.
type CreateInvoiceRequest struct {
	BookingID     string
	UserID        string
	InvoiceNumber string
	Charges       pricing.Charges
	TaxRate       float64
}

func (r *CreateInvoiceRequest) ToModel(actor string) model.Invoice {
	return model.Invoice{
		ID:            uuid.NewString(),
		BookingID:     r.BookingID,
		UserID:        r.UserID,
		InvoiceNumber: r.InvoiceNumber,
		RoomCharges:   r.Charges.RoomCharges,
		FoodCharges:   r.Charges.FoodCharges,
		Taxes:         r.Charges.Taxes,
		TaxRate:       r.TaxRate,
		TotalAmount:   r.Charges.Total,
		CreatedAt:     timezone.Now(),
		CreatedBy:     actor,
	}
}

type InvoiceResponse struct {
	ID            string  `json:"id"`
	BookingID     string  `json:"booking_id"`
	UserID        string  `json:"user_id"`
	Username      string  `json:"username,omitempty"`
	InvoiceNumber string  `json:"invoice_number"`
	ResortName    string  `json:"resort_name,omitempty"`
	RoomType      string  `json:"room_type,omitempty"`
	CheckInDate   string  `json:"check_in_date,omitempty"`
	CheckOutDate  string  `json:"check_out_date,omitempty"`
	RoomCharges   float64 `json:"room_charges"`
	FoodCharges   float64 `json:"food_charges"`
	Subtotal      float64 `json:"subtotal"`
	Taxes         float64 `json:"taxes"`
	TaxRate       float64 `json:"tax_rate"`
	TotalAmount   float64 `json:"total_amount"`
	CreatedAt     string  `json:"created_at"`
	CreatedBy     string  `json:"created_by"`
}

func (r *InvoiceResponse) FromModel(model model.Invoice) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.UserID = model.UserID
	r.Username = model.Username
	r.InvoiceNumber = model.InvoiceNumber
	r.ResortName = model.ResortName
	r.RoomType = model.RoomType
	r.RoomCharges = model.RoomCharges
	r.FoodCharges = model.FoodCharges
	r.Subtotal = model.Subtotal()
	r.Taxes = model.Taxes
	r.TaxRate = model.TaxRate
	r.TotalAmount = model.TotalAmount
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	r.CreatedBy = model.CreatedBy

	if !model.CheckInDate.IsZero() {
		r.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
		r.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	}
}

type GetInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetInvoicesResponse) FromModels(models []model.Invoice, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Invoices = make([]InvoiceResponse, len(models))
	for i, mod := range models {
		r.Invoices[i].FromModel(mod)
	}
}

// ToDocument rebuilds the charges and the printable metadata of a stored invoice.
// Rates are derived from the stored charges so a later price change does not alter
// a printed invoice.
func ToDocument(inv model.Invoice) (pricing.Charges, pricing.InvoiceMetadata) {
	nights := pricing.NightsBetween(inv.CheckInDate, inv.CheckOutDate)

	charges := pricing.Charges{
		RoomCharges: inv.RoomCharges,
		FoodCharges: inv.FoodCharges,
		Subtotal:    inv.Subtotal(),
		Taxes:       inv.Taxes,
		Total:       inv.TotalAmount,
	}

	meta := pricing.InvoiceMetadata{
		InvoiceNumber: inv.InvoiceNumber,
		Guest:         inv.Username,
		ResortName:    inv.ResortName,
		Location:      inv.ResortLocation,
		RoomType:      inv.RoomType,
		Beds:          inv.Beds,
		CheckIn:       inv.CheckInDate,
		CheckOut:      inv.CheckOutDate,
		Nights:        nights,
		Guests:        inv.NumGuests,
		TaxRate:       inv.TaxRate,
		IssuedAt:      timezone.ToAppTime(inv.CreatedAt),
	}

	if nights > 0 {
		meta.RoomRate = inv.RoomCharges / float64(nights)
	}

	if inv.CuisineType != nil && inv.MealPlan != nil {
		meta.Meal = &pricing.MealLine{Cuisine: *inv.CuisineType, Plan: *inv.MealPlan}

		if nights > 0 {
			meta.Meal.Rate = inv.FoodCharges / float64(nights)
		}
	}

	return charges, meta
}
