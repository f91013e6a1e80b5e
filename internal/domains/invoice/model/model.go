package model

import "time"

const (
	TableName  = "invoices"
	EntityName = "invoice"

	FieldID            = "id"
	FieldBookingID     = "booking_id"
	FieldUserID        = "user_id"
	FieldInvoiceNumber = "invoice_number"
)

// Invoice is written once, in the same transaction as its booking, and never updated.
// Charges are stored rounded to cents by the numeric columns.
type Invoice struct {
	ID            string    `db:"id"`
	BookingID     string    `db:"booking_id"`
	UserID        string    `db:"user_id"`
	InvoiceNumber string    `db:"invoice_number"`
	RoomCharges   float64   `db:"room_charges"`
	FoodCharges   float64   `db:"food_charges"`
	Taxes         float64   `db:"taxes"`
	TaxRate       float64   `db:"tax_rate"`
	TotalAmount   float64   `db:"total_amount"`
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`

	CheckInDate    time.Time `db:"check_in_date"   table:"bookings"     column:"check_in_date"`
	CheckOutDate   time.Time `db:"check_out_date"  table:"bookings"     column:"check_out_date"`
	NumGuests      int       `db:"num_guests"      table:"bookings"     column:"num_guests"`
	BookingStatus  string    `db:"booking_status"  table:"bookings"     column:"status"`
	Username       string    `db:"username"        table:"users"        column:"username"`
	ResortName     string    `db:"resort_name"     table:"resorts"      column:"name"`
	ResortLocation string    `db:"resort_location" table:"resorts"      column:"location"`
	RoomType       string    `db:"room_type"       table:"rooms"        column:"room_type"`
	Beds           int       `db:"beds"            table:"rooms"        column:"beds"`
	CuisineType    *string   `db:"cuisine_type"    table:"food_options" column:"cuisine_type"`
	MealPlan       *string   `db:"meal_plan"       table:"food_options" column:"meal_plan"`
}

func (Invoice) GetJoinQuery() string {
	return "JOIN bookings ON bookings.id = invoices.booking_id " +
		"JOIN users ON users.id = invoices.user_id " +
		"JOIN resorts ON resorts.id = bookings.resort_id " +
		"JOIN rooms ON rooms.id = bookings.room_id " +
		"LEFT JOIN food_options ON food_options.id = bookings.food_option_id"
}

// Subtotal is the pre-tax amount.
func (i Invoice) Subtotal() float64 {
	return i.RoomCharges + i.FoodCharges
}
