package model

import (
	"time"

	"resort/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldUserID       = "user_id"
	FieldResortID     = "resort_id"
	FieldRoomID       = "room_id"
	FieldFoodOptionID = "food_option_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldNumGuests    = "num_guests"
	FieldStatus       = "status"
)

const (
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Booking is a confirmed reservation of one room unit. The joined columns are
// read-only and describe the booked room at read time.
type Booking struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	ResortID       string    `db:"resort_id"`
	RoomID         string    `db:"room_id"`
	FoodOptionID   *string   `db:"food_option_id"`
	CheckInDate    time.Time `db:"check_in_date"`
	CheckOutDate   time.Time `db:"check_out_date"`
	NumGuests      int       `db:"num_guests"`
	Status         string    `db:"status"`
	Username       string    `db:"username"        table:"users"        column:"username"`
	ResortName     string    `db:"resort_name"     table:"resorts"      column:"name"`
	ResortLocation string    `db:"resort_location" table:"resorts"      column:"location"`
	RoomType       string    `db:"room_type"       table:"rooms"        column:"room_type"`
	Beds           int       `db:"beds"            table:"rooms"        column:"beds"`
	PricePerNight  float64   `db:"price_per_night" table:"rooms"        column:"price_per_night"`
	CuisineType    *string   `db:"cuisine_type"    table:"food_options" column:"cuisine_type"`
	MealPlan       *string   `db:"meal_plan"       table:"food_options" column:"meal_plan"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN users ON users.id = bookings.user_id " +
		"JOIN resorts ON resorts.id = bookings.resort_id " +
		"JOIN rooms ON rooms.id = bookings.room_id " +
		"LEFT JOIN food_options ON food_options.id = bookings.food_option_id"
}

// CanTransition reports whether a booking may move from one status to another.
// Only a confirmed booking can be completed or cancelled.
func CanTransition(from, to string) bool {
	return from == StatusConfirmed && (to == StatusCompleted || to == StatusCancelled)
}

// Nights is the length of the stay in calendar days.
func (b Booking) Nights() int {
	from := time.Date(b.CheckInDate.Year(), b.CheckInDate.Month(), b.CheckInDate.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(b.CheckOutDate.Year(), b.CheckOutDate.Month(), b.CheckOutDate.Day(), 0, 0, 0, 0, time.UTC)

	return int(to.Sub(from).Hours() / 24) //nolint:mnd
}
