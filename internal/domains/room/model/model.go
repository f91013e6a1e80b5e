package model

import "resort/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID             = "id"
	FieldResortID       = "resort_id"
	FieldRoomType       = "room_type"
	FieldBeds           = "beds"
	FieldPricePerNight  = "price_per_night"
	FieldAvailableCount = "available_count"
	FieldAvailable      = "available"
)

const (
	RoomTypeEco      = "Eco"
	RoomTypePremium  = "Premium"
	RoomTypeBusiness = "Business"
	RoomTypeLuxury   = "Luxury"
)

// Room is a room type offered by a resort. AvailableCount is the number of
// units that can still be booked and never drops below zero.
type Room struct {
	ID             string  `db:"id"`
	ResortID       string  `db:"resort_id"`
	RoomType       string  `db:"room_type"`
	Beds           int     `db:"beds"`
	PricePerNight  float64 `db:"price_per_night"`
	AvailableCount int     `db:"available_count"`
	ResortName     string  `db:"resort_name"     table:"resorts" column:"name"`
	ResortLocation string  `db:"resort_location" table:"resorts" column:"location"`
	model.Metadata
}

func (Room) GetJoinQuery() string {
	return "JOIN resorts ON resorts.id = rooms.resort_id"
}
