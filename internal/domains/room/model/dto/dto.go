package dto

import (
	"resort/internal/domains/room/model"
	"resort/shared"
	gDto "resort/shared/dto"
	gModel "resort/shared/model"
	"resort/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	ResortID       string  `json:"resort_id"       validate:"required,uuid"`
	RoomType       string  `json:"room_type"       validate:"required,oneof=Eco Premium Business Luxury"`
	Beds           int     `json:"beds"            validate:"required,min=1,max=10"`
	PricePerNight  float64 `json:"price_per_night" validate:"required,gt=0"`
	AvailableCount int     `json:"available_count" validate:"min=0"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	now := timezone.Now()

	return model.Room{
		ID:             uuid.NewString(),
		ResortID:       c.ResortID,
		RoomType:       c.RoomType,
		Beds:           c.Beds,
		PricePerNight:  c.PricePerNight,
		AvailableCount: c.AvailableCount,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomType       string   `db:"room_type"       json:"room_type"       validate:"omitempty,oneof=Eco Premium Business Luxury"`
	Beds           *int     `db:"beds"            json:"beds"            validate:"omitempty,min=1,max=10"`
	PricePerNight  *float64 `db:"price_per_night" json:"price_per_night" validate:"omitempty,gt=0"`
	AvailableCount *int     `db:"available_count" json:"available_count" validate:"omitempty,min=0"`
}

// AdjustAvailabilityRequest moves available_count by Delta units.
type AdjustAvailabilityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type RoomResponse struct {
	ID             string  `json:"id"`
	ResortID       string  `json:"resort_id"`
	ResortName     string  `json:"resort_name"`
	ResortLocation string  `json:"resort_location"`
	RoomType       string  `json:"room_type"`
	Beds           int     `json:"beds"`
	PricePerNight  float64 `json:"price_per_night"`
	AvailableCount int     `json:"available_count"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.ResortID = model.ResortID
	r.ResortName = model.ResortName
	r.ResortLocation = model.ResortLocation
	r.RoomType = model.RoomType
	r.Beds = model.Beds
	r.PricePerNight = model.PricePerNight
	r.AvailableCount = model.AvailableCount
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
