package model

import "resort/shared/model"

const (
	TableName  = "resorts"
	EntityName = "resort"

	FieldID          = "id"
	FieldName        = "name"
	FieldLocation    = "location"
	FieldDescription = "description"
	FieldImagePath   = "image_path"
)

type Resort struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Location    string `db:"location"`
	Description string `db:"description"`
	ImagePath   string `db:"image_path"`
	model.Metadata
}
