package dto

import (
	"mime/multipart"

	"resort/internal/domains/resort/model"
	"resort/shared"
	gDto "resort/shared/dto"
	gModel "resort/shared/model"
	"resort/shared/timezone"

	"github.com/google/uuid"
)

type CreateResortRequest struct {
	Name        string                `json:"name"        validate:"required,max=100"`
	Location    string                `json:"location"    validate:"required,max=100"`
	Description string                `json:"description" validate:"omitempty,max=1000"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
}

func (c *CreateResortRequest) ToModel(user string, imageURL string) model.Resort {
	now := timezone.Now()

	return model.Resort{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Location:    c.Location,
		Description: c.Description,
		ImagePath:   imageURL,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateResortRequest struct {
	Name        string                `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Location    string                `db:"location"    json:"location"    validate:"omitempty,max=100"`
	Description *string               `db:"description" json:"description" validate:"omitempty,max=1000"`
	Image       *multipart.FileHeader `json:"image"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
}

type ResortResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ImagePath   string `json:"image_path"`
	gDto.Metadata
}

func (r *ResortResponse) FromModel(model model.Resort) {
	r.ID = model.ID
	r.Name = model.Name
	r.Location = model.Location
	r.Description = model.Description
	r.ImagePath = model.ImagePath
	r.Metadata.FromModel(model.Metadata)
}

type GetResortsResponse struct {
	Resorts   []ResortResponse `json:"resorts"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetResortsResponse) FromModels(models []model.Resort, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Resorts = make([]ResortResponse, len(models))
	for i, mod := range models {
		r.Resorts[i].FromModel(mod)
	}
}
