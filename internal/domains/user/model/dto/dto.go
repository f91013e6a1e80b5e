package dto

import (
	"resort/internal/domains/user/model"
	"resort/shared"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	gModel "resort/shared/model"
	"resort/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Email    string `json:"email"    validate:"omitempty,email,max=100"`
	Phone    string `json:"phone"    validate:"omitempty,max=20"`
	Role     string `json:"role"     validate:"omitempty,oneof=customer admin"`
}

func (r *CreateUserRequest) ToModel(actor string, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleCustomer
	}

	now := timezone.Now()

	return model.User{
		ID:           uuid.NewString(),
		Username:     r.Username,
		PasswordHash: hashedPassword,
		Email:        r.Email,
		Phone:        r.Phone,
		Role:         role,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

// UpdateUserRequest lets an admin edit contact details, the role, or reset the password.
type UpdateUserRequest struct {
	Email    string `db:"email" json:"email"    validate:"omitempty,email,max=100"`
	Phone    string `db:"phone" json:"phone"    validate:"omitempty,max=20"`
	Role     string `db:"role"  json:"role"     validate:"omitempty,oneof=customer admin"`
	Password string `json:"password" validate:"omitempty,min=6,max=72"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Role      string  `json:"role"`
	LastLogin *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Username = model.Username
	r.Email = model.Email
	r.Phone = model.Phone
	r.Role = model.Role

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
