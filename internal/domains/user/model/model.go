package model

import (
	"time"

	"resort/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldUsername     = "username"
	FieldPasswordHash = "password_hash"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldRole         = "role"
	FieldLastLogin    = "last_login"
)

type User struct {
	ID           string     `db:"id"`
	Username     string     `db:"username"`
	PasswordHash string     `db:"password_hash"`
	Email        string     `db:"email"`
	Phone        string     `db:"phone"`
	Role         string     `db:"role"`
	LastLogin    *time.Time `db:"last_login"`
	model.Metadata
}
