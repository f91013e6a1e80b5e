package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resort/infras/jwt"
	"resort/internal/domains/auth/model/dto"
	"resort/shared/constant"
	"resort/shared/validator"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{Username: "alice", Password: "secret123", Email: "alice@example.com"}

	user := req.ToUserModel("hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "hashed", user.PasswordHash)
	assert.Equal(t, constant.RoleCustomer, user.Role)
	assert.Equal(t, constant.ContextGuest, user.CreatedBy)
}

func TestRegisterRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.RegisterRequest
		wantErr bool
	}{
		{name: "valid", req: dto.RegisterRequest{Username: "alice", Password: "secret123"}},
		{name: "short username", req: dto.RegisterRequest{Username: "al", Password: "secret123"}, wantErr: true},
		{name: "symbols in username", req: dto.RegisterRequest{Username: "al ice", Password: "secret123"}, wantErr: true},
		{name: "short password", req: dto.RegisterRequest{Username: "alice", Password: "123"}, wantErr: true},
		{name: "bad email", req: dto.RegisterRequest{Username: "alice", Password: "secret123", Email: "nope"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChangePasswordRequest_Validation(t *testing.T) {
	same := dto.ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "secret123"}
	assert.Error(t, validator.ValidateStruct(&same))

	different := dto.ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "secret456"}
	assert.NoError(t, validator.ValidateStruct(&different))
}
