package password_test

import (
	"strings"
	"testing"

	"resort/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "seed admin password", password: "admin123"},
		{name: "unicode password", password: "pässwörd-ñ"},
		{name: "exactly 72 bytes", password: strings.Repeat("a", 72)},
		{name: "empty password", password: "", wantErr: password.ErrEmptyPassword},
		{name: "longer than 72 bytes", password: strings.Repeat("a", 73), wantErr: password.ErrHashingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)

			cost, err := bcrypt.Cost([]byte(hash))
			require.NoError(t, err)
			assert.Equal(t, password.DefaultCost, cost)
		})
	}
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("customer-secret")
	require.NoError(t, err)

	second, err := password.Hash("customer-secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, password.Verify("customer-secret", first))
	assert.NoError(t, password.Verify("customer-secret", second))
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("admin123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
	}{
		{name: "match", password: "admin123", hash: hash},
		{name: "wrong password", password: "admin124", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "case sensitive", password: "ADMIN123", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "admin123", hash: "", wantErr: password.ErrInvalidPassword},
		{name: "malformed hash", password: "admin123", hash: "not-a-bcrypt-hash", wantErr: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}
