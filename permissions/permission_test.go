package permissions_test

import (
	"net/http"
	"testing"

	"resort/permissions"
	"resort/shared/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)

	seen := map[string]bool{}
	for _, endpoint := range data.Endpoints {
		key := endpoint.Method + " " + endpoint.Path
		assert.False(t, seen[key], "duplicate endpoint %s", key)
		seen[key] = true

		assert.True(t, endpoint.Skip || len(endpoint.Permissions) > 0, "endpoint %s is neither public nor role guarded", key)
	}
}

func TestPermissionData_FindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name      string
		path      string
		method    string
		wantSkip  bool
		wantRoles []string
	}{
		{
			name:     "login is public",
			path:     "/v1/auth/login",
			method:   http.MethodPost,
			wantSkip: true,
		},
		{
			name:     "room catalogue is public",
			path:     "/v1/rooms",
			method:   http.MethodGet,
			wantSkip: true,
		},
		{
			name:      "creating rooms is admin only",
			path:      "/v1/rooms",
			method:    http.MethodPost,
			wantRoles: []string{constant.RoleAdmin},
		},
		{
			name:      "availability is admin only",
			path:      "/v1/rooms/{id}/availability",
			method:    http.MethodPatch,
			wantRoles: []string{constant.RoleAdmin},
		},
		{
			name:      "customers confirm bookings",
			path:      "/v1/bookings",
			method:    http.MethodPost,
			wantRoles: []string{constant.RoleCustomer, constant.RoleAdmin},
		},
		{
			name:      "customers print their invoices",
			path:      "/v1/invoices/{id}/print",
			method:    http.MethodGet,
			wantRoles: []string{constant.RoleCustomer, constant.RoleAdmin},
		},
		{
			name:   "unknown route",
			path:   "/v1/unknown",
			method: http.MethodGet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.wantSkip, permission.Skip)
			assert.ElementsMatch(t, tt.wantRoles, permission.Permissions)
		})
	}
}

func TestPermissionData_FindPermissions_WithoutIndex(t *testing.T) {
	data := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/bookings", Method: http.MethodPost, Permissions: []string{constant.RoleCustomer}},
			{Path: "/v1/bookings", Method: http.MethodPost, Permissions: []string{constant.RoleAdmin}},
		},
	}

	permission := data.FindPermissions("/v1/bookings", http.MethodPost)

	assert.Equal(t, []string{constant.RoleCustomer}, permission.Permissions)
	assert.Empty(t, data.FindPermissions("/v1/bookings", http.MethodGet).Permissions)
}
