package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodge/permissions"
	"lodge/shared/constant"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)
	assert.False(t, data.Skip)

	admins := []string{constant.RoleAdmin, constant.RoleSuperAdmin}

	tests := []struct {
		name   string
		path   string
		method string
		skip   bool
		roles  []string
	}{
		{name: "reservation create is public", path: "/v1/reservations/", method: http.MethodPost, skip: true},
		{name: "lookup by number is public", path: "/v1/reservations/number/{number}", method: http.MethodGet, skip: true},
		{name: "contact form is public", path: "/v1/contact", method: http.MethodPost, skip: true},
		{name: "reservation list is admin only", path: "/v1/reservations", method: http.MethodGet, roles: admins},
		{name: "reservation list with slash", path: "/v1/reservations/", method: http.MethodGet, roles: admins},
		{name: "status change is admin only", path: "/v1/bookings/{id}/status", method: http.MethodPatch, roles: admins},
		{name: "cancel needs any account", path: "/v1/reservations/{id}/cancel", method: http.MethodPost, roles: []string{constant.RoleUser, constant.RoleAdmin, constant.RoleSuperAdmin}},
		{name: "method is case insensitive", path: "/v1/contact", method: "post", skip: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, permissions.NormalizePath(tt.path), permission.Path)
			assert.Equal(t, tt.skip, permission.Skip)
			assert.ElementsMatch(t, tt.roles, permission.Permissions)
		})
	}

	t.Run("unknown route has no entry", func(t *testing.T) {
		assert.Equal(t, permissions.Permission{}, data.FindPermissions("/v1/unknown", http.MethodGet))
	})
}

func TestLoad(t *testing.T) {
	t.Run("duplicate after normalization", func(t *testing.T) {
		_, err := permissions.Load([]byte(`{"endpoints":[
			{"path":"/v1/rooms","method":"GET","skip":true},
			{"path":"/v1/rooms/","method":"GET","skip":true}
		]}`))

		assert.ErrorContains(t, err, "duplicate permission for GET /v1/rooms")
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := permissions.Load([]byte(`{"endpoints":`))

		assert.Error(t, err)
	})

	t.Run("literal data is indexed lazily", func(t *testing.T) {
		data := &permissions.PermissionData{Endpoints: []permissions.Permission{{Path: "/v1/venues", Method: http.MethodGet, Skip: true}}}

		assert.True(t, data.FindPermissions("/v1/venues/", http.MethodGet).Skip)
	})
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/", permissions.NormalizePath("/"))
	assert.Equal(t, "/v1/rooms", permissions.NormalizePath("/v1/rooms/"))
	assert.Equal(t, "/v1/rooms/{id}", permissions.NormalizePath("/v1/rooms/{id}"))
}
