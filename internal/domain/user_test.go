package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safari-hire/dashboard/internal/domain"
)

func TestNewRole(t *testing.T) {
	r, err := domain.NewRole("staff")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStaff, r)

	_, err = domain.NewRole("root")
	assert.Error(t, err)
}

func TestUser_PasswordNeverSerialized(t *testing.T) {
	u := domain.User{
		Identity: domain.Identity{ID: "1", Username: "admin", Name: "Admin User", Role: domain.RoleAdmin},
		Password: "admin123",
	}

	b, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(b), "admin123")
	assert.JSONEq(t, `{"id":"1","username":"admin","name":"Admin User","role":"admin"}`, string(b))
}
