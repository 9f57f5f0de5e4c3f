package roles_test

import (
	"testing"

	"github.com/jrsteele09/go-hr-console/roles"
	"github.com/stretchr/testify/require"
)

func TestRoleLookup(t *testing.T) {
	list := []*roles.Role{
		{ID: "r1", Name: "Admin", Permissions: []string{"users:write", "users:read"}},
		{ID: "r2", Name: "Employee", Permissions: []string{"users:read"}},
	}

	admin := roles.ByName(list, "Admin")
	require.NotNil(t, admin)
	require.True(t, admin.HasPermission("users:write"))
	require.False(t, roles.ByName(list, "Employee").HasPermission("users:write"))
	require.Nil(t, roles.ByName(list, "admin"))
}
