package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleOrdering(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		required Role
		want     bool
	}{
		{"owner satisfies admin", RoleOwner, RoleAdmin, true},
		{"admin satisfies admin", RoleAdmin, RoleAdmin, true},
		{"member fails admin", RoleMember, RoleAdmin, false},
		{"viewer fails member", RoleViewer, RoleMember, false},
		{"viewer satisfies viewer", RoleViewer, RoleViewer, true},
		{"none fails viewer", RoleNone, RoleViewer, false},
		{"none fails none", RoleNone, RoleNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.required))
		})
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("superuser")
	assert.Error(t, err)
}

func TestAccessLevelOrdering(t *testing.T) {
	assert.True(t, AccessAdmin.AtLeast(AccessReadWrite))
	assert.True(t, AccessReadWrite.AtLeast(AccessReadOnly))
	assert.False(t, AccessReadOnly.AtLeast(AccessReadWrite))
	assert.False(t, AccessNone.AtLeast(AccessReadOnly))
}

func TestNormalizePermissions(t *testing.T) {
	perms, err := NormalizePermissions([]string{"Write", "read", "write"})
	require.NoError(t, err)
	assert.Equal(t, []string{"read", "write"}, perms)

	perms, err = NormalizePermissions([]string{"*"})
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, perms)

	_, err = NormalizePermissions(nil)
	assert.Error(t, err)

	_, err = NormalizePermissions([]string{"launch"})
	assert.Error(t, err)
}

func TestPermissionsAllow(t *testing.T) {
	assert.True(t, PermissionsAllow([]string{"read", "write"}, "write"))
	assert.False(t, PermissionsAllow([]string{"read"}, "delete"))
	assert.True(t, PermissionsAllow([]string{"admin"}, "delete"))
}
