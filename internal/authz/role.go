package authz

import (
	"fmt"
	"strings"
)

// Role is a membership-scoped authority level within a team or organization.
// Roles are totally ordered so that every permission check reduces to a
// single AtLeast comparison.
type Role int

const (
	RoleNone Role = iota // no membership; always a hard deny
	RoleViewer
	RoleMember
	RoleAdmin
	RoleOwner
)

var roleNames = map[Role]string{
	RoleViewer: "VIEWER",
	RoleMember: "MEMBER",
	RoleAdmin:  "ADMIN",
	RoleOwner:  "OWNER",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "NONE"
}

// AtLeast reports whether r carries at least the authority of required.
// RoleNone never satisfies any requirement, including RoleNone itself.
func (r Role) AtLeast(required Role) bool {
	return r != RoleNone && r >= required
}

// Valid reports whether r is an assignable role. RoleNone is a resolution
// result, never a stored value.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole converts a wire-format role name into a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "VIEWER":
		return RoleViewer, nil
	case "MEMBER":
		return RoleMember, nil
	case "ADMIN":
		return RoleAdmin, nil
	case "OWNER":
		return RoleOwner, nil
	}
	return RoleNone, fmt.Errorf("unknown role %q", s)
}

// Max returns the higher of two roles.
func Max(a, b Role) Role {
	if a > b {
		return a
	}
	return b
}
