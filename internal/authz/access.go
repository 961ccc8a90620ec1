package authz

import (
	"fmt"
	"strings"
)

// AccessLevel is the bounded access a non-owning team holds on a shared
// bucket. Levels are ordered the same way roles are.
type AccessLevel int

const (
	AccessNone AccessLevel = iota
	AccessReadOnly
	AccessReadWrite
	AccessAdmin
)

var accessNames = map[AccessLevel]string{
	AccessReadOnly:  "READ_ONLY",
	AccessReadWrite: "READ_WRITE",
	AccessAdmin:     "ADMIN",
}

func (l AccessLevel) String() string {
	if name, ok := accessNames[l]; ok {
		return name
	}
	return "NONE"
}

// AtLeast reports whether l grants at least the given level.
func (l AccessLevel) AtLeast(required AccessLevel) bool {
	return l != AccessNone && l >= required
}

func (l AccessLevel) Valid() bool {
	_, ok := accessNames[l]
	return ok
}

// ParseAccessLevel converts a wire-format access level into an AccessLevel.
func ParseAccessLevel(s string) (AccessLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "READ_ONLY":
		return AccessReadOnly, nil
	case "READ_WRITE":
		return AccessReadWrite, nil
	case "ADMIN":
		return AccessAdmin, nil
	}
	return AccessNone, fmt.Errorf("unknown access level %q", s)
}
