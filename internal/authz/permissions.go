package authz

import (
	"fmt"
	"sort"
	"strings"
)

// API key permission vocabulary. PermAdmin (and its "*" alias) implies all
// other verbs.
const (
	PermRead   = "read"
	PermWrite  = "write"
	PermDelete = "delete"
	PermAdmin  = "admin"
)

var permissionVocabulary = map[string]bool{
	PermRead:   true,
	PermWrite:  true,
	PermDelete: true,
	PermAdmin:  true,
	"*":        true,
}

// NormalizePermissions validates a requested permission set against the
// fixed vocabulary and returns it deduplicated and sorted. The "*" alias is
// folded into "admin". An empty set is rejected.
func NormalizePermissions(perms []string) ([]string, error) {
	if len(perms) == 0 {
		return nil, fmt.Errorf("permission set must not be empty")
	}
	seen := make(map[string]bool, len(perms))
	for _, p := range perms {
		p = strings.ToLower(strings.TrimSpace(p))
		if !permissionVocabulary[p] {
			return nil, fmt.Errorf("unknown permission %q", p)
		}
		if p == "*" {
			p = PermAdmin
		}
		seen[p] = true
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

// PermissionsAllow reports whether a key's permission set covers the verb.
func PermissionsAllow(perms []string, verb string) bool {
	verb = strings.ToLower(strings.TrimSpace(verb))
	for _, p := range perms {
		if p == PermAdmin || p == "*" || p == verb {
			return true
		}
	}
	return false
}
