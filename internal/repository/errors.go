package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Sentinel errors returned by repositories. Conflict reasons wrap
// ErrConflict so callers can match either the family or the exact reason.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	ErrDuplicateSlug        = fmt.Errorf("%w: slug_already_exists", ErrConflict)
	ErrDuplicateEmail       = fmt.Errorf("%w: email_already_exists", ErrConflict)
	ErrBucketInUse          = fmt.Errorf("%w: bucket_in_use", ErrConflict)
	ErrSlugExistsInNewTeam  = fmt.Errorf("%w: slug_already_exists_in_new_team", ErrConflict)
	ErrTeamNotEmpty         = fmt.Errorf("%w: team_not_empty", ErrConflict)
	ErrOrganizationNotEmpty = fmt.Errorf("%w: organization_not_empty", ErrConflict)
	ErrMembershipExists     = fmt.Errorf("%w: membership_already_exists", ErrConflict)
)

const pqUniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation, optionally on a specific constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pqUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
