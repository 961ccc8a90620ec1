package service

import (
	"errors"
	"fmt"

	"shelfcloud/internal/repository"
)

// Sentinel errors for the service layer. Repository conflict reasons are
// re-exported so handlers only ever match against this package.
var (
	ErrValidation            = errors.New("validation error")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrUpstream              = errors.New("upstream error")

	ErrNotFound = repository.ErrNotFound
	ErrConflict = repository.ErrConflict

	ErrDuplicateSlug         = repository.ErrDuplicateSlug
	ErrDuplicateEmail        = repository.ErrDuplicateEmail
	ErrBucketInUse           = repository.ErrBucketInUse
	ErrSlugExistsInNewTeam   = repository.ErrSlugExistsInNewTeam
	ErrTeamNotEmpty          = repository.ErrTeamNotEmpty
	ErrOrganizationNotEmpty  = repository.ErrOrganizationNotEmpty
	ErrMembershipExists      = repository.ErrMembershipExists

	ErrLastOwner             = fmt.Errorf("%w: last_owner", repository.ErrConflict)
	ErrNewTeamNoBucketAccess = fmt.Errorf("%w: new_team_no_bucket_access", repository.ErrConflict)
	ErrTeamNoBucketAccess    = fmt.Errorf("%w: team_no_bucket_access", repository.ErrConflict)
)
