package service

import (
	"context"
	"errors"

	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"
	"shelfcloud/internal/repository"

	"github.com/google/uuid"
)

// AccessResolver answers role and bucket-access questions for callers.
// Org OWNERs act with ADMIN authority over every team in their org even
// without an explicit team membership row.
type AccessResolver struct {
	memberships repository.MembershipRepository
	buckets     repository.BucketRepository
	teams       repository.TeamRepository
	projects    repository.ProjectRepository
}

func NewAccessResolver(memberships repository.MembershipRepository, buckets repository.BucketRepository, teams repository.TeamRepository, projects repository.ProjectRepository) *AccessResolver {
	return &AccessResolver{memberships: memberships, buckets: buckets, teams: teams, projects: projects}
}

// EffectiveTeamRole returns the caller's role on a team, folding in the role
// inherited from the owning organization.
func (a *AccessResolver) EffectiveTeamRole(ctx context.Context, userID, teamID uuid.UUID) (authz.Role, error) {
	teamRole, err := a.memberships.TeamRole(ctx, userID, teamID)
	if err != nil {
		return authz.RoleNone, err
	}
	orgRole, err := a.memberships.OrgRoleForTeam(ctx, userID, teamID)
	if err != nil {
		return authz.RoleNone, err
	}
	if orgRole == authz.RoleOwner {
		// Org ownership grants team administration, not team ownership.
		return authz.Max(teamRole, authz.RoleAdmin), nil
	}
	return teamRole, nil
}

// RequireTeamRole returns ErrForbidden unless the caller holds at least the
// required role on the team.
func (a *AccessResolver) RequireTeamRole(ctx context.Context, userID, teamID uuid.UUID, required authz.Role) error {
	role, err := a.EffectiveTeamRole(ctx, userID, teamID)
	if err != nil {
		return err
	}
	if !role.AtLeast(required) {
		return ErrForbidden
	}
	return nil
}

// RequireOrgRole returns ErrForbidden unless the caller holds at least the
// required role in the organization.
func (a *AccessResolver) RequireOrgRole(ctx context.Context, userID, orgID uuid.UUID, required authz.Role) error {
	role, err := a.memberships.OrgRole(ctx, userID, orgID)
	if err != nil {
		return err
	}
	if !role.AtLeast(required) {
		return ErrForbidden
	}
	return nil
}

// BucketAccess computes the caller's effective access to a bucket. On the
// owning team, ADMIN+ maps to administrative access, MEMBER to read-write,
// and VIEWER to read-only. Otherwise the strongest grant across the caller's
// teams applies.
func (a *AccessResolver) BucketAccess(ctx context.Context, userID, bucketID uuid.UUID) (authz.AccessLevel, error) {
	bucket, err := a.buckets.GetByID(ctx, bucketID)
	if err != nil {
		return authz.AccessNone, err
	}
	ownerRole, err := a.EffectiveTeamRole(ctx, userID, bucket.TeamID)
	if err != nil {
		return authz.AccessNone, err
	}
	if ownerRole.AtLeast(authz.RoleAdmin) {
		return authz.AccessAdmin, nil
	}
	if ownerRole.AtLeast(authz.RoleMember) {
		return authz.AccessReadWrite, nil
	}
	if ownerRole != authz.RoleNone {
		return authz.AccessReadOnly, nil
	}
	teamIDs, err := a.memberships.ListTeamIDsByUser(ctx, userID)
	if err != nil {
		return authz.AccessNone, err
	}
	if len(teamIDs) == 0 {
		return authz.AccessNone, nil
	}
	return a.buckets.MaxGrantLevel(ctx, bucketID, teamIDs)
}

// RequireBucketAccess returns ErrForbidden unless the caller's effective
// access meets the required level. A caller with no access at all gets
// ErrNotFound so bucket existence is not leaked.
func (a *AccessResolver) RequireBucketAccess(ctx context.Context, userID, bucketID uuid.UUID, required authz.AccessLevel) error {
	level, err := a.BucketAccess(ctx, userID, bucketID)
	if err != nil {
		return err
	}
	if level == authz.AccessNone {
		return ErrNotFound
	}
	if !level.AtLeast(required) {
		return ErrForbidden
	}
	return nil
}

// ProjectRole resolves the caller's authority over a project: the effective
// team role for team projects, OWNER for the creator of a personal project.
func (a *AccessResolver) ProjectRole(ctx context.Context, userID uuid.UUID, p *mapper.Project) (authz.Role, error) {
	if p.TeamID == nil {
		if p.OwnerID == userID {
			return authz.RoleOwner, nil
		}
		return authz.RoleNone, nil
	}
	return a.EffectiveTeamRole(ctx, userID, *p.TeamID)
}

// VisibleProject loads the project when the caller can see it, ErrNotFound
// otherwise so project existence is not leaked.
func (a *AccessResolver) VisibleProject(ctx context.Context, userID, projectID uuid.UUID) (*mapper.Project, error) {
	return a.RequireProjectRole(ctx, userID, projectID, authz.RoleViewer)
}

// RequireProjectRole loads the project and checks the caller's authority
// over it.
func (a *AccessResolver) RequireProjectRole(ctx context.Context, userID, projectID uuid.UUID, required authz.Role) (*mapper.Project, error) {
	p, err := a.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	role, err := a.ProjectRole(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	if role == authz.RoleNone {
		return nil, ErrNotFound
	}
	if !role.AtLeast(required) {
		return nil, ErrForbidden
	}
	return p, nil
}

// TeamBucketAccess reports the access a whole team holds on a bucket, either
// by owning it or via a grant.
func (a *AccessResolver) TeamBucketAccess(ctx context.Context, teamID, bucketID uuid.UUID) (authz.AccessLevel, error) {
	bucket, err := a.buckets.GetByID(ctx, bucketID)
	if err != nil {
		return authz.AccessNone, err
	}
	if bucket.TeamID == teamID {
		return authz.AccessAdmin, nil
	}
	grant, err := a.buckets.GetGrant(ctx, bucketID, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return authz.AccessNone, nil
		}
		return authz.AccessNone, err
	}
	return grant.Level, nil
}
