package repository

import (
	"context"
	"time"

	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"

	"github.com/google/uuid"
)

// UserRepository handles account persistence
type UserRepository interface {
	Create(ctx context.Context, user *mapper.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*mapper.User, error)
	GetByEmail(ctx context.Context, email string) (*mapper.User, error)
}

// OrganizationRepository handles organization persistence
type OrganizationRepository interface {
	// Create inserts the organization and its creator's OWNER membership in
	// one transaction.
	Create(ctx context.Context, org *mapper.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*mapper.Organization, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*mapper.Organization, error)
	Update(ctx context.Context, org *mapper.Organization) error
	// Delete fails with ErrOrganizationNotEmpty while teams remain.
	Delete(ctx context.Context, id uuid.UUID) error
}

// TeamRepository handles team persistence
type TeamRepository interface {
	// Create inserts the team and the creator's OWNER membership in one
	// transaction.
	Create(ctx context.Context, team *mapper.Team, creatorID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*mapper.Team, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*mapper.Team, error)
	Update(ctx context.Context, team *mapper.Team) error
	// Delete fails with ErrTeamNotEmpty while the team owns projects or
	// buckets.
	Delete(ctx context.Context, id uuid.UUID) error
}

// MembershipRepository resolves and mutates team/organization memberships
type MembershipRepository interface {
	TeamRole(ctx context.Context, userID, teamID uuid.UUID) (authz.Role, error)
	OrgRole(ctx context.Context, userID, orgID uuid.UUID) (authz.Role, error)
	// OrgRoleForTeam resolves the caller's organization role through the
	// team's owning organization.
	OrgRoleForTeam(ctx context.Context, userID, teamID uuid.UUID) (authz.Role, error)
	ListTeamIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ListTeamMembers(ctx context.Context, teamID uuid.UUID) ([]*mapper.TeamMember, error)
	ListOrgMembers(ctx context.Context, orgID uuid.UUID) ([]*mapper.OrganizationMember, error)
	AddTeamMember(ctx context.Context, teamID, userID uuid.UUID, role authz.Role) error
	AddOrgMember(ctx context.Context, orgID, userID uuid.UUID, role authz.Role) error
	UpdateTeamMemberRole(ctx context.Context, teamID, userID uuid.UUID, role authz.Role) error
	UpdateOrgMemberRole(ctx context.Context, orgID, userID uuid.UUID, role authz.Role) error
	RemoveTeamMember(ctx context.Context, teamID, userID uuid.UUID) error
	RemoveOrgMember(ctx context.Context, orgID, userID uuid.UUID) error
	CountTeamOwners(ctx context.Context, teamID uuid.UUID) (int, error)
	CountOrgOwners(ctx context.Context, orgID uuid.UUID) (int, error)
}

// InvitationRepository handles membership invitations
type InvitationRepository interface {
	Create(ctx context.Context, inv *mapper.Invitation) error
	GetByID(ctx context.Context, id uuid.UUID) (*mapper.Invitation, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*mapper.Invitation, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*mapper.Invitation, error)
	// Accept transitions PENDING -> ACCEPTED and inserts the corresponding
	// membership in one transaction. Returns ErrNotFound when the row is no
	// longer PENDING.
	Accept(ctx context.Context, inv *mapper.Invitation, userID uuid.UUID) error
	// UpdateStatus performs a guarded transition; ErrNotFound when the row
	// is not in the from status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to mapper.InvitationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BucketRepository handles the bucket registry and its sharing grants
type BucketRepository interface {
	Create(ctx context.Context, bucket *mapper.Bucket) error
	GetByID(ctx context.Context, id uuid.UUID) (*mapper.Bucket, error)
	// ListVisible returns buckets owned by or granted to any of the teams.
	ListVisible(ctx context.Context, teamIDs []uuid.UUID) ([]*mapper.Bucket, error)
	Update(ctx context.Context, bucket *mapper.Bucket) error
	// Delete fails with ErrBucketInUse while projects reference the bucket;
	// on success it cascades deletion of all grants.
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status mapper.BucketStatus) error
	// RecordCheck writes the outcome of a validation probe. Last writer
	// wins; concurrent probes serialize on the row.
	RecordCheck(ctx context.Context, id uuid.UUID, status mapper.BucketStatus, checkedAt time.Time, method, checkErr string) error
	// RotateCredentials atomically replaces sealed credentials and resets
	// status to pending.
	RotateCredentials(ctx context.Context, id uuid.UUID, accessKeyEnc, secretKeyEnc string) error
	ListForRevalidation(ctx context.Context, checkedBefore time.Time) ([]*mapper.Bucket, error)

	// UpsertGrant creates or overwrites the grant for (bucket, team).
	UpsertGrant(ctx context.Context, grant *mapper.BucketGrant) error
	RevokeGrant(ctx context.Context, bucketID, teamID uuid.UUID) error
	GetGrant(ctx context.Context, bucketID, teamID uuid.UUID) (*mapper.BucketGrant, error)
	ListGrants(ctx context.Context, bucketID uuid.UUID) ([]*mapper.BucketGrant, error)
	// MaxGrantLevel returns the highest level any of the teams holds on the
	// bucket, AccessNone when ungranted.
	MaxGrantLevel(ctx context.Context, bucketID uuid.UUID, teamIDs []uuid.UUID) (authz.AccessLevel, error)
	// ListAvailableTeams returns organization teams minus the owner team
	// minus already granted teams.
	ListAvailableTeams(ctx context.Context, bucketID uuid.UUID) ([]*mapper.Team, error)
	CountProjects(ctx context.Context, bucketID uuid.UUID) (int, error)
}

// ProjectRepository handles project persistence
type ProjectRepository interface {
	Create(ctx context.Context, project *mapper.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*mapper.Project, error)
	ListVisible(ctx context.Context, teamIDs []uuid.UUID, userID uuid.UUID) ([]*mapper.Project, error)
	Update(ctx context.Context, project *mapper.Project) error
	// Delete cascades tenants and API keys in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
	// Transfer rebinds the project to a new team; fails with
	// ErrSlugExistsInNewTeam on slug collision in the destination.
	Transfer(ctx context.Context, id, newTeamID uuid.UUID) error
}

// TenantRepository handles tenants of multi-tenant projects
type TenantRepository interface {
	Create(ctx context.Context, tenant *mapper.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*mapper.Tenant, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*mapper.Tenant, error)
	UpdateMetadata(ctx context.Context, id uuid.UUID, metadata map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// APIKeyRepository handles project API keys
type APIKeyRepository interface {
	Create(ctx context.Context, key *mapper.APIKey) error
	GetByID(ctx context.Context, id uuid.UUID) (*mapper.APIKey, error)
	// GetActiveByHash resolves an unrevoked key by its secret hash.
	GetActiveByHash(ctx context.Context, hash string) (*mapper.APIKey, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*mapper.APIKey, error)
	Revoke(ctx context.Context, id uuid.UUID) error
	// Regenerate revokes the old key and inserts its replacement in one
	// transaction.
	Regenerate(ctx context.Context, oldID uuid.UUID, newKey *mapper.APIKey) error
	UpdateLastUsed(ctx context.Context, id uuid.UUID) error
}
