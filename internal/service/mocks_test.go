package service

import (
	"context"
	"time"

	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"
	"shelfcloud/internal/repository"

	"github.com/google/uuid"
)

// Mock MembershipRepository
type mockMembershipRepo struct {
	repository.MembershipRepository
	teamRoleFunc         func(ctx context.Context, userID, teamID uuid.UUID) (authz.Role, error)
	orgRoleFunc          func(ctx context.Context, userID, orgID uuid.UUID) (authz.Role, error)
	orgRoleForTeamFunc   func(ctx context.Context, userID, teamID uuid.UUID) (authz.Role, error)
	listTeamIDsFunc      func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	countTeamOwnersFunc  func(ctx context.Context, teamID uuid.UUID) (int, error)
	countOrgOwnersFunc   func(ctx context.Context, orgID uuid.UUID) (int, error)
	addOrgMemberFunc     func(ctx context.Context, orgID, userID uuid.UUID, role authz.Role) error
	addTeamMemberFunc    func(ctx context.Context, teamID, userID uuid.UUID, role authz.Role) error
	updateOrgMemberFunc  func(ctx context.Context, orgID, userID uuid.UUID, role authz.Role) error
	updateTeamMemberFunc func(ctx context.Context, teamID, userID uuid.UUID, role authz.Role) error
	removeOrgMemberFunc  func(ctx context.Context, orgID, userID uuid.UUID) error
	removeTeamMemberFunc func(ctx context.Context, teamID, userID uuid.UUID) error
	listOrgMembersFunc   func(ctx context.Context, orgID uuid.UUID) ([]*mapper.OrganizationMember, error)
	listTeamMembersFunc  func(ctx context.Context, teamID uuid.UUID) ([]*mapper.TeamMember, error)
}

func (m *mockMembershipRepo) TeamRole(ctx context.Context, userID, teamID uuid.UUID) (authz.Role, error) {
	if m.teamRoleFunc != nil {
		return m.teamRoleFunc(ctx, userID, teamID)
	}
	return authz.RoleNone, nil
}

func (m *mockMembershipRepo) OrgRole(ctx context.Context, userID, orgID uuid.UUID) (authz.Role, error) {
	if m.orgRoleFunc != nil {
		return m.orgRoleFunc(ctx, userID, orgID)
	}
	return authz.RoleNone, nil
}

func (m *mockMembershipRepo) OrgRoleForTeam(ctx context.Context, userID, teamID uuid.UUID) (authz.Role, error) {
	if m.orgRoleForTeamFunc != nil {
		return m.orgRoleForTeamFunc(ctx, userID, teamID)
	}
	return authz.RoleNone, nil
}

func (m *mockMembershipRepo) ListTeamIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if m.listTeamIDsFunc != nil {
		return m.listTeamIDsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockMembershipRepo) CountTeamOwners(ctx context.Context, teamID uuid.UUID) (int, error) {
	if m.countTeamOwnersFunc != nil {
		return m.countTeamOwnersFunc(ctx, teamID)
	}
	return 2, nil
}

func (m *mockMembershipRepo) CountOrgOwners(ctx context.Context, orgID uuid.UUID) (int, error) {
	if m.countOrgOwnersFunc != nil {
		return m.countOrgOwnersFunc(ctx, orgID)
	}
	return 2, nil
}

func (m *mockMembershipRepo) AddOrgMember(ctx context.Context, orgID, userID uuid.UUID, role authz.Role) error {
	if m.addOrgMemberFunc != nil {
		return m.addOrgMemberFunc(ctx, orgID, userID, role)
	}
	return nil
}

func (m *mockMembershipRepo) AddTeamMember(ctx context.Context, teamID, userID uuid.UUID, role authz.Role) error {
	if m.addTeamMemberFunc != nil {
		return m.addTeamMemberFunc(ctx, teamID, userID, role)
	}
	return nil
}

func (m *mockMembershipRepo) UpdateOrgMemberRole(ctx context.Context, orgID, userID uuid.UUID, role authz.Role) error {
	if m.updateOrgMemberFunc != nil {
		return m.updateOrgMemberFunc(ctx, orgID, userID, role)
	}
	return nil
}

func (m *mockMembershipRepo) UpdateTeamMemberRole(ctx context.Context, teamID, userID uuid.UUID, role authz.Role) error {
	if m.updateTeamMemberFunc != nil {
		return m.updateTeamMemberFunc(ctx, teamID, userID, role)
	}
	return nil
}

func (m *mockMembershipRepo) RemoveOrgMember(ctx context.Context, orgID, userID uuid.UUID) error {
	if m.removeOrgMemberFunc != nil {
		return m.removeOrgMemberFunc(ctx, orgID, userID)
	}
	return nil
}

func (m *mockMembershipRepo) RemoveTeamMember(ctx context.Context, teamID, userID uuid.UUID) error {
	if m.removeTeamMemberFunc != nil {
		return m.removeTeamMemberFunc(ctx, teamID, userID)
	}
	return nil
}

func (m *mockMembershipRepo) ListOrgMembers(ctx context.Context, orgID uuid.UUID) ([]*mapper.OrganizationMember, error) {
	if m.listOrgMembersFunc != nil {
		return m.listOrgMembersFunc(ctx, orgID)
	}
	return nil, nil
}

func (m *mockMembershipRepo) ListTeamMembers(ctx context.Context, teamID uuid.UUID) ([]*mapper.TeamMember, error) {
	if m.listTeamMembersFunc != nil {
		return m.listTeamMembersFunc(ctx, teamID)
	}
	return nil, nil
}

// Mock BucketRepository
type mockBucketRepo struct {
	repository.BucketRepository
	createFunc            func(ctx context.Context, b *mapper.Bucket) error
	getByIDFunc           func(ctx context.Context, id uuid.UUID) (*mapper.Bucket, error)
	updateFunc            func(ctx context.Context, b *mapper.Bucket) error
	deleteFunc            func(ctx context.Context, id uuid.UUID) error
	updateStatusFunc      func(ctx context.Context, id uuid.UUID, status mapper.BucketStatus) error
	recordCheckFunc       func(ctx context.Context, id uuid.UUID, status mapper.BucketStatus, checkedAt time.Time, method, checkErr string) error
	rotateCredentialsFunc func(ctx context.Context, id uuid.UUID, accessKeyEnc, secretKeyEnc string) error
	listVisibleFunc       func(ctx context.Context, teamIDs []uuid.UUID) ([]*mapper.Bucket, error)
	upsertGrantFunc       func(ctx context.Context, grant *mapper.BucketGrant) error
	getGrantFunc          func(ctx context.Context, bucketID, teamID uuid.UUID) (*mapper.BucketGrant, error)
	revokeGrantFunc       func(ctx context.Context, bucketID, teamID uuid.UUID) error
	listGrantsFunc        func(ctx context.Context, bucketID uuid.UUID) ([]*mapper.BucketGrant, error)
	maxGrantLevelFunc     func(ctx context.Context, bucketID uuid.UUID, teamIDs []uuid.UUID) (authz.AccessLevel, error)
}

func (m *mockBucketRepo) Create(ctx context.Context, b *mapper.Bucket) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, b)
	}
	return nil
}

func (m *mockBucketRepo) GetByID(ctx context.Context, id uuid.UUID) (*mapper.Bucket, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockBucketRepo) Update(ctx context.Context, b *mapper.Bucket) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, b)
	}
	return nil
}

func (m *mockBucketRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBucketRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status mapper.BucketStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockBucketRepo) RecordCheck(ctx context.Context, id uuid.UUID, status mapper.BucketStatus, checkedAt time.Time, method, checkErr string) error {
	if m.recordCheckFunc != nil {
		return m.recordCheckFunc(ctx, id, status, checkedAt, method, checkErr)
	}
	return nil
}

func (m *mockBucketRepo) RotateCredentials(ctx context.Context, id uuid.UUID, accessKeyEnc, secretKeyEnc string) error {
	if m.rotateCredentialsFunc != nil {
		return m.rotateCredentialsFunc(ctx, id, accessKeyEnc, secretKeyEnc)
	}
	return nil
}

func (m *mockBucketRepo) ListVisible(ctx context.Context, teamIDs []uuid.UUID) ([]*mapper.Bucket, error) {
	if m.listVisibleFunc != nil {
		return m.listVisibleFunc(ctx, teamIDs)
	}
	return nil, nil
}

func (m *mockBucketRepo) UpsertGrant(ctx context.Context, grant *mapper.BucketGrant) error {
	if m.upsertGrantFunc != nil {
		return m.upsertGrantFunc(ctx, grant)
	}
	return nil
}

func (m *mockBucketRepo) GetGrant(ctx context.Context, bucketID, teamID uuid.UUID) (*mapper.BucketGrant, error) {
	if m.getGrantFunc != nil {
		return m.getGrantFunc(ctx, bucketID, teamID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockBucketRepo) RevokeGrant(ctx context.Context, bucketID, teamID uuid.UUID) error {
	if m.revokeGrantFunc != nil {
		return m.revokeGrantFunc(ctx, bucketID, teamID)
	}
	return nil
}

func (m *mockBucketRepo) ListGrants(ctx context.Context, bucketID uuid.UUID) ([]*mapper.BucketGrant, error) {
	if m.listGrantsFunc != nil {
		return m.listGrantsFunc(ctx, bucketID)
	}
	return nil, nil
}

func (m *mockBucketRepo) MaxGrantLevel(ctx context.Context, bucketID uuid.UUID, teamIDs []uuid.UUID) (authz.AccessLevel, error) {
	if m.maxGrantLevelFunc != nil {
		return m.maxGrantLevelFunc(ctx, bucketID, teamIDs)
	}
	return authz.AccessNone, nil
}

// Mock TeamRepository
type mockTeamRepo struct {
	repository.TeamRepository
	createFunc  func(ctx context.Context, team *mapper.Team, creatorID uuid.UUID) error
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*mapper.Team, error)
	deleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTeamRepo) Create(ctx context.Context, team *mapper.Team, creatorID uuid.UUID) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, team, creatorID)
	}
	return nil
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (*mapper.Team, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockTeamRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// Mock ProjectRepository
type mockProjectRepo struct {
	repository.ProjectRepository
	createFunc      func(ctx context.Context, p *mapper.Project) error
	getByIDFunc     func(ctx context.Context, id uuid.UUID) (*mapper.Project, error)
	listVisibleFunc func(ctx context.Context, teamIDs []uuid.UUID, userID uuid.UUID) ([]*mapper.Project, error)
	updateFunc      func(ctx context.Context, p *mapper.Project) error
	deleteFunc      func(ctx context.Context, id uuid.UUID) error
	transferFunc    func(ctx context.Context, id, newTeamID uuid.UUID) error
}

func (m *mockProjectRepo) Create(ctx context.Context, p *mapper.Project) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, p)
	}
	return nil
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*mapper.Project, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProjectRepo) ListVisible(ctx context.Context, teamIDs []uuid.UUID, userID uuid.UUID) ([]*mapper.Project, error) {
	if m.listVisibleFunc != nil {
		return m.listVisibleFunc(ctx, teamIDs, userID)
	}
	return nil, nil
}

func (m *mockProjectRepo) Update(ctx context.Context, p *mapper.Project) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, p)
	}
	return nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockProjectRepo) Transfer(ctx context.Context, id, newTeamID uuid.UUID) error {
	if m.transferFunc != nil {
		return m.transferFunc(ctx, id, newTeamID)
	}
	return nil
}

// Mock TenantRepository
type mockTenantRepo struct {
	repository.TenantRepository
	createFunc  func(ctx context.Context, t *mapper.Tenant) error
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*mapper.Tenant, error)
}

func (m *mockTenantRepo) Create(ctx context.Context, t *mapper.Tenant) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, t)
	}
	return nil
}

func (m *mockTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*mapper.Tenant, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

// Mock InvitationRepository
type mockInvitationRepo struct {
	repository.InvitationRepository
	createFunc       func(ctx context.Context, inv *mapper.Invitation) error
	getByIDFunc      func(ctx context.Context, id uuid.UUID) (*mapper.Invitation, error)
	acceptFunc       func(ctx context.Context, inv *mapper.Invitation, userID uuid.UUID) error
	updateStatusFunc func(ctx context.Context, id uuid.UUID, from, to mapper.InvitationStatus) error
	deleteFunc       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockInvitationRepo) Create(ctx context.Context, inv *mapper.Invitation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, inv)
	}
	return nil
}

func (m *mockInvitationRepo) GetByID(ctx context.Context, id uuid.UUID) (*mapper.Invitation, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockInvitationRepo) Accept(ctx context.Context, inv *mapper.Invitation, userID uuid.UUID) error {
	if m.acceptFunc != nil {
		return m.acceptFunc(ctx, inv, userID)
	}
	return nil
}

func (m *mockInvitationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to mapper.InvitationStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, from, to)
	}
	return nil
}

func (m *mockInvitationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// Mock APIKeyRepository
type mockAPIKeyRepo struct {
	repository.APIKeyRepository
	createFunc          func(ctx context.Context, key *mapper.APIKey) error
	getByIDFunc         func(ctx context.Context, id uuid.UUID) (*mapper.APIKey, error)
	getActiveByHashFunc func(ctx context.Context, hash string) (*mapper.APIKey, error)
	revokeFunc          func(ctx context.Context, id uuid.UUID) error
	regenerateFunc      func(ctx context.Context, oldID uuid.UUID, newKey *mapper.APIKey) error
	updateLastUsedFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockAPIKeyRepo) Create(ctx context.Context, key *mapper.APIKey) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, key)
	}
	return nil
}

func (m *mockAPIKeyRepo) GetByID(ctx context.Context, id uuid.UUID) (*mapper.APIKey, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockAPIKeyRepo) GetActiveByHash(ctx context.Context, hash string) (*mapper.APIKey, error) {
	if m.getActiveByHashFunc != nil {
		return m.getActiveByHashFunc(ctx, hash)
	}
	return nil, repository.ErrNotFound
}

func (m *mockAPIKeyRepo) Revoke(ctx context.Context, id uuid.UUID) error {
	if m.revokeFunc != nil {
		return m.revokeFunc(ctx, id)
	}
	return nil
}

func (m *mockAPIKeyRepo) Regenerate(ctx context.Context, oldID uuid.UUID, newKey *mapper.APIKey) error {
	if m.regenerateFunc != nil {
		return m.regenerateFunc(ctx, oldID, newKey)
	}
	return nil
}

func (m *mockAPIKeyRepo) UpdateLastUsed(ctx context.Context, id uuid.UUID) error {
	if m.updateLastUsedFunc != nil {
		return m.updateLastUsedFunc(ctx, id)
	}
	return nil
}

// Mock UserRepository
type mockUserRepo struct {
	repository.UserRepository
	createFunc     func(ctx context.Context, user *mapper.User) error
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*mapper.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*mapper.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *mapper.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*mapper.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*mapper.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}

// Mock OrganizationRepository
type mockOrgRepo struct {
	repository.OrganizationRepository
	createFunc  func(ctx context.Context, org *mapper.Organization) error
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*mapper.Organization, error)
	deleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockOrgRepo) Create(ctx context.Context, org *mapper.Organization) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, org)
	}
	return nil
}

func (m *mockOrgRepo) GetByID(ctx context.Context, id uuid.UUID) (*mapper.Organization, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockOrgRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}
