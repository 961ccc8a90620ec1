package service

import (
	"context"
	"testing"

	"shelfcloud/internal/api/dto/v1/project"
	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCreate_TeamNeedsBucketAccess(t *testing.T) {
	teamID := uuid.New()
	bucketID := uuid.New()

	members := &mockMembershipRepo{
		teamRoleFunc: func(ctx context.Context, uID, tID uuid.UUID) (authz.Role, error) {
			return authz.RoleMember, nil
		},
	}
	// The bucket belongs to another team and carries no grant.
	buckets := &mockBucketRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Bucket, error) {
			return &mapper.Bucket{ID: bucketID, TeamID: uuid.New()}, nil
		},
	}
	access := NewAccessResolver(members, buckets, &mockTeamRepo{}, &mockProjectRepo{})
	svc := NewProjectService(&mockProjectRepo{}, &mockTenantRepo{}, &mockMembershipRepo{}, access, NewAuditService())

	_, err := svc.Create(context.Background(), uuid.New(), &project.CreateRequest{
		TeamID:   &teamID,
		BucketID: bucketID,
		Name:     "Docs",
		Slug:     "docs",
	})
	assert.ErrorIs(t, err, ErrTeamNoBucketAccess)
}

func TestProjectCreate_TeamProjectViaGrant(t *testing.T) {
	teamID := uuid.New()
	bucketID := uuid.New()

	members := &mockMembershipRepo{
		teamRoleFunc: func(ctx context.Context, uID, tID uuid.UUID) (authz.Role, error) {
			return authz.RoleMember, nil
		},
	}
	buckets := &mockBucketRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Bucket, error) {
			return &mapper.Bucket{ID: bucketID, TeamID: uuid.New()}, nil
		},
		getGrantFunc: func(ctx context.Context, bID, tID uuid.UUID) (*mapper.BucketGrant, error) {
			return &mapper.BucketGrant{BucketID: bID, TeamID: tID, Level: authz.AccessReadOnly}, nil
		},
	}
	var created *mapper.Project
	projects := &mockProjectRepo{
		createFunc: func(ctx context.Context, p *mapper.Project) error {
			created = p
			return nil
		},
	}
	access := NewAccessResolver(members, buckets, &mockTeamRepo{}, projects)
	svc := NewProjectService(projects, &mockTenantRepo{}, &mockMembershipRepo{}, access, NewAuditService())

	userID := uuid.New()
	resp, err := svc.Create(context.Background(), userID, &project.CreateRequest{
		TeamID:   &teamID,
		BucketID: bucketID,
		Name:     "Docs",
		Slug:     "docs",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, userID, created.OwnerID)
	assert.Equal(t, teamID, *resp.TeamID)
}

func TestProjectCreate_Personal(t *testing.T) {
	bucketID := uuid.New()
	ownerTeam := uuid.New()

	// The creator is a plain member of the bucket's owning team.
	members := &mockMembershipRepo{
		teamRoleFunc: func(ctx context.Context, uID, tID uuid.UUID) (authz.Role, error) {
			return authz.RoleMember, nil
		},
	}
	buckets := &mockBucketRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Bucket, error) {
			return &mapper.Bucket{ID: bucketID, TeamID: ownerTeam}, nil
		},
	}
	var created *mapper.Project
	projects := &mockProjectRepo{
		createFunc: func(ctx context.Context, p *mapper.Project) error {
			created = p
			return nil
		},
	}
	access := NewAccessResolver(members, buckets, &mockTeamRepo{}, projects)
	svc := NewProjectService(projects, &mockTenantRepo{}, &mockMembershipRepo{}, access, NewAuditService())

	resp, err := svc.Create(context.Background(), uuid.New(), &project.CreateRequest{
		BucketID: bucketID,
		Name:     "Scratch",
		Slug:     "scratch",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Nil(t, created.TeamID)
	assert.Nil(t, resp.TeamID)
}

func transferFixture(t *testing.T, projectTeam, newTeam, bucketOwner uuid.UUID, projects *mockProjectRepo, buckets *mockBucketRepo) *ProjectService {
	t.Helper()
	members := &mockMembershipRepo{
		teamRoleFunc: func(ctx context.Context, uID, tID uuid.UUID) (authz.Role, error) {
			return authz.RoleAdmin, nil
		},
	}
	access := NewAccessResolver(members, buckets, &mockTeamRepo{}, projects)
	return NewProjectService(projects, &mockTenantRepo{}, &mockMembershipRepo{}, access, NewAuditService())
}

func TestProjectTransfer_SameTeamRejected(t *testing.T) {
	teamID := uuid.New()
	projectID := uuid.New()
	bucketID := uuid.New()
	projects := &mockProjectRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Project, error) {
			return &mapper.Project{ID: projectID, TeamID: &teamID, BucketID: bucketID}, nil
		},
	}
	svc := transferFixture(t, teamID, teamID, teamID, projects, &mockBucketRepo{})

	_, err := svc.Transfer(context.Background(), uuid.New(), projectID, &project.TransferRequest{TeamID: teamID})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProjectTransfer_NewTeamNeedsBucketAccess(t *testing.T) {
	oldTeam := uuid.New()
	newTeam := uuid.New()
	projectID := uuid.New()
	bucketID := uuid.New()
	projects := &mockProjectRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Project, error) {
			return &mapper.Project{ID: projectID, TeamID: &oldTeam, BucketID: bucketID}, nil
		},
	}
	// Bucket owned by the old team; nothing granted to the new one.
	buckets := &mockBucketRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Bucket, error) {
			return &mapper.Bucket{ID: bucketID, TeamID: oldTeam}, nil
		},
	}
	svc := transferFixture(t, oldTeam, newTeam, oldTeam, projects, buckets)

	_, err := svc.Transfer(context.Background(), uuid.New(), projectID, &project.TransferRequest{TeamID: newTeam})
	assert.ErrorIs(t, err, ErrNewTeamNoBucketAccess)
}

func TestProjectTransfer_ReadOnlyGrantInsufficient(t *testing.T) {
	oldTeam := uuid.New()
	newTeam := uuid.New()
	projectID := uuid.New()
	bucketID := uuid.New()
	projects := &mockProjectRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Project, error) {
			return &mapper.Project{ID: projectID, TeamID: &oldTeam, BucketID: bucketID}, nil
		},
	}
	// The destination holds a READ_ONLY grant, which is not enough to
	// carry a project; the transfer must demand READ_WRITE or better.
	buckets := &mockBucketRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Bucket, error) {
			return &mapper.Bucket{ID: bucketID, TeamID: oldTeam}, nil
		},
		getGrantFunc: func(ctx context.Context, bID, tID uuid.UUID) (*mapper.BucketGrant, error) {
			return &mapper.BucketGrant{BucketID: bID, TeamID: tID, Level: authz.AccessReadOnly}, nil
		},
	}
	svc := transferFixture(t, oldTeam, newTeam, oldTeam, projects, buckets)

	_, err := svc.Transfer(context.Background(), uuid.New(), projectID, &project.TransferRequest{TeamID: newTeam})
	assert.ErrorIs(t, err, ErrNewTeamNoBucketAccess)
}

func TestProjectTransfer_ReadWriteGrantSuffices(t *testing.T) {
	oldTeam := uuid.New()
	newTeam := uuid.New()
	projectID := uuid.New()
	bucketID := uuid.New()
	var transferredTo uuid.UUID
	projects := &mockProjectRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Project, error) {
			return &mapper.Project{ID: projectID, TeamID: &oldTeam, BucketID: bucketID}, nil
		},
		transferFunc: func(ctx context.Context, id, toTeam uuid.UUID) error {
			transferredTo = toTeam
			return nil
		},
	}
	buckets := &mockBucketRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Bucket, error) {
			return &mapper.Bucket{ID: bucketID, TeamID: oldTeam}, nil
		},
		getGrantFunc: func(ctx context.Context, bID, tID uuid.UUID) (*mapper.BucketGrant, error) {
			return &mapper.BucketGrant{BucketID: bID, TeamID: tID, Level: authz.AccessReadWrite}, nil
		},
	}
	svc := transferFixture(t, oldTeam, newTeam, oldTeam, projects, buckets)

	resp, err := svc.Transfer(context.Background(), uuid.New(), projectID, &project.TransferRequest{TeamID: newTeam})
	require.NoError(t, err)
	assert.Equal(t, newTeam, transferredTo)
	assert.NotNil(t, resp)
}

func TestProjectTransfer_SlugConflictPropagates(t *testing.T) {
	oldTeam := uuid.New()
	newTeam := uuid.New()
	projectID := uuid.New()
	bucketID := uuid.New()
	projects := &mockProjectRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Project, error) {
			return &mapper.Project{ID: projectID, TeamID: &oldTeam, BucketID: bucketID}, nil
		},
		transferFunc: func(ctx context.Context, id, toTeam uuid.UUID) error {
			return ErrSlugExistsInNewTeam
		},
	}
	buckets := &mockBucketRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Bucket, error) {
			return &mapper.Bucket{ID: bucketID, TeamID: newTeam}, nil
		},
	}
	svc := transferFixture(t, oldTeam, newTeam, newTeam, projects, buckets)

	_, err := svc.Transfer(context.Background(), uuid.New(), projectID, &project.TransferRequest{TeamID: newTeam})
	assert.ErrorIs(t, err, ErrSlugExistsInNewTeam)
}

func TestCreateTenant_RequiresMultiTenantProject(t *testing.T) {
	projectID := uuid.New()
	teamID := uuid.New()
	members := &mockMembershipRepo{
		teamRoleFunc: func(ctx context.Context, uID, tID uuid.UUID) (authz.Role, error) {
			return authz.RoleMember, nil
		},
	}
	projects := &mockProjectRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Project, error) {
			return &mapper.Project{ID: projectID, TeamID: &teamID, MultiTenant: false}, nil
		},
	}
	access := NewAccessResolver(members, &mockBucketRepo{}, &mockTeamRepo{}, projects)
	svc := NewProjectService(projects, &mockTenantRepo{}, &mockMembershipRepo{}, access, NewAuditService())

	_, err := svc.CreateTenant(context.Background(), uuid.New(), projectID, &project.CreateTenantRequest{Slug: "acme"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateTenant_WrongProjectReadsAsNotFound(t *testing.T) {
	projectID := uuid.New()
	teamID := uuid.New()
	tenantID := uuid.New()
	members := &mockMembershipRepo{
		teamRoleFunc: func(ctx context.Context, uID, tID uuid.UUID) (authz.Role, error) {
			return authz.RoleMember, nil
		},
	}
	projects := &mockProjectRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Project, error) {
			return &mapper.Project{ID: projectID, TeamID: &teamID, MultiTenant: true}, nil
		},
	}
	tenants := &mockTenantRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Tenant, error) {
			return &mapper.Tenant{ID: tenantID, ProjectID: uuid.New()}, nil
		},
	}
	access := NewAccessResolver(members, &mockBucketRepo{}, &mockTeamRepo{}, projects)
	svc := NewProjectService(projects, tenants, &mockMembershipRepo{}, access, NewAuditService())

	_, err := svc.UpdateTenant(context.Background(), uuid.New(), projectID, tenantID, &project.UpdateTenantRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}
