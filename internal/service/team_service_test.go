package service

import (
	"context"
	"testing"

	"shelfcloud/internal/api/dto/v1/team"
	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamCreate_RequiresOrgAdmin(t *testing.T) {
	members := &mockMembershipRepo{
		orgRoleFunc: func(ctx context.Context, uID, oID uuid.UUID) (authz.Role, error) {
			return authz.RoleMember, nil
		},
	}
	access := NewAccessResolver(members, &mockBucketRepo{}, &mockTeamRepo{}, &mockProjectRepo{})
	svc := NewTeamService(&mockTeamRepo{}, members, access, NewAuditService())

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), &team.CreateRequest{
		Name: "Platform",
		Slug: "platform",
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestTeamCreate_CreatorBecomesOwner(t *testing.T) {
	orgID := uuid.New()
	creator := uuid.New()
	var createdWith uuid.UUID
	teams := &mockTeamRepo{
		createFunc: func(ctx context.Context, tm *mapper.Team, creatorID uuid.UUID) error {
			createdWith = creatorID
			return nil
		},
	}
	members := &mockMembershipRepo{
		orgRoleFunc: func(ctx context.Context, uID, oID uuid.UUID) (authz.Role, error) {
			return authz.RoleAdmin, nil
		},
	}
	access := NewAccessResolver(members, &mockBucketRepo{}, teams, &mockProjectRepo{})
	svc := NewTeamService(teams, members, access, NewAuditService())

	resp, err := svc.Create(context.Background(), creator, orgID, &team.CreateRequest{
		Name: "Platform",
		Slug: "platform",
	})
	require.NoError(t, err)
	assert.Equal(t, creator, createdWith)
	assert.Equal(t, orgID, resp.OrganizationID)
}

func TestTeamGet_OutsiderReadsAsNotFound(t *testing.T) {
	teams := &mockTeamRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Team, error) {
			return &mapper.Team{ID: id, OrganizationID: uuid.New()}, nil
		},
	}
	members := &mockMembershipRepo{}
	access := NewAccessResolver(members, &mockBucketRepo{}, teams, &mockProjectRepo{})
	svc := NewTeamService(teams, members, access, NewAuditService())

	_, err := svc.Get(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTeamGet_OrgMemberSeesTeam(t *testing.T) {
	teams := &mockTeamRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Team, error) {
			return &mapper.Team{ID: id, OrganizationID: uuid.New(), Name: "Platform"}, nil
		},
	}
	members := &mockMembershipRepo{
		orgRoleForTeamFunc: func(ctx context.Context, uID, tID uuid.UUID) (authz.Role, error) {
			return authz.RoleViewer, nil
		},
	}
	access := NewAccessResolver(members, &mockBucketRepo{}, teams, &mockProjectRepo{})
	svc := NewTeamService(teams, members, access, NewAuditService())

	resp, err := svc.Get(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "Platform", resp.Name)
}

func TestTeamRemoveMember_LastOwnerBlocked(t *testing.T) {
	teamID := uuid.New()
	owner := uuid.New()
	members := &mockMembershipRepo{
		teamRoleFunc: func(ctx context.Context, uID, tID uuid.UUID) (authz.Role, error) {
			return authz.RoleOwner, nil
		},
		countTeamOwnersFunc: func(ctx context.Context, tID uuid.UUID) (int, error) {
			return 1, nil
		},
	}
	access := NewAccessResolver(members, &mockBucketRepo{}, &mockTeamRepo{}, &mockProjectRepo{})
	svc := NewTeamService(&mockTeamRepo{}, members, access, NewAuditService())

	err := svc.RemoveMember(context.Background(), owner, teamID, owner)
	assert.ErrorIs(t, err, ErrLastOwner)
}

func TestTeamDelete_RequiresTeamOwner(t *testing.T) {
	members := &mockMembershipRepo{
		teamRoleFunc: func(ctx context.Context, uID, tID uuid.UUID) (authz.Role, error) {
			return authz.RoleAdmin, nil
		},
	}
	access := NewAccessResolver(members, &mockBucketRepo{}, &mockTeamRepo{}, &mockProjectRepo{})
	svc := NewTeamService(&mockTeamRepo{}, members, access, NewAuditService())

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestTeamDelete_NotEmptyPropagates(t *testing.T) {
	teams := &mockTeamRepo{
		deleteFunc: func(ctx context.Context, id uuid.UUID) error {
			return ErrTeamNotEmpty
		},
	}
	members := &mockMembershipRepo{
		teamRoleFunc: func(ctx context.Context, uID, tID uuid.UUID) (authz.Role, error) {
			return authz.RoleOwner, nil
		},
	}
	access := NewAccessResolver(members, &mockBucketRepo{}, teams, &mockProjectRepo{})
	svc := NewTeamService(teams, members, access, NewAuditService())

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrTeamNotEmpty)
}
