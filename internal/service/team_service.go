package service

import (
	"context"

	"shelfcloud/internal/api/dto/v1/team"
	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"
	"shelfcloud/internal/repository"

	"github.com/google/uuid"
)

// TeamService manages teams and their memberships.
type TeamService struct {
	teamRepo   repository.TeamRepository
	memberRepo repository.MembershipRepository
	access     *AccessResolver
	audit      *AuditService
}

func NewTeamService(teamRepo repository.TeamRepository, memberRepo repository.MembershipRepository, access *AccessResolver, audit *AuditService) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		access:     access,
		audit:      audit,
	}
}

func (s *TeamService) Create(ctx context.Context, userID, orgID uuid.UUID, req *team.CreateRequest) (*team.Response, error) {
	if err := s.access.RequireOrgRole(ctx, userID, orgID, authz.RoleAdmin); err != nil {
		return nil, err
	}
	t := &mapper.Team{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           req.Name,
		Slug:           req.Slug,
	}
	if err := s.teamRepo.Create(ctx, t, userID); err != nil {
		return nil, err
	}
	s.audit.LogTeamEvent(ctx, AuditEventTeamCreated, userID, t.ID, map[string]interface{}{"slug": t.Slug})
	return mapper.ToTeamResponse(t), nil
}

func (s *TeamService) Get(ctx context.Context, userID, teamID uuid.UUID) (*team.Response, error) {
	if err := s.requireTeamVisibility(ctx, userID, teamID); err != nil {
		return nil, err
	}
	t, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return mapper.ToTeamResponse(t), nil
}

func (s *TeamService) ListByOrganization(ctx context.Context, userID, orgID uuid.UUID) ([]*team.Response, error) {
	if err := s.access.RequireOrgRole(ctx, userID, orgID, authz.RoleMember); err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return mapper.ToTeamResponses(teams), nil
}

func (s *TeamService) Update(ctx context.Context, userID, teamID uuid.UUID, req *team.UpdateRequest) (*team.Response, error) {
	if err := s.access.RequireTeamRole(ctx, userID, teamID, authz.RoleAdmin); err != nil {
		return nil, err
	}
	t, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if err := s.teamRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return mapper.ToTeamResponse(t), nil
}

func (s *TeamService) Delete(ctx context.Context, userID, teamID uuid.UUID) error {
	if err := s.access.RequireTeamRole(ctx, userID, teamID, authz.RoleOwner); err != nil {
		return err
	}
	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return err
	}
	s.audit.LogTeamEvent(ctx, AuditEventTeamDeleted, userID, teamID, nil)
	return nil
}

func (s *TeamService) ListMembers(ctx context.Context, userID, teamID uuid.UUID) ([]*team.MemberResponse, error) {
	if err := s.requireTeamVisibility(ctx, userID, teamID); err != nil {
		return nil, err
	}
	members, err := s.memberRepo.ListTeamMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return mapper.ToTeamMemberResponses(members), nil
}

func (s *TeamService) AddMember(ctx context.Context, userID, teamID uuid.UUID, req *team.AddMemberRequest) error {
	if err := s.access.RequireTeamRole(ctx, userID, teamID, authz.RoleAdmin); err != nil {
		return err
	}
	role, err := authz.ParseRole(req.Role)
	if err != nil {
		return ErrValidation
	}
	return s.memberRepo.AddTeamMember(ctx, teamID, req.UserID, role)
}

func (s *TeamService) UpdateMemberRole(ctx context.Context, userID, teamID, memberID uuid.UUID, req *team.UpdateMemberRequest) error {
	if err := s.access.RequireTeamRole(ctx, userID, teamID, authz.RoleAdmin); err != nil {
		return err
	}
	role, err := authz.ParseRole(req.Role)
	if err != nil {
		return ErrValidation
	}
	if role != authz.RoleOwner {
		if err := s.guardLastOwner(ctx, teamID, memberID); err != nil {
			return err
		}
	}
	return s.memberRepo.UpdateTeamMemberRole(ctx, teamID, memberID, role)
}

func (s *TeamService) RemoveMember(ctx context.Context, userID, teamID, memberID uuid.UUID) error {
	if userID != memberID {
		if err := s.access.RequireTeamRole(ctx, userID, teamID, authz.RoleAdmin); err != nil {
			return err
		}
	}
	if err := s.guardLastOwner(ctx, teamID, memberID); err != nil {
		return err
	}
	return s.memberRepo.RemoveTeamMember(ctx, teamID, memberID)
}

// requireTeamVisibility admits any member of the team or of its owning
// organization.
func (s *TeamService) requireTeamVisibility(ctx context.Context, userID, teamID uuid.UUID) error {
	role, err := s.access.EffectiveTeamRole(ctx, userID, teamID)
	if err != nil {
		return err
	}
	if role != authz.RoleNone {
		return nil
	}
	orgRole, err := s.memberRepo.OrgRoleForTeam(ctx, userID, teamID)
	if err != nil {
		return err
	}
	if orgRole == authz.RoleNone {
		return ErrNotFound
	}
	return nil
}

func (s *TeamService) guardLastOwner(ctx context.Context, teamID, memberID uuid.UUID) error {
	role, err := s.memberRepo.TeamRole(ctx, memberID, teamID)
	if err != nil {
		return err
	}
	if role != authz.RoleOwner {
		return nil
	}
	owners, err := s.memberRepo.CountTeamOwners(ctx, teamID)
	if err != nil {
		return err
	}
	if owners <= 1 {
		return ErrLastOwner
	}
	return nil
}
