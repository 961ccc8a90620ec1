package service

import (
	"context"

	"shelfcloud/internal/api/dto/v1/organization"
	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"
	"shelfcloud/internal/repository"

	"github.com/google/uuid"
)

// OrganizationService manages organizations and their memberships.
type OrganizationService struct {
	orgRepo    repository.OrganizationRepository
	memberRepo repository.MembershipRepository
	access     *AccessResolver
	audit      *AuditService
}

func NewOrganizationService(orgRepo repository.OrganizationRepository, memberRepo repository.MembershipRepository, access *AccessResolver, audit *AuditService) *OrganizationService {
	return &OrganizationService{
		orgRepo:    orgRepo,
		memberRepo: memberRepo,
		access:     access,
		audit:      audit,
	}
}

func (s *OrganizationService) Create(ctx context.Context, userID uuid.UUID, req *organization.CreateRequest) (*organization.Response, error) {
	org := &mapper.Organization{
		ID:          uuid.New(),
		Name:        req.Name,
		Slug:        req.Slug,
		OwnerID:     userID,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}
	s.audit.LogOrgEvent(ctx, AuditEventOrgCreated, userID, org.ID, map[string]interface{}{"slug": org.Slug})
	return mapper.ToOrganizationResponse(org), nil
}

func (s *OrganizationService) Get(ctx context.Context, userID, orgID uuid.UUID) (*organization.Response, error) {
	if err := s.access.RequireOrgRole(ctx, userID, orgID, authz.RoleMember); err != nil {
		return nil, err
	}
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return mapper.ToOrganizationResponse(org), nil
}

func (s *OrganizationService) List(ctx context.Context, userID uuid.UUID) ([]*organization.Response, error) {
	orgs, err := s.orgRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapper.ToOrganizationResponses(orgs), nil
}

func (s *OrganizationService) Update(ctx context.Context, userID, orgID uuid.UUID, req *organization.UpdateRequest) (*organization.Response, error) {
	if err := s.access.RequireOrgRole(ctx, userID, orgID, authz.RoleAdmin); err != nil {
		return nil, err
	}
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.Description != nil {
		org.Description = *req.Description
	}
	if req.LogoURL != nil {
		org.LogoURL = *req.LogoURL
	}
	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return mapper.ToOrganizationResponse(org), nil
}

func (s *OrganizationService) Delete(ctx context.Context, userID, orgID uuid.UUID) error {
	if err := s.access.RequireOrgRole(ctx, userID, orgID, authz.RoleOwner); err != nil {
		return err
	}
	if err := s.orgRepo.Delete(ctx, orgID); err != nil {
		return err
	}
	s.audit.LogOrgEvent(ctx, AuditEventOrgDeleted, userID, orgID, nil)
	return nil
}

func (s *OrganizationService) ListMembers(ctx context.Context, userID, orgID uuid.UUID) ([]*organization.MemberResponse, error) {
	if err := s.access.RequireOrgRole(ctx, userID, orgID, authz.RoleMember); err != nil {
		return nil, err
	}
	members, err := s.memberRepo.ListOrgMembers(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return mapper.ToOrganizationMemberResponses(members), nil
}

func (s *OrganizationService) AddMember(ctx context.Context, userID, orgID uuid.UUID, req *organization.AddMemberRequest) error {
	if err := s.access.RequireOrgRole(ctx, userID, orgID, authz.RoleAdmin); err != nil {
		return err
	}
	role, err := authz.ParseRole(req.Role)
	if err != nil {
		return ErrValidation
	}
	return s.memberRepo.AddOrgMember(ctx, orgID, req.UserID, role)
}

func (s *OrganizationService) UpdateMemberRole(ctx context.Context, userID, orgID, memberID uuid.UUID, req *organization.UpdateMemberRequest) error {
	if err := s.access.RequireOrgRole(ctx, userID, orgID, authz.RoleAdmin); err != nil {
		return err
	}
	role, err := authz.ParseRole(req.Role)
	if err != nil {
		return ErrValidation
	}
	if role != authz.RoleOwner {
		if err := s.guardLastOwner(ctx, orgID, memberID); err != nil {
			return err
		}
	}
	return s.memberRepo.UpdateOrgMemberRole(ctx, orgID, memberID, role)
}

func (s *OrganizationService) RemoveMember(ctx context.Context, userID, orgID, memberID uuid.UUID) error {
	// Members may leave on their own; removing anyone else takes ADMIN.
	if userID != memberID {
		if err := s.access.RequireOrgRole(ctx, userID, orgID, authz.RoleAdmin); err != nil {
			return err
		}
	}
	if err := s.guardLastOwner(ctx, orgID, memberID); err != nil {
		return err
	}
	return s.memberRepo.RemoveOrgMember(ctx, orgID, memberID)
}

// guardLastOwner rejects demoting or removing the sole remaining OWNER.
func (s *OrganizationService) guardLastOwner(ctx context.Context, orgID, memberID uuid.UUID) error {
	role, err := s.memberRepo.OrgRole(ctx, memberID, orgID)
	if err != nil {
		return err
	}
	if role != authz.RoleOwner {
		return nil
	}
	owners, err := s.memberRepo.CountOrgOwners(ctx, orgID)
	if err != nil {
		return err
	}
	if owners <= 1 {
		return ErrLastOwner
	}
	return nil
}
