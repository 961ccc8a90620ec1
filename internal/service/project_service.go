package service

import (
	"context"

	"shelfcloud/internal/api/dto/v1/project"
	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"
	"shelfcloud/internal/repository"

	"github.com/google/uuid"
)

// ProjectService binds projects to buckets and manages their tenants. Team
// projects belong to a team; personal projects have a nil team and are
// owned by their creator.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	tenantRepo  repository.TenantRepository
	memberRepo  repository.MembershipRepository
	access      *AccessResolver
	audit       *AuditService
}

func NewProjectService(projectRepo repository.ProjectRepository, tenantRepo repository.TenantRepository, memberRepo repository.MembershipRepository, access *AccessResolver, audit *AuditService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		tenantRepo:  tenantRepo,
		memberRepo:  memberRepo,
		access:      access,
		audit:       audit,
	}
}

func (s *ProjectService) Create(ctx context.Context, userID uuid.UUID, req *project.CreateRequest) (*project.Response, error) {
	if req.TeamID != nil {
		if err := s.access.RequireTeamRole(ctx, userID, *req.TeamID, authz.RoleMember); err != nil {
			return nil, err
		}
		// The owning team must be able to reach the bucket.
		level, err := s.access.TeamBucketAccess(ctx, *req.TeamID, req.BucketID)
		if err != nil {
			return nil, err
		}
		if level == authz.AccessNone {
			return nil, ErrTeamNoBucketAccess
		}
	} else {
		if err := s.access.RequireBucketAccess(ctx, userID, req.BucketID, authz.AccessReadOnly); err != nil {
			return nil, err
		}
	}

	p := &mapper.Project{
		ID:          uuid.New(),
		TeamID:      req.TeamID,
		OwnerID:     userID,
		BucketID:    req.BucketID,
		Name:        req.Name,
		Slug:        req.Slug,
		MultiTenant: req.MultiTenant,
	}
	if err := s.projectRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.audit.LogProjectEvent(ctx, AuditEventProjectCreated, userID, p.ID, map[string]interface{}{"slug": p.Slug})
	return mapper.ToProjectResponse(p), nil
}

func (s *ProjectService) Get(ctx context.Context, userID, projectID uuid.UUID) (*project.Response, error) {
	p, err := s.access.VisibleProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	return mapper.ToProjectResponse(p), nil
}

func (s *ProjectService) List(ctx context.Context, userID uuid.UUID) ([]*project.Response, error) {
	teamIDs, err := s.memberRepo.ListTeamIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.ListVisible(ctx, teamIDs, userID)
	if err != nil {
		return nil, err
	}
	return mapper.ToProjectResponses(projects), nil
}

func (s *ProjectService) Update(ctx context.Context, userID, projectID uuid.UUID, req *project.UpdateRequest) (*project.Response, error) {
	p, err := s.access.RequireProjectRole(ctx, userID, projectID, authz.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if err := s.projectRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return mapper.ToProjectResponse(p), nil
}

func (s *ProjectService) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	if _, err := s.access.RequireProjectRole(ctx, userID, projectID, authz.RoleAdmin); err != nil {
		return err
	}
	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return err
	}
	s.audit.LogProjectEvent(ctx, AuditEventProjectDeleted, userID, projectID, nil)
	return nil
}

// Transfer rebinds the project to another team. The destination team must
// hold at least READ_WRITE access to the project's bucket and must not hold
// a project with the same slug.
func (s *ProjectService) Transfer(ctx context.Context, userID, projectID uuid.UUID, req *project.TransferRequest) (*project.Response, error) {
	p, err := s.access.RequireProjectRole(ctx, userID, projectID, authz.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if p.TeamID != nil && *p.TeamID == req.TeamID {
		return nil, ErrValidation
	}
	if err := s.access.RequireTeamRole(ctx, userID, req.TeamID, authz.RoleMember); err != nil {
		return nil, err
	}

	level, err := s.access.TeamBucketAccess(ctx, req.TeamID, p.BucketID)
	if err != nil {
		return nil, err
	}
	if !level.AtLeast(authz.AccessReadWrite) {
		return nil, ErrNewTeamNoBucketAccess
	}

	if err := s.projectRepo.Transfer(ctx, projectID, req.TeamID); err != nil {
		return nil, err
	}
	s.audit.LogProjectEvent(ctx, AuditEventProjectTransferred, userID, projectID, map[string]interface{}{"team_id": req.TeamID})

	p, err = s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return mapper.ToProjectResponse(p), nil
}

func (s *ProjectService) CreateTenant(ctx context.Context, userID, projectID uuid.UUID, req *project.CreateTenantRequest) (*project.TenantResponse, error) {
	p, err := s.access.RequireProjectRole(ctx, userID, projectID, authz.RoleMember)
	if err != nil {
		return nil, err
	}
	if !p.MultiTenant {
		return nil, ErrValidation
	}
	t := &mapper.Tenant{
		ID:        uuid.New(),
		ProjectID: projectID,
		Slug:      req.Slug,
		Metadata:  req.Metadata,
	}
	if err := s.tenantRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return mapper.ToTenantResponse(t), nil
}

func (s *ProjectService) ListTenants(ctx context.Context, userID, projectID uuid.UUID) ([]*project.TenantResponse, error) {
	if _, err := s.access.VisibleProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	tenants, err := s.tenantRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return mapper.ToTenantResponses(tenants), nil
}

// UpdateTenant replaces the tenant's metadata; the slug is immutable.
func (s *ProjectService) UpdateTenant(ctx context.Context, userID, projectID, tenantID uuid.UUID, req *project.UpdateTenantRequest) (*project.TenantResponse, error) {
	if _, err := s.access.RequireProjectRole(ctx, userID, projectID, authz.RoleMember); err != nil {
		return nil, err
	}
	t, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t.ProjectID != projectID {
		return nil, ErrNotFound
	}
	if err := s.tenantRepo.UpdateMetadata(ctx, tenantID, req.Metadata); err != nil {
		return nil, err
	}
	t.Metadata = req.Metadata
	return mapper.ToTenantResponse(t), nil
}

func (s *ProjectService) DeleteTenant(ctx context.Context, userID, projectID, tenantID uuid.UUID) error {
	if _, err := s.access.RequireProjectRole(ctx, userID, projectID, authz.RoleMember); err != nil {
		return err
	}
	t, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if t.ProjectID != projectID {
		return ErrNotFound
	}
	return s.tenantRepo.Delete(ctx, tenantID)
}

