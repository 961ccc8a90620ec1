package service

import (
	"context"

	"shelfcloud/internal/api/dto/v1/bucket"
	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"
	"shelfcloud/internal/repository"
	"shelfcloud/internal/secrets"

	"github.com/google/uuid"
)

// BucketService manages the bucket registry and its sharing grants.
// Provider credentials are sealed before they reach the repository and are
// never returned by any operation.
type BucketService struct {
	bucketRepo repository.BucketRepository
	teamRepo   repository.TeamRepository
	memberRepo repository.MembershipRepository
	access     *AccessResolver
	box        *secrets.Box
	audit      *AuditService
}

func NewBucketService(bucketRepo repository.BucketRepository, teamRepo repository.TeamRepository, memberRepo repository.MembershipRepository, access *AccessResolver, box *secrets.Box, audit *AuditService) *BucketService {
	return &BucketService{
		bucketRepo: bucketRepo,
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		access:     access,
		box:        box,
		audit:      audit,
	}
}

func (s *BucketService) Create(ctx context.Context, userID uuid.UUID, req *bucket.CreateRequest) (*bucket.Response, error) {
	if err := s.access.RequireTeamRole(ctx, userID, req.TeamID, authz.RoleAdmin); err != nil {
		return nil, err
	}

	accessKeyEnc, err := s.box.Seal(req.AccessKey)
	if err != nil {
		return nil, err
	}
	secretKeyEnc, err := s.box.Seal(req.SecretKey)
	if err != nil {
		return nil, err
	}

	b := &mapper.Bucket{
		ID:           uuid.New(),
		TeamID:       req.TeamID,
		Name:         req.Name,
		Provider:     req.Provider,
		BucketName:   req.BucketName,
		Region:       req.Region,
		Endpoint:     req.Endpoint,
		AccessKeyEnc: accessKeyEnc,
		SecretKeyEnc: secretKeyEnc,
		Status:       mapper.BucketPending,
	}
	if err := s.bucketRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	s.audit.LogBucketEvent(ctx, AuditEventBucketRegistered, userID, b.ID, map[string]interface{}{"provider": b.Provider, "bucket": b.BucketName})
	return mapper.ToBucketResponse(b), nil
}

func (s *BucketService) Get(ctx context.Context, userID, bucketID uuid.UUID) (*bucket.Response, error) {
	if err := s.access.RequireBucketAccess(ctx, userID, bucketID, authz.AccessReadOnly); err != nil {
		return nil, err
	}
	b, err := s.bucketRepo.GetByID(ctx, bucketID)
	if err != nil {
		return nil, err
	}
	return mapper.ToBucketResponse(b), nil
}

func (s *BucketService) List(ctx context.Context, userID uuid.UUID) ([]*bucket.Response, error) {
	teamIDs, err := s.memberRepo.ListTeamIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(teamIDs) == 0 {
		return []*bucket.Response{}, nil
	}
	buckets, err := s.bucketRepo.ListVisible(ctx, teamIDs)
	if err != nil {
		return nil, err
	}
	return mapper.ToBucketResponses(buckets), nil
}

func (s *BucketService) Update(ctx context.Context, userID, bucketID uuid.UUID, req *bucket.UpdateRequest) (*bucket.Response, error) {
	if err := s.access.RequireBucketAccess(ctx, userID, bucketID, authz.AccessAdmin); err != nil {
		return nil, err
	}
	b, err := s.bucketRepo.GetByID(ctx, bucketID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		b.Name = *req.Name
	}
	if err := s.bucketRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return mapper.ToBucketResponse(b), nil
}

func (s *BucketService) Delete(ctx context.Context, userID, bucketID uuid.UUID) error {
	if err := s.access.RequireBucketAccess(ctx, userID, bucketID, authz.AccessAdmin); err != nil {
		return err
	}
	if err := s.bucketRepo.Delete(ctx, bucketID); err != nil {
		return err
	}
	s.audit.LogBucketEvent(ctx, AuditEventBucketDeleted, userID, bucketID, nil)
	return nil
}

// Grant shares the bucket with another team in the same organization. The
// owning team cannot be granted access to its own bucket. Granting an
// already granted team overwrites the level.
func (s *BucketService) Grant(ctx context.Context, userID, bucketID uuid.UUID, req *bucket.GrantRequest) (*bucket.GrantResponse, error) {
	if err := s.access.RequireBucketAccess(ctx, userID, bucketID, authz.AccessAdmin); err != nil {
		return nil, err
	}
	level, err := authz.ParseAccessLevel(req.AccessLevel)
	if err != nil {
		return nil, ErrValidation
	}

	b, err := s.bucketRepo.GetByID(ctx, bucketID)
	if err != nil {
		return nil, err
	}
	if req.TeamID == b.TeamID {
		return nil, ErrValidation
	}

	ownerTeam, err := s.teamRepo.GetByID(ctx, b.TeamID)
	if err != nil {
		return nil, err
	}
	target, err := s.teamRepo.GetByID(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}
	if target.OrganizationID != ownerTeam.OrganizationID {
		return nil, ErrForbidden
	}

	grant := &mapper.BucketGrant{
		BucketID: bucketID,
		TeamID:   req.TeamID,
		Level:    level,
	}
	if err := s.bucketRepo.UpsertGrant(ctx, grant); err != nil {
		return nil, err
	}
	s.audit.LogBucketEvent(ctx, AuditEventBucketShared, userID, bucketID, map[string]interface{}{"team_id": req.TeamID, "access_level": level.String()})
	return mapper.ToGrantResponse(grant), nil
}

func (s *BucketService) RevokeGrant(ctx context.Context, userID, bucketID, teamID uuid.UUID) error {
	if err := s.access.RequireBucketAccess(ctx, userID, bucketID, authz.AccessAdmin); err != nil {
		return err
	}
	if err := s.bucketRepo.RevokeGrant(ctx, bucketID, teamID); err != nil {
		return err
	}
	s.audit.LogBucketEvent(ctx, AuditEventBucketUnshared, userID, bucketID, map[string]interface{}{"team_id": teamID})
	return nil
}

func (s *BucketService) ListGrants(ctx context.Context, userID, bucketID uuid.UUID) ([]*bucket.GrantResponse, error) {
	if err := s.access.RequireBucketAccess(ctx, userID, bucketID, authz.AccessAdmin); err != nil {
		return nil, err
	}
	grants, err := s.bucketRepo.ListGrants(ctx, bucketID)
	if err != nil {
		return nil, err
	}
	result := make([]*bucket.GrantResponse, len(grants))
	for i, g := range grants {
		result[i] = mapper.ToGrantResponse(g)
	}
	return result, nil
}

// ListAvailableTeams returns sharing candidates: teams of the owning
// organization that neither own the bucket nor already hold a grant.
func (s *BucketService) ListAvailableTeams(ctx context.Context, userID, bucketID uuid.UUID) ([]*bucket.AvailableTeamResponse, error) {
	if err := s.access.RequireBucketAccess(ctx, userID, bucketID, authz.AccessAdmin); err != nil {
		return nil, err
	}
	teams, err := s.bucketRepo.ListAvailableTeams(ctx, bucketID)
	if err != nil {
		return nil, err
	}
	return mapper.ToAvailableTeamResponses(teams), nil
}
