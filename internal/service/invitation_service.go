package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"shelfcloud/internal/api/dto/v1/invitation"
	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"
	"shelfcloud/internal/repository"

	"github.com/google/uuid"
)

const invitationTTL = 7 * 24 * time.Hour

// InvitationService runs the membership invitation workflow. Expiry is
// lazy: a PENDING invitation past its deadline is flipped to EXPIRED the
// next time anything touches it.
type InvitationService struct {
	invRepo repository.InvitationRepository
	access  *AccessResolver
	audit   *AuditService
}

func NewInvitationService(invRepo repository.InvitationRepository, access *AccessResolver, audit *AuditService) *InvitationService {
	return &InvitationService{
		invRepo: invRepo,
		access:  access,
		audit:   audit,
	}
}

func (s *InvitationService) Create(ctx context.Context, userID uuid.UUID, req *invitation.CreateRequest) (*invitation.Response, error) {
	if (req.OrganizationID == nil) == (req.TeamID == nil) {
		return nil, ErrValidation
	}
	role, err := authz.ParseRole(req.Role)
	if err != nil || role == authz.RoleOwner {
		// Ownership is never granted by invitation.
		return nil, ErrValidation
	}

	if req.OrganizationID != nil {
		if err := s.access.RequireOrgRole(ctx, userID, *req.OrganizationID, authz.RoleAdmin); err != nil {
			return nil, err
		}
	} else {
		if err := s.access.RequireTeamRole(ctx, userID, *req.TeamID, authz.RoleAdmin); err != nil {
			return nil, err
		}
	}

	inv := &mapper.Invitation{
		ID:             uuid.New(),
		Email:          strings.ToLower(req.Email),
		Role:           role,
		Status:         mapper.InvitationPending,
		OrganizationID: req.OrganizationID,
		TeamID:         req.TeamID,
		InvitedBy:      userID,
		ExpiresAt:      time.Now().Add(invitationTTL),
	}
	if err := s.invRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	s.audit.LogInvitationEvent(ctx, AuditEventInvitationCreated, userID, inv.ID, map[string]interface{}{"email": inv.Email})
	return mapper.ToInvitationResponse(inv), nil
}

func (s *InvitationService) Get(ctx context.Context, id uuid.UUID) (*invitation.Response, error) {
	inv, err := s.touch(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapper.ToInvitationResponse(inv), nil
}

func (s *InvitationService) ListByOrganization(ctx context.Context, userID, orgID uuid.UUID) ([]*invitation.Response, error) {
	if err := s.access.RequireOrgRole(ctx, userID, orgID, authz.RoleAdmin); err != nil {
		return nil, err
	}
	invs, err := s.invRepo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return mapper.ToInvitationResponses(s.expireStale(ctx, invs)), nil
}

func (s *InvitationService) ListByTeam(ctx context.Context, userID, teamID uuid.UUID) ([]*invitation.Response, error) {
	if err := s.access.RequireTeamRole(ctx, userID, teamID, authz.RoleAdmin); err != nil {
		return nil, err
	}
	invs, err := s.invRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return mapper.ToInvitationResponses(s.expireStale(ctx, invs)), nil
}

// Accept transitions the invitation and creates the membership in one step.
// Only the account whose email matches the invitation may accept it, and
// only once.
func (s *InvitationService) Accept(ctx context.Context, user *mapper.User, id uuid.UUID) error {
	inv, err := s.touch(ctx, id)
	if err != nil {
		return err
	}
	if !strings.EqualFold(user.Email, inv.Email) {
		return ErrForbidden
	}
	if inv.Status != mapper.InvitationPending {
		return ErrInvalidOrExpiredToken
	}
	if err := s.invRepo.Accept(ctx, inv, user.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Lost the race with a concurrent accept or revoke.
			return ErrInvalidOrExpiredToken
		}
		return err
	}
	s.audit.LogInvitationEvent(ctx, AuditEventInvitationAccepted, user.ID, inv.ID, nil)
	return nil
}

func (s *InvitationService) Decline(ctx context.Context, user *mapper.User, id uuid.UUID) error {
	inv, err := s.touch(ctx, id)
	if err != nil {
		return err
	}
	if !strings.EqualFold(user.Email, inv.Email) {
		return ErrForbidden
	}
	if inv.Status != mapper.InvitationPending {
		return ErrInvalidOrExpiredToken
	}
	if err := s.invRepo.UpdateStatus(ctx, id, mapper.InvitationPending, mapper.InvitationDeclined); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return err
	}
	return nil
}

// Revoke deletes a pending invitation; only admins of the invited scope may
// do so.
func (s *InvitationService) Revoke(ctx context.Context, userID, id uuid.UUID) error {
	inv, err := s.invRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.OrganizationID != nil {
		if err := s.access.RequireOrgRole(ctx, userID, *inv.OrganizationID, authz.RoleAdmin); err != nil {
			return err
		}
	} else if inv.TeamID != nil {
		if err := s.access.RequireTeamRole(ctx, userID, *inv.TeamID, authz.RoleAdmin); err != nil {
			return err
		}
	}
	return s.invRepo.Delete(ctx, id)
}

// touch loads an invitation and applies lazy expiry.
func (s *InvitationService) touch(ctx context.Context, id uuid.UUID) (*mapper.Invitation, error) {
	inv, err := s.invRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == mapper.InvitationPending && time.Now().After(inv.ExpiresAt) {
		if err := s.invRepo.UpdateStatus(ctx, id, mapper.InvitationPending, mapper.InvitationExpired); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		inv.Status = mapper.InvitationExpired
	}
	return inv, nil
}

// expireStale applies lazy expiry across a listing. Persistence failures
// here are tolerated; the read view is corrected regardless.
func (s *InvitationService) expireStale(ctx context.Context, invs []*mapper.Invitation) []*mapper.Invitation {
	now := time.Now()
	for _, inv := range invs {
		if inv.Status == mapper.InvitationPending && now.After(inv.ExpiresAt) {
			_ = s.invRepo.UpdateStatus(ctx, inv.ID, mapper.InvitationPending, mapper.InvitationExpired)
			inv.Status = mapper.InvitationExpired
		}
	}
	return invs
}
