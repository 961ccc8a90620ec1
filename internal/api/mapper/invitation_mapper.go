package mapper

import (
	"time"

	"shelfcloud/internal/api/dto/v1/invitation"
	"shelfcloud/internal/authz"

	"github.com/google/uuid"
)

// InvitationStatus is the state of a membership invitation
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationDeclined InvitationStatus = "DECLINED"
	InvitationExpired  InvitationStatus = "EXPIRED"
)

// Invitation represents the domain model for membership invitations.
// Exactly one of OrganizationID and TeamID is set.
type Invitation struct {
	ID             uuid.UUID        `json:"id"`
	Email          string           `json:"email"`
	Role           authz.Role       `json:"role"`
	Status         InvitationStatus `json:"status"`
	OrganizationID *uuid.UUID       `json:"organization_id,omitempty"`
	TeamID         *uuid.UUID       `json:"team_id,omitempty"`
	InvitedBy      uuid.UUID        `json:"invited_by"`
	ExpiresAt      time.Time        `json:"expires_at"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ToInvitationResponse converts a domain Invitation to a Response DTO
func ToInvitationResponse(inv *Invitation) *invitation.Response {
	return &invitation.Response{
		ID:             inv.ID,
		Email:          inv.Email,
		Role:           inv.Role.String(),
		Status:         string(inv.Status),
		OrganizationID: inv.OrganizationID,
		TeamID:         inv.TeamID,
		InvitedBy:      inv.InvitedBy,
		ExpiresAt:      inv.ExpiresAt,
		CreatedAt:      inv.CreatedAt,
	}
}

// ToInvitationResponses converts a slice of Invitations to Response DTOs
func ToInvitationResponses(invs []*Invitation) []*invitation.Response {
	result := make([]*invitation.Response, len(invs))
	for i, inv := range invs {
		result[i] = ToInvitationResponse(inv)
	}
	return result
}
