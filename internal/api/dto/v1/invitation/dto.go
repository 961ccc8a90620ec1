package invitation

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest represents the request body for inviting a member. Exactly
// one of OrganizationID and TeamID must be set.
type CreateRequest struct {
	Email          string     `json:"email" binding:"required,email"`
	Role           string     `json:"role" binding:"required,role"`
	OrganizationID *uuid.UUID `json:"organization_id"`
	TeamID         *uuid.UUID `json:"team_id"`
}

// Response represents an invitation in API responses
type Response struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	Status         string     `json:"status"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	TeamID         *uuid.UUID `json:"team_id,omitempty"`
	InvitedBy      uuid.UUID  `json:"invited_by"`
	ExpiresAt      time.Time  `json:"expires_at"`
	CreatedAt      time.Time  `json:"created_at"`
}
