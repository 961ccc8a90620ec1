package team

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest represents the request body for creating a team
type CreateRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
	Slug string `json:"slug" binding:"required,slug"`
}

// UpdateRequest represents a partial team update
type UpdateRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=100"`
}

// Response represents a team in API responses
type Response struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AddMemberRequest adds an existing user to the team
type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Role   string    `json:"role" binding:"required,role"`
}

// UpdateMemberRequest changes a member's role
type UpdateMemberRequest struct {
	Role string `json:"role" binding:"required,role"`
}

// MemberResponse represents a team membership in API responses
type MemberResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
