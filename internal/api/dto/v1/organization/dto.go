package organization

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest represents the request body for creating an organization
type CreateRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Slug        string `json:"slug" binding:"required,slug"`
	Description string `json:"description" binding:"max=500"`
	LogoURL     string `json:"logo_url" binding:"omitempty,url"`
}

// UpdateRequest represents a partial update; nil fields are left untouched
type UpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	LogoURL     *string `json:"logo_url" binding:"omitempty,url"`
}

// Response represents an organization in API responses
type Response struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Description string    `json:"description,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AddMemberRequest adds an existing user to the organization
type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Role   string    `json:"role" binding:"required,role"`
}

// UpdateMemberRequest changes a member's role
type UpdateMemberRequest struct {
	Role string `json:"role" binding:"required,role"`
}

// MemberResponse represents a membership in API responses
type MemberResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
