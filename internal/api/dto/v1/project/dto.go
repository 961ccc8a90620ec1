package project

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest represents the request body for creating a project. TeamID
// is nil for personal projects.
type CreateRequest struct {
	TeamID      *uuid.UUID `json:"team_id"`
	BucketID    uuid.UUID  `json:"bucket_id" binding:"required"`
	Name        string     `json:"name" binding:"required,min=2,max=100"`
	Slug        string     `json:"slug" binding:"required,slug"`
	MultiTenant bool       `json:"multi_tenant"`
}

// UpdateRequest represents a partial project update
type UpdateRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=100"`
}

// TransferRequest moves the project to another team
type TransferRequest struct {
	TeamID uuid.UUID `json:"team_id" binding:"required"`
}

// Response represents a project in API responses
type Response struct {
	ID          uuid.UUID  `json:"id"`
	TeamID      *uuid.UUID `json:"team_id,omitempty"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	BucketID    uuid.UUID  `json:"bucket_id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	MultiTenant bool       `json:"multi_tenant"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateTenantRequest adds a tenant to a multi-tenant project. The slug is
// immutable after creation.
type CreateTenantRequest struct {
	Slug     string                 `json:"slug" binding:"required,slug"`
	Metadata map[string]interface{} `json:"metadata"`
}

// UpdateTenantRequest replaces a tenant's metadata
type UpdateTenantRequest struct {
	Metadata map[string]interface{} `json:"metadata" binding:"required"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID        uuid.UUID              `json:"id"`
	ProjectID uuid.UUID              `json:"project_id"`
	Slug      string                 `json:"slug"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
