package mapper

import (
	"time"

	"shelfcloud/internal/api/dto/v1/project"

	"github.com/google/uuid"
)

// Project represents the domain model for projects. TeamID is nil for
// personal projects, which are owned by their creator.
type Project struct {
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

// Tenant is a named sub-partition of a multi-tenant project's namespace
type Tenant struct {
	ID        uuid.UUID              `json:"id"`
	ProjectID uuid.UUID              `json:"project_id"`
	Slug      string                 `json:"slug"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// ToProjectResponse converts a domain Project to a Response DTO
func ToProjectResponse(p *Project) *project.Response {
	return &project.Response{
		ID:          p.ID,
		TeamID:      p.TeamID,
		OwnerID:     p.OwnerID,
		BucketID:    p.BucketID,
		Name:        p.Name,
		Slug:        p.Slug,
		MultiTenant: p.MultiTenant,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProjectResponses converts a slice of Projects to Response DTOs
func ToProjectResponses(projects []*Project) []*project.Response {
	result := make([]*project.Response, len(projects))
	for i, p := range projects {
		result[i] = ToProjectResponse(p)
	}
	return result
}

// ToTenantResponse converts a domain Tenant to a TenantResponse DTO
func ToTenantResponse(t *Tenant) *project.TenantResponse {
	return &project.TenantResponse{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		Slug:      t.Slug,
		Metadata:  t.Metadata,
		CreatedAt: t.CreatedAt,
	}
}

// ToTenantResponses converts a slice of Tenants to TenantResponse DTOs
func ToTenantResponses(tenants []*Tenant) []*project.TenantResponse {
	result := make([]*project.TenantResponse, len(tenants))
	for i, t := range tenants {
		result[i] = ToTenantResponse(t)
	}
	return result
}
