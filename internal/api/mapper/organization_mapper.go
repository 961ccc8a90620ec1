package mapper

import (
	"time"

	"shelfcloud/internal/api/dto/v1/organization"
	"shelfcloud/internal/authz"

	"github.com/google/uuid"
)

// Organization represents the domain model for organizations
type Organization struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Description string    `json:"description"`
	LogoURL     string    `json:"logo_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrganizationMember is an organization membership joined with user details
type OrganizationMember struct {
	OrganizationID uuid.UUID  `json:"organization_id"`
	UserID         uuid.UUID  `json:"user_id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Role           authz.Role `json:"role"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToOrganizationResponse converts a domain Organization to a Response DTO
func ToOrganizationResponse(o *Organization) *organization.Response {
	return &organization.Response{
		ID:          o.ID,
		Name:        o.Name,
		Slug:        o.Slug,
		OwnerID:     o.OwnerID,
		Description: o.Description,
		LogoURL:     o.LogoURL,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// ToOrganizationResponses converts a slice of Organizations to Response DTOs
func ToOrganizationResponses(orgs []*Organization) []*organization.Response {
	result := make([]*organization.Response, len(orgs))
	for i, o := range orgs {
		result[i] = ToOrganizationResponse(o)
	}
	return result
}

// ToOrganizationMemberResponse converts a membership to a MemberResponse DTO
func ToOrganizationMemberResponse(m *OrganizationMember) *organization.MemberResponse {
	return &organization.MemberResponse{
		UserID:    m.UserID,
		Email:     m.Email,
		Name:      m.Name,
		Role:      m.Role.String(),
		CreatedAt: m.CreatedAt,
	}
}

// ToOrganizationMemberResponses converts memberships to MemberResponse DTOs
func ToOrganizationMemberResponses(members []*OrganizationMember) []*organization.MemberResponse {
	result := make([]*organization.MemberResponse, len(members))
	for i, m := range members {
		result[i] = ToOrganizationMemberResponse(m)
	}
	return result
}
