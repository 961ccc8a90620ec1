package mapper

import (
	"time"

	"shelfcloud/internal/api/dto/v1/team"
	"shelfcloud/internal/authz"

	"github.com/google/uuid"
)

// Team represents the domain model for teams
type Team struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TeamMember is a team membership joined with user details
type TeamMember struct {
	TeamID    uuid.UUID  `json:"team_id"`
	UserID    uuid.UUID  `json:"user_id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      authz.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToTeamResponse converts a domain Team to a Response DTO
func ToTeamResponse(t *Team) *team.Response {
	return &team.Response{
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
		Name:           t.Name,
		Slug:           t.Slug,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// ToTeamResponses converts a slice of Teams to Response DTOs
func ToTeamResponses(teams []*Team) []*team.Response {
	result := make([]*team.Response, len(teams))
	for i, t := range teams {
		result[i] = ToTeamResponse(t)
	}
	return result
}

// ToTeamMemberResponse converts a membership to a MemberResponse DTO
func ToTeamMemberResponse(m *TeamMember) *team.MemberResponse {
	return &team.MemberResponse{
		UserID:    m.UserID,
		Email:     m.Email,
		Name:      m.Name,
		Role:      m.Role.String(),
		CreatedAt: m.CreatedAt,
	}
}

// ToTeamMemberResponses converts memberships to MemberResponse DTOs
func ToTeamMemberResponses(members []*TeamMember) []*team.MemberResponse {
	result := make([]*team.MemberResponse, len(members))
	for i, m := range members {
		result[i] = ToTeamMemberResponse(m)
	}
	return result
}
