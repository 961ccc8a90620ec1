package mapper

import (
	"time"

	"shelfcloud/internal/api/dto/v1/apikey"

	"github.com/google/uuid"
)

// APIKey represents the domain model for project API keys. Only the SHA-256
// hash of the secret is stored; Prefix is the non-secret display prefix.
type APIKey struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Label       string     `json:"label"`
	Prefix      string     `json:"prefix"`
	KeyHash     string     `json:"-"`
	Permissions []string   `json:"permissions"`
	CreatedAt   time.Time  `json:"created_at"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
}

// Masked returns the only form of the key ever shown after creation
func (k *APIKey) Masked() string {
	return k.Prefix + "***"
}

// ToAPIKeyResponse builds the one-time creation/regeneration response
// carrying the raw secret
func ToAPIKeyResponse(k *APIKey, rawSecret string) *apikey.Response {
	return &apikey.Response{
		ID:          k.ID,
		ProjectID:   k.ProjectID,
		Label:       k.Label,
		Permissions: k.Permissions,
		ApiKey:      rawSecret,
		MaskedKey:   k.Masked(),
		CreatedAt:   k.CreatedAt,
	}
}

// ToAPIKeyListResponse converts a domain APIKey to a ListResponse DTO
func ToAPIKeyListResponse(k *APIKey) *apikey.ListResponse {
	return &apikey.ListResponse{
		ID:          k.ID,
		ProjectID:   k.ProjectID,
		Label:       k.Label,
		Permissions: k.Permissions,
		MaskedKey:   k.Masked(),
		CreatedAt:   k.CreatedAt,
		LastUsedAt:  k.LastUsedAt,
		RevokedAt:   k.RevokedAt,
	}
}

// ToAPIKeyListResponses converts a slice of APIKeys to ListResponse DTOs
func ToAPIKeyListResponses(keys []*APIKey) []*apikey.ListResponse {
	result := make([]*apikey.ListResponse, len(keys))
	for i, k := range keys {
		result[i] = ToAPIKeyListResponse(k)
	}
	return result
}
