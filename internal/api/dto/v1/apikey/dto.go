package apikey

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest represents the request body for minting a new API key
type CreateRequest struct {
	Label       string   `json:"label" binding:"max=100"`
	Permissions []string `json:"permissions" binding:"required,min=1"`
}

// Response is returned from create and regenerate only. ApiKey carries the
// raw secret exactly once; it is absent from every other response.
type Response struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Label       string    `json:"label,omitempty"`
	Permissions []string  `json:"permissions"`
	ApiKey      string    `json:"apiKey"`
	MaskedKey   string    `json:"masked_key"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListResponse represents a key in list responses, masked prefix only
type ListResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Label       string     `json:"label,omitempty"`
	Permissions []string   `json:"permissions"`
	MaskedKey   string     `json:"masked_key"`
	CreatedAt   time.Time  `json:"created_at"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
}
