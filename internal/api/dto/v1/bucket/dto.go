package bucket

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest represents the request body for registering a bucket.
// Credentials are write-only; they are sealed at rest and never returned.
type CreateRequest struct {
	TeamID     uuid.UUID `json:"team_id" binding:"required"`
	Name       string    `json:"name" binding:"required,min=2,max=100"`
	Provider   string    `json:"provider" binding:"required,provider"`
	BucketName string    `json:"bucket_name" binding:"required,min=3,max=63"`
	Region     string    `json:"region" binding:"max=64"`
	Endpoint   string    `json:"endpoint" binding:"omitempty,max=255"`
	AccessKey  string    `json:"access_key" binding:"required"`
	SecretKey  string    `json:"secret_key" binding:"required"`
}

// UpdateRequest represents a partial bucket update
type UpdateRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=100"`
}

// RotateCredentialsRequest replaces the stored provider credentials
type RotateCredentialsRequest struct {
	AccessKey string `json:"access_key" binding:"required"`
	SecretKey string `json:"secret_key" binding:"required"`
}

// GrantRequest shares the bucket with another team at a bounded level
type GrantRequest struct {
	TeamID      uuid.UUID `json:"team_id" binding:"required"`
	AccessLevel string    `json:"access_level" binding:"required,accesslevel"`
}

// Response represents a bucket in API responses
type Response struct {
	ID            uuid.UUID  `json:"id"`
	TeamID        uuid.UUID  `json:"team_id"`
	Name          string     `json:"name"`
	Provider      string     `json:"provider"`
	BucketName    string     `json:"bucket_name"`
	Region        string     `json:"region,omitempty"`
	Endpoint      string     `json:"endpoint,omitempty"`
	Status        string     `json:"status"`
	LastChecked   *time.Time `json:"last_checked,omitempty"`
	CheckedMethod string     `json:"checked_method,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// GrantResponse represents a sharing grant in API responses
type GrantResponse struct {
	BucketID    uuid.UUID `json:"bucket_id"`
	TeamID      uuid.UUID `json:"team_id"`
	AccessLevel string    `json:"access_level"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AvailableTeamResponse is a sharing candidate: an organization team that is
// neither the owner nor already granted access
type AvailableTeamResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}
