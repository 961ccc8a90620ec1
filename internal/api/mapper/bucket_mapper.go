package mapper

import (
	"time"

	"shelfcloud/internal/api/dto/v1/bucket"
	"shelfcloud/internal/authz"

	"github.com/google/uuid"
)

// BucketStatus is the connection state of a registered bucket
type BucketStatus string

const (
	BucketPending   BucketStatus = "pending"
	BucketTesting   BucketStatus = "testing"
	BucketConnected BucketStatus = "connected"
	BucketError     BucketStatus = "error"
)

// Supported storage providers
const (
	ProviderS3 = "s3"
	ProviderR2 = "r2"
)

// Bucket represents the domain model for registered buckets. TeamID is the
// owning team and is immutable after creation. Credentials are stored
// sealed; the plaintext never leaves the service boundary.
type Bucket struct {
	ID            uuid.UUID    `json:"id"`
	TeamID        uuid.UUID    `json:"team_id"`
	Name          string       `json:"name"`
	Provider      string       `json:"provider"`
	BucketName    string       `json:"bucket_name"`
	Region        string       `json:"region"`
	Endpoint      string       `json:"endpoint"`
	AccessKeyEnc  string       `json:"-"`
	SecretKeyEnc  string       `json:"-"`
	Status        BucketStatus `json:"status"`
	LastChecked   *time.Time   `json:"last_checked,omitempty"`
	CheckedMethod string       `json:"checked_method,omitempty"`
	LastError     string       `json:"last_error,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// BucketGrant represents cross-team access to a bucket
type BucketGrant struct {
	BucketID  uuid.UUID         `json:"bucket_id"`
	TeamID    uuid.UUID         `json:"team_id"`
	Level     authz.AccessLevel `json:"access_level"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ToBucketResponse converts a domain Bucket to a Response DTO
func ToBucketResponse(b *Bucket) *bucket.Response {
	return &bucket.Response{
		ID:            b.ID,
		TeamID:        b.TeamID,
		Name:          b.Name,
		Provider:      b.Provider,
		BucketName:    b.BucketName,
		Region:        b.Region,
		Endpoint:      b.Endpoint,
		Status:        string(b.Status),
		LastChecked:   b.LastChecked,
		CheckedMethod: b.CheckedMethod,
		LastError:     b.LastError,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// ToBucketResponses converts a slice of Buckets to Response DTOs
func ToBucketResponses(buckets []*Bucket) []*bucket.Response {
	result := make([]*bucket.Response, len(buckets))
	for i, b := range buckets {
		result[i] = ToBucketResponse(b)
	}
	return result
}

// ToGrantResponse converts a domain BucketGrant to a GrantResponse DTO
func ToGrantResponse(g *BucketGrant) *bucket.GrantResponse {
	return &bucket.GrantResponse{
		BucketID:    g.BucketID,
		TeamID:      g.TeamID,
		AccessLevel: g.Level.String(),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

// ToAvailableTeamResponses converts sharing candidates to DTOs
func ToAvailableTeamResponses(teams []*Team) []*bucket.AvailableTeamResponse {
	result := make([]*bucket.AvailableTeamResponse, len(teams))
	for i, t := range teams {
		result[i] = &bucket.AvailableTeamResponse{
			ID:   t.ID,
			Name: t.Name,
			Slug: t.Slug,
		}
	}
	return result
}
