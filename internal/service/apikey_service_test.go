package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"shelfcloud/internal/api/dto/v1/apikey"
	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memberProjectAccess(projectID, teamID uuid.UUID) *AccessResolver {
	members := &mockMembershipRepo{
		teamRoleFunc: func(ctx context.Context, uID, tID uuid.UUID) (authz.Role, error) {
			return authz.RoleMember, nil
		},
	}
	projects := &mockProjectRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Project, error) {
			if id != projectID {
				return nil, ErrNotFound
			}
			return &mapper.Project{ID: projectID, TeamID: &teamID}, nil
		},
	}
	return NewAccessResolver(members, &mockBucketRepo{}, &mockTeamRepo{}, projects)
}

func TestAPIKeyCreate_SecretShownOnce(t *testing.T) {
	projectID := uuid.New()
	var stored *mapper.APIKey
	keys := &mockAPIKeyRepo{
		createFunc: func(ctx context.Context, key *mapper.APIKey) error {
			stored = key
			return nil
		},
	}
	svc := NewAPIKeyService(keys, memberProjectAccess(projectID, uuid.New()), NewAuditService())

	resp, err := svc.Create(context.Background(), uuid.New(), projectID, &apikey.CreateRequest{
		Label:       "ci",
		Permissions: []string{"read", "write"},
	})
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.True(t, strings.HasPrefix(resp.ApiKey, "sk_"))
	assert.Equal(t, resp.ApiKey[:12], stored.Prefix)

	// Only the hash is persisted, never the secret itself.
	sum := sha256.Sum256([]byte(resp.ApiKey))
	assert.Equal(t, hex.EncodeToString(sum[:]), stored.KeyHash)
	assert.NotContains(t, stored.KeyHash, resp.ApiKey)
	assert.Equal(t, stored.Prefix+"***", resp.MaskedKey)
}

func TestAPIKeyCreate_RejectsUnknownPermission(t *testing.T) {
	projectID := uuid.New()
	svc := NewAPIKeyService(&mockAPIKeyRepo{}, memberProjectAccess(projectID, uuid.New()), NewAuditService())

	_, err := svc.Create(context.Background(), uuid.New(), projectID, &apikey.CreateRequest{
		Permissions: []string{"read", "launch"},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAPIKeyAuthenticate(t *testing.T) {
	key := &mapper.APIKey{ID: uuid.New(), ProjectID: uuid.New()}
	var knownHash string
	touched := false
	keys := &mockAPIKeyRepo{
		getActiveByHashFunc: func(ctx context.Context, hash string) (*mapper.APIKey, error) {
			if hash == knownHash {
				return key, nil
			}
			return nil, ErrNotFound
		},
		updateLastUsedFunc: func(ctx context.Context, id uuid.UUID) error {
			touched = true
			return nil
		},
	}
	svc := NewAPIKeyService(keys, NewAccessResolver(&mockMembershipRepo{}, &mockBucketRepo{}, &mockTeamRepo{}, &mockProjectRepo{}), NewAuditService())

	secret := "sk_known-secret-value"
	sum := sha256.Sum256([]byte(secret))
	knownHash = hex.EncodeToString(sum[:])

	got, err := svc.Authenticate(context.Background(), secret)
	require.NoError(t, err)
	assert.Equal(t, key.ID, got.ID)
	assert.True(t, touched)

	// Unknown and malformed secrets fail identically.
	_, err = svc.Authenticate(context.Background(), "sk_wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Authenticate(context.Background(), "not-a-key")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAPIKeyRevoke_WrongProjectReadsAsNotFound(t *testing.T) {
	projectID := uuid.New()
	keyID := uuid.New()
	keys := &mockAPIKeyRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.APIKey, error) {
			return &mapper.APIKey{ID: keyID, ProjectID: uuid.New()}, nil
		},
	}
	svc := NewAPIKeyService(keys, memberProjectAccess(projectID, uuid.New()), NewAuditService())

	err := svc.Revoke(context.Background(), uuid.New(), projectID, keyID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAPIKeyRegenerate(t *testing.T) {
	projectID := uuid.New()
	oldID := uuid.New()
	old := &mapper.APIKey{
		ID:          oldID,
		ProjectID:   projectID,
		Label:       "ci",
		Permissions: []string{"read"},
	}
	var replacement *mapper.APIKey
	keys := &mockAPIKeyRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.APIKey, error) {
			return old, nil
		},
		regenerateFunc: func(ctx context.Context, replacedID uuid.UUID, newKey *mapper.APIKey) error {
			assert.Equal(t, oldID, replacedID)
			replacement = newKey
			return nil
		},
	}
	svc := NewAPIKeyService(keys, memberProjectAccess(projectID, uuid.New()), NewAuditService())

	resp, err := svc.Regenerate(context.Background(), uuid.New(), projectID, oldID)
	require.NoError(t, err)
	require.NotNil(t, replacement)
	assert.Equal(t, "ci", replacement.Label)
	assert.Equal(t, []string{"read"}, replacement.Permissions)
	assert.NotEqual(t, oldID, replacement.ID)
	assert.True(t, strings.HasPrefix(resp.ApiKey, "sk_"))
}

func TestAPIKeyRegenerate_RevokedKeyConflicts(t *testing.T) {
	projectID := uuid.New()
	revokedAt := time.Now()
	keys := &mockAPIKeyRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.APIKey, error) {
			return &mapper.APIKey{ID: id, ProjectID: projectID, RevokedAt: &revokedAt}, nil
		},
	}
	svc := NewAPIKeyService(keys, memberProjectAccess(projectID, uuid.New()), NewAuditService())

	_, err := svc.Regenerate(context.Background(), uuid.New(), projectID, uuid.New())
	assert.ErrorIs(t, err, ErrConflict)
}
