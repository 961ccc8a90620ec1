package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"shelfcloud/internal/api/dto/v1/apikey"
	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"
	"shelfcloud/internal/repository"

	"github.com/google/uuid"
)

const apiKeySecretPrefix = "sk_"

// APIKeyService mints, lists, revokes and authenticates project API keys.
// Only the SHA-256 hash of a secret is stored; the raw secret appears in
// exactly one response, at mint time.
type APIKeyService struct {
	keyRepo repository.APIKeyRepository
	access  *AccessResolver
	audit   *AuditService
}

func NewAPIKeyService(keyRepo repository.APIKeyRepository, access *AccessResolver, audit *AuditService) *APIKeyService {
	return &APIKeyService{
		keyRepo: keyRepo,
		access:  access,
		audit:   audit,
	}
}

func (s *APIKeyService) Create(ctx context.Context, userID, projectID uuid.UUID, req *apikey.CreateRequest) (*apikey.Response, error) {
	if _, err := s.access.RequireProjectRole(ctx, userID, projectID, authz.RoleMember); err != nil {
		return nil, err
	}
	perms, err := authz.NormalizePermissions(req.Permissions)
	if err != nil {
		return nil, ErrValidation
	}

	secret, key, err := mintKey(projectID, req.Label, perms)
	if err != nil {
		return nil, err
	}
	if err := s.keyRepo.Create(ctx, key); err != nil {
		return nil, err
	}
	s.audit.LogKeyEvent(ctx, AuditEventKeyCreated, userID, key.ID, map[string]interface{}{"project_id": projectID, "prefix": key.Prefix})
	return mapper.ToAPIKeyResponse(key, secret), nil
}

func (s *APIKeyService) List(ctx context.Context, userID, projectID uuid.UUID) ([]*apikey.ListResponse, error) {
	if _, err := s.access.VisibleProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	keys, err := s.keyRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return mapper.ToAPIKeyListResponses(keys), nil
}

// Revoke deactivates a key immediately. Revocation is idempotent in effect
// but a second call reports not found since the key is no longer active.
func (s *APIKeyService) Revoke(ctx context.Context, userID, projectID, keyID uuid.UUID) error {
	if _, err := s.access.RequireProjectRole(ctx, userID, projectID, authz.RoleMember); err != nil {
		return err
	}
	key, err := s.keyRepo.GetByID(ctx, keyID)
	if err != nil {
		return err
	}
	if key.ProjectID != projectID {
		return ErrNotFound
	}
	if err := s.keyRepo.Revoke(ctx, keyID); err != nil {
		return err
	}
	s.audit.LogKeyEvent(ctx, AuditEventKeyRevoked, userID, keyID, nil)
	return nil
}

// Regenerate revokes the key and mints a replacement with the same label
// and permissions in one transaction.
func (s *APIKeyService) Regenerate(ctx context.Context, userID, projectID, keyID uuid.UUID) (*apikey.Response, error) {
	if _, err := s.access.RequireProjectRole(ctx, userID, projectID, authz.RoleMember); err != nil {
		return nil, err
	}
	old, err := s.keyRepo.GetByID(ctx, keyID)
	if err != nil {
		return nil, err
	}
	if old.ProjectID != projectID {
		return nil, ErrNotFound
	}
	if old.RevokedAt != nil {
		return nil, ErrConflict
	}

	secret, key, err := mintKey(projectID, old.Label, old.Permissions)
	if err != nil {
		return nil, err
	}
	if err := s.keyRepo.Regenerate(ctx, keyID, key); err != nil {
		return nil, err
	}
	s.audit.LogKeyEvent(ctx, AuditEventKeyRegenerated, userID, key.ID, map[string]interface{}{"replaces": keyID})
	return mapper.ToAPIKeyResponse(key, secret), nil
}

// Authenticate resolves a presented secret to its active key record and
// stamps last use. Unknown, malformed and revoked secrets are
// indistinguishable to the caller.
func (s *APIKeyService) Authenticate(ctx context.Context, secret string) (*mapper.APIKey, error) {
	if !strings.HasPrefix(secret, apiKeySecretPrefix) {
		return nil, ErrUnauthorized
	}
	key, err := s.keyRepo.GetActiveByHash(ctx, hashSecret(secret))
	if err != nil {
		return nil, ErrUnauthorized
	}
	if err := s.keyRepo.UpdateLastUsed(ctx, key.ID); err != nil {
		return nil, err
	}
	return key, nil
}

// mintKey generates a fresh secret and the key record storing its hash.
func mintKey(projectID uuid.UUID, label string, permissions []string) (string, *mapper.APIKey, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", nil, fmt.Errorf("failed to generate key material: %w", err)
	}
	secret := apiKeySecretPrefix + base64.RawURLEncoding.EncodeToString(raw)

	key := &mapper.APIKey{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Label:       label,
		Prefix:      secret[:12],
		KeyHash:     hashSecret(secret),
		Permissions: permissions,
	}
	return secret, key, nil
}

func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
