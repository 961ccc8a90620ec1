package repository

import (
	"context"
	"database/sql"
	"errors"

	"shelfcloud/internal/api/mapper"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type APIKeyRepositoryImpl struct {
	db *sql.DB
}

func NewAPIKeyRepository(db *sql.DB) *APIKeyRepositoryImpl {
	return &APIKeyRepositoryImpl{db: db}
}

const apiKeyColumns = `id, project_id, label, prefix, key_hash, permissions, created_at, last_used_at, revoked_at`

func (r *APIKeyRepositoryImpl) Create(ctx context.Context, key *mapper.APIKey) error {
	return r.db.QueryRowContext(ctx, `
		insert into api_keys (id, project_id, label, prefix, key_hash, permissions)
		values ($1, $2, $3, $4, $5, $6)
		returning created_at`,
		key.ID, key.ProjectID, key.Label, key.Prefix, key.KeyHash, pq.Array(key.Permissions),
	).Scan(&key.CreatedAt)
}

func (r *APIKeyRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*mapper.APIKey, error) {
	row := r.db.QueryRowContext(ctx,
		`select `+apiKeyColumns+` from api_keys where id = $1`, id)
	return scanAPIKey(row.Scan)
}

// GetActiveByHash filters on revoked_at so a revoked key fails
// authentication on the very next attempt.
func (r *APIKeyRepositoryImpl) GetActiveByHash(ctx context.Context, hash string) (*mapper.APIKey, error) {
	row := r.db.QueryRowContext(ctx,
		`select `+apiKeyColumns+` from api_keys where key_hash = $1 and revoked_at is null`, hash)
	return scanAPIKey(row.Scan)
}

func (r *APIKeyRepositoryImpl) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*mapper.APIKey, error) {
	rows, err := r.db.QueryContext(ctx,
		`select `+apiKeyColumns+` from api_keys where project_id = $1 order by created_at desc`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []*mapper.APIKey
	for rows.Next() {
		key, err := scanAPIKey(rows.Scan)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (r *APIKeyRepositoryImpl) Revoke(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`update api_keys set revoked_at = now() where id = $1 and revoked_at is null`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Regenerate is revoke+create, not a mutation of the old record, so the old
// key's audit history survives.
func (r *APIKeyRepositoryImpl) Regenerate(ctx context.Context, oldID uuid.UUID, newKey *mapper.APIKey) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`update api_keys set revoked_at = now() where id = $1 and revoked_at is null`, oldID)
	if err != nil {
		return err
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	if err := tx.QueryRowContext(ctx, `
		insert into api_keys (id, project_id, label, prefix, key_hash, permissions)
		values ($1, $2, $3, $4, $5, $6)
		returning created_at`,
		newKey.ID, newKey.ProjectID, newKey.Label, newKey.Prefix, newKey.KeyHash,
		pq.Array(newKey.Permissions),
	).Scan(&newKey.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *APIKeyRepositoryImpl) UpdateLastUsed(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`update api_keys set last_used_at = now() where id = $1`, id)
	return err
}

func scanAPIKey(scan func(...interface{}) error) (*mapper.APIKey, error) {
	var k mapper.APIKey
	err := scan(&k.ID, &k.ProjectID, &k.Label, &k.Prefix, &k.KeyHash,
		pq.Array(&k.Permissions), &k.CreatedAt, &k.LastUsedAt, &k.RevokedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}
