package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"shelfcloud/internal/api/mapper"

	"github.com/google/uuid"
)

type TenantRepositoryImpl struct {
	db *sql.DB
}

func NewTenantRepository(db *sql.DB) *TenantRepositoryImpl {
	return &TenantRepositoryImpl{db: db}
}

func (r *TenantRepositoryImpl) Create(ctx context.Context, tenant *mapper.Tenant) error {
	meta, err := json.Marshal(tenant.Metadata)
	if err != nil {
		return err
	}
	err = r.db.QueryRowContext(ctx, `
		insert into tenants (id, project_id, slug, metadata)
		values ($1, $2, $3, $4)
		returning created_at`,
		tenant.ID, tenant.ProjectID, tenant.Slug, meta,
	).Scan(&tenant.CreatedAt)
	if isUniqueViolation(err, "") {
		return ErrDuplicateSlug
	}
	return err
}

func (r *TenantRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*mapper.Tenant, error) {
	row := r.db.QueryRowContext(ctx, `
		select id, project_id, slug, metadata, created_at
		from tenants where id = $1`, id)
	return scanTenant(row.Scan)
}

func (r *TenantRepositoryImpl) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*mapper.Tenant, error) {
	rows, err := r.db.QueryContext(ctx, `
		select id, project_id, slug, metadata, created_at
		from tenants where project_id = $1
		order by created_at`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*mapper.Tenant
	for rows.Next() {
		tenant, err := scanTenant(rows.Scan)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}

func (r *TenantRepositoryImpl) UpdateMetadata(ctx context.Context, id uuid.UUID, metadata map[string]interface{}) error {
	meta, err := json.Marshal(metadata)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`update tenants set metadata = $2 where id = $1`, id, meta)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *TenantRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `delete from tenants where id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func scanTenant(scan func(...interface{}) error) (*mapper.Tenant, error) {
	var (
		t    mapper.Tenant
		meta []byte
	)
	err := scan(&t.ID, &t.ProjectID, &t.Slug, &meta, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(meta) > 0 {
		_ = json.Unmarshal(meta, &t.Metadata)
	}
	return &t, nil
}
