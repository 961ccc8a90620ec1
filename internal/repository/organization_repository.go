package repository

import (
	"context"
	"database/sql"
	"errors"

	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"

	"github.com/google/uuid"
)

type OrganizationRepositoryImpl struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) *OrganizationRepositoryImpl {
	return &OrganizationRepositoryImpl{db: db}
}

func (r *OrganizationRepositoryImpl) Create(ctx context.Context, org *mapper.Organization) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowContext(ctx, `
		insert into organizations (id, name, slug, owner_id, description, logo_url)
		values ($1, $2, $3, $4, $5, $6)
		returning created_at, updated_at`,
		org.ID, org.Name, org.Slug, org.OwnerID, org.Description, org.LogoURL,
	).Scan(&org.CreatedAt, &org.UpdatedAt)
	if isUniqueViolation(err, "") {
		return ErrDuplicateSlug
	}
	if err != nil {
		return err
	}

	// The creator is the organization's sole OWNER at creation time.
	if _, err := tx.ExecContext(ctx, `
		insert into organization_members (organization_id, user_id, role)
		values ($1, $2, $3)`,
		org.ID, org.OwnerID, authz.RoleOwner.String(),
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *OrganizationRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*mapper.Organization, error) {
	var org mapper.Organization
	err := r.db.QueryRowContext(ctx, `
		select id, name, slug, owner_id, description, logo_url, created_at, updated_at
		from organizations where id = $1`, id,
	).Scan(&org.ID, &org.Name, &org.Slug, &org.OwnerID, &org.Description, &org.LogoURL, &org.CreatedAt, &org.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*mapper.Organization, error) {
	rows, err := r.db.QueryContext(ctx, `
		select o.id, o.name, o.slug, o.owner_id, o.description, o.logo_url, o.created_at, o.updated_at
		from organizations o
		join organization_members m on m.organization_id = o.id
		where m.user_id = $1
		order by o.created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []*mapper.Organization
	for rows.Next() {
		var org mapper.Organization
		if err := rows.Scan(&org.ID, &org.Name, &org.Slug, &org.OwnerID, &org.Description, &org.LogoURL, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, &org)
	}
	return orgs, rows.Err()
}

func (r *OrganizationRepositoryImpl) Update(ctx context.Context, org *mapper.Organization) error {
	res, err := r.db.ExecContext(ctx, `
		update organizations
		set name = $2, description = $3, logo_url = $4, updated_at = now()
		where id = $1`,
		org.ID, org.Name, org.Description, org.LogoURL)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *OrganizationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var teams int
	if err := tx.QueryRowContext(ctx,
		`select count(*) from teams where organization_id = $1`, id,
	).Scan(&teams); err != nil {
		return err
	}
	if teams > 0 {
		return ErrOrganizationNotEmpty
	}

	if _, err := tx.ExecContext(ctx,
		`delete from invitations where organization_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`delete from organization_members where organization_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `delete from organizations where id = $1`, id)
	if err != nil {
		return err
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

// requireAffected maps a zero-row mutation to ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
