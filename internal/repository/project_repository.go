package repository

import (
	"context"
	"database/sql"
	"errors"

	"shelfcloud/internal/api/mapper"

	"github.com/google/uuid"
)

type ProjectRepositoryImpl struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepositoryImpl {
	return &ProjectRepositoryImpl{db: db}
}

const projectColumns = `id, team_id, owner_id, bucket_id, name, slug, multi_tenant, created_at, updated_at`

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *mapper.Project) error {
	err := r.db.QueryRowContext(ctx, `
		insert into projects (id, team_id, owner_id, bucket_id, name, slug, multi_tenant)
		values ($1, $2, $3, $4, $5, $6, $7)
		returning created_at, updated_at`,
		project.ID, project.TeamID, project.OwnerID, project.BucketID,
		project.Name, project.Slug, project.MultiTenant,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
	if isUniqueViolation(err, "") {
		return ErrDuplicateSlug
	}
	return err
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*mapper.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`select `+projectColumns+` from projects where id = $1`, id)
	return scanProject(row.Scan)
}

func (r *ProjectRepositoryImpl) ListVisible(ctx context.Context, teamIDs []uuid.UUID, userID uuid.UUID) ([]*mapper.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		select `+projectColumns+` from projects
		where team_id = any($1::uuid[])
		   or (team_id is null and owner_id = $2)
		order by created_at`, uuidArray(teamIDs), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*mapper.Project
	for rows.Next() {
		project, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (r *ProjectRepositoryImpl) Update(ctx context.Context, project *mapper.Project) error {
	res, err := r.db.ExecContext(ctx, `
		update projects set name = $2, updated_at = now() where id = $1`,
		project.ID, project.Name)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *ProjectRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`delete from tenants where project_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`delete from api_keys where project_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `delete from projects where id = $1`, id)
	if err != nil {
		return err
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ProjectRepositoryImpl) Transfer(ctx context.Context, id, newTeamID uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var slug string
	err = tx.QueryRowContext(ctx,
		`select slug from projects where id = $1 for update`, id).Scan(&slug)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	var collisions int
	if err := tx.QueryRowContext(ctx,
		`select count(*) from projects where team_id = $1 and slug = $2 and id <> $3`,
		newTeamID, slug, id).Scan(&collisions); err != nil {
		return err
	}
	if collisions > 0 {
		return ErrSlugExistsInNewTeam
	}

	if _, err := tx.ExecContext(ctx,
		`update projects set team_id = $2, updated_at = now() where id = $1`,
		id, newTeamID); err != nil {
		if isUniqueViolation(err, "") {
			return ErrSlugExistsInNewTeam
		}
		return err
	}

	return tx.Commit()
}

func scanProject(scan func(...interface{}) error) (*mapper.Project, error) {
	var p mapper.Project
	err := scan(&p.ID, &p.TeamID, &p.OwnerID, &p.BucketID, &p.Name, &p.Slug,
		&p.MultiTenant, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
