package repository

import (
	"context"
	"database/sql"
	"errors"

	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"

	"github.com/google/uuid"
)

type TeamRepositoryImpl struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) *TeamRepositoryImpl {
	return &TeamRepositoryImpl{db: db}
}

func (r *TeamRepositoryImpl) Create(ctx context.Context, team *mapper.Team, creatorID uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowContext(ctx, `
		insert into teams (id, organization_id, name, slug)
		values ($1, $2, $3, $4)
		returning created_at, updated_at`,
		team.ID, team.OrganizationID, team.Name, team.Slug,
	).Scan(&team.CreatedAt, &team.UpdatedAt)
	if isUniqueViolation(err, "") {
		return ErrDuplicateSlug
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		insert into team_members (team_id, user_id, role)
		values ($1, $2, $3)`,
		team.ID, creatorID, authz.RoleOwner.String(),
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *TeamRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*mapper.Team, error) {
	var team mapper.Team
	err := r.db.QueryRowContext(ctx, `
		select id, organization_id, name, slug, created_at, updated_at
		from teams where id = $1`, id,
	).Scan(&team.ID, &team.OrganizationID, &team.Name, &team.Slug, &team.CreatedAt, &team.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepositoryImpl) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*mapper.Team, error) {
	rows, err := r.db.QueryContext(ctx, `
		select id, organization_id, name, slug, created_at, updated_at
		from teams where organization_id = $1
		order by created_at`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTeams(rows)
}

func (r *TeamRepositoryImpl) Update(ctx context.Context, team *mapper.Team) error {
	res, err := r.db.ExecContext(ctx, `
		update teams set name = $2, updated_at = now() where id = $1`,
		team.ID, team.Name)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *TeamRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var projects, buckets int
	if err := tx.QueryRowContext(ctx,
		`select
			(select count(*) from projects where team_id = $1),
			(select count(*) from buckets where team_id = $1)`, id,
	).Scan(&projects, &buckets); err != nil {
		return err
	}
	if projects > 0 || buckets > 0 {
		return ErrTeamNotEmpty
	}

	if _, err := tx.ExecContext(ctx,
		`delete from bucket_team_access where team_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`delete from invitations where team_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`delete from team_members where team_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `delete from teams where id = $1`, id)
	if err != nil {
		return err
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

func scanTeams(rows *sql.Rows) ([]*mapper.Team, error) {
	var teams []*mapper.Team
	for rows.Next() {
		var team mapper.Team
		if err := rows.Scan(&team.ID, &team.OrganizationID, &team.Name, &team.Slug, &team.CreatedAt, &team.UpdatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, &team)
	}
	return teams, rows.Err()
}
