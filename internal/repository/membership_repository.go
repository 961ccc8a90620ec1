package repository

import (
	"context"
	"database/sql"
	"errors"

	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"

	"github.com/google/uuid"
)

type MembershipRepositoryImpl struct {
	db *sql.DB
}

func NewMembershipRepository(db *sql.DB) *MembershipRepositoryImpl {
	return &MembershipRepositoryImpl{db: db}
}

func (r *MembershipRepositoryImpl) TeamRole(ctx context.Context, userID, teamID uuid.UUID) (authz.Role, error) {
	return r.scanRole(r.db.QueryRowContext(ctx,
		`select role from team_members where user_id = $1 and team_id = $2`,
		userID, teamID))
}

func (r *MembershipRepositoryImpl) OrgRole(ctx context.Context, userID, orgID uuid.UUID) (authz.Role, error) {
	return r.scanRole(r.db.QueryRowContext(ctx,
		`select role from organization_members where user_id = $1 and organization_id = $2`,
		userID, orgID))
}

func (r *MembershipRepositoryImpl) OrgRoleForTeam(ctx context.Context, userID, teamID uuid.UUID) (authz.Role, error) {
	return r.scanRole(r.db.QueryRowContext(ctx, `
		select m.role
		from organization_members m
		join teams t on t.organization_id = m.organization_id
		where m.user_id = $1 and t.id = $2`,
		userID, teamID))
}

// scanRole maps a missing membership to RoleNone, not an error.
func (r *MembershipRepositoryImpl) scanRole(row *sql.Row) (authz.Role, error) {
	var name string
	err := row.Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return authz.RoleNone, nil
	}
	if err != nil {
		return authz.RoleNone, err
	}
	role, err := authz.ParseRole(name)
	if err != nil {
		return authz.RoleNone, err
	}
	return role, nil
}

func (r *MembershipRepositoryImpl) ListTeamIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx,
		`select team_id from team_members where user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *MembershipRepositoryImpl) ListTeamMembers(ctx context.Context, teamID uuid.UUID) ([]*mapper.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx, `
		select m.team_id, m.user_id, u.email, u.name, m.role, m.created_at
		from team_members m
		join users u on u.id = m.user_id
		where m.team_id = $1
		order by m.created_at`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*mapper.TeamMember
	for rows.Next() {
		var (
			m    mapper.TeamMember
			name string
		)
		if err := rows.Scan(&m.TeamID, &m.UserID, &m.Email, &m.Name, &name, &m.CreatedAt); err != nil {
			return nil, err
		}
		if m.Role, err = authz.ParseRole(name); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

func (r *MembershipRepositoryImpl) ListOrgMembers(ctx context.Context, orgID uuid.UUID) ([]*mapper.OrganizationMember, error) {
	rows, err := r.db.QueryContext(ctx, `
		select m.organization_id, m.user_id, u.email, u.name, m.role, m.created_at
		from organization_members m
		join users u on u.id = m.user_id
		where m.organization_id = $1
		order by m.created_at`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*mapper.OrganizationMember
	for rows.Next() {
		var (
			m    mapper.OrganizationMember
			name string
		)
		if err := rows.Scan(&m.OrganizationID, &m.UserID, &m.Email, &m.Name, &name, &m.CreatedAt); err != nil {
			return nil, err
		}
		if m.Role, err = authz.ParseRole(name); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

func (r *MembershipRepositoryImpl) AddTeamMember(ctx context.Context, teamID, userID uuid.UUID, role authz.Role) error {
	_, err := r.db.ExecContext(ctx, `
		insert into team_members (team_id, user_id, role) values ($1, $2, $3)`,
		teamID, userID, role.String())
	if isUniqueViolation(err, "") {
		return ErrMembershipExists
	}
	return err
}

func (r *MembershipRepositoryImpl) AddOrgMember(ctx context.Context, orgID, userID uuid.UUID, role authz.Role) error {
	_, err := r.db.ExecContext(ctx, `
		insert into organization_members (organization_id, user_id, role) values ($1, $2, $3)`,
		orgID, userID, role.String())
	if isUniqueViolation(err, "") {
		return ErrMembershipExists
	}
	return err
}

func (r *MembershipRepositoryImpl) UpdateTeamMemberRole(ctx context.Context, teamID, userID uuid.UUID, role authz.Role) error {
	res, err := r.db.ExecContext(ctx, `
		update team_members set role = $3 where team_id = $1 and user_id = $2`,
		teamID, userID, role.String())
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *MembershipRepositoryImpl) UpdateOrgMemberRole(ctx context.Context, orgID, userID uuid.UUID, role authz.Role) error {
	res, err := r.db.ExecContext(ctx, `
		update organization_members set role = $3 where organization_id = $1 and user_id = $2`,
		orgID, userID, role.String())
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *MembershipRepositoryImpl) RemoveTeamMember(ctx context.Context, teamID, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`delete from team_members where team_id = $1 and user_id = $2`,
		teamID, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *MembershipRepositoryImpl) RemoveOrgMember(ctx context.Context, orgID, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`delete from organization_members where organization_id = $1 and user_id = $2`,
		orgID, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *MembershipRepositoryImpl) CountTeamOwners(ctx context.Context, teamID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`select count(*) from team_members where team_id = $1 and role = $2`,
		teamID, authz.RoleOwner.String()).Scan(&n)
	return n, err
}

func (r *MembershipRepositoryImpl) CountOrgOwners(ctx context.Context, orgID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`select count(*) from organization_members where organization_id = $1 and role = $2`,
		orgID, authz.RoleOwner.String()).Scan(&n)
	return n, err
}
