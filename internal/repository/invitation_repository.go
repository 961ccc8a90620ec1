package repository

import (
	"context"
	"database/sql"
	"errors"

	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"

	"github.com/google/uuid"
)

type InvitationRepositoryImpl struct {
	db *sql.DB
}

func NewInvitationRepository(db *sql.DB) *InvitationRepositoryImpl {
	return &InvitationRepositoryImpl{db: db}
}

const invitationColumns = `id, email, role, status, organization_id, team_id, invited_by, expires_at, created_at, updated_at`

func (r *InvitationRepositoryImpl) Create(ctx context.Context, inv *mapper.Invitation) error {
	return r.db.QueryRowContext(ctx, `
		insert into invitations (id, email, role, status, organization_id, team_id, invited_by, expires_at)
		values ($1, $2, $3, $4, $5, $6, $7, $8)
		returning created_at, updated_at`,
		inv.ID, inv.Email, inv.Role.String(), string(inv.Status),
		inv.OrganizationID, inv.TeamID, inv.InvitedBy, inv.ExpiresAt,
	).Scan(&inv.CreatedAt, &inv.UpdatedAt)
}

func (r *InvitationRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*mapper.Invitation, error) {
	row := r.db.QueryRowContext(ctx,
		`select `+invitationColumns+` from invitations where id = $1`, id)
	return scanInvitation(row.Scan)
}

func (r *InvitationRepositoryImpl) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*mapper.Invitation, error) {
	rows, err := r.db.QueryContext(ctx,
		`select `+invitationColumns+` from invitations where organization_id = $1 order by created_at desc`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInvitations(rows)
}

func (r *InvitationRepositoryImpl) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*mapper.Invitation, error) {
	rows, err := r.db.QueryContext(ctx,
		`select `+invitationColumns+` from invitations where team_id = $1 order by created_at desc`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInvitations(rows)
}

// Accept transitions the invitation to ACCEPTED and creates the membership
// in a single transaction so an accepted-but-memberless state cannot occur.
func (r *InvitationRepositoryImpl) Accept(ctx context.Context, inv *mapper.Invitation, userID uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		update invitations set status = $2, updated_at = now()
		where id = $1 and status = $3`,
		inv.ID, string(mapper.InvitationAccepted), string(mapper.InvitationPending))
	if err != nil {
		return err
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	switch {
	case inv.TeamID != nil:
		_, err = tx.ExecContext(ctx, `
			insert into team_members (team_id, user_id, role) values ($1, $2, $3)`,
			*inv.TeamID, userID, inv.Role.String())
	case inv.OrganizationID != nil:
		_, err = tx.ExecContext(ctx, `
			insert into organization_members (organization_id, user_id, role) values ($1, $2, $3)`,
			*inv.OrganizationID, userID, inv.Role.String())
	default:
		return errors.New("invitation has no target")
	}
	if isUniqueViolation(err, "") {
		return ErrMembershipExists
	}
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *InvitationRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, from, to mapper.InvitationStatus) error {
	res, err := r.db.ExecContext(ctx, `
		update invitations set status = $3, updated_at = now()
		where id = $1 and status = $2`,
		id, string(from), string(to))
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *InvitationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `delete from invitations where id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func scanInvitation(scan func(...interface{}) error) (*mapper.Invitation, error) {
	var (
		inv    mapper.Invitation
		role   string
		status string
	)
	err := scan(&inv.ID, &inv.Email, &role, &status, &inv.OrganizationID, &inv.TeamID,
		&inv.InvitedBy, &inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if inv.Role, err = authz.ParseRole(role); err != nil {
		return nil, err
	}
	inv.Status = mapper.InvitationStatus(status)
	return &inv, nil
}

func scanInvitations(rows *sql.Rows) ([]*mapper.Invitation, error) {
	var invs []*mapper.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows.Scan)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}
