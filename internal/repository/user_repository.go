package repository

import (
	"context"
	"database/sql"
	"errors"

	"shelfcloud/internal/api/mapper"

	"github.com/google/uuid"
)

type UserRepositoryImpl struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *mapper.User) error {
	err := r.db.QueryRowContext(ctx, `
		insert into users (id, email, name, password_hash)
		values ($1, $2, $3, $4)
		returning created_at, updated_at`,
		user.ID, user.Email, user.Name, user.PasswordHash,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if isUniqueViolation(err, "") {
		return ErrDuplicateEmail
	}
	return err
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*mapper.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		select id, email, name, password_hash, created_at, updated_at
		from users where id = $1`, id))
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*mapper.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		select id, email, name, password_hash, created_at, updated_at
		from users where email = $1`, email))
}

func (r *UserRepositoryImpl) scanOne(row *sql.Row) (*mapper.User, error) {
	var user mapper.User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
