package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migration is a single ordered schema step. Versions must be contiguous
// and never reordered once released.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

var migrations = []Migration{
	{
		Version: 1,
		Name:    "core schema",
		SQL: `
create table if not exists users (
	id uuid primary key,
	email text not null unique,
	name text not null,
	password_hash text not null,
	created_at timestamptz not null default now(),
	updated_at timestamptz not null default now()
);

create table if not exists organizations (
	id uuid primary key,
	name text not null,
	slug text not null unique,
	owner_id uuid not null references users(id),
	description text not null default '',
	logo_url text not null default '',
	created_at timestamptz not null default now(),
	updated_at timestamptz not null default now()
);

create table if not exists organization_members (
	organization_id uuid not null references organizations(id),
	user_id uuid not null references users(id),
	role text not null,
	created_at timestamptz not null default now(),
	primary key (organization_id, user_id)
);

create table if not exists teams (
	id uuid primary key,
	organization_id uuid not null references organizations(id),
	name text not null,
	slug text not null,
	created_at timestamptz not null default now(),
	updated_at timestamptz not null default now(),
	unique (organization_id, slug)
);

create table if not exists team_members (
	team_id uuid not null references teams(id),
	user_id uuid not null references users(id),
	role text not null,
	created_at timestamptz not null default now(),
	primary key (team_id, user_id)
);

create table if not exists invitations (
	id uuid primary key,
	email text not null,
	role text not null,
	status text not null default 'PENDING',
	organization_id uuid references organizations(id),
	team_id uuid references teams(id),
	invited_by uuid not null references users(id),
	expires_at timestamptz not null,
	created_at timestamptz not null default now(),
	updated_at timestamptz not null default now(),
	check ((organization_id is null) <> (team_id is null))
);
`,
	},
	{
		Version: 2,
		Name:    "buckets and sharing grants",
		SQL: `
create table if not exists buckets (
	id uuid primary key,
	team_id uuid not null references teams(id),
	name text not null,
	provider text not null check (provider in ('s3', 'r2')),
	bucket_name text not null,
	region text not null default '',
	endpoint text not null default '',
	access_key_enc text not null,
	secret_key_enc text not null,
	status text not null default 'pending'
		check (status in ('pending', 'testing', 'connected', 'error')),
	last_checked timestamptz,
	checked_method text not null default '',
	last_error text not null default '',
	created_at timestamptz not null default now(),
	updated_at timestamptz not null default now()
);

create table if not exists bucket_team_access (
	bucket_id uuid not null references buckets(id),
	team_id uuid not null references teams(id),
	access_level text not null
		check (access_level in ('READ_ONLY', 'READ_WRITE', 'ADMIN')),
	created_at timestamptz not null default now(),
	updated_at timestamptz not null default now(),
	primary key (bucket_id, team_id)
);

create index if not exists idx_buckets_status on buckets(status, last_checked);
`,
	},
	{
		Version: 3,
		Name:    "projects, tenants, api keys",
		SQL: `
create table if not exists projects (
	id uuid primary key,
	team_id uuid references teams(id),
	owner_id uuid not null references users(id),
	bucket_id uuid not null references buckets(id),
	name text not null,
	slug text not null,
	multi_tenant boolean not null default false,
	created_at timestamptz not null default now(),
	updated_at timestamptz not null default now()
);

create unique index if not exists idx_projects_team_slug
	on projects(team_id, slug) where team_id is not null;
create unique index if not exists idx_projects_personal_slug
	on projects(owner_id, slug) where team_id is null;

create table if not exists tenants (
	id uuid primary key,
	project_id uuid not null references projects(id),
	slug text not null,
	metadata jsonb not null default '{}',
	created_at timestamptz not null default now(),
	unique (project_id, slug)
);

create table if not exists api_keys (
	id uuid primary key,
	project_id uuid not null references projects(id),
	label text not null default '',
	prefix text not null,
	key_hash text not null unique,
	permissions text[] not null,
	created_at timestamptz not null default now(),
	last_used_at timestamptz,
	revoked_at timestamptz
);

create index if not exists idx_api_keys_project on api_keys(project_id);
`,
	},
}

// Migrate applies pending migrations in order, each in its own transaction.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		create table if not exists schema_migrations (
			version int primary key,
			name text not null,
			applied_at timestamptz not null default now()
		)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx,
		`select coalesce(max(version), 0) from schema_migrations`).Scan(&current); err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := applyMigration(ctx, db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`insert into schema_migrations (version, name) values ($1, $2)`,
		m.Version, m.Name); err != nil {
		return err
	}
	return tx.Commit()
}
