package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type BucketRepositoryImpl struct {
	db *sql.DB
}

func NewBucketRepository(db *sql.DB) *BucketRepositoryImpl {
	return &BucketRepositoryImpl{db: db}
}

const bucketColumns = `id, team_id, name, provider, bucket_name, region, endpoint,
	access_key_enc, secret_key_enc, status, last_checked, checked_method, last_error,
	created_at, updated_at`

func (r *BucketRepositoryImpl) Create(ctx context.Context, bucket *mapper.Bucket) error {
	return r.db.QueryRowContext(ctx, `
		insert into buckets (id, team_id, name, provider, bucket_name, region, endpoint,
			access_key_enc, secret_key_enc, status)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		returning created_at, updated_at`,
		bucket.ID, bucket.TeamID, bucket.Name, bucket.Provider, bucket.BucketName,
		bucket.Region, bucket.Endpoint, bucket.AccessKeyEnc, bucket.SecretKeyEnc,
		string(bucket.Status),
	).Scan(&bucket.CreatedAt, &bucket.UpdatedAt)
}

func (r *BucketRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*mapper.Bucket, error) {
	row := r.db.QueryRowContext(ctx,
		`select `+bucketColumns+` from buckets where id = $1`, id)
	return scanBucket(row.Scan)
}

func (r *BucketRepositoryImpl) ListVisible(ctx context.Context, teamIDs []uuid.UUID) ([]*mapper.Bucket, error) {
	ids := uuidArray(teamIDs)
	rows, err := r.db.QueryContext(ctx, `
		select `+bucketColumns+` from buckets
		where team_id = any($1::uuid[])
		   or id in (select bucket_id from bucket_team_access where team_id = any($1::uuid[]))
		order by created_at`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBuckets(rows)
}

func (r *BucketRepositoryImpl) Update(ctx context.Context, bucket *mapper.Bucket) error {
	res, err := r.db.ExecContext(ctx, `
		update buckets set name = $2, updated_at = now() where id = $1`,
		bucket.ID, bucket.Name)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *BucketRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var projects int
	if err := tx.QueryRowContext(ctx,
		`select count(*) from projects where bucket_id = $1`, id,
	).Scan(&projects); err != nil {
		return err
	}
	if projects > 0 {
		return ErrBucketInUse
	}

	if _, err := tx.ExecContext(ctx,
		`delete from bucket_team_access where bucket_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `delete from buckets where id = $1`, id)
	if err != nil {
		return err
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *BucketRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status mapper.BucketStatus) error {
	res, err := r.db.ExecContext(ctx, `
		update buckets set status = $2, updated_at = now() where id = $1`,
		id, string(status))
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *BucketRepositoryImpl) RecordCheck(ctx context.Context, id uuid.UUID, status mapper.BucketStatus, checkedAt time.Time, method, checkErr string) error {
	res, err := r.db.ExecContext(ctx, `
		update buckets
		set status = $2, last_checked = $3, checked_method = $4, last_error = $5, updated_at = now()
		where id = $1`,
		id, string(status), checkedAt, method, checkErr)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *BucketRepositoryImpl) RotateCredentials(ctx context.Context, id uuid.UUID, accessKeyEnc, secretKeyEnc string) error {
	// Rotation always resets to pending: the new credentials are unverified
	// until an explicit validate call.
	res, err := r.db.ExecContext(ctx, `
		update buckets
		set access_key_enc = $2, secret_key_enc = $3, status = $4,
		    checked_method = '', last_error = '', updated_at = now()
		where id = $1`,
		id, accessKeyEnc, secretKeyEnc, string(mapper.BucketPending))
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *BucketRepositoryImpl) ListForRevalidation(ctx context.Context, checkedBefore time.Time) ([]*mapper.Bucket, error) {
	rows, err := r.db.QueryContext(ctx, `
		select `+bucketColumns+` from buckets
		where status in ($1, $2)
		  and (last_checked is null or last_checked < $3)
		order by last_checked nulls first`,
		string(mapper.BucketConnected), string(mapper.BucketError), checkedBefore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBuckets(rows)
}

func (r *BucketRepositoryImpl) UpsertGrant(ctx context.Context, grant *mapper.BucketGrant) error {
	return r.db.QueryRowContext(ctx, `
		insert into bucket_team_access (bucket_id, team_id, access_level)
		values ($1, $2, $3)
		on conflict (bucket_id, team_id) do update
		set access_level = excluded.access_level, updated_at = now()
		returning created_at, updated_at`,
		grant.BucketID, grant.TeamID, grant.Level.String(),
	).Scan(&grant.CreatedAt, &grant.UpdatedAt)
}

func (r *BucketRepositoryImpl) RevokeGrant(ctx context.Context, bucketID, teamID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`delete from bucket_team_access where bucket_id = $1 and team_id = $2`,
		bucketID, teamID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *BucketRepositoryImpl) GetGrant(ctx context.Context, bucketID, teamID uuid.UUID) (*mapper.BucketGrant, error) {
	row := r.db.QueryRowContext(ctx, `
		select bucket_id, team_id, access_level, created_at, updated_at
		from bucket_team_access where bucket_id = $1 and team_id = $2`,
		bucketID, teamID)
	return scanGrant(row.Scan)
}

func (r *BucketRepositoryImpl) ListGrants(ctx context.Context, bucketID uuid.UUID) ([]*mapper.BucketGrant, error) {
	rows, err := r.db.QueryContext(ctx, `
		select bucket_id, team_id, access_level, created_at, updated_at
		from bucket_team_access where bucket_id = $1
		order by created_at`, bucketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []*mapper.BucketGrant
	for rows.Next() {
		grant, err := scanGrant(rows.Scan)
		if err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, rows.Err()
}

func (r *BucketRepositoryImpl) MaxGrantLevel(ctx context.Context, bucketID uuid.UUID, teamIDs []uuid.UUID) (authz.AccessLevel, error) {
	if len(teamIDs) == 0 {
		return authz.AccessNone, nil
	}
	rows, err := r.db.QueryContext(ctx, `
		select access_level from bucket_team_access
		where bucket_id = $1 and team_id = any($2::uuid[])`,
		bucketID, uuidArray(teamIDs))
	if err != nil {
		return authz.AccessNone, err
	}
	defer rows.Close()

	max := authz.AccessNone
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return authz.AccessNone, err
		}
		level, err := authz.ParseAccessLevel(name)
		if err != nil {
			return authz.AccessNone, err
		}
		if level > max {
			max = level
		}
	}
	return max, rows.Err()
}

func (r *BucketRepositoryImpl) ListAvailableTeams(ctx context.Context, bucketID uuid.UUID) ([]*mapper.Team, error) {
	rows, err := r.db.QueryContext(ctx, `
		select t.id, t.organization_id, t.name, t.slug, t.created_at, t.updated_at
		from teams t
		join buckets b on b.id = $1
		join teams owner on owner.id = b.team_id
		where t.organization_id = owner.organization_id
		  and t.id <> b.team_id
		  and t.id not in (select team_id from bucket_team_access where bucket_id = $1)
		order by t.name`, bucketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTeams(rows)
}

func (r *BucketRepositoryImpl) CountProjects(ctx context.Context, bucketID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`select count(*) from projects where bucket_id = $1`, bucketID).Scan(&n)
	return n, err
}

func scanBucket(scan func(...interface{}) error) (*mapper.Bucket, error) {
	var (
		b      mapper.Bucket
		status string
	)
	err := scan(&b.ID, &b.TeamID, &b.Name, &b.Provider, &b.BucketName, &b.Region,
		&b.Endpoint, &b.AccessKeyEnc, &b.SecretKeyEnc, &status, &b.LastChecked,
		&b.CheckedMethod, &b.LastError, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	b.Status = mapper.BucketStatus(status)
	return &b, nil
}

func scanBuckets(rows *sql.Rows) ([]*mapper.Bucket, error) {
	var buckets []*mapper.Bucket
	for rows.Next() {
		bucket, err := scanBucket(rows.Scan)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, bucket)
	}
	return buckets, rows.Err()
}

func scanGrant(scan func(...interface{}) error) (*mapper.BucketGrant, error) {
	var (
		g     mapper.BucketGrant
		level string
	)
	err := scan(&g.BucketID, &g.TeamID, &level, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if g.Level, err = authz.ParseAccessLevel(level); err != nil {
		return nil, err
	}
	return &g, nil
}

func uuidArray(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
