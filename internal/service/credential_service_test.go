package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shelfcloud/internal/api/dto/v1/bucket"
	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"
	"shelfcloud/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	probeFunc func(ctx context.Context, req storage.ProbeRequest) (string, error)
}

func (f *fakeProber) Probe(ctx context.Context, req storage.ProbeRequest) (string, error) {
	if f.probeFunc != nil {
		return f.probeFunc(ctx, req)
	}
	return "head", nil
}

type credentialFixture struct {
	svc     *CredentialService
	buckets *mockBucketRepo
	checks  []recordedCheck
}

type recordedCheck struct {
	status mapper.BucketStatus
	method string
	err    string
}

func newCredentialFixture(t *testing.T, prober storage.Prober, timeout time.Duration) *credentialFixture {
	t.Helper()
	box := testBox(t)

	accessKeyEnc, err := box.Seal("AKIAEXAMPLE")
	require.NoError(t, err)
	secretKeyEnc, err := box.Seal("super-secret")
	require.NoError(t, err)

	f := &credentialFixture{}
	stored := &mapper.Bucket{
		ID:           uuid.New(),
		TeamID:       uuid.New(),
		Provider:     mapper.ProviderS3,
		BucketName:   "acme-assets",
		Region:       "eu-west-1",
		AccessKeyEnc: accessKeyEnc,
		SecretKeyEnc: secretKeyEnc,
		Status:       mapper.BucketPending,
	}
	f.buckets = &mockBucketRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*mapper.Bucket, error) {
			return stored, nil
		},
		recordCheckFunc: func(ctx context.Context, id uuid.UUID, status mapper.BucketStatus, checkedAt time.Time, method, checkErr string) error {
			f.checks = append(f.checks, recordedCheck{status: status, method: method, err: checkErr})
			stored.Status = status
			return nil
		},
	}
	members := &mockMembershipRepo{
		teamRoleFunc: func(ctx context.Context, uID, tID uuid.UUID) (authz.Role, error) {
			return authz.RoleAdmin, nil
		},
	}
	access := NewAccessResolver(members, f.buckets, &mockTeamRepo{}, &mockProjectRepo{})
	f.svc = NewCredentialService(f.buckets, access, box, prober, timeout, NewAuditService())
	return f
}

func TestCredentialValidate_Connected(t *testing.T) {
	f := newCredentialFixture(t, &fakeProber{}, time.Second)

	resp, err := f.svc.Validate(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	require.Len(t, f.checks, 1)
	assert.Equal(t, mapper.BucketConnected, f.checks[0].status)
	assert.Equal(t, "head", f.checks[0].method)
	assert.Empty(t, f.checks[0].err)
	assert.Equal(t, string(mapper.BucketConnected), resp.Status)
}

func TestCredentialValidate_ProbeFailureIsNormalOutcome(t *testing.T) {
	prober := &fakeProber{
		probeFunc: func(ctx context.Context, req storage.ProbeRequest) (string, error) {
			return "head", errors.New("bucket does not exist")
		},
	}
	f := newCredentialFixture(t, prober, time.Second)

	resp, err := f.svc.Validate(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	require.Len(t, f.checks, 1)
	assert.Equal(t, mapper.BucketError, f.checks[0].status)
	assert.Equal(t, "bucket does not exist", f.checks[0].err)
	assert.Equal(t, string(mapper.BucketError), resp.Status)
}

func TestCredentialValidate_Timeout(t *testing.T) {
	prober := &fakeProber{
		probeFunc: func(ctx context.Context, req storage.ProbeRequest) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	f := newCredentialFixture(t, prober, 10*time.Millisecond)

	_, err := f.svc.Validate(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	require.Len(t, f.checks, 1)
	assert.Equal(t, mapper.BucketError, f.checks[0].status)
	assert.Equal(t, "validation timed out", f.checks[0].err)
}

func TestCredentialValidate_ProbeSeesPlaintextCredentials(t *testing.T) {
	var seen storage.ProbeRequest
	prober := &fakeProber{
		probeFunc: func(ctx context.Context, req storage.ProbeRequest) (string, error) {
			seen = req
			return "head", nil
		},
	}
	f := newCredentialFixture(t, prober, time.Second)

	_, err := f.svc.Validate(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", seen.AccessKey)
	assert.Equal(t, "super-secret", seen.SecretKey)
	assert.Equal(t, "acme-assets", seen.BucketName)
}

func TestRotateCredentials_ResetsToPending(t *testing.T) {
	f := newCredentialFixture(t, &fakeProber{}, time.Second)
	box := testBox(t)

	var rotatedAccess, rotatedSecret string
	f.buckets.rotateCredentialsFunc = func(ctx context.Context, id uuid.UUID, accessKeyEnc, secretKeyEnc string) error {
		rotatedAccess = accessKeyEnc
		rotatedSecret = secretKeyEnc
		return nil
	}

	_, err := f.svc.RotateCredentials(context.Background(), uuid.New(), uuid.New(), &bucket.RotateCredentialsRequest{
		AccessKey: "AKIANEW",
		SecretKey: "new-secret",
	})
	require.NoError(t, err)

	accessKey, err := box.Open(rotatedAccess)
	require.NoError(t, err)
	assert.Equal(t, "AKIANEW", accessKey)
	secretKey, err := box.Open(rotatedSecret)
	require.NoError(t, err)
	assert.Equal(t, "new-secret", secretKey)
	// No probe runs on rotation; the next validation does.
	assert.Empty(t, f.checks)
}

func TestRevalidate_RecordsOutcomeWithoutCaller(t *testing.T) {
	prober := &fakeProber{
		probeFunc: func(ctx context.Context, req storage.ProbeRequest) (string, error) {
			return "list", errors.New("access denied")
		},
	}
	f := newCredentialFixture(t, prober, time.Second)

	b, err := f.buckets.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)

	require.NoError(t, f.svc.Revalidate(context.Background(), b))
	require.Len(t, f.checks, 1)
	assert.Equal(t, mapper.BucketError, f.checks[0].status)
	assert.Equal(t, "list", f.checks[0].method)
}
