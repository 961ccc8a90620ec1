package service

import (
	"context"
	"errors"
	"time"

	"shelfcloud/internal/api/dto/v1/bucket"
	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"
	"shelfcloud/internal/logging"
	"shelfcloud/internal/obs"
	"shelfcloud/internal/repository"
	"shelfcloud/internal/secrets"
	"shelfcloud/internal/storage"

	"github.com/google/uuid"
)

// CredentialService drives the bucket validation state machine and
// credential rotation. A validation moves the bucket through testing and
// settles on connected or error; the probe itself runs outside any
// transaction so a slow provider never holds a database lock.
type CredentialService struct {
	bucketRepo   repository.BucketRepository
	access       *AccessResolver
	box          *secrets.Box
	prober       storage.Prober
	probeTimeout time.Duration
	audit        *AuditService
}

func NewCredentialService(bucketRepo repository.BucketRepository, access *AccessResolver, box *secrets.Box, prober storage.Prober, probeTimeout time.Duration, audit *AuditService) *CredentialService {
	return &CredentialService{
		bucketRepo:   bucketRepo,
		access:       access,
		box:          box,
		prober:       prober,
		probeTimeout: probeTimeout,
		audit:        audit,
	}
}

// Validate probes the bucket with its stored credentials and records the
// outcome. A failed probe is a normal outcome: the bucket lands in error
// status and the updated bucket is returned.
func (s *CredentialService) Validate(ctx context.Context, userID, bucketID uuid.UUID) (*bucket.Response, error) {
	if err := s.access.RequireBucketAccess(ctx, userID, bucketID, authz.AccessReadWrite); err != nil {
		return nil, err
	}
	b, err := s.bucketRepo.GetByID(ctx, bucketID)
	if err != nil {
		return nil, err
	}
	if err := s.bucketRepo.UpdateStatus(ctx, bucketID, mapper.BucketTesting); err != nil {
		return nil, err
	}

	status, method, checkErr := s.probe(ctx, b)
	obs.ObserveBucketCheck(string(status))

	checkedAt := time.Now()
	if err := s.bucketRepo.RecordCheck(ctx, bucketID, status, checkedAt, method, checkErr); err != nil {
		return nil, err
	}
	s.audit.LogBucketEvent(ctx, AuditEventBucketValidated, userID, bucketID, map[string]interface{}{"status": string(status)})

	return s.refreshed(ctx, bucketID)
}

// RotateCredentials seals the replacement credentials and resets the bucket
// to pending; the new credentials are unverified until the next validation.
func (s *CredentialService) RotateCredentials(ctx context.Context, userID, bucketID uuid.UUID, req *bucket.RotateCredentialsRequest) (*bucket.Response, error) {
	if err := s.access.RequireBucketAccess(ctx, userID, bucketID, authz.AccessAdmin); err != nil {
		return nil, err
	}

	accessKeyEnc, err := s.box.Seal(req.AccessKey)
	if err != nil {
		return nil, err
	}
	secretKeyEnc, err := s.box.Seal(req.SecretKey)
	if err != nil {
		return nil, err
	}
	if err := s.bucketRepo.RotateCredentials(ctx, bucketID, accessKeyEnc, secretKeyEnc); err != nil {
		return nil, err
	}
	s.audit.LogBucketEvent(ctx, AuditEventCredentialsRotated, userID, bucketID, nil)

	return s.refreshed(ctx, bucketID)
}

// Revalidate re-runs the probe without a caller, used by the background
// monitor for buckets already past their first validation.
func (s *CredentialService) Revalidate(ctx context.Context, b *mapper.Bucket) error {
	if err := s.bucketRepo.UpdateStatus(ctx, b.ID, mapper.BucketTesting); err != nil {
		return err
	}
	status, method, checkErr := s.probe(ctx, b)
	obs.ObserveBucketCheck(string(status))
	if err := s.bucketRepo.RecordCheck(ctx, b.ID, status, time.Now(), method, checkErr); err != nil {
		return err
	}
	if status == mapper.BucketError {
		logging.GetGlobalLogger().Warn("Bucket %s failed revalidation: %s", b.ID, checkErr)
	}
	return nil
}

func (s *CredentialService) probe(ctx context.Context, b *mapper.Bucket) (status mapper.BucketStatus, method, checkErr string) {
	accessKey, err := s.box.Open(b.AccessKeyEnc)
	if err != nil {
		return mapper.BucketError, "", "stored credentials are unreadable"
	}
	secretKey, err := s.box.Open(b.SecretKeyEnc)
	if err != nil {
		return mapper.BucketError, "", "stored credentials are unreadable"
	}

	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	method, err = s.prober.Probe(probeCtx, storage.ProbeRequest{
		Provider:   b.Provider,
		BucketName: b.BucketName,
		Region:     b.Region,
		Endpoint:   b.Endpoint,
		AccessKey:  accessKey,
		SecretKey:  secretKey,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return mapper.BucketError, method, "validation timed out"
		}
		return mapper.BucketError, method, err.Error()
	}
	return mapper.BucketConnected, method, ""
}

func (s *CredentialService) refreshed(ctx context.Context, bucketID uuid.UUID) (*bucket.Response, error) {
	b, err := s.bucketRepo.GetByID(ctx, bucketID)
	if err != nil {
		return nil, err
	}
	return mapper.ToBucketResponse(b), nil
}
