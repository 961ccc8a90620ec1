package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Probe check methods, recorded on the bucket after each validation.
const (
	MethodHead = "head_bucket"
	MethodList = "list_objects"
)

// ProbeRequest carries everything needed to reach a provider bucket.
type ProbeRequest struct {
	Provider   string
	BucketName string
	Region     string
	Endpoint   string
	AccessKey  string
	SecretKey  string
}

// Prober verifies that a set of credentials can reach a bucket.
type Prober interface {
	// Probe returns the check method that succeeded, or an error describing
	// why the bucket is unreachable.
	Probe(ctx context.Context, req ProbeRequest) (method string, err error)
}

// S3Prober probes S3-compatible storage (AWS S3 and Cloudflare R2) using a
// cheap head check first, falling back to a single-key listing for
// credentials that lack head permissions.
type S3Prober struct{}

func NewS3Prober() *S3Prober {
	return &S3Prober{}
}

func (p *S3Prober) Probe(ctx context.Context, req ProbeRequest) (string, error) {
	endpoint, secure := resolveEndpoint(req)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(req.AccessKey, req.SecretKey, ""),
		Secure: secure,
		Region: req.Region,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build storage client: %w", err)
	}

	exists, headErr := client.BucketExists(ctx, req.BucketName)
	if headErr == nil {
		if !exists {
			return "", fmt.Errorf("bucket %q not found", req.BucketName)
		}
		return MethodHead, nil
	}

	// Head can be denied while listing is allowed; try the cheapest listing.
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	for obj := range client.ListObjects(listCtx, req.BucketName, minio.ListObjectsOptions{MaxKeys: 1}) {
		if obj.Err != nil {
			return "", fmt.Errorf("bucket unreachable: %w", obj.Err)
		}
		return MethodList, nil
	}
	if listCtx.Err() != nil {
		return "", listCtx.Err()
	}
	// Empty bucket listed successfully.
	return MethodList, nil
}

// resolveEndpoint picks the endpoint host for the request. R2 and custom S3
// endpoints come from the bucket registration; plain S3 defaults to the
// regional AWS endpoint.
func resolveEndpoint(req ProbeRequest) (host string, secure bool) {
	endpoint := req.Endpoint
	if endpoint == "" {
		region := req.Region
		if region == "" {
			region = "us-east-1"
		}
		return fmt.Sprintf("s3.%s.amazonaws.com", region), true
	}
	secure = true
	if strings.HasPrefix(endpoint, "https://") {
		endpoint = strings.TrimPrefix(endpoint, "https://")
	} else if strings.HasPrefix(endpoint, "http://") {
		endpoint = strings.TrimPrefix(endpoint, "http://")
		secure = false
	}
	return strings.TrimSuffix(endpoint, "/"), secure
}
