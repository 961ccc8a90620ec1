package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shelfcloud/internal/logging"
	"shelfcloud/internal/repository"
	"shelfcloud/internal/service"
)

// BucketMonitor periodically re-probes buckets whose last check has gone
// stale, so connectivity drift surfaces without anyone pressing validate.
type BucketMonitor struct {
	buckets      repository.BucketRepository
	credentials  *service.CredentialService
	interval     time.Duration
	recheckAfter time.Duration
	done         chan struct{}
	wg           sync.WaitGroup
}

// NewBucketMonitor creates a new bucket revalidation task.
func NewBucketMonitor(buckets repository.BucketRepository, credentials *service.CredentialService, interval, recheckAfter time.Duration) *BucketMonitor {
	return &BucketMonitor{
		buckets:      buckets,
		credentials:  credentials,
		interval:     interval,
		recheckAfter: recheckAfter,
		done:         make(chan struct{}),
	}
}

// Start begins the monitor task in the background.
func (bm *BucketMonitor) Start() {
	bm.wg.Add(1)
	go bm.runPeriodically()
}

// Stop gracefully stops the monitor task.
func (bm *BucketMonitor) Stop() {
	close(bm.done)
	bm.wg.Wait()
}

func (bm *BucketMonitor) runPeriodically() {
	defer bm.wg.Done()
	logger := logging.GetGlobalLogger()

	logger.Info("Starting bucket monitor task (interval=%s, recheck after=%s)", bm.interval, bm.recheckAfter)

	ticker := time.NewTicker(bm.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := bm.revalidateStale(); err != nil {
				logger.Error("Periodic bucket revalidation failed: %v", err)
			}
		case <-bm.done:
			logger.Info("Bucket monitor task stopped")
			return
		}
	}
}

// revalidateStale re-probes every connected or errored bucket whose last
// check predates the recheck window. Pending buckets are left alone until
// someone validates them explicitly.
func (bm *BucketMonitor) revalidateStale() error {
	ctx := context.Background()
	logger := logging.GetGlobalLogger()

	stale, err := bm.buckets.ListForRevalidation(ctx, time.Now().Add(-bm.recheckAfter))
	if err != nil {
		return fmt.Errorf("failed to query stale buckets: %w", err)
	}

	for _, b := range stale {
		select {
		case <-bm.done:
			return nil
		default:
		}

		if err := bm.credentials.Revalidate(ctx, b); err != nil {
			logger.Error("Revalidation of bucket %s failed: %v", b.ID, err)
		}
	}

	if len(stale) > 0 {
		logger.Info("Revalidated %d stale bucket(s)", len(stale))
	}

	return nil
}
