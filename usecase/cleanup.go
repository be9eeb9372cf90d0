package usecase

import (
	"context"

	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"
)

type CleanupFailure struct {
	URL string
	Err error
}

// CleanupReport is the outcome of best-effort asset deletion. It is returned
// alongside a successful result and never turns it into a failure.
type CleanupReport struct {
	Deleted []string
	Failed  []CleanupFailure
}

func (r CleanupReport) OK() bool {
	return len(r.Failed) == 0
}

func (r *CleanupReport) merge(other CleanupReport) {
	r.Deleted = append(r.Deleted, other.Deleted...)
	r.Failed = append(r.Failed, other.Failed...)
}

type assetCleaner struct {
	assets repository.IAssetStore
	events repository.IEventPublisher
}

// cleanup deletes each non-empty url. Failures are logged and published as
// asset.cleanup_failed so they can be retried out of band.
func (c assetCleaner) cleanup(ctx context.Context, reason string, urls ...string) CleanupReport {
	var report CleanupReport
	ctx = context.WithoutCancel(ctx)
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := c.assets.Delete(ctx, url); err != nil {
			report.Failed = append(report.Failed, CleanupFailure{URL: url, Err: err})
			logger.GetLogger().WithFields(map[string]interface{}{
				"error":  err,
				"url":    url,
				"reason": reason,
			}).Warn("Asset cleanup failed")
			notify(ctx, c.events, model.NewEvent(model.EventAssetCleanupFailed, map[string]interface{}{
				"url":    url,
				"reason": reason,
			}))
			continue
		}
		report.Deleted = append(report.Deleted, url)
	}
	return report
}
