package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/hibiken/asynq"

	"github.com/etalase/etalase/internal/catalog/fields"
	jobmetrics "github.com/etalase/etalase/internal/jobs"
)

// CatalogWarmupJob re-primes the field library cache after a mutation
// dropped it, so the next admin page load does not pay the database round
// trip.
type CatalogWarmupJob struct {
	Fields  *fields.Service
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

func NewCatalogWarmupJob(fieldsSvc *fields.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *CatalogWarmupJob {
	return &CatalogWarmupJob{Fields: fieldsSvc, Logger: logger, Metrics: metrics}
}

// Handle processes catalog warmup tasks. Listing through the service stores
// the result in the cache as a side effect.
func (j *CatalogWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Fields == nil {
		return errors.New("catalog warmup: handler not configured")
	}
	var payload CatalogWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.TenantID == 0 {
		return asynq.SkipRetry
	}

	tracker := j.Metrics.Track(TaskCatalogWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	defs, err := j.Fields.List(ctx, payload.TenantID)
	if err != nil {
		resultErr = err
		if j.Logger != nil {
			j.Logger.Error("catalog warmup failed", "error", err, "tenant_id", payload.TenantID)
		}
		return err
	}
	j.Metrics.AddCacheWarmup(strconv.FormatInt(payload.TenantID, 10))
	if j.Logger != nil {
		j.Logger.Info("catalog warmup done", "tenant_id", payload.TenantID, "fields", len(defs))
	}
	return nil
}
