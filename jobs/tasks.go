package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskCatalogWarmup re-primes a tenant's field library cache.
	TaskCatalogWarmup = "catalog:warmup"
	// TaskCatalogReindex re-validates product attributes against the
	// current category field configuration.
	TaskCatalogReindex = "catalog:reindex"
)

// CatalogWarmupPayload identifies the tenant whose field cache to warm.
type CatalogWarmupPayload struct {
	TenantID int64 `json:"tenant_id"`
}

// CatalogReindexPayload scopes a reindex run. CategoryID zero means every
// category of the tenant.
type CatalogReindexPayload struct {
	TenantID   int64 `json:"tenant_id"`
	CategoryID int64 `json:"category_id,omitempty"`
}

// NewCatalogWarmupTask constructs a warmup task.
func NewCatalogWarmupTask(payload CatalogWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogWarmup, data), nil
}

// NewCatalogReindexTask constructs a reindex task.
func NewCatalogReindexTask(payload CatalogReindexPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogReindex, data), nil
}
