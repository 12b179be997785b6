package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/etalase/etalase/internal/catalog/categories"
	"github.com/etalase/etalase/internal/catalog/enrich"
	"github.com/etalase/etalase/internal/catalog/form"
	"github.com/etalase/etalase/internal/catalog/products"
	jobmetrics "github.com/etalase/etalase/internal/jobs"
	"github.com/etalase/etalase/internal/shared"
)

const reindexPageSize = 200

// CategorySource lists and loads categories for a reindex run.
type CategorySource interface {
	List(ctx context.Context, tenantID int64) ([]categories.Category, error)
	Get(ctx context.Context, tenantID, id int64) (categories.Category, error)
}

// ProductSource pages through a category's products.
type ProductSource interface {
	List(ctx context.Context, tenantID int64, filters shared.ListFilters) ([]products.Product, int, error)
}

// FieldResolver resolves a category's field configuration.
type FieldResolver interface {
	Resolve(ctx context.Context, tenantID int64, entries []categories.FieldConfigEntry) []enrich.EnrichedField
}

// CatalogReindexJob re-checks stored product attributes against the current
// field configuration after an admin reshapes a category. Report-only: it
// logs violations so staff can fix the data, it never rewrites products.
type CatalogReindexJob struct {
	Categories CategorySource
	Products   ProductSource
	Resolver   FieldResolver
	Logger     *slog.Logger
	Metrics    *jobmetrics.Metrics
}

func NewCatalogReindexJob(cats CategorySource, prods ProductSource, resolver FieldResolver,
	logger *slog.Logger, metrics *jobmetrics.Metrics) *CatalogReindexJob {
	return &CatalogReindexJob{
		Categories: cats,
		Products:   prods,
		Resolver:   resolver,
		Logger:     logger,
		Metrics:    metrics,
	}
}

// Handle processes catalog reindex tasks.
func (j *CatalogReindexJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Categories == nil || j.Products == nil || j.Resolver == nil {
		return errors.New("catalog reindex: handler not configured")
	}
	var payload CatalogReindexPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.TenantID == 0 {
		return asynq.SkipRetry
	}

	tracker := j.Metrics.Track(TaskCatalogReindex)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	var cats []categories.Category
	if payload.CategoryID != 0 {
		cat, err := j.Categories.Get(ctx, payload.TenantID, payload.CategoryID)
		if err != nil {
			resultErr = err
			return err
		}
		cats = []categories.Category{cat}
	} else {
		var err error
		cats, err = j.Categories.List(ctx, payload.TenantID)
		if err != nil {
			resultErr = err
			return err
		}
	}

	for _, cat := range cats {
		if err := j.reindexCategory(ctx, payload.TenantID, cat); err != nil {
			resultErr = err
			return err
		}
	}
	return nil
}

func (j *CatalogReindexJob) reindexCategory(ctx context.Context, tenantID int64, cat categories.Category) error {
	resolved := j.Resolver.Resolve(ctx, tenantID, cat.FieldConfig)
	flagged := 0
	for page := 1; ; page++ {
		filters := shared.ListFilters{Page: page, Limit: reindexPageSize, CategoryID: &cat.ID}
		batch, _, err := j.Products.List(ctx, tenantID, filters)
		if err != nil {
			return err
		}
		for _, p := range batch {
			problems := form.Validate(resolved, p.Attributes)
			if len(problems) == 0 {
				continue
			}
			flagged++
			if j.Logger != nil {
				j.Logger.Warn("product attributes out of shape",
					"tenant_id", tenantID, "category_id", cat.ID,
					"product_id", p.ID, "sku", p.SKU, "problems", problems)
			}
		}
		if len(batch) < reindexPageSize {
			break
		}
	}
	if j.Logger != nil {
		j.Logger.Info("catalog reindex done",
			"tenant_id", tenantID, "category_id", cat.ID, "flagged", flagged)
	}
	return nil
}
