package jobs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/etalase/etalase/internal/catalog/categories"
	"github.com/etalase/etalase/internal/catalog/enrich"
	"github.com/etalase/etalase/internal/catalog/products"
	"github.com/etalase/etalase/internal/shared"
)

type stubCategories struct {
	cats []categories.Category
}

func (s *stubCategories) List(context.Context, int64) ([]categories.Category, error) {
	return s.cats, nil
}

func (s *stubCategories) Get(_ context.Context, _ int64, id int64) (categories.Category, error) {
	for _, c := range s.cats {
		if c.ID == id {
			return c, nil
		}
	}
	return categories.Category{}, nil
}

type stubProducts struct {
	byCategory map[int64][]products.Product
	listed     []int64
}

func (s *stubProducts) List(_ context.Context, _ int64, filters shared.ListFilters) ([]products.Product, int, error) {
	if filters.CategoryID == nil {
		return nil, 0, nil
	}
	s.listed = append(s.listed, *filters.CategoryID)
	items := s.byCategory[*filters.CategoryID]
	return items, len(items), nil
}

type stubResolver struct{}

func (stubResolver) Resolve(context.Context, int64, []categories.FieldConfigEntry) []enrich.EnrichedField {
	return []enrich.EnrichedField{
		{Key: "imei", Label: "IMEI", Type: "text", Requirement: categories.RequirementRequired},
	}
}

func reindexTask(t *testing.T, payload CatalogReindexPayload) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(TaskCatalogReindex, data)
}

func TestReindexWalksAllCategories(t *testing.T) {
	prods := &stubProducts{byCategory: map[int64][]products.Product{
		1: {{ID: 10, SKU: "A", Attributes: map[string]string{"imei": "356789104563217"}}},
		2: {{ID: 20, SKU: "B"}},
	}}
	job := NewCatalogReindexJob(
		&stubCategories{cats: []categories.Category{{ID: 1}, {ID: 2}}},
		prods, stubResolver{}, nil, nil)

	err := job.Handle(context.Background(), reindexTask(t, CatalogReindexPayload{TenantID: 7}))
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, prods.listed)
}

func TestReindexScopesToOneCategory(t *testing.T) {
	prods := &stubProducts{byCategory: map[int64][]products.Product{}}
	job := NewCatalogReindexJob(
		&stubCategories{cats: []categories.Category{{ID: 1}, {ID: 2}}},
		prods, stubResolver{}, nil, nil)

	err := job.Handle(context.Background(), reindexTask(t, CatalogReindexPayload{TenantID: 7, CategoryID: 2}))
	require.NoError(t, err)
	require.Equal(t, []int64{2}, prods.listed)
}

func TestReindexSkipsBadPayload(t *testing.T) {
	job := NewCatalogReindexJob(&stubCategories{}, &stubProducts{}, stubResolver{}, nil, nil)

	err := job.Handle(context.Background(), asynq.NewTask(TaskCatalogReindex, []byte("{")))
	require.ErrorIs(t, err, asynq.SkipRetry)

	err = job.Handle(context.Background(), reindexTask(t, CatalogReindexPayload{}))
	require.ErrorIs(t, err, asynq.SkipRetry)
}
