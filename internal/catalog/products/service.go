package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/etalase/etalase/internal/catalog/categories"
	"github.com/etalase/etalase/internal/catalog/enrich"
	"github.com/etalase/etalase/internal/catalog/form"
	"github.com/etalase/etalase/internal/platform/httpx"
	"github.com/etalase/etalase/internal/shared"
)

// CategoryGetter provides the category (and its field configuration) a
// product is filed under. Satisfied by *categories.Service.
type CategoryGetter interface {
	Get(ctx context.Context, tenantID, id int64) (categories.Category, error)
}

// FieldResolver turns a category's configuration into renderable fields.
// Satisfied by *enrich.Resolver.
type FieldResolver interface {
	Resolve(ctx context.Context, tenantID int64, entries []categories.FieldConfigEntry) []enrich.EnrichedField
}

// AttributeError carries all dynamic-field validation failures at once.
type AttributeError struct {
	Fields map[string]string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("invalid attributes on %d fields", len(e.Fields))
}

func (e *AttributeError) Unwrap() error { return httpx.ErrValidation }

type Service struct {
	repo       Repository
	categories CategoryGetter
	resolver   FieldResolver
}

func NewService(repo Repository, categories CategoryGetter, resolver FieldResolver) *Service {
	return &Service{repo: repo, categories: categories, resolver: resolver}
}

func (s *Service) List(ctx context.Context, tenantID int64, filters shared.ListFilters) ([]Product, int, error) {
	return s.repo.List(ctx, tenantID, filters)
}

func (s *Service) Get(ctx context.Context, tenantID, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, fmt.Errorf("%w: product %d", httpx.ErrNotFound, id)
	}
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) Create(ctx context.Context, tenantID int64, input ProductInput) (Product, error) {
	product := Product{
		TenantID:        tenantID,
		CategoryID:      input.CategoryID,
		Name:            input.Name,
		SKU:             input.SKU,
		PriceRetail:     input.PriceRetail,
		PriceWholesale:  input.PriceWholesale,
		PriceReseller:   input.PriceReseller,
		DiscountPercent: input.DiscountPercent,
		Attributes:      input.Attributes,
		IsActive:        input.IsActive,
	}
	if err := s.validate(ctx, product); err != nil {
		return Product{}, err
	}
	return s.repo.Create(ctx, product)
}

func (s *Service) Update(ctx context.Context, tenantID, id int64, input ProductInput) (Product, error) {
	product, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return Product{}, err
	}
	product.CategoryID = input.CategoryID
	product.Name = input.Name
	product.SKU = input.SKU
	product.PriceRetail = input.PriceRetail
	product.PriceWholesale = input.PriceWholesale
	product.PriceReseller = input.PriceReseller
	product.DiscountPercent = input.DiscountPercent
	product.Attributes = input.Attributes
	product.IsActive = input.IsActive

	if err := s.validate(ctx, product); err != nil {
		return Product{}, err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return Product{}, err
	}
	return product, nil
}

func (s *Service) Delete(ctx context.Context, tenantID, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: product %d", httpx.ErrNotFound, id)
	}
	return s.repo.Delete(ctx, tenantID, id)
}

func (s *Service) validate(ctx context.Context, p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", httpx.ErrValidation)
	}
	if p.PriceRetail < 0 || p.PriceWholesale < 0 || p.PriceReseller < 0 {
		return fmt.Errorf("%w: prices cannot be negative", httpx.ErrValidation)
	}
	if p.DiscountPercent < 0 || p.DiscountPercent > 100 {
		return fmt.Errorf("%w: discount must be between 0 and 100", httpx.ErrValidation)
	}

	category, err := s.categories.Get(ctx, p.TenantID, p.CategoryID)
	if err != nil {
		return fmt.Errorf("load category: %w", err)
	}
	enriched := s.resolver.Resolve(ctx, p.TenantID, category.FieldConfig)
	if failures := form.Validate(enriched, p.Attributes); len(failures) > 0 {
		return &AttributeError{Fields: failures}
	}
	return nil
}
