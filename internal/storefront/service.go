// Package storefront is the public, read-only catalog surface. It never
// exposes the raw tier price columns; every amount leaving here has already
// been resolved against the caller's customer tier.
package storefront

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/etalase/etalase/internal/banners"
	"github.com/etalase/etalase/internal/catalog/categories"
	"github.com/etalase/etalase/internal/catalog/enrich"
	"github.com/etalase/etalase/internal/catalog/products"
	"github.com/etalase/etalase/internal/platform/httpx"
	"github.com/etalase/etalase/internal/sales/customers"
	"github.com/etalase/etalase/internal/sales/pricing"
	"github.com/etalase/etalase/internal/shared"
)

type ProductLister interface {
	List(ctx context.Context, tenantID int64, filters shared.ListFilters) ([]products.Product, int, error)
	Get(ctx context.Context, tenantID, id int64) (products.Product, error)
}

type CustomerGetter interface {
	Get(ctx context.Context, tenantID, id int64) (customers.Customer, error)
}

type CategoryGetter interface {
	Get(ctx context.Context, tenantID, id int64) (categories.Category, error)
}

type FieldResolver interface {
	Resolve(ctx context.Context, tenantID int64, entries []categories.FieldConfigEntry) []enrich.EnrichedField
}

type BannerLister interface {
	List(ctx context.Context, tenantID int64) ([]banners.Banner, error)
}

type Service struct {
	products   ProductLister
	customers  CustomerGetter
	categories CategoryGetter
	resolver   FieldResolver
	banners    BannerLister
	logger     *slog.Logger
}

func NewService(products ProductLister, customers CustomerGetter, categories CategoryGetter,
	resolver FieldResolver, banners BannerLister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		products:   products,
		customers:  customers,
		categories: categories,
		resolver:   resolver,
		banners:    banners,
		logger:     logger,
	}
}

// customerFor loads the caller's customer record when the identity carries
// one. Lookup failures degrade to anonymous browsing, which prices as retail.
func (s *Service) customerFor(ctx context.Context, ident shared.Identity) *customers.Customer {
	if ident.CustomerID == 0 {
		return nil
	}
	c, err := s.customers.Get(ctx, ident.TenantID, ident.CustomerID)
	if err != nil {
		s.logger.Warn("storefront customer lookup failed",
			"error", err, "tenant_id", ident.TenantID, "customer_id", ident.CustomerID)
		return nil
	}
	return &c
}

func (s *Service) ListProducts(ctx context.Context, ident shared.Identity, filters shared.ListFilters) ([]ProductSummary, int, error) {
	active := true
	filters.IsActive = &active
	items, total, err := s.products.List(ctx, ident.TenantID, filters)
	if err != nil {
		return nil, 0, err
	}
	customer := s.customerFor(ctx, ident)
	views := make([]ProductSummary, 0, len(items))
	for _, p := range items {
		views = append(views, summarize(p, customer))
	}
	return views, total, nil
}

func (s *Service) GetProduct(ctx context.Context, ident shared.Identity, id int64) (ProductDetail, error) {
	p, err := s.products.Get(ctx, ident.TenantID, id)
	if err != nil {
		return ProductDetail{}, err
	}
	if !p.IsActive {
		return ProductDetail{}, fmt.Errorf("%w: product %d", httpx.ErrNotFound, id)
	}
	customer := s.customerFor(ctx, ident)
	detail := ProductDetail{ProductSummary: summarize(p, customer)}

	category, err := s.categories.Get(ctx, ident.TenantID, p.CategoryID)
	if err != nil {
		// The summary is still useful without the dynamic field sheet.
		s.logger.Warn("storefront category lookup failed",
			"error", err, "tenant_id", ident.TenantID, "category_id", p.CategoryID)
		return detail, nil
	}
	for _, f := range s.resolver.Resolve(ctx, ident.TenantID, category.FieldConfig) {
		if f.Unresolved || f.Requirement == categories.RequirementHidden {
			continue
		}
		detail.Fields = append(detail.Fields, FieldValue{
			Key:   f.Key,
			Label: f.Label,
			Type:  string(f.Type),
			Value: p.Attributes[f.Key],
		})
	}
	return detail, nil
}

// Quote prices a cart server-side. Quantities must be positive and every
// line must reference an active product; prices never come from the client.
func (s *Service) Quote(ctx context.Context, ident shared.Identity, lines []QuoteLineInput) (Quote, error) {
	if len(lines) == 0 {
		return Quote{}, fmt.Errorf("%w: quote needs at least one line", httpx.ErrValidation)
	}
	customer := s.customerFor(ctx, ident)
	quote := Quote{Lines: make([]QuoteLine, 0, len(lines))}
	for _, line := range lines {
		if line.Quantity < 1 {
			return Quote{}, fmt.Errorf("%w: quantity must be at least 1", httpx.ErrValidation)
		}
		p, err := s.products.Get(ctx, ident.TenantID, line.ProductID)
		if err != nil {
			return Quote{}, err
		}
		if !p.IsActive {
			return Quote{}, fmt.Errorf("%w: product %d", httpx.ErrNotFound, line.ProductID)
		}
		unit := pricing.DisplayPrice(p, customer)
		total := unit * int64(line.Quantity)
		quote.Lines = append(quote.Lines, QuoteLine{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  line.Quantity,
			UnitPrice: unit,
			LineTotal: total,
		})
		quote.Total += total
	}
	return quote, nil
}

// Banners returns the active banner rail in position order.
func (s *Service) Banners(ctx context.Context, tenantID int64) ([]banners.Banner, error) {
	all, err := s.banners.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	active := make([]banners.Banner, 0, len(all))
	for _, b := range all {
		if b.IsActive {
			active = append(active, b)
		}
	}
	return active, nil
}

func summarize(p products.Product, c *customers.Customer) ProductSummary {
	base := pricing.EffectivePrice(p, c)
	display := pricing.DisplayPrice(p, c)
	s := ProductSummary{
		ID:         p.ID,
		CategoryID: p.CategoryID,
		Name:       p.Name,
		SKU:        p.SKU,
		Price:      display,
	}
	if display < base {
		s.OriginalPrice = base
		s.DiscountPercent = p.DiscountPercent
	}
	return s
}
