package storefront

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/etalase/etalase/internal/banners"
	"github.com/etalase/etalase/internal/catalog/categories"
	"github.com/etalase/etalase/internal/catalog/enrich"
	"github.com/etalase/etalase/internal/catalog/products"
	"github.com/etalase/etalase/internal/platform/httpx"
	"github.com/etalase/etalase/internal/sales/customers"
	"github.com/etalase/etalase/internal/shared"
)

type fakeProducts struct {
	items map[int64]products.Product
}

func (f *fakeProducts) List(_ context.Context, _ int64, filters shared.ListFilters) ([]products.Product, int, error) {
	var out []products.Product
	for _, p := range f.items {
		if filters.IsActive != nil && p.IsActive != *filters.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakeProducts) Get(_ context.Context, _ int64, id int64) (products.Product, error) {
	p, ok := f.items[id]
	if !ok {
		return products.Product{}, fmt.Errorf("%w: product %d", httpx.ErrNotFound, id)
	}
	return p, nil
}

type fakeCustomers struct {
	items map[int64]customers.Customer
}

func (f *fakeCustomers) Get(_ context.Context, _ int64, id int64) (customers.Customer, error) {
	c, ok := f.items[id]
	if !ok {
		return customers.Customer{}, fmt.Errorf("%w: customer %d", httpx.ErrNotFound, id)
	}
	return c, nil
}

type fakeCategories struct {
	category categories.Category
}

func (f *fakeCategories) Get(context.Context, int64, int64) (categories.Category, error) {
	return f.category, nil
}

type fakeResolver struct {
	fields []enrich.EnrichedField
}

func (f *fakeResolver) Resolve(context.Context, int64, []categories.FieldConfigEntry) []enrich.EnrichedField {
	return f.fields
}

type fakeBanners struct {
	items []banners.Banner
}

func (f *fakeBanners) List(context.Context, int64) ([]banners.Banner, error) {
	return f.items, nil
}

func newTestService(p *fakeProducts, c *fakeCustomers, r *fakeResolver) *Service {
	if r == nil {
		r = &fakeResolver{}
	}
	return NewService(p, c, &fakeCategories{}, r, &fakeBanners{}, nil)
}

func phone(id int64, active bool) products.Product {
	return products.Product{
		ID:             id,
		CategoryID:     7,
		Name:           "Galaxy A15",
		SKU:            "GA15",
		PriceRetail:    10000,
		PriceWholesale: 8000,
		PriceReseller:  7000,
		IsActive:       active,
		Attributes:     map[string]string{"warna": "hitam", "rahasia": "internal"},
	}
}

func TestListPricesAnonymousAsRetail(t *testing.T) {
	svc := newTestService(&fakeProducts{items: map[int64]products.Product{1: phone(1, true)}}, &fakeCustomers{}, nil)

	items, total, err := svc.ListProducts(context.Background(), shared.Identity{TenantID: 1}, shared.ListFilters{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, int64(10000), items[0].Price)
	require.Zero(t, items[0].OriginalPrice)
}

func TestListPricesWholesaleWithDiscount(t *testing.T) {
	p := phone(1, true)
	p.DiscountPercent = 10
	svc := newTestService(
		&fakeProducts{items: map[int64]products.Product{1: p}},
		&fakeCustomers{items: map[int64]customers.Customer{42: {ID: 42, Name: "Toko", Type: customers.TypeWholesale}}},
		nil)

	items, _, err := svc.ListProducts(context.Background(), shared.Identity{TenantID: 1, CustomerID: 42}, shared.ListFilters{})
	require.NoError(t, err)
	require.Equal(t, int64(7200), items[0].Price)
	require.Equal(t, int64(8000), items[0].OriginalPrice)
	require.Equal(t, 10, items[0].DiscountPercent)
}

func TestUnknownCustomerDegradesToAnonymous(t *testing.T) {
	svc := newTestService(&fakeProducts{items: map[int64]products.Product{1: phone(1, true)}}, &fakeCustomers{}, nil)

	items, _, err := svc.ListProducts(context.Background(), shared.Identity{TenantID: 1, CustomerID: 999}, shared.ListFilters{})
	require.NoError(t, err)
	require.Equal(t, int64(10000), items[0].Price)
}

func TestGetProductHidesHiddenAndUnresolvedFields(t *testing.T) {
	resolver := &fakeResolver{fields: []enrich.EnrichedField{
		{Key: "warna", Label: "Warna", Type: "text", Requirement: categories.RequirementOptional},
		{Key: "rahasia", Label: "Rahasia", Type: "text", Requirement: categories.RequirementHidden},
		{Key: "hilang", Label: "Field not found", Requirement: categories.RequirementOptional, Unresolved: true},
	}}
	svc := newTestService(&fakeProducts{items: map[int64]products.Product{1: phone(1, true)}}, &fakeCustomers{}, resolver)

	detail, err := svc.GetProduct(context.Background(), shared.Identity{TenantID: 1}, 1)
	require.NoError(t, err)
	require.Len(t, detail.Fields, 1)
	require.Equal(t, "warna", detail.Fields[0].Key)
	require.Equal(t, "hitam", detail.Fields[0].Value)
}

func TestGetInactiveProductIsNotFound(t *testing.T) {
	svc := newTestService(&fakeProducts{items: map[int64]products.Product{1: phone(1, false)}}, &fakeCustomers{}, nil)

	_, err := svc.GetProduct(context.Background(), shared.Identity{TenantID: 1}, 1)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestQuoteTotalsServerSide(t *testing.T) {
	p := phone(1, true)
	p.DiscountPercent = 20
	svc := newTestService(&fakeProducts{items: map[int64]products.Product{1: p}}, &fakeCustomers{}, nil)

	quote, err := svc.Quote(context.Background(), shared.Identity{TenantID: 1}, []QuoteLineInput{
		{ProductID: 1, Quantity: 3},
	})
	require.NoError(t, err)
	require.Equal(t, int64(8000), quote.Lines[0].UnitPrice)
	require.Equal(t, int64(24000), quote.Lines[0].LineTotal)
	require.Equal(t, int64(24000), quote.Total)
}

func TestQuoteRejectsBadQuantityAndInactiveProduct(t *testing.T) {
	svc := newTestService(&fakeProducts{items: map[int64]products.Product{
		1: phone(1, true),
		2: phone(2, false),
	}}, &fakeCustomers{}, nil)

	_, err := svc.Quote(context.Background(), shared.Identity{TenantID: 1}, []QuoteLineInput{{ProductID: 1, Quantity: 0}})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Quote(context.Background(), shared.Identity{TenantID: 1}, []QuoteLineInput{{ProductID: 2, Quantity: 1}})
	require.ErrorIs(t, err, httpx.ErrNotFound)

	_, err = svc.Quote(context.Background(), shared.Identity{TenantID: 1}, nil)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestBannersFiltersInactive(t *testing.T) {
	svc := NewService(&fakeProducts{}, &fakeCustomers{}, &fakeCategories{}, &fakeResolver{}, &fakeBanners{items: []banners.Banner{
		{ID: "a", Position: 1, IsActive: true},
		{ID: "b", Position: 2, IsActive: false},
		{ID: "c", Position: 3, IsActive: true},
	}}, nil)

	items, err := svc.Banners(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "a", items[0].ID)
	require.Equal(t, "c", items[1].ID)
}
