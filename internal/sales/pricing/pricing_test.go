package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/etalase/etalase/internal/catalog/products"
	"github.com/etalase/etalase/internal/sales/customers"
)

func ptr(t customers.CustomerType) *customers.CustomerType { return &t }

func TestResolveEffectiveTierIsTotal(t *testing.T) {
	types := []customers.CustomerType{
		customers.TypeRetail, customers.TypeWholesale, customers.TypeResale,
		customers.TypeAdmin, "", "gibberish",
	}
	previews := []*customers.CustomerType{
		nil, ptr(customers.TypeRetail), ptr(customers.TypeWholesale),
		ptr(customers.TypeResale), ptr(""), ptr("VIP"),
	}

	valid := map[Tier]bool{TierRetail: true, TierWholesale: true, TierResale: true}
	for _, ct := range types {
		for _, preview := range previews {
			tier := ResolveEffectiveTier(&customers.Customer{Type: ct, AdminPreviewType: preview})
			require.True(t, valid[tier], "type=%q preview=%v resolved to %q", ct, preview, tier)
		}
	}
	require.Equal(t, TierRetail, ResolveEffectiveTier(nil), "anonymous browsing is retail")
}

func TestResolveEffectiveTierAdminPreview(t *testing.T) {
	admin := &customers.Customer{Type: customers.TypeAdmin}
	require.Equal(t, TierRetail, ResolveEffectiveTier(admin))

	admin.AdminPreviewType = ptr(customers.TypeResale)
	require.Equal(t, TierResale, ResolveEffectiveTier(admin))

	admin.AdminPreviewType = ptr("VIP")
	require.Equal(t, TierRetail, ResolveEffectiveTier(admin))

	// Preview is ignored on non-ADMIN customers.
	wholesale := &customers.Customer{Type: customers.TypeWholesale, AdminPreviewType: ptr(customers.TypeResale)}
	require.Equal(t, TierWholesale, ResolveEffectiveTier(wholesale))
}

func TestPriceFieldForIsDeterministic(t *testing.T) {
	require.Equal(t, FieldPriceRetail, PriceFieldFor(TierRetail))
	require.Equal(t, FieldPriceWholesale, PriceFieldFor(TierWholesale))
	require.Equal(t, FieldPriceReseller, PriceFieldFor(TierResale))
}

func TestEffectivePricePerTier(t *testing.T) {
	product := products.Product{PriceRetail: 10000, PriceWholesale: 8000, PriceReseller: 7000}

	require.EqualValues(t, 10000, EffectivePrice(product, nil))
	require.EqualValues(t, 8000, EffectivePrice(product, &customers.Customer{Type: customers.TypeWholesale}))
	require.EqualValues(t, 7000, EffectivePrice(product, &customers.Customer{
		Type: customers.TypeAdmin, AdminPreviewType: ptr(customers.TypeResale),
	}))
	require.EqualValues(t, 10000, EffectivePrice(product, &customers.Customer{Type: customers.TypeAdmin}),
		"ADMIN without preview falls through to retail")
}

func TestEffectivePriceFallsBackToRetail(t *testing.T) {
	product := products.Product{PriceRetail: 10000}
	require.EqualValues(t, 10000, EffectivePrice(product, &customers.Customer{Type: customers.TypeWholesale}),
		"zero wholesale price falls back to retail")

	require.EqualValues(t, 0, EffectivePrice(products.Product{}, &customers.Customer{Type: customers.TypeResale}),
		"no price at all renders as 0, never an error")
}

func TestDisplayPriceExactIntegerDiscount(t *testing.T) {
	product := products.Product{PriceRetail: 10000, DiscountPercent: 20}
	require.EqualValues(t, 8000, DisplayPrice(product, nil))

	product.DiscountPercent = 0
	require.EqualValues(t, 10000, DisplayPrice(product, nil))

	product.DiscountPercent = 100
	require.EqualValues(t, 0, DisplayPrice(product, nil))
}

func TestDisplayPriceRoundsHalfUp(t *testing.T) {
	// 3% off 9999 = 9699.03 -> 9699; 15% off 333 = 283.05 -> 283;
	// 50% off 5 = 2.5 -> 3.
	cases := []struct {
		price    int64
		discount int
		want     int64
	}{
		{9999, 3, 9699},
		{333, 15, 283},
		{5, 50, 3},
		{1, 1, 1},
	}
	for _, tc := range cases {
		product := products.Product{PriceRetail: tc.price, DiscountPercent: tc.discount}
		require.EqualValues(t, tc.want, DisplayPrice(product, nil),
			"%d%% off %d", tc.discount, tc.price)
	}
}
