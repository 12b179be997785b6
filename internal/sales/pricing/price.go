package pricing

import (
	"github.com/etalase/etalase/internal/catalog/products"
	"github.com/etalase/etalase/internal/sales/customers"
)

// PriceField names one of the three stored price columns.
type PriceField string

const (
	FieldPriceRetail    PriceField = "price_retail"
	FieldPriceWholesale PriceField = "price_wholesale"
	FieldPriceReseller  PriceField = "price_reseller"
)

// PriceFieldFor maps a tier to its price field. Total by construction: Tier
// is already constrained to the three sellable values.
func PriceFieldFor(tier Tier) PriceField {
	switch tier {
	case TierWholesale:
		return FieldPriceWholesale
	case TierResale:
		return FieldPriceReseller
	default:
		return FieldPriceRetail
	}
}

// EffectivePrice returns the minor-unit amount the customer's tier pays. A
// missing or zero tier price falls back to retail; a missing retail price
// yields 0.
func EffectivePrice(p products.Product, c *customers.Customer) int64 {
	var amount int64
	switch PriceFieldFor(ResolveEffectiveTier(c)) {
	case FieldPriceWholesale:
		amount = p.PriceWholesale
	case FieldPriceReseller:
		amount = p.PriceReseller
	default:
		amount = p.PriceRetail
	}
	if amount <= 0 {
		amount = p.PriceRetail
	}
	if amount <= 0 {
		return 0
	}
	return amount
}

// DisplayPrice applies the product's discount percentage to the effective
// price. The arithmetic is pure integer with round-half-up on the minor
// unit, so a 20% discount on 10000 is exactly 8000 with no float drift.
func DisplayPrice(p products.Product, c *customers.Customer) int64 {
	amount := EffectivePrice(p, c)
	pct := int64(p.DiscountPercent)
	if pct <= 0 || pct > 100 {
		return amount
	}
	return (amount*(100-pct) + 50) / 100
}
