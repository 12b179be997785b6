// Package pricing resolves which price a customer sees. Everything here is a
// pure function over already-loaded data: no I/O, no context, no errors. A
// storefront must always be able to render a price, so malformed inputs
// degrade to documented fallbacks instead of failing.
package pricing

import "github.com/etalase/etalase/internal/sales/customers"

// Tier is one of the three sellable pricing classes. ADMIN is a role, never
// a tier; it always resolves to one of these.
type Tier string

const (
	TierRetail    Tier = "retail"
	TierWholesale Tier = "wholesale"
	TierResale    Tier = "resale"
)

// ResolveEffectiveTier is total: for any customer record, including nil or
// malformed ones, it returns exactly one sellable tier.
//
// Anonymous browsing is retail. An ADMIN resolves to their preview tier when
// it is valid, otherwise retail. Everyone else resolves to their own type
// when it is a sellable tier, otherwise retail.
func ResolveEffectiveTier(c *customers.Customer) Tier {
	if c == nil {
		return TierRetail
	}
	if c.Type == customers.TypeAdmin {
		if c.AdminPreviewType != nil {
			if tier, ok := tierFor(*c.AdminPreviewType); ok {
				return tier
			}
		}
		return TierRetail
	}
	if tier, ok := tierFor(c.Type); ok {
		return tier
	}
	return TierRetail
}

func tierFor(t customers.CustomerType) (Tier, bool) {
	switch t {
	case customers.TypeRetail:
		return TierRetail, true
	case customers.TypeWholesale:
		return TierWholesale, true
	case customers.TypeResale:
		return TierResale, true
	}
	return "", false
}
