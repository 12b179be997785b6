package products

import "time"

// Product is a catalog item. The three price fields are integer
// minor-currency-unit amounts, one per sellable customer tier; retail is the
// fallback when a tier price is missing. Attributes holds the values of the
// category's dynamic fields, keyed by field key.
type Product struct {
	ID             int64             `json:"id"`
	TenantID       int64             `json:"tenant_id"`
	CategoryID     int64             `json:"category_id"`
	Name           string            `json:"name"`
	SKU            string            `json:"sku"`
	PriceRetail    int64             `json:"price_retail"`
	PriceWholesale int64             `json:"price_wholesale"`
	PriceReseller  int64             `json:"price_reseller"`
	// DiscountPercent applies to the resolved tier price for display only;
	// the stored base prices are never mutated by it.
	DiscountPercent int               `json:"discount_percent"`
	Attributes      map[string]string `json:"attributes,omitempty"`
	IsActive        bool              `json:"is_active"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
