package products

// ProductInput is the admin payload for creating or updating a product.
// Prices are integer minor-currency units.
type ProductInput struct {
	CategoryID      int64             `json:"category_id" validate:"required,gt=0"`
	Name            string            `json:"name" validate:"required,max=200"`
	SKU             string            `json:"sku" validate:"required,max=64"`
	PriceRetail     int64             `json:"price_retail" validate:"gte=0"`
	PriceWholesale  int64             `json:"price_wholesale" validate:"gte=0"`
	PriceReseller   int64             `json:"price_reseller" validate:"gte=0"`
	DiscountPercent int               `json:"discount_percent" validate:"gte=0,lte=100"`
	Attributes      map[string]string `json:"attributes,omitempty"`
	IsActive        bool              `json:"is_active"`
}
