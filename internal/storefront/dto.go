package storefront

// ProductSummary is the list-page view of a product. Price is the caller's
// tier price with any discount applied; OriginalPrice is set only when a
// discount actually lowered it.
type ProductSummary struct {
	ID              int64  `json:"id"`
	CategoryID      int64  `json:"category_id"`
	Name            string `json:"name"`
	SKU             string `json:"sku"`
	Price           int64  `json:"price"`
	OriginalPrice   int64  `json:"original_price,omitempty"`
	DiscountPercent int    `json:"discount_percent,omitempty"`
}

// FieldValue pairs a resolved field's display shape with the product's
// stored value for it.
type FieldValue struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

type ProductDetail struct {
	ProductSummary
	Fields []FieldValue `json:"fields,omitempty"`
}

type QuoteLineInput struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
}

type QuoteInput struct {
	Lines []QuoteLineInput `json:"lines" validate:"required,min=1,dive"`
}

type QuoteLine struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

type Quote struct {
	Lines []QuoteLine `json:"lines"`
	Total int64       `json:"total"`
}
