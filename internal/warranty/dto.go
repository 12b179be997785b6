package warranty

type CreateTemplateInput struct {
	Name         string `json:"name" validate:"required,max=120"`
	Body         string `json:"body" validate:"required"`
	DurationDays int    `json:"duration_days" validate:"gte=0,lte=3650"`
	IsDefault    bool   `json:"is_default"`
}

type UpdateTemplateInput struct {
	Name         *string `json:"name" validate:"omitempty,max=120"`
	Body         *string `json:"body"`
	DurationDays *int    `json:"duration_days" validate:"omitempty,gte=0,lte=3650"`
	IsDefault    *bool   `json:"is_default"`
}

type PreviewInput struct {
	ProductID  int64  `json:"product_id" validate:"required"`
	CustomerID *int64 `json:"customer_id"`
}

type PreviewResult struct {
	Rendered string `json:"rendered"`
}
