package customers

// CustomerInput is the admin payload for creating or updating a customer.
type CustomerInput struct {
	Name             string        `json:"name" validate:"required,max=160"`
	Phone            string        `json:"phone,omitempty" validate:"max=32"`
	Type             CustomerType  `json:"customer_type" validate:"required"`
	AdminPreviewType *CustomerType `json:"admin_preview_type,omitempty"`
}
