package customers

import "time"

// CustomerType is the pricing class attached to a customer record. ADMIN is
// a role marker, not a sellable tier; pricing resolution maps it onto one of
// the three tiers.
type CustomerType string

const (
	TypeRetail    CustomerType = "retail"
	TypeWholesale CustomerType = "wholesale"
	TypeResale    CustomerType = "resale"
	TypeAdmin     CustomerType = "ADMIN"
)

// SellableTier reports whether t is one of the three sellable tiers.
func (t CustomerType) SellableTier() bool {
	switch t {
	case TypeRetail, TypeWholesale, TypeResale:
		return true
	}
	return false
}

type Customer struct {
	ID       int64        `json:"id"`
	TenantID int64        `json:"tenant_id"`
	Name     string       `json:"name"`
	Phone    string       `json:"phone,omitempty"`
	Type     CustomerType `json:"customer_type"`
	// AdminPreviewType lets an ADMIN browse the storefront priced as a
	// chosen tier. Meaningless (and cleared) on non-ADMIN customers.
	AdminPreviewType *CustomerType `json:"admin_preview_type,omitempty"`
	IsActive         bool          `json:"is_active"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
