package banners

import "time"

// Banner is a storefront hero/promo slot. Position drives display order and
// is maintained exclusively through Reorder.
type Banner struct {
	ID        string    `json:"id"`
	TenantID  int64     `json:"tenant_id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	LinkURL   string    `json:"link_url,omitempty"`
	Position  int       `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
