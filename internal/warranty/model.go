package warranty

import "time"

// Template is a warranty document with {tag} markers substituted at render
// time. Body is stored verbatim; unknown tags survive rendering so a typo is
// visible in the output instead of silently vanishing.
type Template struct {
	ID           int64     `json:"id"`
	TenantID     int64     `json:"tenant_id"`
	Name         string    `json:"name"`
	Body         string    `json:"body"`
	DurationDays int       `json:"duration_days"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
