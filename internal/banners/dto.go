package banners

// BannerInput is the admin payload for creating or updating a banner.
type BannerInput struct {
	Title    string `json:"title" validate:"required,max=160"`
	ImageURL string `json:"image_url" validate:"required,url"`
	LinkURL  string `json:"link_url,omitempty" validate:"omitempty,url"`
	IsActive bool   `json:"is_active"`
}

// ReorderRequest carries the drag-and-drop result.
type ReorderRequest struct {
	BannerIDs []string `json:"banner_ids" validate:"required,min=1"`
}
