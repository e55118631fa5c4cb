package models

// HeroImage is a homepage carousel entry. Hero images carry no status; all
// of them are visible and rotate in insertion order.
type HeroImage struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	UploadedBy  string `json:"uploadedBy,omitempty"`
}

// CreateHeroImageRequest carries the fields for a new hero image.
type CreateHeroImageRequest struct {
	URL         string `json:"url" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// UpdateHeroImageRequest carries a partial hero image update. Nil fields are
// left unchanged.
type UpdateHeroImageRequest struct {
	URL         *string `json:"url,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}
