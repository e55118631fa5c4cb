package store

import (
	"go.uber.org/zap"

	"github.com/propfinder/listing-api/internal/models"
	"github.com/propfinder/listing-api/pkg/kv"
)

// HeroImagesKey is the kv namespace holding the hero image collection.
const HeroImagesKey = "hero_images"

// NewHeroCollection builds the hero image store over the given kv backend.
func NewHeroCollection(store kv.Store, logger *zap.Logger) *Collection[models.HeroImage] {
	return NewCollection(store, logger, Descriptor[models.HeroImage]{
		Key:  HeroImagesKey,
		Seed: defaultHeroImages,
		ID:   func(h models.HeroImage) string { return h.ID },
		SetID: func(h models.HeroImage, id string) models.HeroImage {
			h.ID = id
			return h
		},
		Clone: func(h models.HeroImage) models.HeroImage { return h },
	})
}

var defaultHeroImages = []models.HeroImage{
	{
		ID:          "1",
		URL:         "/modern-luxury-living-room.png",
		Title:       "Find Your Dream Property with PropFinder",
		Description: "Browse thousands of verified properties and find your perfect home today.",
		UploadedBy:  "system",
	},
	{
		ID:          "2",
		URL:         "/luxury-apartment-interior.png",
		Title:       "Verified Properties Only",
		Description: "Every listing is manually verified by our team for authenticity and quality.",
		UploadedBy:  "system",
	},
	{
		ID:          "3",
		URL:         "/modern-apartment-bedroom.png",
		Title:       "Direct Connection",
		Description: "Connect directly with property managers for the best deals and transparency.",
		UploadedBy:  "system",
	},
}
