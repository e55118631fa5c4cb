package store

import (
	"go.uber.org/zap"

	"github.com/propfinder/listing-api/internal/models"
	"github.com/propfinder/listing-api/pkg/kv"
)

// PropertiesKey is the kv namespace holding the property collection.
const PropertiesKey = "properties"

// NewPropertyCollection builds the property store over the given kv backend.
func NewPropertyCollection(store kv.Store, logger *zap.Logger) *Collection[models.Property] {
	return NewCollection(store, logger, Descriptor[models.Property]{
		Key:  PropertiesKey,
		Seed: defaultProperties,
		ID:   func(p models.Property) string { return p.ID },
		SetID: func(p models.Property, id string) models.Property {
			p.ID = id
			return p
		},
		Clone: cloneProperty,
	})
}

func cloneProperty(p models.Property) models.Property {
	out := p
	if p.Images != nil {
		out.Images = append([]string(nil), p.Images...)
	}
	if p.Amenities != nil {
		out.Amenities = append([]string(nil), p.Amenities...)
	}
	return out
}

// defaultProperties seeds the store when durable storage is empty or
// unreadable on first load.
var defaultProperties = []models.Property{
	{
		ID:       "1",
		Title:    "Luxury 3BHK Apartment in Bandra",
		Location: "Mumbai, Bandra West",
		Price:    85000,
		BHK:      "3BHK",
		Area:     2100,
		Description: "Beautiful apartment with sea view, modern amenities, fully furnished. " +
			"Located in prime Bandra location with easy access to restaurants, malls, and transport.",
		Images:    []string{"/luxury-apartment-interior.png", "/luxury-apartment-kitchen.png", "/contemporary-bedroom.jpg"},
		Status:    models.StatusApproved,
		ManagerID: "manager@test.com",
		Amenities: []string{"Parking", "Gym", "Swimming Pool", "Security", "Power Backup"},
	},
	{
		ID:       "2",
		Title:    "Modern 2BHK with Garden View",
		Location: "Bangalore, Koramangala",
		Price:    45000,
		BHK:      "2BHK",
		Area:     1200,
		Description: "Contemporary 2BHK apartment with modern kitchen, spacious living area. " +
			"Close to cafes, tech parks, and shopping centers.",
		Images:    []string{"/modern-apartment-bedroom.png", "/modern-kitchen.png", "/modern-luxury-living-room.png"},
		Status:    models.StatusApproved,
		ManagerID: "manager@test.com",
		Amenities: []string{"Gym", "Parking", "WiFi", "Community Room"},
	},
	{
		ID:       "3",
		Title:    "Premium Studio Apartment",
		Location: "Delhi, Connaught Place",
		Price:    35000,
		BHK:      "1BHK",
		Area:     650,
		Description: "Cozy studio apartment in the heart of the city. " +
			"Perfect for professionals, close to office complexes and entertainment.",
		Images:    []string{"/cozy-studio-apartment.png", "/apartment-balcony-sea-view.jpg"},
		Status:    models.StatusApproved,
		ManagerID: "manager@test.com",
		Amenities: []string{"Parking", "Security", "Internet"},
	},
	{
		ID:       "4",
		Title:    "Luxury Villa with Private Garden",
		Location: "Pune, Baner Road",
		Price:    120000,
		BHK:      "4BHK",
		Area:     3500,
		Description: "Spacious villa with private garden, home theater, modern architecture. " +
			"Perfect for families seeking luxury and privacy.",
		Images:    []string{"/luxury-villa-exterior.png", "/luxurious-villa-living-room.png", "/lush-villa-garden.png"},
		Status:    models.StatusApproved,
		ManagerID: "manager@test.com",
		Amenities: []string{"Private Garden", "Garage", "Home Theater", "Study Room", "Modern Kitchen"},
	},
	{
		ID:          "5",
		Title:       "Compact Kitchen Premium Apartment",
		Location:    "Hyderabad, Kondapur",
		Price:       38000,
		BHK:         "2BHK",
		Area:        900,
		Description: "Well-designed 2BHK with smart spaces. Located near IT companies and shopping malls.",
		Images:      []string{"/compact-kitchen.jpg", "/luxury-bedroom.png"},
		Status:      models.StatusApproved,
		ManagerID:   "manager@test.com",
		Amenities:   []string{"Parking", "Gym", "Security"},
	},
	{
		ID:          "6",
		Title:       "Sky Lounge View Highrise",
		Location:    "Mumbai, Powai",
		Price:       95000,
		BHK:         "3BHK",
		Area:        2200,
		Description: "Premium highrise apartment with stunning sky lounge views. Equipped with all modern amenities.",
		Images:      []string{"/sky-lounge-view.jpg", "/premium-highrise-apartment.jpg"},
		Status:      models.StatusApproved,
		ManagerID:   "manager@test.com",
		Amenities:   []string{"Sky Lounge", "Gym", "Swimming Pool", "Parking", "Concierge"},
	},
	{
		ID:       "7",
		Title:    "Beachside 2BHK Paradise",
		Location: "Goa, Candolim",
		Price:    55000,
		BHK:      "2BHK",
		Area:     1100,
		Description: "Wake up to the sound of waves in this beautiful beachside property. " +
			"Fully furnished with sea-facing balcony.",
		Images:    []string{"/apartment-balcony-sea-view.jpg", "/modern-luxury-living-room.png"},
		Status:    models.StatusPending,
		ManagerID: "manager@test.com",
		Amenities: []string{"Beach Access", "Parking", "Security", "Swimming Pool"},
	},
	{
		ID:       "8",
		Title:    "Smart Home 3BHK with Automation",
		Location: "Bangalore, Whitefield",
		Price:    68000,
		BHK:      "3BHK",
		Area:     1800,
		Description: "Experience the future with this fully automated smart home. " +
			"Voice-controlled lights, temperature, and security systems.",
		Images:    []string{"/modern-apartment-bedroom.png", "/luxury-apartment-kitchen.png"},
		Status:    models.StatusPending,
		ManagerID: "manager@test.com",
		Amenities: []string{"Smart Home Automation", "Gym", "Parking", "Security", "Power Backup"},
	},
	{
		ID:       "9",
		Title:    "Penthouse with Rooftop Garden",
		Location: "Delhi, Vasant Kunj",
		Price:    150000,
		BHK:      "4BHK",
		Area:     4000,
		Description: "Luxurious penthouse with private rooftop garden and panoramic city views. " +
			"Premium finishes throughout.",
		Images:    []string{"/luxurious-villa-living-room.png", "/lush-villa-garden.png"},
		Status:    models.StatusPending,
		ManagerID: "manager@test.com",
		Amenities: []string{"Rooftop Garden", "Private Elevator", "Jacuzzi", "Home Theater", "Modular Kitchen"},
	},
	{
		ID:       "10",
		Title:    "Budget-Friendly 1BHK",
		Location: "Pune, Kothrud",
		Price:    18000,
		BHK:      "1BHK",
		Area:     500,
		Description: "Affordable yet comfortable living space. " +
			"No proper maintenance, limited amenities, and basic furnishing.",
		Images:    []string{"/cozy-studio-apartment.png"},
		Status:    models.StatusRejected,
		ManagerID: "manager@test.com",
		Amenities: []string{"Parking"},
	},
	{
		ID:          "11",
		Title:       "Old Heritage Bungalow",
		Location:    "Mumbai, Colaba",
		Price:       200000,
		BHK:         "5BHK",
		Area:        5000,
		Description: "Historic property with structural issues. Requires extensive renovation and modernization.",
		Images:      []string{"/luxury-villa-exterior.png"},
		Status:      models.StatusRejected,
		ManagerID:   "manager@test.com",
		Amenities:   []string{"Large Garden", "Heritage Structure"},
	},
}
