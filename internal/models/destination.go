package models

import (
	"time"

	"github.com/google/uuid"
)

// Destination trip categories
const (
	TypeBeach     = "Beach"
	TypeMountain  = "Mountain"
	TypeCity      = "City"
	TypeNature    = "Nature"
	TypeAdventure = "Adventure"
	TypeHoneymoon = "Honeymoon"
)

// ValidDestinationType reports whether t is one of the supported trip categories.
func ValidDestinationType(t string) bool {
	switch t {
	case TypeBeach, TypeMountain, TypeCity, TypeNature, TypeAdventure, TypeHoneymoon:
		return true
	}
	return false
}

// ItineraryDay is one day of a destination's planned itinerary
type ItineraryDay struct {
	Day        int      `json:"day"`
	Title      string   `json:"title"`
	Activities []string `json:"activities"`
	Meals      []string `json:"meals,omitempty"`
}

// Destination represents a bookable travel package
type Destination struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	Name         string         `json:"name" db:"name"`
	Country      string         `json:"country" db:"country"`
	Description  string         `json:"description" db:"description"`
	Price        float64        `json:"price" db:"price"`
	PriceDisplay string         `json:"priceDisplay" db:"price_display"`
	Type         string         `json:"type" db:"type"`
	Rating       float64        `json:"rating" db:"rating"`
	ReviewsCount int            `json:"reviewsCount" db:"reviews_count"`
	Image        string         `json:"image" db:"image"`
	Gallery      []string       `json:"gallery" db:"gallery"`
	Amenities    []string       `json:"amenities" db:"amenities"`
	Inclusions   []string       `json:"inclusions" db:"inclusions"`
	Exclusions   []string       `json:"exclusions" db:"exclusions"`
	Itinerary    []ItineraryDay `json:"itinerary" db:"itinerary"`
	IsFeatured   bool           `json:"isFeatured" db:"is_featured"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}
