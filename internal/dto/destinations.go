package dto

import "tripai-backend/internal/models"

// CreateDestinationRequest is the payload for POST /api/destinations.
// Only name, country and price are required; everything else falls back
// to catalog defaults.
type CreateDestinationRequest struct {
	Name         string                `json:"name" example:"Goa Beach Paradise"`
	Country      string                `json:"country" example:"India"`
	Type         string                `json:"type" example:"Beach"`
	Price        float64               `json:"price" example:"18500"`
	PriceDisplay string                `json:"priceDisplay,omitempty"`
	Rating       float64               `json:"rating,omitempty"`
	Image        string                `json:"image,omitempty"`
	Gallery      []string              `json:"gallery,omitempty"`
	Description  string                `json:"description,omitempty"`
	Amenities    []string              `json:"amenities,omitempty"`
	Inclusions   []string              `json:"inclusions,omitempty"`
	Exclusions   []string              `json:"exclusions,omitempty"`
	Itinerary    []models.ItineraryDay `json:"itinerary,omitempty"`
	IsFeatured   bool                  `json:"isFeatured,omitempty"`
}

// UpdateDestinationRequest is the payload for PUT /api/destinations/{id}.
// Nil fields are left unchanged.
type UpdateDestinationRequest struct {
	Name         *string                `json:"name,omitempty"`
	Country      *string                `json:"country,omitempty"`
	Type         *string                `json:"type,omitempty"`
	Price        *float64               `json:"price,omitempty"`
	PriceDisplay *string                `json:"priceDisplay,omitempty"`
	Rating       *float64               `json:"rating,omitempty"`
	Image        *string                `json:"image,omitempty"`
	Gallery      *[]string              `json:"gallery,omitempty"`
	Description  *string                `json:"description,omitempty"`
	Amenities    *[]string              `json:"amenities,omitempty"`
	Inclusions   *[]string              `json:"inclusions,omitempty"`
	Exclusions   *[]string              `json:"exclusions,omitempty"`
	Itinerary    *[]models.ItineraryDay `json:"itinerary,omitempty"`
	IsFeatured   *bool                  `json:"isFeatured,omitempty"`
}

// DestinationListResponse wraps a catalog listing.
type DestinationListResponse struct {
	Success bool                 `json:"success"`
	Data    []models.Destination `json:"data"`
}

// DestinationResponse wraps a single destination.
type DestinationResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    *models.Destination `json:"data"`
}
