package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tripai-backend/internal/config"
	"tripai-backend/internal/dto"
	"tripai-backend/internal/models"
	"tripai-backend/internal/repository"
)

const defaultDestinationImage = "https://images.unsplash.com/photo-1476514525535-07fb3b4ae5f1?w=800&q=80"

// CatalogService manages the destination catalog.
type CatalogService struct {
	destinations repository.DestinationStore
	cfg          *config.Config
	printer      *message.Printer
}

func NewCatalogService(store repository.Store, cfg *config.Config) *CatalogService {
	return &CatalogService{
		destinations: store.Destinations(),
		cfg:          cfg,
		printer:      message.NewPrinter(language.English),
	}
}

// List returns the full catalog.
func (s *CatalogService) List(ctx context.Context) ([]models.Destination, error) {
	return s.destinations.List(ctx)
}

// Get returns one destination by ID.
func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*models.Destination, error) {
	return s.destinations.GetByID(ctx, id)
}

// Create adds a destination, filling unset fields with catalog defaults.
func (s *CatalogService) Create(ctx context.Context, req *dto.CreateDestinationRequest) (*models.Destination, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}

	destType := req.Type
	if destType == "" {
		destType = models.TypeAdventure
	} else if !models.ValidDestinationType(destType) {
		return nil, fmt.Errorf("%w: unknown destination type %q", ErrValidation, destType)
	}

	country := strings.TrimSpace(req.Country)
	if country == "" {
		return nil, fmt.Errorf("%w: country is required", ErrValidation)
	}

	now := time.Now()
	d := &models.Destination{
		ID:           uuid.New(),
		Name:         name,
		Country:      country,
		Type:         destType,
		Price:        req.Price,
		PriceDisplay: req.PriceDisplay,
		Rating:       req.Rating,
		Image:        req.Image,
		Gallery:      req.Gallery,
		Description:  req.Description,
		Amenities:    req.Amenities,
		Inclusions:   req.Inclusions,
		Exclusions:   req.Exclusions,
		Itinerary:    req.Itinerary,
		IsFeatured:   req.IsFeatured,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.applyDefaults(d)

	if err := s.destinations.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// applyDefaults fills the fields a minimal create request leaves empty so
// every stored destination renders as a complete package.
func (s *CatalogService) applyDefaults(d *models.Destination) {
	if d.PriceDisplay == "" {
		d.PriceDisplay = s.FormatPrice(d.Price)
	}
	if d.Rating == 0 {
		d.Rating = 5.0
	}
	if d.Image == "" {
		d.Image = defaultDestinationImage
	}
	if d.Gallery == nil {
		d.Gallery = []string{}
	}
	if d.Description == "" {
		d.Description = "Experience an unforgettable journey with our curated travel package."
	}
	if len(d.Amenities) == 0 {
		d.Amenities = []string{"WiFi", "Breakfast", "Pool", "Guide"}
	}
	if len(d.Inclusions) == 0 {
		d.Inclusions = []string{"Accommodation", "Daily Breakfast", "Airport Transfers", "English Speaking Guide"}
	}
	if len(d.Exclusions) == 0 {
		d.Exclusions = []string{"International Flights", "Personal Expenses", "Travel Insurance"}
	}
	if len(d.Itinerary) == 0 {
		d.Itinerary = []models.ItineraryDay{
			{Day: 1, Title: "Arrival & Welcome", Activities: []string{"Airport Pickup", "Hotel Check-in", "Welcome Drink", "Relaxation"}, Meals: []string{"Dinner"}},
			{Day: 2, Title: "City Exploration", Activities: []string{"Guided City Tour", "Local Cuisine Lunch", "Visit Famous Landmarks"}, Meals: []string{"Breakfast", "Lunch"}},
			{Day: 3, Title: "Departure", Activities: []string{"Breakfast Buffet", "Souvenir Shopping", "Airport Transfer"}, Meals: []string{"Breakfast"}},
		}
	}
}

// FormatPrice renders a price with the configured currency symbol and
// thousands separators, e.g. "₹18,500".
func (s *CatalogService) FormatPrice(price float64) string {
	return s.printer.Sprintf("%s%d", s.cfg.Wallet.CurrencySymbol, int64(price))
}

// Update applies the non-nil fields of req to the destination.
func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDestinationRequest) (*models.Destination, error) {
	d, err := s.destinations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Country != nil {
		d.Country = *req.Country
	}
	if req.Type != nil {
		if !models.ValidDestinationType(*req.Type) {
			return nil, fmt.Errorf("%w: unknown destination type %q", ErrValidation, *req.Type)
		}
		d.Type = *req.Type
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
		}
		d.Price = *req.Price
		if req.PriceDisplay == nil {
			d.PriceDisplay = s.FormatPrice(d.Price)
		}
	}
	if req.PriceDisplay != nil {
		d.PriceDisplay = *req.PriceDisplay
	}
	if req.Rating != nil {
		d.Rating = *req.Rating
	}
	if req.Image != nil {
		d.Image = *req.Image
	}
	if req.Gallery != nil {
		d.Gallery = *req.Gallery
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.Amenities != nil {
		d.Amenities = *req.Amenities
	}
	if req.Inclusions != nil {
		d.Inclusions = *req.Inclusions
	}
	if req.Exclusions != nil {
		d.Exclusions = *req.Exclusions
	}
	if req.Itinerary != nil {
		d.Itinerary = *req.Itinerary
	}
	if req.IsFeatured != nil {
		d.IsFeatured = *req.IsFeatured
	}
	d.UpdatedAt = time.Now()

	if err := s.destinations.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes a destination from the catalog.
func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.destinations.Delete(ctx, id)
}
