package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tripai-backend/internal/models"
)

// Seed populates an empty store with the demo dataset. Collections that
// already hold data are left untouched, so the endpoint is safe to call
// repeatedly.
func Seed(ctx context.Context, store Store) error {
	users, err := store.Users().List(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	var demoUser *models.User
	if len(users) == 0 {
		demoUser, err = seedUsers(ctx, store.Users())
		if err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	} else {
		for i := range users {
			if users[i].Email == "user@demo.com" {
				demoUser = &users[i]
				break
			}
		}
	}

	destinations, err := store.Destinations().List(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	var goa *models.Destination
	if len(destinations) == 0 {
		goa, err = seedDestinations(ctx, store.Destinations())
		if err != nil {
			return fmt.Errorf("seed destinations: %w", err)
		}
	}

	bookings, err := store.Bookings().List(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if len(bookings) == 0 && demoUser != nil {
		if err := seedBookings(ctx, store.Bookings(), demoUser, goa); err != nil {
			return fmt.Errorf("seed bookings: %w", err)
		}
	}

	return nil
}

func seedUsers(ctx context.Context, users UserStore) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	demo := &models.User{
		ID:            uuid.New(),
		Name:          "Demo User",
		Email:         "user@demo.com",
		PasswordHash:  string(hash),
		Role:          models.RoleUser,
		WalletBalance: 2500,
		JoinedAt:      "2024-01-15",
		Avatar:        "https://ui-avatars.com/api/?name=Demo+User&background=0D8ABC&color=fff",
		Status:        models.UserStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := users.Create(ctx, demo); err != nil {
		return nil, err
	}
	return demo, nil
}

func seedDestinations(ctx context.Context, destinations DestinationStore) (*models.Destination, error) {
	now := time.Now()
	seedData := []models.Destination{
		{
			Name:         "Goa Beach Paradise",
			Country:      "India",
			Type:         models.TypeBeach,
			Price:        18500,
			PriceDisplay: "₹18,500",
			Rating:       4.8,
			ReviewsCount: 342,
			Image:        "https://images.unsplash.com/photo-1512343879784-a960bf40e7f2?w=800&q=80",
			Gallery:      []string{"https://images.unsplash.com/photo-1544234033-d922650ee47b?w=800"},
			Description:  "Experience the perfect blend of Portuguese culture and Indian heritage. Our AI has curated a mix of hidden beaches, vibrant night markets, and historical forts just for you.",
			Amenities:    []string{"WiFi", "Pool", "Beach Access", "Bar", "Spa"},
			Inclusions:   []string{"4 Star Accommodation", "Daily Breakfast", "Airport Transfers"},
			Exclusions:   []string{"Airfare", "Personal Expenses", "Lunch & Dinner"},
			Itinerary: []models.ItineraryDay{
				{Day: 1, Title: "Arrival", Activities: []string{"Airport Pickup", "Check-in at Taj Resort"}},
				{Day: 2, Title: "North Goa Beaches", Activities: []string{"Anjuna Beach", "Baga Beach Water Sports"}},
				{Day: 3, Title: "South Goa Culture", Activities: []string{"Basilica of Bom Jesus", "Miramar Beach"}},
				{Day: 4, Title: "Departure", Activities: []string{"Breakfast", "Airport Transfer"}},
			},
			IsFeatured: true,
		},
		{
			Name:         "Manali Snow Peaks",
			Country:      "India",
			Type:         models.TypeMountain,
			Price:        12999,
			PriceDisplay: "₹12,999",
			Rating:       4.6,
			ReviewsCount: 128,
			Image:        "https://images.unsplash.com/photo-1626621341517-bbf3d9990a23?w=800&q=80",
			Description:  "Snow-capped mountains, river adventures, and cozy cafes await you in Manali.",
			Amenities:    []string{"Heater", "Bonfire", "Trekking Guide"},
			Inclusions:   []string{"3 Star Hotel", "Breakfast & Dinner", "Sightseeing Cab"},
			Exclusions:   []string{"Rohtang Permit", "Lunch"},
			Itinerary: []models.ItineraryDay{
				{Day: 1, Title: "Arrival", Activities: []string{"Volvo Stand Pickup", "Check-in"}},
				{Day: 2, Title: "Solang Valley", Activities: []string{"Skiing", "Paragliding", "ATV Ride"}},
				{Day: 3, Title: "Departure", Activities: []string{"Mall Road", "Bus to Delhi"}},
			},
		},
		{
			Name:         "Royal Jaipur",
			Country:      "India",
			Type:         models.TypeCity,
			Price:        9500,
			PriceDisplay: "₹9,500",
			Rating:       4.5,
			ReviewsCount: 512,
			Image:        "https://images.unsplash.com/photo-1477587458883-47145ed94245?w=800&q=80",
			Description:  "The Pink City offers a royal experience with its majestic forts and palaces.",
			Amenities:    []string{"Heritage Stay", "Guide", "Cultural Show"},
			Inclusions:   []string{"Heritage Hotel", "Guide Fees"},
			Exclusions:   []string{"Entry Tickets", "Lunch"},
			Itinerary: []models.ItineraryDay{
				{Day: 1, Title: "City Palace", Activities: []string{"Check-in", "City Palace Tour"}},
				{Day: 2, Title: "Amber Fort", Activities: []string{"Elephant Ride", "Fort Tour"}},
				{Day: 3, Title: "Departure", Activities: []string{"Hawa Mahal", "Airport Drop"}},
			},
		},
		{
			Name:         "Kerala Backwaters",
			Country:      "India",
			Type:         models.TypeNature,
			Price:        22000,
			PriceDisplay: "₹22,000",
			Rating:       4.9,
			ReviewsCount: 89,
			Image:        "https://images.unsplash.com/photo-1602216056096-3b40cc0c9944?w=800&q=80",
			Description:  "Relax in a luxury houseboat as you cruise through the serene backwaters of Alleppey.",
			Amenities:    []string{"Houseboat", "Ayurvedic Spa", "All Meals"},
			Inclusions:   []string{"Houseboat Stay", "All Meals", "Canoe Ride"},
			Exclusions:   []string{"Airfare", "Massage"},
			Itinerary: []models.ItineraryDay{
				{Day: 1, Title: "Alleppey", Activities: []string{"Check-in Houseboat", "Lunch on Board"}},
				{Day: 2, Title: "Cruise", Activities: []string{"Village Walk", "Sunset Cruise"}},
			},
		},
		{
			Name:         "Bali Tropical Escape",
			Country:      "Indonesia",
			Type:         models.TypeHoneymoon,
			Price:        45000,
			PriceDisplay: "₹45,000",
			Rating:       4.9,
			ReviewsCount: 1024,
			Image:        "https://images.unsplash.com/photo-1537996194471-e657df975ab4?w=800&q=80",
			Description:  "Experience the magic of Bali with private pool villas, floating breakfasts, and sunset temple tours.",
			Amenities:    []string{"Private Pool", "Spa", "WiFi", "Bar"},
			Inclusions:   []string{"Villa Stay", "Floating Breakfast", "Airport Transfers"},
			Exclusions:   []string{"Flights", "Visa", "Lunch"},
			Itinerary: []models.ItineraryDay{
				{Day: 1, Title: "Arrival", Activities: []string{"Airport Pickup", "Villa Check-in"}},
				{Day: 2, Title: "Ubud Tour", Activities: []string{"Monkey Forest", "Rice Terraces"}},
				{Day: 3, Title: "Nusa Penida", Activities: []string{"Speedboat", "Kelingking Beach"}},
				{Day: 4, Title: "Departure", Activities: []string{"Souvenir Shopping", "Airport Drop"}},
			},
		},
		{
			Name:         "Dubai Desert Safari",
			Country:      "UAE",
			Type:         models.TypeAdventure,
			Price:        35000,
			PriceDisplay: "₹35,000",
			Rating:       4.6,
			ReviewsCount: 450,
			Image:        "https://images.unsplash.com/photo-1512453979798-5ea904ac66de?w=800&q=80",
			Description:  "Skyscrapers, shopping, and sand dunes. The ultimate modern adventure.",
			Amenities:    []string{"Pool", "Gym", "WiFi"},
			Inclusions:   []string{"4 Star Hotel", "Desert Safari BBQ", "Burj Khalifa Ticket"},
			Exclusions:   []string{"Flights", "Visa", "Tourism Dirham"},
			Itinerary: []models.ItineraryDay{
				{Day: 1, Title: "Arrival", Activities: []string{"Airport Pickup", "Dhow Cruise Dinner"}},
				{Day: 2, Title: "City Tour", Activities: []string{"Burj Khalifa", "Dubai Mall"}},
				{Day: 3, Title: "Desert Safari", Activities: []string{"Dune Bashing", "BBQ Dinner"}},
				{Day: 4, Title: "Departure", Activities: []string{"Gold Souk", "Airport Drop"}},
			},
		},
	}

	var first *models.Destination
	for i := range seedData {
		d := seedData[i]
		d.ID = uuid.New()
		if d.Gallery == nil {
			d.Gallery = []string{}
		}
		d.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		d.UpdatedAt = d.CreatedAt
		if err := destinations.Create(ctx, &d); err != nil {
			return nil, err
		}
		if first == nil {
			first = &d
		}
	}
	return first, nil
}

func seedBookings(ctx context.Context, bookings BookingStore, demoUser *models.User, goa *models.Destination) error {
	booking := models.Booking{
		ID:              uuid.New(),
		UserID:          &demoUser.ID,
		CustomerName:    demoUser.Name,
		Email:           demoUser.Email,
		Phone:           "9876543210",
		DestinationName: "Goa Beach Paradise",
		TotalPrice:      45000,
		Guests:          2,
		Date:            "2024-12-10",
		Status:          models.BookingConfirmed,
		PaymentMethod:   "Credit Card",
		PointsUsed:      0,
		PointsEarned:    2250,
		CreatedAt:       time.Now(),
	}
	if goa != nil {
		booking.DestinationID = &goa.ID
	}
	return bookings.Create(ctx, &booking)
}
