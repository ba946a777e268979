package dto

import "tripai-backend/internal/models"

// CreateBookingRequest is the payload for POST /api/bookings.
type CreateBookingRequest struct {
	UserID          string  `json:"userId,omitempty"`
	CustomerName    string  `json:"customerName" example:"Demo User"`
	Email           string  `json:"email" example:"user@demo.com"`
	Phone           string  `json:"phone,omitempty" example:"9876543210"`
	DestinationID   string  `json:"destinationId,omitempty"`
	DestinationName string  `json:"destinationName" example:"Goa Beach Paradise"`
	Date            string  `json:"date" example:"2026-12-10"`
	Guests          int     `json:"guests,omitempty" example:"2"`
	TotalPrice      float64 `json:"totalPrice" example:"18500"`
	PointsUsed      int     `json:"pointsUsed,omitempty" example:"500"`
	Status          string  `json:"status,omitempty" example:"Confirmed"`
	PaymentMethod   string  `json:"paymentMethod,omitempty" example:"Credit Card"`
}

// UpdateBookingRequest is the payload for PUT /api/bookings/{id}.
// Nil fields are left unchanged.
type UpdateBookingRequest struct {
	Status *string `json:"status,omitempty"`
	Date   *string `json:"date,omitempty"`
	Guests *int    `json:"guests,omitempty"`
}

// CreateBookingResponse echoes the stored booking together with the
// customer's wallet balance after points were applied.
type CreateBookingResponse struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message"`
	Booking        *models.Booking `json:"booking"`
	UpdatedBalance int             `json:"updatedBalance"`
}

// BookingListResponse wraps a booking listing.
type BookingListResponse struct {
	Success bool             `json:"success"`
	Data    []models.Booking `json:"data"`
}

// BookingResponse wraps a single booking.
type BookingResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    *models.Booking `json:"data"`
}
