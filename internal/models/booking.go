package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking statuses
const (
	BookingPending   = "Pending"
	BookingConfirmed = "Confirmed"
	BookingCancelled = "Cancelled"
	BookingCompleted = "Completed"
)

// ValidBookingStatus reports whether s is a known booking status.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// Booking represents a customer's reservation against a destination.
// DestinationName is denormalized at creation time; there is no FK cascade.
type Booking struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	UserID          *uuid.UUID `json:"userId" db:"user_id"`
	CustomerName    string     `json:"customerName" db:"customer_name"`
	Email           string     `json:"email" db:"email"`
	Phone           string     `json:"phone,omitempty" db:"phone"`
	DestinationID   *uuid.UUID `json:"destinationId" db:"destination_id"`
	DestinationName string     `json:"destinationName" db:"destination_name"`
	Date            string     `json:"date" db:"date"`
	Guests          int        `json:"guests" db:"guests"`
	TotalPrice      float64    `json:"totalPrice" db:"total_price"`
	PointsUsed      int        `json:"pointsUsed" db:"points_used"`
	PointsEarned    int        `json:"pointsEarned" db:"points_earned"`
	Status          string     `json:"status" db:"status"`
	PaymentMethod   string     `json:"paymentMethod" db:"payment_method"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
}
