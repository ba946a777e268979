package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"tripai-backend/internal/models"
)

// Sentinel errors surfaced by every store implementation. Handlers map them
// onto HTTP statuses (404, 409, 400).
var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
)

// UserStore provides access to user records.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// List returns all users, newest-first.
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	// AdjustWalletBalance atomically applies `- debit + credit` to the
	// user's wallet and returns the resulting balance. The debit is checked
	// against the current balance first; ErrInsufficientBalance means
	// nothing was changed. This is the single serialization point for
	// concurrent bookings against one wallet.
	AdjustWalletBalance(ctx context.Context, id uuid.UUID, debit, credit int) (int, error)
}

// DestinationStore provides access to the destination catalog.
type DestinationStore interface {
	Create(ctx context.Context, d *models.Destination) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Destination, error)
	List(ctx context.Context) ([]models.Destination, error)
	Update(ctx context.Context, d *models.Destination) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookingStore provides access to booking records.
type BookingStore interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	// List returns bookings newest-first; a non-nil userID filters to that
	// user's bookings.
	List(ctx context.Context, userID *uuid.UUID) ([]models.Booking, error)
	Update(ctx context.Context, b *models.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotificationStore provides access to in-app notifications.
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
	// MarkRead flips the read flag; the userID guards against marking
	// someone else's notification.
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}

// ResetStore provides access to pending password-reset codes.
type ResetStore interface {
	Create(ctx context.Context, r *models.PasswordReset) error
	// GetActive returns the most recent unused, unexpired code for a user.
	GetActive(ctx context.Context, userID uuid.UUID) (*models.PasswordReset, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
}

// Store aggregates the per-entity stores behind one injection point.
type Store interface {
	Users() UserStore
	Destinations() DestinationStore
	Bookings() BookingStore
	Notifications() NotificationStore
	Resets() ResetStore
	Ping(ctx context.Context) error
	Close()
}
