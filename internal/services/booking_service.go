package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tripai-backend/internal/config"
	"tripai-backend/internal/dto"
	"tripai-backend/internal/models"
	"tripai-backend/internal/repository"
	"tripai-backend/internal/utils"
)

// ConfirmationMailer is the subset of the mail service bookings need.
type ConfirmationMailer interface {
	SendBookingConfirmation(to, customerName, destinationName, date string, totalPrice float64, currencySymbol string) error
}

// BookingService creates bookings and keeps wallets reconciled with them.
type BookingService struct {
	bookings      repository.BookingStore
	users         repository.UserStore
	notifications repository.NotificationStore
	email         ConfirmationMailer
	cfg           *config.Config
}

func NewBookingService(store repository.Store, email ConfirmationMailer, cfg *config.Config) *BookingService {
	return &BookingService{
		bookings:      store.Bookings(),
		users:         store.Users(),
		notifications: store.Notifications(),
		email:         email,
		cfg:           cfg,
	}
}

// List returns bookings newest-first, optionally filtered by user.
func (s *BookingService) List(ctx context.Context, userID *uuid.UUID) ([]models.Booking, error) {
	return s.bookings.List(ctx, userID)
}

// Get returns one booking by ID.
func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// Create validates the request, settles the wallet movement for confirmed
// bookings and stores the booking. The returned balance is the wallet
// balance after points were debited and rewards credited; it is 0 when no
// wallet was touched.
//
// A confirmed booking by a known user debits pointsUsed and credits
// floor(totalPrice * rewardRate) in one atomic store operation, so two
// concurrent bookings can never overdraw a wallet. If storing the booking
// fails afterwards, the wallet movement is reversed.
func (s *BookingService) Create(ctx context.Context, req *dto.CreateBookingRequest) (*models.Booking, int, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, 0, err
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	status := req.Status
	if status == "" {
		status = models.BookingConfirmed
	}
	if status != models.BookingConfirmed && status != models.BookingPending {
		return nil, 0, fmt.Errorf("%w: new bookings must be Confirmed or Pending", ErrValidation)
	}

	guests := req.Guests
	if guests <= 0 {
		guests = 1
	}
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "Credit Card"
	}

	booking := &models.Booking{
		ID:              uuid.New(),
		CustomerName:    strings.TrimSpace(req.CustomerName),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:           req.Phone,
		DestinationName: strings.TrimSpace(req.DestinationName),
		Date:            date,
		Guests:          guests,
		TotalPrice:      req.TotalPrice,
		Status:          status,
		PaymentMethod:   paymentMethod,
		CreatedAt:       time.Now(),
	}
	if req.DestinationID != "" {
		destID, err := uuid.Parse(req.DestinationID)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid destinationId", ErrValidation)
		}
		booking.DestinationID = &destID
	}

	var user *models.User
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid userId", ErrValidation)
		}
		u, getErr := s.users.GetByID(ctx, userID)
		switch {
		case getErr == nil:
			user = u
			booking.UserID = &u.ID
		case errors.Is(getErr, repository.ErrNotFound):
			// A guest checkout with a stale ID still books, just without
			// wallet settlement.
			log.Warn().Str("user_id", req.UserID).Msg("booking references unknown user, skipping wallet settlement")
		default:
			return nil, 0, getErr
		}
	}

	updatedBalance := 0
	settled := false
	if status == models.BookingConfirmed && user != nil {
		booking.PointsUsed = req.PointsUsed
		booking.PointsEarned = int(math.Floor(req.TotalPrice * s.cfg.Wallet.RewardRate))

		balance, err := s.users.AdjustWalletBalance(ctx, user.ID, booking.PointsUsed, booking.PointsEarned)
		if err != nil {
			if errors.Is(err, repository.ErrInsufficientBalance) {
				return nil, 0, fmt.Errorf("%w: insufficient wallet balance for %d points", ErrValidation, booking.PointsUsed)
			}
			return nil, 0, err
		}
		updatedBalance = balance
		settled = true
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		if settled {
			// Reverse the settlement so the wallet does not drift from the
			// booking record.
			if _, revErr := s.users.AdjustWalletBalance(ctx, user.ID, booking.PointsEarned, booking.PointsUsed); revErr != nil {
				log.Error().Err(revErr).Str("user_id", user.ID.String()).Msg("failed to reverse wallet settlement")
			}
		}
		return nil, 0, err
	}

	if user != nil {
		s.notify(ctx, user.ID, models.NotifyBookingCreated, "Booking Received",
			fmt.Sprintf("Your booking for %s on %s has been received.", booking.DestinationName, booking.Date))
		if settled && booking.PointsEarned > 0 {
			s.notify(ctx, user.ID, models.NotifyWalletCredited, "Points Earned",
				fmt.Sprintf("You earned %d points on your %s booking.", booking.PointsEarned, booking.DestinationName))
		}
	}
	if status == models.BookingConfirmed && s.email != nil {
		if sendErr := s.email.SendBookingConfirmation(booking.Email, booking.CustomerName, booking.DestinationName,
			booking.Date, booking.TotalPrice, s.cfg.Wallet.CurrencySymbol); sendErr != nil {
			log.Error().Err(sendErr).Str("email", booking.Email).Msg("failed to send booking confirmation")
		}
	}

	log.Info().
		Str("booking_id", booking.ID.String()).
		Str("status", booking.Status).
		Int("points_used", booking.PointsUsed).
		Int("points_earned", booking.PointsEarned).
		Msg("booking created")
	return booking, updatedBalance, nil
}

// Update applies the non-nil fields of req to the booking. Status changes
// are validated against the known set; cancelling a confirmed booking does
// not refund points.
func (s *BookingService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateBookingRequest) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !models.ValidBookingStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown booking status %q", ErrValidation, *req.Status)
		}
		previous := booking.Status
		booking.Status = *req.Status
		if previous != booking.Status && booking.UserID != nil {
			s.notifyStatusChange(ctx, booking)
		}
	}
	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrValidation, err)
		}
		booking.Date = date
	}
	if req.Guests != nil {
		if *req.Guests <= 0 {
			return nil, fmt.Errorf("%w: guests must be positive", ErrValidation)
		}
		booking.Guests = *req.Guests
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Delete removes a booking record. Wallet movements are not reversed.
func (s *BookingService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.bookings.Delete(ctx, id)
}

func (s *BookingService) notifyStatusChange(ctx context.Context, booking *models.Booking) {
	var notifyType, title, msg string
	switch booking.Status {
	case models.BookingConfirmed:
		notifyType = models.NotifyBookingConfirmed
		title = "Booking Confirmed"
		msg = fmt.Sprintf("Your booking for %s is confirmed.", booking.DestinationName)
	case models.BookingCancelled:
		notifyType = models.NotifyBookingCancelled
		title = "Booking Cancelled"
		msg = fmt.Sprintf("Your booking for %s was cancelled.", booking.DestinationName)
	case models.BookingCompleted:
		notifyType = models.NotifyBookingCompleted
		title = "Trip Completed"
		msg = fmt.Sprintf("Hope you enjoyed %s! Leave a review to earn bonus points.", booking.DestinationName)
	default:
		return
	}
	s.notify(ctx, *booking.UserID, notifyType, title, msg)
}

// notify records an in-app notification; failures are logged, never fatal.
func (s *BookingService) notify(ctx context.Context, userID uuid.UUID, notifyType, title, msg string) {
	n := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      notifyType,
		Title:     title,
		Message:   msg,
		CreatedAt: time.Now(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to store notification")
	}
}

func validateBookingRequest(req *dto.CreateBookingRequest) error {
	var missing []string
	if strings.TrimSpace(req.CustomerName) == "" {
		missing = append(missing, "customerName")
	}
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(req.DestinationName) == "" {
		missing = append(missing, "destinationName")
	}
	if strings.TrimSpace(req.Date) == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	if req.TotalPrice <= 0 {
		return fmt.Errorf("%w: totalPrice must be positive", ErrValidation)
	}
	if req.PointsUsed < 0 {
		return fmt.Errorf("%w: pointsUsed cannot be negative", ErrValidation)
	}
	return nil
}
