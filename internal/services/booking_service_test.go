package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripai-backend/internal/dto"
	"tripai-backend/internal/models"
	"tripai-backend/internal/repository"
)

func seedWalletUser(t *testing.T, store repository.Store, balance int) *models.User {
	t.Helper()
	now := time.Now()
	user := &models.User{
		ID:            uuid.New(),
		Name:          "Wallet User",
		Email:         uuid.NewString() + "@example.com",
		Role:          models.RoleUser,
		WalletBalance: balance,
		JoinedAt:      now.Format("2006-01-02"),
		Status:        models.UserStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

func validBookingRequest(userID string) *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		UserID:          userID,
		CustomerName:    "Wallet User",
		Email:           "wallet@example.com",
		Phone:           "9876543210",
		DestinationName: "Goa Beach Paradise",
		Date:            "2026-12-10",
		Guests:          2,
		TotalPrice:      10000,
	}
}

func TestBookingCreate_ConfirmedSettlesWallet(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	user := seedWalletUser(t, store, 2500)
	svc := NewBookingService(store, nil, testConfig())

	req := validBookingRequest(user.ID.String())
	req.PointsUsed = 500

	booking, balance, err := svc.Create(ctx, req)
	require.NoError(t, err)

	// 2500 - 500 used + floor(10000 * 0.05) earned = 2500
	assert.Equal(t, 2500, balance)
	assert.Equal(t, 500, booking.PointsUsed)
	assert.Equal(t, 500, booking.PointsEarned)
	assert.Equal(t, models.BookingConfirmed, booking.Status)
	assert.Equal(t, "Credit Card", booking.PaymentMethod)

	after, err := store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2500, after.WalletBalance)
}

func TestBookingCreate_RewardRounding(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	user := seedWalletUser(t, store, 0)
	svc := NewBookingService(store, nil, testConfig())

	req := validBookingRequest(user.ID.String())
	req.TotalPrice = 18999 // 5% = 949.95, earned points round down

	booking, balance, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 949, booking.PointsEarned)
	assert.Equal(t, 949, balance)
}

func TestBookingCreate_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	user := seedWalletUser(t, store, 100)
	svc := NewBookingService(store, nil, testConfig())

	req := validBookingRequest(user.ID.String())
	req.PointsUsed = 500

	_, _, err := svc.Create(ctx, req)
	require.ErrorIs(t, err, ErrValidation)

	// Nothing was persisted and the wallet is untouched.
	bookings, listErr := store.Bookings().List(ctx, nil)
	require.NoError(t, listErr)
	assert.Empty(t, bookings)

	after, getErr := store.Users().GetByID(ctx, user.ID)
	require.NoError(t, getErr)
	assert.Equal(t, 100, after.WalletBalance)
}

func TestBookingCreate_PendingSkipsWallet(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	user := seedWalletUser(t, store, 1000)
	svc := NewBookingService(store, nil, testConfig())

	req := validBookingRequest(user.ID.String())
	req.Status = models.BookingPending
	req.PointsUsed = 500

	booking, balance, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 0, booking.PointsUsed)
	assert.Equal(t, 0, booking.PointsEarned)
	assert.Equal(t, 0, balance)

	after, err := store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000, after.WalletBalance)
}

func TestBookingCreate_UnknownUserBooksWithoutWallet(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewBookingService(store, nil, testConfig())

	req := validBookingRequest(uuid.NewString())

	booking, balance, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Nil(t, booking.UserID)
	assert.Equal(t, 0, balance)
	assert.Equal(t, 0, booking.PointsEarned)
}

func TestBookingCreate_GuestCheckout(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewBookingService(store, nil, testConfig())

	req := validBookingRequest("")
	req.Guests = 0

	booking, balance, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Nil(t, booking.UserID)
	assert.Equal(t, 1, booking.Guests)
	assert.Equal(t, 0, balance)
}

func TestBookingCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.CreateBookingRequest)
	}{
		{"missing customerName", func(r *dto.CreateBookingRequest) { r.CustomerName = "" }},
		{"missing email", func(r *dto.CreateBookingRequest) { r.Email = "" }},
		{"missing destinationName", func(r *dto.CreateBookingRequest) { r.DestinationName = "" }},
		{"missing date", func(r *dto.CreateBookingRequest) { r.Date = "" }},
		{"malformed date", func(r *dto.CreateBookingRequest) { r.Date = "10/12/2026" }},
		{"impossible date", func(r *dto.CreateBookingRequest) { r.Date = "2026-02-30" }},
		{"zero price", func(r *dto.CreateBookingRequest) { r.TotalPrice = 0 }},
		{"negative points", func(r *dto.CreateBookingRequest) { r.PointsUsed = -1 }},
		{"completed status on create", func(r *dto.CreateBookingRequest) { r.Status = models.BookingCompleted }},
		{"bogus status", func(r *dto.CreateBookingRequest) { r.Status = "Maybe" }},
		{"bad userId", func(r *dto.CreateBookingRequest) { r.UserID = "not-a-uuid" }},
	}

	store := repository.NewMemoryStore()
	svc := NewBookingService(store, nil, testConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBookingRequest("")
			tt.mutate(req)
			_, _, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestBookingCreate_EmitsNotifications(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	user := seedWalletUser(t, store, 1000)
	svc := NewBookingService(store, nil, testConfig())

	_, _, err := svc.Create(ctx, validBookingRequest(user.ID.String()))
	require.NoError(t, err)

	notifications, err := store.Notifications().ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	types := []string{notifications[0].Type, notifications[1].Type}
	assert.Contains(t, types, models.NotifyBookingCreated)
	assert.Contains(t, types, models.NotifyWalletCredited)
}

func TestBookingUpdate_CancelDoesNotRefund(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	user := seedWalletUser(t, store, 2500)
	svc := NewBookingService(store, nil, testConfig())

	req := validBookingRequest(user.ID.String())
	req.PointsUsed = 500
	booking, _, err := svc.Create(ctx, req)
	require.NoError(t, err)

	cancelled := models.BookingCancelled
	updated, err := svc.Update(ctx, booking.ID, &dto.UpdateBookingRequest{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, updated.Status)

	after, err := store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2500, after.WalletBalance)
}

func TestBookingUpdate_RejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewBookingService(store, nil, testConfig())

	booking, _, err := svc.Create(ctx, validBookingRequest(""))
	require.NoError(t, err)

	bogus := "Teleported"
	_, err = svc.Update(ctx, booking.ID, &dto.UpdateBookingRequest{Status: &bogus})
	assert.ErrorIs(t, err, ErrValidation)

	badDate := "next friday"
	_, err = svc.Update(ctx, booking.ID, &dto.UpdateBookingRequest{Date: &badDate})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBookingDelete_Idempotence(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewBookingService(store, nil, testConfig())

	booking, _, err := svc.Create(ctx, validBookingRequest(""))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, booking.ID))
	assert.ErrorIs(t, svc.Delete(ctx, booking.ID), repository.ErrNotFound)
}
