package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripai-backend/internal/models"
)

func newTestUser(balance int) *models.User {
	now := time.Now()
	return &models.User{
		ID:            uuid.New(),
		Name:          "Test User",
		Email:         uuid.NewString() + "@example.com",
		Role:          models.RoleUser,
		WalletBalance: balance,
		JoinedAt:      now.Format("2006-01-02"),
		Status:        models.UserStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestMemoryUserStore_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := newTestUser(100)
	first.Email = "dup@example.com"
	require.NoError(t, store.Users().Create(ctx, first))

	second := newTestUser(100)
	second.Email = "DUP@Example.com"
	err := store.Users().Create(ctx, second)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMemoryUserStore_GetByEmailCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	user := newTestUser(100)
	user.Email = "casey@example.com"
	require.NoError(t, store.Users().Create(ctx, user))

	got, err := store.Users().GetByEmail(ctx, "Casey@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAdjustWalletBalance(t *testing.T) {
	tests := []struct {
		name        string
		balance     int
		debit       int
		credit      int
		wantBalance int
		wantErr     error
	}{
		{name: "credit only", balance: 1000, debit: 0, credit: 250, wantBalance: 1250},
		{name: "debit and credit", balance: 1000, debit: 500, credit: 300, wantBalance: 800},
		{name: "debit to zero", balance: 500, debit: 500, credit: 0, wantBalance: 0},
		{name: "insufficient balance", balance: 100, debit: 500, credit: 300, wantErr: ErrInsufficientBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewMemoryStore()
			user := newTestUser(tt.balance)
			require.NoError(t, store.Users().Create(ctx, user))

			got, err := store.Users().AdjustWalletBalance(ctx, user.ID, tt.debit, tt.credit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				// A failed adjustment must leave the balance untouched.
				after, getErr := store.Users().GetByID(ctx, user.ID)
				require.NoError(t, getErr)
				assert.Equal(t, tt.balance, after.WalletBalance)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBalance, got)
		})
	}
}

func TestAdjustWalletBalance_UnknownUser(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Users().AdjustWalletBalance(context.Background(), uuid.New(), 10, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdjustWalletBalance_ConcurrentDebits(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	user := newTestUser(1000)
	require.NoError(t, store.Users().Create(ctx, user))

	// 20 goroutines each try to debit 100 from a 1000 point wallet. Exactly
	// 10 must succeed, and the wallet must never go negative.
	const workers = 20
	var wg sync.WaitGroup
	successes := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Users().AdjustWalletBalance(ctx, user.ID, 100, 0); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	count := 0
	for range successes {
		count++
	}
	assert.Equal(t, 10, count)

	after, err := store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.WalletBalance)
}

func TestMemoryBookingStore_ListFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	alice := newTestUser(0)
	bob := newTestUser(0)
	require.NoError(t, store.Users().Create(ctx, alice))
	require.NoError(t, store.Users().Create(ctx, bob))

	mkBooking := func(userID uuid.UUID, createdAt time.Time) *models.Booking {
		return &models.Booking{
			ID:              uuid.New(),
			UserID:          &userID,
			CustomerName:    "Someone",
			Email:           "someone@example.com",
			DestinationName: "Somewhere",
			Date:            "2026-01-01",
			Guests:          1,
			TotalPrice:      100,
			Status:          models.BookingConfirmed,
			PaymentMethod:   "Credit Card",
			CreatedAt:       createdAt,
		}
	}

	base := time.Now()
	older := mkBooking(alice.ID, base.Add(-time.Hour))
	newer := mkBooking(alice.ID, base)
	other := mkBooking(bob.ID, base.Add(-30*time.Minute))
	require.NoError(t, store.Bookings().Create(ctx, older))
	require.NoError(t, store.Bookings().Create(ctx, newer))
	require.NoError(t, store.Bookings().Create(ctx, other))

	all, err := store.Bookings().List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, newer.ID, all[0].ID)

	mine, err := store.Bookings().List(ctx, &alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, newer.ID, mine[0].ID)
	assert.Equal(t, older.ID, mine[1].ID)
}

func TestMemoryNotificationStore_MarkReadGuardsOwner(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	owner := uuid.New()
	stranger := uuid.New()
	n := &models.Notification{
		ID:        uuid.New(),
		UserID:    owner,
		Type:      models.NotifyBookingCreated,
		Title:     "Booking Received",
		Message:   "test",
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Notifications().Create(ctx, n))

	assert.ErrorIs(t, store.Notifications().MarkRead(ctx, n.ID, stranger), ErrNotFound)
	require.NoError(t, store.Notifications().MarkRead(ctx, n.ID, owner))

	list, err := store.Notifications().ListByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Read)
}

func TestMemoryDestinationStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	d := &models.Destination{ID: uuid.New(), Name: "Test", Price: 100, CreatedAt: time.Now()}
	require.NoError(t, store.Destinations().Create(ctx, d))
	require.NoError(t, store.Destinations().Delete(ctx, d.ID))

	// Deleting again reports not found.
	assert.ErrorIs(t, store.Destinations().Delete(ctx, d.ID), ErrNotFound)
	_, err := store.Destinations().GetByID(ctx, d.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
