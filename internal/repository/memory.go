package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tripai-backend/internal/models"
)

// MemoryStore is a map-backed Store used when no database is configured and
// as the test double for the service layer. All methods are safe for
// concurrent use; wallet adjustments are serialized by the users mutex.
type MemoryStore struct {
	users         memoryUsers
	destinations  memoryDestinations
	bookings      memoryBookings
	notifications memoryNotifications
	resets        memoryResets
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	s.users.byID = make(map[uuid.UUID]models.User)
	s.destinations.byID = make(map[uuid.UUID]models.Destination)
	s.bookings.byID = make(map[uuid.UUID]models.Booking)
	s.notifications.byID = make(map[uuid.UUID]models.Notification)
	s.resets.byID = make(map[uuid.UUID]models.PasswordReset)
	return s
}

func (s *MemoryStore) Users() UserStore                 { return &s.users }
func (s *MemoryStore) Destinations() DestinationStore   { return &s.destinations }
func (s *MemoryStore) Bookings() BookingStore           { return &s.bookings }
func (s *MemoryStore) Notifications() NotificationStore { return &s.notifications }
func (s *MemoryStore) Resets() ResetStore               { return &s.resets }

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }
func (s *MemoryStore) Close()                         {}

// ---- users ----

type memoryUsers struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]models.User
}

func (m *memoryUsers) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrDuplicateEmail
		}
	}
	m.byID[user.ID] = *user
	return nil
}

func (m *memoryUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *memoryUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.byID {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryUsers) List(ctx context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]models.User, 0, len(m.byID))
	for _, u := range m.byID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (m *memoryUsers) Update(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[user.ID]; !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now()
	m.byID[user.ID] = *user
	return nil
}

func (m *memoryUsers) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memoryUsers) AdjustWalletBalance(ctx context.Context, id uuid.UUID, debit, credit int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return 0, ErrNotFound
	}
	if u.WalletBalance < debit {
		return 0, ErrInsufficientBalance
	}
	u.WalletBalance = u.WalletBalance - debit + credit
	u.UpdatedAt = time.Now()
	m.byID[id] = u
	return u.WalletBalance, nil
}

// ---- destinations ----

type memoryDestinations struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]models.Destination
}

func (m *memoryDestinations) Create(ctx context.Context, d *models.Destination) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[d.ID] = *d
	return nil
}

func (m *memoryDestinations) GetByID(ctx context.Context, id uuid.UUID) (*models.Destination, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (m *memoryDestinations) List(ctx context.Context) ([]models.Destination, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Destination, 0, len(m.byID))
	for _, d := range m.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryDestinations) Update(ctx context.Context, d *models.Destination) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[d.ID]; !ok {
		return ErrNotFound
	}
	d.UpdatedAt = time.Now()
	m.byID[d.ID] = *d
	return nil
}

func (m *memoryDestinations) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// ---- bookings ----

type memoryBookings struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]models.Booking
}

func (m *memoryBookings) Create(ctx context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[b.ID] = *b
	return nil
}

func (m *memoryBookings) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (m *memoryBookings) List(ctx context.Context, userID *uuid.UUID) ([]models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Booking, 0, len(m.byID))
	for _, b := range m.byID {
		if userID != nil && (b.UserID == nil || *b.UserID != *userID) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryBookings) Update(ctx context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[b.ID]; !ok {
		return ErrNotFound
	}
	m.byID[b.ID] = *b
	return nil
}

func (m *memoryBookings) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// ---- notifications ----

type memoryNotifications struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]models.Notification
}

func (m *memoryNotifications) Create(ctx context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[n.ID] = *n
	return nil
}

func (m *memoryNotifications) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Notification, 0)
	for _, n := range m.byID {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryNotifications) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.byID[id]
	if !ok || n.UserID != userID {
		return ErrNotFound
	}
	n.Read = true
	m.byID[id] = n
	return nil
}

// ---- password resets ----

type memoryResets struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]models.PasswordReset
}

func (m *memoryResets) Create(ctx context.Context, r *models.PasswordReset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[r.ID] = *r
	return nil
}

func (m *memoryResets) GetActive(ctx context.Context, userID uuid.UUID) (*models.PasswordReset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *models.PasswordReset
	for _, r := range m.byID {
		if r.UserID != userID || r.Used || time.Now().After(r.ExpiresAt) {
			continue
		}
		r := r
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			latest = &r
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}

func (m *memoryResets) MarkUsed(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	r.Used = true
	m.byID[id] = r
	return nil
}
