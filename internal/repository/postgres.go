package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tripai-backend/internal/models"
)

const uniqueViolation = "23505"

// PostgresStore is the pgx-backed Store implementation.
type PostgresStore struct {
	pool          *pgxpool.Pool
	users         pgUsers
	destinations  pgDestinations
	bookings      pgBookings
	notifications pgNotifications
	resets        pgResets
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		pool:          pool,
		users:         pgUsers{pool: pool},
		destinations:  pgDestinations{pool: pool},
		bookings:      pgBookings{pool: pool},
		notifications: pgNotifications{pool: pool},
		resets:        pgResets{pool: pool},
	}
}

func (s *PostgresStore) Users() UserStore                 { return &s.users }
func (s *PostgresStore) Destinations() DestinationStore   { return &s.destinations }
func (s *PostgresStore) Bookings() BookingStore           { return &s.bookings }
func (s *PostgresStore) Notifications() NotificationStore { return &s.notifications }
func (s *PostgresStore) Resets() ResetStore               { return &s.resets }

func (s *PostgresStore) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }
func (s *PostgresStore) Close()                         { s.pool.Close() }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// ---- users ----

type pgUsers struct {
	pool *pgxpool.Pool
}

const userColumns = `id, name, email, password_hash, role, wallet_balance, joined_at, avatar, status, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.WalletBalance,
		&u.JoinedAt, &u.Avatar, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (p *pgUsers) Create(ctx context.Context, user *models.User) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, wallet_balance, joined_at, avatar, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.WalletBalance,
		user.JoinedAt, user.Avatar, user.Status, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (p *pgUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(p.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (p *pgUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(p.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
}

func (p *pgUsers) List(ctx context.Context) ([]models.User, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (p *pgUsers) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	tag, err := p.pool.Exec(ctx,
		`UPDATE users
		    SET name = $1, email = $2, password_hash = $3, role = $4,
		        wallet_balance = $5, avatar = $6, status = $7, updated_at = $8
		  WHERE id = $9`,
		user.Name, user.Email, user.PasswordHash, user.Role,
		user.WalletBalance, user.Avatar, user.Status, user.UpdatedAt, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *pgUsers) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustWalletBalance relies on a single conditional UPDATE so concurrent
// bookings against one wallet serialize inside the database; the balance
// floor is checked in the same statement.
func (p *pgUsers) AdjustWalletBalance(ctx context.Context, id uuid.UUID, debit, credit int) (int, error) {
	var balance int
	err := p.pool.QueryRow(ctx,
		`UPDATE users
		    SET wallet_balance = wallet_balance - $2 + $3, updated_at = NOW()
		  WHERE id = $1 AND wallet_balance >= $2
		  RETURNING wallet_balance`,
		id, debit, credit).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("adjust wallet: %w", err)
	}

	// No row updated: either the user is gone or the floor check failed.
	var exists bool
	if err := p.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("adjust wallet: %w", err)
	}
	if !exists {
		return 0, ErrNotFound
	}
	return 0, ErrInsufficientBalance
}

// ---- destinations ----

type pgDestinations struct {
	pool *pgxpool.Pool
}

const destinationColumns = `id, name, country, description, price, price_display, type, rating,
	reviews_count, image, gallery, amenities, inclusions, exclusions, itinerary, is_featured,
	created_at, updated_at`

func scanDestination(row pgx.Row) (*models.Destination, error) {
	var d models.Destination
	var itinerary []byte
	err := row.Scan(&d.ID, &d.Name, &d.Country, &d.Description, &d.Price, &d.PriceDisplay,
		&d.Type, &d.Rating, &d.ReviewsCount, &d.Image, &d.Gallery, &d.Amenities,
		&d.Inclusions, &d.Exclusions, &itinerary, &d.IsFeatured, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(itinerary) > 0 {
		if err := json.Unmarshal(itinerary, &d.Itinerary); err != nil {
			return nil, fmt.Errorf("decode itinerary: %w", err)
		}
	}
	return &d, nil
}

func (p *pgDestinations) Create(ctx context.Context, d *models.Destination) error {
	itinerary, err := json.Marshal(d.Itinerary)
	if err != nil {
		return fmt.Errorf("encode itinerary: %w", err)
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO destinations (id, name, country, description, price, price_display, type,
		 rating, reviews_count, image, gallery, amenities, inclusions, exclusions, itinerary,
		 is_featured, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		d.ID, d.Name, d.Country, d.Description, d.Price, d.PriceDisplay, d.Type,
		d.Rating, d.ReviewsCount, d.Image, d.Gallery, d.Amenities, d.Inclusions, d.Exclusions,
		itinerary, d.IsFeatured, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert destination: %w", err)
	}
	return nil
}

func (p *pgDestinations) GetByID(ctx context.Context, id uuid.UUID) (*models.Destination, error) {
	return scanDestination(p.pool.QueryRow(ctx,
		`SELECT `+destinationColumns+` FROM destinations WHERE id = $1`, id))
}

func (p *pgDestinations) List(ctx context.Context) ([]models.Destination, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+destinationColumns+` FROM destinations ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	defer rows.Close()

	out := make([]models.Destination, 0)
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (p *pgDestinations) Update(ctx context.Context, d *models.Destination) error {
	itinerary, err := json.Marshal(d.Itinerary)
	if err != nil {
		return fmt.Errorf("encode itinerary: %w", err)
	}
	d.UpdatedAt = time.Now()
	tag, err := p.pool.Exec(ctx,
		`UPDATE destinations
		    SET name = $1, country = $2, description = $3, price = $4, price_display = $5,
		        type = $6, rating = $7, reviews_count = $8, image = $9, gallery = $10,
		        amenities = $11, inclusions = $12, exclusions = $13, itinerary = $14,
		        is_featured = $15, updated_at = $16
		  WHERE id = $17`,
		d.Name, d.Country, d.Description, d.Price, d.PriceDisplay,
		d.Type, d.Rating, d.ReviewsCount, d.Image, d.Gallery,
		d.Amenities, d.Inclusions, d.Exclusions, itinerary,
		d.IsFeatured, d.UpdatedAt, d.ID)
	if err != nil {
		return fmt.Errorf("update destination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *pgDestinations) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM destinations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete destination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- bookings ----

type pgBookings struct {
	pool *pgxpool.Pool
}

const bookingColumns = `id, user_id, customer_name, email, phone, destination_id, destination_name,
	date, guests, total_price, points_used, points_earned, status, payment_method, created_at`

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.CustomerName, &b.Email, &b.Phone, &b.DestinationID,
		&b.DestinationName, &b.Date, &b.Guests, &b.TotalPrice, &b.PointsUsed, &b.PointsEarned,
		&b.Status, &b.PaymentMethod, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (p *pgBookings) Create(ctx context.Context, b *models.Booking) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO bookings (id, user_id, customer_name, email, phone, destination_id,
		 destination_name, date, guests, total_price, points_used, points_earned, status,
		 payment_method, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		b.ID, b.UserID, b.CustomerName, b.Email, b.Phone, b.DestinationID,
		b.DestinationName, b.Date, b.Guests, b.TotalPrice, b.PointsUsed, b.PointsEarned,
		b.Status, b.PaymentMethod, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (p *pgBookings) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return scanBooking(p.pool.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
}

func (p *pgBookings) List(ctx context.Context, userID *uuid.UUID) ([]models.Booking, error) {
	var rows pgx.Rows
	var err error
	if userID != nil {
		rows, err = p.pool.Query(ctx,
			`SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`, *userID)
	} else {
		rows, err = p.pool.Query(ctx,
			`SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	out := make([]models.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (p *pgBookings) Update(ctx context.Context, b *models.Booking) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE bookings
		    SET customer_name = $1, email = $2, phone = $3, date = $4, guests = $5,
		        total_price = $6, status = $7, payment_method = $8
		  WHERE id = $9`,
		b.CustomerName, b.Email, b.Phone, b.Date, b.Guests,
		b.TotalPrice, b.Status, b.PaymentMethod, b.ID)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *pgBookings) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- notifications ----

type pgNotifications struct {
	pool *pgxpool.Pool
}

func (p *pgNotifications) Create(ctx context.Context, n *models.Notification) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO notifications (id, user_id, type, title, message, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, n.Read, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (p *pgNotifications) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, user_id, type, title, message, read, created_at
		   FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	out := make([]models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (p *pgNotifications) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- password resets ----

type pgResets struct {
	pool *pgxpool.Pool
}

func (p *pgResets) Create(ctx context.Context, r *models.PasswordReset) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO password_resets (id, user_id, email, code, expires_at, used, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, r.UserID, r.Email, r.Code, r.ExpiresAt, r.Used, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert password reset: %w", err)
	}
	return nil
}

func (p *pgResets) GetActive(ctx context.Context, userID uuid.UUID) (*models.PasswordReset, error) {
	var r models.PasswordReset
	err := p.pool.QueryRow(ctx,
		`SELECT id, user_id, email, code, expires_at, used, created_at
		   FROM password_resets
		  WHERE user_id = $1 AND used = FALSE AND expires_at > NOW()
		  ORDER BY created_at DESC LIMIT 1`, userID).
		Scan(&r.ID, &r.UserID, &r.Email, &r.Code, &r.ExpiresAt, &r.Used, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get active reset: %w", err)
	}
	return &r, nil
}

func (p *pgResets) MarkUsed(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE password_resets SET used = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark reset used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
