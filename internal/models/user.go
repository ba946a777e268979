package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User account statuses
const (
	UserStatusActive = "Active"
	UserStatusBanned = "Banned"
)

// User represents a registered traveler or admin
type User struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"` // Hidden from JSON responses
	Role          string    `json:"role" db:"role"`
	WalletBalance int       `json:"walletBalance" db:"wallet_balance"`
	JoinedAt      string    `json:"joinedAt" db:"joined_at"` // YYYY-MM-DD
	Avatar        string    `json:"avatar" db:"avatar"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
