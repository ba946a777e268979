package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tripai-backend/internal/dto"
	"tripai-backend/internal/models"
	"tripai-backend/internal/repository"
)

// UserService implements the admin user-management operations.
type UserService struct {
	users repository.UserStore
}

func NewUserService(store repository.Store) *UserService {
	return &UserService{users: store.Users()}
}

// SanitizeUser converts a user record to its wire representation, dropping
// credential material.
func SanitizeUser(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            u.ID.String(),
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		WalletBalance: u.WalletBalance,
		JoinedAt:      u.JoinedAt,
		Avatar:        u.Avatar,
		Status:        u.Status,
	}
}

// List returns all users, newest-first, sanitized.
func (s *UserService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, SanitizeUser(&users[i]))
	}
	return out, nil
}

// Get returns one user by ID, sanitized.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := SanitizeUser(user)
	return &resp, nil
}

// Update applies the non-nil fields of req to the user.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		user.Name = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", ErrValidation)
		}
		user.Email = email
	}
	if req.Role != nil {
		if *req.Role != models.RoleUser && *req.Role != models.RoleAdmin {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *req.Role)
		}
		user.Role = *req.Role
	}
	if req.Status != nil {
		if *req.Status != models.UserStatusActive && *req.Status != models.UserStatusBanned {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *req.Status)
		}
		user.Status = *req.Status
	}
	if req.WalletBalance != nil {
		if *req.WalletBalance < 0 {
			return nil, fmt.Errorf("%w: walletBalance cannot be negative", ErrValidation)
		}
		user.WalletBalance = *req.WalletBalance
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := SanitizeUser(user)
	return &resp, nil
}

// SetStatus bans or reinstates a user.
func (s *UserService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*dto.UserResponse, error) {
	return s.Update(ctx, id, &dto.UpdateUserRequest{Status: &status})
}

// Delete removes a user account. Their bookings are kept for accounting.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("user_id", id.String()).Msg("user deleted")
	return nil
}
