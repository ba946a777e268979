package dto

// UpdateUserRequest is the payload for PUT /api/admin/users/{id}.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Role          *string `json:"role,omitempty"`
	Status        *string `json:"status,omitempty"`
	WalletBalance *int    `json:"walletBalance,omitempty"`
}

// UserListResponse wraps an admin user listing.
type UserListResponse struct {
	Success bool           `json:"success"`
	Data    []UserResponse `json:"data"`
}

// SingleUserResponse wraps a single sanitized user.
type SingleUserResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Data    *UserResponse `json:"data"`
}
