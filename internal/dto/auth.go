package dto

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" example:"user@demo.com"`
	Password string `json:"password" example:"password"`
}

// SignupRequest is the payload for POST /api/auth/signup.
type SignupRequest struct {
	Name     string `json:"name" example:"Jane Traveler"`
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"secret123"`
}

// UserResponse mirrors a user without credential material.
type UserResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	WalletBalance int    `json:"walletBalance"`
	JoinedAt      string `json:"joinedAt"`
	Avatar        string `json:"avatar"`
	Status        string `json:"status"`
}

// AuthResponse is returned by login, signup and Google sign-in.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Role    string       `json:"role"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// ForgotPasswordRequest starts the reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" example:"user@demo.com"`
}

// VerifyOTPRequest exchanges the mailed code for a reset token.
type VerifyOTPRequest struct {
	Email string `json:"email" example:"user@demo.com"`
	Code  string `json:"code" example:"482913"`
}

// VerifyOTPResponse carries the short-lived reset token.
type VerifyOTPResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ResetToken string `json:"resetToken"`
}

// ResetPasswordRequest sets a new password using a reset token.
type ResetPasswordRequest struct {
	ResetToken  string `json:"resetToken"`
	NewPassword string `json:"newPassword" example:"newsecret123"`
}

// GoogleSignInRequest is the payload for POST /api/auth/google.
type GoogleSignInRequest struct {
	AccessToken string `json:"accessToken"`
}

// MessageResponse is the generic success envelope.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
