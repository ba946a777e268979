package handlers

import (
	"net/http"

	"tripai-backend/internal/dto"
	"tripai-backend/internal/middleware"
	"tripai-backend/internal/services"
	"tripai-backend/internal/utils"
)

// AuthHandler serves signup, login and the password-reset flow.
type AuthHandler struct {
	identity *services.IdentityService
}

func NewAuthHandler(identity *services.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// Signup godoc
// @Summary Register a new account
// @Description Creates a user, credits the signup bonus and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 409 {object} utils.ErrorBody
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user, token, err := h.identity.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.AuthResponse{
		Success: true,
		Message: "Account created",
		Role:    user.Role,
		Token:   token,
		User:    services.SanitizeUser(user),
	})
}

// Profile godoc
// @Summary Get my profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SingleUserResponse
// @Failure 401 {object} utils.ErrorBody
// @Router /api/auth/profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET")
		return
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", "missing authentication")
		return
	}

	user, err := h.identity.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := services.SanitizeUser(user)
	utils.WriteJSONResponse(w, http.StatusOK, dto.SingleUserResponse{Success: true, Data: &resp})
}

// Login godoc
// @Summary Log in
// @Description Authenticates with email and password and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user, token, err := h.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		Success: true,
		Role:    user.Role,
		Token:   token,
		User:    services.SanitizeUser(user),
	})
}

// ForgotPassword godoc
// @Summary Request a password reset code
// @Description Emails a 6-digit code valid for a few minutes. Always succeeds for unknown emails.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.MessageResponse
// @Failure 429 {object} utils.ErrorBody
// @Router /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.identity.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "If that email is registered, a reset code has been sent",
	})
}

// VerifyOTP godoc
// @Summary Verify a password reset code
// @Description Exchanges the mailed code for a short-lived reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Email and code"
// @Success 200 {object} dto.VerifyOTPResponse
// @Failure 400 {object} utils.ErrorBody
// @Router /api/auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyOTPRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	resetToken, err := h.identity.VerifyResetCode(r.Context(), req.Email, req.Code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.VerifyOTPResponse{
		Success:    true,
		Message:    "Code verified",
		ResetToken: resetToken,
	})
}

// ResetPassword godoc
// @Summary Set a new password
// @Description Resets the password using a token from verify-otp
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} utils.ErrorBody
// @Router /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.identity.ResetPassword(r.Context(), req.ResetToken, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Password updated, you can now log in",
	})
}
