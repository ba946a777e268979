package handlers

import (
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleOAuth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"tripai-backend/internal/config"
	"tripai-backend/internal/dto"
	"tripai-backend/internal/services"
	"tripai-backend/internal/utils"
)

// GoogleAuthHandler implements sign-in with Google.
type GoogleAuthHandler struct {
	identity *services.IdentityService
	oauth    *oauth2.Config
}

func NewGoogleAuthHandler(identity *services.IdentityService, cfg config.GoogleOAuthConfig) *GoogleAuthHandler {
	return &GoogleAuthHandler{
		identity: identity,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

// Login godoc
// @Summary Start Google sign-in
// @Description Redirects the browser to the Google consent screen
// @Tags auth
// @Success 307
// @Router /api/auth/google/login [get]
func (h *GoogleAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.oauth.ClientID == "" {
		utils.WriteErrorResponse(w, http.StatusServiceUnavailable, "google_auth_disabled", "Google OAuth is not configured")
		return
	}
	url := h.oauth.AuthCodeURL("state", oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// SignIn godoc
// @Summary Sign in with a Google access token
// @Description Verifies the token against Google, then signs the user in, registering them on first use
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleSignInRequest true "Google access token"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} utils.ErrorBody
// @Router /api/auth/google [post]
func (h *GoogleAuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req dto.GoogleSignInRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.AccessToken == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_request", "accessToken is required")
		return
	}

	h.completeSignIn(w, r, &oauth2.Token{AccessToken: req.AccessToken})
}

// Callback godoc
// @Summary Google OAuth callback
// @Description Exchanges the authorization code and signs the user in
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} utils.ErrorBody
// @Router /api/auth/google/callback [get]
func (h *GoogleAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_request", "missing authorization code")
		return
	}

	token, err := h.oauth.Exchange(r.Context(), code)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "google_auth_failed", "failed to exchange authorization code")
		return
	}

	h.completeSignIn(w, r, token)
}

func (h *GoogleAuthHandler) completeSignIn(w http.ResponseWriter, r *http.Request, token *oauth2.Token) {
	ctx := r.Context()
	svc, err := googleOAuth2.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to create Google client")
		return
	}
	info, err := svc.Userinfo.Get().Do()
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "google_auth_failed", "failed to fetch Google profile")
		return
	}

	user, sessionToken, err := h.identity.GoogleLogin(ctx, info.Name, info.Email, info.Picture)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		Success: true,
		Role:    user.Role,
		Token:   sessionToken,
		User:    services.SanitizeUser(user),
	})
}
