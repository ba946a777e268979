package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"tripai-backend/internal/config"
	"tripai-backend/internal/handlers"
	"tripai-backend/internal/middleware"
)

// Handlers groups the handler set the router wires up.
type Handlers struct {
	Auth          *handlers.AuthHandler
	GoogleAuth    *handlers.GoogleAuthHandler
	Destinations  *handlers.DestinationsHandler
	Bookings      *handlers.BookingsHandler
	Users         *handlers.UsersHandler
	Notifications *handlers.NotificationsHandler
	Planner       *handlers.PlannerHandler
	Health        *handlers.HealthHandler
}

// Setup registers every route on mux. Admin routes stack RequireAdmin on
// top of AuthMiddleware; booking item routes need a signed-in user.
func Setup(mux *http.ServeMux, cfg *config.Config, h *Handlers) {
	jwtCfg := cfg.JWT
	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.AuthMiddleware(jwtCfg, next)
	}
	adminOnly := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.AuthMiddleware(jwtCfg, middleware.RequireAdmin(next))
	}

	// Health
	mux.HandleFunc("/healthz", h.Health.Readyz)
	mux.HandleFunc("/livez", h.Health.Livez)
	mux.HandleFunc("/readyz", h.Health.Readyz)

	// Auth
	mux.HandleFunc("/api/auth/signup", h.Auth.Signup)
	mux.HandleFunc("/api/auth/login", h.Auth.Login)
	mux.HandleFunc("/api/auth/forgot-password", h.Auth.ForgotPassword)
	mux.HandleFunc("/api/auth/verify-otp", h.Auth.VerifyOTP)
	mux.HandleFunc("/api/auth/reset-password", h.Auth.ResetPassword)
	mux.HandleFunc("/api/auth/google", h.GoogleAuth.SignIn)
	mux.HandleFunc("/api/auth/google/login", h.GoogleAuth.Login)
	mux.HandleFunc("/api/auth/google/callback", h.GoogleAuth.Callback)
	mux.HandleFunc("/api/auth/profile", authed(h.Auth.Profile))

	// Destination catalog: public reads, admin writes.
	mux.HandleFunc("/api/destinations", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			adminOnly(h.Destinations.Collection)(w, r)
			return
		}
		h.Destinations.Collection(w, r)
	})
	mux.HandleFunc("/api/destinations/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut || r.Method == http.MethodDelete {
			adminOnly(h.Destinations.Item)(w, r)
			return
		}
		h.Destinations.Item(w, r)
	})

	// Bookings: creation is open to guests, everything else needs a session.
	mux.HandleFunc("/api/bookings", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			authed(h.Bookings.Collection)(w, r)
			return
		}
		h.Bookings.Collection(w, r)
	})
	mux.HandleFunc("/api/bookings/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut || r.Method == http.MethodDelete {
			adminOnly(h.Bookings.Item)(w, r)
			return
		}
		authed(h.Bookings.Item)(w, r)
	})

	// Notifications
	mux.HandleFunc("/api/notifications", authed(h.Notifications.List))
	mux.HandleFunc("/api/notifications/", authed(h.Notifications.MarkRead))

	// Planner
	mux.HandleFunc("/api/planner/generate", h.Planner.Generate)

	// Admin
	mux.HandleFunc("/api/users", adminOnly(h.Users.Collection))
	mux.HandleFunc("/api/users/", adminOnly(h.Users.Item))
	mux.HandleFunc("/api/admin/seed", adminOnly(h.Users.Seed))

	// API docs
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)
}
