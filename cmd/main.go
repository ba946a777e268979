// @title TripAI Backend API
// @version 1.0
// @description Travel booking backend with destination catalog, wallet-based loyalty points and an AI trip planner

// @contact.name API Support
// @contact.email support@tripai.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	_ "tripai-backend/docs" // swagger docs registration
	"tripai-backend/internal/config"
	"tripai-backend/internal/handlers"
	"tripai-backend/internal/observability"
	"tripai-backend/internal/repository"
	"tripai-backend/internal/routes"
	"tripai-backend/internal/services"
	"tripai-backend/internal/utils"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	observability.InitLogger(cfg.Server.Env)

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open datastore")
	}
	defer store.Close()

	// The in-memory store starts empty; load the demo data so the API is
	// usable out of the box.
	if !cfg.UsePostgres() {
		if err := repository.Seed(context.Background(), store); err != nil {
			log.Fatal().Err(err).Msg("failed to seed demo data")
		}
		log.Info().Msg("using in-memory store with demo data")
	}

	if !cfg.IsEmailConfigured() {
		log.Warn().Msg("SMTP not configured, outgoing mail will be logged instead of sent")
	}
	if !cfg.IsGoogleOAuthConfigured() {
		log.Warn().Msg("Google OAuth not configured, /api/auth/google endpoints are disabled")
	}

	emailService := utils.NewEmailService(cfg.Email)

	identity := services.NewIdentityService(store, emailService, cfg)
	catalog := services.NewCatalogService(store, cfg)
	bookings := services.NewBookingService(store, emailService, cfg)
	users := services.NewUserService(store)
	planner := services.NewPlannerService(cfg.AI)
	pdf := services.NewPDFService()

	h := &routes.Handlers{
		Auth:          handlers.NewAuthHandler(identity),
		GoogleAuth:    handlers.NewGoogleAuthHandler(identity, cfg.GoogleOAuth),
		Destinations:  handlers.NewDestinationsHandler(catalog, pdf),
		Bookings:      handlers.NewBookingsHandler(bookings),
		Users:         handlers.NewUsersHandler(users, store),
		Notifications: handlers.NewNotificationsHandler(store),
		Planner:       handlers.NewPlannerHandler(planner),
		Health:        handlers.NewHealthHandler(store, version),
	}

	mux := http.NewServeMux()
	routes.Setup(mux, cfg, h)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(mux),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openStore connects to Postgres when DB_HOST is set, otherwise falls back
// to the in-memory store.
func openStore(cfg *config.Config) (repository.Store, error) {
	if !cfg.UsePostgres() {
		return repository.NewMemoryStore(), nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, err
	}
	// Simple protocol keeps the pool working through PgBouncer.
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "tripai-backend"
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.Name).Msg("connected to postgres")
	return repository.NewPostgresStore(pool), nil
}
