// Command api runs the hotel management HTTP API.
//
// @title                       Hotel Management API
// @version                     1.0
// @description                 Authentication gate, guest reviews and admin console data.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jules-hotel/hotel-management/internal/api"
	"github.com/jules-hotel/hotel-management/internal/api/handler"
	"github.com/jules-hotel/hotel-management/internal/api/middleware"
	"github.com/jules-hotel/hotel-management/internal/core/domain"
	"github.com/jules-hotel/hotel-management/internal/core/ports"
	"github.com/jules-hotel/hotel-management/internal/core/service"
	"github.com/jules-hotel/hotel-management/internal/infrastructure/config"
	"github.com/jules-hotel/hotel-management/internal/infrastructure/db/memory"
	"github.com/jules-hotel/hotel-management/internal/infrastructure/db/mongo"
	"github.com/jules-hotel/hotel-management/internal/infrastructure/db/redis"
	"github.com/jules-hotel/hotel-management/internal/infrastructure/mail"
	"github.com/jules-hotel/hotel-management/internal/infrastructure/queue"
	"github.com/jules-hotel/hotel-management/pkg/logger"
)

const (
	serviceName        = "hotel-management"
	shutdownTimeout    = 15 * time.Second
	devSeedPassword    = "password"
	seedAdminUsername  = "admin"
	seedAdminEmail     = "admin@hotel.local"
	readHeaderTimeout  = 5 * time.Second
	serverReadTimeout  = 15 * time.Second
	serverWriteTimeout = 30 * time.Second
	serverIdleTimeout  = 60 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: serviceName,
		Env:     cfg.Env,
	})

	stores, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stores.close(log)

	if err := seedAdmin(ctx, cfg, stores.principals, log); err != nil {
		return err
	}

	routes := middleware.DefaultRouteTable()
	if cfg.Auth.RouteTableFile != "" {
		routes, err = middleware.LoadRouteTable(cfg.Auth.RouteTableFile)
		if err != nil {
			return fmt.Errorf("route table: %w", err)
		}
	}

	tokens, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger.Component("token"))
	if err != nil {
		return err
	}
	auth, err := service.NewAuthService(stores.principals, tokens, cfg.Auth.LookupTimeout, logger.Component("auth"))
	if err != nil {
		return err
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Reset.MailWorkers, mail.NewLogMailer(logger.Component("mail")), logger.Component("mail-queue"))
	dispatcher.Start(workerCtx)
	defer func() {
		cancelWorkers()
		dispatcher.Wait()
	}()

	reset := service.NewPasswordResetService(
		stores.principals,
		stores.resetTokens,
		dispatcher,
		cfg.Reset.AppBaseURL,
		cfg.Reset.TokenTTL,
		logger.Component("password-reset"),
	)

	e := api.NewRouter(api.Dependencies{
		Routes:        routes,
		Tokens:        tokens,
		Auth:          auth,
		PasswordReset: reset,
		Reviews:       service.NewReviewService(stores.reviews, logger.Component("reviews")),
		Users:         service.NewUserService(stores.principals),
		LoginLimiter:  middleware.NewLoginRateLimiter(cfg.Auth.LoginRatePerSec, cfg.Auth.LoginRateBurst),
		Readiness:     stores.readiness,
		Logger:        logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       serverReadTimeout,
		WriteTimeout:      serverWriteTimeout,
		IdleTimeout:       serverIdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("store", cfg.Store.Backend).
			Int("route_rules", len(routes.Rules)).
			Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

type stores struct {
	principals  ports.PrincipalRepository
	reviews     ports.ReviewRepository
	resetTokens ports.ResetTokenStore
	readiness   map[string]handler.Pinger
	closers     []func(ctx context.Context) error
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	s := &stores{readiness: make(map[string]handler.Pinger)}

	switch cfg.Store.Backend {
	case "mongo":
		db, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		s.principals = db.Principals
		s.reviews = db.Reviews
		s.readiness["mongodb"] = db
		s.closers = append(s.closers, db.Close)
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo store connected")
	default:
		s.principals = memory.NewPrincipalRepository()
		s.reviews = memory.NewReviewRepository()
		log.Info().Msg("in-memory store enabled")
	}

	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			s.close(log)
			return nil, fmt.Errorf("redis: %w", err)
		}
		s.resetTokens = redis.NewResetTokenStore(client)
		s.readiness["redis"] = redis.NewHealth(client)
		s.closers = append(s.closers, func(context.Context) error { return client.Close() })
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis reset-token store connected")
	} else {
		s.resetTokens = memory.NewResetTokenStore()
	}

	return s, nil
}

func (s *stores) close(log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			log.Warn().Err(err).Msg("closing store")
		}
	}
}

// seedAdmin provisions the bootstrap administrator. Development falls back to
// a well-known password; production requires SEED_ADMIN_PASSWORD for the
// memory store and skips seeding otherwise.
func seedAdmin(ctx context.Context, cfg *config.Config, repo ports.PrincipalRepository, log zerolog.Logger) error {
	password := cfg.Auth.SeedAdminPassword
	if password == "" && !cfg.IsProduction() {
		password = devSeedPassword
		log.Warn().Msg("seeding admin with the development password")
	}
	if password == "" {
		return nil
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	err = service.Seed(ctx, repo, service.SeedPrincipal{
		ID:           uuid.NewString(),
		Username:     seedAdminUsername,
		Email:        seedAdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		return err
	}
	log.Info().Str("username", seedAdminUsername).Msg("admin principal ensured")
	return nil
}
