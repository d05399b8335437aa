package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpapi "github.com/calendar-couple/couple/internal/couple/http"
	"github.com/calendar-couple/couple/internal/couple/oauth"
	"github.com/calendar-couple/couple/internal/couple/service"
	"github.com/calendar-couple/couple/internal/couple/store/drivers/redis"
	"github.com/calendar-couple/couple/internal/couple/store/drivers/sqlite"
	"github.com/calendar-couple/couple/pkg/clock"
	"github.com/calendar-couple/couple/pkg/httpx"
	"github.com/calendar-couple/couple/pkg/jwtx"
	"github.com/calendar-couple/couple/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	redisConnectTimeout = 5 * time.Second
)

// Application owns the process-wide dependencies of the API server.
type Application struct {
	cfg    Config
	logger *slog.Logger
	clock  clock.Clock

	db       *sqlite.Store
	sessions *redis.Store
	codec    *jwtx.Codec
	registry *oauth.Registry
	metrics  *prometheus.Registry

	authService       *service.AuthService
	calendarService   *service.CalendarService
	eventService      *service.EventService
	invitationService *service.InvitationService
	coupleService     *service.CoupleService
	homeService       *service.HomeService

	server *http.Server
	router *httpapi.Router
}

// New validates cfg and builds every dependency. Anything opened before a
// failure is closed again.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg:   cfg,
		clock: clock.Real(),
		logger: slogx.New(slogx.Config{
			Service: "couple-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	ctx := context.Background()

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initRedis(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initAuth(ctx); err != nil {
		app.closeStores()
		return nil, err
	}
	if err := app.initServices(); err != nil {
		app.closeStores()
		return nil, err
	}
	if err := app.initHTTP(); err != nil {
		app.closeStores()
		return nil, err
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("couple api starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.closeStores()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains the HTTP server within the grace period, then closes
// Redis and the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down couple api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.sessions.Close(); err != nil {
		app.logger.Error("error closing redis", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("couple api stopped")
	return nil
}

func (app *Application) closeStores() {
	if app.sessions != nil {
		_ = app.sessions.Close()
	}
	if app.db != nil {
		_ = app.db.Close()
	}
}

// initDatabase opens SQLite and applies migrations
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initRedis(ctx context.Context) error {
	sessions, err := redis.Open(ctx, redis.Options{
		Addr:     app.cfg.RedisAddr,
		Password: app.cfg.RedisPassword,
		DB:       app.cfg.RedisDB,
	}, app.clock, redisConnectTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.sessions = sessions

	app.logger.Info("redis connected", "addr", app.cfg.RedisAddr)
	return nil
}

// initAuth builds the token codec and the identity provider registry.
func (app *Application) initAuth(ctx context.Context) error {
	secret, err := jwtx.DecodeSecret(app.cfg.JWTSecret)
	if err != nil {
		return err
	}
	codec, err := jwtx.NewCodec(jwtx.Config{
		Secret:     secret,
		Issuer:     app.cfg.JWTIssuer,
		Audience:   app.cfg.JWTAudience,
		AccessTTL:  app.cfg.JWTAccessTTL,
		RefreshTTL: app.cfg.JWTRefreshTTL,
	}, app.clock)
	if err != nil {
		return fmt.Errorf("failed to build token codec: %w", err)
	}
	app.codec = codec

	resolvers := []oauth.Resolver{
		oauth.NewKakao(oauth.KakaoConfig{
			ClientID:    app.cfg.KakaoClientID,
			RedirectURI: app.cfg.KakaoRedirectURI,
			APIURL:      app.cfg.KakaoAPIURI,
		}),
	}

	if app.cfg.GoogleEnabled() {
		google, err := oauth.NewGoogle(ctx, oauth.GoogleConfig{
			ClientID:     app.cfg.GoogleClientID,
			ClientSecret: app.cfg.GoogleClientSecret,
			RedirectURI:  app.cfg.GoogleRedirectURI,
			TokenURL:     app.cfg.GoogleTokenURI,
			UserInfoURL:  app.cfg.GoogleUserInfoURI,
		})
		if err != nil {
			return fmt.Errorf("failed to configure google sign-in: %w", err)
		}
		resolvers = append(resolvers, google)
	} else {
		app.logger.Warn("google sign-in disabled: GOOGLE_CLIENT_ID not set")
	}

	app.registry = oauth.NewRegistry(resolvers...)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	app.metrics = prometheus.NewRegistry()
	app.metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	authMetrics, err := service.NewMetrics(app.metrics)
	if err != nil {
		return fmt.Errorf("failed to register auth metrics: %w", err)
	}

	accounts := &service.AccountDirectory{Store: app.db, Clock: app.clock}

	app.authService = &service.AuthService{
		Identities: app.registry,
		Accounts:   accounts,
		Sessions:   app.sessions,
		Codec:      app.codec,
		Metrics:    authMetrics,
	}
	app.calendarService = &service.CalendarService{Store: app.db, Clock: app.clock}
	app.eventService = &service.EventService{
		Store:     app.db,
		Calendars: app.calendarService,
		Clock:     app.clock,
	}
	app.invitationService = &service.InvitationService{Codes: app.sessions}
	app.coupleService = &service.CoupleService{
		Store:       app.db,
		Accounts:    accounts,
		Invitations: app.invitationService,
		Clock:       app.clock,
	}
	app.homeService = &service.HomeService{
		Store:    app.db,
		Accounts: accounts,
		Events:   app.eventService,
		Clock:    app.clock,
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() error {
	httpMetrics, err := httpx.NewHTTPMetrics(httpx.HTTPMetricsOptions{Registerer: app.metrics})
	if err != nil {
		return fmt.Errorf("failed to register http metrics: %w", err)
	}

	router := httpapi.NewRouter(
		app.cfg.AllowedOrigins,
		BuildVersion,
		app.db,
		app.sessions,
		app.logger,
	)

	router.Metrics = httpMetrics
	router.Gatherer = app.metrics
	router.AuthService = app.authService
	router.CalendarService = app.calendarService
	router.EventService = app.eventService
	router.InvitationService = app.invitationService
	router.CoupleService = app.coupleService
	router.HomeService = app.homeService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
