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

	"github.com/aussiebroadwan/passgate/internal/auth/avatar"
	httpapi "github.com/aussiebroadwan/passgate/internal/auth/http"
	"github.com/aussiebroadwan/passgate/internal/auth/notify"
	"github.com/aussiebroadwan/passgate/internal/auth/service"
	"github.com/aussiebroadwan/passgate/internal/auth/store"
	"github.com/aussiebroadwan/passgate/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/passgate/pkg/cryptox"
	"github.com/aussiebroadwan/passgate/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X ...app.BuildVersion=...".
var BuildVersion = "v0.1.0"

// Application encapsulates the account service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	mailer   *notify.Mailer
	avatars  avatar.Store
	sessions *service.SessionService

	// Services
	accountService      *service.AccountService
	verificationService *service.VerificationService
	resetService        *service.ResetService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "passgate",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password and OTP hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.initDependencies(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the HTTP router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("passgate starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.db.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down passgate...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "err", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "err", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "err", err)
		return err
	}

	app.logger.Info("passgate stopped")
	return nil
}

// initDatabase opens the database and applies migrations.
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.FileDSN(app.cfg.DatabaseFile))
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

// initDependencies builds the session signer, the mail transport and the avatar store.
func (app *Application) initDependencies(ctx context.Context) error {
	signer, err := NewSessionSigner(app.cfg, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize session signer: %w", err)
	}
	app.sessions = service.NewSessionService(signer, app.cfg.Issuer, app.cfg.SessionTTL, nil)
	app.logger.Info("session signer ready", "alg", signer.Alg(), "ttl", app.cfg.SessionTTL)

	var notifier notify.Notifier
	if app.cfg.SMTPHost == "" {
		notifier = &notify.LogNotifier{Logger: app.logger}
		app.logger.Warn("SMTP_HOST not set, mail is written to the log")
	} else {
		smtpNotifier, err := notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:               app.cfg.SMTPHost,
			Port:               app.cfg.SMTPPort,
			User:               app.cfg.SMTPUser,
			Pass:               app.cfg.SMTPPass,
			From:               app.cfg.SenderEmail,
			InsecureSkipVerify: app.cfg.SMTPInsecureSkipVerify,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize smtp: %w", err)
		}
		notifier = smtpNotifier
		app.logger.Info("smtp notifier configured", "host", app.cfg.SMTPHost, "port", app.cfg.SMTPPort)
	}
	app.mailer = &notify.Mailer{Notifier: notifier, AppName: "passgate"}

	if app.cfg.AvatarBucket == "" {
		app.avatars = avatar.Disabled{}
		app.logger.Info("avatar uploads disabled")
	} else {
		s3Store, err := avatar.NewS3Store(ctx, avatar.S3Config{
			Bucket:        app.cfg.AvatarBucket,
			Region:        app.cfg.AvatarRegion,
			Endpoint:      app.cfg.AvatarEndpoint,
			AccessKey:     app.cfg.AvatarAccessKey,
			SecretKey:     app.cfg.AvatarSecretKey,
			PublicBaseURL: app.cfg.AvatarPublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize avatar store: %w", err)
		}
		app.avatars = s3Store
		app.logger.Info("avatar uploads enabled", "bucket", app.cfg.AvatarBucket)
	}

	return nil
}

// initServices wires the account state machines.
func (app *Application) initServices() {
	app.accountService = &service.AccountService{
		Store:    app.db,
		Sessions: app.sessions,
		Mailer:   app.mailer,
		Avatars:  app.avatars,
	}

	app.verificationService = &service.VerificationService{
		Store:  app.db,
		Mailer: app.mailer,
		OTPTTL: app.cfg.OTPTTL,
	}

	app.resetService = &service.ResetService{
		Store:                   app.db,
		Mailer:                  app.mailer,
		OTPTTL:                  app.cfg.OTPTTL,
		ConcealAccountExistence: app.cfg.ConcealAccountExistence,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.OTPRetention,
	)
}

// initHTTP builds the router and the HTTP server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.sessions,
		app.cfg.Cookie(),
		BuildVersion,
		app.db,
		app.logger,
	)
	router.AccountService = app.accountService
	router.VerificationService = app.verificationService
	router.ResetService = app.resetService
	router.CORSOrigins = app.cfg.CORSAllowedOrigins
	proxies, err := app.cfg.TrustedProxyPrefixes()
	if err != nil {
		app.logger.Warn("ignoring TRUSTED_PROXIES", "err", err)
	}
	router.TrustedProxies = proxies
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
