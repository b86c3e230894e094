package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/koperasi-tentera/authapi/internal/auth"
	"github.com/koperasi-tentera/authapi/internal/config"
	"github.com/koperasi-tentera/authapi/internal/credential"
	"github.com/koperasi-tentera/authapi/internal/identity"
	"github.com/koperasi-tentera/authapi/internal/middleware"
	"github.com/koperasi-tentera/authapi/internal/notification"
	"github.com/koperasi-tentera/authapi/internal/otp"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Collaborators: dev mode falls back to in-memory storage and logger
	// notifiers so the service runs without external infrastructure.
	var users identity.Repository
	if d.DB != nil {
		users = identity.NewPostgresRepository(d.DB)
	} else {
		users = identity.NewMemoryRepository()
	}
	pins := credential.NewBcryptStore(users)

	var mailer notification.Mailer
	var sms notification.SMS
	if d.Cfg.SMTP.Server != "" {
		mailer = notification.NewSMTPMailer(d.Cfg.SMTP)
	} else {
		mailer = notification.NewLoggerMailer(d.Logger)
	}
	if d.Cfg.SMSGateway.URL != "" {
		sms = notification.NewGatewaySMS(d.Cfg.SMSGateway)
	} else {
		sms = notification.NewLoggerSMS(d.Logger)
	}

	generator := otp.New(d.Cfg.OTPTTL)
	authSvc := auth.NewService(users, pins, generator, mailer, sms, d.Logger)
	authHandler := auth.NewHandler(authSvc, users)

	api := app.Group("/api/v1")
	RegisterAuthRoutes(api, authHandler)

	return nil
}
