package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/nexo-service/config"
	"github.com/Eursukkul/nexo-service/internal/consumer"
	"github.com/Eursukkul/nexo-service/internal/handler"
	"github.com/Eursukkul/nexo-service/internal/middleware"
	"github.com/Eursukkul/nexo-service/internal/repository"
	"github.com/Eursukkul/nexo-service/internal/service"
	"github.com/Eursukkul/nexo-service/internal/validator"
	"github.com/Eursukkul/nexo-service/pkg/aichat"
	"github.com/Eursukkul/nexo-service/pkg/cache"
	"github.com/Eursukkul/nexo-service/pkg/database"
	"github.com/Eursukkul/nexo-service/pkg/logger"
	"github.com/Eursukkul/nexo-service/pkg/mailer"
	"github.com/Eursukkul/nexo-service/pkg/payment"
	"github.com/Eursukkul/nexo-service/pkg/rabbitmq"
	"github.com/Eursukkul/nexo-service/pkg/security"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

const appName = "nexo-service"

func main() {
	cfg := config.Load()

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: appName,
	})
	log.Info("configuration loaded", cfg.LogValues()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", "error", err)
	}

	// RabbitMQ is optional: without it no domain events or mails go out.
	var publisher service.EventPublisher
	if cfg.RabbitURL != "" {
		mqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, log)
		if err != nil {
			log.Fatal("failed to connect to RabbitMQ", "error", err)
		}
		defer mqPublisher.Close()
		publisher = mqPublisher

		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, consumer.NotificationQueue, consumer.NotificationBinding)
		if err != nil {
			log.Fatal("failed to create RabbitMQ consumer", "error", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatal("failed to start consuming", "error", err)
		}

		mail := mailer.NewSMTPMailer(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}, log)
		consumer.NewNotificationConsumer(mail, log).Start(ctx, msgs)
	} else {
		log.Warn("RABBITMQ_URL not set, domain events disabled")
	}

	var dashboardCache service.DashboardCache
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("redis unavailable, dashboard cache disabled", "error", err)
		} else {
			defer rc.Close()
			dashboardCache = rc
		}
	}

	// Repositories
	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	contactRepo := repository.NewContactRepository(db)
	carRepo := repository.NewCarRepository(db)
	carBookingRepo := repository.NewCarBookingRepository(db)
	hotelBookingRepo := repository.NewHotelBookingRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	statsRepo, err := repository.NewStatsRepository(db, cfg.DBDriver)
	if err != nil {
		log.Fatal("failed to open reporting connection", "error", err)
	}

	// Services
	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	csrf := security.NewCSRFIssuer(cfg.CSRFSecret, cfg.CSRFTTL)
	gateway := payment.NewGateway(cfg.PaymentAPIKey, cfg.PaymentBaseURL, cfg.PaymentWebhookSecret)
	chatClient := aichat.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIKey, cfg.OpenAIModel, cfg.ChatTimeout)

	authSvc := service.NewAuthService(userRepo, tokens, csrf, publisher, log, cfg.AdminEmail)
	userSvc := service.NewUserService(userRepo)
	contactSvc := service.NewContactService(contactRepo)
	carSvc := service.NewCarService(carRepo)
	bookingSvc := service.NewBookingService(tx, userRepo, carRepo, carBookingRepo, hotelBookingRepo, publisher, log)
	walletSvc := service.NewWalletService(tx, userRepo, txRepo, gateway, publisher, log)
	chatSvc := service.NewChatService(chatClient, log)
	adminSvc := service.NewAdminService(statsRepo, dashboardCache, cfg.DashboardCacheTTL, log)
	contentSvc := service.NewContentService()

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(log)
	e.Use(echoMw.RequestID())
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			log.Info("request", attrs...)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	mw := handler.Middlewares{
		Public: []echo.MiddlewareFunc{middleware.OptionalAuth(authSvc), middleware.CSRF(authSvc)},
		Auth:   []echo.MiddlewareFunc{middleware.RequireAuth(authSvc), middleware.CSRF(authSvc)},
		Admin:  []echo.MiddlewareFunc{middleware.RequireAuth(authSvc), middleware.RequireAdmin(), middleware.CSRF(authSvc)},
	}

	e.GET("/health-check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "app": appName})
	})

	handler.NewAuthHandler(authSvc, cfg.CookieSecure).RegisterRoutes(e, mw)
	handler.NewUserHandler(userSvc).RegisterRoutes(e, mw)
	handler.NewContactHandler(contactSvc).RegisterRoutes(e, mw)
	handler.NewTravelHandler(carSvc, bookingSvc, contentSvc).RegisterRoutes(e, mw)
	handler.NewWalletHandler(walletSvc).RegisterRoutes(e, mw)
	handler.NewContentHandler(contentSvc).RegisterRoutes(e, mw)
	handler.NewChatHandler(chatSvc).RegisterRoutes(e, mw)
	handler.NewAdminHandler(adminSvc).RegisterRoutes(e, mw)

	go func() {
		log.Info("server starting", "port", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
