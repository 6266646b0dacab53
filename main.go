package main

import (
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/techclub/club-portal/config"
	"github.com/techclub/club-portal/internal/auth"
	"github.com/techclub/club-portal/internal/handler"
	"github.com/techclub/club-portal/internal/middleware"
	"github.com/techclub/club-portal/internal/repository"
	"github.com/techclub/club-portal/internal/service"
	"github.com/techclub/club-portal/internal/validation"
	"github.com/techclub/club-portal/pkg/database"
	"github.com/techclub/club-portal/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ is optional: without a broker the portal runs without
	// emitting notification messages.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			logrus.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	}

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	regRepo := repository.NewRegistrationRepository(db)
	userRepo := repository.NewUserRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)

	// Services
	regSvc := service.NewRegistrationService(regRepo, eventRepo, publisher)
	eventSvc := service.NewEventService(eventRepo, publisher)
	userSvc := service.NewUserService(userRepo, regRepo)
	inquirySvc := service.NewInquiryService(inquiryRepo, publisher)
	exportSvc := service.NewExportService(regSvc)

	verifier := auth.NewVerifier(cfg.JWTSecret)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = validation.New()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			logrus.WithFields(logrus.Fields{
				"method": v.Method,
				"uri":    v.URI,
				"status": v.Status,
			}).Info("request")
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "club-portal"})
	})

	handler.NewEventHandler(eventSvc, verifier).RegisterRoutes(e)
	handler.NewRegistrationHandler(regSvc, verifier).RegisterRoutes(e)
	handler.NewUserHandler(userSvc, verifier).RegisterRoutes(e)
	handler.NewInquiryHandler(inquirySvc, verifier).RegisterRoutes(e)
	handler.NewExportHandler(exportSvc, verifier).RegisterRoutes(e)

	logrus.Infof("club portal starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
