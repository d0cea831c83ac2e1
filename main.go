package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prasetyow/event-registration-service/config"
	"github.com/prasetyow/event-registration-service/internal/handler"
	"github.com/prasetyow/event-registration-service/internal/middleware"
	"github.com/prasetyow/event-registration-service/internal/notify"
	"github.com/prasetyow/event-registration-service/internal/repository"
	"github.com/prasetyow/event-registration-service/internal/service"
	"github.com/prasetyow/event-registration-service/pkg/database"
	"github.com/prasetyow/event-registration-service/pkg/gateway"
	"github.com/prasetyow/event-registration-service/pkg/mailer"
	"github.com/prasetyow/event-registration-service/pkg/rabbitmq"
	"github.com/prasetyow/event-registration-service/pkg/ticket"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	regRepo := repository.NewRegistrationRepository(db)
	payRepo := repository.NewPaymentRepository(db)

	// RabbitMQ: ticket notifications go through a queue; delivery happens in
	// the consumer worker below.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	mail := mailer.New(cfg.MailerSendAPIKey, cfg.MailFromName, cfg.MailFromEmail, cfg.MailTicketTemplate)
	notify.NewTicketConsumer(regRepo, mail).Start(msgs)

	// External collaborators
	gw := gateway.NewMidtransClient(cfg.MidtransServerKey, cfg.MidtransProduction)
	tickets := ticket.NewQRGenerator(cfg.QROutputDir)
	dispatcher := notify.NewDispatcher(publisher)

	// Services
	ledger := service.NewCapacityLedger(eventRepo)
	eventSvc := service.NewEventService(eventRepo)
	regSvc := service.NewRegistrationService(regRepo, payRepo, eventRepo, ledger)
	paySvc := service.NewPaymentService(payRepo, regRepo, eventRepo, regSvc, gw, tickets, dispatcher)
	checkinSvc := service.NewCheckinService(regRepo, tickets)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "event-registration-service"})
	})
	e.Static("/qrcodes", cfg.QROutputDir)

	handler.NewEventHandler(eventSvc).RegisterRoutes(e.Group("/api/v1/events"))
	handler.NewRegistrationHandler(regSvc, checkinSvc).RegisterRoutes(e)
	handler.NewPaymentHandler(paySvc).RegisterRoutes(e)

	log.Printf("Event Registration Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
