package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prasetyow/event-registration-service/internal/dto"
	"github.com/prasetyow/event-registration-service/internal/service"
)

type PaymentHandler struct {
	svc service.PaymentService
}

func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/payments")
	g.POST("", h.CreatePayment)
	g.GET("/:id", h.GetPayment)
	g.GET("/registration/:registrationId", h.GetPaymentByRegistration)
	g.POST("/webhook", h.Webhook)
}

func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var req dto.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RegistrationID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "registration_id is required")
	}

	result, err := h.svc.Initiate(c.Request().Context(), req.RegistrationID, req.Method)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound), errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAlreadyPaid), errors.Is(err, service.ErrPendingPaymentExists):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrUnsupportedMethod):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrGatewayUnavailable):
			return echo.NewHTTPError(http.StatusBadGateway, "payment gateway unavailable, please retry")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.Success("payment created", dto.PaymentCreatedResponse{
		Payment:             result.Payment,
		PaymentInstructions: result.Instructions,
	}))
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment id")
	}

	payment, err := h.svc.Get(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Success("payment retrieved", payment))
}

func (h *PaymentHandler) GetPaymentByRegistration(c echo.Context) error {
	registrationID, err := strconv.ParseUint(c.Param("registrationId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid registration id")
	}

	payment, err := h.svc.GetByRegistration(c.Request().Context(), uint(registrationID))
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Success("payment retrieved", payment))
}

// Webhook acknowledges every delivery it can act on. Internal failures are
// logged and acked so the gateway does not retry-storm on errors it cannot
// fix; only a failed status re-verification is surfaced as retryable.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	var req dto.WebhookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid notification data")
	}
	if req.OrderID == "" || req.TransactionStatus == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid notification data")
	}

	err := h.svc.HandleNotification(c.Request().Context(), service.GatewayNotification{
		OrderID:           req.OrderID,
		TransactionID:     req.TransactionID,
		TransactionStatus: req.TransactionStatus,
	})
	if err != nil {
		if errors.Is(err, service.ErrGatewayUnavailable) {
			return echo.NewHTTPError(http.StatusBadGateway, "could not verify transaction status")
		}
		if errors.Is(err, service.ErrPaymentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		log.Printf("[Webhook] notification for order %s failed: %v", req.OrderID, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
}
