package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prasetyow/event-registration-service/internal/dto"
	"github.com/prasetyow/event-registration-service/internal/service"
)

type RegistrationHandler struct {
	svc     service.RegistrationService
	checkin service.CheckinService
}

func NewRegistrationHandler(svc service.RegistrationService, checkin service.CheckinService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc, checkin: checkin}
}

func (h *RegistrationHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/registrations")
	g.POST("", h.CreateRegistration)
	g.GET("/:id", h.GetRegistration)
	g.GET("/code/:code", h.GetRegistrationByCode)
	g.DELETE("/:id", h.DeleteRegistration)
	g.PUT("/:id/attend", h.MarkAttendance)
	g.POST("/verify-qr", h.VerifyTicket)

	e.GET("/api/v1/events/:id/registrations", h.ListByEvent)
}

func (h *RegistrationHandler) CreateRegistration(c echo.Context) error {
	var req dto.CreateRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.FullName == "" || req.Email == "" || req.PhoneNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "full_name, email and phone_number are required")
	}
	if !req.Gender.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "gender must be male or female")
	}
	if req.Age < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "age must not be negative")
	}
	if req.EventID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "event_id is required")
	}

	reg, err := h.svc.Create(c.Request().Context(), service.CreateRegistrationInput{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		Age:         req.Age,
		FoodAllergy: req.FoodAllergy,
		EventID:     req.EventID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound), errors.Is(err, service.ErrEventNotActive):
			return echo.NewHTTPError(http.StatusNotFound, "event not found or not active")
		case errors.Is(err, service.ErrQuotaExceeded), errors.Is(err, service.ErrDuplicateRegistration):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrFoodAllergyRequired):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.Success("registration created", reg))
}

func (h *RegistrationHandler) GetRegistration(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid registration id")
	}

	reg, err := h.svc.Get(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Success("registration retrieved", reg))
}

func (h *RegistrationHandler) GetRegistrationByCode(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "registration code is required")
	}

	reg, err := h.svc.GetByCode(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Success("registration retrieved", reg))
}

func (h *RegistrationHandler) ListByEvent(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	regs, err := h.svc.ListByEvent(c.Request().Context(), uint(eventID))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Success("registrations retrieved", regs))
}

func (h *RegistrationHandler) DeleteRegistration(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid registration id")
	}

	if err := h.svc.Delete(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Success("registration deleted", nil))
}

func (h *RegistrationHandler) MarkAttendance(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid registration id")
	}

	reg, err := h.svc.MarkAttended(c.Request().Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotPaid):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.Success("attendance recorded", reg))
}

func (h *RegistrationHandler) VerifyTicket(c echo.Context) error {
	var req dto.VerifyTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.QRData == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "qr_data is required")
	}

	reg, err := h.checkin.VerifyAndCheckIn(c.Request().Context(), req.QRData)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTicket):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrRegistrationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTicketMismatch), errors.Is(err, service.ErrNotPaid):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.Success("ticket verified", reg))
}
