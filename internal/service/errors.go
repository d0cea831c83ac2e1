package service

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventNotActive       = errors.New("event is not active")
	ErrQuotaExceeded        = errors.New("event quota is full")
	ErrQuotaBelowRegistered = errors.New("quota cannot be lower than the registered count")

	ErrDuplicateRegistration = errors.New("email already registered for this event")
	ErrFoodAllergyRequired   = errors.New("food allergy is required for the main event")
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrRegistrationClosed    = errors.New("registration is cancelled or expired")

	ErrAlreadyPaid          = errors.New("registration is already paid")
	ErrPendingPaymentExists = errors.New("a pending payment already exists for this registration")
	ErrUnsupportedMethod    = errors.New("unsupported payment method")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")

	ErrInvalidTicket  = errors.New("ticket payload is not valid")
	ErrTicketMismatch = errors.New("ticket does not match the registration record")
	ErrNotPaid        = errors.New("payment has not been completed")
)
