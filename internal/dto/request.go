package dto

import (
	"time"

	"github.com/prasetyow/event-registration-service/internal/models"
)

type CreateEventRequest struct {
	Name               string           `json:"name" validate:"required"`
	Type               models.EventType `json:"type" validate:"required"`
	Date               time.Time        `json:"date" validate:"required"`
	Quota              int              `json:"quota" validate:"required,gt=0"`
	Price              float64          `json:"price" validate:"gte=0"`
	Description        string           `json:"description"`
	RequireFoodAllergy bool             `json:"require_food_allergy"`
}

type UpdateEventRequest struct {
	Name               *string    `json:"name"`
	Date               *time.Time `json:"date"`
	Quota              *int       `json:"quota"`
	Price              *float64   `json:"price"`
	Description        *string    `json:"description"`
	RequireFoodAllergy *bool      `json:"require_food_allergy"`
	IsActive           *bool      `json:"is_active"`
}

type CreateRegistrationRequest struct {
	FullName    string        `json:"full_name" validate:"required"`
	Email       string        `json:"email" validate:"required,email"`
	PhoneNumber string        `json:"phone_number" validate:"required"`
	Gender      models.Gender `json:"gender" validate:"required"`
	Age         int           `json:"age" validate:"gte=0"`
	FoodAllergy string        `json:"food_allergy"`
	EventID     uint          `json:"event_id" validate:"required"`
}

type CreatePaymentRequest struct {
	RegistrationID uint                 `json:"registration_id" validate:"required"`
	Method         models.PaymentMethod `json:"payment_method" validate:"required"`
}

// WebhookRequest mirrors the gateway's notification body. Only the order id
// matters for reconciliation; the rest is a trigger to re-verify.
type WebhookRequest struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
}

type VerifyTicketRequest struct {
	QRData string `json:"qr_data" validate:"required"`
}
