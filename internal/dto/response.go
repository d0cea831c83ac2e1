package dto

import (
	"encoding/json"

	"github.com/prasetyow/event-registration-service/internal/models"
)

// Envelope is the fixed response shape: {"status", "message", "data?"}.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func Success(message string, data any) Envelope {
	return Envelope{Status: "success", Message: message, Data: data}
}

func Error(message string) Envelope {
	return Envelope{Status: "error", Message: message}
}

// EventResponse decorates the stored event with its derived availability.
type EventResponse struct {
	models.Event
	Available      bool `json:"available"`
	RemainingSlots int  `json:"remaining_slots"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		Event:          *e,
		Available:      e.Available(),
		RemainingSlots: e.RemainingSlots(),
	}
}

// PaymentCreatedResponse carries the payment plus the gateway's raw
// instructions, passed through unmodified.
type PaymentCreatedResponse struct {
	Payment             *models.Payment `json:"payment"`
	PaymentInstructions json.RawMessage `json:"payment_instructions,omitempty"`
}
