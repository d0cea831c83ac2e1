package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prasetyow/event-registration-service/internal/models"
)

// ChargeRequest is the input for opening a transaction at the payment gateway.
type ChargeRequest struct {
	OrderID       string
	Method        models.PaymentMethod
	Amount        float64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ItemID        uint
	ItemName      string
}

// ChargeResult carries the gateway's correlation identifiers plus the raw
// response body, passed through to the caller as payment instructions.
type ChargeResult struct {
	OrderID       string
	TransactionID string
	RawResponse   json.RawMessage
}

// TransactionStatus is the gateway's authoritative view of a transaction.
type TransactionStatus struct {
	OrderID       string
	TransactionID string
	Status        string
	Raw           json.RawMessage
}

// GatewayClient talks to the external payment provider. Implementations must
// be safe for concurrent use.
type GatewayClient interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	TransactionStatus(ctx context.Context, orderID string) (*TransactionStatus, error)
}

// TicketClaims is the payload embedded in a check-in ticket. The JSON field
// names are part of the ticket wire format and must not change.
type TicketClaims struct {
	RegistrationID   uint      `json:"id"`
	RegistrationCode string    `json:"regNum"`
	IssuedAt         time.Time `json:"timestamp"`
}

// TicketIssuer produces and decodes check-in tickets.
type TicketIssuer interface {
	Issue(registrationID uint, registrationCode string) (string, error)
	Decode(payload string) (TicketClaims, error)
}

// NotificationDispatcher delivers the ticket to the attendee. Send is
// best-effort: failures are logged by callers, never retried here.
type NotificationDispatcher interface {
	Send(ctx context.Context, registrationID uint) error
}
