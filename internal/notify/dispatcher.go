package notify

import (
	"context"

	"github.com/prasetyow/event-registration-service/pkg/rabbitmq"
)

const ticketIssuedKey = "ticket.issued"

// TicketMessage is the payload published when a registration's ticket is
// ready to be delivered.
type TicketMessage struct {
	RegistrationID uint `json:"registration_id"`
}

// Dispatcher implements service.NotificationDispatcher by publishing a
// ticket.issued message. Delivery itself happens in the consumer worker.
type Dispatcher struct {
	publisher *rabbitmq.Publisher
}

func NewDispatcher(publisher *rabbitmq.Publisher) *Dispatcher {
	return &Dispatcher{publisher: publisher}
}

func (d *Dispatcher) Send(ctx context.Context, registrationID uint) error {
	return d.publisher.Publish(ticketIssuedKey, TicketMessage{RegistrationID: registrationID})
}
