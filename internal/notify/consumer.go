package notify

import (
	"context"
	"encoding/json"
	"log"

	"github.com/prasetyow/event-registration-service/internal/repository"
	"github.com/prasetyow/event-registration-service/pkg/mailer"
	amqp "github.com/rabbitmq/amqp091-go"
)

// TicketConsumer turns ticket.issued messages into confirmation emails.
type TicketConsumer struct {
	regRepo repository.RegistrationRepository
	mail    *mailer.Mailer
}

func NewTicketConsumer(regRepo repository.RegistrationRepository, mail *mailer.Mailer) *TicketConsumer {
	return &TicketConsumer{regRepo: regRepo, mail: mail}
}

// Start listens for messages and sends the corresponding emails.
func (tc *TicketConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			tc.handleMessage(msg)
		}
		log.Println("[TicketConsumer] channel closed, stopping consumer")
	}()
}

func (tc *TicketConsumer) handleMessage(msg amqp.Delivery) {
	var m TicketMessage
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		log.Printf("[TicketConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	ctx := context.Background()

	reg, err := tc.regRepo.FindByID(ctx, m.RegistrationID)
	if err != nil {
		log.Printf("[TicketConsumer] registration %d not found: %v", m.RegistrationID, err)
		msg.Nack(false, false)
		return
	}

	eventName := ""
	if reg.Event != nil {
		eventName = reg.Event.Name
	}

	if err := tc.mail.SendTicket(ctx, reg.Email, reg.FullName, eventName, reg.RegistrationCode); err != nil {
		log.Printf("[TicketConsumer] failed to email registration %d: %v", reg.ID, err)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[TicketConsumer] ticket emailed for registration %d (%s)", reg.ID, reg.RegistrationCode)
	msg.Ack(false)
}
