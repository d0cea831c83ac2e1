package mailer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mailersend/mailersend-go"
)

const sendTimeout = 5 * time.Second

// Mailer sends ticket confirmation emails through MailerSend.
type Mailer struct {
	client     *mailersend.Mailersend
	fromName   string
	fromEmail  string
	templateID string
}

func New(apiKey, fromName, fromEmail, templateID string) *Mailer {
	return &Mailer{
		client:     mailersend.NewMailersend(apiKey),
		fromName:   fromName,
		fromEmail:  fromEmail,
		templateID: templateID,
	}
}

// SendTicket delivers the registration confirmation with the attendee's
// registration code and event details filled into the template.
func (m *Mailer) SendTicket(ctx context.Context, to, fullName, eventName, registrationCode string) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	message := m.client.Email.NewMessage()
	message.SetFrom(mailersend.From{Name: m.fromName, Email: m.fromEmail})
	message.SetRecipients([]mailersend.Recipient{{Name: fullName, Email: to}})
	message.SetSubject(fmt.Sprintf("Registration confirmed - %s", eventName))
	message.SetTemplateID(m.templateID)
	message.SetPersonalization([]mailersend.Personalization{{
		Email: to,
		Data: map[string]interface{}{
			"full_name":         fullName,
			"event_name":        eventName,
			"registration_code": registrationCode,
		},
	}})

	res, err := m.client.Email.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("send ticket email: %w", err)
	}

	log.Printf("[Mailer] ticket email sent to %s, message id %s", to, res.Header.Get("X-Message-Id"))
	return nil
}
