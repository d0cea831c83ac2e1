package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/prasetyow/event-registration-service/internal/models"
	"github.com/prasetyow/event-registration-service/internal/repository"
	"gorm.io/gorm"
)

// paymentExpiry is how long the gateway keeps a transaction open.
const paymentExpiry = 24 * time.Hour

// InitiateResult bundles the created payment with the gateway's raw
// instructions (virtual account number, QR payload, expiry), passed through
// unmodified.
type InitiateResult struct {
	Payment      *models.Payment
	Instructions json.RawMessage
}

// GatewayNotification is the minimal content of an asynchronous gateway
// callback. The reported status is only a trigger to re-verify; the
// authoritative status is always fetched from the gateway.
type GatewayNotification struct {
	OrderID           string
	TransactionID     string
	TransactionStatus string
}

type PaymentService interface {
	Initiate(ctx context.Context, registrationID uint, method models.PaymentMethod) (*InitiateResult, error)
	Get(ctx context.Context, id uint) (*models.Payment, error)
	GetByRegistration(ctx context.Context, registrationID uint) (*models.Payment, error)
	HandleNotification(ctx context.Context, n GatewayNotification) error
}

type paymentService struct {
	payRepo   repository.PaymentRepository
	regRepo   repository.RegistrationRepository
	eventRepo repository.EventRepository
	regSvc    RegistrationService
	gateway   GatewayClient
	tickets   TicketIssuer
	notifier  NotificationDispatcher
}

func NewPaymentService(
	payRepo repository.PaymentRepository,
	regRepo repository.RegistrationRepository,
	eventRepo repository.EventRepository,
	regSvc RegistrationService,
	gateway GatewayClient,
	tickets TicketIssuer,
	notifier NotificationDispatcher,
) PaymentService {
	return &paymentService{
		payRepo:   payRepo,
		regRepo:   regRepo,
		eventRepo: eventRepo,
		regSvc:    regSvc,
		gateway:   gateway,
		tickets:   tickets,
		notifier:  notifier,
	}
}

func (s *paymentService) Initiate(ctx context.Context, registrationID uint, method models.PaymentMethod) (*InitiateResult, error) {
	var (
		result   *InitiateResult
		notifyID uint
	)

	err := s.payRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reg, err := s.regRepo.FindByIDForUpdate(ctx, tx, registrationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}

		if reg.Status == models.RegStatusPaid {
			return ErrAlreadyPaid
		}

		event, err := s.eventRepo.FindByID(ctx, reg.EventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		// Free events never touch the gateway: the payment settles
		// synchronously and the registration is paid in the same transaction.
		if event.Price == 0 {
			payment, err := s.settleFree(ctx, tx, reg)
			if err != nil {
				return err
			}
			notifyID = reg.ID
			result = &InitiateResult{Payment: payment}
			return nil
		}

		if method != models.MethodBcaVA && method != models.MethodQris {
			return ErrUnsupportedMethod
		}

		_, err = s.payRepo.FindPendingByRegistration(ctx, tx, reg.ID)
		if err == nil {
			return ErrPendingPaymentExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		payment := &models.Payment{
			RegistrationID: reg.ID,
			Amount:         event.Price,
			Method:         method,
			Status:         models.PayStatusPending,
			OrderID:        fmt.Sprintf("ORDER-%s", uuid.New().String()),
		}
		if err := s.payRepo.Create(ctx, tx, payment); err != nil {
			return err
		}

		charge, err := s.gateway.Charge(ctx, ChargeRequest{
			OrderID:       payment.OrderID,
			Method:        method,
			Amount:        payment.Amount,
			CustomerName:  reg.FullName,
			CustomerEmail: reg.Email,
			CustomerPhone: reg.PhoneNumber,
			ItemID:        event.ID,
			ItemName:      fmt.Sprintf("%s (%s)", event.Name, event.Type),
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
		}

		expiresAt := time.Now().Add(paymentExpiry)
		if err := s.payRepo.Updates(ctx, tx, payment.ID, map[string]any{
			"transaction_id": charge.TransactionID,
			"raw_response":   string(charge.RawResponse),
			"expires_at":     expiresAt,
		}); err != nil {
			return err
		}
		payment.TransactionID = charge.TransactionID
		payment.RawResponse = string(charge.RawResponse)
		payment.ExpiresAt = &expiresAt

		result = &InitiateResult{Payment: payment, Instructions: charge.RawResponse}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if notifyID != 0 {
		s.dispatch(ctx, notifyID)
	}

	return result, nil
}

// settleFree creates an amount-zero success payment, marks the registration
// paid, and issues the check-in ticket, all inside the caller's transaction.
func (s *paymentService) settleFree(ctx context.Context, tx *gorm.DB, reg *models.Registration) (*models.Payment, error) {
	now := time.Now()
	orderID := fmt.Sprintf("FREE-%s", uuid.New().String())
	payment := &models.Payment{
		RegistrationID: reg.ID,
		Amount:         0,
		Method:         models.MethodFree,
		Status:         models.PayStatusSuccess,
		OrderID:        orderID,
		TransactionID:  orderID,
		PaidAt:         &now,
	}
	if err := s.payRepo.Create(ctx, tx, payment); err != nil {
		return nil, err
	}

	if err := s.regSvc.MarkPaid(ctx, tx, reg.ID); err != nil {
		return nil, err
	}

	path, err := s.tickets.Issue(reg.ID, reg.RegistrationCode)
	if err != nil {
		// The free registration stands even if ticket rendering fails.
		log.Printf("[Payment] ticket issue failed for registration %d: %v", reg.ID, err)
		return payment, nil
	}
	if err := s.regSvc.AttachTicket(ctx, tx, reg.ID, path); err != nil {
		return nil, err
	}

	return payment, nil
}

func (s *paymentService) Get(ctx context.Context, id uint) (*models.Payment, error) {
	payment, err := s.payRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) GetByRegistration(ctx context.Context, registrationID uint) (*models.Payment, error) {
	payment, err := s.payRepo.FindLatestByRegistration(ctx, registrationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

// dispatch fires the ticket notification. Failures are logged, never
// propagated and never retried; delivery must not affect committed state.
func (s *paymentService) dispatch(ctx context.Context, registrationID uint) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, registrationID); err != nil {
		log.Printf("[Payment] ticket notification failed for registration %d: %v", registrationID, err)
	}
}
