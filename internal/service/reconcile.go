package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prasetyow/event-registration-service/internal/models"
	"gorm.io/gorm"
)

// mapTransactionStatus translates the gateway's transaction status into the
// internal payment status. The second return value is false when the gateway
// status carries no state change (e.g. "pending", "authorize").
func mapTransactionStatus(gatewayStatus string) (models.PaymentStatus, bool) {
	switch gatewayStatus {
	case "settlement", "capture":
		return models.PayStatusSuccess, true
	case "expire":
		return models.PayStatusExpired, true
	case "cancel", "deny":
		return models.PayStatusFailed, true
	default:
		return "", false
	}
}

// HandleNotification reconciles an asynchronous gateway callback against the
// stored payment. The callback body is treated only as a trigger: the
// authoritative status is re-fetched from the gateway, so duplicated and
// out-of-order deliveries converge on the same final state.
func (s *paymentService) HandleNotification(ctx context.Context, n GatewayNotification) error {
	// The one failure mode allowed to surface as retryable: we could not
	// reach the gateway to verify, so nothing has been applied yet.
	status, err := s.gateway.TransactionStatus(ctx, n.OrderID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	var notifyID uint

	err = s.payRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := s.payRepo.FindByOrderIDForUpdate(ctx, tx, n.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		fields := map[string]any{"raw_response": string(status.Raw)}
		if status.TransactionID != "" {
			fields["transaction_id"] = status.TransactionID
		}

		target, changed := mapTransactionStatus(status.Status)

		// No state change, duplicate delivery, or a stale notification for a
		// payment that already settled: record the payload and stop. Success
		// is terminal and is never downgraded.
		if !changed || target == payment.Status || payment.Status == models.PayStatusSuccess {
			return s.payRepo.Updates(ctx, tx, payment.ID, fields)
		}

		if target != models.PayStatusSuccess {
			fields["status"] = target
			return s.payRepo.Updates(ctx, tx, payment.ID, fields)
		}

		now := time.Now()
		fields["status"] = models.PayStatusSuccess
		fields["paid_at"] = now
		if err := s.payRepo.Updates(ctx, tx, payment.ID, fields); err != nil {
			return err
		}

		reg, err := s.regRepo.FindByIDForUpdate(ctx, tx, payment.RegistrationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}

		if err := s.regSvc.MarkPaid(ctx, tx, reg.ID); err != nil {
			return err
		}

		path, err := s.tickets.Issue(reg.ID, reg.RegistrationCode)
		if err != nil {
			return fmt.Errorf("issue ticket: %w", err)
		}
		if err := s.regSvc.AttachTicket(ctx, tx, reg.ID, path); err != nil {
			return err
		}

		notifyID = reg.ID
		return nil
	})
	if err != nil {
		return err
	}

	// Outbound notification happens after commit, best-effort only.
	if notifyID != 0 {
		s.dispatch(ctx, notifyID)
	}

	return nil
}
