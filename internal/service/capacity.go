package service

import (
	"context"
	"errors"

	"github.com/prasetyow/event-registration-service/internal/models"
	"github.com/prasetyow/event-registration-service/internal/repository"
	"gorm.io/gorm"
)

// CapacityLedger is the sole authority for admission decisions. TryReserve
// and Release must run inside the caller's transaction so the quota check and
// the counter update commit or roll back together.
type CapacityLedger struct {
	events repository.EventRepository
}

func NewCapacityLedger(events repository.EventRepository) *CapacityLedger {
	return &CapacityLedger{events: events}
}

// TryReserve locks the event row, checks that the event is active and has
// remaining quota, and consumes one capacity unit. Two callers racing for the
// last slot serialize on the row lock; exactly one wins.
func (l *CapacityLedger) TryReserve(ctx context.Context, tx *gorm.DB, eventID uint) (*models.Event, error) {
	event, err := l.events.FindByIDForUpdate(ctx, tx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if !event.IsActive {
		return nil, ErrEventNotActive
	}
	if !event.Available() {
		return nil, ErrQuotaExceeded
	}

	if err := l.events.IncrementRegistered(ctx, tx, eventID); err != nil {
		return nil, err
	}
	event.RegisteredCount++

	return event, nil
}

// Release returns one capacity unit. The decrement is floored at zero, so
// releasing an already-released or missing event is harmless.
func (l *CapacityLedger) Release(ctx context.Context, tx *gorm.DB, eventID uint) error {
	return l.events.DecrementRegistered(ctx, tx, eventID)
}
