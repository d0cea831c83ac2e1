package service

import (
	"context"
	"testing"

	"github.com/prasetyow/event-registration-service/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func markPaidFixture(status models.RegistrationStatus) (*mockRegRepo, *int) {
	updates := new(int)
	repo := &mockRegRepo{
		findByIDForUpdateFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Registration, error) {
			return &models.Registration{
				ID:               id,
				EventID:          1,
				Status:           status,
				RegistrationCode: "EVT-MAIN-260830-0042",
			}, nil
		},
		updateStatusFn: func(ctx context.Context, tx *gorm.DB, id uint, s models.RegistrationStatus) error {
			*updates++
			return nil
		},
	}
	return repo, updates
}

func TestMarkPaid_PendingTransitions(t *testing.T) {
	repo, updates := markPaidFixture(models.RegStatusPending)
	var gotStatus models.RegistrationStatus
	repo.updateStatusFn = func(ctx context.Context, tx *gorm.DB, id uint, s models.RegistrationStatus) error {
		*updates++
		gotStatus = s
		return nil
	}
	svc := NewRegistrationService(repo, nil, nil, nil)

	err := svc.MarkPaid(context.Background(), nil, 42)

	assert.NoError(t, err)
	assert.Equal(t, 1, *updates)
	assert.Equal(t, models.RegStatusPaid, gotStatus)
}

func TestMarkPaid_AlreadyPaidIsNoOp(t *testing.T) {
	repo, updates := markPaidFixture(models.RegStatusPaid)
	svc := NewRegistrationService(repo, nil, nil, nil)

	err := svc.MarkPaid(context.Background(), nil, 42)

	assert.NoError(t, err, "re-settling a paid registration must succeed")
	assert.Equal(t, 0, *updates, "no write on repeat settlement")
}

func TestMarkPaid_CancelledRegistrationRejected(t *testing.T) {
	repo, updates := markPaidFixture(models.RegStatusCancelled)
	svc := NewRegistrationService(repo, nil, nil, nil)

	err := svc.MarkPaid(context.Background(), nil, 42)

	assert.ErrorIs(t, err, ErrRegistrationClosed)
	assert.Equal(t, 0, *updates, "cancelled registrations never transition")
}

func TestMarkPaid_ExpiredRegistrationRejected(t *testing.T) {
	repo, updates := markPaidFixture(models.RegStatusExpired)
	svc := NewRegistrationService(repo, nil, nil, nil)

	err := svc.MarkPaid(context.Background(), nil, 42)

	assert.ErrorIs(t, err, ErrRegistrationClosed)
	assert.Equal(t, 0, *updates)
}

func TestMarkPaid_NotFound(t *testing.T) {
	svc := NewRegistrationService(&mockRegRepo{}, nil, nil, nil)

	err := svc.MarkPaid(context.Background(), nil, 99)

	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}
