package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prasetyow/event-registration-service/internal/models"
	"github.com/prasetyow/event-registration-service/internal/repository"
	"gorm.io/gorm"
)

// codeAttempts bounds the retry loop when a freshly generated registration
// code collides with an existing one.
const codeAttempts = 3

type CreateRegistrationInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	Gender      models.Gender
	Age         int
	FoodAllergy string
	EventID     uint
}

type RegistrationService interface {
	Create(ctx context.Context, in CreateRegistrationInput) (*models.Registration, error)
	Get(ctx context.Context, id uint) (*models.Registration, error)
	GetByCode(ctx context.Context, code string) (*models.Registration, error)
	ListByEvent(ctx context.Context, eventID uint) ([]models.Registration, error)
	MarkPaid(ctx context.Context, tx *gorm.DB, id uint) error
	AttachTicket(ctx context.Context, tx *gorm.DB, id uint, path string) error
	MarkAttended(ctx context.Context, id uint) (*models.Registration, error)
	Delete(ctx context.Context, id uint) error
}

type registrationService struct {
	regRepo   repository.RegistrationRepository
	payRepo   repository.PaymentRepository
	eventRepo repository.EventRepository
	ledger    *CapacityLedger
}

func NewRegistrationService(
	regRepo repository.RegistrationRepository,
	payRepo repository.PaymentRepository,
	eventRepo repository.EventRepository,
	ledger *CapacityLedger,
) RegistrationService {
	return &registrationService{
		regRepo:   regRepo,
		payRepo:   payRepo,
		eventRepo: eventRepo,
		ledger:    ledger,
	}
}

func (s *registrationService) Create(ctx context.Context, in CreateRegistrationInput) (*models.Registration, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	if in.FoodAllergy == "" {
		in.FoodAllergy = "-"
	}

	var result *models.Registration

	err := s.regRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the event row and consume one capacity unit — serializes
		// concurrent registration attempts for the same event.
		event, err := s.ledger.TryReserve(ctx, tx, in.EventID)
		if err != nil {
			return err
		}

		// 2. Duplicate guard: one live registration per (email, event).
		_, err = s.regRepo.FindActiveByEmailAndEvent(ctx, tx, in.Email, in.EventID)
		if err == nil {
			return ErrDuplicateRegistration
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 3. Main event requires the food allergy field.
		if event.Type == models.TypeMainEvent && event.RequireFoodAllergy &&
			(in.FoodAllergy == "" || in.FoodAllergy == "-") {
			return ErrFoodAllergyRequired
		}

		code, err := s.uniqueCode(ctx, tx, event.CodePrefix())
		if err != nil {
			return err
		}

		reg := &models.Registration{
			FullName:         in.FullName,
			Email:            in.Email,
			PhoneNumber:      in.PhoneNumber,
			Gender:           in.Gender,
			Age:              in.Age,
			FoodAllergy:      in.FoodAllergy,
			EventID:          in.EventID,
			Status:           models.RegStatusPending,
			AttendanceStatus: models.AttendanceNotAttended,
			RegistrationCode: code,
		}
		if err := s.regRepo.Create(ctx, tx, reg); err != nil {
			return err
		}

		result = reg
		return nil
	})

	return result, err
}

// uniqueCode generates a registration code, retrying a bounded number of
// times if the random suffix collides with an existing record.
func (s *registrationService) uniqueCode(ctx context.Context, tx *gorm.DB, prefix string) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code := newRegistrationCode(prefix)
		exists, err := s.regRepo.CodeExists(ctx, tx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("registration code collision after %d attempts", codeAttempts)
}

func (s *registrationService) Get(ctx context.Context, id uint) (*models.Registration, error) {
	reg, err := s.regRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (s *registrationService) GetByCode(ctx context.Context, code string) (*models.Registration, error) {
	reg, err := s.regRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (s *registrationService) ListByEvent(ctx context.Context, eventID uint) ([]models.Registration, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return s.regRepo.FindByEventID(ctx, eventID)
}

// MarkPaid transitions pending → paid inside the caller's transaction.
// Calling it on an already-paid registration is a no-op; cancelled and
// expired registrations never transition again.
func (s *registrationService) MarkPaid(ctx context.Context, tx *gorm.DB, id uint) error {
	reg, err := s.regRepo.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRegistrationNotFound
		}
		return err
	}

	switch reg.Status {
	case models.RegStatusPaid:
		return nil
	case models.RegStatusCancelled, models.RegStatusExpired:
		return ErrRegistrationClosed
	}

	return s.regRepo.UpdateStatus(ctx, tx, id, models.RegStatusPaid)
}

func (s *registrationService) AttachTicket(ctx context.Context, tx *gorm.DB, id uint, path string) error {
	return s.regRepo.UpdateQRCode(ctx, tx, id, path)
}

// MarkAttended records physical attendance for a paid registration. Repeat
// calls are harmless.
func (s *registrationService) MarkAttended(ctx context.Context, id uint) (*models.Registration, error) {
	reg, err := s.regRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}

	if reg.Status != models.RegStatusPaid {
		return nil, ErrNotPaid
	}
	if reg.AttendanceStatus == models.AttendanceAttended {
		return reg, nil
	}

	if err := s.regRepo.UpdateAttendance(ctx, id, models.AttendanceAttended); err != nil {
		return nil, err
	}
	reg.AttendanceStatus = models.AttendanceAttended
	return reg, nil
}

// Delete removes a registration together with its payments, releasing the
// consumed capacity unit unless the registration was already cancelled.
func (s *registrationService) Delete(ctx context.Context, id uint) error {
	return s.regRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reg, err := s.regRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}

		if reg.Status != models.RegStatusCancelled {
			if err := s.ledger.Release(ctx, tx, reg.EventID); err != nil {
				return err
			}
		}

		if err := s.payRepo.DeleteByRegistration(ctx, tx, reg.ID); err != nil {
			return err
		}

		return s.regRepo.Delete(ctx, tx, reg.ID)
	})
}
