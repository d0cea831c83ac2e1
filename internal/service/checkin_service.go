package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/prasetyow/event-registration-service/internal/models"
	"github.com/prasetyow/event-registration-service/internal/repository"
	"gorm.io/gorm"
)

// CheckinService validates a presented check-in ticket against a paid
// registration and records attendance at most once.
type CheckinService interface {
	VerifyAndCheckIn(ctx context.Context, payload string) (*models.Registration, error)
}

type checkinService struct {
	regRepo repository.RegistrationRepository
	tickets TicketIssuer
}

func NewCheckinService(regRepo repository.RegistrationRepository, tickets TicketIssuer) CheckinService {
	return &checkinService{regRepo: regRepo, tickets: tickets}
}

func (s *checkinService) VerifyAndCheckIn(ctx context.Context, payload string) (*models.Registration, error) {
	claims, err := s.tickets.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}

	reg, err := s.regRepo.FindByID(ctx, claims.RegistrationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}

	// A replayed ticket pointing at a different record carries the wrong code.
	if reg.RegistrationCode != claims.RegistrationCode {
		return nil, ErrTicketMismatch
	}

	if reg.Status != models.RegStatusPaid {
		return nil, ErrNotPaid
	}

	// Repeat scans are harmless: report success without mutating again.
	if reg.AttendanceStatus == models.AttendanceAttended {
		return reg, nil
	}

	if err := s.regRepo.UpdateAttendance(ctx, reg.ID, models.AttendanceAttended); err != nil {
		return nil, err
	}
	reg.AttendanceStatus = models.AttendanceAttended

	return reg, nil
}
