package service

import (
	"context"
	"errors"

	"github.com/prasetyow/event-registration-service/internal/models"
	"github.com/prasetyow/event-registration-service/internal/repository"
	"gorm.io/gorm"
)

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeactivateEvent(ctx context.Context, id uint) error
}

type eventService struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) EventService {
	return &eventService{repo: repo}
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	// The main event always collects food allergies.
	if event.Type == models.TypeMainEvent {
		event.RequireFoodAllergy = true
	}
	return s.repo.Create(ctx, event)
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.repo.FindAllActive(ctx)
}

func (s *eventService) UpdateEvent(ctx context.Context, event *models.Event) error {
	if event.Type == models.TypeMainEvent {
		event.RequireFoodAllergy = true
	}
	// Shrinking the quota below what is already consumed would leave the
	// counter out of range.
	if event.Quota < event.RegisteredCount {
		return ErrQuotaBelowRegistered
	}
	return s.repo.Update(ctx, event)
}

func (s *eventService) DeactivateEvent(ctx context.Context, id uint) error {
	if _, err := s.GetEvent(ctx, id); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, id)
}
