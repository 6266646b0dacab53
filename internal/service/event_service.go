package service

import (
	"context"
	"errors"
	"strings"

	"github.com/techclub/club-portal/internal/models"
	"github.com/techclub/club-portal/internal/repository"
	"github.com/techclub/club-portal/pkg/rabbitmq"
	"gorm.io/gorm"
)

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
}

type eventService struct {
	repo      repository.EventRepository
	publisher *rabbitmq.Publisher
}

func NewEventService(repo repository.EventRepository, publisher *rabbitmq.Publisher) EventService {
	return &eventService{repo: repo, publisher: publisher}
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if err := s.repo.Create(ctx, event); err != nil {
		return err
	}
	if s.publisher != nil {
		_ = s.publisher.Publish("event.created", event)
	}
	return nil
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
	return s.repo.FindAll(ctx)
}

// UpdateEvent overwrites the editable fields. It intentionally does not
// recompute current_count: capacity edits are not validated against existing
// confirmed registrations.
func (s *eventService) UpdateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	existing, err := s.repo.FindByID(ctx, event.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	existing.Title = event.Title
	existing.Description = event.Description
	existing.Type = event.Type
	existing.StartTime = event.StartTime
	existing.EndTime = event.EndTime
	existing.MaxCapacity = event.MaxCapacity
	existing.Status = event.Status
	existing.ImageURL = event.ImageURL

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if isForeignKeyViolation(err) {
			return ErrConstraintViolation
		}
		return err
	}
	return nil
}

// isForeignKeyViolation classifies the store error by text: 23503 is the
// postgres foreign_key_violation code surfaced through the pgx driver.
func isForeignKeyViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23503") ||
		strings.Contains(msg, "violates foreign key constraint")
}
