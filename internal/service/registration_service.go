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

// RegistrationDetails carries the student-supplied fields of a sign-up.
// The caller identity (user id, email) comes from the verified token, never
// from the request body.
type RegistrationDetails struct {
	Year         string
	Dept         string
	RollNo       string
	MobileNumber string
}

type RegistrationService interface {
	Register(ctx context.Context, eventID uint, userID, userEmail string, details RegistrationDetails) (*models.Registration, error)
	Cancel(ctx context.Context, registrationID uint, callerID string, callerIsAdmin bool) (*models.Registration, error)
	ListForUser(ctx context.Context, userID string) ([]models.RegistrationWithEvent, error)
	ListAll(ctx context.Context, filter repository.RegistrationFilter) ([]models.RegistrationWithEvent, error)
}

type registrationService struct {
	regRepo   repository.RegistrationRepository
	eventRepo repository.EventRepository
	publisher *rabbitmq.Publisher
}

func NewRegistrationService(regRepo repository.RegistrationRepository, eventRepo repository.EventRepository, publisher *rabbitmq.Publisher) RegistrationService {
	return &registrationService{
		regRepo:   regRepo,
		eventRepo: eventRepo,
		publisher: publisher,
	}
}

func (s *registrationService) Register(ctx context.Context, eventID uint, userID, userEmail string, details RegistrationDetails) (*models.Registration, error) {
	var result *models.Registration

	err := s.regRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the event row — serializes concurrent attempts on one event
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		// 2. Closed and Completed events take no registrations
		if !event.Status.RegistrationOpen() {
			return ErrRegistrationClosed
		}

		// 3. One active registration per (event, user)
		_, err = s.regRepo.FindActiveByUserAndEvent(ctx, tx, userID, eventID)
		if err == nil {
			return ErrAlreadyRegistered
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 4. Capacity check against the confirmed rows, not the cached counter
		confirmed, err := s.regRepo.CountConfirmed(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if int(confirmed) >= event.MaxCapacity {
			return ErrEventFull
		}

		reg := &models.Registration{
			EventID:      eventID,
			UserID:       userID,
			UserEmail:    userEmail,
			Year:         details.Year,
			Dept:         details.Dept,
			RollNo:       details.RollNo,
			MobileNumber: details.MobileNumber,
			Status:       models.RegistrationConfirmed,
		}
		if err := s.regRepo.Create(ctx, tx, reg); err != nil {
			return err
		}

		// 5. Recompute the denormalized counter and derived status
		newCount := int(confirmed) + 1
		status := event.Status
		if newCount >= event.MaxCapacity && status == models.EventOpen {
			status = models.EventFull
		}
		if err := s.eventRepo.UpdateOccupancy(ctx, tx, eventID, newCount, status); err != nil {
			return err
		}

		result = reg
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("registration.created", result)
	}
	return result, nil
}

// Cancel flips a confirmed registration to cancelled, decrements the event
// counter and reopens a Full event when a seat frees up. Admin-set Closed and
// Completed statuses are never touched.
func (s *registrationService) Cancel(ctx context.Context, registrationID uint, callerID string, callerIsAdmin bool) (*models.Registration, error) {
	var result *models.Registration

	err := s.regRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reg, err := s.regRepo.FindByID(ctx, registrationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}
		if !callerIsAdmin && reg.UserID != callerID {
			return ErrNotOwner
		}
		if reg.Status == models.RegistrationCancelled {
			return ErrAlreadyCancelled
		}

		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, reg.EventID)
		if err != nil {
			return err
		}

		if err := s.regRepo.UpdateStatus(ctx, tx, registrationID, models.RegistrationCancelled); err != nil {
			return err
		}

		confirmed, err := s.regRepo.CountConfirmed(ctx, tx, reg.EventID)
		if err != nil {
			return err
		}
		status := event.Status
		if status == models.EventFull && int(confirmed) < event.MaxCapacity {
			status = models.EventOpen
		}
		if err := s.eventRepo.UpdateOccupancy(ctx, tx, reg.EventID, int(confirmed), status); err != nil {
			return err
		}

		reg.Status = models.RegistrationCancelled
		result = reg
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("registration.cancelled", result)
	}
	return result, nil
}

func (s *registrationService) ListForUser(ctx context.Context, userID string) ([]models.RegistrationWithEvent, error) {
	return s.regRepo.FindByUserID(ctx, userID)
}

func (s *registrationService) ListAll(ctx context.Context, filter repository.RegistrationFilter) ([]models.RegistrationWithEvent, error) {
	rows, err := s.regRepo.FindAllWithEvent(ctx, filter)
	if err != nil {
		return nil, err
	}
	if filter.Search == "" {
		return rows, nil
	}

	matched := make([]models.RegistrationWithEvent, 0, len(rows))
	for _, row := range rows {
		if matchesSearch(row, filter.Search) {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

// matchesSearch reports whether term occurs, case-insensitively, in any of
// the searchable fields of a joined registration row.
func matchesSearch(row models.RegistrationWithEvent, term string) bool {
	term = strings.ToLower(term)
	for _, field := range []string{row.UserEmail, row.RollNo, row.EventTitle, row.Year, row.Dept} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
