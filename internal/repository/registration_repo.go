package repository

import (
	"context"

	"github.com/techclub/club-portal/internal/models"
	"gorm.io/gorm"
)

// RegistrationFilter narrows admin listings and exports. Zero values mean
// "no constraint". Search is applied by the service layer, not here.
type RegistrationFilter struct {
	Year    string
	Dept    string
	EventID uint
	Status  models.RegistrationStatus
	Search  string
}

type RegistrationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reg *models.Registration) error
	FindByID(ctx context.Context, id uint) (*models.Registration, error)
	FindActiveByUserAndEvent(ctx context.Context, tx *gorm.DB, userID string, eventID uint) (*models.Registration, error)
	FindByUserID(ctx context.Context, userID string) ([]models.RegistrationWithEvent, error)
	FindAllWithEvent(ctx context.Context, filter RegistrationFilter) ([]models.RegistrationWithEvent, error)
	CountConfirmed(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.RegistrationStatus) error
	GetDB() *gorm.DB
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *registrationRepository) Create(ctx context.Context, tx *gorm.DB, reg *models.Registration) error {
	return tx.WithContext(ctx).Create(reg).Error
}

func (r *registrationRepository) FindByID(ctx context.Context, id uint) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.WithContext(ctx).First(&reg, id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) FindActiveByUserAndEvent(ctx context.Context, tx *gorm.DB, userID string, eventID uint) (*models.Registration, error) {
	var reg models.Registration
	err := tx.WithContext(ctx).
		Where("user_id = ? AND event_id = ? AND status <> ?", userID, eventID, models.RegistrationCancelled).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

const joinedColumns = "registrations.*, events.title AS event_title, events.start_time AS event_start_time"

func (r *registrationRepository) FindByUserID(ctx context.Context, userID string) ([]models.RegistrationWithEvent, error) {
	var rows []models.RegistrationWithEvent
	err := r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Select(joinedColumns).
		Joins("JOIN events ON events.id = registrations.event_id").
		Where("registrations.user_id = ?", userID).
		Order("registrations.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *registrationRepository) FindAllWithEvent(ctx context.Context, filter RegistrationFilter) ([]models.RegistrationWithEvent, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Select(joinedColumns).
		Joins("JOIN events ON events.id = registrations.event_id")

	if filter.Year != "" {
		q = q.Where("registrations.year = ?", filter.Year)
	}
	if filter.Dept != "" {
		q = q.Where("registrations.dept = ?", filter.Dept)
	}
	if filter.EventID != 0 {
		q = q.Where("registrations.event_id = ?", filter.EventID)
	}
	if filter.Status != "" {
		q = q.Where("registrations.status = ?", filter.Status)
	}

	var rows []models.RegistrationWithEvent
	if err := q.Order("registrations.id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *registrationRepository) CountConfirmed(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Registration{}).
		Where("event_id = ? AND status = ?", eventID, models.RegistrationConfirmed).
		Count(&count).Error
	return count, err
}

func (r *registrationRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *registrationRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.RegistrationStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Registration{}).
		Where("id = ?", id).
		Update("status", status).Error
}
