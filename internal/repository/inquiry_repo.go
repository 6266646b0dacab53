package repository

import (
	"context"

	"github.com/techclub/club-portal/internal/models"
	"gorm.io/gorm"
)

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	FindAll(ctx context.Context) ([]models.Inquiry, error)
	UpdateStatus(ctx context.Context, id uint, status models.InquiryStatus) (*models.Inquiry, error)
	Delete(ctx context.Context, id uint) error
}

type inquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *inquiryRepository) FindAll(ctx context.Context) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&inquiries).Error; err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, id uint, status models.InquiryStatus) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := r.db.WithContext(ctx).First(&inquiry, id).Error; err != nil {
		return nil, err
	}
	inquiry.Status = status
	if err := r.db.WithContext(ctx).Save(&inquiry).Error; err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Inquiry{}, id).Error
}
