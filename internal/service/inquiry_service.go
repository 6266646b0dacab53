package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/techclub/club-portal/internal/models"
	"github.com/techclub/club-portal/internal/repository"
	"github.com/techclub/club-portal/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrInquiryFieldsRequired = errors.New("all fields are required: please fill in your name, email, and message")
	ErrInquiryBadEmail       = errors.New("please enter a valid email address")
	ErrInquiryShortMessage   = errors.New("message must be at least 10 characters long")
	ErrInquiryBadStatus      = errors.New("invalid status: must be one of pending, read, replied, resolved")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type InquiryService interface {
	Submit(ctx context.Context, name, email, message string) (*models.Inquiry, error)
	ListInquiries(ctx context.Context) ([]models.Inquiry, error)
	UpdateStatus(ctx context.Context, id uint, status models.InquiryStatus) (*models.Inquiry, error)
	DeleteInquiry(ctx context.Context, id uint) error
}

type inquiryService struct {
	repo      repository.InquiryRepository
	publisher *rabbitmq.Publisher
}

func NewInquiryService(repo repository.InquiryRepository, publisher *rabbitmq.Publisher) InquiryService {
	return &inquiryService{repo: repo, publisher: publisher}
}

func (s *inquiryService) Submit(ctx context.Context, name, email, message string) (*models.Inquiry, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)

	if name == "" || email == "" || message == "" {
		return nil, ErrInquiryFieldsRequired
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInquiryBadEmail
	}
	if len(message) < 10 {
		return nil, ErrInquiryShortMessage
	}

	inquiry := &models.Inquiry{
		Name:    name,
		Email:   email,
		Message: message,
		Status:  models.InquiryPending,
	}
	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("inquiry.created", inquiry)
	}
	return inquiry, nil
}

func (s *inquiryService) ListInquiries(ctx context.Context) ([]models.Inquiry, error) {
	return s.repo.FindAll(ctx)
}

func (s *inquiryService) UpdateStatus(ctx context.Context, id uint, status models.InquiryStatus) (*models.Inquiry, error) {
	if !models.ValidInquiryStatus(status) {
		return nil, ErrInquiryBadStatus
	}
	inquiry, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}
	return inquiry, nil
}

func (s *inquiryService) DeleteInquiry(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
