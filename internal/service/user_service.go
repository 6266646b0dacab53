package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/techclub/club-portal/internal/models"
	"github.com/techclub/club-portal/internal/repository"
	"gorm.io/gorm"
)

type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ProvisionMember(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
	LinkIdentity(ctx context.Context, userID, email, name string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	regRepo  repository.RegistrationRepository
}

func NewUserService(userRepo repository.UserRepository, regRepo repository.RegistrationRepository) UserService {
	return &userService{userRepo: userRepo, regRepo: regRepo}
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.FindAll(ctx)
}

// ProvisionMember creates a placeholder row keyed by email. The member gets a
// generated id and is linked to their real identity on first sign-in.
func (s *userService) ProvisionMember(ctx context.Context, user *models.User) error {
	_, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user.UserID = fmt.Sprintf("prov_%s", uuid.NewString())
	user.Provisioned = true
	if user.Role == "" {
		user.Role = models.RoleStudent
	}
	return s.userRepo.Create(ctx, user)
}

func (s *userService) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	existing, err := s.userRepo.FindByID(ctx, user.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.Email != existing.Email {
		if _, err := s.userRepo.FindByEmail(ctx, user.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	existing.Name = user.Name
	existing.Email = user.Email
	existing.Role = user.Role
	existing.Year = user.Year
	existing.Dept = user.Dept
	existing.RollNo = user.RollNo
	existing.Designation = user.Designation
	existing.MobileNumber = user.MobileNumber

	if err := s.userRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteUser refuses while registration rows reference the user. The guard
// sits in front of the database cascade to avoid surprising data loss.
func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	count, err := s.regRepo.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrHasRegistrations
	}

	return s.userRepo.Delete(ctx, userID)
}

// LinkIdentity reconciles the caller's verified identity with the member
// table: a provisioned row matching the email is rekeyed to the real subject
// id; otherwise a student row is created on first sign-in.
func (s *userService) LinkIdentity(ctx context.Context, userID, email, name string) (*models.User, error) {
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
		return user, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		if existing.Provisioned {
			if err := s.userRepo.Relink(ctx, existing.UserID, userID); err != nil {
				return nil, err
			}
			existing.UserID = userID
			existing.Provisioned = false
			return existing, nil
		}
		// Linked row under a different subject id for the same email.
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{
		UserID: userID,
		Name:   name,
		Email:  email,
		Role:   models.RoleStudent,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
