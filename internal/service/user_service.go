package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"simonev/internal/models"
	"simonev/internal/repository"
	"simonev/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService manages accounts and authentication. Accounts are created by
// admins; there is no self-service signup.
type UserService struct {
	userRepo repository.UserRepository
	skpdRepo repository.SkpdRepository
	activity *ActivityLogService
}

// CreateUserInput is the input for creating an account.
type CreateUserInput struct {
	CallerID uint
	Username string
	Email    string
	Password string
	Role     models.Role
	SkpdID   *uint
}

// UpdateUserInput is the input for editing an account.
type UpdateUserInput struct {
	CallerID uint
	UserID   uint
	Email    string
	Password string
	Role     models.Role
	SkpdID   *uint
	IsActive bool
}

// NewUserService returns a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	skpdRepo repository.SkpdRepository,
	activity *ActivityLogService,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		skpdRepo: skpdRepo,
		activity: activity,
	}
}

// Login authenticates by username and password. Inactive accounts cannot log
// in; the error message never reveals which check failed.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewUnauthorizedError("Username atau password salah")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, models.NewUnauthorizedError("Username atau password salah")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Username atau password salah")
	}

	if err := s.activity.LogLogin(ctx, user.ID, user.Username); err != nil {
		slog.WarnContext(ctx, "failed to log login", "user_id", user.ID, "error", err)
	}
	return user, nil
}

// CreateUser creates an account. Publishers must belong to an SKPD; admins and
// operators must not.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := s.validateAccountFields(ctx, in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: strings.TrimSpace(in.Username),
		Email:    strings.TrimSpace(in.Email),
		Password: string(hash),
		Role:     in.Role,
		SkpdID:   in.SkpdID,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, user.ID)
}

// UpdateUser edits an account. A blank password keeps the current one.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", in.UserID)
		}
		return nil, err
	}

	if !in.Role.Valid() {
		return nil, models.NewValidationError("Invalid role")
	}
	if err := s.validateRoleSkpdPairing(ctx, in.Role, in.SkpdID); err != nil {
		return nil, err
	}

	user.Email = strings.TrimSpace(in.Email)
	user.Role = in.Role
	user.SkpdID = in.SkpdID
	user.IsActive = in.IsActive
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, user.ID)
}

// GetUser returns one account.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns all accounts ordered by username.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) validateAccountFields(ctx context.Context, in CreateUserInput) error {
	if err := validation.ValidateUsername(strings.TrimSpace(in.Username)); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return models.NewValidationError(err.Error())
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		if err := validation.ValidateEmail(email); err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	if !in.Role.Valid() {
		return models.NewValidationError("Invalid role")
	}
	return s.validateRoleSkpdPairing(ctx, in.Role, in.SkpdID)
}

func (s *UserService) validateRoleSkpdPairing(ctx context.Context, role models.Role, skpdID *uint) error {
	if role == models.RolePublisher {
		if skpdID == nil {
			return models.NewValidationError("Publisher accounts require an SKPD")
		}
		if _, err := s.skpdRepo.GetByID(ctx, *skpdID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewValidationError("SKPD not found")
			}
			return err
		}
		return nil
	}
	if skpdID != nil {
		return models.NewValidationError("Only publisher accounts belong to an SKPD")
	}
	return nil
}
