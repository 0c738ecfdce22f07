package repository

import (
	"context"

	"simonev/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines interface for user operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]*models.User, error)
	// ListActiveByRole returns active users with the given role; recipients of
	// role-targeted notification fan-out.
	ListActiveByRole(ctx context.Context, role models.Role) ([]*models.User, error)
	// ListActivePublishersBySkpd returns the active publisher accounts of one SKPD.
	ListActivePublishersBySkpd(ctx context.Context, skpdID uint) ([]*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Skpd").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Skpd").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).Preload("Skpd").Order("username ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) ListActiveByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND is_active = ?", role, true).
		Find(&users).Error
	return users, err
}

func (r *userRepository) ListActivePublishersBySkpd(ctx context.Context, skpdID uint) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND is_active = ? AND skpd_id = ?", models.RolePublisher, true, skpdID).
		Find(&users).Error
	return users, err
}
