package repository

import (
	"context"

	"simonev/internal/models"

	"gorm.io/gorm"
)

// SkpdRepository defines interface for SKPD operations
type SkpdRepository interface {
	Create(ctx context.Context, skpd *models.Skpd) error
	GetByID(ctx context.Context, id uint) (*models.Skpd, error)
	Update(ctx context.Context, skpd *models.Skpd) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, activeOnly bool) ([]*models.Skpd, error)
}

type skpdRepository struct {
	db *gorm.DB
}

// NewSkpdRepository creates a new SkpdRepository
func NewSkpdRepository(db *gorm.DB) SkpdRepository {
	return &skpdRepository{db: db}
}

func (r *skpdRepository) Create(ctx context.Context, skpd *models.Skpd) error {
	return r.db.WithContext(ctx).Create(skpd).Error
}

func (r *skpdRepository) GetByID(ctx context.Context, id uint) (*models.Skpd, error) {
	var skpd models.Skpd
	if err := r.db.WithContext(ctx).First(&skpd, id).Error; err != nil {
		return nil, err
	}
	return &skpd, nil
}

func (r *skpdRepository) Update(ctx context.Context, skpd *models.Skpd) error {
	return r.db.WithContext(ctx).Save(skpd).Error
}

func (r *skpdRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Skpd{}, id).Error
}

func (r *skpdRepository) List(ctx context.Context, activeOnly bool) ([]*models.Skpd, error) {
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("status = ?", models.SkpdStatusAktif)
	}
	var skpds []*models.Skpd
	err := q.Order("nama_skpd ASC").Find(&skpds).Error
	return skpds, err
}
