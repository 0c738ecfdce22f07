package repository

import (
	"context"

	"simonev/internal/models"

	"gorm.io/gorm"
)

// KategoriRepository defines interface for content category operations
type KategoriRepository interface {
	Create(ctx context.Context, k *models.KategoriKonten) error
	GetByID(ctx context.Context, id uint) (*models.KategoriKonten, error)
	Update(ctx context.Context, k *models.KategoriKonten) error
	// List returns categories; activeOnly excludes deactivated ones, as used
	// by new-content pickers. Existing content keeps inactive categories.
	List(ctx context.Context, activeOnly bool) ([]*models.KategoriKonten, error)
}

type kategoriRepository struct {
	db *gorm.DB
}

// NewKategoriRepository creates a new KategoriRepository
func NewKategoriRepository(db *gorm.DB) KategoriRepository {
	return &kategoriRepository{db: db}
}

func (r *kategoriRepository) Create(ctx context.Context, k *models.KategoriKonten) error {
	return r.db.WithContext(ctx).Create(k).Error
}

func (r *kategoriRepository) GetByID(ctx context.Context, id uint) (*models.KategoriKonten, error) {
	var kategori models.KategoriKonten
	if err := r.db.WithContext(ctx).First(&kategori, id).Error; err != nil {
		return nil, err
	}
	return &kategori, nil
}

func (r *kategoriRepository) Update(ctx context.Context, k *models.KategoriKonten) error {
	return r.db.WithContext(ctx).Save(k).Error
}

func (r *kategoriRepository) List(ctx context.Context, activeOnly bool) ([]*models.KategoriKonten, error) {
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var kategoris []*models.KategoriKonten
	err := q.Order("nama_kategori ASC").Find(&kategoris).Error
	return kategoris, err
}
