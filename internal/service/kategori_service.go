package service

import (
	"context"
	"errors"
	"strings"

	"simonev/internal/models"
	"simonev/internal/repository"

	"gorm.io/gorm"
)

// KategoriService manages content categories. Categories are never deleted;
// deactivation hides them from new-content pickers while existing content
// keeps its assignment.
type KategoriService struct {
	kategoriRepo repository.KategoriRepository
}

// NewKategoriService returns a new KategoriService.
func NewKategoriService(kategoriRepo repository.KategoriRepository) *KategoriService {
	return &KategoriService{kategoriRepo: kategoriRepo}
}

func (s *KategoriService) CreateKategori(ctx context.Context, nama string) (*models.KategoriKonten, error) {
	nama = strings.TrimSpace(nama)
	if nama == "" {
		return nil, models.NewValidationError("Nama kategori is required")
	}

	kategori := &models.KategoriKonten{
		NamaKategori: nama,
		IsActive:     true,
	}
	if err := s.kategoriRepo.Create(ctx, kategori); err != nil {
		return nil, err
	}
	return kategori, nil
}

// UpdateKategoriInput is the input for renaming or toggling a category.
type UpdateKategoriInput struct {
	KategoriID   uint
	NamaKategori string
	IsActive     bool
}

func (s *KategoriService) UpdateKategori(ctx context.Context, in UpdateKategoriInput) (*models.KategoriKonten, error) {
	kategori, err := s.kategoriRepo.GetByID(ctx, in.KategoriID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Kategori", in.KategoriID)
		}
		return nil, err
	}

	nama := strings.TrimSpace(in.NamaKategori)
	if nama == "" {
		return nil, models.NewValidationError("Nama kategori is required")
	}

	kategori.NamaKategori = nama
	kategori.IsActive = in.IsActive
	if err := s.kategoriRepo.Update(ctx, kategori); err != nil {
		return nil, err
	}
	return kategori, nil
}

func (s *KategoriService) GetKategori(ctx context.Context, id uint) (*models.KategoriKonten, error) {
	kategori, err := s.kategoriRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Kategori", id)
		}
		return nil, err
	}
	return kategori, nil
}

func (s *KategoriService) ListKategoris(ctx context.Context, activeOnly bool) ([]*models.KategoriKonten, error) {
	return s.kategoriRepo.List(ctx, activeOnly)
}
