package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"simonev/internal/models"
	"simonev/internal/repository"

	"gorm.io/gorm"
)

// SkpdService manages SKPD records and the guarded delete rule.
type SkpdService struct {
	skpdRepo    repository.SkpdRepository
	contentRepo repository.ContentRepository
	activity    *ActivityLogService
}

// CreateSkpdInput is the input for registering an SKPD.
type CreateSkpdInput struct {
	CallerID     uint
	NamaSkpd     string
	WebsiteURL   string
	Email        string
	KuotaBulanan int
	Status       models.SkpdStatus
}

// UpdateSkpdInput is the input for editing an SKPD.
type UpdateSkpdInput struct {
	CallerID     uint
	SkpdID       uint
	NamaSkpd     string
	WebsiteURL   string
	Email        string
	KuotaBulanan int
	Status       models.SkpdStatus
}

// DeleteSkpdInput is the input for removing an SKPD.
type DeleteSkpdInput struct {
	CallerID uint
	SkpdID   uint
}

// NewSkpdService returns a new SkpdService.
func NewSkpdService(
	skpdRepo repository.SkpdRepository,
	contentRepo repository.ContentRepository,
	activity *ActivityLogService,
) *SkpdService {
	return &SkpdService{
		skpdRepo:    skpdRepo,
		contentRepo: contentRepo,
		activity:    activity,
	}
}

// CreateSkpd registers a new SKPD. A zero quota falls back to the default.
func (s *SkpdService) CreateSkpd(ctx context.Context, in CreateSkpdInput) (*models.Skpd, error) {
	if err := validateSkpdFields(in.NamaSkpd, in.KuotaBulanan, in.Status); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.SkpdStatusAktif
	}
	quota := in.KuotaBulanan
	if quota == 0 {
		quota = models.DefaultKuotaBulanan
	}

	skpd := &models.Skpd{
		NamaSkpd:     strings.TrimSpace(in.NamaSkpd),
		WebsiteURL:   strings.TrimSpace(in.WebsiteURL),
		Email:        strings.TrimSpace(in.Email),
		KuotaBulanan: quota,
		Status:       status,
	}
	if err := s.skpdRepo.Create(ctx, skpd); err != nil {
		return nil, err
	}

	if err := s.activity.LogSkpdCreated(ctx, in.CallerID, skpd); err != nil {
		slog.WarnContext(ctx, "failed to log skpd creation", "skpd_id", skpd.ID, "error", err)
	}
	return skpd, nil
}

// UpdateSkpd edits an SKPD and records a field-level diff in the audit trail.
func (s *SkpdService) UpdateSkpd(ctx context.Context, in UpdateSkpdInput) (*models.Skpd, error) {
	skpd, err := s.skpdRepo.GetByID(ctx, in.SkpdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("SKPD", in.SkpdID)
		}
		return nil, err
	}

	if err := validateSkpdFields(in.NamaSkpd, in.KuotaBulanan, in.Status); err != nil {
		return nil, err
	}

	before := *skpd
	skpd.NamaSkpd = strings.TrimSpace(in.NamaSkpd)
	skpd.WebsiteURL = strings.TrimSpace(in.WebsiteURL)
	skpd.Email = strings.TrimSpace(in.Email)
	skpd.KuotaBulanan = in.KuotaBulanan
	if in.Status != "" {
		skpd.Status = in.Status
	}

	if err := s.skpdRepo.Update(ctx, skpd); err != nil {
		return nil, err
	}

	if err := s.activity.LogSkpdUpdated(ctx, in.CallerID, &before, skpd); err != nil {
		slog.WarnContext(ctx, "failed to log skpd update", "skpd_id", skpd.ID, "error", err)
	}
	return skpd, nil
}

// DeleteSkpd removes an SKPD unless it still has content in the pipeline
// (pending, approved or published).
func (s *SkpdService) DeleteSkpd(ctx context.Context, in DeleteSkpdInput) error {
	skpd, err := s.skpdRepo.GetByID(ctx, in.SkpdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("SKPD", in.SkpdID)
		}
		return err
	}

	active, err := s.contentRepo.CountActiveBySkpd(ctx, in.SkpdID)
	if err != nil {
		return err
	}
	if active > 0 {
		return models.NewBusinessRuleError("SKPD tidak dapat dihapus karena masih memiliki konten aktif.")
	}

	if err := s.skpdRepo.Delete(ctx, in.SkpdID); err != nil {
		return err
	}

	if err := s.activity.LogSkpdDeleted(ctx, in.CallerID, skpd); err != nil {
		slog.WarnContext(ctx, "failed to log skpd deletion", "skpd_id", skpd.ID, "error", err)
	}
	return nil
}

// GetSkpd returns one SKPD.
func (s *SkpdService) GetSkpd(ctx context.Context, id uint) (*models.Skpd, error) {
	skpd, err := s.skpdRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("SKPD", id)
		}
		return nil, err
	}
	return skpd, nil
}

// ListSkpds returns SKPDs ordered by name.
func (s *SkpdService) ListSkpds(ctx context.Context, activeOnly bool) ([]*models.Skpd, error) {
	return s.skpdRepo.List(ctx, activeOnly)
}

func validateSkpdFields(nama string, quota int, status models.SkpdStatus) error {
	if strings.TrimSpace(nama) == "" {
		return models.NewValidationError("Nama SKPD is required")
	}
	if quota < 0 {
		return models.NewValidationError("Kuota bulanan cannot be negative")
	}
	if status != "" && !status.Valid() {
		return models.NewValidationError("Invalid SKPD status")
	}
	return nil
}
