package repository

import (
	"context"
	"time"

	"simonev/internal/models"

	"gorm.io/gorm"
)

// VerificationHistoryPageSize is the fixed page size for the global
// verification history listing.
const VerificationHistoryPageSize = 20

// VerificationFilter narrows the global verification history listing.
type VerificationFilter struct {
	SkpdID uint
	Status models.VerificationStatus
	// Search matches the verified content's title.
	Search string
	// From/To bound verified_at (inclusive from, exclusive to).
	From time.Time
	To   time.Time
	Page int
}

// VerificationRepository defines interface for verification event operations.
// Verification rows are append-only; there are no update or delete methods.
type VerificationRepository interface {
	Create(ctx context.Context, v *models.Verification) error
	// ListByContent returns all verdicts for one content, newest first.
	ListByContent(ctx context.Context, contentID uint) ([]*models.Verification, error)
	// ListAll returns one page of the global history, newest first.
	ListAll(ctx context.Context, f VerificationFilter) ([]*models.Verification, int64, error)
}

type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new VerificationRepository
func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Create(ctx context.Context, v *models.Verification) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *verificationRepository) ListByContent(ctx context.Context, contentID uint) ([]*models.Verification, error) {
	var verifications []*models.Verification
	err := r.db.WithContext(ctx).
		Preload("Verifikator").
		Where("content_id = ?", contentID).
		Order("verified_at DESC").
		Find(&verifications).Error
	return verifications, err
}

func applyVerificationFilter(q *gorm.DB, f VerificationFilter) *gorm.DB {
	q = q.Joins("JOIN contents ON contents.id = verifications.content_id")
	if f.SkpdID != 0 {
		q = q.Where("contents.skpd_id = ?", f.SkpdID)
	}
	if f.Status != "" {
		q = q.Where("verifications.status = ?", f.Status)
	}
	if f.Search != "" {
		q = q.Where("LOWER(contents.judul) LIKE LOWER(?)", "%"+f.Search+"%")
	}
	if !f.From.IsZero() {
		q = q.Where("verifications.verified_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("verifications.verified_at < ?", f.To)
	}
	return q
}

func (r *verificationRepository) ListAll(ctx context.Context, f VerificationFilter) ([]*models.Verification, int64, error) {
	var total int64
	counted := applyVerificationFilter(r.db.WithContext(ctx).Model(&models.Verification{}), f)
	if err := counted.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}

	var verifications []*models.Verification
	err := applyVerificationFilter(r.db.WithContext(ctx).Model(&models.Verification{}), f).
		Preload("Content").
		Preload("Content.Skpd").
		Preload("Verifikator").
		Order("verifications.verified_at DESC").
		Limit(VerificationHistoryPageSize).
		Offset((page - 1) * VerificationHistoryPageSize).
		Find(&verifications).Error
	if err != nil {
		return nil, 0, err
	}
	return verifications, total, nil
}
