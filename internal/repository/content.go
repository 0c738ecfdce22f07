// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"time"

	"simonev/internal/models"
	"simonev/internal/observability"

	"gorm.io/gorm"
)

// ContentFilter narrows content listings. Zero values mean "no filter".
type ContentFilter struct {
	SkpdID      uint
	KategoriID  uint
	PublisherID uint
	Status      models.ContentStatus
	// Search matches judul and deskripsi case-insensitively.
	Search string
	// Month/Year filter on tanggal_publikasi when both are set.
	Month  time.Month
	Year   int
	Limit  int
	Offset int
}

// ContentRepository defines interface for content operations
type ContentRepository interface {
	Create(ctx context.Context, content *models.Content) error
	GetByID(ctx context.Context, id uint) (*models.Content, error)
	Update(ctx context.Context, content *models.Content) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, f ContentFilter) ([]*models.Content, int64, error)
	// ListPending returns pending content ordered oldest-first so operators
	// review submissions in FIFO order.
	ListPending(ctx context.Context, f ContentFilter) ([]*models.Content, error)
	// CountApprovedInPeriod counts approved content whose tanggal_publikasi
	// falls in the given month and year for one SKPD.
	CountApprovedInPeriod(ctx context.Context, skpdID uint, month time.Month, year int) (int64, error)
	// CountActiveBySkpd counts content in statuses that block SKPD deletion.
	CountActiveBySkpd(ctx context.Context, skpdID uint) (int64, error)
}

type contentRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

func (r *contentRepository) Create(ctx context.Context, content *models.Content) error {
	return r.db.WithContext(ctx).Create(content).Error
}

func (r *contentRepository) GetByID(ctx context.Context, id uint) (*models.Content, error) {
	var content models.Content
	if err := r.db.WithContext(ctx).
		Preload("Kategori").
		Preload("Skpd").
		Preload("Publisher").
		First(&content, id).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *contentRepository) Update(ctx context.Context, content *models.Content) error {
	return r.db.WithContext(ctx).Save(content).Error
}

func (r *contentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Content{}, id).Error
}

func applyContentFilter(q *gorm.DB, f ContentFilter) *gorm.DB {
	if f.SkpdID != 0 {
		q = q.Where("skpd_id = ?", f.SkpdID)
	}
	if f.KategoriID != 0 {
		q = q.Where("kategori_id = ?", f.KategoriID)
	}
	if f.PublisherID != 0 {
		q = q.Where("publisher_id = ?", f.PublisherID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("LOWER(judul) LIKE LOWER(?) OR LOWER(deskripsi) LIKE LOWER(?)", like, like)
	}
	if f.Year != 0 && f.Month != 0 {
		start := time.Date(f.Year, f.Month, 1, 0, 0, 0, 0, time.UTC)
		q = q.Where("tanggal_publikasi >= ? AND tanggal_publikasi < ?", start, start.AddDate(0, 1, 0))
	}
	return q
}

func (r *contentRepository) List(ctx context.Context, f ContentFilter) ([]*models.Content, int64, error) {
	var total int64
	counted := applyContentFilter(r.db.WithContext(ctx).Model(&models.Content{}), f)
	if err := counted.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := applyContentFilter(r.db.WithContext(ctx), f).
		Preload("Kategori").
		Preload("Skpd").
		Preload("Publisher").
		Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var contents []*models.Content
	if err := q.Find(&contents).Error; err != nil {
		return nil, 0, err
	}
	return contents, total, nil
}

func (r *contentRepository) ListPending(ctx context.Context, f ContentFilter) ([]*models.Content, error) {
	f.Status = models.ContentStatusPending
	q := applyContentFilter(r.db.WithContext(ctx), f).
		Preload("Kategori").
		Preload("Skpd").
		Preload("Publisher").
		Order("created_at ASC, id ASC")

	var contents []*models.Content
	if err := q.Find(&contents).Error; err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *contentRepository) CountApprovedInPeriod(ctx context.Context, skpdID uint, month time.Month, year int) (int64, error) {
	defer r.metrics.TrackQuery("count_approved_in_period", "contents")()

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Content{}).
		Where("skpd_id = ? AND status = ?", skpdID, models.ContentStatusApproved).
		Where("tanggal_publikasi >= ? AND tanggal_publikasi < ?", start, start.AddDate(0, 1, 0)).
		Count(&count).Error
	return count, err
}

func (r *contentRepository) CountActiveBySkpd(ctx context.Context, skpdID uint) (int64, error) {
	defer r.metrics.TrackQuery("count_active_by_skpd", "contents")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Content{}).
		Where("skpd_id = ? AND status IN ?", skpdID, models.ActiveContentStatuses()).
		Count(&count).Error
	return count, err
}
