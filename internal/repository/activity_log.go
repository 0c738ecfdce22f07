package repository

import (
	"context"
	"time"

	"simonev/internal/models"

	"gorm.io/gorm"
)

// ActivityLogFilter narrows audit listings.
type ActivityLogFilter struct {
	UserID     uint
	ActionType models.ActionType
	From       time.Time
	To         time.Time
	Limit      int
	Offset     int
}

// ActivityLogRepository defines interface for audit trail operations.
// The trail is append-only.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context, f ActivityLogFilter) ([]*models.ActivityLog, int64, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func applyActivityLogFilter(q *gorm.DB, f ActivityLogFilter) *gorm.DB {
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.ActionType != "" {
		q = q.Where("action_type = ?", f.ActionType)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}
	return q
}

func (r *activityLogRepository) List(ctx context.Context, f ActivityLogFilter) ([]*models.ActivityLog, int64, error) {
	var total int64
	if err := applyActivityLogFilter(r.db.WithContext(ctx).Model(&models.ActivityLog{}), f).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := applyActivityLogFilter(r.db.WithContext(ctx), f).
		Preload("User").
		Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var entries []*models.ActivityLog
	if err := q.Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
