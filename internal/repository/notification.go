package repository

import (
	"context"
	"errors"
	"time"

	"simonev/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines interface for notification operations
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	CreateBatch(ctx context.Context, ns []*models.Notification) error
	ListByUser(ctx context.Context, userID uint, unreadOnly bool) ([]*models.Notification, error)
	// MarkRead flips the read flag for one notification owned by userID.
	MarkRead(ctx context.Context, userID, notificationID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
	// ExistsForSkpdInMonth reports whether a notification of the given type
	// referencing skpdID was already created in the month containing at.
	// Used to deduplicate quota warnings.
	ExistsForSkpdInMonth(ctx context.Context, typ models.NotificationType, skpdID uint, at time.Time) (bool, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) CreateBatch(ctx context.Context, ns []*models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ns).Error
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uint, unreadOnly bool) ([]*models.Notification, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var notifications []*models.Notification
	err := q.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, notificationID uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("notification not found")
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (r *notificationRepository) ExistsForSkpdInMonth(ctx context.Context, typ models.NotificationType, skpdID uint, at time.Time) (bool, error) {
	start := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("type = ? AND related_skpd_id = ?", typ, skpdID).
		Where("created_at >= ? AND created_at < ?", start, start.AddDate(0, 1, 0)).
		Count(&count).Error
	return count > 0, err
}
