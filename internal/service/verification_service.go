package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"simonev/internal/cache"
	"simonev/internal/models"
	"simonev/internal/observability"
	"simonev/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// VerificationService applies operator verdicts to pending content. The status
// transition, verification event, publisher notification and audit entry are
// committed in a single transaction; realtime push happens after commit.
type VerificationService struct {
	db               *gorm.DB
	contentRepo      repository.ContentRepository
	verificationRepo repository.VerificationRepository
	notif            *NotificationService
}

// ApproveContentInput is the input for approving pending content. The note is
// optional, unlike the rejection reason.
type ApproveContentInput struct {
	VerifikatorID uint
	ContentID     uint
	Alasan        string
}

// RejectContentInput is the input for rejecting pending content.
type RejectContentInput struct {
	VerifikatorID uint
	ContentID     uint
	Alasan        string
}

// NewVerificationService returns a new VerificationService.
func NewVerificationService(
	db *gorm.DB,
	contentRepo repository.ContentRepository,
	verificationRepo repository.VerificationRepository,
	notif *NotificationService,
) *VerificationService {
	return &VerificationService{
		db:               db,
		contentRepo:      contentRepo,
		verificationRepo: verificationRepo,
		notif:            notif,
	}
}

// ApproveContent approves pending content. Approving anything else fails with
// INVALID_STATE, including the case where another operator won the race.
func (s *VerificationService) ApproveContent(ctx context.Context, in ApproveContentInput) (*models.Verification, error) {
	return s.verify(ctx, in.VerifikatorID, in.ContentID, models.VerificationStatusApproved, strings.TrimSpace(in.Alasan))
}

// RejectContent rejects pending content with a mandatory reason.
func (s *VerificationService) RejectContent(ctx context.Context, in RejectContentInput) (*models.Verification, error) {
	if strings.TrimSpace(in.Alasan) == "" {
		return nil, models.NewValidationError("Reason is required for rejection.")
	}
	return s.verify(ctx, in.VerifikatorID, in.ContentID, models.VerificationStatusRejected, strings.TrimSpace(in.Alasan))
}

func (s *VerificationService) verify(
	ctx context.Context,
	verifikatorID, contentID uint,
	status models.VerificationStatus,
	alasan string,
) (*models.Verification, error) {
	span, ctx := observability.NewSpan(ctx, "verification.verdict")
	defer span.End()
	span.AddAttributes(
		attribute.Int64("content.id", int64(contentID)),
		attribute.String("verdict", string(status)),
	)

	var verification *models.Verification
	var notification *models.Notification
	var tanggalPublikasi time.Time

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var content models.Content
		if err := tx.First(&content, contentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Content", contentID)
			}
			return err
		}

		newStatus := models.ContentStatusApproved
		if status == models.VerificationStatusRejected {
			newStatus = models.ContentStatusRejected
		}

		// Conditional update: the pending precondition is enforced in the
		// WHERE clause so concurrent verdicts cannot both apply.
		result := tx.Model(&models.Content{}).
			Where("id = ? AND status = ?", contentID, models.ContentStatusPending).
			Update("status", newStatus)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if status == models.VerificationStatusApproved {
				return models.NewInvalidStateError("Only pending content can be approved.")
			}
			return models.NewInvalidStateError("Only pending content can be rejected.")
		}
		content.Status = newStatus
		tanggalPublikasi = content.TanggalPublikasi

		verification = &models.Verification{
			ContentID:     contentID,
			VerifikatorID: verifikatorID,
			Status:        status,
			Alasan:        alasan,
			VerifiedAt:    time.Now().UTC(),
		}
		if err := tx.Create(verification).Error; err != nil {
			return err
		}

		var message string
		if status == models.VerificationStatusApproved {
			message = fmt.Sprintf("Konten \"%s\" telah disetujui.", content.Judul)
		} else {
			message = fmt.Sprintf("Konten \"%s\" ditolak. Alasan: %s", content.Judul, alasan)
		}
		notification = &models.Notification{
			UserID:           content.PublisherID,
			Type:             models.NotificationKontenDiverifikasi,
			Message:          message,
			RelatedContentID: &content.ID,
		}
		if err := tx.Create(notification).Error; err != nil {
			return err
		}

		entry := &models.ActivityLog{
			UserID:     verifikatorID,
			ActionType: models.ActionContentVerified,
			Detail:     fmt.Sprintf("Konten \"%s\" diverifikasi: %s", content.Judul, status),
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	// The verdict changes this month's compliance numbers.
	cache.InvalidateComplianceReport(ctx, tanggalPublikasi.Year(), tanggalPublikasi.Month())

	s.notif.Push(ctx, notification)
	return verification, nil
}

// PendingQueue returns the verification queue, oldest submission first.
func (s *VerificationService) PendingQueue(ctx context.Context, f repository.ContentFilter) ([]*models.Content, error) {
	return s.contentRepo.ListPending(ctx, f)
}

// History returns all verdicts recorded for one content, newest first.
func (s *VerificationService) History(ctx context.Context, contentID uint) ([]*models.Verification, error) {
	if _, err := s.contentRepo.GetByID(ctx, contentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Content", contentID)
		}
		return nil, err
	}
	return s.verificationRepo.ListByContent(ctx, contentID)
}

// AllHistory returns one page of the global verification history.
func (s *VerificationService) AllHistory(ctx context.Context, f repository.VerificationFilter) ([]*models.Verification, int64, error) {
	return s.verificationRepo.ListAll(ctx, f)
}
