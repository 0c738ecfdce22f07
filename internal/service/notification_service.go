package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"simonev/internal/models"
	"simonev/internal/repository"
)

// RealtimePublisher pushes a notification payload to a connected user.
// Implementations are best-effort; delivery failures must not fail the
// originating operation.
type RealtimePublisher interface {
	PublishUser(ctx context.Context, userID uint, payload string) error
}

// NotificationService persists notifications and fans them out to their
// audiences, with best-effort realtime push on top of the stored rows.
type NotificationService struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	realtime  RealtimePublisher
}

// NewNotificationService returns a new NotificationService. realtime may be
// nil, in which case notifications are stored without push.
func NewNotificationService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	realtime RealtimePublisher,
) *NotificationService {
	return &NotificationService{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		realtime:  realtime,
	}
}

// NotifyContentSubmitted informs every active operator that new content is
// waiting in the verification queue.
func (s *NotificationService) NotifyContentSubmitted(ctx context.Context, content *models.Content) error {
	operators, err := s.userRepo.ListActiveByRole(ctx, models.RoleOperator)
	if err != nil {
		return err
	}

	skpdName := ""
	if content.Skpd != nil {
		skpdName = content.Skpd.NamaSkpd
	}
	message := fmt.Sprintf("Konten baru \"%s\" dari %s menunggu verifikasi.", content.Judul, skpdName)

	notifications := make([]*models.Notification, 0, len(operators))
	for _, op := range operators {
		notifications = append(notifications, &models.Notification{
			UserID:           op.ID,
			Type:             models.NotificationKontenBaru,
			Message:          message,
			RelatedContentID: &content.ID,
		})
	}
	if err := s.notifRepo.CreateBatch(ctx, notifications); err != nil {
		return err
	}

	s.Push(ctx, notifications...)
	return nil
}

// NotifyQuotaReminder reminds the active publishers of an SKPD that its
// monthly quota is not yet met. Sent at most once per SKPD per month.
func (s *NotificationService) NotifyQuotaReminder(ctx context.Context, skpd *models.Skpd, approved int64, now time.Time) error {
	exists, err := s.notifRepo.ExistsForSkpdInMonth(ctx, models.NotificationPengingatKuota, skpd.ID, now)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	publishers, err := s.userRepo.ListActivePublishersBySkpd(ctx, skpd.ID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"Kuota publikasi %s bulan ini baru terpenuhi %d dari %d.",
		skpd.NamaSkpd, approved, skpd.KuotaBulanan,
	)

	notifications := make([]*models.Notification, 0, len(publishers))
	for _, p := range publishers {
		notifications = append(notifications, &models.Notification{
			UserID:        p.ID,
			Type:          models.NotificationPengingatKuota,
			Message:       message,
			RelatedSkpdID: &skpd.ID,
		})
	}
	if err := s.notifRepo.CreateBatch(ctx, notifications); err != nil {
		return err
	}

	s.Push(ctx, notifications...)
	return nil
}

// NotifyQuotaWarning escalates to active admins after an SKPD missed its quota
// two months in a row. Sent at most once per SKPD per month.
func (s *NotificationService) NotifyQuotaWarning(ctx context.Context, skpd *models.Skpd, now time.Time) error {
	exists, err := s.notifRepo.ExistsForSkpdInMonth(ctx, models.NotificationPeringatanKuota, skpd.ID, now)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	admins, err := s.userRepo.ListActiveByRole(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"SKPD %s tidak memenuhi kuota publikasi selama 2 bulan berturut-turut.",
		skpd.NamaSkpd,
	)

	notifications := make([]*models.Notification, 0, len(admins))
	for _, a := range admins {
		notifications = append(notifications, &models.Notification{
			UserID:        a.ID,
			Type:          models.NotificationPeringatanKuota,
			Message:       message,
			RelatedSkpdID: &skpd.ID,
		})
	}
	if err := s.notifRepo.CreateBatch(ctx, notifications); err != nil {
		return err
	}

	s.Push(ctx, notifications...)
	return nil
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID uint, unreadOnly bool) ([]*models.Notification, error) {
	return s.notifRepo.ListByUser(ctx, userID, unreadOnly)
}

// MarkRead marks one notification read, scoped to its owner.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	if err := s.notifRepo.MarkRead(ctx, userID, notificationID); err != nil {
		return models.NewNotFoundError("Notification", notificationID)
	}
	return nil
}

// MarkAllRead marks every unread notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

// Push delivers already-persisted notifications over the realtime channel.
// Failures are logged and swallowed; the stored rows are the source of truth.
func (s *NotificationService) Push(ctx context.Context, notifications ...*models.Notification) {
	if s.realtime == nil {
		return
	}
	for _, n := range notifications {
		payload, err := json.Marshal(n)
		if err != nil {
			slog.WarnContext(ctx, "failed to encode notification payload", "error", err)
			continue
		}
		if err := s.realtime.PublishUser(ctx, n.UserID, string(payload)); err != nil {
			slog.WarnContext(ctx, "failed to push notification",
				"user_id", n.UserID, "type", n.Type, "error", err)
		}
	}
}
