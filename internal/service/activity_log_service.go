package service

import (
	"context"
	"fmt"

	"simonev/internal/models"
	"simonev/internal/repository"
)

// ActivityLogService records the append-only audit trail.
type ActivityLogService struct {
	logRepo repository.ActivityLogRepository
}

// NewActivityLogService returns a new ActivityLogService.
func NewActivityLogService(logRepo repository.ActivityLogRepository) *ActivityLogService {
	return &ActivityLogService{logRepo: logRepo}
}

func (s *ActivityLogService) LogContentCreated(ctx context.Context, userID uint, content *models.Content) error {
	return s.logRepo.Create(ctx, &models.ActivityLog{
		UserID:     userID,
		ActionType: models.ActionContentCreated,
		Detail:     fmt.Sprintf("Konten \"%s\" dibuat", content.Judul),
	})
}

func (s *ActivityLogService) LogContentUpdated(ctx context.Context, userID uint, content *models.Content) error {
	return s.logRepo.Create(ctx, &models.ActivityLog{
		UserID:     userID,
		ActionType: models.ActionContentUpdated,
		Detail:     fmt.Sprintf("Konten \"%s\" diubah", content.Judul),
	})
}

func (s *ActivityLogService) LogContentDeleted(ctx context.Context, userID uint, content *models.Content) error {
	return s.logRepo.Create(ctx, &models.ActivityLog{
		UserID:     userID,
		ActionType: models.ActionContentDeleted,
		Detail:     fmt.Sprintf("Konten \"%s\" dihapus", content.Judul),
	})
}

func (s *ActivityLogService) LogSkpdCreated(ctx context.Context, userID uint, skpd *models.Skpd) error {
	return s.logRepo.Create(ctx, &models.ActivityLog{
		UserID:     userID,
		ActionType: models.ActionSkpdCreated,
		Detail:     fmt.Sprintf("SKPD \"%s\" dibuat", skpd.NamaSkpd),
	})
}

// LogSkpdUpdated records a diff of the tracked SKPD fields. If nothing tracked
// changed, no row is written.
func (s *ActivityLogService) LogSkpdUpdated(ctx context.Context, userID uint, oldSkpd, newSkpd *models.Skpd) error {
	oldVal, newVal := diffSkpd(oldSkpd, newSkpd)
	if len(oldVal) == 0 {
		return nil
	}
	return s.logRepo.Create(ctx, &models.ActivityLog{
		UserID:     userID,
		ActionType: models.ActionSkpdUpdated,
		Detail:     fmt.Sprintf("SKPD \"%s\" diubah", newSkpd.NamaSkpd),
		OldValue:   oldVal,
		NewValue:   newVal,
	})
}

func (s *ActivityLogService) LogSkpdDeleted(ctx context.Context, userID uint, skpd *models.Skpd) error {
	return s.logRepo.Create(ctx, &models.ActivityLog{
		UserID:     userID,
		ActionType: models.ActionSkpdDeleted,
		Detail:     fmt.Sprintf("SKPD \"%s\" dihapus", skpd.NamaSkpd),
	})
}

func (s *ActivityLogService) LogLogin(ctx context.Context, userID uint, username string) error {
	return s.logRepo.Create(ctx, &models.ActivityLog{
		UserID:     userID,
		ActionType: models.ActionUserLogin,
		Detail:     fmt.Sprintf("Pengguna \"%s\" masuk", username),
	})
}

// List returns audit entries, newest first.
func (s *ActivityLogService) List(ctx context.Context, f repository.ActivityLogFilter) ([]*models.ActivityLog, int64, error) {
	return s.logRepo.List(ctx, f)
}

// diffSkpd compares the tracked SKPD fields and returns the old and new values
// of those that changed. Untracked fields and timestamps never appear.
func diffSkpd(oldSkpd, newSkpd *models.Skpd) (models.JSONMap, models.JSONMap) {
	oldVal := models.JSONMap{}
	newVal := models.JSONMap{}

	if oldSkpd.NamaSkpd != newSkpd.NamaSkpd {
		oldVal["nama_skpd"] = oldSkpd.NamaSkpd
		newVal["nama_skpd"] = newSkpd.NamaSkpd
	}
	if oldSkpd.WebsiteURL != newSkpd.WebsiteURL {
		oldVal["website_url"] = oldSkpd.WebsiteURL
		newVal["website_url"] = newSkpd.WebsiteURL
	}
	if oldSkpd.Email != newSkpd.Email {
		oldVal["email"] = oldSkpd.Email
		newVal["email"] = newSkpd.Email
	}
	if oldSkpd.KuotaBulanan != newSkpd.KuotaBulanan {
		oldVal["kuota_bulanan"] = oldSkpd.KuotaBulanan
		newVal["kuota_bulanan"] = newSkpd.KuotaBulanan
	}
	if oldSkpd.Status != newSkpd.Status {
		oldVal["status"] = string(oldSkpd.Status)
		newVal["status"] = string(newSkpd.Status)
	}

	if len(oldVal) == 0 {
		return nil, nil
	}
	return oldVal, newVal
}
