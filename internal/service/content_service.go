package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"simonev/internal/models"
	"simonev/internal/repository"
	"simonev/internal/validation"

	"gorm.io/gorm"
)

// ContentService provides publication content business logic.
type ContentService struct {
	contentRepo  repository.ContentRepository
	kategoriRepo repository.KategoriRepository
	notif        *NotificationService
	activity     *ActivityLogService
}

// CreateContentInput is the input for submitting new content.
type CreateContentInput struct {
	PublisherID      uint
	SkpdID           uint
	Judul            string
	Deskripsi        string
	URLPublikasi     string
	TanggalPublikasi time.Time
	KategoriID       uint
}

// UpdateContentInput is the input for editing existing content.
type UpdateContentInput struct {
	CallerID         uint
	ContentID        uint
	Judul            string
	Deskripsi        string
	URLPublikasi     string
	TanggalPublikasi time.Time
	KategoriID       uint
}

// DeleteContentInput is the input for removing content.
type DeleteContentInput struct {
	CallerID  uint
	ContentID uint
}

// NewContentService returns a new ContentService.
func NewContentService(
	contentRepo repository.ContentRepository,
	kategoriRepo repository.KategoriRepository,
	notif *NotificationService,
	activity *ActivityLogService,
) *ContentService {
	return &ContentService{
		contentRepo:  contentRepo,
		kategoriRepo: kategoriRepo,
		notif:        notif,
		activity:     activity,
	}
}

// CreateContent stores new content in pending status and fans out to the
// verification queue. The submitted status is ignored; everything enters as
// pending.
func (s *ContentService) CreateContent(ctx context.Context, in CreateContentInput) (*models.Content, error) {
	if err := s.validateContentFields(ctx, in.Judul, in.URLPublikasi, in.TanggalPublikasi, in.KategoriID); err != nil {
		return nil, err
	}

	content := &models.Content{
		Judul:            strings.TrimSpace(in.Judul),
		Deskripsi:        in.Deskripsi,
		URLPublikasi:     strings.TrimSpace(in.URLPublikasi),
		TanggalPublikasi: in.TanggalPublikasi,
		KategoriID:       in.KategoriID,
		SkpdID:           in.SkpdID,
		PublisherID:      in.PublisherID,
		Status:           models.ContentStatusPending,
	}
	if err := s.contentRepo.Create(ctx, content); err != nil {
		return nil, err
	}

	created, err := s.contentRepo.GetByID(ctx, content.ID)
	if err != nil {
		return nil, err
	}

	if err := s.activity.LogContentCreated(ctx, in.PublisherID, created); err != nil {
		slog.WarnContext(ctx, "failed to log content creation", "content_id", created.ID, "error", err)
	}
	if err := s.notif.NotifyContentSubmitted(ctx, created); err != nil {
		slog.WarnContext(ctx, "failed to notify operators of new content", "content_id", created.ID, "error", err)
	}

	return created, nil
}

// UpdateContent edits content owned by the caller. Approved and published
// content is immutable; editing rejected content resubmits it as pending.
func (s *ContentService) UpdateContent(ctx context.Context, in UpdateContentInput) (*models.Content, error) {
	content, err := s.contentRepo.GetByID(ctx, in.ContentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Content", in.ContentID)
		}
		return nil, err
	}

	if content.PublisherID != in.CallerID {
		return nil, models.NewForbiddenError("You can only update your own content")
	}
	switch content.Status {
	case models.ContentStatusDraft, models.ContentStatusPending, models.ContentStatusRejected:
		// Editable.
	default:
		return nil, models.NewInvalidStateError("Approved or published content cannot be edited")
	}

	if err := s.validateContentFields(ctx, in.Judul, in.URLPublikasi, in.TanggalPublikasi, in.KategoriID); err != nil {
		return nil, err
	}

	resubmitted := content.Status == models.ContentStatusRejected

	content.Judul = strings.TrimSpace(in.Judul)
	content.Deskripsi = in.Deskripsi
	content.URLPublikasi = strings.TrimSpace(in.URLPublikasi)
	content.TanggalPublikasi = in.TanggalPublikasi
	content.KategoriID = in.KategoriID
	if resubmitted {
		content.Status = models.ContentStatusPending
	}

	if err := s.contentRepo.Update(ctx, content); err != nil {
		return nil, err
	}

	updated, err := s.contentRepo.GetByID(ctx, content.ID)
	if err != nil {
		return nil, err
	}

	if err := s.activity.LogContentUpdated(ctx, in.CallerID, updated); err != nil {
		slog.WarnContext(ctx, "failed to log content update", "content_id", updated.ID, "error", err)
	}
	if resubmitted {
		if err := s.notif.NotifyContentSubmitted(ctx, updated); err != nil {
			slog.WarnContext(ctx, "failed to notify operators of resubmitted content", "content_id", updated.ID, "error", err)
		}
	}

	return updated, nil
}

// DeleteContent removes content owned by the caller. Only draft and rejected
// content can be deleted; anything in or past the queue stays for the record.
func (s *ContentService) DeleteContent(ctx context.Context, in DeleteContentInput) error {
	content, err := s.contentRepo.GetByID(ctx, in.ContentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Content", in.ContentID)
		}
		return err
	}

	if content.PublisherID != in.CallerID {
		return models.NewForbiddenError("You can only delete your own content")
	}
	if content.Status != models.ContentStatusDraft && content.Status != models.ContentStatusRejected {
		return models.NewInvalidStateError("Only draft or rejected content can be deleted")
	}

	if err := s.contentRepo.Delete(ctx, in.ContentID); err != nil {
		return err
	}

	if err := s.activity.LogContentDeleted(ctx, in.CallerID, content); err != nil {
		slog.WarnContext(ctx, "failed to log content deletion", "content_id", content.ID, "error", err)
	}
	return nil
}

// GetContent returns one content with its relations.
func (s *ContentService) GetContent(ctx context.Context, id uint) (*models.Content, error) {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Content", id)
		}
		return nil, err
	}
	return content, nil
}

// ListContents returns contents matching the filter plus the unpaginated total.
func (s *ContentService) ListContents(ctx context.Context, f repository.ContentFilter) ([]*models.Content, int64, error) {
	return s.contentRepo.List(ctx, f)
}

func (s *ContentService) validateContentFields(ctx context.Context, judul, urlPublikasi string, tanggal time.Time, kategoriID uint) error {
	if strings.TrimSpace(judul) == "" {
		return models.NewValidationError("Judul is required")
	}
	if strings.TrimSpace(urlPublikasi) == "" {
		return models.NewValidationError("URL publikasi is required")
	}
	if err := validation.ValidatePublicationURL(urlPublikasi); err != nil {
		return models.NewValidationError(err.Error())
	}
	if tanggal.IsZero() {
		return models.NewValidationError("Tanggal publikasi is required")
	}
	if kategoriID == 0 {
		return models.NewValidationError("Kategori is required")
	}

	kategori, err := s.kategoriRepo.GetByID(ctx, kategoriID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewValidationError("Kategori not found")
		}
		return err
	}
	if !kategori.IsActive {
		return models.NewValidationError("Kategori is no longer active")
	}
	return nil
}
