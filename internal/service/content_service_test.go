package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"simonev/internal/models"
	"simonev/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contentRepoStub is a stub for repository.ContentRepository.
type contentRepoStub struct {
	createFn          func(context.Context, *models.Content) error
	getByIDFn         func(context.Context, uint) (*models.Content, error)
	updateFn          func(context.Context, *models.Content) error
	deleteFn          func(context.Context, uint) error
	listFn            func(context.Context, repository.ContentFilter) ([]*models.Content, int64, error)
	listPendingFn     func(context.Context, repository.ContentFilter) ([]*models.Content, error)
	countApprovedFn   func(context.Context, uint, time.Month, int) (int64, error)
	countActiveFn     func(context.Context, uint) (int64, error)
}

func (s *contentRepoStub) Create(ctx context.Context, c *models.Content) error {
	return s.createFn(ctx, c)
}
func (s *contentRepoStub) GetByID(ctx context.Context, id uint) (*models.Content, error) {
	return s.getByIDFn(ctx, id)
}
func (s *contentRepoStub) Update(ctx context.Context, c *models.Content) error {
	return s.updateFn(ctx, c)
}
func (s *contentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *contentRepoStub) List(ctx context.Context, f repository.ContentFilter) ([]*models.Content, int64, error) {
	return s.listFn(ctx, f)
}
func (s *contentRepoStub) ListPending(ctx context.Context, f repository.ContentFilter) ([]*models.Content, error) {
	return s.listPendingFn(ctx, f)
}
func (s *contentRepoStub) CountApprovedInPeriod(ctx context.Context, skpdID uint, month time.Month, year int) (int64, error) {
	return s.countApprovedFn(ctx, skpdID, month, year)
}
func (s *contentRepoStub) CountActiveBySkpd(ctx context.Context, skpdID uint) (int64, error) {
	return s.countActiveFn(ctx, skpdID)
}

func noopContentRepo() *contentRepoStub {
	return &contentRepoStub{
		createFn:  func(_ context.Context, _ *models.Content) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Content, error) { return &models.Content{ID: id}, nil },
		updateFn:  func(_ context.Context, _ *models.Content) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		listFn: func(_ context.Context, _ repository.ContentFilter) ([]*models.Content, int64, error) {
			return nil, 0, nil
		},
		listPendingFn: func(_ context.Context, _ repository.ContentFilter) ([]*models.Content, error) {
			return nil, nil
		},
		countApprovedFn: func(_ context.Context, _ uint, _ time.Month, _ int) (int64, error) { return 0, nil },
		countActiveFn:   func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// kategoriRepoStub is a stub for repository.KategoriRepository.
type kategoriRepoStub struct {
	createFn  func(context.Context, *models.KategoriKonten) error
	getByIDFn func(context.Context, uint) (*models.KategoriKonten, error)
	updateFn  func(context.Context, *models.KategoriKonten) error
	listFn    func(context.Context, bool) ([]*models.KategoriKonten, error)
}

func (s *kategoriRepoStub) Create(ctx context.Context, k *models.KategoriKonten) error {
	return s.createFn(ctx, k)
}
func (s *kategoriRepoStub) GetByID(ctx context.Context, id uint) (*models.KategoriKonten, error) {
	return s.getByIDFn(ctx, id)
}
func (s *kategoriRepoStub) Update(ctx context.Context, k *models.KategoriKonten) error {
	return s.updateFn(ctx, k)
}
func (s *kategoriRepoStub) List(ctx context.Context, activeOnly bool) ([]*models.KategoriKonten, error) {
	return s.listFn(ctx, activeOnly)
}

func noopKategoriRepo() *kategoriRepoStub {
	return &kategoriRepoStub{
		createFn: func(_ context.Context, _ *models.KategoriKonten) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.KategoriKonten, error) {
			return &models.KategoriKonten{ID: id, NamaKategori: "Berita", IsActive: true}, nil
		},
		updateFn: func(_ context.Context, _ *models.KategoriKonten) error { return nil },
		listFn:   func(_ context.Context, _ bool) ([]*models.KategoriKonten, error) { return nil, nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertInvalidStateError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeInvalidState)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func newTestContentService(contentRepo *contentRepoStub, kategoriRepo *kategoriRepoStub, notifRepo *notificationRepoStub, userRepo *userRepoStub) *ContentService {
	notif := NewNotificationService(notifRepo, userRepo, nil)
	activity := NewActivityLogService(noopActivityLogRepo())
	return NewContentService(contentRepo, kategoriRepo, notif, activity)
}

func validCreateInput() CreateContentInput {
	return CreateContentInput{
		PublisherID:      7,
		SkpdID:           3,
		Judul:            "Laporan Kinerja Triwulan",
		Deskripsi:        "Publikasi laporan kinerja",
		URLPublikasi:     "https://diskominfo.example.go.id/laporan",
		TanggalPublikasi: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		KategoriID:       2,
	}
}

func TestContentService_CreateContent_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestContentService(noopContentRepo(), noopKategoriRepo(), noopNotificationRepo(), noopUserRepo())
	ctx := context.Background()

	t.Run("empty judul", func(t *testing.T) {
		t.Parallel()
		in := validCreateInput()
		in.Judul = "   "
		_, err := svc.CreateContent(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()
		in := validCreateInput()
		in.URLPublikasi = ""
		_, err := svc.CreateContent(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("zero tanggal", func(t *testing.T) {
		t.Parallel()
		in := validCreateInput()
		in.TanggalPublikasi = time.Time{}
		_, err := svc.CreateContent(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("missing kategori", func(t *testing.T) {
		t.Parallel()
		in := validCreateInput()
		in.KategoriID = 0
		_, err := svc.CreateContent(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("inactive kategori", func(t *testing.T) {
		t.Parallel()
		kategoriRepo := noopKategoriRepo()
		kategoriRepo.getByIDFn = func(_ context.Context, id uint) (*models.KategoriKonten, error) {
			return &models.KategoriKonten{ID: id, NamaKategori: "Lama", IsActive: false}, nil
		}
		svc2 := newTestContentService(noopContentRepo(), kategoriRepo, noopNotificationRepo(), noopUserRepo())
		_, err := svc2.CreateContent(ctx, validCreateInput())
		assertValidationError(t, err)
	})
}

func TestContentService_CreateContent_ForcesPending(t *testing.T) {
	t.Parallel()

	var stored *models.Content
	contentRepo := noopContentRepo()
	contentRepo.createFn = func(_ context.Context, c *models.Content) error {
		c.ID = 42
		stored = c
		return nil
	}
	contentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Content, error) {
		return stored, nil
	}

	svc := newTestContentService(contentRepo, noopKategoriRepo(), noopNotificationRepo(), noopUserRepo())
	created, err := svc.CreateContent(context.Background(), validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, models.ContentStatusPending, created.Status)
}

func TestContentService_CreateContent_FansOutToOperators(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.listActiveByRoleFn = func(_ context.Context, role models.Role) ([]*models.User, error) {
		require.Equal(t, models.RoleOperator, role)
		return []*models.User{{ID: 11}, {ID: 12}}, nil
	}

	var batch []*models.Notification
	notifRepo := noopNotificationRepo()
	notifRepo.createBatchFn = func(_ context.Context, ns []*models.Notification) error {
		batch = ns
		return nil
	}

	svc := newTestContentService(noopContentRepo(), noopKategoriRepo(), notifRepo, userRepo)
	_, err := svc.CreateContent(context.Background(), validCreateInput())
	require.NoError(t, err)

	require.Len(t, batch, 2)
	assert.Equal(t, uint(11), batch[0].UserID)
	assert.Equal(t, uint(12), batch[1].UserID)
	for _, n := range batch {
		assert.Equal(t, models.NotificationKontenBaru, n.Type)
	}
}

func TestContentService_UpdateContent_Rules(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("non-owner forbidden", func(t *testing.T) {
		t.Parallel()
		contentRepo := noopContentRepo()
		contentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Content, error) {
			return &models.Content{ID: id, PublisherID: 99, Status: models.ContentStatusPending}, nil
		}
		svc := newTestContentService(contentRepo, noopKategoriRepo(), noopNotificationRepo(), noopUserRepo())
		_, err := svc.UpdateContent(ctx, UpdateContentInput{CallerID: 1, ContentID: 5})
		assertForbiddenError(t, err)
	})

	t.Run("approved content immutable", func(t *testing.T) {
		t.Parallel()
		contentRepo := noopContentRepo()
		contentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Content, error) {
			return &models.Content{ID: id, PublisherID: 1, Status: models.ContentStatusApproved}, nil
		}
		svc := newTestContentService(contentRepo, noopKategoriRepo(), noopNotificationRepo(), noopUserRepo())
		_, err := svc.UpdateContent(ctx, UpdateContentInput{CallerID: 1, ContentID: 5})
		assertInvalidStateError(t, err)
	})

	t.Run("editing rejected resets to pending and requeues", func(t *testing.T) {
		t.Parallel()
		content := &models.Content{ID: 5, PublisherID: 1, Status: models.ContentStatusRejected}
		contentRepo := noopContentRepo()
		contentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Content, error) { return content, nil }

		requeued := false
		notifRepo := noopNotificationRepo()
		notifRepo.createBatchFn = func(_ context.Context, ns []*models.Notification) error {
			requeued = true
			return nil
		}
		userRepo := noopUserRepo()
		userRepo.listActiveByRoleFn = func(_ context.Context, _ models.Role) ([]*models.User, error) {
			return []*models.User{{ID: 11}}, nil
		}

		svc := newTestContentService(contentRepo, noopKategoriRepo(), notifRepo, userRepo)
		updated, err := svc.UpdateContent(ctx, UpdateContentInput{
			CallerID:         1,
			ContentID:        5,
			Judul:            "Revisi",
			URLPublikasi:     "https://example.go.id/revisi",
			TanggalPublikasi: time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
			KategoriID:       2,
		})
		require.NoError(t, err)
		assert.Equal(t, models.ContentStatusPending, updated.Status)
		assert.True(t, requeued)
	})
}

func TestContentService_DeleteContent_Rules(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("pending cannot be deleted", func(t *testing.T) {
		t.Parallel()
		contentRepo := noopContentRepo()
		contentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Content, error) {
			return &models.Content{ID: id, PublisherID: 1, Status: models.ContentStatusPending}, nil
		}
		svc := newTestContentService(contentRepo, noopKategoriRepo(), noopNotificationRepo(), noopUserRepo())
		err := svc.DeleteContent(ctx, DeleteContentInput{CallerID: 1, ContentID: 5})
		assertInvalidStateError(t, err)
	})

	t.Run("rejected can be deleted by owner", func(t *testing.T) {
		t.Parallel()
		deleted := false
		contentRepo := noopContentRepo()
		contentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Content, error) {
			return &models.Content{ID: id, PublisherID: 1, Status: models.ContentStatusRejected}, nil
		}
		contentRepo.deleteFn = func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		}
		svc := newTestContentService(contentRepo, noopKategoriRepo(), noopNotificationRepo(), noopUserRepo())
		err := svc.DeleteContent(ctx, DeleteContentInput{CallerID: 1, ContentID: 5})
		require.NoError(t, err)
		assert.True(t, deleted)
	})
}
