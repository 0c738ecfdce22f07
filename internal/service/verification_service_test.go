package service

import (
	"context"
	"testing"
	"time"

	"simonev/internal/models"
	"simonev/internal/repository"
	"simonev/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedVerificationFixture creates the SKPD, accounts and one content row the
// verification tests operate on.
func seedVerificationFixture(t *testing.T, db *gorm.DB, status models.ContentStatus) *models.Content {
	t.Helper()

	skpd := &models.Skpd{NamaSkpd: "Dinas Kominfo", KuotaBulanan: 3, Status: models.SkpdStatusAktif}
	require.NoError(t, db.Create(skpd).Error)

	publisher := &models.User{
		Username: "pub_kominfo", Email: "pub@example.go.id", Password: "x",
		Role: models.RolePublisher, SkpdID: &skpd.ID, IsActive: true,
	}
	operator := &models.User{
		Username: "operator1", Email: "op@example.go.id", Password: "x",
		Role: models.RoleOperator, IsActive: true,
	}
	require.NoError(t, db.Create(publisher).Error)
	require.NoError(t, db.Create(operator).Error)

	kategori := &models.KategoriKonten{NamaKategori: "Berita", IsActive: true}
	require.NoError(t, db.Create(kategori).Error)

	content := &models.Content{
		Judul:            "Laporan Kinerja",
		URLPublikasi:     "https://kominfo.example.go.id/laporan",
		TanggalPublikasi: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		KategoriID:       kategori.ID,
		SkpdID:           skpd.ID,
		PublisherID:      publisher.ID,
		Status:           status,
	}
	require.NoError(t, db.Create(content).Error)
	return content
}

func newDBVerificationService(db *gorm.DB) *VerificationService {
	notif := NewNotificationService(repository.NewNotificationRepository(db), repository.NewUserRepository(db), nil)
	return NewVerificationService(db, repository.NewContentRepository(db), repository.NewVerificationRepository(db), notif)
}

func TestVerificationService_ApproveContent(t *testing.T) {
	t.Parallel()

	db := testutil.NewTestDB(t)
	content := seedVerificationFixture(t, db, models.ContentStatusPending)
	svc := newDBVerificationService(db)

	verification, err := svc.ApproveContent(context.Background(), ApproveContentInput{
		VerifikatorID: 2,
		ContentID:     content.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.VerificationStatusApproved, verification.Status)
	assert.False(t, verification.VerifiedAt.IsZero())

	var reloaded models.Content
	require.NoError(t, db.First(&reloaded, content.ID).Error)
	assert.Equal(t, models.ContentStatusApproved, reloaded.Status)

	// Publisher got notified and the audit trail recorded the verdict.
	var notif models.Notification
	require.NoError(t, db.Where("user_id = ?", content.PublisherID).First(&notif).Error)
	assert.Equal(t, models.NotificationKontenDiverifikasi, notif.Type)
	assert.Contains(t, notif.Message, "disetujui")

	var entry models.ActivityLog
	require.NoError(t, db.Where("action_type = ?", models.ActionContentVerified).First(&entry).Error)
	assert.Equal(t, uint(2), entry.UserID)
}

func TestVerificationService_RejectContent(t *testing.T) {
	t.Parallel()

	db := testutil.NewTestDB(t)
	content := seedVerificationFixture(t, db, models.ContentStatusPending)
	svc := newDBVerificationService(db)
	ctx := context.Background()

	t.Run("blank reason rejected", func(t *testing.T) {
		_, err := svc.RejectContent(ctx, RejectContentInput{
			VerifikatorID: 2,
			ContentID:     content.ID,
			Alasan:        "   ",
		})
		assertValidationError(t, err)

		var reloaded models.Content
		require.NoError(t, db.First(&reloaded, content.ID).Error)
		assert.Equal(t, models.ContentStatusPending, reloaded.Status, "content must stay pending")
	})

	t.Run("reject with reason", func(t *testing.T) {
		verification, err := svc.RejectContent(ctx, RejectContentInput{
			VerifikatorID: 2,
			ContentID:     content.ID,
			Alasan:        "URL tidak dapat diakses",
		})
		require.NoError(t, err)
		assert.Equal(t, models.VerificationStatusRejected, verification.Status)
		assert.Equal(t, "URL tidak dapat diakses", verification.Alasan)

		var reloaded models.Content
		require.NoError(t, db.First(&reloaded, content.ID).Error)
		assert.Equal(t, models.ContentStatusRejected, reloaded.Status)

		var notif models.Notification
		require.NoError(t, db.Where("user_id = ?", content.PublisherID).First(&notif).Error)
		assert.Contains(t, notif.Message, "URL tidak dapat diakses")
	})
}

func TestVerificationService_NonPendingRejected(t *testing.T) {
	t.Parallel()

	for _, status := range []models.ContentStatus{
		models.ContentStatusDraft,
		models.ContentStatusApproved,
		models.ContentStatusRejected,
		models.ContentStatusPublished,
	} {
		status := status
		t.Run(string(status), func(t *testing.T) {
			t.Parallel()
			db := testutil.NewTestDB(t)
			content := seedVerificationFixture(t, db, status)
			svc := newDBVerificationService(db)

			_, err := svc.ApproveContent(context.Background(), ApproveContentInput{
				VerifikatorID: 2,
				ContentID:     content.ID,
			})
			assertInvalidStateError(t, err)

			var reloaded models.Content
			require.NoError(t, db.First(&reloaded, content.ID).Error)
			assert.Equal(t, status, reloaded.Status, "status must not change")

			var count int64
			require.NoError(t, db.Model(&models.Verification{}).Count(&count).Error)
			assert.Zero(t, count, "no verification row on failed verdict")
		})
	}
}

func TestVerificationService_SecondVerdictLosesRace(t *testing.T) {
	t.Parallel()

	db := testutil.NewTestDB(t)
	content := seedVerificationFixture(t, db, models.ContentStatusPending)
	svc := newDBVerificationService(db)
	ctx := context.Background()

	_, err := svc.ApproveContent(ctx, ApproveContentInput{VerifikatorID: 2, ContentID: content.ID})
	require.NoError(t, err)

	_, err = svc.RejectContent(ctx, RejectContentInput{VerifikatorID: 2, ContentID: content.ID, Alasan: "terlambat"})
	assertInvalidStateError(t, err)

	var reloaded models.Content
	require.NoError(t, db.First(&reloaded, content.ID).Error)
	assert.Equal(t, models.ContentStatusApproved, reloaded.Status, "first verdict wins")

	var count int64
	require.NoError(t, db.Model(&models.Verification{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestVerificationService_ResubmitAccumulatesHistory(t *testing.T) {
	t.Parallel()

	db := testutil.NewTestDB(t)
	content := seedVerificationFixture(t, db, models.ContentStatusPending)
	svc := newDBVerificationService(db)
	ctx := context.Background()

	_, err := svc.RejectContent(ctx, RejectContentInput{VerifikatorID: 2, ContentID: content.ID, Alasan: "judul kurang jelas"})
	require.NoError(t, err)

	// Publisher fixes and resubmits.
	require.NoError(t, db.Model(&models.Content{}).
		Where("id = ?", content.ID).
		Update("status", models.ContentStatusPending).Error)

	_, err = svc.ApproveContent(ctx, ApproveContentInput{VerifikatorID: 2, ContentID: content.ID})
	require.NoError(t, err)

	history, err := svc.History(ctx, content.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.VerificationStatusApproved, history[0].Status, "newest first")
	assert.Equal(t, models.VerificationStatusRejected, history[1].Status)
}

func TestVerificationService_PendingQueueFIFO(t *testing.T) {
	t.Parallel()

	db := testutil.NewTestDB(t)
	first := seedVerificationFixture(t, db, models.ContentStatusPending)

	// An older submission that must come out of the queue first.
	older := &models.Content{
		Judul:            "Pengumuman Lama",
		URLPublikasi:     "https://kominfo.example.go.id/lama",
		TanggalPublikasi: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		KategoriID:       first.KategoriID,
		SkpdID:           first.SkpdID,
		PublisherID:      first.PublisherID,
		Status:           models.ContentStatusPending,
		CreatedAt:        time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, db.Create(older).Error)

	svc := newDBVerificationService(db)
	queue, err := svc.PendingQueue(context.Background(), repository.ContentFilter{})
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, older.ID, queue[0].ID, "oldest submission first")
	assert.Equal(t, first.ID, queue[1].ID)
}
