package server

import (
	"net/http"
	"testing"

	"simonev/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentApp(s *Server, user *models.User) *fiber.App {
	app := fiber.New()
	app.Use(authAs(user))
	app.Post("/api/konten", s.CreateContent)
	app.Get("/api/konten", s.GetContents)
	app.Get("/api/konten/milik-saya", s.GetMyContents)
	app.Get("/api/konten/:id", s.GetContent)
	app.Put("/api/konten/:id", s.UpdateContent)
	app.Delete("/api/konten/:id", s.DeleteContent)
	return app
}

func TestCreateContent(t *testing.T) {
	s := newTestServer(t)
	skpd := createTestSkpd(t, s, "Dinas Kominfo")
	publisher := createTestUser(t, s, "pub_kominfo", models.RolePublisher, &skpd.ID)
	operator := createTestUser(t, s, "op_satu", models.RoleOperator, nil)
	formerOperator := createTestUser(t, s, "op_purna", models.RoleOperator, nil)
	require.NoError(t, s.db.Model(formerOperator).Update("is_active", false).Error)
	kategori := createTestKategori(t, s, "Berita")
	app := newContentApp(s, publisher)

	tests := []struct {
		name           string
		payload        ContentRequest
		expectedStatus int
	}{
		{
			name: "Success",
			payload: ContentRequest{
				Judul:            "Peluncuran Portal Layanan",
				Deskripsi:        "Liputan peluncuran portal",
				URLPublikasi:     "https://diskominfo.example.go.id/berita/1",
				TanggalPublikasi: "2026-08-10",
				KategoriID:       kategori.ID,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing Judul",
			payload: ContentRequest{
				URLPublikasi:     "https://diskominfo.example.go.id/berita/2",
				TanggalPublikasi: "2026-08-10",
				KategoriID:       kategori.ID,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Bad URL",
			payload: ContentRequest{
				Judul:            "Tanpa skema",
				URLPublikasi:     "diskominfo.example.go.id/berita/3",
				TanggalPublikasi: "2026-08-10",
				KategoriID:       kategori.ID,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Bad Date",
			payload: ContentRequest{
				Judul:            "Tanggal rusak",
				URLPublikasi:     "https://diskominfo.example.go.id/berita/4",
				TanggalPublikasi: "10-08-2026",
				KategoriID:       kategori.ID,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Unknown Kategori",
			payload: ContentRequest{
				Judul:            "Kategori hilang",
				URLPublikasi:     "https://diskominfo.example.go.id/berita/5",
				TanggalPublikasi: "2026-08-10",
				KategoriID:       999,
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/konten", tt.payload))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus != http.StatusCreated {
				return
			}
			body := decodeBody[models.Content](t, resp)
			assert.Equal(t, models.ContentStatusPending, body.Status)
			assert.Equal(t, skpd.ID, body.SkpdID)
			assert.Equal(t, publisher.ID, body.PublisherID)
		})
	}

	// Creation fans out a queue notification to the active operator only.
	var count int64
	require.NoError(t, s.db.Model(&models.Notification{}).
		Where("type = ?", models.NotificationKontenBaru).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var recipient models.Notification
	require.NoError(t, s.db.
		Where("type = ?", models.NotificationKontenBaru).
		First(&recipient).Error)
	assert.Equal(t, operator.ID, recipient.UserID)

	var inactiveCount int64
	require.NoError(t, s.db.Model(&models.Notification{}).
		Where("user_id = ?", formerOperator.ID).Count(&inactiveCount).Error)
	assert.Equal(t, int64(0), inactiveCount)
}

func TestGetContents_PublisherScopedToOwnSkpd(t *testing.T) {
	s := newTestServer(t)
	skpdA := createTestSkpd(t, s, "Dinas Kominfo")
	skpdB := createTestSkpd(t, s, "Dinas Kesehatan")
	pubA := createTestUser(t, s, "pub_a", models.RolePublisher, &skpdA.ID)
	pubB := createTestUser(t, s, "pub_b", models.RolePublisher, &skpdB.ID)
	kategori := createTestKategori(t, s, "Berita")

	createTestContent(t, s, pubA, kategori.ID, models.ContentStatusPending)
	createTestContent(t, s, pubB, kategori.ID, models.ContentStatusPending)
	createTestContent(t, s, pubB, kategori.ID, models.ContentStatusApproved)

	t.Run("Publisher Sees Own SKPD Only", func(t *testing.T) {
		app := newContentApp(s, pubA)
		// Even an explicit foreign skpd_id filter is overridden.
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/konten?skpd_id=2", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody[ContentListResponse](t, resp)
		require.Equal(t, int64(1), body.Total)
		assert.Equal(t, skpdA.ID, body.Data[0].SkpdID)
	})

	t.Run("Operator Sees Everything", func(t *testing.T) {
		operator := createTestUser(t, s, "op_semua", models.RoleOperator, nil)
		app := newContentApp(s, operator)
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/konten", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody[ContentListResponse](t, resp)
		assert.Equal(t, int64(3), body.Total)
	})

	t.Run("Status Filter", func(t *testing.T) {
		app := newContentApp(s, pubB)
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/konten?status=approved", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody[ContentListResponse](t, resp)
		require.Equal(t, int64(1), body.Total)
		assert.Equal(t, models.ContentStatusApproved, body.Data[0].Status)
	})

	t.Run("Invalid Status Filter", func(t *testing.T) {
		app := newContentApp(s, pubA)
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/konten?status=banana", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetMyContents(t *testing.T) {
	s := newTestServer(t)
	skpd := createTestSkpd(t, s, "Dinas Kominfo")
	pubA := createTestUser(t, s, "pub_a", models.RolePublisher, &skpd.ID)
	pubB := createTestUser(t, s, "pub_b", models.RolePublisher, &skpd.ID)
	kategori := createTestKategori(t, s, "Berita")

	createTestContent(t, s, pubA, kategori.ID, models.ContentStatusPending)
	createTestContent(t, s, pubB, kategori.ID, models.ContentStatusPending)

	app := newContentApp(s, pubA)
	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/konten/milik-saya", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[ContentListResponse](t, resp)
	require.Equal(t, int64(1), body.Total)
	assert.Equal(t, pubA.ID, body.Data[0].PublisherID)
}

func TestGetContent_PublisherCannotReadForeignSkpd(t *testing.T) {
	s := newTestServer(t)
	skpdA := createTestSkpd(t, s, "Dinas Kominfo")
	skpdB := createTestSkpd(t, s, "Dinas Kesehatan")
	pubA := createTestUser(t, s, "pub_a", models.RolePublisher, &skpdA.ID)
	pubB := createTestUser(t, s, "pub_b", models.RolePublisher, &skpdB.ID)
	kategori := createTestKategori(t, s, "Berita")
	foreign := createTestContent(t, s, pubB, kategori.ID, models.ContentStatusPending)

	app := newContentApp(s, pubA)
	resp, err := app.Test(jsonRequest(t, http.MethodGet,
		"/api/konten/"+itoa(foreign.ID), nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUpdateContent(t *testing.T) {
	s := newTestServer(t)
	skpd := createTestSkpd(t, s, "Dinas Kominfo")
	publisher := createTestUser(t, s, "pub_kominfo", models.RolePublisher, &skpd.ID)
	other := createTestUser(t, s, "pub_lain", models.RolePublisher, &skpd.ID)
	kategori := createTestKategori(t, s, "Berita")

	rejected := createTestContent(t, s, publisher, kategori.ID, models.ContentStatusRejected)
	approved := createTestContent(t, s, publisher, kategori.ID, models.ContentStatusApproved)

	payload := ContentRequest{
		Judul:            "Judul revisi",
		URLPublikasi:     "https://diskominfo.example.go.id/berita/9",
		TanggalPublikasi: "2026-08-12",
		KategoriID:       kategori.ID,
	}

	t.Run("Rejected Resubmits As Pending", func(t *testing.T) {
		app := newContentApp(s, publisher)
		resp, err := app.Test(jsonRequest(t, http.MethodPut,
			"/api/konten/"+itoa(rejected.ID), payload))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody[models.Content](t, resp)
		assert.Equal(t, models.ContentStatusPending, body.Status)
		assert.Equal(t, "Judul revisi", body.Judul)
	})

	t.Run("Approved Is Immutable", func(t *testing.T) {
		app := newContentApp(s, publisher)
		resp, err := app.Test(jsonRequest(t, http.MethodPut,
			"/api/konten/"+itoa(approved.ID), payload))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Not The Owner", func(t *testing.T) {
		app := newContentApp(s, other)
		resp, err := app.Test(jsonRequest(t, http.MethodPut,
			"/api/konten/"+itoa(rejected.ID), payload))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Not Found", func(t *testing.T) {
		app := newContentApp(s, publisher)
		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/konten/999", payload))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteContent(t *testing.T) {
	s := newTestServer(t)
	skpd := createTestSkpd(t, s, "Dinas Kominfo")
	publisher := createTestUser(t, s, "pub_kominfo", models.RolePublisher, &skpd.ID)
	kategori := createTestKategori(t, s, "Berita")

	rejected := createTestContent(t, s, publisher, kategori.ID, models.ContentStatusRejected)
	pending := createTestContent(t, s, publisher, kategori.ID, models.ContentStatusPending)
	app := newContentApp(s, publisher)

	t.Run("Rejected Can Be Deleted", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete,
			"/api/konten/"+itoa(rejected.ID), nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Pending Stays For The Record", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete,
			"/api/konten/"+itoa(pending.ID), nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}
