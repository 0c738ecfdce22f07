package server

import (
	"net/http"
	"testing"

	"simonev/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSkpdApp(s *Server, user *models.User) *fiber.App {
	app := fiber.New()
	app.Use(authAs(user))
	app.Get("/api/skpd", s.GetSkpds)
	app.Get("/api/skpd/:id", s.GetSkpd)
	app.Post("/api/skpd", s.CreateSkpd)
	app.Put("/api/skpd/:id", s.UpdateSkpd)
	app.Delete("/api/skpd/:id", s.DeleteSkpd)
	return app
}

func TestCreateSkpd(t *testing.T) {
	s := newTestServer(t)
	admin := createTestUser(t, s, "admin_pusat", models.RoleAdmin, nil)
	app := newSkpdApp(s, admin)

	t.Run("Success With Default Quota", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/skpd", SkpdRequest{
			NamaSkpd:   "Dinas Kominfo",
			WebsiteURL: "https://diskominfo.example.go.id",
			Status:     models.SkpdStatusAktif,
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decodeBody[models.Skpd](t, resp)
		assert.Equal(t, models.DefaultKuotaBulanan, body.KuotaBulanan)
		assert.Equal(t, models.SkpdStatusAktif, body.Status)
	})

	t.Run("Missing Name", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/skpd", SkpdRequest{
			Status: models.SkpdStatusAktif,
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateSkpd(t *testing.T) {
	s := newTestServer(t)
	admin := createTestUser(t, s, "admin_pusat", models.RoleAdmin, nil)
	skpd := createTestSkpd(t, s, "Dinas Kominfo")
	app := newSkpdApp(s, admin)

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/skpd/"+itoa(skpd.ID), SkpdRequest{
		NamaSkpd:     "Dinas Komunikasi dan Informatika",
		WebsiteURL:   skpd.WebsiteURL,
		KuotaBulanan: 6,
		Status:       models.SkpdStatusNonaktif,
	}))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[models.Skpd](t, resp)
	assert.Equal(t, "Dinas Komunikasi dan Informatika", body.NamaSkpd)
	assert.Equal(t, 6, body.KuotaBulanan)
	assert.Equal(t, models.SkpdStatusNonaktif, body.Status)

	// SKPD edits land in the audit trail with before/after values.
	var entry models.ActivityLog
	require.NoError(t, s.db.
		Where("action_type = ?", models.ActionSkpdUpdated).
		First(&entry).Error)
	assert.Equal(t, admin.ID, entry.UserID)
}

func TestDeleteSkpd(t *testing.T) {
	s := newTestServer(t)
	admin := createTestUser(t, s, "admin_pusat", models.RoleAdmin, nil)
	app := newSkpdApp(s, admin)

	t.Run("Blocked By Active Content", func(t *testing.T) {
		skpd := createTestSkpd(t, s, "Dinas Kominfo")
		publisher := createTestUser(t, s, "pub_kominfo", models.RolePublisher, &skpd.ID)
		kategori := createTestKategori(t, s, "Berita")
		createTestContent(t, s, publisher, kategori.ID, models.ContentStatusPending)

		resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/skpd/"+itoa(skpd.ID), nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Success Without Active Content", func(t *testing.T) {
		skpd := createTestSkpd(t, s, "Dinas Arsip")
		resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/skpd/"+itoa(skpd.ID), nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var count int64
		require.NoError(t, s.db.Model(&models.Skpd{}).Where("id = ?", skpd.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})
}

func TestGetSkpds(t *testing.T) {
	s := newTestServer(t)
	admin := createTestUser(t, s, "admin_pusat", models.RoleAdmin, nil)
	createTestSkpd(t, s, "Dinas Kominfo")
	inactive := createTestSkpd(t, s, "Dinas Lama")
	require.NoError(t, s.db.Model(inactive).Update("status", models.SkpdStatusNonaktif).Error)

	app := newSkpdApp(s, admin)

	t.Run("All", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/skpd", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, decodeBody[[]*models.Skpd](t, resp), 2)
	})

	t.Run("Active Only", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/skpd?aktif=true", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		skpds := decodeBody[[]*models.Skpd](t, resp)
		require.Len(t, skpds, 1)
		assert.Equal(t, models.SkpdStatusAktif, skpds[0].Status)
	})
}
