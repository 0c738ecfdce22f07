package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"simonev/internal/config"
	"simonev/internal/models"
	"simonev/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newTestServer wires a Server against an in-memory database without Redis.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:          "unit-test-secret-0123456789abcdef",
		Env:                "test",
		QuotaCheckInterval: "1h",
	}
	s, err := NewServerWithDeps(cfg, testutil.NewTestDB(t), nil)
	require.NoError(t, err)
	return s
}

// authAs injects the given account's identity the way the auth middleware
// would after validating a token.
func authAs(user *models.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", user.ID)
		c.Locals("role", user.Role)
		if user.SkpdID != nil {
			c.Locals("skpdID", *user.SkpdID)
		}
		return c.Next()
	}
}

func createTestSkpd(t *testing.T, s *Server, nama string) *models.Skpd {
	t.Helper()
	skpd := &models.Skpd{
		NamaSkpd:     nama,
		WebsiteURL:   "https://" + nama + ".example.go.id",
		KuotaBulanan: 3,
		Status:       models.SkpdStatusAktif,
	}
	require.NoError(t, s.db.Create(skpd).Error)
	return skpd
}

func createTestUser(t *testing.T, s *Server, username string, role models.Role, skpdID *uint) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.go.id",
		Password: "not-a-real-hash",
		Role:     role,
		SkpdID:   skpdID,
		IsActive: true,
	}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

func createTestKategori(t *testing.T, s *Server, nama string) *models.KategoriKonten {
	t.Helper()
	kategori := &models.KategoriKonten{NamaKategori: nama, IsActive: true}
	require.NoError(t, s.db.Create(kategori).Error)
	return kategori
}

func createTestContent(t *testing.T, s *Server, publisher *models.User, kategoriID uint, status models.ContentStatus) *models.Content {
	t.Helper()
	require.NotNil(t, publisher.SkpdID)
	content := &models.Content{
		Judul:            fmt.Sprintf("Berita %d", time.Now().UnixNano()),
		Deskripsi:        "Deskripsi uji",
		URLPublikasi:     "https://diskominfo.example.go.id/berita/1",
		TanggalPublikasi: time.Now().UTC(),
		KategoriID:       kategoriID,
		SkpdID:           *publisher.SkpdID,
		PublisherID:      publisher.ID,
		Status:           status,
	}
	require.NoError(t, s.db.Create(content).Error)
	return content
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}
