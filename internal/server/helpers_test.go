package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"simonev/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for unit tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	return gormDB, mock
}

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"userId", "user ID"},
		{"skpdId", "skpd ID"},
		{"something", "something"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p := parsePagination(c, 25)
		return c.JSON(fiber.Map{"limit": p.Limit, "offset": p.Offset})
	})

	tests := []struct {
		name       string
		query      string
		wantLimit  float64
		wantOffset float64
	}{
		{"Defaults", "", 25, 0},
		{"Custom", "?limit=10&offset=30", 10, 30},
		{"Capped At Max", "?limit=9999", 100, 0},
		{"Negative Offset", "?offset=-5", 25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/items"+tt.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			var body map[string]float64
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantLimit, body["limit"])
			assert.Equal(t, tt.wantOffset, body["offset"])
		})
	}
}

func TestParseID(t *testing.T) {
	app := fiber.New()
	s := &Server{}
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id})
	})

	t.Run("Valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Non Numeric", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/items/abc", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Contains(t, body["error"], "Invalid ID")
	})

	t.Run("Zero", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/items/0", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"Not Found", models.NewNotFoundError("Content", 1), http.StatusNotFound},
		{"Validation", models.NewValidationError("bad"), http.StatusBadRequest},
		{"Invalid State", models.NewInvalidStateError("nope"), http.StatusConflict},
		{"Business Rule", models.NewBusinessRuleError("nope"), http.StatusConflict},
		{"Unauthorized", models.NewUnauthorizedError("who"), http.StatusUnauthorized},
		{"Forbidden", models.NewForbiddenError("no"), http.StatusForbidden},
		{"Plain Error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusForError(tt.err))
		})
	}
}

func TestReadinessCheck_DBPingFails(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	mock.ExpectPing().WillReturnError(assert.AnError)

	s := &Server{db: gormDB}
	app := fiber.New()
	app.Get("/health/ready", s.ReadinessCheck)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body struct {
		Status string `json:"status"`
		Checks struct {
			Database string `json:"database"`
			Redis    string `json:"redis"`
		} `json:"checks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "unhealthy", body.Checks.Database)
	assert.Equal(t, "unavailable", body.Checks.Redis)
}

func TestLivenessCheck(t *testing.T) {
	s := &Server{}
	app := fiber.New()
	app.Get("/health/live", s.LivenessCheck)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
