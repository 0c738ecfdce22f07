package server

import (
	"simonev/internal/models"
	"simonev/internal/service"

	"github.com/gofiber/fiber/v2"
)

// KategoriRequest is the create/update payload for a content category.
type KategoriRequest struct {
	NamaKategori string `json:"nama_kategori"`
	IsActive     *bool  `json:"is_active"`
}

// CreateKategori adds a content category.
func (s *Server) CreateKategori(c *fiber.Ctx) error {
	var req KategoriRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	kategori, err := s.kategoriService.CreateKategori(c.Context(), req.NamaKategori)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(kategori)
}

// UpdateKategori renames or (de)activates a category. Deactivation hides it
// from new-content pickers without touching existing content.
func (s *Server) UpdateKategori(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req KategoriRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	kategori, err := s.kategoriService.UpdateKategori(c.Context(), service.UpdateKategoriInput{
		KategoriID:   id,
		NamaKategori: req.NamaKategori,
		IsActive:     isActive,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(kategori)
}

// GetKategoris lists categories; aktif=true hides deactivated ones.
func (s *Server) GetKategoris(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("aktif", false)
	kategoris, err := s.kategoriService.ListKategoris(c.Context(), activeOnly)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(kategoris)
}
