package server

import (
	"simonev/internal/models"
	"simonev/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SkpdRequest is the create/update payload for an SKPD.
type SkpdRequest struct {
	NamaSkpd     string            `json:"nama_skpd"`
	WebsiteURL   string            `json:"website_url"`
	Email        string            `json:"email"`
	KuotaBulanan int               `json:"kuota_bulanan"`
	Status       models.SkpdStatus `json:"status"`
}

// CreateSkpd registers a new SKPD.
func (s *Server) CreateSkpd(c *fiber.Ctx) error {
	var req SkpdRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skpd, err := s.skpdService.CreateSkpd(c.Context(), service.CreateSkpdInput{
		CallerID:     callerID(c),
		NamaSkpd:     req.NamaSkpd,
		WebsiteURL:   req.WebsiteURL,
		Email:        req.Email,
		KuotaBulanan: req.KuotaBulanan,
		Status:       req.Status,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(skpd)
}

// UpdateSkpd edits an SKPD record.
func (s *Server) UpdateSkpd(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req SkpdRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skpd, err := s.skpdService.UpdateSkpd(c.Context(), service.UpdateSkpdInput{
		CallerID:     callerID(c),
		SkpdID:       id,
		NamaSkpd:     req.NamaSkpd,
		WebsiteURL:   req.WebsiteURL,
		Email:        req.Email,
		KuotaBulanan: req.KuotaBulanan,
		Status:       req.Status,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(skpd)
}

// DeleteSkpd removes an SKPD that has no active content.
func (s *Server) DeleteSkpd(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.skpdService.DeleteSkpd(c.Context(), service.DeleteSkpdInput{
		CallerID: callerID(c),
		SkpdID:   id,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "SKPD deleted"})
}

// GetSkpd returns one SKPD.
func (s *Server) GetSkpd(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	skpd, err := s.skpdService.GetSkpd(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(skpd)
}

// GetSkpds lists SKPDs, optionally only active ones.
func (s *Server) GetSkpds(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("aktif", false)
	skpds, err := s.skpdService.ListSkpds(c.Context(), activeOnly)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(skpds)
}
