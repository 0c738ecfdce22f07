package server

import (
	"time"

	"simonev/internal/middleware"
	"simonev/internal/models"
	"simonev/internal/repository"
	"simonev/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ApproveContentRequest carries the optional approval note.
type ApproveContentRequest struct {
	Alasan string `json:"alasan"`
}

// RejectContentRequest carries the mandatory rejection reason.
type RejectContentRequest struct {
	Alasan string `json:"alasan"`
}

// VerificationListResponse is one page of the global verification history.
type VerificationListResponse struct {
	Data  []*models.Verification `json:"data"`
	Total int64                  `json:"total"`
}

// ApproveContent records an approval verdict on pending content.
func (s *Server) ApproveContent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	// The approval note is optional, so an empty body is fine.
	var req ApproveContentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
	}

	verification, err := s.verificationService.ApproveContent(c.Context(), service.ApproveContentInput{
		VerifikatorID: callerID(c),
		ContentID:     id,
		Alasan:        req.Alasan,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.VerificationVerdicts.WithLabelValues(string(models.VerificationStatusApproved)).Inc()
	return c.JSON(verification)
}

// RejectContent records a rejection verdict with its reason.
func (s *Server) RejectContent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req RejectContentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	verification, err := s.verificationService.RejectContent(c.Context(), service.RejectContentInput{
		VerifikatorID: callerID(c),
		ContentID:     id,
		Alasan:        req.Alasan,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.VerificationVerdicts.WithLabelValues(string(models.VerificationStatusRejected)).Inc()
	return c.JSON(verification)
}

// GetContentVerifications returns the verdict history of one content.
func (s *Server) GetContentVerifications(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	history, err := s.verificationService.History(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(history)
}

// GetVerificationQueue returns pending content oldest-first.
func (s *Server) GetVerificationQueue(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	f := repository.ContentFilter{
		SkpdID:     uint(c.QueryInt("skpd_id", 0)),
		KategoriID: uint(c.QueryInt("kategori_id", 0)),
		Search:     c.Query("q"),
		Limit:      p.Limit,
		Offset:     p.Offset,
	}

	queue, err := s.verificationService.PendingQueue(c.Context(), f)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(queue)
}

// GetVerificationHistory returns one page of the global verdict history.
func (s *Server) GetVerificationHistory(c *fiber.Ctx) error {
	f := repository.VerificationFilter{
		SkpdID: uint(c.QueryInt("skpd_id", 0)),
		Status: models.VerificationStatus(c.Query("status")),
		Search: c.Query("q"),
		Page:   c.QueryInt("page", 1),
	}
	if from := c.Query("dari"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid dari date"))
		}
		f.From = t
	}
	if to := c.Query("sampai"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid sampai date"))
		}
		// Inclusive end date: bound is the start of the next day.
		f.To = t.AddDate(0, 0, 1)
	}

	verifications, total, err := s.verificationService.AllHistory(c.Context(), f)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(VerificationListResponse{Data: verifications, Total: total})
}
