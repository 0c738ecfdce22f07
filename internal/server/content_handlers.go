package server

import (
	"time"

	"simonev/internal/middleware"
	"simonev/internal/models"
	"simonev/internal/repository"
	"simonev/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ContentRequest is the create/update payload for a publication record.
type ContentRequest struct {
	Judul            string `json:"judul"`
	Deskripsi        string `json:"deskripsi"`
	URLPublikasi     string `json:"url_publikasi"`
	TanggalPublikasi string `json:"tanggal_publikasi"`
	KategoriID       uint   `json:"kategori_id"`
}

// ContentListResponse is one page of publication records.
type ContentListResponse struct {
	Data  []*models.Content `json:"data"`
	Total int64             `json:"total"`
}

// parseTanggal accepts a date-only or RFC3339 publication timestamp.
func parseTanggal(raw string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// CreateContent submits a new publication record for the caller's SKPD.
func (s *Server) CreateContent(c *fiber.Ctx) error {
	var req ContentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skpdID, ok := callerSkpdID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Publisher account has no SKPD"))
	}

	tanggal, ok := parseTanggal(req.TanggalPublikasi)
	if !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Tanggal publikasi must be YYYY-MM-DD or RFC3339"))
	}

	content, err := s.contentService.CreateContent(c.Context(), service.CreateContentInput{
		PublisherID:      callerID(c),
		SkpdID:           skpdID,
		Judul:            req.Judul,
		Deskripsi:        req.Deskripsi,
		URLPublikasi:     req.URLPublikasi,
		TanggalPublikasi: tanggal,
		KategoriID:       req.KategoriID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.ContentSubmissions.Inc()
	return c.Status(fiber.StatusCreated).JSON(content)
}

// GetContents lists publication records. Publishers only ever see their own
// SKPD's records regardless of filters.
func (s *Server) GetContents(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	f := repository.ContentFilter{
		SkpdID:     uint(c.QueryInt("skpd_id", 0)),
		KategoriID: uint(c.QueryInt("kategori_id", 0)),
		Status:     models.ContentStatus(c.Query("status")),
		Search:     c.Query("q"),
		Month:      time.Month(c.QueryInt("bulan", 0)),
		Year:       c.QueryInt("tahun", 0),
		Limit:      p.Limit,
		Offset:     p.Offset,
	}
	if f.Status != "" && !f.Status.Valid() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid status filter"))
	}

	if callerRole(c) == models.RolePublisher {
		skpdID, ok := callerSkpdID(c)
		if !ok {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Publisher account has no SKPD"))
		}
		f.SkpdID = skpdID
	}

	contents, total, err := s.contentService.ListContents(c.Context(), f)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(ContentListResponse{Data: contents, Total: total})
}

// GetMyContents lists the caller's own submissions.
func (s *Server) GetMyContents(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	f := repository.ContentFilter{
		PublisherID: callerID(c),
		Status:      models.ContentStatus(c.Query("status")),
		Limit:       p.Limit,
		Offset:      p.Offset,
	}
	if f.Status != "" && !f.Status.Valid() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid status filter"))
	}

	contents, total, err := s.contentService.ListContents(c.Context(), f)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(ContentListResponse{Data: contents, Total: total})
}

// GetContent returns one publication record. Publishers can only read records
// belonging to their SKPD.
func (s *Server) GetContent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	content, err := s.contentService.GetContent(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	if callerRole(c) == models.RolePublisher {
		if skpdID, ok := callerSkpdID(c); !ok || content.SkpdID != skpdID {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("You can only view your own SKPD's content"))
		}
	}
	return c.JSON(content)
}

// UpdateContent edits a record owned by the caller.
func (s *Server) UpdateContent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req ContentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	tanggal, ok := parseTanggal(req.TanggalPublikasi)
	if !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Tanggal publikasi must be YYYY-MM-DD or RFC3339"))
	}

	content, err := s.contentService.UpdateContent(c.Context(), service.UpdateContentInput{
		CallerID:         callerID(c),
		ContentID:        id,
		Judul:            req.Judul,
		Deskripsi:        req.Deskripsi,
		URLPublikasi:     req.URLPublikasi,
		TanggalPublikasi: tanggal,
		KategoriID:       req.KategoriID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(content)
}

// DeleteContent removes a draft or rejected record owned by the caller.
func (s *Server) DeleteContent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.contentService.DeleteContent(c.Context(), service.DeleteContentInput{
		CallerID:  callerID(c),
		ContentID: id,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Content deleted"})
}
