package server

import (
	"time"

	"simonev/internal/models"
	"simonev/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// ActivityLogListResponse is one page of the audit trail.
type ActivityLogListResponse struct {
	Data  []*models.ActivityLog `json:"data"`
	Total int64                 `json:"total"`
}

// GetActivityLogs returns the audit trail, newest first.
func (s *Server) GetActivityLogs(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	f := repository.ActivityLogFilter{
		UserID:     uint(c.QueryInt("user_id", 0)),
		ActionType: models.ActionType(c.Query("action_type")),
		Limit:      p.Limit,
		Offset:     p.Offset,
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
		f.To = t.AddDate(0, 0, 1)
	}

	entries, total, err := s.activityLogService.List(c.Context(), f)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(ActivityLogListResponse{Data: entries, Total: total})
}
