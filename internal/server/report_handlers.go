package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// GetComplianceReport returns the monthly quota-compliance table, defaulting
// to the current month.
func (s *Server) GetComplianceReport(c *fiber.Ctx) error {
	month, year := parseMonthYear(c)
	report, err := s.reportService.ComplianceReport(c.Context(), month, year)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(report)
}

// ExportComplianceReport downloads the compliance table as CSV.
func (s *Server) ExportComplianceReport(c *fiber.Ctx) error {
	month, year := parseMonthYear(c)
	data, err := s.reportService.ExportComplianceCSV(c.Context(), month, year)
	if err != nil {
		return respondServiceError(c, err)
	}

	filename := fmt.Sprintf("laporan-kepatuhan-%04d-%02d.csv", year, int(month))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// GetDashboard returns the aggregate counters for the landing page.
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	summary, err := s.reportService.Dashboard(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(summary)
}
