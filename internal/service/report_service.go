package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"simonev/internal/cache"
	"simonev/internal/models"
	"simonev/internal/repository"
)

// ComplianceRow is one SKPD's standing against its quota in one month.
type ComplianceRow struct {
	SkpdID        uint            `json:"skpd_id"`
	NamaSkpd      string          `json:"nama_skpd"`
	KuotaBulanan  int             `json:"kuota_bulanan"`
	ApprovedCount int64           `json:"approved_count"`
	Percentage    float64         `json:"percentage"`
	Label         ComplianceLabel `json:"label"`
}

// ComplianceReport is the monthly compliance table across all active SKPDs.
type ComplianceReport struct {
	Bulan       int             `json:"bulan"`
	Tahun       int             `json:"tahun"`
	Rows        []ComplianceRow `json:"rows"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// DashboardSummary aggregates the landing-page counters.
type DashboardSummary struct {
	TotalSkpd      int64                          `json:"total_skpd"`
	ContentByState map[models.ContentStatus]int64 `json:"content_by_state"`
	RecentActivity []*models.ActivityLog          `json:"recent_activity"`
}

// ReportService computes compliance reports and dashboard aggregates, cached
// in Redis with short TTLs.
type ReportService struct {
	skpdRepo    repository.SkpdRepository
	contentRepo repository.ContentRepository
	logRepo     repository.ActivityLogRepository
}

// NewReportService returns a new ReportService.
func NewReportService(
	skpdRepo repository.SkpdRepository,
	contentRepo repository.ContentRepository,
	logRepo repository.ActivityLogRepository,
) *ReportService {
	return &ReportService{
		skpdRepo:    skpdRepo,
		contentRepo: contentRepo,
		logRepo:     logRepo,
	}
}

// ComplianceForSkpd computes one SKPD's row for one month. Only approved
// content whose publication date falls inside the month counts.
func (s *ReportService) ComplianceForSkpd(ctx context.Context, skpd *models.Skpd, month time.Month, year int) (ComplianceRow, error) {
	approved, err := s.contentRepo.CountApprovedInPeriod(ctx, skpd.ID, month, year)
	if err != nil {
		return ComplianceRow{}, err
	}
	pct, label := CalculateCompliance(approved, skpd.KuotaBulanan)
	return ComplianceRow{
		SkpdID:        skpd.ID,
		NamaSkpd:      skpd.NamaSkpd,
		KuotaBulanan:  skpd.KuotaBulanan,
		ApprovedCount: approved,
		Percentage:    pct,
		Label:         label,
	}, nil
}

// ComplianceReport returns the compliance table for every active SKPD in the
// given month, serving from cache when available.
func (s *ReportService) ComplianceReport(ctx context.Context, month time.Month, year int) (*ComplianceReport, error) {
	if month < time.January || month > time.December {
		return nil, models.NewValidationError("Bulan must be between 1 and 12")
	}
	if year < 2000 {
		return nil, models.NewValidationError("Tahun is out of range")
	}

	key := cache.ComplianceReportKey(year, month)
	var cached ComplianceReport
	if cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	skpds, err := s.skpdRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	report := &ComplianceReport{
		Bulan:       int(month),
		Tahun:       year,
		Rows:        make([]ComplianceRow, 0, len(skpds)),
		GeneratedAt: time.Now().UTC(),
	}
	for _, skpd := range skpds {
		row, err := s.ComplianceForSkpd(ctx, skpd, month, year)
		if err != nil {
			return nil, err
		}
		report.Rows = append(report.Rows, row)
	}

	cache.SetJSON(ctx, key, report, cache.ComplianceReportTTL)
	return report, nil
}

// ExportComplianceCSV renders the compliance table as CSV for download.
func (s *ReportService) ExportComplianceCSV(ctx context.Context, month time.Month, year int) ([]byte, error) {
	report, err := s.ComplianceReport(ctx, month, year)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Nama SKPD", "Kuota Bulanan", "Konten Disetujui", "Persentase", "Status Kepatuhan"}); err != nil {
		return nil, err
	}
	for _, row := range report.Rows {
		record := []string{
			row.NamaSkpd,
			strconv.Itoa(row.KuotaBulanan),
			strconv.FormatInt(row.ApprovedCount, 10),
			fmt.Sprintf("%.2f", row.Percentage),
			string(row.Label),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Dashboard returns the aggregate counters for the admin landing page.
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	var cached DashboardSummary
	if cache.GetJSON(ctx, cache.DashboardKey, &cached) {
		return &cached, nil
	}

	skpds, err := s.skpdRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}

	byState := make(map[models.ContentStatus]int64)
	for _, status := range []models.ContentStatus{
		models.ContentStatusDraft,
		models.ContentStatusPending,
		models.ContentStatusApproved,
		models.ContentStatusRejected,
		models.ContentStatusPublished,
	} {
		_, total, err := s.contentRepo.List(ctx, repository.ContentFilter{Status: status, Limit: 1})
		if err != nil {
			return nil, err
		}
		byState[status] = total
	}

	recent, _, err := s.logRepo.List(ctx, repository.ActivityLogFilter{Limit: 10})
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		TotalSkpd:      int64(len(skpds)),
		ContentByState: byState,
		RecentActivity: recent,
	}
	cache.SetJSON(ctx, cache.DashboardKey, summary, cache.DashboardTTL)
	return summary, nil
}
