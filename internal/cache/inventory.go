package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ComplianceReportKeyPrefix = "laporan:kepatuhan:%d:%d"
	DashboardKey              = "laporan:dashboard"
)

const (
	ComplianceReportTTL = 5 * time.Minute
	DashboardTTL        = 1 * time.Minute
)

// ComplianceReportKey keys the monthly compliance table by year and month.
func ComplianceReportKey(year int, month time.Month) string {
	return fmt.Sprintf(ComplianceReportKeyPrefix, year, int(month))
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateComplianceReport drops the cached table for one period along with
// the dashboard aggregates derived from it.
func InvalidateComplianceReport(ctx context.Context, year int, month time.Month) {
	Invalidate(ctx, ComplianceReportKey(year, month))
	Invalidate(ctx, DashboardKey)
}
