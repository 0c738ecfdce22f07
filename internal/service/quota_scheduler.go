package service

import (
	"context"
	"log/slog"
	"time"
)

// Quota reminders go out to publishers from this day of the month onward when
// the quota is still unmet.
const quotaReminderDay = 25

// QuotaScheduler periodically evaluates SKPD quota standing and produces
// reminder and warning notifications. Dedup lives in NotificationService, so
// the tick interval only affects latency, not volume.
type QuotaScheduler struct {
	reports  *ReportService
	notif    *NotificationService
	interval time.Duration
	now      func() time.Time
}

// NewQuotaScheduler returns a new QuotaScheduler. A non-positive interval
// falls back to hourly.
func NewQuotaScheduler(reports *ReportService, notif *NotificationService, interval time.Duration) *QuotaScheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &QuotaScheduler{
		reports:  reports,
		notif:    notif,
		interval: interval,
		now:      time.Now,
	}
}

// Run evaluates once immediately, then on every tick until ctx is cancelled.
func (s *QuotaScheduler) Run(ctx context.Context) {
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *QuotaScheduler) runOnce(ctx context.Context) {
	if err := s.Evaluate(ctx); err != nil {
		slog.WarnContext(ctx, "quota evaluation failed", "error", err)
	}
}

// Evaluate checks every active SKPD: publishers get a reminder late in the
// month while the quota is unmet, and admins get a warning once an SKPD has
// missed its quota two months in a row. SKPDs without a quota are skipped.
func (s *QuotaScheduler) Evaluate(ctx context.Context) error {
	now := s.now().UTC()

	skpds, err := s.reports.skpdRepo.List(ctx, true)
	if err != nil {
		return err
	}

	for _, skpd := range skpds {
		if skpd.KuotaBulanan <= 0 {
			continue
		}

		if now.Day() >= quotaReminderDay {
			row, err := s.reports.ComplianceForSkpd(ctx, skpd, now.Month(), now.Year())
			if err != nil {
				return err
			}
			if row.Label != LabelMemenuhi {
				if err := s.notif.NotifyQuotaReminder(ctx, skpd, row.ApprovedCount, now); err != nil {
					slog.WarnContext(ctx, "failed to send quota reminder", "skpd_id", skpd.ID, "error", err)
				}
			}
		}

		missedBoth := true
		for back := 1; back <= 2; back++ {
			prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -back, 0)
			row, err := s.reports.ComplianceForSkpd(ctx, skpd, prev.Month(), prev.Year())
			if err != nil {
				return err
			}
			if row.Label == LabelMemenuhi {
				missedBoth = false
				break
			}
		}
		if missedBoth {
			if err := s.notif.NotifyQuotaWarning(ctx, skpd, now); err != nil {
				slog.WarnContext(ctx, "failed to send quota warning", "skpd_id", skpd.ID, "error", err)
			}
		}
	}
	return nil
}
