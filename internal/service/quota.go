// Package service provides application business logic (content, verification, reports, etc.).
package service

import "math"

// ComplianceLabel classifies how an SKPD performed against its monthly quota.
type ComplianceLabel string

const (
	// LabelMemenuhi means the quota was fully met (>= 100%).
	LabelMemenuhi ComplianceLabel = "Memenuhi"
	// LabelSebagian means partial compliance (50% - <100%).
	LabelSebagian ComplianceLabel = "Sebagian"
	// LabelBelumMemenuhi means below half the quota (<50%).
	LabelBelumMemenuhi ComplianceLabel = "Belum Memenuhi"
	// LabelTidakAdaKuota means the SKPD has no quota configured (quota <= 0).
	LabelTidakAdaKuota ComplianceLabel = "Tidak Ada Kuota"
)

// CalculateCompliance returns the compliance percentage and label for one SKPD
// in one month. Percentage is approved/quota*100 rounded to two decimals and is
// not capped, so over-compliance reads above 100.
func CalculateCompliance(approved int64, quota int) (float64, ComplianceLabel) {
	if quota <= 0 {
		return 0, LabelTidakAdaKuota
	}

	pct := float64(approved) / float64(quota) * 100
	pct = math.Round(pct*100) / 100

	switch {
	case pct >= 100:
		return pct, LabelMemenuhi
	case pct >= 50:
		return pct, LabelSebagian
	default:
		return pct, LabelBelumMemenuhi
	}
}
