package models

import "time"

// SkpdStatus defines lifecycle states for an SKPD record.
type SkpdStatus string

const (
	// SkpdStatusAktif marks an agency that is actively tracked.
	SkpdStatusAktif SkpdStatus = "aktif"
	// SkpdStatusNonaktif marks an agency excluded from quota tracking.
	SkpdStatusNonaktif SkpdStatus = "nonaktif"
)

// Valid reports whether s is a recognized SKPD status.
func (s SkpdStatus) Valid() bool {
	return s == SkpdStatusAktif || s == SkpdStatusNonaktif
}

// DefaultKuotaBulanan is the monthly publication quota assigned to an SKPD
// when none is specified.
const DefaultKuotaBulanan = 3

// Skpd is a regional government work unit (Satuan Kerja Perangkat Daerah).
// It owns publisher accounts and the content they submit, and carries the
// monthly quota its publications are measured against.
type Skpd struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	NamaSkpd     string     `gorm:"size:150;not null" json:"nama_skpd"`
	WebsiteURL   string     `gorm:"size:255" json:"website_url"`
	Email        string     `gorm:"size:120" json:"email"`
	KuotaBulanan int        `gorm:"not null;default:3" json:"kuota_bulanan"`
	Status       SkpdStatus `gorm:"type:varchar(20);not null;default:'aktif';index" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName overrides the default pluralization for the Indonesian acronym.
func (Skpd) TableName() string {
	return "skpd"
}
