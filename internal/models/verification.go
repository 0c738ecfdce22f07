package models

import "time"

// VerificationStatus is the outcome of a single operator verdict.
type VerificationStatus string

const (
	// VerificationStatusApproved accepts the content.
	VerificationStatusApproved VerificationStatus = "approved"
	// VerificationStatusRejected refuses the content with a mandatory reason.
	VerificationStatusRejected VerificationStatus = "rejected"
)

// Valid reports whether s is a recognized verification status.
func (s VerificationStatus) Valid() bool {
	return s == VerificationStatusApproved || s == VerificationStatusRejected
}

// Verification is one immutable verdict event on a content record. Content
// re-submitted after rejection accumulates multiple rows; the content's own
// status field is the current state, not this history.
type Verification struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	ContentID     uint               `gorm:"not null;index" json:"content_id"`
	Content       *Content           `gorm:"foreignKey:ContentID" json:"content,omitempty"`
	VerifikatorID uint               `gorm:"not null;index" json:"verifikator_id"`
	Verifikator   *User              `gorm:"foreignKey:VerifikatorID" json:"verifikator,omitempty"`
	Status        VerificationStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Alasan        string             `gorm:"type:text" json:"alasan"`
	VerifiedAt    time.Time          `gorm:"not null;index" json:"verified_at"`
	CreatedAt     time.Time          `json:"created_at"`
}
