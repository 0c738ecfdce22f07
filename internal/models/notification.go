package models

import "time"

// NotificationType classifies the event that produced a notification.
type NotificationType string

const (
	// NotificationKontenBaru tells operators new content awaits review.
	NotificationKontenBaru NotificationType = "konten_baru"
	// NotificationKontenDiverifikasi tells a publisher their content received a verdict.
	NotificationKontenDiverifikasi NotificationType = "konten_diverifikasi"
	// NotificationPengingatKuota reminds an SKPD's publishers about the monthly quota.
	NotificationPengingatKuota NotificationType = "pengingat_kuota"
	// NotificationPeringatanKuota warns admins after two consecutive
	// non-compliant months for an SKPD.
	NotificationPeringatanKuota NotificationType = "peringatan_kuota"
)

// Notification is a per-user message row. Only the read flag is mutable after
// creation; message text is a human-readable Indonesian string.
type Notification struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	UserID           uint             `gorm:"not null;index" json:"user_id"`
	User             *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Type             NotificationType `gorm:"type:varchar(40);not null;index" json:"type"`
	Message          string           `gorm:"type:text;not null" json:"message"`
	IsRead           bool             `gorm:"not null;default:false;index" json:"is_read"`
	RelatedContentID *uint            `gorm:"index" json:"related_content_id,omitempty"`
	RelatedSkpdID    *uint            `gorm:"index" json:"related_skpd_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}
