package models

import "time"

// ContentStatus defines lifecycle states for a publication record.
type ContentStatus string

const (
	// ContentStatusDraft is a record not yet submitted for review.
	ContentStatusDraft ContentStatus = "draft"
	// ContentStatusPending is awaiting an operator verdict. All content enters
	// this state on creation regardless of client input.
	ContentStatusPending ContentStatus = "pending"
	// ContentStatusApproved passed verification and counts toward quota.
	ContentStatusApproved ContentStatus = "approved"
	// ContentStatusRejected failed verification; editing it resubmits as pending.
	ContentStatusRejected ContentStatus = "rejected"
	// ContentStatusPublished is approved content confirmed live on the SKPD site.
	ContentStatusPublished ContentStatus = "published"
)

// Valid reports whether s is a recognized content status.
func (s ContentStatus) Valid() bool {
	switch s {
	case ContentStatusDraft, ContentStatusPending, ContentStatusApproved,
		ContentStatusRejected, ContentStatusPublished:
		return true
	}
	return false
}

// BlocksSkpdDeletion reports whether content in this status keeps its owning
// SKPD from being deleted. Draft and rejected content does not.
func (s ContentStatus) BlocksSkpdDeletion() bool {
	switch s {
	case ContentStatusPending, ContentStatusApproved, ContentStatusPublished:
		return true
	}
	return false
}

// ActiveContentStatuses lists the statuses that block SKPD deletion.
func ActiveContentStatuses() []ContentStatus {
	return []ContentStatus{ContentStatusPending, ContentStatusApproved, ContentStatusPublished}
}

// Content is a publication record submitted by an SKPD publisher.
type Content struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Judul            string          `gorm:"size:200;not null" json:"judul"`
	Deskripsi        string          `gorm:"type:text" json:"deskripsi"`
	URLPublikasi     string          `gorm:"size:255;not null" json:"url_publikasi"`
	TanggalPublikasi time.Time       `gorm:"not null;index" json:"tanggal_publikasi"`
	KategoriID       uint            `gorm:"not null;index" json:"kategori_id"`
	Kategori         *KategoriKonten `gorm:"foreignKey:KategoriID" json:"kategori,omitempty"`
	SkpdID           uint            `gorm:"not null;index" json:"skpd_id"`
	Skpd             *Skpd           `gorm:"foreignKey:SkpdID" json:"skpd,omitempty"`
	PublisherID      uint            `gorm:"not null;index" json:"publisher_id"`
	Publisher        *User           `gorm:"foreignKey:PublisherID" json:"publisher,omitempty"`
	Status           ContentStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Verifications is the append-only decision history across
	// submission/rejection cycles, newest first when preloaded.
	Verifications []Verification `gorm:"foreignKey:ContentID" json:"verifications,omitempty"`
}
