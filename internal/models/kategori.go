package models

import "time"

// KategoriKonten is a content category. Deactivating a category only hides it
// from new-content pickers; existing content keeps its category.
type KategoriKonten struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	NamaKategori string    `gorm:"size:100;not null;uniqueIndex" json:"nama_kategori"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName keeps the Indonesian singular table name.
func (KategoriKonten) TableName() string {
	return "kategori_konten"
}
