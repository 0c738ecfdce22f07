package seed

import (
	"fmt"

	"simonev/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInKategori is a permanent system content category.
type BuiltInKategori struct {
	Nama string
}

// BuiltInKategoris defines the permanent content categories every
// installation starts with.
var BuiltInKategoris = []BuiltInKategori{
	{Nama: "Berita"},
	{Nama: "Artikel"},
	{Nama: "Pengumuman"},
	{Nama: "Infografis"},
	{Nama: "Video"},
	{Nama: "Siaran Pers"},
}

// Kategoris seeds the permanent built-in content categories.
func Kategoris(db *gorm.DB) error {
	for _, item := range BuiltInKategoris {
		kategori := models.KategoriKonten{
			NamaKategori: item.Nama,
			IsActive:     true,
		}

		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "nama_kategori"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_active", "updated_at"}),
		}).Create(&kategori).Error; err != nil {
			return fmt.Errorf("seed built-in kategori %s: %w", item.Nama, err)
		}
	}

	return nil
}
