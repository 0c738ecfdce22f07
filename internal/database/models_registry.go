package database

import "simonev/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Skpd{},
		&models.User{},
		&models.KategoriKonten{},
		&models.Content{},
		&models.Verification{},
		&models.Notification{},
		&models.ActivityLog{},
	}
}
