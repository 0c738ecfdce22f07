package bootstrap

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"simonev/internal/cache"
	"simonev/internal/config"
	"simonev/internal/database"
	"simonev/internal/models"
	"simonev/internal/seed"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedBuiltIns bool
}

// InitRuntime connects to DB and Redis and optionally runs built-in seeding.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := ensureDevAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development admin: %w", err)
	}

	if opts.SeedBuiltIns {
		if err := seed.Kategoris(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed built-in categories: %w", err)
		}
	}

	return db, r, nil
}

func ensureDevAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapAdmin {
		return nil
	}

	username := strings.TrimSpace(cfg.DevAdminUsername)
	if username == "" {
		username = "simonev_admin"
	}
	password := cfg.DevAdminPassword
	if password == "" {
		return fmt.Errorf("DEV_ADMIN_PASSWORD must be set when DEV_BOOTSTRAP_ADMIN is enabled")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		findErr := tx.Where("username = ?", username).First(&admin).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			admin = models.User{
				Username: username,
				Email:    fmt.Sprintf("%s@simonev.local", username),
				Password: string(hashedPassword),
				Role:     models.RoleAdmin,
				IsActive: true,
			}
			return tx.Create(&admin).Error
		case findErr != nil:
			return findErr
		default:
			updates := map[string]any{
				"role":      models.RoleAdmin,
				"is_active": true,
				"password":  string(hashedPassword),
			}
			return tx.Model(&models.User{}).Where("id = ?", admin.ID).Updates(updates).Error
		}
	}); err != nil {
		return err
	}

	log.Printf("development admin bootstrap ensured for user %q", username)
	return nil
}
