package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"simonev/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumSkpds          int
	PublishersPerSkpd int
	NumOperators      int
	ContentsPerSkpd   int
	ShouldClean       bool
	SkipBcrypt        bool
}

// Seed populates the database with demo data: SKPDs, accounts of every
// role, and contents spread across statuses and publication months.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d SKPDs and %d contents each...", opts.NumSkpds, opts.ContentsPerSkpd)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	if err := Kategoris(db); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	var kategoris []models.KategoriKonten
	if err := db.Find(&kategoris).Error; err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	factory := NewFactory(db, SeedOptions{SkipBcrypt: opts.SkipBcrypt})

	operators := make([]*models.User, 0, opts.NumOperators)
	for i := 0; i < opts.NumOperators; i++ {
		operator, err := factory.CreateUser(models.RoleOperator)
		if err != nil {
			return fmt.Errorf("failed to create operator: %w", err)
		}
		operators = append(operators, operator)
	}
	log.Printf("%d operators created", len(operators))

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	totalContents := 0

	for i := 0; i < opts.NumSkpds; i++ {
		skpd, err := factory.CreateSkpd()
		if err != nil {
			return fmt.Errorf("failed to create SKPD: %w", err)
		}

		publishers := make([]*models.User, 0, opts.PublishersPerSkpd)
		for j := 0; j < opts.PublishersPerSkpd; j++ {
			publisher, err := factory.CreateUser(models.RolePublisher, func(u *models.User) {
				u.SkpdID = &skpd.ID
			})
			if err != nil {
				return fmt.Errorf("failed to create publisher: %w", err)
			}
			publishers = append(publishers, publisher)
		}

		if len(publishers) == 0 || len(kategoris) == 0 {
			continue
		}

		contents := make([]*models.Content, 0, opts.ContentsPerSkpd)
		for j := 0; j < opts.ContentsPerSkpd; j++ {
			publisher := publishers[r.Intn(len(publishers))]
			kategori := kategoris[r.Intn(len(kategoris))]
			status := randomContentStatus(r)
			contents = append(contents, factory.BuildContent(publisher, kategori.ID, status))
		}
		if err := factory.CreateContentsBatch(contents); err != nil {
			return fmt.Errorf("failed to create contents: %w", err)
		}
		totalContents += len(contents)

		// Verdict rows for everything that already left the pending state.
		if len(operators) > 0 {
			for _, content := range contents {
				operator := operators[r.Intn(len(operators))]
				switch content.Status {
				case models.ContentStatusApproved, models.ContentStatusPublished:
					if _, err := factory.CreateVerification(content, operator, models.VerificationStatusApproved, ""); err != nil {
						return fmt.Errorf("failed to create verification: %w", err)
					}
				case models.ContentStatusRejected:
					if _, err := factory.CreateVerification(content, operator, models.VerificationStatusRejected, "Konten tidak sesuai ketentuan publikasi."); err != nil {
						return fmt.Errorf("failed to create verification: %w", err)
					}
				}
			}
		}
	}

	log.Printf("Database seeding completed: %d SKPDs, %d contents", opts.NumSkpds, totalContents)
	return nil
}

func randomContentStatus(r *rand.Rand) models.ContentStatus {
	roll := r.Intn(100)
	switch {
	case roll < 10:
		return models.ContentStatusDraft
	case roll < 30:
		return models.ContentStatusPending
	case roll < 70:
		return models.ContentStatusApproved
	case roll < 85:
		return models.ContentStatusPublished
	default:
		return models.ContentStatusRejected
	}
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE activity_logs, notifications, verifications, contents, kategori_konten, users, skpd RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
