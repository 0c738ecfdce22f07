// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"simonev/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tune factory behavior.
type SeedOptions struct {
	// DryRun skips all DB writes and assigns synthetic IDs.
	DryRun bool
	// SkipBcrypt stores plain-text passwords for faster bulk seeding.
	SkipBcrypt bool
	// MaxDays bounds how far in the past generated publication dates go.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

// CreateSkpd constructs and persists a sample `models.Skpd`.
// Optional override functions may modify the generated record before saving.
func (f *Factory) CreateSkpd(overrides ...func(*models.Skpd)) (*models.Skpd, error) {
	skpd := &models.Skpd{
		NamaSkpd:     fmt.Sprintf("Dinas %s", gofakeit.JobDescriptor()),
		WebsiteURL:   fmt.Sprintf("https://%s.go.id", gofakeit.Word()),
		Email:        gofakeit.Email(),
		KuotaBulanan: gofakeit.Number(2, 8),
		Status:       models.SkpdStatusAktif,
	}

	for _, override := range overrides {
		override(skpd)
	}

	if f.opts.DryRun {
		f.nextID++
		skpd.ID = f.nextID
		log.Printf("[dry-run] CreateSkpd: %s", skpd.NamaSkpd)
		return skpd, nil
	}

	if err := f.db.Create(skpd).Error; err != nil {
		return nil, err
	}
	return skpd, nil
}

// CreateUser constructs and persists a sample `models.User`.
func (f *Factory) CreateUser(role models.Role, overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Role:     role,
		IsActive: true,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s (%s)", user.Username, user.Role)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildContent constructs a content record without persisting it. Useful
// for batching. Publication dates are spread over the past MaxDays days so
// monthly compliance reports have something to chew on.
func (f *Factory) BuildContent(publisher *models.User, kategoriID uint, status models.ContentStatus, overrides ...func(*models.Content)) *models.Content {
	var skpdID uint
	if publisher.SkpdID != nil {
		skpdID = *publisher.SkpdID
	}

	content := &models.Content{
		Judul:        gofakeit.Sentence(5),
		Deskripsi:    gofakeit.Paragraph(1, 3, 5, "\n"),
		URLPublikasi: gofakeit.URL(),
		KategoriID:   kategoriID,
		SkpdID:       skpdID,
		PublisherID:  publisher.ID,
		Status:       status,
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	content.TanggalPublikasi = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
	content.CreatedAt = content.TanggalPublikasi

	for _, override := range overrides {
		override(content)
	}
	return content
}

// CreateContentsBatch persists multiple content records in a single DB call
// when possible.
func (f *Factory) CreateContentsBatch(contents []*models.Content) error {
	if f.opts.DryRun {
		for _, c := range contents {
			f.nextID++
			c.ID = f.nextID
		}
		log.Printf("[dry-run] CreateContentsBatch: %d contents (no DB write)", len(contents))
		return nil
	}
	if len(contents) == 0 {
		return nil
	}
	return f.db.Create(&contents).Error
}

// CreateVerification records an operator verdict for a content row.
func (f *Factory) CreateVerification(content *models.Content, operator *models.User, status models.VerificationStatus, alasan string) (*models.Verification, error) {
	verification := &models.Verification{
		ContentID:     content.ID,
		VerifikatorID: operator.ID,
		Status:        status,
		Alasan:        alasan,
		VerifiedAt:    content.TanggalPublikasi.Add(24 * time.Hour),
	}

	if f.opts.DryRun {
		f.nextID++
		verification.ID = f.nextID
		return verification, nil
	}

	if err := f.db.Create(verification).Error; err != nil {
		return nil, err
	}
	return verification, nil
}
