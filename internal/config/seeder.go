package config

import (
	"log"

	"kada-admin/internal/adapters/persistence/models"
	"kada-admin/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Default rates written when the interest_rates table is empty
const (
	defaultSavingsRate = 2.50
	defaultLoanRate    = 4.00
)

// Seeder handles database seeding
type Seeder struct {
	db   *gorm.DB
	seed SeedConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, seed SeedConfig) *Seeder {
	return &Seeder{db: db, seed: seed}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdmin(); err != nil {
		return err
	}

	if err := s.seedInterestRate(); err != nil {
		log.Printf("⚠️ Interest rate seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdmin creates the bootstrap admin when the admins table is empty.
// At least one admin must exist for anyone to log in.
func (s *Seeder) seedAdmin() error {
	var count int64
	if err := s.db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plain := s.seed.AdminPassword
	generated := plain == ""
	if generated {
		plain = uuid.NewString()
	}

	hashed, err := password.Hash(plain)
	if err != nil {
		return err
	}

	admin := &models.Admin{
		Username: s.seed.AdminUsername,
		Email:    s.seed.AdminEmail,
		Password: hashed,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	if generated {
		log.Printf("   Generated password (change it after first login): %s", plain)
	}
	return nil
}

func (s *Seeder) seedInterestRate() error {
	var count int64
	if err := s.db.Model(&models.InterestRate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rate := &models.InterestRate{SavingsRate: defaultSavingsRate, LoanRate: defaultLoanRate}
	if err := s.db.Create(rate).Error; err != nil {
		return err
	}

	log.Printf("✅ Interest rates seeded: savings %.2f%%, loan %.2f%%", rate.SavingsRate, rate.LoanRate)
	return nil
}
