package repositories

import (
	"context"

	"kada-admin/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// interestRateRepository implements InterestRateRepository interface
type interestRateRepository struct {
	db *gorm.DB
}

// NewInterestRateRepository creates a new interest rate repository
func NewInterestRateRepository(db *gorm.DB) InterestRateRepository {
	return &interestRateRepository{db: db}
}

// Get gets the current rates (the lowest-id row)
func (r *interestRateRepository) Get(ctx context.Context) (*models.InterestRate, error) {
	var rate models.InterestRate
	err := r.db.WithContext(ctx).Order("id ASC").First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// Save writes the rates, inserting the row when the table is empty
func (r *interestRateRepository) Save(ctx context.Context, rate *models.InterestRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}
