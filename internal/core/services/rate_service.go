package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"kada-admin/internal/adapters/persistence/models"
	"kada-admin/internal/adapters/persistence/repositories"
	"kada-admin/internal/core/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MsgInvalidRate is shown when a rate is missing, malformed or out of range
const MsgInvalidRate = "Kadar faedah mestilah nombor antara 0 dan 100"

// InterestRateService manages the savings and loan interest rates
type InterestRateService struct {
	rateRepo repositories.InterestRateRepository
	log      *zap.Logger
}

// NewInterestRateService creates a new interest rate service
func NewInterestRateService(rateRepo repositories.InterestRateRepository, log *zap.Logger) *InterestRateService {
	return &InterestRateService{rateRepo: rateRepo, log: log}
}

// RateInput represents the interest rate form. Values arrive as text.
type RateInput struct {
	SavingsRate string `json:"savings_rate" form:"savings_rate"`
	LoanRate    string `json:"loan_rate" form:"loan_rate"`
}

// Get returns the current rates, or zero rates when none are configured
func (s *InterestRateService) Get(ctx context.Context) (*models.InterestRate, error) {
	rate, err := s.rateRepo.Get(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.InterestRate{}, nil
	}
	return rate, err
}

// Update replaces both rates
func (s *InterestRateService) Update(ctx context.Context, input *RateInput, who domain.Identity) (*models.InterestRate, error) {
	if who.IsZero() {
		return nil, domain.ErrAuthenticationRequired
	}

	savings, err := parseRate("savings_rate", input.SavingsRate)
	if err != nil {
		return nil, err
	}
	loan, err := parseRate("loan_rate", input.LoanRate)
	if err != nil {
		return nil, err
	}

	rate, err := s.rateRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		rate = &models.InterestRate{}
	}

	adminID := who.AdminID
	rate.SavingsRate = savings
	rate.LoanRate = loan
	rate.UpdatedBy = &adminID

	if err := s.rateRepo.Save(ctx, rate); err != nil {
		s.log.Error("failed to save interest rates", zap.Uint("admin_id", who.AdminID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	s.log.Info("interest rates updated",
		zap.Float64("savings_rate", savings),
		zap.Float64("loan_rate", loan),
		zap.Uint("admin_id", who.AdminID),
	)
	return rate, nil
}

// parseRate reads a percentage rounded to two decimals
func parseRate(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > 100 {
		return 0, domain.Invalid(field, MsgInvalidRate)
	}
	return math.Round(v*100) / 100, nil
}
