package repositories

import (
	"context"

	"kada-admin/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// financeRepository implements FinanceRepository interface.
// Savings and loan rows are written by the member portal; this side only
// reads them.
type financeRepository struct {
	db *gorm.DB
}

// NewFinanceRepository creates a new finance repository
func NewFinanceRepository(db *gorm.DB) FinanceRepository {
	return &financeRepository{db: db}
}

// LoanStats aggregates loans of one member, or all when memberID is 0
func (r *financeRepository) LoanStats(ctx context.Context, memberID uint) (LoanStats, error) {
	var stats LoanStats
	q := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Select(
			"COUNT(*) AS total_loans, COALESCE(SUM(amount), 0) AS total_amount, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS approved_loans",
			models.LoanStatusApproved,
		)
	if memberID != 0 {
		q = q.Where("member_id = ?", memberID)
	}
	err := q.Scan(&stats).Error
	return stats, err
}

// SavingsStats aggregates savings accounts of one member, or all when
// memberID is 0
func (r *financeRepository) SavingsStats(ctx context.Context, memberID uint) (SavingsStats, error) {
	var stats SavingsStats
	q := r.db.WithContext(ctx).
		Model(&models.SavingsAccount{}).
		Select("COALESCE(SUM(current_amount), 0) AS total_savings, COUNT(*) AS account_count")
	if memberID != 0 {
		q = q.Where("member_id = ?", memberID)
	}
	err := q.Scan(&stats).Error
	return stats, err
}

// AccountsByMember lists the savings accounts of a member
func (r *financeRepository) AccountsByMember(ctx context.Context, memberID uint) ([]*models.SavingsAccount, error) {
	var accounts []*models.SavingsAccount
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("id ASC").
		Find(&accounts).Error
	return accounts, err
}

// RecentSavingsTransactions lists the latest savings transactions with
// their account holder
func (r *financeRepository) RecentSavingsTransactions(ctx context.Context, limit int) ([]*models.SavingsTransaction, error) {
	var txs []*models.SavingsTransaction
	err := r.db.WithContext(ctx).
		Preload("Account.Member").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}

// RecentLoans lists the latest loan applications with their member
func (r *financeRepository) RecentLoans(ctx context.Context, limit int) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Member").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&loans).Error
	return loans, err
}
