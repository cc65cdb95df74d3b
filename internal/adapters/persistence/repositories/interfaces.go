package repositories

import (
	"context"
	"time"

	"kada-admin/internal/adapters/persistence/models"
	"kada-admin/internal/core/domain"
)

// MemberRepository defines member repository interface
type MemberRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error)
	ListAll(ctx context.Context) ([]*models.Member, error)
	CountByStatus(ctx context.Context) (map[domain.MemberStatus]int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	SumRegistrationFees(ctx context.Context) (float64, error)
	// UpdateStatus writes the new status only if the row still carries
	// version. It returns domain.ErrConcurrentUpdate otherwise.
	UpdateStatus(ctx context.Context, id uint, version int, status domain.MemberStatus) error
}

// TransitionRepository defines member status history interface
type TransitionRepository interface {
	Create(ctx context.Context, t *models.MemberTransition) error
	ListByMember(ctx context.Context, memberID uint) ([]*models.MemberTransition, error)
}

// ResignationRepository defines resignation request interface
type ResignationRepository interface {
	Create(ctx context.Context, req *models.ResignationRequest) error
	GetPendingByMember(ctx context.Context, memberID uint) (*models.ResignationRequest, error)
	SupersedePending(ctx context.Context, memberID uint) (int64, error)
	Resolve(ctx context.Context, id, adminID uint, at time.Time) error
	ListPending(ctx context.Context) ([]*models.ResignationRequest, error)
	CountPending(ctx context.Context) (int64, error)
}

// AdminRepository defines admin account interface
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id uint) (*models.Admin, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	Update(ctx context.Context, admin *models.Admin) error
	// DeleteUnlessLast deletes the admin in one transaction with the check
	// that another admin remains. It returns domain.ErrLastAdmin otherwise.
	DeleteUnlessLast(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Admin, error)
	// ExistsByUsername and ExistsByEmail ignore the admin with excludeID
	// so an update can keep its own values
	ExistsByUsername(ctx context.Context, username string, excludeID uint) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
}

// DirectorRepository defines director profile interface
type DirectorRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Director, error)
	List(ctx context.Context) ([]*models.Director, error)
	Update(ctx context.Context, director *models.Director) error
}

// ReportRepository defines annual report metadata interface
type ReportRepository interface {
	Create(ctx context.Context, report *models.AnnualReport) error
	GetByID(ctx context.Context, id uint) (*models.AnnualReport, error)
	List(ctx context.Context) ([]*models.AnnualReport, error)
	Delete(ctx context.Context, id uint) error
	StorageKeys(ctx context.Context) ([]string, error)
}

// InterestRateRepository defines the single-row rate config interface
type InterestRateRepository interface {
	Get(ctx context.Context) (*models.InterestRate, error)
	Save(ctx context.Context, rate *models.InterestRate) error
}

// LoanStats aggregates loans
type LoanStats struct {
	TotalLoans    int64   `json:"total_loans"`
	TotalAmount   float64 `json:"total_amount"`
	ApprovedLoans int64   `json:"approved_loans"`
}

// SavingsStats aggregates savings accounts
type SavingsStats struct {
	TotalSavings float64 `json:"total_savings"`
	AccountCount int64   `json:"account_count"`
}

// FinanceRepository reads savings and loan data for statistics.
// A memberID of 0 aggregates over all members.
type FinanceRepository interface {
	LoanStats(ctx context.Context, memberID uint) (LoanStats, error)
	SavingsStats(ctx context.Context, memberID uint) (SavingsStats, error)
	AccountsByMember(ctx context.Context, memberID uint) ([]*models.SavingsAccount, error)
	RecentSavingsTransactions(ctx context.Context, limit int) ([]*models.SavingsTransaction, error)
	RecentLoans(ctx context.Context, limit int) ([]*models.Loan, error)
}
