package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"kada-admin/internal/adapters/persistence/models"
	"kada-admin/internal/core/domain"
	"kada-admin/internal/pkg/password"

	"gorm.io/gorm"
)

// DefaultPassword is the plaintext password of every fixture admin
const DefaultPassword = "password123"

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db  *gorm.DB
	t   *testing.T
	seq int
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *gorm.DB) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *gorm.DB {
	return f.db
}

func (f *Fixtures) create(ctx context.Context, v interface{}, what string) {
	f.t.Helper()
	if err := f.db.WithContext(ctx).Create(v).Error; err != nil {
		f.t.Fatalf("failed to create test %s: %v", what, err)
	}
}

// CreateMember creates a member with the given name and status.
func (f *Fixtures) CreateMember(ctx context.Context, name string, status domain.MemberStatus) *models.Member {
	f.t.Helper()
	return f.CreateMemberWithID(ctx, 0, name, status)
}

// CreateMemberWithID creates a member with a fixed ID (0 lets the
// database choose).
func (f *Fixtures) CreateMemberWithID(ctx context.Context, id uint, name string, status domain.MemberStatus) *models.Member {
	f.t.Helper()

	f.seq++
	m := &models.Member{
		ID:              id,
		Name:            name,
		ICNo:            fmt.Sprintf("900101-03-%04d", f.seq),
		Gender:          "Lelaki",
		Position:        "Pegawai Tadbir",
		MonthlySalary:   3250.50,
		RegistrationFee: 50,
		Status:          status,
		Version:         1,
	}
	f.create(ctx, m, "member")
	return m
}

// CreateAdmin creates an admin whose password is DefaultPassword.
func (f *Fixtures) CreateAdmin(ctx context.Context, username string) *models.Admin {
	f.t.Helper()

	hashed, err := password.Hash(DefaultPassword)
	if err != nil {
		f.t.Fatalf("failed to hash password: %v", err)
	}
	a := &models.Admin{
		Username: username,
		Email:    username + "@kada.gov.my",
		Password: hashed,
	}
	f.create(ctx, a, "admin")
	return a
}

// CreateDirector creates a director.
func (f *Fixtures) CreateDirector(ctx context.Context, name, position string) *models.Director {
	f.t.Helper()
	d := &models.Director{
		Name:     name,
		Position: position,
		Email:    "pengarah@kada.gov.my",
		Phone:    "09-7447000",
	}
	f.create(ctx, d, "director")
	return d
}

// CreateResignation creates a pending resignation request.
func (f *Fixtures) CreateResignation(ctx context.Context, memberID uint, reason string) *models.ResignationRequest {
	f.t.Helper()
	r := &models.ResignationRequest{
		MemberID: memberID,
		Reason:   reason,
		State:    domain.ResignationPending,
	}
	f.create(ctx, r, "resignation request")
	return r
}

// CreateInterestRate creates the rate row.
func (f *Fixtures) CreateInterestRate(ctx context.Context, savings, loan float64) *models.InterestRate {
	f.t.Helper()
	r := &models.InterestRate{SavingsRate: savings, LoanRate: loan}
	f.create(ctx, r, "interest rate")
	return r
}

// CreateLoan creates a loan for a member.
func (f *Fixtures) CreateLoan(ctx context.Context, memberID uint, amount float64, status string) *models.Loan {
	f.t.Helper()
	l := &models.Loan{MemberID: memberID, Amount: amount, Status: status}
	f.create(ctx, l, "loan")
	return l
}

// CreateSavingsAccount creates a savings account for a member.
func (f *Fixtures) CreateSavingsAccount(ctx context.Context, memberID uint, amount float64) *models.SavingsAccount {
	f.t.Helper()
	f.seq++
	a := &models.SavingsAccount{
		MemberID:      memberID,
		AccountNumber: fmt.Sprintf("SA%08d", f.seq),
		CurrentAmount: amount,
	}
	f.create(ctx, a, "savings account")
	return a
}

// CreateSavingsTransaction records a savings movement on an account.
func (f *Fixtures) CreateSavingsTransaction(ctx context.Context, accountID uint, amount float64, kind string) *models.SavingsTransaction {
	f.t.Helper()
	tx := &models.SavingsTransaction{
		AccountID:       accountID,
		Amount:          amount,
		TransactionType: kind,
		CreatedAt:       time.Now(),
	}
	f.create(ctx, tx, "savings transaction")
	return tx
}

// Member reloads a member from the database.
func (f *Fixtures) Member(ctx context.Context, id uint) *models.Member {
	f.t.Helper()
	var m models.Member
	if err := f.db.WithContext(ctx).First(&m, id).Error; err != nil {
		f.t.Fatalf("failed to load member %d: %v", id, err)
	}
	return &m
}

// Count counts rows of the model's table.
func (f *Fixtures) Count(ctx context.Context, model interface{}) int64 {
	f.t.Helper()
	var n int64
	if err := f.db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
		f.t.Fatalf("failed to count rows: %v", err)
	}
	return n
}
