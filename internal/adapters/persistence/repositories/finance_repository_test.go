package repositories_test

import (
	"testing"

	"kada-admin/internal/adapters/persistence/models"
	"kada-admin/internal/adapters/persistence/repositories"
	"kada-admin/internal/core/domain"
	"kada-admin/internal/testutil"
)

func TestFinanceRepository_Stats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	repo := repositories.NewFinanceRepository(db)

	a := fx.CreateMember(ctx, "A", domain.StatusActive)
	b := fx.CreateMember(ctx, "B", domain.StatusActive)
	fx.CreateLoan(ctx, a.ID, 5000, models.LoanStatusApproved)
	fx.CreateLoan(ctx, a.ID, 1000, "pending")
	fx.CreateLoan(ctx, b.ID, 2500, models.LoanStatusApproved)
	fx.CreateSavingsAccount(ctx, a.ID, 1200)
	fx.CreateSavingsAccount(ctx, a.ID, 300)

	all, err := repo.LoanStats(ctx, 0)
	if err != nil {
		t.Fatalf("LoanStats: %v", err)
	}
	if all.TotalLoans != 3 || all.TotalAmount != 8500 || all.ApprovedLoans != 2 {
		t.Errorf("LoanStats(all): got %+v", all)
	}

	one, err := repo.LoanStats(ctx, a.ID)
	if err != nil {
		t.Fatalf("LoanStats: %v", err)
	}
	if one.TotalLoans != 2 || one.ApprovedLoans != 1 {
		t.Errorf("LoanStats(a): got %+v", one)
	}

	savings, err := repo.SavingsStats(ctx, a.ID)
	if err != nil {
		t.Fatalf("SavingsStats: %v", err)
	}
	if savings.TotalSavings != 1500 || savings.AccountCount != 2 {
		t.Errorf("SavingsStats: got %+v", savings)
	}

	none, err := repo.SavingsStats(ctx, b.ID)
	if err != nil {
		t.Fatalf("SavingsStats: %v", err)
	}
	if none.TotalSavings != 0 || none.AccountCount != 0 {
		t.Errorf("SavingsStats(empty): got %+v", none)
	}
}

func TestFinanceRepository_RecentActivity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	repo := repositories.NewFinanceRepository(db)

	m := fx.CreateMember(ctx, "Nurul", domain.StatusActive)
	acct := fx.CreateSavingsAccount(ctx, m.ID, 100)
	fx.CreateSavingsTransaction(ctx, acct.ID, 100, "deposit")
	fx.CreateLoan(ctx, m.ID, 3000, "pending")

	txs, err := repo.RecentSavingsTransactions(ctx, 5)
	if err != nil {
		t.Fatalf("RecentSavingsTransactions: %v", err)
	}
	if len(txs) != 1 || txs[0].Account == nil || txs[0].Account.Member == nil || txs[0].Account.Member.Name != "Nurul" {
		t.Fatalf("RecentSavingsTransactions: got %+v", txs)
	}

	loans, err := repo.RecentLoans(ctx, 5)
	if err != nil {
		t.Fatalf("RecentLoans: %v", err)
	}
	if len(loans) != 1 || loans[0].Member == nil || loans[0].Member.Name != "Nurul" {
		t.Fatalf("RecentLoans: got %+v", loans)
	}
}
