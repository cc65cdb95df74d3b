package services_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"kada-admin/internal/adapters/persistence/models"
	"kada-admin/internal/adapters/persistence/repositories"
	"kada-admin/internal/config"
	"kada-admin/internal/core/domain"
	"kada-admin/internal/core/services"
	"kada-admin/internal/pkg/pagination"
	"kada-admin/internal/testutil"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func dashboardRepos(db *gorm.DB) services.DashboardRepos {
	return services.DashboardRepos{
		Members:      repositories.NewMemberRepository(db),
		Reports:      repositories.NewReportRepository(db),
		Rates:        repositories.NewInterestRateRepository(db),
		Resignations: repositories.NewResignationRepository(db),
		Directors:    repositories.NewDirectorRepository(db),
		Admins:       repositories.NewAdminRepository(db),
		Finance:      repositories.NewFinanceRepository(db),
	}
}

func TestAdminDashboard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)

	me := fx.CreateAdmin(ctx, "utama")
	fx.CreateAdmin(ctx, "kedua")
	fx.CreateDirector(ctx, "Pengarah", "Pengerusi")
	fx.CreateInterestRate(ctx, 2.5, 4)
	active := fx.CreateMember(ctx, "Aktif", domain.StatusActive)
	fx.CreateMember(ctx, "Baru", domain.StatusPending)
	fx.CreateMember(ctx, "Ditolak", domain.StatusRejected)
	fx.CreateResignation(ctx, active.ID, "Bersara")
	fx.CreateLoan(ctx, active.ID, 5000, models.LoanStatusApproved)
	fx.CreateLoan(ctx, active.ID, 1500, "pending")

	svc := services.NewDashboardService(dashboardRepos(db))
	data, err := svc.GetAdminDashboard(ctx, domain.Identity{AdminID: me.ID})
	if err != nil {
		t.Fatalf("GetAdminDashboard: %v", err)
	}

	if len(data.Members) != 3 {
		t.Errorf("members = %d, want 3", len(data.Members))
	}
	want := services.StatusStats{Total: 3, Pending: 1, Active: 1, Rejected: 1}
	if data.Stats != want {
		t.Errorf("stats = %+v, want %+v", data.Stats, want)
	}
	if data.Loans.TotalLoans != 2 || data.Loans.TotalAmount != 6500 || data.Loans.ApprovedLoans != 1 {
		t.Errorf("loans = %+v", data.Loans)
	}
	if data.InterestRate.SavingsRate != 2.5 {
		t.Errorf("savings rate = %v", data.InterestRate.SavingsRate)
	}
	if len(data.PendingResignations) != 1 || data.PendingResignations[0].Member == nil {
		t.Errorf("pending resignations = %+v", data.PendingResignations)
	}
	if len(data.Directors) != 1 || len(data.Admins) != 2 {
		t.Errorf("directors = %d, admins = %d", len(data.Directors), len(data.Admins))
	}
	if data.CurrentAdmin == nil || data.CurrentAdmin.Username != "utama" {
		t.Errorf("current admin = %+v", data.CurrentAdmin)
	}
}

func TestMemberListPaginates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)
	for i := 0; i < 5; i++ {
		fx.CreateMember(ctx, "Ahli", domain.StatusPending)
	}

	svc := services.NewDashboardService(dashboardRepos(db))
	data, err := svc.GetMemberList(ctx, pagination.Parse("2", "2"))
	if err != nil {
		t.Fatalf("GetMemberList: %v", err)
	}
	if len(data.Members) != 2 {
		t.Errorf("page size = %d, want 2", len(data.Members))
	}
	if data.Meta.Total != 5 || data.Meta.TotalPages != 3 || !data.Meta.HasNext || !data.Meta.HasPrev {
		t.Errorf("meta = %+v", data.Meta)
	}
	if data.Stats.Pending != 5 {
		t.Errorf("pending = %d, want 5", data.Stats.Pending)
	}
}

func TestMemberDetail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)
	m := fx.CreateMember(ctx, "Penyimpan", domain.StatusActive)
	other := fx.CreateMember(ctx, "Lain", domain.StatusActive)
	fx.CreateSavingsAccount(ctx, m.ID, 1200.50)
	fx.CreateSavingsAccount(ctx, m.ID, 800)
	fx.CreateSavingsAccount(ctx, other.ID, 99)
	fx.CreateLoan(ctx, m.ID, 3000, models.LoanStatusApproved)

	svc := services.NewDashboardService(dashboardRepos(db))
	data, err := svc.GetMemberDetail(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetMemberDetail: %v", err)
	}
	if len(data.Accounts) != 2 || data.Savings.AccountCount != 2 || data.Savings.TotalSavings != 2000.50 {
		t.Errorf("savings = %+v over %d accounts", data.Savings, len(data.Accounts))
	}
	if data.Loans.TotalLoans != 1 || data.Loans.ApprovedLoans != 1 {
		t.Errorf("loans = %+v", data.Loans)
	}

	if _, err := svc.GetMemberDetail(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown member err = %v, want ErrNotFound", err)
	}
}

func TestDirectorDashboard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)

	a := fx.CreateMember(ctx, "Ali", domain.StatusActive)
	fx.CreateMember(ctx, "Bakar", domain.StatusPending)
	old := fx.CreateMember(ctx, "Chong", domain.StatusRejected)
	lastYear := time.Now().AddDate(-1, 0, 0)
	if err := db.Model(&models.Member{}).Where("id = ?", old.ID).Update("created_at", lastYear).Error; err != nil {
		t.Fatalf("backdate member: %v", err)
	}

	acc := fx.CreateSavingsAccount(ctx, a.ID, 500)
	fx.CreateSavingsTransaction(ctx, acc.ID, 100, "deposit")
	fx.CreateLoan(ctx, a.ID, 2000, models.LoanStatusApproved)
	fx.CreateLoan(ctx, a.ID, 1000, "rejected")
	fx.CreateLoan(ctx, a.ID, 1000, "pending")

	svc := services.NewDashboardService(dashboardRepos(db))
	data, err := svc.GetDirectorDashboard(ctx, domain.PeriodMonth)
	if err != nil {
		t.Fatalf("GetDirectorDashboard: %v", err)
	}

	if data.TotalMembers != 3 {
		t.Errorf("total members = %d, want 3", data.TotalMembers)
	}
	if data.NewMembers != 2 {
		t.Errorf("new members this month = %d, want 2", data.NewMembers)
	}
	if data.TotalSavings != 500 || data.SavingsAccounts != 1 {
		t.Errorf("savings = %v over %d", data.TotalSavings, data.SavingsAccounts)
	}
	if data.Loans.TotalLoans != 3 || data.ApprovalRate != 33.3 {
		t.Errorf("loans = %+v, approval = %v", data.Loans, data.ApprovalRate)
	}
	if data.TotalFees != 150 {
		t.Errorf("fees = %v, want 150", data.TotalFees)
	}
	if data.Membership.Rejected != 1 {
		t.Errorf("membership = %+v", data.Membership)
	}
	if len(data.RecentActivities) != 4 {
		t.Errorf("activities = %d, want 4", len(data.RecentActivities))
	}
	for i := 1; i < len(data.RecentActivities); i++ {
		if data.RecentActivities[i].Date.After(data.RecentActivities[i-1].Date) {
			t.Errorf("activities not newest first at %d", i)
		}
	}
	if len(data.Trend) != 6 {
		t.Fatalf("trend has %d points, want 6", len(data.Trend))
	}
	if last := data.Trend[5]; last.NewMembers != 2 || last.Month != time.Now().Format("Jan 2006") {
		t.Errorf("current month point = %+v", last)
	}
}

func TestExportMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)
	fx.CreateMember(ctx, "Ahmad", domain.StatusActive)
	fx.CreateMember(ctx, "Siti", domain.StatusPending)

	svc := services.NewExportService(repositories.NewMemberRepository(db), zap.NewNop())

	pdf, err := svc.Members(ctx, services.ExportPDF)
	if err != nil {
		t.Fatalf("pdf export: %v", err)
	}
	if !bytes.HasPrefix(pdf.Data, []byte("%PDF-")) || pdf.ContentType != "application/pdf" {
		t.Errorf("pdf export = %s, %d bytes", pdf.ContentType, len(pdf.Data))
	}

	xlsx, err := svc.Members(ctx, services.ExportXLSX)
	if err != nil {
		t.Fatalf("xlsx export: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(xlsx.Data))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 || rows[2][1] != "Siti" {
		t.Errorf("rows = %v", rows)
	}

	if _, err := svc.Members(ctx, "csv"); err == nil {
		t.Error("unknown format should fail")
	}

	// exporting never touches member records
	for _, m := range []uint{1, 2} {
		if got := fx.Member(ctx, m); got.Version != 1 {
			t.Errorf("member %d version = %d", m, got.Version)
		}
	}
}

func TestCronServiceRejectsBadSpec(t *testing.T) {
	db := testutil.SetupTestDB(t)
	files, err := newTempStore(t)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	reports := services.NewReportService(repositories.NewReportRepository(db), files, testMaxBytes, zap.NewNop())

	bad := services.NewCronService(reports, config.CronConfig{OrphanSweepSpec: "every tuesday"}, zap.NewNop())
	if err := bad.Start(); err == nil {
		t.Fatal("Start with an invalid cron spec should fail")
	}

	good := services.NewCronService(reports, config.CronConfig{OrphanSweepSpec: "@every 1h", OrphanGrace: time.Hour}, zap.NewNop())
	if err := good.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	good.SweepOrphans()
	good.Stop()
}
