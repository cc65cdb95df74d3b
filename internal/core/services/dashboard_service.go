package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"kada-admin/internal/adapters/persistence/models"
	"kada-admin/internal/adapters/persistence/repositories"
	"kada-admin/internal/core/domain"
	"kada-admin/internal/pkg/pagination"

	"gorm.io/gorm"
)

const (
	// recentActivityLimit caps each source feeding the activity list
	recentActivityLimit = 10
	// trendMonths is the length of the membership trend
	trendMonths = 6
)

// DashboardRepos are the read-side repositories behind the dashboards
type DashboardRepos struct {
	Members      repositories.MemberRepository
	Reports      repositories.ReportRepository
	Rates        repositories.InterestRateRepository
	Resignations repositories.ResignationRepository
	Directors    repositories.DirectorRepository
	Admins       repositories.AdminRepository
	Finance      repositories.FinanceRepository
}

// DashboardService builds the admin and director dashboards
type DashboardService struct {
	repos DashboardRepos
	now   func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repos DashboardRepos) *DashboardService {
	return &DashboardService{repos: repos, now: time.Now}
}

// StatusStats counts members per lifecycle status
type StatusStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Active   int64 `json:"active"`
	Rejected int64 `json:"rejected"`
	Resigned int64 `json:"resigned"`
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents the admin landing page
type AdminDashboardData struct {
	Members             []*models.MemberResponse     `json:"members"`
	Stats               StatusStats                  `json:"stats"`
	Reports             []*models.AnnualReport       `json:"reports"`
	Loans               repositories.LoanStats       `json:"loans"`
	InterestRate        *models.InterestRate         `json:"interest_rate"`
	PendingResignations []*models.ResignationRequest `json:"pending_resignations"`
	Directors           []*models.Director           `json:"directors"`
	Admins              []*models.AdminResponse      `json:"admins"`
	CurrentAdmin        *models.AdminResponse        `json:"current_admin"`
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context, who domain.Identity) (*AdminDashboardData, error) {
	if who.IsZero() {
		return nil, domain.ErrAuthenticationRequired
	}
	data := &AdminDashboardData{}

	members, _, err := s.repos.Members.List(ctx, 0, pagination.DefaultLimit)
	if err != nil {
		return nil, err
	}
	data.Members = memberResponses(members)

	if data.Stats, err = s.statusStats(ctx); err != nil {
		return nil, err
	}
	if data.Reports, err = s.repos.Reports.List(ctx); err != nil {
		return nil, err
	}
	if data.Loans, err = s.repos.Finance.LoanStats(ctx, 0); err != nil {
		return nil, err
	}
	if data.InterestRate, err = s.repos.Rates.Get(ctx); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		data.InterestRate = &models.InterestRate{}
	}
	if data.PendingResignations, err = s.repos.Resignations.ListPending(ctx); err != nil {
		return nil, err
	}
	if data.Directors, err = s.repos.Directors.List(ctx); err != nil {
		return nil, err
	}

	admins, err := s.repos.Admins.List(ctx)
	if err != nil {
		return nil, err
	}
	data.Admins = make([]*models.AdminResponse, len(admins))
	for i, a := range admins {
		data.Admins[i] = a.ToResponse()
		if a.ID == who.AdminID {
			data.CurrentAdmin = data.Admins[i]
		}
	}

	return data, nil
}

// ============================================================
// Member list & detail
// ============================================================

// MemberListData represents one page of the member list
type MemberListData struct {
	Members []*models.MemberResponse `json:"members"`
	Meta    *pagination.Meta         `json:"meta"`
	Stats   StatusStats              `json:"stats"`
}

// GetMemberList returns a page of members with status counts
func (s *DashboardService) GetMemberList(ctx context.Context, params *pagination.Params) (*MemberListData, error) {
	members, total, err := s.repos.Members.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}
	stats, err := s.statusStats(ctx)
	if err != nil {
		return nil, err
	}
	return &MemberListData{
		Members: memberResponses(members),
		Meta:    pagination.NewMeta(params, total),
		Stats:   stats,
	}, nil
}

// MemberDetailData represents one member with savings and loan aggregates
type MemberDetailData struct {
	Member   *models.Member            `json:"member"`
	Accounts []*models.SavingsAccount  `json:"accounts"`
	Savings  repositories.SavingsStats `json:"savings"`
	Loans    repositories.LoanStats    `json:"loans"`
}

// GetMemberDetail returns a member's profile and finances
func (s *DashboardService) GetMemberDetail(ctx context.Context, id uint) (*MemberDetailData, error) {
	member, err := s.repos.Members.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: member %d", domain.ErrNotFound, id)
		}
		return nil, err
	}

	data := &MemberDetailData{Member: member}
	if data.Accounts, err = s.repos.Finance.AccountsByMember(ctx, id); err != nil {
		return nil, err
	}
	if data.Savings, err = s.repos.Finance.SavingsStats(ctx, id); err != nil {
		return nil, err
	}
	if data.Loans, err = s.repos.Finance.LoanStats(ctx, id); err != nil {
		return nil, err
	}
	return data, nil
}

// ============================================================
// Director Dashboard
// ============================================================

// Activity is one line of the recent activity feed
type Activity struct {
	Type       string    `json:"type"` // savings or loan
	MemberName string    `json:"member_name"`
	Amount     float64   `json:"amount"`
	Detail     string    `json:"detail"`
	Date       time.Time `json:"date"`
}

// TrendPoint is the number of members who joined in one month
type TrendPoint struct {
	Month      string `json:"month"`
	NewMembers int64  `json:"new_members"`
}

// DirectorDashboardData represents the director dashboard
type DirectorDashboardData struct {
	Period           domain.Period          `json:"period"`
	TotalMembers     int64                  `json:"total_members"`
	NewMembers       int64                  `json:"new_members"`
	TotalSavings     float64                `json:"total_savings"`
	SavingsAccounts  int64                  `json:"savings_accounts"`
	Loans            repositories.LoanStats `json:"loans"`
	ApprovalRate     float64                `json:"approval_rate"`
	Membership       StatusStats            `json:"membership"`
	TotalFees        float64                `json:"total_fees"`
	RecentActivities []Activity             `json:"recent_activities"`
	Trend            []TrendPoint           `json:"trend"`
}

// GetDirectorDashboard returns director metrics for the period
func (s *DashboardService) GetDirectorDashboard(ctx context.Context, period domain.Period) (*DirectorDashboardData, error) {
	now := s.now()
	data := &DirectorDashboardData{Period: period}

	var err error
	if data.Membership, err = s.statusStats(ctx); err != nil {
		return nil, err
	}
	data.TotalMembers = data.Membership.Total

	if data.NewMembers, err = s.repos.Members.CountCreatedBetween(ctx, period.Start(now), now.Add(time.Second)); err != nil {
		return nil, err
	}

	savings, err := s.repos.Finance.SavingsStats(ctx, 0)
	if err != nil {
		return nil, err
	}
	data.TotalSavings = savings.TotalSavings
	data.SavingsAccounts = savings.AccountCount

	if data.Loans, err = s.repos.Finance.LoanStats(ctx, 0); err != nil {
		return nil, err
	}
	data.ApprovalRate = approvalRate(data.Loans)

	if data.TotalFees, err = s.repos.Members.SumRegistrationFees(ctx); err != nil {
		return nil, err
	}
	if data.RecentActivities, err = s.recentActivities(ctx); err != nil {
		return nil, err
	}
	if data.Trend, err = s.trend(ctx, now); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *DashboardService) statusStats(ctx context.Context) (StatusStats, error) {
	counts, err := s.repos.Members.CountByStatus(ctx)
	if err != nil {
		return StatusStats{}, err
	}
	stats := StatusStats{
		Pending:  counts[domain.StatusPending],
		Active:   counts[domain.StatusActive],
		Rejected: counts[domain.StatusRejected],
		Resigned: counts[domain.StatusResigned],
	}
	stats.Total = stats.Pending + stats.Active + stats.Rejected + stats.Resigned
	return stats, nil
}

// recentActivities merges the latest savings movements and loans, newest
// first
func (s *DashboardService) recentActivities(ctx context.Context) ([]Activity, error) {
	txs, err := s.repos.Finance.RecentSavingsTransactions(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	loans, err := s.repos.Finance.RecentLoans(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	activities := make([]Activity, 0, len(txs)+len(loans))
	for _, tx := range txs {
		a := Activity{Type: "savings", Amount: tx.Amount, Detail: tx.TransactionType, Date: tx.CreatedAt}
		if tx.Account != nil && tx.Account.Member != nil {
			a.MemberName = tx.Account.Member.Name
		}
		activities = append(activities, a)
	}
	for _, l := range loans {
		a := Activity{Type: "loan", Amount: l.Amount, Detail: l.Status, Date: l.CreatedAt}
		if l.Member != nil {
			a.MemberName = l.Member.Name
		}
		activities = append(activities, a)
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Date.After(activities[j].Date)
	})
	if len(activities) > recentActivityLimit {
		activities = activities[:recentActivityLimit]
	}
	return activities, nil
}

// trend counts new members for each of the last six calendar months,
// oldest first
func (s *DashboardService) trend(ctx context.Context, now time.Time) ([]TrendPoint, error) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	points := make([]TrendPoint, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		from := first.AddDate(0, -i, 0)
		to := from.AddDate(0, 1, 0)
		n, err := s.repos.Members.CountCreatedBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}
		points = append(points, TrendPoint{Month: from.Format("Jan 2006"), NewMembers: n})
	}
	return points, nil
}

// approvalRate is the share of approved loans in percent, one decimal
func approvalRate(l repositories.LoanStats) float64 {
	if l.TotalLoans == 0 {
		return 0
	}
	return math.Round(float64(l.ApprovedLoans)/float64(l.TotalLoans)*1000) / 10
}

func memberResponses(members []*models.Member) []*models.MemberResponse {
	out := make([]*models.MemberResponse, len(members))
	for i, m := range members {
		out[i] = m.ToResponse()
	}
	return out
}
