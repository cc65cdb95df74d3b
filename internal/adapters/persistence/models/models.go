package models

import (
	"time"

	"kada-admin/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Members & lifecycle
// ============================================================

// Member represents members table.
// Status is the only classification; rejected applicants are members
// whose status is Rejected.
type Member struct {
	ID              uint                `gorm:"primaryKey" json:"id"`
	Name            string              `gorm:"size:150;not null" json:"name"`
	ICNo            string              `gorm:"column:ic_no;uniqueIndex;size:20;not null" json:"ic_no"`
	Gender          string              `gorm:"size:20" json:"gender"`
	Position        string              `gorm:"size:100" json:"position"`
	MonthlySalary   float64             `gorm:"type:decimal(12,2);default:0" json:"monthly_salary"`
	RegistrationFee float64             `gorm:"type:decimal(10,2);default:0" json:"registration_fee"`
	Status          domain.MemberStatus `gorm:"size:20;index;not null;default:'Pending'" json:"status"`
	Version         int                 `gorm:"not null;default:1" json:"version"`
	CreatedAt       time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// MemberResponse DTO
type MemberResponse struct {
	ID            uint                `json:"id"`
	Name          string              `json:"name"`
	ICNo          string              `json:"ic_no"`
	Gender        string              `json:"gender"`
	Position      string              `json:"position"`
	MonthlySalary float64             `json:"monthly_salary"`
	Status        domain.MemberStatus `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
}

func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:            m.ID,
		Name:          m.Name,
		ICNo:          m.ICNo,
		Gender:        m.Gender,
		Position:      m.Position,
		MonthlySalary: m.MonthlySalary,
		Status:        m.Status,
		CreatedAt:     m.CreatedAt,
	}
}

// MemberTransition is the status history of a member (append-only)
type MemberTransition struct {
	ID          uint                  `gorm:"primaryKey" json:"id"`
	MemberID    uint                  `gorm:"index;not null" json:"member_id"`
	Kind        domain.TransitionKind `gorm:"size:30;not null" json:"kind"`
	FromStatus  domain.MemberStatus   `gorm:"size:20" json:"from_status"`
	ToStatus    domain.MemberStatus   `gorm:"size:20" json:"to_status"`
	Description string                `gorm:"type:text" json:"description"`
	PerformedBy uint                  `gorm:"index;not null" json:"performed_by"`
	IPAddress   string                `gorm:"size:50" json:"ip_address"`
	CreatedAt   time.Time             `gorm:"autoCreateTime" json:"created_at"`

	Performer *Admin `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}

func (MemberTransition) TableName() string {
	return "member_transitions"
}

// ResignationRequest permohonan berhenti ahli
type ResignationRequest struct {
	ID          uint                    `gorm:"primaryKey" json:"id"`
	MemberID    uint                    `gorm:"index;not null" json:"member_id"`
	Reason      string                  `gorm:"type:text" json:"reason"`
	State       domain.ResignationState `gorm:"column:status;size:20;index;not null;default:'pending'" json:"status"`
	RequestedAt time.Time               `gorm:"autoCreateTime" json:"requested_at"`
	ResolvedAt  *time.Time              `json:"resolved_at,omitempty"`
	ResolvedBy  *uint                   `json:"resolved_by,omitempty"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (ResignationRequest) TableName() string {
	return "resignation_requests"
}

// ============================================================
// Admins & directors
// ============================================================

// Admin represents admins table
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}

// AdminResponse DTO
type AdminResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Admin) ToResponse() *AdminResponse {
	return &AdminResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}

// Director represents directors table
type Director struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Position  string    `gorm:"size:100;not null" json:"position"`
	Email     string    `gorm:"size:100" json:"email"`
	Phone     string    `gorm:"size:30" json:"phone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Director) TableName() string {
	return "directors"
}

// ============================================================
// Annual reports & configuration
// ============================================================

// AnnualReport laporan tahunan
type AnnualReport struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Year       int       `gorm:"index;not null" json:"year"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Filename   string    `gorm:"size:255;not null" json:"filename"`
	FilePath   string    `gorm:"size:500;not null" json:"file_path"`
	StorageKey string    `gorm:"uniqueIndex;size:255;not null" json:"-"`
	Size       int64     `gorm:"not null" json:"size"`
	UploadedBy uint      `gorm:"index;not null" json:"uploaded_by"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	Uploader *Admin `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}

func (AnnualReport) TableName() string {
	return "annual_reports"
}

// InterestRate is a single-row table holding the current rates
type InterestRate struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SavingsRate float64   `gorm:"type:decimal(5,2);not null" json:"savings_rate"`
	LoanRate    float64   `gorm:"type:decimal(5,2);not null" json:"loan_rate"`
	UpdatedBy   *uint     `json:"updated_by,omitempty"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (InterestRate) TableName() string {
	return "interest_rates"
}

// ============================================================
// Savings & loans (read-only inputs to statistics)
// ============================================================

// Loan represents loans table
type Loan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"index;not null" json:"member_id"`
	Amount    float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status    string    `gorm:"size:20;index;not null;default:'pending'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// LoanStatusApproved is the loans.status value counted as approved
const LoanStatusApproved = "approved"

// SavingsAccount represents savings_accounts table
type SavingsAccount struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	MemberID      uint      `gorm:"index;not null" json:"member_id"`
	AccountNumber string    `gorm:"uniqueIndex;size:30;not null" json:"account_number"`
	CurrentAmount float64   `gorm:"type:decimal(12,2);default:0" json:"current_amount"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (SavingsAccount) TableName() string {
	return "savings_accounts"
}

// SavingsTransaction represents savings_transactions table
type SavingsTransaction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	AccountID       uint      `gorm:"index;not null" json:"account_id"`
	Amount          float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	TransactionType string    `gorm:"size:20;not null" json:"transaction_type"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	Account *SavingsAccount `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

func (SavingsTransaction) TableName() string {
	return "savings_transactions"
}

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Admin{},
		&Member{},
		&MemberTransition{},
		&ResignationRequest{},
		&Director{},
		&AnnualReport{},
		&InterestRate{},
		&SavingsAccount{},
		&SavingsTransaction{},
		&Loan{},
	)
}
