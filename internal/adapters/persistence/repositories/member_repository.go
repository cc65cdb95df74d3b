package repositories

import (
	"context"
	"time"

	"kada-admin/internal/adapters/persistence/models"
	"kada-admin/internal/core/domain"

	"gorm.io/gorm"
)

// memberRepository implements MemberRepository interface
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// GetByID gets a member by ID
func (r *memberRepository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// List lists members with pagination, newest first
func (r *memberRepository) List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error) {
	var members []*models.Member
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Member{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&members).Error
	if err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

// ListAll returns every member ordered by ID (export order)
func (r *memberRepository) ListAll(ctx context.Context) ([]*models.Member, error) {
	var members []*models.Member
	err := r.db.WithContext(ctx).Order("id ASC").Find(&members).Error
	return members, err
}

// CountByStatus counts members per status. Statuses without members are
// present with a zero count.
func (r *memberRepository) CountByStatus(ctx context.Context) (map[domain.MemberStatus]int64, error) {
	var rows []struct {
		Status domain.MemberStatus
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.MemberStatus]int64, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// CountCreatedBetween counts members who joined in [from, to)
func (r *memberRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

// SumRegistrationFees totals the registration fees paid by all members
func (r *memberRepository) SumRegistrationFees(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Select("COALESCE(SUM(registration_fee), 0)").
		Scan(&total).Error
	return total, err
}

// UpdateStatus sets the status guarded by the row version
func (r *memberRepository) UpdateStatus(ctx context.Context, id uint, version int, status domain.MemberStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]interface{}{
			"status":     status,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrConcurrentUpdate
	}
	return nil
}
