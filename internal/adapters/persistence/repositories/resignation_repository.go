package repositories

import (
	"context"
	"time"

	"kada-admin/internal/adapters/persistence/models"
	"kada-admin/internal/core/domain"

	"gorm.io/gorm"
)

// resignationRepository implements ResignationRepository interface
type resignationRepository struct {
	db *gorm.DB
}

// NewResignationRepository creates a new resignation repository
func NewResignationRepository(db *gorm.DB) ResignationRepository {
	return &resignationRepository{db: db}
}

// Create creates a new resignation request
func (r *resignationRepository) Create(ctx context.Context, req *models.ResignationRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// GetPendingByMember gets the pending request of a member
func (r *resignationRepository) GetPendingByMember(ctx context.Context, memberID uint) (*models.ResignationRequest, error) {
	var req models.ResignationRequest
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND status = ?", memberID, domain.ResignationPending).
		Order("requested_at DESC, id DESC").
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// SupersedePending retires every pending request of a member and returns
// how many were retired
func (r *resignationRepository) SupersedePending(ctx context.Context, memberID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ResignationRequest{}).
		Where("member_id = ? AND status = ?", memberID, domain.ResignationPending).
		Update("status", domain.ResignationSuperseded)
	return result.RowsAffected, result.Error
}

// Resolve marks a pending request approved. It fails with
// domain.ErrConcurrentUpdate when the request is no longer pending.
func (r *resignationRepository) Resolve(ctx context.Context, id, adminID uint, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.ResignationRequest{}).
		Where("id = ? AND status = ?", id, domain.ResignationPending).
		Updates(map[string]interface{}{
			"status":      domain.ResignationApproved,
			"resolved_at": at,
			"resolved_by": adminID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrConcurrentUpdate
	}
	return nil
}

// ListPending lists pending requests with their members, oldest first
func (r *resignationRepository) ListPending(ctx context.Context) ([]*models.ResignationRequest, error) {
	var reqs []*models.ResignationRequest
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("status = ?", domain.ResignationPending).
		Order("requested_at ASC, id ASC").
		Find(&reqs).Error
	return reqs, err
}

// CountPending counts pending requests
func (r *resignationRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ResignationRequest{}).
		Where("status = ?", domain.ResignationPending).
		Count(&count).Error
	return count, err
}
