package repositories

import (
	"context"

	"kada-admin/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// transitionRepository implements TransitionRepository interface
type transitionRepository struct {
	db *gorm.DB
}

// NewTransitionRepository creates a new transition repository
func NewTransitionRepository(db *gorm.DB) TransitionRepository {
	return &transitionRepository{db: db}
}

// Create appends a history row
func (r *transitionRepository) Create(ctx context.Context, t *models.MemberTransition) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// ListByMember gets the status history of a member, newest first
func (r *transitionRepository) ListByMember(ctx context.Context, memberID uint) ([]*models.MemberTransition, error) {
	var transitions []*models.MemberTransition
	err := r.db.WithContext(ctx).
		Preload("Performer").
		Where("member_id = ?", memberID).
		Order("created_at DESC, id DESC").
		Find(&transitions).Error
	return transitions, err
}
