package repositories

import (
	"context"

	"kada-admin/internal/adapters/persistence/models"
	"kada-admin/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// adminRepository implements AdminRepository interface
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// Create creates a new admin
func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

// GetByID gets an admin by ID
func (r *adminRepository) GetByID(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetByUsername gets an admin by username
func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Update updates an admin
func (r *adminRepository) Update(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

// DeleteUnlessLast hard deletes an admin while at least one other admin
// remains. The admin rows are locked for the check so two concurrent
// deletes cannot both pass it. SQLite ignores the lock and serialises the
// transactions instead.
func (r *adminRepository) DeleteUnlessLast(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.Admin{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		found := false
		for _, v := range ids {
			if v == id {
				found = true
				break
			}
		}
		if !found {
			return gorm.ErrRecordNotFound
		}
		if len(ids) <= 1 {
			return domain.ErrLastAdmin
		}

		return tx.Delete(&models.Admin{}, id).Error
	})
}

// List lists all admins
func (r *adminRepository) List(ctx context.Context) ([]*models.Admin, error) {
	var admins []*models.Admin
	err := r.db.WithContext(ctx).Order("id ASC").Find(&admins).Error
	return admins, err
}

// ExistsByUsername checks if username is taken by another admin
func (r *adminRepository) ExistsByUsername(ctx context.Context, username string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if email is taken by another admin
func (r *adminRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}
