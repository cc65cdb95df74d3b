package repositories

import (
	"context"

	"kada-admin/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// directorRepository implements DirectorRepository interface
type directorRepository struct {
	db *gorm.DB
}

// NewDirectorRepository creates a new director repository
func NewDirectorRepository(db *gorm.DB) DirectorRepository {
	return &directorRepository{db: db}
}

// GetByID gets a director by ID
func (r *directorRepository) GetByID(ctx context.Context, id uint) (*models.Director, error) {
	var director models.Director
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&director).Error
	if err != nil {
		return nil, err
	}
	return &director, nil
}

// List lists all directors
func (r *directorRepository) List(ctx context.Context) ([]*models.Director, error) {
	var directors []*models.Director
	err := r.db.WithContext(ctx).Order("id ASC").Find(&directors).Error
	return directors, err
}

// Update updates a director
func (r *directorRepository) Update(ctx context.Context, director *models.Director) error {
	return r.db.WithContext(ctx).Save(director).Error
}
