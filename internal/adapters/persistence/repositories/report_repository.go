package repositories

import (
	"context"

	"kada-admin/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// reportRepository implements ReportRepository interface
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new annual report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// Create creates a report record
func (r *reportRepository) Create(ctx context.Context, report *models.AnnualReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// GetByID gets a report by ID
func (r *reportRepository) GetByID(ctx context.Context, id uint) (*models.AnnualReport, error) {
	var report models.AnnualReport
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// List lists reports, latest year first
func (r *reportRepository) List(ctx context.Context) ([]*models.AnnualReport, error) {
	var reports []*models.AnnualReport
	err := r.db.WithContext(ctx).
		Preload("Uploader").
		Order("year DESC, uploaded_at DESC, id DESC").
		Find(&reports).Error
	return reports, err
}

// Delete removes a report record
func (r *reportRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.AnnualReport{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// StorageKeys returns the storage key of every report record
func (r *reportRepository) StorageKeys(ctx context.Context) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Model(&models.AnnualReport{}).Pluck("storage_key", &keys).Error
	return keys, err
}
