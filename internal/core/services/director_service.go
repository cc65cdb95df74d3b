package services

import (
	"context"
	"errors"
	"fmt"

	"kada-admin/internal/adapters/persistence/models"
	"kada-admin/internal/adapters/persistence/repositories"
	"kada-admin/internal/core/domain"
	"kada-admin/internal/pkg/sanitize"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MsgDirectorRequired is shown when a director's name or position is blank
const MsgDirectorRequired = "Nama dan jawatan diperlukan"

// DirectorService manages the board of directors listing
type DirectorService struct {
	directorRepo repositories.DirectorRepository
	log          *zap.Logger
}

// NewDirectorService creates a new director service
func NewDirectorService(directorRepo repositories.DirectorRepository, log *zap.Logger) *DirectorService {
	return &DirectorService{directorRepo: directorRepo, log: log}
}

// DirectorInput represents the edit-director form
type DirectorInput struct {
	Name     string `json:"name" form:"name"`
	Position string `json:"position" form:"position"`
	Email    string `json:"email" form:"email"`
	Phone    string `json:"phone" form:"phone"`
}

// Get returns a director by ID
func (s *DirectorService) Get(ctx context.Context, id uint) (*models.Director, error) {
	d, err := s.directorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: director %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return d, nil
}

// List returns every director
func (s *DirectorService) List(ctx context.Context) ([]*models.Director, error) {
	return s.directorRepo.List(ctx)
}

// Update edits a director's profile
func (s *DirectorService) Update(ctx context.Context, id uint, input *DirectorInput) (*models.Director, error) {
	name := sanitize.Text(input.Name)
	position := sanitize.Text(input.Position)
	if name == "" || position == "" {
		return nil, domain.Invalid("name", MsgDirectorRequired)
	}

	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	d.Name = name
	d.Position = position
	d.Email = sanitize.Text(input.Email)
	d.Phone = sanitize.Text(input.Phone)

	if err := s.directorRepo.Update(ctx, d); err != nil {
		s.log.Error("failed to update director", zap.Uint("director_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return d, nil
}
