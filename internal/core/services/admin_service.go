package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kada-admin/internal/adapters/persistence/models"
	"kada-admin/internal/adapters/persistence/repositories"
	"kada-admin/internal/core/domain"
	"kada-admin/internal/pkg/password"
	"kada-admin/internal/pkg/sanitize"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Operator-facing validation messages
const (
	MsgFieldsRequired   = "Sila isi semua maklumat yang diperlukan"
	MsgPasswordMismatch = "Kata laluan tidak sepadan"
	MsgPasswordTooShort = "Kata laluan mestilah sekurang-kurangnya 8 aksara"
)

// AdminService manages admin accounts
type AdminService struct {
	adminRepo repositories.AdminRepository
	log       *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(adminRepo repositories.AdminRepository, log *zap.Logger) *AdminService {
	return &AdminService{adminRepo: adminRepo, log: log}
}

// CreateAdminInput represents the add-admin form
type CreateAdminInput struct {
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// UpdateAdminInput represents the edit-admin form. An empty Password
// keeps the current one.
type UpdateAdminInput struct {
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// ProfileInput represents the edit-profile form. Changing the password
// requires the current one.
type ProfileInput struct {
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// Create adds a new admin account
func (s *AdminService) Create(ctx context.Context, input *CreateAdminInput) (*models.Admin, error) {
	username := sanitize.Text(input.Username)
	email := strings.ToLower(sanitize.Text(input.Email))

	// 1. Required fields
	if username == "" || email == "" || input.Password == "" || input.ConfirmPassword == "" {
		return nil, domain.Invalid("username", MsgFieldsRequired)
	}

	// 2. Password rules
	if err := checkNewPassword(input.Password, input.ConfirmPassword); err != nil {
		return nil, err
	}

	// 3. Uniqueness
	if err := s.ensureUnique(ctx, username, email, 0); err != nil {
		return nil, err
	}

	// 4. Hash and store
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{Username: username, Email: email, Password: hashed}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if dup := duplicateKey(err, username); dup != nil {
			return nil, dup
		}
		s.log.Error("failed to create admin", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	s.log.Info("admin created", zap.Uint("admin_id", admin.ID), zap.String("username", admin.Username))
	return admin, nil
}

// Get returns an admin by ID
func (s *AdminService) Get(ctx context.Context, id uint) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: admin %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return admin, nil
}

// List returns every admin account
func (s *AdminService) List(ctx context.Context) ([]*models.Admin, error) {
	return s.adminRepo.List(ctx)
}

// Update edits another admin's account
func (s *AdminService) Update(ctx context.Context, id uint, input *UpdateAdminInput) (*models.Admin, error) {
	admin, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	username := sanitize.Text(input.Username)
	email := strings.ToLower(sanitize.Text(input.Email))
	if username == "" || email == "" {
		return nil, domain.Invalid("username", MsgFieldsRequired)
	}
	if err := s.ensureUnique(ctx, username, email, admin.ID); err != nil {
		return nil, err
	}

	admin.Username = username
	admin.Email = email
	if input.Password != "" {
		if err := checkNewPassword(input.Password, input.ConfirmPassword); err != nil {
			return nil, err
		}
		if admin.Password, err = password.Hash(input.Password); err != nil {
			return nil, err
		}
	}

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		if dup := duplicateKey(err, username); dup != nil {
			return nil, dup
		}
		s.log.Error("failed to update admin", zap.Uint("admin_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return admin, nil
}

// UpdateProfile edits the signed-in admin's own account
func (s *AdminService) UpdateProfile(ctx context.Context, who domain.Identity, input *ProfileInput) (*models.Admin, error) {
	if who.IsZero() {
		return nil, domain.ErrAuthenticationRequired
	}
	admin, err := s.Get(ctx, who.AdminID)
	if err != nil {
		return nil, err
	}

	username := sanitize.Text(input.Username)
	email := strings.ToLower(sanitize.Text(input.Email))
	if username == "" || email == "" {
		return nil, domain.Invalid("username", MsgFieldsRequired)
	}

	if input.NewPassword != "" {
		if !password.Verify(input.CurrentPassword, admin.Password) {
			return nil, domain.ErrPasswordMismatch
		}
		if err := checkNewPassword(input.NewPassword, input.ConfirmPassword); err != nil {
			return nil, err
		}
	}

	if err := s.ensureUnique(ctx, username, email, admin.ID); err != nil {
		return nil, err
	}

	admin.Username = username
	admin.Email = email
	if input.NewPassword != "" {
		if admin.Password, err = password.Hash(input.NewPassword); err != nil {
			return nil, err
		}
	}

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		if dup := duplicateKey(err, username); dup != nil {
			return nil, dup
		}
		s.log.Error("failed to update profile", zap.Uint("admin_id", admin.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return admin, nil
}

// Delete removes an admin account. An admin cannot delete their own
// account, and the last remaining admin cannot be deleted.
func (s *AdminService) Delete(ctx context.Context, id uint, who domain.Identity) error {
	if who.IsZero() {
		return domain.ErrAuthenticationRequired
	}
	if id == who.AdminID {
		return domain.ErrSelfDeletion
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	// The last-admin check and the delete share one locked transaction
	if err := s.adminRepo.DeleteUnlessLast(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: admin %d", domain.ErrNotFound, id)
		}
		if errors.Is(err, domain.ErrLastAdmin) {
			return domain.ErrLastAdmin
		}
		s.log.Error("failed to delete admin", zap.Uint("admin_id", id), zap.Error(err))
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	s.log.Info("admin deleted", zap.Uint("admin_id", id), zap.Uint("deleted_by", who.AdminID))
	return nil
}

// duplicateKey maps a unique index violation that slipped past
// ensureUnique, such as a concurrent insert of the same username.
func duplicateKey(err error, username string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: username %s", domain.ErrDuplicate, username)
	}
	return nil
}

func (s *AdminService) ensureUnique(ctx context.Context, username, email string, excludeID uint) error {
	exists, err := s.adminRepo.ExistsByUsername(ctx, username, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: username %s", domain.ErrDuplicate, username)
	}

	exists, err = s.adminRepo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: email %s", domain.ErrDuplicate, email)
	}
	return nil
}

func checkNewPassword(pw, confirm string) error {
	if pw != confirm {
		return domain.Invalid("confirm_password", MsgPasswordMismatch)
	}
	if !password.ValidatePassword(pw) {
		return domain.Invalid("password", MsgPasswordTooShort)
	}
	return nil
}
