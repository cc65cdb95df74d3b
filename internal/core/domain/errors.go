package domain

import "errors"

// Common domain errors
var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrValidation             = errors.New("validation failed")
	ErrNotFound               = errors.New("resource not found")
	ErrDuplicate              = errors.New("duplicate entry")
	ErrConcurrentUpdate       = errors.New("record was modified by another request")
	ErrStorage                = errors.New("storage failure")
)

// Member lifecycle errors
var (
	ErrInvalidStatus     = errors.New("invalid member status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrMigration         = errors.New("failed to migrate rejected member")
	ErrRejection         = errors.New("failed to reject member")
	ErrUpdate            = errors.New("failed to update member status")
	ErrResignation       = errors.New("resignation cannot be approved")
)

// Admin account errors
var (
	ErrSelfDeletion     = errors.New("cannot delete your own account")
	ErrLastAdmin        = errors.New("cannot delete the last admin")
	ErrPasswordMismatch = errors.New("current password is incorrect")
	ErrInvalidLogin     = errors.New("invalid credentials")
)

// Annual report errors
var (
	ErrUpload = errors.New("upload rejected")
)

// ValidationError is a missing or malformed input field. Message is safe
// to show to the operator.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalid builds a ValidationError
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// UploadError is a rejected annual report file. Message is safe to show.
type UploadError struct {
	Message string
}

func (e *UploadError) Error() string {
	return "upload rejected: " + e.Message
}

func (e *UploadError) Unwrap() error {
	return ErrUpload
}
