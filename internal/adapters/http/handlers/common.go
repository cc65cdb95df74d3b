package handlers

import (
	"errors"
	"strconv"

	"kada-admin/internal/core/domain"
	"kada-admin/internal/pkg/flash"
	"kada-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// IdentityKey is the c.Locals key holding the authenticated domain.Identity
const IdentityKey = "identity"

// Operator-facing messages shared by the handlers
const (
	MsgLoginRequired      = "Sila log masuk sebagai admin"
	MsgNotFound           = "Rekod tidak dijumpai"
	MsgInvalidStatus      = "Status tidak sah"
	MsgInvalidTransition  = "Perubahan status ini tidak dibenarkan"
	MsgResignationFailed  = "Permohonan berhenti tidak dapat diluluskan"
	MsgMigrationFailed    = "Gagal memindahkan ahli ke senarai ahli aktif"
	MsgRejectionFailed    = "Gagal menolak permohonan ahli"
	MsgUpdateFailed       = "Gagal mengemaskini status ahli"
	MsgConcurrentUpdate   = "Rekod telah dikemaskini oleh pengguna lain. Sila cuba lagi"
	MsgSelfDeletion       = "Tidak boleh memadam akaun sendiri"
	MsgLastAdmin          = "Tidak boleh memadam admin terakhir"
	MsgDuplicate          = "Nama pengguna atau emel telah digunakan"
	MsgWrongPassword      = "Kata laluan semasa tidak sah"
	MsgInvalidLogin       = "Nama pengguna atau kata laluan tidak sah"
	MsgSystemError        = "Ralat sistem. Sila cuba lagi"
	MsgInvalidID          = "ID tidak sah"
	MsgInvalidRequestBody = "Maklumat borang tidak sah"
)

// base carries what every page and action handler needs
type base struct {
	flash *flash.Store
	log   *zap.Logger
}

// view pops the pending flash messages and renders the page document
func (b *base) view(c *fiber.Ctx, name string, data interface{}) error {
	msgs, err := b.flash.Pop(c)
	if err != nil {
		b.log.Warn("failed to read flash messages", zap.Error(err))
	}
	var f interface{}
	if !msgs.Empty() {
		f = msgs
	}
	return response.View(c, name, f, data)
}

// done flashes a success message and redirects
func (b *base) done(c *fiber.Ctx, location, msg string) error {
	if err := b.flash.Success(c, msg); err != nil {
		b.log.Warn("failed to store flash message", zap.Error(err))
	}
	return response.Redirect(c, location)
}

// fail flashes the message for err and redirects
func (b *base) fail(c *fiber.Ctx, location string, err error) error {
	return b.failWith(c, location, userMessage(err))
}

func (b *base) failWith(c *fiber.Ctx, location, msg string) error {
	if err := b.flash.Error(c, msg); err != nil {
		b.log.Warn("failed to store flash message", zap.Error(err))
	}
	return response.Redirect(c, location)
}

// identity returns the admin set by the auth middleware
func identity(c *fiber.Ctx) domain.Identity {
	who, _ := c.Locals(IdentityKey).(domain.Identity)
	return who
}

// parseID reads a positive numeric route or form value
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// userMessage maps an error to the message shown to the operator. Storage
// details never reach the page.
func userMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var ue *domain.UploadError
	if errors.As(err, &ue) {
		return ue.Message
	}

	switch {
	case errors.Is(err, domain.ErrAuthenticationRequired):
		return MsgLoginRequired
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return MsgConcurrentUpdate
	case errors.Is(err, domain.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, domain.ErrInvalidStatus):
		return MsgInvalidStatus
	case errors.Is(err, domain.ErrResignation):
		return MsgResignationFailed
	case errors.Is(err, domain.ErrInvalidTransition):
		return MsgInvalidTransition
	case errors.Is(err, domain.ErrMigration):
		return MsgMigrationFailed
	case errors.Is(err, domain.ErrRejection):
		return MsgRejectionFailed
	case errors.Is(err, domain.ErrUpdate):
		return MsgUpdateFailed
	case errors.Is(err, domain.ErrSelfDeletion):
		return MsgSelfDeletion
	case errors.Is(err, domain.ErrLastAdmin):
		return MsgLastAdmin
	case errors.Is(err, domain.ErrDuplicate):
		return MsgDuplicate
	case errors.Is(err, domain.ErrPasswordMismatch):
		return MsgWrongPassword
	case errors.Is(err, domain.ErrInvalidLogin):
		return MsgInvalidLogin
	default:
		return MsgSystemError
	}
}
