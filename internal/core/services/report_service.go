package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"kada-admin/internal/adapters/persistence/models"
	"kada-admin/internal/adapters/persistence/repositories"
	"kada-admin/internal/adapters/storage"
	"kada-admin/internal/core/domain"
	"kada-admin/internal/pkg/metrics"
	"kada-admin/internal/pkg/sanitize"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReportPrefix is the storage key prefix of annual report files
const ReportPrefix = "annual-reports/"

// PDFContentType is the only accepted report type
const PDFContentType = "application/pdf"

// sniffLen is how many leading bytes are inspected to detect the type
const sniffLen = 512

// Operator-facing upload messages
const (
	MsgReportUploaded = "Laporan tahunan telah berjaya dimuat naik"
	MsgReportDeleted  = "Laporan tahunan telah berjaya dipadam"
	MsgInvalidYear    = "Tahun laporan tidak sah"
	MsgNoFile         = "Sila pilih fail laporan untuk dimuat naik"
	MsgNotPDF         = "Hanya fail PDF dibenarkan"
	MsgTooLarge       = "Saiz fail melebihi had 10MB"
	MsgUploadFailed   = "Gagal memuat naik fail laporan"
)

// errTooLarge is raised by cappedReader once the bound is passed
var errTooLarge = errors.New("file exceeds size limit")

// ReportService manages annual report records and their files
type ReportService struct {
	reportRepo repositories.ReportRepository
	files      storage.FileStore
	maxBytes   int64
	log        *zap.Logger
	now        func() time.Time
}

// NewReportService creates a new report service. maxBytes bounds the size
// of an uploaded file.
func NewReportService(reportRepo repositories.ReportRepository, files storage.FileStore, maxBytes int64, log *zap.Logger) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		files:      files,
		maxBytes:   maxBytes,
		log:        log,
		now:        time.Now,
	}
}

// UploadInput is one annual report upload. Size is the size declared by
// the client; the stream is still bounded while it is stored.
type UploadInput struct {
	Year     string
	Title    string
	Filename string
	Size     int64
	Body     io.Reader
}

// Upload validates and stores a report file, then records it. The file is
// removed again when the record cannot be written.
func (s *ReportService) Upload(ctx context.Context, input *UploadInput, who domain.Identity) (*models.AnnualReport, error) {
	if who.IsZero() {
		return nil, domain.ErrAuthenticationRequired
	}

	report, err := s.upload(ctx, input, who)
	switch {
	case err == nil:
		metrics.ReportUploads.WithLabelValues(metrics.OutcomeSuccess).Inc()
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUpload):
		metrics.ReportUploads.WithLabelValues(metrics.OutcomeRejected).Inc()
	default:
		metrics.ReportUploads.WithLabelValues(metrics.OutcomeFailed).Inc()
	}
	return report, err
}

func (s *ReportService) upload(ctx context.Context, input *UploadInput, who domain.Identity) (*models.AnnualReport, error) {
	// 1. Form fields
	title := sanitize.Text(input.Title)
	if strings.TrimSpace(input.Year) == "" || title == "" {
		return nil, domain.Invalid("title", MsgFieldsRequired)
	}
	year, err := strconv.Atoi(strings.TrimSpace(input.Year))
	if err != nil || year < 1900 || year > s.now().Year()+1 {
		return nil, domain.Invalid("year", MsgInvalidYear)
	}
	if input.Body == nil {
		return nil, &domain.UploadError{Message: MsgNoFile}
	}

	// 2. Declared size, before anything is read
	if input.Size > s.maxBytes {
		s.log.Warn("report rejected", zap.String("reason", "size"), zap.Int64("size", input.Size))
		return nil, &domain.UploadError{Message: MsgTooLarge}
	}

	// 3. Content type from the leading bytes
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(input.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", &domain.UploadError{Message: MsgUploadFailed}, err)
	}
	head = head[:n]
	if n == 0 {
		return nil, &domain.UploadError{Message: MsgNoFile}
	}
	if ct := http.DetectContentType(head); ct != PDFContentType {
		s.log.Warn("report rejected", zap.String("reason", "type"), zap.String("content_type", ct))
		return nil, &domain.UploadError{Message: MsgNotPDF}
	}

	// 4. Store the file
	filename := fmt.Sprintf("annual_report_%d_%s.pdf", year, uuid.NewString())
	key := ReportPrefix + filename
	body := &cappedReader{r: io.MultiReader(bytes.NewReader(head), input.Body), left: s.maxBytes}

	size, err := s.files.Put(ctx, key, body, PDFContentType)
	if err != nil {
		if errors.Is(err, errTooLarge) {
			s.log.Warn("report rejected", zap.String("reason", "size"), zap.Int64("limit", s.maxBytes))
			return nil, &domain.UploadError{Message: MsgTooLarge}
		}
		s.log.Error("failed to store report file", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %w: %w", &domain.UploadError{Message: MsgUploadFailed}, domain.ErrStorage, err)
	}

	// 5. Record it
	report := &models.AnnualReport{
		Year:       year,
		Title:      title,
		Filename:   filename,
		FilePath:   "/uploads/" + key,
		StorageKey: key,
		Size:       size,
		UploadedBy: who.AdminID,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		s.log.Error("failed to record report", zap.String("key", key), zap.Error(err))
		if derr := s.files.Delete(context.WithoutCancel(ctx), key); derr != nil {
			s.log.Error("failed to remove unrecorded report file", zap.String("key", key), zap.Error(derr))
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	s.log.Info("annual report uploaded",
		zap.Uint("report_id", report.ID),
		zap.Int("year", year),
		zap.Int64("size", size),
		zap.Uint("admin_id", who.AdminID),
	)
	return report, nil
}

// List returns every report, newest year first
func (s *ReportService) List(ctx context.Context) ([]*models.AnnualReport, error) {
	return s.reportRepo.List(ctx)
}

// Get returns a report record
func (s *ReportService) Get(ctx context.Context, id uint) (*models.AnnualReport, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: report %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return report, nil
}

// Download opens the stored file of a report. The caller closes it.
func (s *ReportService) Download(ctx context.Context, id uint) (*models.AnnualReport, io.ReadCloser, int64, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, 0, err
	}

	rc, size, err := s.files.Get(ctx, report.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			s.log.Warn("report file missing", zap.Uint("report_id", id), zap.String("key", report.StorageKey))
			return nil, nil, 0, fmt.Errorf("%w: file of report %d", domain.ErrNotFound, id)
		}
		return nil, nil, 0, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return report, rc, size, nil
}

// Delete removes a report record and its file. Both must exist.
func (s *ReportService) Delete(ctx context.Context, id uint, who domain.Identity) error {
	if who.IsZero() {
		return domain.ErrAuthenticationRequired
	}
	report, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	exists, err := s.files.Exists(ctx, report.StorageKey)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	if !exists {
		return fmt.Errorf("%w: file of report %d", domain.ErrNotFound, id)
	}

	if err := s.reportRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: report %d", domain.ErrNotFound, id)
		}
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	// The record is gone; a leftover file is an orphan for the sweeper
	if err := s.files.Delete(ctx, report.StorageKey); err != nil {
		s.log.Error("failed to remove report file", zap.Uint("report_id", id), zap.String("key", report.StorageKey), zap.Error(err))
	}

	s.log.Info("annual report deleted", zap.Uint("report_id", id), zap.Uint("admin_id", who.AdminID))
	return nil
}

// SweepOrphans deletes stored report files older than grace that no
// record points at. It returns how many were removed.
func (s *ReportService) SweepOrphans(ctx context.Context, grace time.Duration) (int, error) {
	objects, err := s.files.List(ctx, ReportPrefix)
	if err != nil {
		return 0, err
	}
	keys, err := s.reportRepo.StorageKeys(ctx)
	if err != nil {
		return 0, err
	}

	known := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		known[k] = struct{}{}
	}

	cutoff := s.now().Add(-grace)
	removed := 0
	for _, obj := range objects {
		if _, ok := known[obj.Key]; ok || obj.ModTime.After(cutoff) {
			continue
		}
		if path.Ext(obj.Key) != ".pdf" {
			continue
		}
		if err := s.files.Delete(ctx, obj.Key); err != nil {
			s.log.Warn("failed to sweep orphaned report file", zap.String("key", obj.Key), zap.Error(err))
			continue
		}
		removed++
		metrics.OrphansSwept.Inc()
	}

	if removed > 0 {
		s.log.Info("swept orphaned report files", zap.Int("count", removed))
	}
	return removed, nil
}

// cappedReader fails with errTooLarge once more than left bytes are read
type cappedReader struct {
	r    io.Reader
	left int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.left < 0 {
		return 0, errTooLarge
	}
	if int64(len(p)) > c.left+1 {
		p = p[:c.left+1]
	}
	n, err := c.r.Read(p)
	c.left -= int64(n)
	if c.left < 0 {
		return n, errTooLarge
	}
	return n, err
}
