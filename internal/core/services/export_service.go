package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"kada-admin/internal/adapters/export"
	"kada-admin/internal/adapters/persistence/repositories"

	"go.uber.org/zap"
)

// ExportTitle heads the exported member list
const ExportTitle = "Senarai Ahli"

// ExportFormat selects the member list file type
type ExportFormat string

const (
	ExportPDF  ExportFormat = "pdf"
	ExportXLSX ExportFormat = "excel"
)

// ExportFile is a generated download
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the member list for download. It only reads.
type ExportService struct {
	memberRepo repositories.MemberRepository
	log        *zap.Logger
	now        func() time.Time
}

// NewExportService creates a new export service
func NewExportService(memberRepo repositories.MemberRepository, log *zap.Logger) *ExportService {
	return &ExportService{memberRepo: memberRepo, log: log, now: time.Now}
}

// Members renders every member in the requested format
func (s *ExportService) Members(ctx context.Context, format ExportFormat) (*ExportFile, error) {
	members, err := s.memberRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	rows := export.RowsFromMembers(members)
	stamp := s.now().Format("20060102")

	var buf bytes.Buffer
	file := &ExportFile{}
	switch format {
	case ExportPDF:
		err = export.WritePDF(&buf, ExportTitle, rows)
		file.Filename = "senarai_ahli_" + stamp + ".pdf"
		file.ContentType = export.PDFContentType
	case ExportXLSX:
		err = export.WriteXLSX(&buf, rows)
		file.Filename = "senarai_ahli_" + stamp + ".xlsx"
		file.ContentType = export.XLSXContentType
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		s.log.Error("failed to render member export", zap.String("format", string(format)), zap.Error(err))
		return nil, err
	}

	file.Data = buf.Bytes()
	s.log.Info("member list exported", zap.String("format", string(format)), zap.Int("members", len(rows)))
	return file, nil
}
