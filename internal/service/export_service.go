package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/propfinder/listing-api/internal/models"
	appErrors "github.com/propfinder/listing-api/pkg/errors"
	"github.com/propfinder/listing-api/pkg/export"
)

// Export formats supported by the admin listing report.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type listingLister interface {
	List(ctx context.Context) ([]models.Property, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	Path(filename string) string
}

type csvRenderer interface {
	Render(table export.Table) ([]byte, error)
}

type pdfRenderer interface {
	Render(table export.Table, title string) ([]byte, error)
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the full property collection into downloadable
// listing reports for admins.
type ExportService struct {
	listings listingLister
	storage  fileStorage
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(listings listingLister, storage fileStorage, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		listings: listings,
		storage:  storage,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// Generate renders the listing report in the requested format, keeps a copy
// in export storage and returns the payload for download.
func (s *ExportService) Generate(ctx context.Context, format string) (*ExportResult, error) {
	records, err := s.listings.List(ctx)
	if err != nil {
		return nil, err
	}
	table := buildListingTable(records)

	var payload []byte
	var contentType string
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(table)
		contentType = "text/csv"
	case ExportFormatPDF:
		payload, err = s.pdf.Render(table, "Property Listings")
		contentType = "application/pdf"
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("listings-%s.%s", time.Now().Format("20060102-150405"), format)
	if s.storage != nil {
		if _, saveErr := s.storage.Save(filename, payload); saveErr != nil {
			s.logger.Warn("failed to archive export file", zap.Error(saveErr))
		} else {
			s.logger.Info("export archived", zap.String("path", s.storage.Path(filename)))
		}
	}

	s.logger.Info("listing export generated",
		zap.String("format", format), zap.Int("rows", len(table.Rows)))

	return &ExportResult{Filename: filename, ContentType: contentType, Payload: payload}, nil
}

// Archived returns a previously generated report from export storage.
func (s *ExportService) Archived(ctx context.Context, filename string) (*ExportResult, error) {
	if err := validateArchiveName(filename); err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "archived report not found")
	}

	file, err := s.storage.Open(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "archived report not found")
		}
		return nil, err
	}
	defer file.Close() //nolint:errcheck

	payload, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read archived report: %w", err)
	}
	return &ExportResult{Filename: filename, ContentType: archiveContentType(filename), Payload: payload}, nil
}

// Discard removes a previously generated report from export storage.
func (s *ExportService) Discard(ctx context.Context, filename string) error {
	if err := validateArchiveName(filename); err != nil {
		return err
	}
	if s.storage == nil {
		return nil
	}
	return s.storage.Delete(filename)
}

// validateArchiveName rejects names that would escape the export directory.
func validateArchiveName(filename string) error {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return appErrors.Clone(appErrors.ErrValidation, "invalid report filename")
	}
	return nil
}

func archiveContentType(filename string) string {
	switch filepath.Ext(filename) {
	case ".csv":
		return "text/csv"
	case ".pdf":
		return "application/pdf"
	}
	return "application/octet-stream"
}

func buildListingTable(records []models.Property) export.Table {
	table := export.Table{
		Columns: []string{"ID", "Title", "Location", "Price", "BHK", "Area", "Status", "Manager"},
	}
	for _, p := range records {
		table.Rows = append(table.Rows, []string{
			p.ID,
			p.Title,
			p.Location,
			strconv.Itoa(p.Price),
			p.BHK,
			strconv.FormatFloat(p.Area, 'f', -1, 64),
			string(p.Status),
			p.ManagerID,
		})
	}
	return table
}
