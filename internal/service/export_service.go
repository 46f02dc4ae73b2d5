package service

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/radius-admin/lineitem-console/pkg/errors"
	"github.com/radius-admin/lineitem-console/pkg/export"
)

// ExportService renders the line item's delivery artifacts into portable
// files: distribution tags as CSV, the pixel import template, and a creative
// summary sheet as PDF.
type ExportService struct {
	repo   lineItemRepository
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService builds the service.
func NewExportService(repo lineItemRepository, csv *export.CSVExporter, pdf *export.PDFExporter, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{repo: repo, csv: csv, pdf: pdf, logger: logger}
}

// DistributionTagsCSV renders every published tag.
func (s *ExportService) DistributionTagsCSV() ([]byte, error) {
	li := s.repo.Get()
	data := export.Dataset{
		Headers: []string{"Name", "Distribution Tag"},
	}
	for _, tag := range li.Tags {
		data.Rows = append(data.Rows, []string{tag.Name, tag.URL})
	}
	out, err := s.csv.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "render distribution tags csv")
	}
	return out, nil
}

// PixelTemplateCSV renders the header-only template used for pixel imports.
func (s *ExportService) PixelTemplateCSV() ([]byte, error) {
	out, err := s.csv.Render(export.Dataset{
		Headers: []string{"Name", "Event Types", "Pixel URL"},
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "render pixel template csv")
	}
	return out, nil
}

// LineItemSummaryPDF renders one row per creative: id, delivery mode, status,
// weight, default marker and the dayparting day summary.
func (s *ExportService) LineItemSummaryPDF() ([]byte, error) {
	li := s.repo.Get()
	data := export.Dataset{
		Title:   li.Title,
		Headers: []string{"Creative", "ID", "Mode", "Status", "Weight", "Default", "Days"},
	}
	for i := range li.Creatives {
		c := &li.Creatives[i]
		status := "Inactive"
		weight := "-"
		if c.Status {
			status = "Active"
			weight = strconv.Itoa(c.Weighting) + "%"
		}
		isDefault := ""
		if c.IsDefault {
			isDefault = "Yes"
		}
		days := "None"
		if c.Dayparting != nil {
			days = c.Dayparting.Summary()
		}
		data.Rows = append(data.Rows, []string{
			c.Name,
			strconv.Itoa(c.ID),
			string(c.PlaybackMode),
			status,
			weight,
			isDefault,
			days,
		})
	}
	out, err := s.pdf.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "render line item summary pdf")
	}
	s.logger.Info("line item summary exported",
		zap.String("line_item_id", li.ID),
		zap.Int("creatives", len(li.Creatives)),
	)
	return out, nil
}

// SummaryFilename builds a stable export file name from the line item title.
func (s *ExportService) SummaryFilename(extension string) string {
	li := s.repo.Get()
	name := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(li.Title), " ", "-"))
	if name == "" {
		name = "line-item"
	}
	return fmt.Sprintf("%s-summary.%s", name, extension)
}
