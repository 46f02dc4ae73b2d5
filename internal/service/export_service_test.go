package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radius-admin/lineitem-console/internal/models"
	"github.com/radius-admin/lineitem-console/internal/store"
)

func newExportFixture() *ExportService {
	def := creative(1, true)
	def.Name = "Hero 30s"
	def.IsDefault = true
	def.Weighting = 60
	inactive := creative(2, false)
	inactive.Name = "Backup 15s"

	st := store.NewLineItemStore(&models.LineItem{
		ID:        "li-1",
		Title:     "Spring Campaign",
		Timezone:  models.TimezoneCST,
		Creatives: []models.Creative{def, inactive},
		Tags: []models.DistributionTag{
			{ID: "t-1", Name: "VAST Tag", URL: "https://radius.video/v1/distributions/t-1?line-item-id=li-1"},
		},
	})
	return NewExportService(st, nil, nil, nil)
}

func TestDistributionTagsCSV(t *testing.T) {
	svc := newExportFixture()

	out, err := svc.DistributionTagsCSV()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "Name,Distribution Tag", lines[0])
	require.Contains(t, lines[1], "VAST Tag")
	require.Contains(t, lines[1], "line-item-id=li-1")
}

func TestPixelTemplateCSVIsHeaderOnly(t *testing.T) {
	svc := newExportFixture()

	out, err := svc.PixelTemplateCSV()
	require.NoError(t, err)
	require.Equal(t, "Name,Event Types,Pixel URL", strings.TrimSpace(string(out)))
}

func TestLineItemSummaryPDF(t *testing.T) {
	svc := newExportFixture()

	out, err := svc.LineItemSummaryPDF()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestSummaryFilename(t *testing.T) {
	svc := newExportFixture()
	require.Equal(t, "spring-campaign-summary.pdf", svc.SummaryFilename("pdf"))
}
