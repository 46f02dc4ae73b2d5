package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/radius-admin/lineitem-console/internal/dto"
	"github.com/radius-admin/lineitem-console/internal/models"
	"github.com/radius-admin/lineitem-console/internal/service"
	"github.com/radius-admin/lineitem-console/internal/store"
	"github.com/radius-admin/lineitem-console/pkg/config"
	"github.com/radius-admin/lineitem-console/pkg/jobs"
	"github.com/radius-admin/lineitem-console/pkg/logger"
	"github.com/radius-admin/lineitem-console/pkg/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "console: %v\n", err)
		os.Exit(1)
	}
}

// run seeds a demo line item, walks it through a typical editing session and
// writes the export artifacts to disk.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	tz := models.Timezone(cfg.Dashboard.DefaultTimezone)
	if !tz.Valid() {
		tz = models.TimezoneCST
	}

	st := store.NewLineItemStore(&models.LineItem{
		ID:        "li-1",
		Title:     "New Line Item",
		StartDate: time.Now().UTC().Truncate(24 * time.Hour),
		Timezone:  tz,
	})

	creatives := service.NewCreativeService(st, nil, log)
	dayparting := service.NewDaypartingService(st, nil, log)
	lineItems := service.NewLineItemService(st, nil, log)
	exports := service.NewExportService(st, nil, nil, log)

	pool := candidatePool(cfg.Dashboard.CandidateBaseID, cfg.Dashboard.CandidatePoolSize)
	picked := pool
	if len(picked) > 3 {
		picked = picked[:3]
	}

	li, err := creatives.AddCreatives(dto.AddCreativesRequest{
		Creatives: picked,
	})
	if err != nil {
		return fmt.Errorf("add creatives: %w", err)
	}
	log.Info("creatives attached", zap.Int("count", len(li.Creatives)))

	if _, err := creatives.SetWeight(dto.WeightChangeRequest{
		CreativeID: pool[0].ID,
		Value:      "50",
	}); err != nil {
		return fmt.Errorf("set weight: %w", err)
	}

	draft, err := dayparting.NewDraft(pool[1].ID)
	if err != nil {
		return fmt.Errorf("open dayparting draft: %w", err)
	}
	dayparting.ToggleDay(draft, models.Monday)
	dayparting.ToggleDay(draft, models.Wednesday)
	dayparting.ToggleDay(draft, models.Friday)
	for _, edit := range []dto.TimeSlotChangeRequest{
		{Day: models.Monday, Field: dto.SlotFieldFrom, Value: "9:00 AM"},
		{Day: models.Monday, Field: dto.SlotFieldTo, Value: "5:00 PM"},
	} {
		if err := dayparting.SetTimeSlotField(draft, edit); err != nil {
			return fmt.Errorf("edit time slot: %w", err)
		}
	}
	if _, err := dayparting.Save(draft); err != nil {
		return fmt.Errorf("save dayparting: %w", err)
	}

	// The second creative's Monday window is computed around the first one's.
	draft, err = dayparting.NewDraft(pool[2].ID)
	if err != nil {
		return fmt.Errorf("open dayparting draft: %w", err)
	}
	dayparting.ToggleDay(draft, models.Monday)
	if _, err := dayparting.Save(draft); err != nil {
		return fmt.Errorf("save dayparting: %w", err)
	}

	if _, err := lineItems.SetTitle(dto.TitleChangeRequest{Title: "Spring Awareness Push"}); err != nil {
		return fmt.Errorf("set title: %w", err)
	}
	if _, err := lineItems.AddDistributionTag(dto.AddDistributionTagRequest{Name: "VAST 4.0"}); err != nil {
		return fmt.Errorf("add distribution tag: %w", err)
	}

	return writeExports(cfg, log, exports)
}

// writeExports renders the three artifacts on the export runner and waits for
// it to drain.
func writeExports(cfg *config.Config, log *zap.Logger, exports *service.ExportService) error {
	dir, err := storage.NewExportDir(cfg.Export.OutputDir)
	if err != nil {
		return fmt.Errorf("prepare export directory: %w", err)
	}

	runner := jobs.NewRunner(dir, jobs.RunnerConfig{
		Workers: cfg.Export.Workers,
		Logger:  log,
	})
	runner.Start(context.Background())

	jobsToRun := []jobs.ExportJob{
		{Name: "distribution-tags.csv", Render: exports.DistributionTagsCSV},
		{Name: "pixel-template.csv", Render: exports.PixelTemplateCSV},
		{Name: exports.SummaryFilename("pdf"), Render: exports.LineItemSummaryPDF},
	}
	for _, job := range jobsToRun {
		if err := runner.Enqueue(job); err != nil {
			runner.Stop()
			return fmt.Errorf("enqueue export: %w", err)
		}
	}

	runner.Drain()
	runner.Stop()
	return nil
}

// candidatePool fabricates the selectable creative candidates the add dialog
// offers.
func candidatePool(baseID, size int) []dto.CreativeSelection {
	if size <= 0 {
		size = 1
	}
	pool := make([]dto.CreativeSelection, size)
	for i := range pool {
		id := baseID + i
		pool[i] = dto.CreativeSelection{
			ID:    id,
			Label: fmt.Sprintf("Creative %d", id),
		}
	}
	return pool
}
