package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/thesavant42/bikeshare-ng/internal/analysis"
	"github.com/thesavant42/bikeshare-ng/internal/config"
	"github.com/thesavant42/bikeshare-ng/internal/db"
	"github.com/thesavant42/bikeshare-ng/internal/loader"
	"github.com/thesavant42/bikeshare-ng/internal/logging"
	"github.com/thesavant42/bikeshare-ng/internal/models"
	"github.com/thesavant42/bikeshare-ng/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}

	// Command line flags override config and environment
	cityFlag := flag.String("city", "", "City to analyse without prompting (chicago, new york city, washington)")
	monthFlag := flag.String("month", "all", "Month filter for -city (all, january ... june)")
	dayFlag := flag.String("day", "all", "Day filter for -city (all, monday ... sunday)")
	dataDir := flag.String("data", cfg.DataDir, "Directory holding the city CSV files")
	dbPath := flag.String("db", cfg.CacheDB, "Path to the SQLite trip cache")
	noCache := flag.Bool("no-cache", !cfg.UseCache, "Read the CSV files directly, skipping the trip cache")
	pageSize := flag.Int("page-size", cfg.PageSize, "Raw data rows shown per page")
	noSplash := flag.Bool("no-splash", !cfg.Splash, "Skip the welcome screen")
	flag.Parse()

	if *pageSize <= 0 {
		*pageSize = models.DefaultPageSize
	}

	logger := logging.New(cfg.LogFile, cfg.LogLevel)

	var cache loader.Cache
	if !*noCache {
		database, err := db.New(*dbPath)
		if err != nil {
			// The cache is an optimisation; carry on reading CSV files
			logger.Warn("Trip cache unavailable", "path", *dbPath, "error", err)
		} else {
			defer database.Close()
			cache = database
		}
	}

	l := loader.New(*dataDir, cache, logger)

	// Non-interactive mode: one report, no prompts
	if *cityFlag != "" {
		sel, err := models.NewSelection(*cityFlag, *monthFlag, *dayFlag)
		if err != nil {
			ui.PrintError(err.Error())
			os.Exit(1)
		}
		if err := analyze(l, sel, logger, false, *pageSize); err != nil {
			ui.PrintError(err.Error())
			os.Exit(1)
		}
		return
	}

	if *noSplash {
		ui.PrintGreeting()
	} else {
		ui.ShowSplash()
	}

	for {
		sel, err := ui.PromptForSelection()
		if err != nil {
			if errors.Is(err, ui.ErrCancelled) {
				return
			}
			ui.PrintError(err.Error())
			os.Exit(1)
		}

		if err := analyze(l, sel, logger, true, *pageSize); err != nil {
			if errors.Is(err, ui.ErrCancelled) {
				return
			}
			ui.PrintError(err.Error())
		}

		restart, err := ui.ConfirmRestart()
		if err != nil && !errors.Is(err, ui.ErrCancelled) {
			ui.PrintError(err.Error())
			os.Exit(1)
		}
		if !restart {
			return
		}
	}
}

// analyze loads, filters and reports on one selection. In interactive mode
// loading shows a spinner and the raw rows can be paged afterwards.
func analyze(l *loader.Loader, sel models.Selection, logger *log.Logger, interactive bool, pageSize int) error {
	runLog := logger.With("run_id", uuid.NewString())
	runLog.Info("Starting analysis", "city", sel.City, "month", sel.Month, "day", sel.DayTitle())

	var table *models.Table
	load := func() (err error) {
		table, _, err = l.Load(sel.City)
		return err
	}

	var err error
	if interactive {
		err = ui.RunWithSpinner(fmt.Sprintf("Loading %s trips...", sel.City.Title()), load)
	} else {
		err = load()
	}
	if err != nil {
		runLog.Error("Load failed", "error", err)
		return err
	}

	view, rows, err := analysis.Filter(table, sel)
	if err != nil {
		runLog.Error("Filter failed", "error", err)
		return err
	}
	runLog.Info("Filtered trips", "rows", rows, "total", table.Len())

	report := analysis.BuildReport(view, sel, runLog)
	ui.PrintReport(report)

	if !interactive || rows == 0 {
		return nil
	}

	show, err := ui.ConfirmRawData(rows, pageSize)
	if err != nil || !show {
		return err
	}
	title := fmt.Sprintf("Raw Trip Data: %s", sel.City.Title())
	return ui.RunPager(view, title, pageSize)
}
