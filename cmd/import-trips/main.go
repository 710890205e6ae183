package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/dustin/go-humanize"
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
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	dataDir := flag.String("data", cfg.DataDir, "Directory holding the city CSV files")
	dbPath := flag.String("db", cfg.CacheDB, "Path to the SQLite trip cache")
	cityFlag := flag.String("city", "", "Import a single city (default: all cities)")
	flag.Parse()

	cities := models.Cities
	if *cityFlag != "" {
		city, err := models.ParseCity(*cityFlag)
		if err != nil {
			ui.PrintError(err.Error())
			os.Exit(1)
		}
		cities = []models.City{city}
	}

	logger := logging.New(cfg.LogFile, cfg.LogLevel)

	database, err := db.New(*dbPath)
	if err != nil {
		ui.PrintError(fmt.Sprintf("Failed to initialize database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	l := loader.New(*dataDir, nil, logger)

	failed := 0
	for _, city := range cities {
		var importErr error
		err := spinner.New().
			Title(fmt.Sprintf("Importing %s...", city.Title())).
			Action(func() {
				table, err := l.LoadCSV(city)
				if err != nil {
					importErr = err
					return
				}
				importErr = database.ImportTable(table)
			}).
			Run()
		if err != nil {
			ui.PrintError(fmt.Sprintf("spinner error: %v", err))
			os.Exit(1)
		}
		if importErr != nil {
			logger.Error("Import failed", "city", city, "error", importErr)
			ui.PrintError(fmt.Sprintf("%s: %v", city.Title(), importErr))
			failed++
		}
	}

	imported, err := database.ListCities()
	if err != nil {
		ui.PrintError(fmt.Sprintf("Failed to list cities: %v", err))
		os.Exit(1)
	}
	for _, c := range imported {
		ui.PrintSuccess(fmt.Sprintf("%-15s %10s trips  imported %s from %s",
			c.City.Title(), humanize.Comma(int64(c.RowCount)), humanize.Time(c.ImportedAt), c.SourcePath))
	}

	if failed > 0 {
		os.Exit(1)
	}
}
