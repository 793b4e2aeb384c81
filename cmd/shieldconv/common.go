package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/shield-daq/shieldconv/pkg/config"
	"github.com/shield-daq/shieldconv/pkg/convert"
	"github.com/shield-daq/shieldconv/pkg/index"
	"github.com/shield-daq/shieldconv/pkg/session"
)

// getDBPath returns the path to the session index database
func getDBPath(cfg *config.Config) string {
	// Check environment variable first
	if dbPath := os.Getenv("SHIELDCONV_DB"); dbPath != "" {
		return dbPath
	}

	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath
	}

	// Default to user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory
		return "shieldconv.db"
	}

	// Create .shieldconv directory if it doesn't exist
	confDir := filepath.Join(homeDir, ".shieldconv")
	if err := os.MkdirAll(confDir, 0o755); err == nil {
		return filepath.Join(confDir, "shieldconv.db")
	}

	// Fallback to current directory
	return "shieldconv.db"
}

// resolveOutputDir applies flag > config > default precedence.
func resolveOutputDir(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	if cfg != nil && cfg.OutputDir != "" {
		return cfg.OutputDir
	}
	return "output"
}

// resolveHealthLabel validates the label before any file I/O happens.
func resolveHealthLabel(flag string, cfg *config.Config) (session.HealthLabel, error) {
	label := flag
	if label == "" && cfg != nil && cfg.HealthLabel != "" {
		label = cfg.HealthLabel
	}
	if label == "" {
		return session.HealthUnknown, nil
	}
	return session.ParseHealthLabel(label)
}

// sessionsCSVPath returns the combined metadata file under an output dir.
func sessionsCSVPath(outputDir string) string {
	return filepath.Join(outputDir, "metadata", "sessions", "sessions.csv")
}

// indexSessions upserts a run's session records into the index database.
// Index failures are reported as warnings; the converted CSVs stand on
// their own.
func indexSessions(cfg *config.Config, records []session.SessionRecord) {
	if len(records) == 0 {
		return
	}

	db, err := index.Open(getDBPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session index: %v\n", err)
		return
	}
	defer func() { _ = db.Close() }()

	if err := db.UpsertAll(records); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not update session index: %v\n", err)
	}
}

// printRunSummary lists a run's outputs in stable sensor order.
func printRunSummary(result *convert.RunResult) {
	fmt.Printf("Converted %d sensor files\n", len(result.OutputFiles))

	sensors := make([]string, 0, len(result.OutputFiles))
	for sensor := range result.OutputFiles {
		sensors = append(sensors, sensor)
	}
	sort.Strings(sensors)
	for _, sensor := range sensors {
		fmt.Printf("  %s: %s\n", sensor, result.OutputFiles[sensor])
	}
}
