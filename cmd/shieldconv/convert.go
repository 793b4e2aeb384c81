package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shield-daq/shieldconv/pkg/config"
	"github.com/shield-daq/shieldconv/pkg/convert"
	"github.com/shield-daq/shieldconv/pkg/export"
	"github.com/shield-daq/shieldconv/pkg/sysinfo"
)

var (
	convertOutput  string
	convertUnit    string
	convertLabel   string
	convertVerbose bool
	convertWorkers int
)

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [run-dir]",
		Short: "Convert a single run directory to CSV",
		Long: `Convert a single run directory from binary to CSV format.

Parses fast_data.bin, medium_data.bin, and slow_data.bin and writes
per-sensor CSV files plus session metadata.

Examples:
  # Convert one run into ./output
  shieldconv convert /mnt/sdcard/UNIT_001_RUN_001

  # Convert with an explicit unit id and health label
  shieldconv convert /mnt/sdcard/RUN_003 -o ./converted -u unit_0042 -l faulty`,
		Args: cobra.ExactArgs(1),
		RunE: runConvert,
	}

	cmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output directory for CSV files and metadata (default: ./output)")
	cmd.Flags().StringVarP(&convertUnit, "unit", "u", "", "Override unit ID (default: extracted from folder name)")
	cmd.Flags().StringVarP(&convertLabel, "label", "l", "", "Health label for all sensors (unknown, healthy, degraded, faulty)")
	cmd.Flags().BoolVarP(&convertVerbose, "verbose", "v", false, "Print verbose output")

	return cmd
}

func convertAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert-all [input-dir]",
		Short: "Convert all run directories under a directory",
		Long: `Convert every run directory found under the input directory.

A subdirectory counts as a run when it contains at least one of the three
binary data files. Each run converts independently; one failing run does not
abort the batch. The combined session metadata is written once at the end.

Examples:
  # Convert an entire SD card
  shieldconv convert-all /mnt/sdcard -o ./converted

  # Label a whole batch and convert four runs at a time
  shieldconv convert-all /mnt/sdcard -l healthy -j 4`,
		Args: cobra.ExactArgs(1),
		RunE: runConvertAll,
	}

	cmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output directory for CSV files and metadata (default: ./output)")
	cmd.Flags().StringVarP(&convertLabel, "label", "l", "", "Health label for all sensors (unknown, healthy, degraded, faulty)")
	cmd.Flags().BoolVarP(&convertVerbose, "verbose", "v", false, "Print verbose output")
	cmd.Flags().IntVarP(&convertWorkers, "workers", "j", 1, "Number of runs to convert concurrently")

	return cmd
}

func runConvert(_ *cobra.Command, args []string) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}

	health, err := resolveHealthLabel(convertLabel, cfg)
	if err != nil {
		return err
	}

	outputDir := resolveOutputDir(convertOutput, cfg)
	opts := convert.Options{
		OutputDir:   outputDir,
		UnitID:      convertUnit,
		HealthLabel: health,
	}
	if convertVerbose {
		opts.Log = os.Stdout
	}

	result, err := convert.ConvertRun(args[0], opts)
	if err != nil {
		return err
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	if len(result.Sessions) > 0 {
		if err := export.AppendSessionsFile(sessionsCSVPath(outputDir), result.Sessions); err != nil {
			return fmt.Errorf("failed to write sessions metadata: %w", err)
		}
		indexSessions(cfg, result.Sessions)
	}

	printRunSummary(result)

	if errs := result.FileErrors(); len(errs) > 0 {
		for _, ferr := range errs {
			fmt.Fprintf(os.Stderr, "Error: %v\n", ferr)
		}
		return fmt.Errorf("%d data file(s) failed to convert", len(errs))
	}
	return nil
}

func runConvertAll(_ *cobra.Command, args []string) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}

	health, err := resolveHealthLabel(convertLabel, cfg)
	if err != nil {
		return err
	}

	outputDir := resolveOutputDir(convertOutput, cfg)
	workers := convertWorkers
	if workers <= 1 && cfg.Workers > 1 {
		workers = cfg.Workers
	}

	// preflight: converted CSV is roughly the size of its binary input, so
	// refuse to start a batch the output filesystem cannot hold
	runDirs, err := convert.DiscoverRuns(args[0])
	if err != nil {
		return err
	}
	if required := convert.InputSize(runDirs); required > 0 {
		if err := sysinfo.CheckFree(outputDir, required); err != nil {
			return err
		}
	}

	opts := convert.Options{
		OutputDir:   outputDir,
		HealthLabel: health,
	}
	if convertVerbose {
		opts.Log = os.Stdout
	}

	batch, err := convert.ConvertAll(args[0], opts, workers)
	if err != nil {
		return err
	}

	for i := range batch.Runs {
		run := &batch.Runs[i]
		name := filepath.Base(run.Dir)
		switch {
		case run.Err != nil:
			fmt.Fprintf(os.Stderr, "Error converting %s: %v\n", name, run.Err)
		case len(run.Result.FileErrors()) > 0:
			for _, ferr := range run.Result.FileErrors() {
				fmt.Fprintf(os.Stderr, "Error converting %s: %v\n", name, ferr)
			}
		default:
			if convertVerbose {
				fmt.Printf("Converted %s: %d sensor files\n", name, len(run.Result.OutputFiles))
			}
		}
	}

	if len(batch.Sessions) > 0 {
		if err := export.WriteSessionsFile(sessionsCSVPath(outputDir), batch.Sessions); err != nil {
			return fmt.Errorf("failed to write sessions metadata: %w", err)
		}
		indexSessions(cfg, batch.Sessions)
	}

	fmt.Printf("Converted %d sensor sessions from %d runs\n", len(batch.Sessions), len(batch.Runs))

	if failed := batch.FailedRuns(); failed > 0 {
		return fmt.Errorf("%d of %d runs had errors", failed, len(batch.Runs))
	}
	return nil
}
