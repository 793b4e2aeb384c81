package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shield-daq/shieldconv/pkg/config"
	"github.com/shield-daq/shieldconv/pkg/convert"
	"github.com/shield-daq/shieldconv/pkg/index"
	"github.com/shield-daq/shieldconv/pkg/watch"
)

var (
	watchOutput   string
	watchLabel    string
	watchSchedule string
)

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [input-dir]",
		Short: "Periodically convert new runs from a drop directory",
		Long: `Watch a drop directory (for example an SD card mount) and convert any run
directory that is not yet in the session index. The scan runs once at startup
and then on the given cron schedule until interrupted.

Examples:
  # Scan every five minutes
  shieldconv watch /mnt/sdcard -o ./converted

  # Scan hourly with a batch label
  shieldconv watch /mnt/sdcard --schedule "0 * * * *" -l healthy`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringVarP(&watchOutput, "output", "o", "", "Output directory for CSV files and metadata (default: ./output)")
	cmd.Flags().StringVarP(&watchLabel, "label", "l", "", "Health label for all sensors (unknown, healthy, degraded, faulty)")
	cmd.Flags().StringVar(&watchSchedule, "schedule", "*/5 * * * *", "Cron expression for directory scans")

	return cmd
}

func runWatch(_ *cobra.Command, args []string) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}

	health, err := resolveHealthLabel(watchLabel, cfg)
	if err != nil {
		return err
	}

	db, err := index.Open(getDBPath(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	opts := convert.Options{
		OutputDir:   resolveOutputDir(watchOutput, cfg),
		HealthLabel: health,
	}

	runner := watch.NewRunner(args[0], opts, db, log.New(os.Stdout, "", log.LstdFlags))
	if err := runner.Start(watchSchedule); err != nil {
		return err
	}

	// block until interrupted
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	runner.Stop()
	return nil
}
