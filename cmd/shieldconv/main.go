package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shield-daq/shieldconv/internal/version"
)

var (
	// Build variables set by ldflags
	buildVersion string
	buildCommit  string
	buildTime    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shieldconv",
		Short: "ESP32 DAQ binary data to CSV converter",
		Long: `shieldconv converts the fixed-layout binary sensor logs recorded by the
DAQ firmware (fast_data.bin, medium_data.bin, slow_data.bin) into per-sensor
CSV time series plus session metadata for ML training pipelines.`,
		Version: version.GetVersion(buildVersion, buildCommit, buildTime),
	}

	// Add commands
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(convertAllCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(infoCmd())
	rootCmd.AddCommand(sessionsCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version.GetDetailedVersion(buildVersion, buildCommit, buildTime))
		},
	}
}
