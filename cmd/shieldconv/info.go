package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shield-daq/shieldconv/pkg/record"
	"github.com/shield-daq/shieldconv/pkg/sysinfo"
)

var (
	infoSystem bool
	infoOutput string
)

func infoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Display binary format information",
		RunE:  runInfo,
	}

	cmd.Flags().BoolVar(&infoSystem, "system", false, "Also print host and output-disk information")
	cmd.Flags().StringVarP(&infoOutput, "output", "o", "output", "Output directory checked with --system")

	return cmd
}

func runInfo(_ *cobra.Command, _ []string) error {
	fmt.Println("Binary Record Formats:")
	fmt.Println()
	fmt.Printf("fast_data.bin (%dHz - IMU + Vibration):\n", record.FastRateHz)
	fmt.Printf("  Size: %d bytes/record, little-endian\n", record.FastRecordSize)
	fmt.Println("  Fields: timestamp_ms (uint32), sensor_id (uint8), reserved[3], value (float32)")
	fmt.Println("  Sensors: 0-2=IMU axes (m/s^2, merged into one series), 3=Vibration (binary)")
	fmt.Println()
	fmt.Printf("medium_data.bin (%dHz - Current):\n", record.MediumRateHz)
	fmt.Printf("  Size: %d bytes/record, little-endian\n", record.MediumRecordSize)
	fmt.Println("  Fields: timestamp_ms (uint32), current (float32)")
	fmt.Println("  Units: Amperes (A)")
	fmt.Println()
	fmt.Printf("slow_data.bin (%dHz - Pressure + Temperature):\n", record.SlowRateHz)
	fmt.Printf("  Size: %d bytes/record, little-endian\n", record.SlowRecordSize)
	fmt.Println("  Fields: timestamp_ms (uint32), sensor_id (uint8), reserved[3], value (float32)")
	fmt.Println("  Sensors: 0=Pressure (kPa), 1=Temperature (°C)")

	if !infoSystem {
		return nil
	}

	fmt.Println()
	summary, err := sysinfo.HostSummary()
	if err != nil {
		return err
	}
	fmt.Printf("Host: %s\n", summary)

	usage, err := sysinfo.DiskUsage(infoOutput)
	if err != nil {
		return err
	}
	fmt.Printf("Output disk (%s): %.1f GB free of %.1f GB\n",
		usage.Path,
		float64(usage.Free)/(1024*1024*1024),
		float64(usage.Total)/(1024*1024*1024))

	return nil
}
