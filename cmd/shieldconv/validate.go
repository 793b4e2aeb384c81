package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shield-daq/shieldconv/pkg/convert"
	"github.com/shield-daq/shieldconv/pkg/record"
)

var validateVerbose bool

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [run-dir]",
		Short: "Validate binary files in a run directory",
		Long: `Validate the binary files in a run directory without writing output.

Each file is fully decoded and demultiplexed; record counts, empty files,
size mismatches, and unknown sensor ids are reported.

Examples:
  shieldconv validate /mnt/sdcard/RUN_001
  shieldconv validate /mnt/sdcard/RUN_001 -v`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}

	cmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Print per-sensor sample counts")

	return cmd
}

func runValidate(_ *cobra.Command, args []string) error {
	fmt.Printf("Validating: %s\n", args[0])
	fmt.Printf("  Expected record sizes: fast=%d, medium=%d, slow=%d\n",
		record.FastRecordSize, record.MediumRecordSize, record.SlowRecordSize)

	v, err := convert.ValidateRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("  Unit ID: %s, Session ID: %s\n", v.Identity.UnitID, v.Identity.SessionID)

	for _, check := range v.Files {
		name := check.Format.FileName()
		switch {
		case !check.Present:
			fmt.Printf("  %s: NOT FOUND\n", name)
		case check.Err != nil:
			fmt.Printf("  %s: ERROR: %v\n", name, check.Err)
		case check.Empty:
			fmt.Printf("  %s: EMPTY (0 records)\n", name)
		default:
			fmt.Printf("  %s: OK (%d bytes, %d records)\n", name, check.SizeBytes, check.Records)
			if validateVerbose {
				for sensor, count := range check.Sensors {
					fmt.Printf("    %s: %d samples\n", sensor, count)
				}
			}
		}
	}

	switch {
	case !v.MetaPresent:
		fmt.Println("  meta.json: NOT FOUND")
	case v.MetaErr != nil:
		fmt.Printf("  meta.json: WARNING: %v\n", v.MetaErr)
	default:
		fmt.Printf("  meta.json: run_id=%s, duration=%dms\n", v.Meta.RunID, v.Meta.Statistics.DurationMs)
		if validateVerbose && len(v.Meta.Statistics.TotalSamples) > 0 {
			fmt.Printf("    total_samples: %v\n", v.Meta.Statistics.TotalSamples)
		}
	}

	if !v.OK() {
		return fmt.Errorf("validation failed")
	}
	fmt.Println("Validation passed")
	return nil
}
