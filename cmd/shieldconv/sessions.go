package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shield-daq/shieldconv/pkg/config"
	"github.com/shield-daq/shieldconv/pkg/index"
)

var (
	sessionsUnit   string
	sessionsSensor string
	sessionsLabel  string
	sessionsLimit  int
	sessionsOutput string
)

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Query the session index",
		Long:  "Query the SQLite index of converted sensor sessions",
	}

	cmd.AddCommand(sessionsListCmd())
	cmd.AddCommand(sessionsShowCmd())
	cmd.AddCommand(sessionsExportCmd())

	return cmd
}

func openIndex() (*index.DB, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}

	db, err := index.Open(getDBPath(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open session index: %w", err)
	}
	return db, nil
}

func sessionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List indexed sensor sessions",
		Long: `List converted sensor sessions from the index.

Examples:
  # List everything
  shieldconv sessions list

  # List one unit's faulty runs
  shieldconv sessions list --unit unit_0007 --health faulty`,
		RunE: func(_ *cobra.Command, _ []string) error {
			db, err := openIndex()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			records, err := db.List(index.Filter{
				UnitID: sessionsUnit,
				Sensor: sessionsSensor,
				Health: sessionsLabel,
				Limit:  sessionsLimit,
			})
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}

			if len(records) == 0 {
				fmt.Println("No sessions found")
				return nil
			}

			fmt.Printf("%-12s %-10s %-12s %-20s %-10s %-8s %-10s\n",
				"Session", "Unit", "Sensor", "Start (UTC)", "Duration", "Rate", "Health")
			for _, rec := range records {
				fmt.Printf("%-12s %-10s %-12s %-20s %-10s %-8s %-10s\n",
					rec.SessionID,
					rec.UnitID,
					rec.SensorName,
					rec.StartTimeUTC.Format("2006-01-02 15:04:05"),
					fmt.Sprintf("%.1fs", rec.DurationS),
					fmt.Sprintf("%dHz", rec.SamplingRateHz),
					rec.HealthLabel,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionsUnit, "unit", "", "Filter by unit id")
	cmd.Flags().StringVar(&sessionsSensor, "sensor", "", "Filter by sensor name")
	cmd.Flags().StringVar(&sessionsLabel, "health", "", "Filter by health label")
	cmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 50, "Maximum number of sessions to show")

	return cmd
}

func sessionsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [session-id]",
		Short: "Show all sensors of one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			db, err := openIndex()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			records, err := db.List(index.Filter{SessionID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to query session: %w", err)
			}
			if len(records) == 0 {
				return fmt.Errorf("session %s not found", args[0])
			}

			first := records[0]
			fmt.Printf("Session: %s\n", first.SessionID)
			fmt.Printf("Unit: %s\n", first.UnitID)
			fmt.Printf("Start Time: %s\n", first.StartTimeUTC.Format(time.RFC3339))
			fmt.Printf("Health: %s\n", first.HealthLabel)
			fmt.Println("\nSensors:")
			for _, rec := range records {
				fmt.Printf("  %-12s %6.1fs @ %dHz (%s) -> %s\n",
					rec.SensorName, rec.DurationS, rec.SamplingRateHz, rec.Units, rec.FileName)
			}
			return nil
		},
	}
}

func sessionsExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [csv|json]",
		Short: "Export indexed sessions",
		Long: `Export indexed sessions in CSV or JSON format.

Examples:
  # Export everything to stdout
  shieldconv sessions export csv

  # Export one unit to a file
  shieldconv sessions export json --unit unit_0007 --out unit7.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			db, err := openIndex()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			out := os.Stdout
			if sessionsOutput != "" {
				out, err = os.Create(sessionsOutput) // #nosec G304 -- user-specified output file path
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer func() { _ = out.Close() }()
			}

			filter := index.Filter{
				UnitID: sessionsUnit,
				Sensor: sessionsSensor,
				Health: sessionsLabel,
			}

			switch args[0] {
			case "csv":
				err = db.ExportCSV(out, filter)
			case "json":
				err = db.ExportJSON(out, filter)
			default:
				return fmt.Errorf("unknown export format %q (expected csv or json)", args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to export sessions: %w", err)
			}

			if sessionsOutput != "" {
				fmt.Printf("Exported sessions to %s\n", sessionsOutput)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionsUnit, "unit", "", "Filter by unit id")
	cmd.Flags().StringVar(&sessionsSensor, "sensor", "", "Filter by sensor name")
	cmd.Flags().StringVar(&sessionsLabel, "health", "", "Filter by health label")
	cmd.Flags().StringVar(&sessionsOutput, "out", "", "Output file (default: stdout)")

	return cmd
}
