// Package export writes the converted per-sensor series and the combined
// session metadata as CSV for downstream training pipelines.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shield-daq/shieldconv/pkg/demux"
	"github.com/shield-daq/shieldconv/pkg/session"
)

// SessionHeader is the exact column order of sessions.csv.
var SessionHeader = []string{
	"session_id", "unit_id", "sensor_name", "file_name", "file_format",
	"start_time_utc", "duration_s", "sampling_rate_hz", "units", "health_label",
}

// WriteSeries writes one sensor series as timestamp_ms,value rows.
func WriteSeries(w io.Writer, s demux.Series) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write([]string{"timestamp_ms", "value"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, sample := range s.Samples {
		row := []string{
			strconv.FormatUint(uint64(sample.TimestampMs), 10),
			strconv.FormatFloat(float64(sample.Value), 'f', -1, 32),
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteSeriesFile writes a series to <dir>/<sensor>.csv, creating dir as
// needed, and returns the file path.
func WriteSeriesFile(dir string, s demux.Series) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, s.Sensor+".csv")
	f, err := os.Create(path) // #nosec G304 -- path is derived from the user-specified output directory
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := WriteSeries(f, s); err != nil {
		return "", err
	}
	return path, nil
}

// SessionRow formats one session record in SessionHeader column order.
func SessionRow(rec session.SessionRecord) []string {
	return []string{
		rec.SessionID,
		rec.UnitID,
		rec.SensorName,
		rec.FileName,
		string(rec.FileFormat),
		rec.StartTimeUTC.UTC().Format(time.RFC3339),
		strconv.FormatFloat(rec.DurationS, 'f', -1, 64),
		strconv.Itoa(rec.SamplingRateHz),
		rec.Units,
		string(rec.HealthLabel),
	}
}

// WriteSessions writes session records with the sessions.csv header.
func WriteSessions(w io.Writer, records []session.SessionRecord) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(SessionHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, rec := range records {
		if err := csvWriter.Write(SessionRow(rec)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteSessionsFile writes sessions.csv at path, creating parent directories.
func WriteSessionsFile(path string, records []session.SessionRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metadata directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- path is derived from the user-specified output directory
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return WriteSessions(f, records)
}

// AppendSessionsFile appends records to an existing sessions.csv, preserving
// rows already present, or creates the file when absent.
func AppendSessionsFile(path string, records []session.SessionRecord) error {
	existing, err := readRows(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metadata directory: %w", err)
	}
	f, err := os.Create(path) // #nosec G304 -- path is derived from the user-specified output directory
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	csvWriter := csv.NewWriter(f)
	if err := csvWriter.Write(SessionHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range existing {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	for _, rec := range records {
		if err := csvWriter.Write(SessionRow(rec)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// readRows returns the data rows of an existing sessions.csv, skipping the
// header. A missing file yields no rows.
func readRows(path string) ([][]string, error) {
	f, err := os.Open(path) // #nosec G304 -- path is derived from the user-specified output directory
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read existing %s: %w", path, err)
	}
	if len(rows) > 0 {
		rows = rows[1:]
	}
	return rows, nil
}
