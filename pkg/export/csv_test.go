package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shield-daq/shieldconv/pkg/demux"
	"github.com/shield-daq/shieldconv/pkg/session"
)

func TestWriteSeries(t *testing.T) {
	var sb strings.Builder
	s := demux.Series{
		Sensor: "pressure",
		Samples: []demux.Sample{
			{TimestampMs: 0, Value: 101.325},
			{TimestampMs: 20, Value: -1.5},
		},
	}

	if err := WriteSeries(&sb, s); err != nil {
		t.Fatalf("WriteSeries() error = %v", err)
	}

	want := "timestamp_ms,value\n0,101.325\n20,-1.5\n"
	if sb.String() != want {
		t.Errorf("WriteSeries() output = %q, want %q", sb.String(), want)
	}
}

func TestWriteSeriesFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "UNIT_0001_RUN_001")

	path, err := WriteSeriesFile(out, demux.Series{Sensor: "imu", Samples: []demux.Sample{{TimestampMs: 1, Value: 9.81}}})
	if err != nil {
		t.Fatalf("WriteSeriesFile() error = %v", err)
	}
	if filepath.Base(path) != "imu.csv" {
		t.Errorf("path = %q, want imu.csv basename", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "timestamp_ms,value\n") {
		t.Errorf("file content = %q, missing header", data)
	}
}

func sampleRecord(sensor string) session.SessionRecord {
	return session.SessionRecord{
		SessionID:      "RUN_001",
		UnitID:         "unit_0001",
		SensorName:     sensor,
		FileName:       sensor + ".csv",
		FileFormat:     session.FileFormatCSV,
		StartTimeUTC:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		DurationS:      60,
		SamplingRateHz: 50,
		Units:          session.Units(sensor),
		HealthLabel:    session.HealthHealthy,
	}
}

func TestWriteSessions(t *testing.T) {
	var sb strings.Builder
	if err := WriteSessions(&sb, []session.SessionRecord{sampleRecord("pressure")}); err != nil {
		t.Fatalf("WriteSessions() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != strings.Join(SessionHeader, ",") {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "RUN_001,unit_0001,pressure,pressure.csv,csv,2024-06-01T12:00:00Z,60,50,kPa,healthy" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestAppendSessionsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessions.csv")

	if err := AppendSessionsFile(path, []session.SessionRecord{sampleRecord("pressure")}); err != nil {
		t.Fatalf("first append error = %v", err)
	}
	if err := AppendSessionsFile(path, []session.SessionRecord{sampleRecord("temperature")}); err != nil {
		t.Fatalf("second append error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if !strings.Contains(lines[1], "pressure") || !strings.Contains(lines[2], "temperature") {
		t.Errorf("rows out of order: %v", lines[1:])
	}
}
