package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shield-daq/shieldconv/pkg/demux"
)

func TestParseRunIdentity(t *testing.T) {
	tests := []struct {
		folder  string
		unit    string
		session string
	}{
		{"UNIT_007_RUN_003", "unit_0007", "RUN_003"},
		{"UNIT_001_RUN_001", "unit_0001", "RUN_001"},
		{"unit_12_run_5", "unit_0012", "RUN_005"},
		{"RUN_005", "unit_0001", "RUN_005"},
		{"run_42", "unit_0001", "RUN_042"},
		{"bench_test_a", "unit_0001", "bench_test_a"},
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			id := ParseRunIdentity(tt.folder)
			if id.UnitID != tt.unit {
				t.Errorf("UnitID = %q, want %q", id.UnitID, tt.unit)
			}
			if id.SessionID != tt.session {
				t.Errorf("SessionID = %q, want %q", id.SessionID, tt.session)
			}
		})
	}
}

func TestParseHealthLabel(t *testing.T) {
	for _, valid := range []string{"unknown", "healthy", "degraded", "faulty"} {
		if _, err := ParseHealthLabel(valid); err != nil {
			t.Errorf("ParseHealthLabel(%q) error = %v", valid, err)
		}
	}

	if _, err := ParseHealthLabel("broken"); err == nil {
		t.Error("ParseHealthLabel(\"broken\") expected error, got nil")
	}
	if _, err := ParseHealthLabel(""); err == nil {
		t.Error("ParseHealthLabel(\"\") expected error, got nil")
	}
}

func TestUnits(t *testing.T) {
	tests := []struct {
		sensor string
		want   string
	}{
		{"imu", "m/s^2"},
		{"vibration", "binary"},
		{"current", "A"},
		{"pressure", "kPa"},
		{"temperature", "°C"},
		{"microphone", "unknown"},
	}

	for _, tt := range tests {
		if got := Units(tt.sensor); got != tt.want {
			t.Errorf("Units(%q) = %q, want %q", tt.sensor, got, tt.want)
		}
	}
}

func TestSummarizeDuration(t *testing.T) {
	id := RunIdentity{UnitID: "unit_0001", SessionID: "RUN_001"}
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// 3001 samples at the 50Hz nominal rate spans exactly one minute
	samples := make([]demux.Sample, 3001)
	rec := Summarize(demux.Series{Sensor: "pressure", Samples: samples}, 50, id, start, HealthHealthy)

	if rec.DurationS != 60.0 {
		t.Errorf("DurationS = %v, want 60.0", rec.DurationS)
	}
	if rec.SamplingRateHz != 50 {
		t.Errorf("SamplingRateHz = %d, want 50", rec.SamplingRateHz)
	}
	if rec.Units != "kPa" {
		t.Errorf("Units = %q, want kPa", rec.Units)
	}
	if rec.FileName != "pressure.csv" {
		t.Errorf("FileName = %q, want pressure.csv", rec.FileName)
	}
	if rec.HealthLabel != HealthHealthy {
		t.Errorf("HealthLabel = %q, want healthy", rec.HealthLabel)
	}
}

func TestSummarizeEmptySeries(t *testing.T) {
	id := RunIdentity{UnitID: "unit_0001", SessionID: "RUN_002"}
	rec := Summarize(demux.Series{Sensor: "current"}, 200, id, time.Now(), HealthUnknown)

	if rec.DurationS != 0 {
		t.Errorf("DurationS = %v, want 0", rec.DurationS)
	}
	if rec.SamplingRateHz != 200 {
		t.Errorf("SamplingRateHz = %d, want nominal 200", rec.SamplingRateHz)
	}
}

func TestSummarizeSingleSample(t *testing.T) {
	id := RunIdentity{UnitID: "unit_0001", SessionID: "RUN_003"}
	rec := Summarize(demux.Series{Sensor: "imu", Samples: make([]demux.Sample, 1)}, 1000, id, time.Now(), HealthUnknown)

	if rec.DurationS != 0 {
		t.Errorf("DurationS = %v, want 0 for a single sample", rec.DurationS)
	}
}

func TestLoadFirmwareMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SidecarName)

	content := `{
		"run_id": "RUN_001",
		"start_time": "1717243200",
		"device_info": {"chip": "ESP32-S3", "cores": 2, "revision": 0, "firmware_version": "1.2.0", "idf_version": "5.1"},
		"sensors": {"fast": [{"id": 0, "name": "adxl355", "type": "IMU", "rate": 1000, "unit": "m/s^2"}]},
		"data_files": {"fast": "fast_data.bin", "medium": "medium_data.bin", "slow": "slow_data.bin"},
		"statistics": {"total_samples": {"fast": 60000}, "duration_ms": 60000, "queue_overruns": 0, "sd_write_errors": 0}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	meta, err := LoadFirmwareMetadata(path)
	if err != nil {
		t.Fatalf("LoadFirmwareMetadata() error = %v", err)
	}
	if meta.RunID != "RUN_001" {
		t.Errorf("RunID = %q, want RUN_001", meta.RunID)
	}
	if meta.Statistics.DurationMs != 60000 {
		t.Errorf("DurationMs = %d, want 60000", meta.Statistics.DurationMs)
	}

	start, err := meta.StartTimeUTC()
	if err != nil {
		t.Fatalf("StartTimeUTC() error = %v", err)
	}
	want := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("StartTimeUTC() = %v, want %v", start, want)
	}
}

func TestLoadFirmwareMetadataMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SidecarName)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFirmwareMetadata(path); err == nil {
		t.Error("LoadFirmwareMetadata() expected error for malformed sidecar")
	}
}

func TestStartTimeUTCInvalid(t *testing.T) {
	meta := &FirmwareMetadata{StartTime: "not-a-timestamp"}
	if _, err := meta.StartTimeUTC(); err == nil {
		t.Error("StartTimeUTC() expected error for non-numeric start_time")
	}
}
