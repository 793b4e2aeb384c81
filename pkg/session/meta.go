package session

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// SidecarName is the optional firmware metadata file inside a run directory.
const SidecarName = "meta.json"

// DeviceInfo describes the DAQ board that recorded the run.
type DeviceInfo struct {
	Chip            string `json:"chip"`
	Cores           int    `json:"cores"`
	Revision        int    `json:"revision"`
	FirmwareVersion string `json:"firmware_version"`
	IDFVersion      string `json:"idf_version"`
}

// SensorInfo is one sensor's configuration as reported by the firmware.
type SensorInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Rate int    `json:"rate"`
	Unit string `json:"unit"`
}

// DataFiles lists the binary file paths the firmware wrote.
type DataFiles struct {
	Fast   string `json:"fast"`
	Medium string `json:"medium"`
	Slow   string `json:"slow"`
}

// Statistics holds the firmware's acquisition counters.
type Statistics struct {
	TotalSamples  map[string]int `json:"total_samples"`
	DurationMs    int64          `json:"duration_ms"`
	QueueOverruns int            `json:"queue_overruns"`
	SDWriteErrors int            `json:"sd_write_errors"`
}

// FirmwareMetadata is the meta.json sidecar written by the firmware at the
// start of each run. All fields beyond start_time are informational.
type FirmwareMetadata struct {
	RunID      string                  `json:"run_id"`
	StartTime  string                  `json:"start_time"`
	EndTime    string                  `json:"end_time,omitempty"`
	DeviceInfo DeviceInfo              `json:"device_info"`
	Sensors    map[string][]SensorInfo `json:"sensors"`
	DataFiles  DataFiles               `json:"data_files"`
	Statistics Statistics              `json:"statistics"`
}

// LoadFirmwareMetadata reads and parses a meta.json sidecar.
func LoadFirmwareMetadata(path string) (*FirmwareMetadata, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- sidecar path comes from the run directory being converted
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", SidecarName, err)
	}

	var meta FirmwareMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", SidecarName, err)
	}
	return &meta, nil
}

// StartTimeUTC parses the firmware's unix-seconds start_time string.
func (m *FirmwareMetadata) StartTimeUTC() (time.Time, error) {
	secs, err := strconv.ParseInt(m.StartTime, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start_time %q: %w", m.StartTime, err)
	}
	return time.Unix(secs, 0).UTC(), nil
}
