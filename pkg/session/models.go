// Package session derives per-sensor session metadata from demultiplexed
// sensor series.
package session

import (
	"fmt"
	"time"
)

// HealthLabel tags the physical condition of the monitored equipment during
// a run. The set is closed; anything else fails at parse time.
type HealthLabel string

const (
	HealthUnknown  HealthLabel = "unknown"
	HealthHealthy  HealthLabel = "healthy"
	HealthDegraded HealthLabel = "degraded"
	HealthFaulty   HealthLabel = "faulty"
)

// ParseHealthLabel validates a user-supplied label string.
func ParseHealthLabel(s string) (HealthLabel, error) {
	switch HealthLabel(s) {
	case HealthUnknown, HealthHealthy, HealthDegraded, HealthFaulty:
		return HealthLabel(s), nil
	}
	return "", fmt.Errorf("invalid health label %q (expected unknown, healthy, degraded, or faulty)", s)
}

// FileFormat identifies the output encoding of a converted series.
type FileFormat string

const FileFormatCSV FileFormat = "csv"

// SessionRecord is the metadata row written to sessions.csv, one per sensor
// per run.
type SessionRecord struct {
	SessionID      string
	UnitID         string
	SensorName     string
	FileName       string
	FileFormat     FileFormat
	StartTimeUTC   time.Time
	DurationS      float64
	SamplingRateHz int
	Units          string
	HealthLabel    HealthLabel
}

// sensorUnits is the static per-sensor units table. Vibration is a binary
// on/off channel with no physical unit.
var sensorUnits = map[string]string{
	"imu":         "m/s^2",
	"vibration":   "binary",
	"current":     "A",
	"pressure":    "kPa",
	"temperature": "°C",
}

// Units returns the physical units for a sensor name, or "unknown" for
// sensors outside the table.
func Units(sensor string) string {
	if u, ok := sensorUnits[sensor]; ok {
		return u
	}
	return "unknown"
}
