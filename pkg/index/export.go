package index

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shield-daq/shieldconv/pkg/export"
	"github.com/shield-daq/shieldconv/pkg/session"
)

// ExportCSV writes matching sessions in the sessions.csv format.
func (db *DB) ExportCSV(w io.Writer, filter Filter) error {
	records, err := db.List(filter)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	return export.WriteSessions(w, records)
}

// ExportJSON writes matching sessions as an indented JSON array.
func (db *DB) ExportJSON(w io.Writer, filter Filter) error {
	records, err := db.List(filter)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	out := make([]map[string]interface{}, 0, len(records))
	for _, rec := range records {
		out = append(out, sessionJSON(rec))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func sessionJSON(rec session.SessionRecord) map[string]interface{} {
	return map[string]interface{}{
		"session_id":       rec.SessionID,
		"unit_id":          rec.UnitID,
		"sensor_name":      rec.SensorName,
		"file_name":        rec.FileName,
		"file_format":      string(rec.FileFormat),
		"start_time_utc":   rec.StartTimeUTC,
		"duration_s":       rec.DurationS,
		"sampling_rate_hz": rec.SamplingRateHz,
		"units":            rec.Units,
		"health_label":     string(rec.HealthLabel),
	}
}
