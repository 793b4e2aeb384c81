package session

import (
	"time"

	"github.com/shield-daq/shieldconv/pkg/demux"
)

// Summarize builds the session record for one sensor series. The sampling
// rate is always the tier's nominal constant; the duration follows from the
// sample count, never from observed timestamp deltas.
func Summarize(s demux.Series, rateHz int, id RunIdentity, start time.Time, label HealthLabel) SessionRecord {
	duration := 0.0
	if n := len(s.Samples); n > 1 {
		duration = float64(n-1) / float64(rateHz)
	}

	return SessionRecord{
		SessionID:      id.SessionID,
		UnitID:         id.UnitID,
		SensorName:     s.Sensor,
		FileName:       s.Sensor + ".csv",
		FileFormat:     FileFormatCSV,
		StartTimeUTC:   start.UTC(),
		DurationS:      duration,
		SamplingRateHz: rateHz,
		Units:          Units(s.Sensor),
		HealthLabel:    label,
	}
}
