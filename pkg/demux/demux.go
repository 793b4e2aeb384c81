// Package demux splits decoded multi-sensor record sequences into
// independent per-sensor time series.
package demux

import (
	"fmt"

	"github.com/shield-daq/shieldconv/pkg/record"
)

// Sample is one (timestamp, value) point of a sensor series.
type Sample struct {
	TimestampMs uint32
	Value       float32
}

// Series is one named sensor channel in original file order.
type Series struct {
	Sensor  string
	Samples []Sample
}

// Sensor id maps for the tiers that interleave channels. The three IMU axes
// share one "imu" series; axis identity is not carried into the output.
var (
	fastSensors = map[uint8]string{
		0: "imu",
		1: "imu",
		2: "imu",
		3: "vibration",
	}

	slowSensors = map[uint8]string{
		0: "pressure",
		1: "temperature",
	}
)

// CurrentSensor is the single implicit channel of the medium tier.
const CurrentSensor = "current"

// UnknownSensorError reports a sensor id outside the tier's map. Records with
// unknown ids are never dropped silently.
type UnknownSensorError struct {
	Format   record.Format
	SensorID uint8
	Index    int
}

func (e *UnknownSensorError) Error() string {
	return fmt.Sprintf("%s: unknown sensor id %d at record %d (byte offset %d)",
		e.Format.FileName(), e.SensorID, e.Index, e.Index*e.Format.Size())
}

// SplitFast partitions fast-tier records into imu and vibration series,
// preserving per-sensor relative order. Series appear in first-observed order.
func SplitFast(records []record.FastRecord) ([]Series, error) {
	return split(record.FormatFast, fastSensors, len(records), func(i int) (uint8, Sample) {
		r := records[i]
		return r.SensorID, Sample{TimestampMs: r.TimestampMs, Value: r.Value}
	})
}

// SplitSlow partitions slow-tier records into pressure and temperature series.
func SplitSlow(records []record.SlowRecord) ([]Series, error) {
	return split(record.FormatSlow, slowSensors, len(records), func(i int) (uint8, Sample) {
		r := records[i]
		return r.SensorID, Sample{TimestampMs: r.TimestampMs, Value: r.Value}
	})
}

// Current maps the whole medium-tier sequence to the "current" series. The
// series is returned even when empty so an empty stream stays visible in the
// session metadata.
func Current(records []record.MediumRecord) Series {
	s := Series{Sensor: CurrentSensor}
	if len(records) > 0 {
		s.Samples = make([]Sample, len(records))
		for i, r := range records {
			s.Samples[i] = Sample{TimestampMs: r.TimestampMs, Value: r.Current}
		}
	}
	return s
}

func split(format record.Format, sensors map[uint8]string, n int, at func(int) (uint8, Sample)) ([]Series, error) {
	var order []string
	byName := make(map[string]*Series)

	for i := 0; i < n; i++ {
		id, sample := at(i)
		name, ok := sensors[id]
		if !ok {
			return nil, &UnknownSensorError{Format: format, SensorID: id, Index: i}
		}

		s, ok := byName[name]
		if !ok {
			s = &Series{Sensor: name}
			byName[name] = s
			order = append(order, name)
		}
		s.Samples = append(s.Samples, sample)
	}

	series := make([]Series, 0, len(order))
	for _, name := range order {
		series = append(series, *byName[name])
	}
	return series, nil
}
