package record

// FastRecord is one sample from the 1kHz tier (IMU axes and vibration).
type FastRecord struct {
	TimestampMs uint32
	SensorID    uint8
	Value       float32
}

// MediumRecord is one sample from the 200Hz tier. The tier carries a single
// channel (motor current), so there is no sensor id field.
type MediumRecord struct {
	TimestampMs uint32
	Current     float32
}

// SlowRecord is one sample from the 50Hz tier (pressure and temperature).
type SlowRecord struct {
	TimestampMs uint32
	SensorID    uint8
	Value       float32
}
