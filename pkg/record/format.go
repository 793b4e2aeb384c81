package record

// Format identifies one of the three binary data tiers written by the DAQ
// firmware. Each tier has its own file name, fixed record size, and nominal
// sampling rate.
type Format string

const (
	FormatFast   Format = "fast"
	FormatMedium Format = "medium"
	FormatSlow   Format = "slow"
)

// Record sizes in bytes. The firmware writes packed structs, so these are
// exact with no alignment slack beyond the explicit reserved bytes.
const (
	FastRecordSize   = 12
	MediumRecordSize = 8
	SlowRecordSize   = 12
)

// Nominal sampling rates in Hz. Session metadata always reports these
// constants; observed timestamps may jitter and are never used to derive
// the rate.
const (
	FastRateHz   = 1000
	MediumRateHz = 200
	SlowRateHz   = 50
)

// Fast/slow record layout (12 bytes, little-endian):
// uint32 timestamp + uint8 sensor_id + 3 reserved bytes + float32 value
const (
	offTimestamp = 0x00
	offSensorID  = 0x04
	offValue     = 0x08
)

// Medium record layout (8 bytes, little-endian):
// uint32 timestamp + float32 current
const offCurrent = 0x04

// FileName returns the binary file name for the format within a run directory.
func (f Format) FileName() string {
	switch f {
	case FormatFast:
		return "fast_data.bin"
	case FormatMedium:
		return "medium_data.bin"
	case FormatSlow:
		return "slow_data.bin"
	}
	return ""
}

// Size returns the fixed record size in bytes.
func (f Format) Size() int {
	switch f {
	case FormatFast:
		return FastRecordSize
	case FormatMedium:
		return MediumRecordSize
	case FormatSlow:
		return SlowRecordSize
	}
	return 0
}

// RateHz returns the nominal sampling rate for the format.
func (f Format) RateHz() int {
	switch f {
	case FormatFast:
		return FastRateHz
	case FormatMedium:
		return MediumRateHz
	case FormatSlow:
		return SlowRateHz
	}
	return 0
}

// Formats returns the three tiers in their conventional processing order.
func Formats() []Format {
	return []Format{FormatFast, FormatMedium, FormatSlow}
}
