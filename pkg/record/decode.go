package record

import (
	"encoding/binary"
	"math"
)

// The decoders below extract fields at named byte offsets rather than
// overlaying Go structs on the raw bytes, so the layout stays explicit and
// independent of the host's alignment rules. All fields are little-endian.

// checkSize validates the buffer length against the format's record size and
// returns the record count.
func checkSize(f Format, data []byte) (int, error) {
	size := f.Size()
	if len(data) == 0 {
		return 0, ErrEmpty
	}
	if len(data)%size != 0 {
		return 0, &MalformedFileError{Format: f, Size: len(data), RecordSize: size}
	}
	return len(data) / size, nil
}

// DecodeFast decodes a fast_data.bin buffer into records in file order.
func DecodeFast(data []byte) ([]FastRecord, error) {
	n, err := checkSize(FormatFast, data)
	if err != nil {
		return nil, err
	}

	records := make([]FastRecord, n)
	for i := 0; i < n; i++ {
		chunk := data[i*FastRecordSize : (i+1)*FastRecordSize]
		records[i] = FastRecord{
			TimestampMs: binary.LittleEndian.Uint32(chunk[offTimestamp:]),
			SensorID:    chunk[offSensorID],
			Value:       math.Float32frombits(binary.LittleEndian.Uint32(chunk[offValue:])),
		}
	}
	return records, nil
}

// DecodeMedium decodes a medium_data.bin buffer into records in file order.
func DecodeMedium(data []byte) ([]MediumRecord, error) {
	n, err := checkSize(FormatMedium, data)
	if err != nil {
		return nil, err
	}

	records := make([]MediumRecord, n)
	for i := 0; i < n; i++ {
		chunk := data[i*MediumRecordSize : (i+1)*MediumRecordSize]
		records[i] = MediumRecord{
			TimestampMs: binary.LittleEndian.Uint32(chunk[offTimestamp:]),
			Current:     math.Float32frombits(binary.LittleEndian.Uint32(chunk[offCurrent:])),
		}
	}
	return records, nil
}

// DecodeSlow decodes a slow_data.bin buffer into records in file order.
func DecodeSlow(data []byte) ([]SlowRecord, error) {
	n, err := checkSize(FormatSlow, data)
	if err != nil {
		return nil, err
	}

	records := make([]SlowRecord, n)
	for i := 0; i < n; i++ {
		chunk := data[i*SlowRecordSize : (i+1)*SlowRecordSize]
		records[i] = SlowRecord{
			TimestampMs: binary.LittleEndian.Uint32(chunk[offTimestamp:]),
			SensorID:    chunk[offSensorID],
			Value:       math.Float32frombits(binary.LittleEndian.Uint32(chunk[offValue:])),
		}
	}
	return records, nil
}
